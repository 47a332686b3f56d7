// Package schema: safe database initialization — create only missing
// tables, never drop or overwrite.
package schema

import (
	"database/sql"
	"log"
)

var tables = []struct {
	name string
	ddl  string
}{
	{
		name: "users",
		ddl: `
			CREATE TABLE users (
				user_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				role VARCHAR(64) NOT NULL DEFAULT 'USER',
				has_unread_notifications TINYINT(1) NOT NULL DEFAULT 0,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_users_role (role)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
		`,
	},
	{
		name: "complaints",
		ddl: `
			CREATE TABLE complaints (
				complaint_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				display_id VARCHAR(64) NULL,
				title VARCHAR(500) NOT NULL,
				description TEXT NOT NULL,
				category VARCHAR(255) NULL,
				subcategory VARCHAR(255) NULL,
				location VARCHAR(500) NULL,
				taluka VARCHAR(255) NULL,
				media JSON NULL,
				current_status VARCHAR(32) NOT NULL DEFAULT 'OPEN',
				priority VARCHAR(16) NOT NULL DEFAULT 'NORMAL',
				department VARCHAR(64) NULL,
				parent_complaint_id BIGINT NULL,
				split_index BIGINT NULL,
				is_split TINYINT(1) NOT NULL DEFAULT 0,
				merged_into_complaint_id BIGINT NULL,
				is_merged TINYINT(1) NOT NULL DEFAULT 0,
				original_complaint_ids JSON NULL,
				linked_complaint_ids JSON NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NULL,
				INDEX idx_complaints_status (current_status),
				INDEX idx_complaints_department (department),
				INDEX idx_complaints_parent (parent_complaint_id),
				INDEX idx_complaints_display (display_id)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
		`,
	},
	{
		name: "complaint_history",
		ddl: `
			CREATE TABLE complaint_history (
				history_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				complaint_id BIGINT NOT NULL,
				user_id BIGINT NULL,
				role VARCHAR(64) NOT NULL DEFAULT 'USER',
				action VARCHAR(255) NOT NULL,
				notes TEXT NULL,
				attachment VARCHAR(1000) NULL,
				eta TIMESTAMP NULL,
				old_status VARCHAR(32) NULL,
				new_status VARCHAR(32) NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_history_complaint (complaint_id, created_at)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
		`,
	},
	{
		name: "remarks",
		ddl: `
			CREATE TABLE remarks (
				remark_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				complaint_id BIGINT NOT NULL,
				user_id BIGINT NULL,
				role VARCHAR(64) NOT NULL DEFAULT 'USER',
				visibility VARCHAR(16) NOT NULL DEFAULT 'INTERNAL',
				notes TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_remarks_complaint (complaint_id, created_at)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
		`,
	},
	{
		name: "notifications",
		ddl: `
			CREATE TABLE notifications (
				notification_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				target_role VARCHAR(64) NOT NULL,
				type VARCHAR(32) NOT NULL,
				title VARCHAR(255) NOT NULL,
				message TEXT NOT NULL,
				created_by BIGINT NULL,
				is_read TINYINT(1) NOT NULL DEFAULT 0,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				INDEX idx_notifications_role (target_role, is_read)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
		`,
	},
}

// InitializeDatabase ensures core tables exist. Checks
// INFORMATION_SCHEMA.TABLES and creates only missing tables; never drops,
// never recreates, never removes data.
func InitializeDatabase(db *sql.DB) {
	for _, t := range tables {
		exists, err := tableExists(db, t.name)
		if err != nil {
			log.Fatalf("[schema] failed to check table %s: %v", t.name, err)
		}
		if exists {
			log.Printf("[schema] table %s exists", t.name)
			continue
		}
		if _, err := db.Exec(t.ddl); err != nil {
			log.Fatalf("[schema] failed to create table %s: %v", t.name, err)
		}
		log.Printf("[schema] created table %s", t.name)
	}
}

func tableExists(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
	`, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
