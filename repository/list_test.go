package repository

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jansunwai/models"
)

func predicateSQL(t *testing.T, f models.ComplaintFilter) (string, []interface{}) {
	t.Helper()
	pred := listPredicate(f)
	if len(pred) == 0 {
		return "", nil
	}
	query, args, err := pred.ToSql()
	require.NoError(t, err)
	return query, args
}

func TestListPredicateEmptyFilter(t *testing.T) {
	assert.Empty(t, listPredicate(models.ComplaintFilter{}))
}

func TestListPredicateSearchIncludesIDClause(t *testing.T) {
	id := int64(1234)
	query, args := predicateSQL(t, models.ComplaintFilter{
		Search:   "BG-1234",
		SearchID: &id,
	})

	// the id match is OR-combined with the substring clauses, never
	// replacing them
	assert.Contains(t, query, "title LIKE ?")
	assert.Contains(t, query, "complaint_id = ?")
	assert.Contains(t, args, int64(1234))
	assert.Contains(t, args, "%BG-1234%")
}

func TestListPredicateStatusIn(t *testing.T) {
	query, args := predicateSQL(t, models.ComplaintFilter{
		Statuses: []models.Status{models.StatusOpen, models.StatusAssigned},
	})

	assert.Contains(t, query, "current_status IN (?,?)")
	assert.Len(t, args, 2)
}

func TestListPredicateCombined(t *testing.T) {
	query, _ := predicateSQL(t, models.ComplaintFilter{
		Statuses:   []models.Status{models.StatusOpen},
		Department: models.DeptPWD1,
		Taluka:     "Tirora",
	})

	assert.Contains(t, query, "current_status IN (?)")
	assert.Contains(t, query, "department = ?")
	assert.Contains(t, query, "taluka = ?")
}

func TestListOrderWhitelist(t *testing.T) {
	assert.Equal(t, "created_at DESC", listOrder(models.ComplaintFilter{SortBy: "createdAt", SortDesc: true}))
	assert.Equal(t, "title ASC", listOrder(models.ComplaintFilter{SortBy: "title"}))

	// anything off the whitelist falls back to newest-first
	assert.Equal(t, "complaint_id DESC", listOrder(models.ComplaintFilter{SortBy: "password"}))
	assert.Equal(t, "complaint_id DESC", listOrder(models.ComplaintFilter{}))
}

// keep squirrel's placeholder behavior pinned: predicates render ? for MySQL
func TestPredicateUsesQuestionPlaceholders(t *testing.T) {
	query, _, err := sq.Eq{"complaint_id": 1}.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "complaint_id = ?", query)
}
