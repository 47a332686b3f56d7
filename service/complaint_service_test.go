package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jansunwai/models"
	"jansunwai/service"
)

func TestCreateComplaint(t *testing.T) {
	engine, store := newEngine(t)
	ctx := context.Background()

	c, err := engine.CreateComplaint(ctx, &models.CreateComplaintRequest{
		Title:       "Broken streetlight on station road",
		Description: "Dark stretch near the railway crossing",
		Location:    strPtr("Station Road"),
		Priority:    strPtr("High"),
		Department:  strPtr("MSEB"),
	}, models.Actor{ID: 5, Role: models.RoleUser})
	require.NoError(t, err)

	assert.Equal(t, "BG-1", c.DisplayID.String)
	assert.Equal(t, models.StatusOpen, c.Status)
	assert.Equal(t, models.PriorityHigh, c.Priority)
	assert.Equal(t, models.DeptMSEB, c.Department)

	history, err := store.HistoryForComplaint(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Complaint Created", history[0].Action)
}

func TestCreateComplaintValidation(t *testing.T) {
	engine, _ := newEngine(t)

	_, err := engine.CreateComplaint(context.Background(), &models.CreateComplaintRequest{
		Title: "   ",
	}, collector)
	assert.Equal(t, service.KindValidation, service.KindOf(err))
}

// TestUpdateComplaintAssignment runs the full assignment flow: one PATCH
// changes the status and department and carries a remark tagging another
// role; history, remark and all three notifications must come out of it.
func TestUpdateComplaintAssignment(t *testing.T) {
	engine, store := newEngine(t)
	ctx := context.Background()

	created, err := engine.CreateComplaint(ctx, &models.CreateComplaintRequest{
		Title: "Illegal parking blocking the hospital gate",
	}, models.Actor{ID: 5, Role: models.RoleUser})
	require.NoError(t, err)

	detail, err := engine.UpdateComplaint(ctx, created.ID, &models.UpdateComplaintRequest{
		Status:     strPtr("Assigned"),
		Department: strPtr("Police Department"),
		Remark:     strPtr("@Police Superintendent please post a constable here"),
	}, collector)
	require.NoError(t, err)

	assert.Equal(t, models.StatusAssigned, detail.Complaint.Status)
	assert.Equal(t, models.DeptPolice, detail.Complaint.Department)

	require.Len(t, detail.History, 2)
	assert.Equal(t, "Status changed to Assigned", detail.History[1].Action)
	assert.Equal(t, string(models.StatusOpen), detail.History[1].OldStatus.String)
	assert.Equal(t, string(models.StatusAssigned), detail.History[1].NewStatus.String)

	require.Len(t, detail.Remarks, 1)
	assert.Equal(t, models.VisibilityInternal, detail.Remarks[0].Visibility)

	// assignment notification for the department team
	deptNotifs, err := store.NotificationsForRole(ctx, models.RoleDepartmentTeam, 0)
	require.NoError(t, err)
	require.Len(t, deptNotifs, 2)
	assert.Equal(t, models.NotificationRemark, deptNotifs[0].Type)
	assert.Equal(t, models.NotificationAssignment, deptNotifs[1].Type)
	assert.Contains(t, deptNotifs[1].Message, "BG-1")

	// tag notification for the mentioned role
	spNotifs, err := store.NotificationsForRole(ctx, models.RolePoliceSP, 0)
	require.NoError(t, err)
	require.Len(t, spNotifs, 1)
	assert.Equal(t, models.NotificationTag, spNotifs[0].Type)

	assert.True(t, store.unreadRoles[models.RoleDepartmentTeam])
	assert.True(t, store.unreadRoles[models.RolePoliceSP])
}

func TestUpdateComplaintUnmappedValuesLeaveFieldsUnchanged(t *testing.T) {
	engine, _ := newEngine(t)
	ctx := context.Background()

	created, err := engine.CreateComplaint(ctx, &models.CreateComplaintRequest{
		Title:      "Water contamination in ward 4",
		Department: strPtr("Health Department"),
	}, collector)
	require.NoError(t, err)

	detail, err := engine.UpdateComplaint(ctx, created.ID, &models.UpdateComplaintRequest{
		Status:     strPtr("Closed"),
		Priority:   strPtr("Urgent"),
		Department: strPtr("Space Department"),
	}, collector)
	require.NoError(t, err)

	assert.Equal(t, models.StatusOpen, detail.Complaint.Status)
	assert.Equal(t, models.PriorityNormal, detail.Complaint.Priority)
	assert.Equal(t, models.DeptHealth, detail.Complaint.Department)
	// no status change, so no extra history
	assert.Len(t, detail.History, 1)
}

func TestUpdateComplaintNotFound(t *testing.T) {
	engine, _ := newEngine(t)

	_, err := engine.UpdateComplaint(context.Background(), 404, &models.UpdateComplaintRequest{}, collector)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestListComplaintsPaging(t *testing.T) {
	engine, store := newEngine(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		seedComplaint(t, store, &models.Complaint{Title: "c", Status: models.StatusOpen})
	}

	page, err := engine.ListComplaints(ctx, models.ComplaintFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.TotalCount)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Len(t, page.Items, 20)

	page, err = engine.ListComplaints(ctx, models.ComplaintFilter{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)

	// limit is capped
	page, err = engine.ListComplaints(ctx, models.ComplaintFilter{Limit: 10000})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)
}

func TestNotificationServiceMarkRead(t *testing.T) {
	store := newFakeStore()
	svc := service.NewNotificationService(store)
	ctx := context.Background()

	require.NoError(t, store.CreateNotification(ctx, &models.Notification{
		TargetRole: models.RoleCollectorTeam,
		Type:       models.NotificationRemark,
		Title:      "New Remark",
	}))
	require.NoError(t, store.MarkRoleUnread(ctx, models.RoleCollectorTeam))

	notifs, err := svc.NotificationsForRole(ctx, models.RoleCollectorTeam, 0)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.False(t, notifs[0].IsRead)

	require.NoError(t, svc.MarkRead(ctx, models.RoleCollectorTeam))

	notifs, err = svc.NotificationsForRole(ctx, models.RoleCollectorTeam, 0)
	require.NoError(t, err)
	assert.True(t, notifs[0].IsRead)
	assert.False(t, store.unreadRoles[models.RoleCollectorTeam])
}
