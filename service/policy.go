package service

import (
	"fmt"

	"jansunwai/models"
)

// Draft is a notification decided by the policy but not yet persisted.
type Draft struct {
	TargetRole models.Role
	Type       models.NotificationType
	Title      string
	Message    string
}

// StatusTransitionEvent describes a status change on a complaint.
type StatusTransitionEvent struct {
	ComplaintID int64
	DisplayID   string
	OldStatus   models.Status
	NewStatus   models.Status
	ActorID     int64
}

// RemarkEvent describes a remark added to a complaint.
type RemarkEvent struct {
	ComplaintID int64
	DisplayID   string
	Status      models.Status
	Visibility  models.Visibility
	ActorRole   models.Role
	Department  models.Department
	TaggedRoles []models.Role
}

type transitionKey struct {
	from models.Status
	to   models.Status
}

type transitionRule struct {
	target models.Role
	typ    models.NotificationType
	title  string
	// message receives the complaint display id
	message string
}

// transitionRules is the fixed table of transitions that raise a
// notification. All other transitions are intentionally silent; this is not
// a notify-on-every-change system.
var transitionRules = map[transitionKey]transitionRule{
	{models.StatusOpen, models.StatusAssigned}: {
		target:  models.RoleDepartmentTeam,
		typ:     models.NotificationAssignment,
		title:   "Complaint Assigned",
		message: "Complaint %s has been assigned to your department",
	},
	{models.StatusAssigned, models.StatusNeedDetails}: {
		target:  models.RoleCollectorTeam,
		typ:     models.NotificationStatusChange,
		title:   "Details Needed",
		message: "Complaint %s requires more details",
	},
}

// statusNotifyRole maps the complaint's current status to the role that
// handles remarks in that state. Open-side statuses route to the collector
// team, department-side statuses to the department team. The table is total
// over the seven statuses.
var statusNotifyRole = map[models.Status]models.Role{
	models.StatusOpen:        models.RoleCollectorTeam,
	models.StatusInvalid:     models.RoleCollectorTeam,
	models.StatusNeedDetails: models.RoleCollectorTeam,
	models.StatusAssigned:    models.RoleDepartmentTeam,
	models.StatusInProgress:  models.RoleDepartmentTeam,
	models.StatusResolved:    models.RoleDepartmentTeam,
	models.StatusBacklog:     models.RoleDepartmentTeam,
}

// DecideTransition returns the notifications to raise for a status
// transition. Untracked transitions return nil.
func DecideTransition(ev StatusTransitionEvent) []Draft {
	rule, ok := transitionRules[transitionKey{ev.OldStatus, ev.NewStatus}]
	if !ok {
		return nil
	}
	return []Draft{{
		TargetRole: rule.target,
		Type:       rule.typ,
		Title:      rule.title,
		Message:    fmt.Sprintf(rule.message, ev.DisplayID),
	}}
}

// DecideRemark returns the notifications to raise for a remark event:
//
//  1. A stakeholder remark on a complaint with an assigned department
//     notifies the department team, naming the department.
//  2. The current status routes one REMARK notification through
//     statusNotifyRole, unless step 1 already targeted the same role.
//  3. Every tagged role receives a TAG notification, never de-duplicated
//     against the status-based recipients.
func DecideRemark(ev RemarkEvent) []Draft {
	var drafts []Draft

	deptNotified := false
	if IsStakeholderRole(ev.ActorRole) && ev.Department != "" {
		drafts = append(drafts, Draft{
			TargetRole: models.RoleDepartmentTeam,
			Type:       models.NotificationRemark,
			Title:      "New Remark",
			Message: fmt.Sprintf("%s added a remark on complaint %s (%s)",
				RoleDisplayName(ev.ActorRole), ev.DisplayID, DepartmentToExternal(ev.Department)),
		})
		deptNotified = true
	}

	if statusRole := statusNotifyRole[ev.Status]; !(deptNotified && statusRole == models.RoleDepartmentTeam) {
		drafts = append(drafts, Draft{
			TargetRole: statusRole,
			Type:       models.NotificationRemark,
			Title:      "New Remark",
			Message:    fmt.Sprintf("New remark on complaint %s", ev.DisplayID),
		})
	}

	for _, tagged := range ev.TaggedRoles {
		drafts = append(drafts, Draft{
			TargetRole: tagged,
			Type:       models.NotificationTag,
			Title:      "You were tagged",
			Message:    fmt.Sprintf("You were tagged in a remark on complaint %s", ev.DisplayID),
		})
	}

	return drafts
}
