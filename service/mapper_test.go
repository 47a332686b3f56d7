package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jansunwai/models"
	"jansunwai/service"
)

// TestStatusRoundTrip verifies every status maps to an external label and
// back to the same status.
func TestStatusRoundTrip(t *testing.T) {
	for _, status := range models.AllStatuses {
		label := service.StatusToExternal(status)
		assert.NotEmpty(t, label, "status %s has no external label", status)

		back, ok := service.StatusToInternal(label)
		assert.True(t, ok, "label %q did not map back", label)
		assert.Equal(t, status, back)
	}
}

func TestStatusToInternalLabels(t *testing.T) {
	tests := []struct {
		label string
		want  models.Status
	}{
		{"Open", models.StatusOpen},
		{"Assigned", models.StatusAssigned},
		{"In Progress", models.StatusInProgress},
		{"Resolved", models.StatusResolved},
		{"Backlog", models.StatusBacklog},
		{"Need Details", models.StatusNeedDetails},
		{"Invalid", models.StatusInvalid},
	}
	for _, tt := range tests {
		got, ok := service.StatusToInternal(tt.label)
		assert.True(t, ok, tt.label)
		assert.Equal(t, tt.want, got)
	}
}

func TestStatusToInternalUnknownLabel(t *testing.T) {
	_, ok := service.StatusToInternal("Closed")
	assert.False(t, ok)

	// case sensitive on purpose
	_, ok = service.StatusToInternal("open")
	assert.False(t, ok)
}

func TestPriorityMapping(t *testing.T) {
	assert.Equal(t, models.PriorityNormal, service.PriorityToInternal("Normal"))
	assert.Equal(t, models.PriorityHigh, service.PriorityToInternal("High"))
	assert.Equal(t, "Normal", service.PriorityToExternal(models.PriorityNormal))
	assert.Equal(t, "High", service.PriorityToExternal(models.PriorityHigh))

	// unmapped labels return the empty sentinel, not an error
	assert.Equal(t, models.Priority(""), service.PriorityToInternal("Urgent"))
}

func TestDepartmentMapping(t *testing.T) {
	assert.Equal(t, models.DeptPWD1, service.DepartmentToInternal("Public Works Department I"))
	assert.Equal(t, models.DeptMSEB, service.DepartmentToInternal("MSEB"))
	assert.Equal(t, "Water Supply Department", service.DepartmentToExternal(models.DeptWaterSupply))

	// unmapped names mean "leave unchanged"
	assert.Equal(t, models.Department(""), service.DepartmentToInternal("Space Department"))
}

func TestRoleDisplayNames(t *testing.T) {
	assert.Equal(t, "Collector Team", service.RoleDisplayName(models.RoleCollectorTeam))
	assert.Equal(t, "Collector Team Advanced", service.RoleDisplayName(models.RoleCollectorTeamAdvanced))
	assert.Equal(t, "MLA Sadak Arjuni", service.RoleDisplayName(models.RoleMLASadakArjuni))

	// unknown roles fall back to the raw identifier
	assert.Equal(t, "SOMETHING_ELSE", service.RoleDisplayName(models.Role("SOMETHING_ELSE")))

	role, ok := service.RoleByDisplayName("District Collector")
	assert.True(t, ok)
	assert.Equal(t, models.RoleDistrictCollector, role)

	_, ok = service.RoleByDisplayName("Mayor")
	assert.False(t, ok)
}

func TestStakeholderRoles(t *testing.T) {
	assert.True(t, service.IsStakeholderRole(models.RoleCollectorTeam))
	assert.True(t, service.IsStakeholderRole(models.RoleDistrictCollector))
	assert.True(t, service.IsStakeholderRole(models.RoleMPGondia))
	assert.True(t, service.IsStakeholderRole(models.RoleMLATirora))

	assert.False(t, service.IsStakeholderRole(models.RoleUser))
	assert.False(t, service.IsStakeholderRole(models.RoleDepartmentTeam))
}
