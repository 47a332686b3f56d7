package service

import "jansunwai/models"

// Pure lookup tables between the external (UI-facing) vocabulary and the
// internal stored vocabulary. Lookups that miss return the zero value, never
// an error: callers treat an unmapped department/priority as "leave
// unchanged". The status tables are total in both directions over the seven
// statuses.

var statusToInternal = map[string]models.Status{
	"Open":         models.StatusOpen,
	"Assigned":     models.StatusAssigned,
	"In Progress":  models.StatusInProgress,
	"Resolved":     models.StatusResolved,
	"Backlog":      models.StatusBacklog,
	"Need Details": models.StatusNeedDetails,
	"Invalid":      models.StatusInvalid,
}

var statusToExternal = map[models.Status]string{
	models.StatusOpen:        "Open",
	models.StatusAssigned:    "Assigned",
	models.StatusInProgress:  "In Progress",
	models.StatusResolved:    "Resolved",
	models.StatusBacklog:     "Backlog",
	models.StatusNeedDetails: "Need Details",
	models.StatusInvalid:     "Invalid",
}

var priorityToInternal = map[string]models.Priority{
	"Normal": models.PriorityNormal,
	"High":   models.PriorityHigh,
}

var priorityToExternal = map[models.Priority]string{
	models.PriorityNormal: "Normal",
	models.PriorityHigh:   "High",
}

var departmentToInternal = map[string]models.Department{
	"Public Works Department I":     models.DeptPWD1,
	"Public Works Department II":    models.DeptPWD2,
	"Zilla Parishad Gondia":         models.DeptZPGondia,
	"Nagar Parishad":                models.DeptNagarParishad,
	"MSEB":                          models.DeptMSEB,
	"Water Supply Department":       models.DeptWaterSupply,
	"Health Department":             models.DeptHealth,
	"Education Department":          models.DeptEducation,
	"Police Department":             models.DeptPolice,
	"RTO":                           models.DeptRTO,
	"Agriculture Department":        models.DeptAgriculture,
	"Irrigation Department":         models.DeptIrrigation,
	"Forest Department":             models.DeptForest,
	"Revenue Department":            models.DeptRevenue,
	"Food Supply Department":        models.DeptFoodSupply,
	"Social Welfare Department":     models.DeptSocialWelfare,
	"Tribal Development Department": models.DeptTribalDev,
	"Mining Department":             models.DeptMining,
	"Excise Department":             models.DeptExcise,
	"Town Planning Department":      models.DeptTownPlanning,
}

var departmentToExternal = invertDepartments()

func invertDepartments() map[models.Department]string {
	m := make(map[models.Department]string, len(departmentToInternal))
	for name, dept := range departmentToInternal {
		m[dept] = name
	}
	return m
}

// roleDisplayNames maps each canonical role to its display name, which is
// also the vocabulary recognized by the tag extractor.
var roleDisplayNames = map[models.Role]string{
	models.RoleUser:                  "User",
	models.RoleCollectorTeam:         "Collector Team",
	models.RoleCollectorTeamAdvanced: "Collector Team Advanced",
	models.RoleDistrictCollector:     "District Collector",
	models.RolePoliceSP:              "Police Superintendent",
	models.RoleDepartmentTeam:        "Department Team",
	models.RoleMPGondia:              "MP Gondia",
	models.RoleMLCGondia:             "MLC Gondia",
	models.RoleMLAGondia:             "MLA Gondia",
	models.RoleMLATirora:             "MLA Tirora",
	models.RoleMLAAmgaon:             "MLA Amgaon",
	models.RoleMLAArjuniMorgaon:      "MLA Arjuni Morgaon",
	models.RoleMLASadakArjuni:        "MLA Sadak Arjuni",
}

var roleByDisplayName = invertRoles()

func invertRoles() map[string]models.Role {
	m := make(map[string]models.Role, len(roleDisplayNames))
	for role, name := range roleDisplayNames {
		m[name] = role
	}
	return m
}

// stakeholderRoles is the fixed set of collector/oversight roles whose
// remarks notify the assigned department and may fan out to tagged roles.
var stakeholderRoles = map[models.Role]bool{
	models.RoleCollectorTeam:         true,
	models.RoleCollectorTeamAdvanced: true,
	models.RoleDistrictCollector:     true,
	models.RolePoliceSP:              true,
	models.RoleMPGondia:              true,
	models.RoleMLCGondia:             true,
	models.RoleMLAGondia:             true,
	models.RoleMLATirora:             true,
	models.RoleMLAAmgaon:             true,
	models.RoleMLAArjuniMorgaon:      true,
	models.RoleMLASadakArjuni:        true,
}

// StatusToInternal maps an external status label to the stored status. The
// boolean reports whether the label was recognized.
func StatusToInternal(external string) (models.Status, bool) {
	s, ok := statusToInternal[external]
	return s, ok
}

// StatusToExternal maps a stored status to its external label. The table is
// total, so every valid status maps.
func StatusToExternal(s models.Status) string {
	return statusToExternal[s]
}

// PriorityToInternal maps an external priority label; a miss returns the
// empty sentinel (leave unchanged).
func PriorityToInternal(external string) models.Priority {
	return priorityToInternal[external]
}

// PriorityToExternal maps a stored priority to its external label.
func PriorityToExternal(p models.Priority) string {
	return priorityToExternal[p]
}

// DepartmentToInternal maps an external department name; a miss returns the
// empty sentinel (absent), never an error.
func DepartmentToInternal(external string) models.Department {
	return departmentToInternal[external]
}

// DepartmentToExternal maps a stored department code to its display name.
func DepartmentToExternal(d models.Department) string {
	return departmentToExternal[d]
}

// RoleDisplayName returns the display name for a role, falling back to the
// raw identifier for roles outside the table.
func RoleDisplayName(r models.Role) string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return string(r)
}

// RoleByDisplayName resolves a display name to its canonical role.
func RoleByDisplayName(name string) (models.Role, bool) {
	r, ok := roleByDisplayName[name]
	return r, ok
}

// IsStakeholderRole reports whether r is one of the fixed
// collector/oversight roles.
func IsStakeholderRole(r models.Role) bool {
	return stakeholderRoles[r]
}
