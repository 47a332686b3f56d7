package models

// Status is the stored complaint status. The external UI labels live in the
// service mapper; the database only ever sees these values.
type Status string

const (
	StatusOpen        Status = "OPEN"
	StatusAssigned    Status = "ASSIGNED"
	StatusInProgress  Status = "IN_PROGRESS"
	StatusResolved    Status = "RESOLVED"
	StatusBacklog     Status = "BACKLOG"
	StatusNeedDetails Status = "NEED_DETAILS"
	StatusInvalid     Status = "INVALID"
)

// AllStatuses lists every valid status, in lifecycle order.
var AllStatuses = []Status{
	StatusOpen,
	StatusAssigned,
	StatusInProgress,
	StatusResolved,
	StatusBacklog,
	StatusNeedDetails,
	StatusInvalid,
}

// Priority is the stored complaint priority.
type Priority string

const (
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
)

// Department is the stored department code. The empty value means
// unassigned.
type Department string

const (
	DeptPWD1          Department = "PWD_1"
	DeptPWD2          Department = "PWD_2"
	DeptZPGondia      Department = "ZP_GONDIA"
	DeptNagarParishad Department = "NAGAR_PARISHAD"
	DeptMSEB          Department = "MSEB"
	DeptWaterSupply   Department = "WATER_SUPPLY"
	DeptHealth        Department = "HEALTH"
	DeptEducation     Department = "EDUCATION"
	DeptPolice        Department = "POLICE"
	DeptRTO           Department = "RTO"
	DeptAgriculture   Department = "AGRICULTURE"
	DeptIrrigation    Department = "IRRIGATION"
	DeptForest        Department = "FOREST"
	DeptRevenue       Department = "REVENUE"
	DeptFoodSupply    Department = "FOOD_SUPPLY"
	DeptSocialWelfare Department = "SOCIAL_WELFARE"
	DeptTribalDev     Department = "TRIBAL_DEVELOPMENT"
	DeptMining        Department = "MINING"
	DeptExcise        Department = "EXCISE"
	DeptTownPlanning  Department = "TOWN_PLANNING"
)

// Role is a canonical actor role. Notifications target roles, not
// individual users.
type Role string

const (
	RoleUser                  Role = "USER"
	RoleCollectorTeam         Role = "COLLECTOR_TEAM"
	RoleCollectorTeamAdvanced Role = "COLLECTOR_TEAM_ADVANCED"
	RoleDistrictCollector     Role = "DISTRICT_COLLECTOR"
	RolePoliceSP              Role = "POLICE_SP"
	RoleDepartmentTeam        Role = "DEPARTMENT_TEAM"
	RoleMPGondia              Role = "MP_GONDIA"
	RoleMLCGondia             Role = "MLC_GONDIA"
	RoleMLAGondia             Role = "MLA_GONDIA"
	RoleMLATirora             Role = "MLA_TIRORA"
	RoleMLAAmgaon             Role = "MLA_AMGAON"
	RoleMLAArjuniMorgaon      Role = "MLA_ARJUNI_MORGAON"
	RoleMLASadakArjuni        Role = "MLA_SADAK_ARJUNI"
)

// NotificationType classifies why a notification was raised.
type NotificationType string

const (
	NotificationAssignment   NotificationType = "ASSIGNMENT"
	NotificationStatusChange NotificationType = "STATUS_CHANGE"
	NotificationRemark       NotificationType = "REMARK"
	NotificationTag          NotificationType = "TAG"
)

// Visibility controls who can see a remark.
type Visibility string

const (
	VisibilityPublic   Visibility = "PUBLIC"
	VisibilityInternal Visibility = "INTERNAL"
)

// MediaType classifies an attachment.
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
	MediaOther    MediaType = "other"
)
