package dbmodels

import (
	"fleet-tools-backend/models"
)

// ApprovalRoute маршрут согласования подразделения, единственный на подразделение
type ApprovalRoute struct {
	BaseModel
	Name            string                `gorm:"type:varchar(255)"`
	Department      models.Department     `gorm:"type:varchar(50);uniqueIndex"`
	Description     string
	RoleAssignments []RouteRoleAssignment `gorm:"foreignKey:RouteID"`
}

// RouteRoleAssignment назначение ответственного на этап маршрута
type RouteRoleAssignment struct {
	BaseModel
	RouteID  string               `gorm:"type:varchar(36);index"`
	UserID   string               `gorm:"type:varchar(36)"`
	User     *User                `gorm:"foreignKey:UserID"`
	Role     models.ApprovalStage `gorm:"type:varchar(50)"`
	Position int
}

// AssigneeForStage ответственные за этап, сравнение ролей без учета регистра
func (r ApprovalRoute) AssigneeForStage(stage models.ApprovalStage) []RouteRoleAssignment {
	result := make([]RouteRoleAssignment, 0, 1)
	for _, ra := range r.RoleAssignments {
		if ra.Role.Equal(stage) {
			result = append(result, ra)
		}
	}
	return result
}

// HasUserRole признак, что пользователь назначен на этап маршрута
func (r ApprovalRoute) HasUserRole(userID string, stage models.ApprovalStage) bool {
	for _, ra := range r.AssigneeForStage(stage) {
		if ra.UserID == userID {
			return true
		}
	}
	return false
}
