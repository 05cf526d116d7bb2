package workflowapimodels

import (
	"fmt"
	"strings"

	"fleet-tools-backend/models"
	dbmodels "fleet-tools-backend/models/db"

	"github.com/pkg/errors"
)

type RoleAssignmentData struct {
	UserID string               `json:"user_id"`
	Role   models.ApprovalStage `json:"role"`
}

func (a RoleAssignmentData) Validate() error {
	if a.UserID == "" {
		return errors.New("отсутствует идентификатор пользователя")
	}
	// роль принимается в любом регистре, терминальный этап не назначается
	for _, stage := range models.RouteStages() {
		if stage.Equal(a.Role) {
			return nil
		}
	}
	return errors.Errorf("недопустимая роль этапа: %v", a.Role)
}

type ApprovalRouteData struct {
	Name            string               `json:"name"`
	Department      models.Department    `json:"department"`
	Description     string               `json:"description"`
	RoleAssignments []RoleAssignmentData `json:"role_assignments"`
}

func (v ApprovalRouteData) Validate() error {
	if v.Name == "" {
		return errors.New("отсутствует наименование маршрута")
	}
	if !v.Department.IsValid() {
		return errors.Errorf("неизвестное подразделение: %v", v.Department)
	}
	for _, item := range v.RoleAssignments {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type RoleAssignmentView struct {
	RoleAssignmentData
	UserName string `json:"user_name"`
	RoleName string `json:"role_name"`
	Position int    `json:"position"`
}

type ApprovalRouteView struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Department      models.Department    `json:"department"`
	DepartmentName  string               `json:"department_name"`
	Description     string               `json:"description"`
	RoleAssignments []RoleAssignmentView `json:"role_assignments"`
}

func ApprovalRouteConvert(rec dbmodels.ApprovalRoute) ApprovalRouteView {
	assignments := make([]RoleAssignmentView, 0, len(rec.RoleAssignments))
	for _, ra := range rec.RoleAssignments {
		userName := ""
		if ra.User != nil {
			userName = strings.TrimSpace(fmt.Sprintf("%v %v", ra.User.FirstName, ra.User.LastName))
		}
		assignments = append(assignments, RoleAssignmentView{
			RoleAssignmentData: RoleAssignmentData{
				UserID: ra.UserID,
				Role:   ra.Role,
			},
			UserName: userName,
			RoleName: ra.Role.ToHuman(),
			Position: ra.Position,
		})
	}
	return ApprovalRouteView{
		ID:              rec.ID,
		Name:            rec.Name,
		Department:      rec.Department,
		DepartmentName:  rec.Department.ToHuman(),
		Description:     rec.Description,
		RoleAssignments: assignments,
	}
}
