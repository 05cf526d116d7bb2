package usersapimodels

import (
	"fleet-tools-backend/models"
	dbmodels "fleet-tools-backend/models/db"

	"github.com/pkg/errors"
)

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (v LoginData) Validate() error {
	if v.Email == "" {
		return errors.New("отсутствует email")
	}
	if v.Password == "" {
		return errors.New("отсутствует пароль")
	}
	return nil
}

type UserCreateData struct {
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	Email       string            `json:"email"`
	Password    string            `json:"password"`
	PhoneNumber string            `json:"phone_number"`
	Department  models.Department `json:"department"`
	Role        models.UserRole   `json:"role"`
}

func (v UserCreateData) Validate() error {
	if v.Email == "" {
		return errors.New("отсутствует email")
	}
	if v.Password == "" {
		return errors.New("отсутствует пароль")
	}
	if v.FirstName == "" || v.LastName == "" {
		return errors.New("отсутствует имя или фамилия")
	}
	if !v.Department.IsValid() {
		return errors.Errorf("неизвестное подразделение: %v", v.Department)
	}
	if !v.Role.IsValid() {
		return errors.Errorf("неизвестная роль: %v", v.Role)
	}
	return nil
}

type UserUpdateData struct {
	FirstName   *string            `json:"first_name"`
	LastName    *string            `json:"last_name"`
	Password    *string            `json:"password"`
	PhoneNumber *string            `json:"phone_number"`
	Department  *models.Department `json:"department"`
	Role        *models.UserRole   `json:"role"`
	IsActive    *bool              `json:"is_active"`
}

type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserView struct {
	ID             string            `json:"id"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          string            `json:"email"`
	Department     models.Department `json:"department"`
	DepartmentName string            `json:"department_name"`
	Role           models.UserRole   `json:"role"`
	RoleName       string            `json:"role_name"`
	IsActive       bool              `json:"is_active"`
}

func UserConvert(rec dbmodels.User) UserView {
	return UserView{
		ID:             rec.ID,
		FirstName:      rec.FirstName,
		LastName:       rec.LastName,
		Email:          rec.Email,
		Department:     rec.Department,
		DepartmentName: rec.Department.ToHuman(),
		Role:           rec.Role,
		RoleName:       rec.Role.ToHuman(),
		IsActive:       rec.IsActive,
	}
}
