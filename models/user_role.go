package models

type UserRole string

const (
	FleetAdminRole UserRole = "FLEET_ADMIN_ROLE"
	EmployeeRole   UserRole = "EMPLOYEE_ROLE"
)

var roleHumanName = map[UserRole]string{
	FleetAdminRole: "Администратор автопарка",
	EmployeeRole:   "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == FleetAdminRole
}

func (r UserRole) IsValid() bool {
	_, exist := roleHumanName[r]
	return exist
}

const SystemUser = "Система"
