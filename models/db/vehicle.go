package dbmodels

import (
	"fleet-tools-backend/models"
	"time"
)

type Vehicle struct {
	BaseModel
	RegNumber      string `gorm:"type:varchar(20);uniqueIndex"`
	Make           string `gorm:"type:varchar(100)"`
	Model          string `gorm:"type:varchar(100)"`
	Year           int
	Mileage        int
	Status         models.VehicleStatus `gorm:"type:varchar(50)"`
	AssignedUserID *string              `gorm:"type:varchar(36);index"`
	AssignedUser   *User                `gorm:"foreignKey:AssignedUserID"`
}

// VehicleAssignment окно закрепления ТС за сотрудником, открытое окно имеет пустую дату окончания
type VehicleAssignment struct {
	BaseModel
	VehicleID string     `gorm:"type:varchar(36);index"`
	Vehicle   *Vehicle   `gorm:"foreignKey:VehicleID"`
	UserID    string     `gorm:"type:varchar(36);index"`
	User      *User      `gorm:"foreignKey:UserID"`
	StartDate time.Time
	EndDate   *time.Time
}
