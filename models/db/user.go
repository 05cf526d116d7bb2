package dbmodels

import (
	"fmt"
	"fleet-tools-backend/models"
	"time"
)

type User struct {
	BaseModel
	Password    string `gorm:"type:varchar(128)"`
	FirstName   string `gorm:"type:varchar(150)"`
	LastName    string `gorm:"type:varchar(150)"`
	Email       string `gorm:"type:varchar(255);index"`
	IsActive    bool
	PhoneNumber string            `gorm:"type:varchar(15)"`
	Department  models.Department `gorm:"type:varchar(50);index"`
	Role        models.UserRole   `gorm:"type:varchar(50)"`
	LastLogin   time.Time
}

func (r User) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}
