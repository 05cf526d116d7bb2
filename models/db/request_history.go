package dbmodels

import (
	"fleet-tools-backend/models"
	"time"
)

// RequestHistory неизменяемый снимок заявки после завершения согласования
type RequestHistory struct {
	BaseModel
	OriginalRequestID string               `gorm:"type:varchar(36);uniqueIndex"`
	Kind              models.RequestKind   `gorm:"type:varchar(50);index"`
	RequestedByID     string               `gorm:"type:varchar(36);index"`
	RequestedBy       *User                `gorm:"foreignKey:RequestedByID"`
	VehicleID         string               `gorm:"type:varchar(36);index"`
	Vehicle           *Vehicle             `gorm:"foreignKey:VehicleID"`
	Department        models.Department    `gorm:"type:varchar(50)"`
	RouteID           string               `gorm:"type:varchar(36)"`
	Status            models.RequestStatus `gorm:"type:varchar(50);index"`
	RequestDate       time.Time
	Description       string
	FinalCost         *float64
	Reason            string
	CompletionDate    time.Time
	ApprovalComments  string
}
