package dbmodels

import (
	"fleet-tools-backend/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WorkflowRequest заявка, проходящая согласование: обслуживание или закрепление ТС
type WorkflowRequest struct {
	BaseModel
	Kind          models.RequestKind   `gorm:"type:varchar(50);index"`
	RequestedByID string               `gorm:"type:varchar(36);index"`
	RequestedBy   *User                `gorm:"foreignKey:RequestedByID"`
	VehicleID     string               `gorm:"type:varchar(36);index"`
	Vehicle       *Vehicle             `gorm:"foreignKey:VehicleID"`
	Department    models.Department    `gorm:"type:varchar(50)"`
	RouteID       string               `gorm:"type:varchar(36);index"`
	Route         *ApprovalRoute       `gorm:"foreignKey:RouteID"`
	CurrentStage  models.ApprovalStage `gorm:"type:varchar(50)"`
	Status        models.RequestStatus `gorm:"type:varchar(50);index"`
	RequestDate   time.Time
	Description   string
	EstimatedCost *float64
	Reason        string
	Transactions  []WorkflowTransaction `gorm:"foreignKey:RequestID"`
	Attachments   []RequestAttachment   `gorm:"foreignKey:RequestID"`
}

// WorkflowTransaction запись журнала: пользователь завершил этап по заявке
type WorkflowTransaction struct {
	BaseModel
	RequestID     string               `gorm:"type:varchar(36);index;uniqueIndex:idx_request_user_stage"`
	UserID        string               `gorm:"type:varchar(36);uniqueIndex:idx_request_user_stage"`
	User          *User                `gorm:"foreignKey:UserID"`
	Stage         models.ApprovalStage `gorm:"type:varchar(50);uniqueIndex:idx_request_user_stage"`
	Comments      string
	IsCompleted   bool
	IsAutoSkipped bool
}

type RequestAttachment struct {
	BaseModel
	RequestID   string `gorm:"type:varchar(36);index"`
	FileName    string `gorm:"type:varchar(255)"`
	ObjectKey   string `gorm:"type:varchar(255)"`
	ContentType string `gorm:"type:varchar(100)"`
	FileSize    int64
}

func (v *WorkflowRequest) AfterDelete(tx *gorm.DB) (err error) {
	if v.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("request_id = ?", v.ID).Delete(&WorkflowTransaction{})
	return
}
