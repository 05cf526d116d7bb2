package workflowapimodels

import (
	"fmt"
	"strings"
	"time"

	"fleet-tools-backend/models"
	apimodels "fleet-tools-backend/models/api"
	dbmodels "fleet-tools-backend/models/db"

	"github.com/pkg/errors"
)

type RequestCreateData struct {
	Kind          models.RequestKind `json:"kind"`
	VehicleID     string             `json:"vehicle_id"`
	Description   string             `json:"description"`
	EstimatedCost *float64           `json:"estimated_cost"`
	Reason        string             `json:"reason"`
}

func (v RequestCreateData) Validate() error {
	if !v.Kind.IsValid() {
		return errors.Errorf("неизвестный тип заявки: %v", v.Kind)
	}
	if v.VehicleID == "" {
		return errors.New("отсутствует идентификатор транспортного средства")
	}
	if v.Kind == models.KindMaintenance && v.Description == "" {
		return errors.New("отсутствует описание работ")
	}
	if v.Kind == models.KindAssignment && v.Reason == "" {
		return errors.New("отсутствует обоснование закрепления")
	}
	if v.EstimatedCost != nil && *v.EstimatedCost < 0 {
		return errors.New("оценка стоимости не может быть отрицательной")
	}
	return nil
}

type ProcessStageData struct {
	Comments   string   `json:"comments"`
	CostUpdate *float64 `json:"cost_update"`
}

func (v ProcessStageData) Validate() error {
	if v.CostUpdate != nil && *v.CostUpdate < 0 {
		return errors.New("стоимость не может быть отрицательной")
	}
	return nil
}

type RejectData struct {
	Reason string `json:"reason"`
}

func (v RejectData) Validate() error {
	if v.Reason == "" {
		return errors.New("отсутствует причина отклонения")
	}
	return nil
}

type InvalidateData struct {
	Comment string `json:"comment"`
}

func (v InvalidateData) Validate() error {
	if v.Comment == "" {
		return errors.New("отсутствует комментарий")
	}
	return nil
}

type RequestFilter struct {
	apimodels.Pagination
	Kind       models.RequestKind `json:"kind"`
	Department models.Department  `json:"department"`
	VehicleID  string             `json:"vehicle_id"`
}

type SubmitResult struct {
	RequestID    string               `json:"request_id"`
	RouteID      string               `json:"route_id"`
	CurrentStage models.ApprovalStage `json:"current_stage"`
	Status       models.RequestStatus `json:"status"`
}

type StageComments struct {
	Stage     models.ApprovalStage `json:"stage"`
	StageName string               `json:"stage_name"`
	Comments  []CommentView        `json:"comments"`
}

type CommentView struct {
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

type ProcessStageResult struct {
	CurrentStage  models.ApprovalStage `json:"current_stage"`
	Status        models.RequestStatus `json:"status"`
	HistoryID     string               `json:"history_id,omitempty"`
	StageComments []StageComments      `json:"stage_comments"`
}

type RequestView struct {
	ID             string               `json:"id"`
	Kind           models.RequestKind   `json:"kind"`
	KindName       string               `json:"kind_name"`
	RequestedByID  string               `json:"requested_by_id"`
	RequestedBy    string               `json:"requested_by"`
	VehicleID      string               `json:"vehicle_id"`
	VehicleReg     string               `json:"vehicle_reg"`
	Department     models.Department    `json:"department"`
	DepartmentName string               `json:"department_name"`
	RouteID        string               `json:"route_id"`
	CurrentStage   models.ApprovalStage `json:"current_stage"`
	StageName      string               `json:"stage_name"`
	Status         models.RequestStatus `json:"status"`
	StatusName     string               `json:"status_name"`
	RequestDate    time.Time            `json:"request_date"`
	Description    string               `json:"description"`
	EstimatedCost  *float64             `json:"estimated_cost"`
	Reason         string               `json:"reason"`
}

func RequestConvert(rec dbmodels.WorkflowRequest) RequestView {
	requestedBy := ""
	if rec.RequestedBy != nil {
		requestedBy = strings.TrimSpace(fmt.Sprintf("%v %v", rec.RequestedBy.FirstName, rec.RequestedBy.LastName))
	}
	vehicleReg := ""
	if rec.Vehicle != nil {
		vehicleReg = rec.Vehicle.RegNumber
	}
	return RequestView{
		ID:             rec.ID,
		Kind:           rec.Kind,
		KindName:       rec.Kind.ToHuman(),
		RequestedByID:  rec.RequestedByID,
		RequestedBy:    requestedBy,
		VehicleID:      rec.VehicleID,
		VehicleReg:     vehicleReg,
		Department:     rec.Department,
		DepartmentName: rec.Department.ToHuman(),
		RouteID:        rec.RouteID,
		CurrentStage:   rec.CurrentStage,
		StageName:      rec.CurrentStage.ToHuman(),
		Status:         rec.Status,
		StatusName:     rec.Status.ToHuman(),
		RequestDate:    rec.RequestDate,
		Description:    rec.Description,
		EstimatedCost:  rec.EstimatedCost,
		Reason:         rec.Reason,
	}
}

// StageActionView завершенное действие по этапу
type StageActionView struct {
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	Comment       string    `json:"comment"`
	IsAutoSkipped bool      `json:"is_auto_skipped"`
	Date          time.Time `json:"date"`
}

// PendingActionView ожидаемое действие ответственного на текущем этапе
type PendingActionView struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	IsPending bool   `json:"is_pending"`
}

type StageStatusView struct {
	Stage     models.ApprovalStage `json:"stage"`
	StageName string               `json:"stage_name"`
	Completed []StageActionView    `json:"completed"`
}

type WorkflowStatusView struct {
	Request        RequestView         `json:"request"`
	Stages         []StageStatusView   `json:"stages"`
	PendingActions []PendingActionView `json:"pending_actions"`
}

type HistoryView struct {
	ID                string               `json:"id"`
	OriginalRequestID string               `json:"original_request_id"`
	Kind              models.RequestKind   `json:"kind"`
	KindName          string               `json:"kind_name"`
	RequestedByID     string               `json:"requested_by_id"`
	RequestedBy       string               `json:"requested_by"`
	VehicleID         string               `json:"vehicle_id"`
	Department        models.Department    `json:"department"`
	Status            models.RequestStatus `json:"status"`
	StatusName        string               `json:"status_name"`
	RequestDate       time.Time            `json:"request_date"`
	CompletionDate    time.Time            `json:"completion_date"`
	Description       string               `json:"description"`
	FinalCost         *float64             `json:"final_cost"`
	Reason            string               `json:"reason"`
	ApprovalComments  string               `json:"approval_comments"`
}

func HistoryConvert(rec dbmodels.RequestHistory) HistoryView {
	requestedBy := ""
	if rec.RequestedBy != nil {
		requestedBy = strings.TrimSpace(fmt.Sprintf("%v %v", rec.RequestedBy.FirstName, rec.RequestedBy.LastName))
	}
	return HistoryView{
		ID:                rec.ID,
		OriginalRequestID: rec.OriginalRequestID,
		Kind:              rec.Kind,
		KindName:          rec.Kind.ToHuman(),
		RequestedByID:     rec.RequestedByID,
		RequestedBy:       requestedBy,
		VehicleID:         rec.VehicleID,
		Department:        rec.Department,
		Status:            rec.Status,
		StatusName:        rec.Status.ToHuman(),
		RequestDate:       rec.RequestDate,
		CompletionDate:    rec.CompletionDate,
		Description:       rec.Description,
		FinalCost:         rec.FinalCost,
		Reason:            rec.Reason,
		ApprovalComments:  rec.ApprovalComments,
	}
}

type AttachmentView struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
}

func AttachmentConvert(rec dbmodels.RequestAttachment) AttachmentView {
	return AttachmentView{
		ID:          rec.ID,
		FileName:    rec.FileName,
		ContentType: rec.ContentType,
		FileSize:    rec.FileSize,
		CreatedAt:   rec.CreatedAt,
	}
}
