package vehicleapimodels

import (
	"fmt"
	"strings"
	"time"

	"fleet-tools-backend/models"
	apimodels "fleet-tools-backend/models/api"
	dbmodels "fleet-tools-backend/models/db"

	"github.com/pkg/errors"
)

type VehicleData struct {
	RegNumber string               `json:"reg_number"`
	Make      string               `json:"make"`
	Model     string               `json:"model"`
	Year      int                  `json:"year"`
	Mileage   int                  `json:"mileage"`
	Status    models.VehicleStatus `json:"status"`
}

func (v VehicleData) Validate() error {
	if v.RegNumber == "" {
		return errors.New("отсутствует регистрационный номер")
	}
	if v.Make == "" || v.Model == "" {
		return errors.New("отсутствует марка или модель")
	}
	if v.Status != "" && !v.Status.IsValid() {
		return errors.Errorf("неизвестный статус: %v", v.Status)
	}
	return nil
}

type VehicleFilter struct {
	apimodels.Pagination
	Status models.VehicleStatus `json:"status"`
}

type VehicleView struct {
	ID             string               `json:"id"`
	RegNumber      string               `json:"reg_number"`
	Make           string               `json:"make"`
	Model          string               `json:"model"`
	Year           int                  `json:"year"`
	Mileage        int                  `json:"mileage"`
	Status         models.VehicleStatus `json:"status"`
	StatusName     string               `json:"status_name"`
	AssignedUserID string               `json:"assigned_user_id,omitempty"`
	AssignedUser   string               `json:"assigned_user,omitempty"`
}

func VehicleConvert(rec dbmodels.Vehicle) VehicleView {
	view := VehicleView{
		ID:         rec.ID,
		RegNumber:  rec.RegNumber,
		Make:       rec.Make,
		Model:      rec.Model,
		Year:       rec.Year,
		Mileage:    rec.Mileage,
		Status:     rec.Status,
		StatusName: rec.Status.ToHuman(),
	}
	if rec.AssignedUserID != nil {
		view.AssignedUserID = *rec.AssignedUserID
	}
	if rec.AssignedUser != nil {
		view.AssignedUser = strings.TrimSpace(fmt.Sprintf("%v %v", rec.AssignedUser.FirstName, rec.AssignedUser.LastName))
	}
	return view
}

type AssignmentView struct {
	ID        string     `json:"id"`
	VehicleID string     `json:"vehicle_id"`
	UserID    string     `json:"user_id"`
	UserName  string     `json:"user_name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func AssignmentConvert(rec dbmodels.VehicleAssignment) AssignmentView {
	userName := ""
	if rec.User != nil {
		userName = strings.TrimSpace(fmt.Sprintf("%v %v", rec.User.FirstName, rec.User.LastName))
	}
	return AssignmentView{
		ID:        rec.ID,
		VehicleID: rec.VehicleID,
		UserID:    rec.UserID,
		UserName:  userName,
		StartDate: rec.StartDate,
		EndDate:   rec.EndDate,
	}
}
