package assignmentstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "fleet-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.VehicleAssignment) (id string, err error)
	GetOpenByVehicle(vehicleID string) (rec *dbmodels.VehicleAssignment, err error)
	CloseWindow(id string, endDate time.Time) error
	ListByVehicle(vehicleID string) (list []dbmodels.VehicleAssignment, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.VehicleAssignment) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetOpenByVehicle(vehicleID string) (*dbmodels.VehicleAssignment, error) {
	rec := dbmodels.VehicleAssignment{}
	err := i.db.
		Where("vehicle_id = ?", vehicleID).
		Where("end_date IS NULL").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) CloseWindow(id string, endDate time.Time) error {
	return i.db.
		Model(&dbmodels.VehicleAssignment{}).
		Where("id = ?", id).
		Update("end_date", endDate).
		Error
}

func (i impl) ListByVehicle(vehicleID string) (list []dbmodels.VehicleAssignment, err error) {
	list = []dbmodels.VehicleAssignment{}
	err = i.db.
		Where("vehicle_id = ?", vehicleID).
		Preload(clause.Associations).
		Order("start_date desc").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
