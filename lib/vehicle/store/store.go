package vehiclestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "fleet-tools-backend/models/db"
	vehicleapimodels "fleet-tools-backend/models/api/vehicle"
)

type Provider interface {
	Create(rec dbmodels.Vehicle) (id string, err error)
	GetByID(id string) (rec *dbmodels.Vehicle, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(filter vehicleapimodels.VehicleFilter) (list []dbmodels.Vehicle, err error)
	ListCount(filter vehicleapimodels.VehicleFilter) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Vehicle) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Vehicle, error) {
	rec := dbmodels.Vehicle{}
	err := i.db.
		Where("id = ?", id).
		Preload(clause.Associations).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Vehicle{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Vehicle{}).
		Error
}

func (i impl) applyFilter(tx *gorm.DB, filter vehicleapimodels.VehicleFilter) *gorm.DB {
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	return tx
}

func (i impl) List(filter vehicleapimodels.VehicleFilter) (list []dbmodels.Vehicle, err error) {
	list = []dbmodels.Vehicle{}
	page, limit := filter.GetPage()
	tx := i.applyFilter(i.db.Model(dbmodels.Vehicle{}), filter).
		Preload(clause.Associations).
		Offset((page - 1) * limit).
		Limit(limit).
		Order("reg_number")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter vehicleapimodels.VehicleFilter) (int64, error) {
	var count int64
	err := i.applyFilter(i.db.Model(dbmodels.Vehicle{}), filter).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
