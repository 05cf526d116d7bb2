package historystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-tools-backend/models"
	workflowapimodels "fleet-tools-backend/models/api/workflow"
	dbmodels "fleet-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.RequestHistory) (id string, err error)
	GetByID(id string) (rec *dbmodels.RequestHistory, err error)
	GetByOriginalRequest(requestID string) (rec *dbmodels.RequestHistory, err error)
	UpdateStatus(id string, status models.RequestStatus, comment string) error
	List(filter workflowapimodels.RequestFilter) (list []dbmodels.RequestHistory, err error)
	ListCount(filter workflowapimodels.RequestFilter) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RequestHistory) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.RequestHistory, error) {
	rec := dbmodels.RequestHistory{}
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

func (i impl) GetByOriginalRequest(requestID string) (*dbmodels.RequestHistory, error) {
	rec := dbmodels.RequestHistory{}
	err := i.db.
		Where("original_request_id = ?", requestID).
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

func (i impl) UpdateStatus(id string, status models.RequestStatus, comment string) error {
	tx := i.db.
		Model(&dbmodels.RequestHistory{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            status,
			"approval_comments": comment,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) applyFilter(tx *gorm.DB, filter workflowapimodels.RequestFilter) *gorm.DB {
	if filter.Kind != "" {
		tx = tx.Where("kind = ?", filter.Kind)
	}
	if filter.Department != "" {
		tx = tx.Where("department = ?", filter.Department)
	}
	if filter.VehicleID != "" {
		tx = tx.Where("vehicle_id = ?", filter.VehicleID)
	}
	return tx
}

func (i impl) List(filter workflowapimodels.RequestFilter) (list []dbmodels.RequestHistory, err error) {
	list = []dbmodels.RequestHistory{}
	page, limit := filter.GetPage()
	err = i.applyFilter(i.db.Model(dbmodels.RequestHistory{}), filter).
		Preload(clause.Associations).
		Offset((page - 1) * limit).
		Limit(limit).
		Order("completion_date desc").
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

func (i impl) ListCount(filter workflowapimodels.RequestFilter) (int64, error) {
	var count int64
	err := i.applyFilter(i.db.Model(dbmodels.RequestHistory{}), filter).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
