package transactionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbmodels "fleet-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkflowTransaction) (id string, err error)
	ListByRequest(requestID string) (list []dbmodels.WorkflowTransaction, err error)
	DeleteByRequest(requestID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkflowTransaction) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByRequest(requestID string) (list []dbmodels.WorkflowTransaction, err error) {
	list = []dbmodels.WorkflowTransaction{}
	err = i.db.
		Where("request_id = ?", requestID).
		Preload("User").
		Order("created_at").
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

func (i impl) DeleteByRequest(requestID string) error {
	return i.db.
		Where("request_id = ?", requestID).
		Delete(&dbmodels.WorkflowTransaction{}).
		Error
}
