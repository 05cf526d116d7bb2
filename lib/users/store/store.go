package usersstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-tools-backend/models"
	dbmodels "fleet-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.User) (string, error)
	Update(userID string, updMap map[string]interface{}) error
	Delete(userID string) error
	GetByID(userID string) (rec *dbmodels.User, err error)
	FindByEmail(email string) (rec *dbmodels.User, err error)
	Exists(userID string) (bool, error)
	List(page, limit int) (userList []dbmodels.User, err error)
	ListByDepartment(department models.Department) (userList []dbmodels.User, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (string, error) {
	err := i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(userID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", userID).
		Updates(updMap).
		Error
}

func (i impl) Delete(userID string) error {
	return i.db.
		Where("id = ?", userID).
		Delete(&dbmodels.User{}).
		Error
}

func (i impl) GetByID(userID string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("id = ?", userID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) FindByEmail(email string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("lower(email) = ?", strings.ToLower(email)).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) Exists(userID string) (bool, error) {
	var count int64
	err := i.db.Model(dbmodels.User{}).
		Where("id = ?", userID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) List(page, limit int) (userList []dbmodels.User, err error) {
	tx := i.db.Model(dbmodels.User{})
	if page > 0 && limit > 0 {
		tx = tx.Offset((page - 1) * limit).Limit(limit)
	}
	err = tx.
		Order("last_name, first_name").
		Find(&userList).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userList, nil
}

func (i impl) ListByDepartment(department models.Department) (userList []dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("department = ?", department).
		Where("is_active = true").
		Find(&userList).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userList, nil
}
