package approvalroutestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-tools-backend/models"
	dbmodels "fleet-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ApprovalRoute) (id string, err error)
	GetByID(id string) (rec *dbmodels.ApprovalRoute, err error)
	GetByDepartment(department models.Department) (rec *dbmodels.ApprovalRoute, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List() (list []dbmodels.ApprovalRoute, err error)
	ReplaceRoleAssignments(routeID string, assignments []dbmodels.RouteRoleAssignment) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalRoute) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ApprovalRoute, error) {
	rec := dbmodels.ApprovalRoute{}
	err := i.db.
		Where("id = ?", id).
		Preload("RoleAssignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_role_assignments.position")
		}).
		Preload("RoleAssignments.User").
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

func (i impl) GetByDepartment(department models.Department) (*dbmodels.ApprovalRoute, error) {
	rec := dbmodels.ApprovalRoute{}
	err := i.db.
		Where("department = ?", department).
		Preload("RoleAssignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_role_assignments.position")
		}).
		Preload("RoleAssignments.User").
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
		Model(&dbmodels.ApprovalRoute{}).
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
	err := i.db.
		Where("route_id = ?", id).
		Delete(&dbmodels.RouteRoleAssignment{}).
		Error
	if err != nil {
		return err
	}
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.ApprovalRoute{}).
		Error
}

func (i impl) List() (list []dbmodels.ApprovalRoute, err error) {
	list = []dbmodels.ApprovalRoute{}
	err = i.db.
		Preload("RoleAssignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_role_assignments.position")
		}).
		Preload("RoleAssignments.User").
		Order("department").
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

func (i impl) ReplaceRoleAssignments(routeID string, assignments []dbmodels.RouteRoleAssignment) error {
	err := i.db.
		Where("route_id = ?", routeID).
		Delete(&dbmodels.RouteRoleAssignment{}).
		Error
	if err != nil {
		return err
	}
	for k := range assignments {
		assignments[k].RouteID = routeID
		err = i.db.Omit(clause.Associations).
			Save(&assignments[k]).
			Error
		if err != nil {
			return err
		}
	}
	return nil
}
