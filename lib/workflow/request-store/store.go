package requeststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	workflowapimodels "fleet-tools-backend/models/api/workflow"
	dbmodels "fleet-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkflowRequest) (id string, err error)
	GetByID(id string) (rec *dbmodels.WorkflowRequest, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(filter workflowapimodels.RequestFilter) (list []dbmodels.WorkflowRequest, err error)
	ListCount(filter workflowapimodels.RequestFilter) (int64, error)
	PendingForUser(userID string) (list []dbmodels.WorkflowRequest, err error)
	ExistsByRoute(routeID string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkflowRequest) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.WorkflowRequest, error) {
	rec := dbmodels.WorkflowRequest{}
	err := i.db.
		Where("id = ?", id).
		Preload(clause.Associations).
		Preload("Route.RoleAssignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_role_assignments.position")
		}).
		Preload("Route.RoleAssignments.User").
		Preload("Transactions.User").
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
		Model(&dbmodels.WorkflowRequest{}).
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
	rec := dbmodels.WorkflowRequest{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
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

func (i impl) List(filter workflowapimodels.RequestFilter) (list []dbmodels.WorkflowRequest, err error) {
	list = []dbmodels.WorkflowRequest{}
	page, limit := filter.GetPage()
	tx := i.applyFilter(i.db.Model(dbmodels.WorkflowRequest{}), filter).
		Preload(clause.Associations).
		Offset((page - 1) * limit).
		Limit(limit).
		Order("request_date desc")
	err = tx.Find(&list).Error
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
	err := i.applyFilter(i.db.Model(dbmodels.WorkflowRequest{}), filter).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// PendingForUser заявки, по которым пользователь назначен на текущий этап
// и еще не имеет завершенной записи журнала по нему
func (i impl) PendingForUser(userID string) (list []dbmodels.WorkflowRequest, err error) {
	list = []dbmodels.WorkflowRequest{}
	err = i.db.Model(dbmodels.WorkflowRequest{}).
		Joins("JOIN route_role_assignments rra ON rra.route_id = workflow_requests.route_id AND rra.user_id = ? AND lower(rra.role) = lower(workflow_requests.current_stage)", userID).
		Where("workflow_requests.status = ?", "PENDING").
		Where("NOT EXISTS (SELECT 1 FROM workflow_transactions wt WHERE wt.request_id = workflow_requests.id AND wt.user_id = ? AND lower(wt.stage) = lower(workflow_requests.current_stage) AND wt.is_completed)", userID).
		Preload(clause.Associations).
		Order("request_date").
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

func (i impl) ExistsByRoute(routeID string) (bool, error) {
	var count int64
	err := i.db.Model(dbmodels.WorkflowRequest{}).
		Where("route_id = ?", routeID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
