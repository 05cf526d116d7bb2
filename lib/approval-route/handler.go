package approvalroute

import (
	"github.com/pkg/errors"

	approvalroutestore "fleet-tools-backend/lib/approval-route/store"
	usersstore "fleet-tools-backend/lib/users/store"
	requeststore "fleet-tools-backend/lib/workflow/request-store"
	"fleet-tools-backend/db"
	"fleet-tools-backend/models"
	workflowapimodels "fleet-tools-backend/models/api/workflow"
	dbmodels "fleet-tools-backend/models/db"
)

var Instance Provider

type Provider interface {
	Create(data workflowapimodels.ApprovalRouteData) (id string, err error)
	Update(id string, data workflowapimodels.ApprovalRouteData) error
	Delete(id string) error
	GetByID(id string) (*workflowapimodels.ApprovalRouteView, error)
	GetByDepartment(department models.Department) (*workflowapimodels.ApprovalRouteView, error)
	List() ([]workflowapimodels.ApprovalRouteView, error)
}

func NewHandler() {
	Instance = &impl{
		store:        approvalroutestore.NewInstance(db.DB),
		usersStore:   usersstore.NewInstance(db.DB),
		requestStore: requeststore.NewInstance(db.DB),
	}
}

type impl struct {
	store        approvalroutestore.Provider
	usersStore   usersstore.Provider
	requestStore requeststore.Provider
}

func (i impl) Create(data workflowapimodels.ApprovalRouteData) (id string, err error) {
	err = i.validate(data)
	if err != nil {
		return "", err
	}
	existing, err := i.store.GetByDepartment(data.Department)
	if err != nil {
		return "", errors.Wrap(err, "ошибка проверки маршрута подразделения")
	}
	if existing != nil {
		return "", errors.Wrapf(ErrDuplicate, "для подразделения «%s» маршрут уже настроен", data.Department.ToHuman())
	}
	id, err = i.store.Create(dbmodels.ApprovalRoute{
		Name:        data.Name,
		Department:  data.Department,
		Description: data.Description,
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания маршрута")
	}
	err = i.store.ReplaceRoleAssignments(id, buildAssignments(data.RoleAssignments))
	if err != nil {
		return "", errors.Wrap(err, "ошибка назначения ответственных")
	}
	return id, nil
}

func (i impl) Update(id string, data workflowapimodels.ApprovalRouteData) error {
	err := i.validate(data)
	if err != nil {
		return err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения маршрута")
	}
	if rec == nil {
		return ErrRouteNotFound
	}
	existing, err := i.store.GetByDepartment(data.Department)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки маршрута подразделения")
	}
	if existing != nil && existing.ID != id {
		return errors.Wrapf(ErrDuplicate, "для подразделения «%s» маршрут уже настроен", data.Department.ToHuman())
	}
	err = i.store.Update(id, map[string]interface{}{
		"name":        data.Name,
		"department":  data.Department,
		"description": data.Description,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка обновления маршрута")
	}
	err = i.store.ReplaceRoleAssignments(id, buildAssignments(data.RoleAssignments))
	if err != nil {
		return errors.Wrap(err, "ошибка назначения ответственных")
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения маршрута")
	}
	if rec == nil {
		return ErrRouteNotFound
	}
	inUse, err := i.requestStore.ExistsByRoute(id)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки использования маршрута")
	}
	if inUse {
		return errors.Wrap(ErrRouteInUse, "по маршруту есть заявки на согласовании")
	}
	return i.store.Delete(id)
}

func (i impl) GetByID(id string) (*workflowapimodels.ApprovalRouteView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения маршрута")
	}
	if rec == nil {
		return nil, ErrRouteNotFound
	}
	view := workflowapimodels.ApprovalRouteConvert(*rec)
	return &view, nil
}

func (i impl) GetByDepartment(department models.Department) (*workflowapimodels.ApprovalRouteView, error) {
	if !department.IsValid() {
		return nil, errors.Errorf("неизвестное подразделение: %v", department)
	}
	rec, err := i.store.GetByDepartment(department)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения маршрута")
	}
	if rec == nil {
		return nil, ErrRouteNotFound
	}
	view := workflowapimodels.ApprovalRouteConvert(*rec)
	return &view, nil
}

func (i impl) List() ([]workflowapimodels.ApprovalRouteView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка маршрутов")
	}
	result := make([]workflowapimodels.ApprovalRouteView, 0, len(list))
	for _, rec := range list {
		result = append(result, workflowapimodels.ApprovalRouteConvert(rec))
	}
	return result, nil
}

func (i impl) validate(data workflowapimodels.ApprovalRouteData) error {
	err := data.Validate()
	if err != nil {
		return err
	}
	err = ValidateRoleAssignments(data.RoleAssignments)
	if err != nil {
		return err
	}
	for _, ra := range data.RoleAssignments {
		exists, err := i.usersStore.Exists(ra.UserID)
		if err != nil {
			return errors.Wrap(err, "ошибка проверки пользователя")
		}
		if !exists {
			return errors.Errorf("пользователь %s не найден", ra.UserID)
		}
	}
	return nil
}

// ValidateRoleAssignments каждый этап маршрута закрыт ровно одним ответственным,
// этапы перечислены в порядке прохождения
func ValidateRoleAssignments(assignments []workflowapimodels.RoleAssignmentData) error {
	seen := map[models.ApprovalStage]bool{}
	prevOrder := -1
	for _, ra := range assignments {
		stage := canonicalStage(ra.Role)
		if seen[stage] {
			return errors.Errorf("этап «%s» назначен более одного раза", stage.ToHuman())
		}
		seen[stage] = true
		if stage.Order() < prevOrder {
			return errors.Errorf("этап «%s» указан с нарушением порядка прохождения", stage.ToHuman())
		}
		prevOrder = stage.Order()
	}
	for _, stage := range models.RouteStages() {
		if !seen[stage] {
			return errors.Errorf("не назначен ответственный за этап «%s»", stage.ToHuman())
		}
	}
	return nil
}

func buildAssignments(data []workflowapimodels.RoleAssignmentData) []dbmodels.RouteRoleAssignment {
	result := make([]dbmodels.RouteRoleAssignment, 0, len(data))
	for k, ra := range data {
		result = append(result, dbmodels.RouteRoleAssignment{
			UserID:   ra.UserID,
			Role:     canonicalStage(ra.Role),
			Position: k,
		})
	}
	return result
}

// canonicalStage приводит роль к каноническому написанию этапа
func canonicalStage(role models.ApprovalStage) models.ApprovalStage {
	for _, stage := range models.RouteStages() {
		if stage.Equal(role) {
			return stage
		}
	}
	return role
}
