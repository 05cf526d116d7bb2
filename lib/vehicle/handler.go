package vehicle

import (
	"github.com/pkg/errors"

	assignmentstore "fleet-tools-backend/lib/vehicle/assignment-store"
	vehiclestore "fleet-tools-backend/lib/vehicle/store"
	"fleet-tools-backend/db"
	"fleet-tools-backend/models"
	vehicleapimodels "fleet-tools-backend/models/api/vehicle"
	dbmodels "fleet-tools-backend/models/db"
)

var Instance Provider

type Provider interface {
	Create(data vehicleapimodels.VehicleData) (id string, err error)
	Update(id string, data vehicleapimodels.VehicleData) error
	Delete(id string) error
	GetByID(id string) (*vehicleapimodels.VehicleView, error)
	List(filter vehicleapimodels.VehicleFilter) ([]vehicleapimodels.VehicleView, int64, error)
	Assignments(vehicleID string) ([]vehicleapimodels.AssignmentView, error)
}

func NewHandler() {
	Instance = &impl{
		store:           vehiclestore.NewInstance(db.DB),
		assignmentStore: assignmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store           vehiclestore.Provider
	assignmentStore assignmentstore.Provider
}

func (i impl) Create(data vehicleapimodels.VehicleData) (id string, err error) {
	err = data.Validate()
	if err != nil {
		return "", err
	}
	status := data.Status
	if status == "" {
		status = models.VehicleStatusActive
	}
	return i.store.Create(dbmodels.Vehicle{
		RegNumber: data.RegNumber,
		Make:      data.Make,
		Model:     data.Model,
		Year:      data.Year,
		Mileage:   data.Mileage,
		Status:    status,
	})
}

func (i impl) Update(id string, data vehicleapimodels.VehicleData) error {
	err := data.Validate()
	if err != nil {
		return err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения транспортного средства")
	}
	if rec == nil {
		return errors.New("транспортное средство не найдено")
	}
	updMap := map[string]interface{}{
		"reg_number": data.RegNumber,
		"make":       data.Make,
		"model":      data.Model,
		"year":       data.Year,
		"mileage":    data.Mileage,
	}
	if data.Status != "" {
		updMap["status"] = data.Status
	}
	return i.store.Update(id, updMap)
}

func (i impl) Delete(id string) error {
	return i.store.Delete(id)
}

func (i impl) GetByID(id string) (*vehicleapimodels.VehicleView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения транспортного средства")
	}
	if rec == nil {
		return nil, errors.New("транспортное средство не найдено")
	}
	view := vehicleapimodels.VehicleConvert(*rec)
	return &view, nil
}

func (i impl) List(filter vehicleapimodels.VehicleFilter) ([]vehicleapimodels.VehicleView, int64, error) {
	list, err := i.store.List(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка транспортных средств")
	}
	count, err := i.store.ListCount(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения количества транспортных средств")
	}
	result := make([]vehicleapimodels.VehicleView, 0, len(list))
	for _, rec := range list {
		result = append(result, vehicleapimodels.VehicleConvert(rec))
	}
	return result, count, nil
}

func (i impl) Assignments(vehicleID string) ([]vehicleapimodels.AssignmentView, error) {
	list, err := i.assignmentStore.ListByVehicle(vehicleID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения истории закреплений")
	}
	result := make([]vehicleapimodels.AssignmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, vehicleapimodels.AssignmentConvert(rec))
	}
	return result, nil
}
