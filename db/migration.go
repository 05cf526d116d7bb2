package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "fleet-tools-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.Vehicle{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Vehicle")
	}
	if err := DB.AutoMigrate(&dbmodels.VehicleAssignment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры VehicleAssignment")
	}
	if err := DB.AutoMigrate(&dbmodels.ApprovalRoute{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApprovalRoute")
	}
	if err := DB.AutoMigrate(&dbmodels.RouteRoleAssignment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RouteRoleAssignment")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkflowRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkflowRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkflowTransaction{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkflowTransaction")
	}
	if err := DB.AutoMigrate(&dbmodels.RequestAttachment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RequestAttachment")
	}
	if err := DB.AutoMigrate(&dbmodels.RequestHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RequestHistory")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
