package initializers

import (
	"context"

	"fleet-tools-backend/config"
	"fleet-tools-backend/fiberlog"
	approvalroutehandler "fleet-tools-backend/lib/approval-route"
	xlsexport "fleet-tools-backend/lib/export/xls"
	filestorage "fleet-tools-backend/lib/file-storage"
	"fleet-tools-backend/lib/notification"
	usershandler "fleet-tools-backend/lib/users"
	vehiclehandler "fleet-tools-backend/lib/vehicle"
	workflowhandler "fleet-tools-backend/lib/workflow"
	connectionhub "fleet-tools-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	connectionhub.Init()
	filestorage.NewInstance()
	xlsexport.NewHandler()
	notification.NewHandler()
	usershandler.NewHandler()
	vehiclehandler.NewHandler()
	approvalroutehandler.NewHandler()
	workflowhandler.NewHandler()
}
