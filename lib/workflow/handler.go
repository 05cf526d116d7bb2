package workflow

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	approvalroutestore "fleet-tools-backend/lib/approval-route/store"
	pdfexport "fleet-tools-backend/lib/export/pdf"
	xlsexport "fleet-tools-backend/lib/export/xls"
	"fleet-tools-backend/lib/notification"
	usersstore "fleet-tools-backend/lib/users/store"
	"fleet-tools-backend/lib/utils/lock"
	assignmentstore "fleet-tools-backend/lib/vehicle/assignment-store"
	vehiclestore "fleet-tools-backend/lib/vehicle/store"
	historystore "fleet-tools-backend/lib/workflow/history-store"
	requeststore "fleet-tools-backend/lib/workflow/request-store"
	transactionstore "fleet-tools-backend/lib/workflow/transaction-store"
	"fleet-tools-backend/db"
	"fleet-tools-backend/models"
	workflowapimodels "fleet-tools-backend/models/api/workflow"
	dbmodels "fleet-tools-backend/models/db"
)

// lockWait максимальное ожидание освобождения заявки,
// обрабатываемой параллельным запросом
const lockWait = 5 * time.Second

var Instance Provider

// фабрики сторов и запуск транзакции, подменяются в тестах
var (
	newRequestStore     = requeststore.NewInstance
	newTransactionStore = transactionstore.NewInstance
	newHistoryStore     = historystore.NewInstance
	newAssignmentStore  = assignmentstore.NewInstance
	newVehicleStore     = vehiclestore.NewInstance
	runInTx             = func(fn func(tx *gorm.DB) error) error { return db.DB.Transaction(fn) }
)

type Provider interface {
	Submit(userID string, data workflowapimodels.RequestCreateData) (*workflowapimodels.SubmitResult, error)
	ProcessStage(ctx context.Context, requestID, userID string, data workflowapimodels.ProcessStageData) (*workflowapimodels.ProcessStageResult, error)
	Reject(ctx context.Context, requestID, userID string, data workflowapimodels.RejectData) (*workflowapimodels.ProcessStageResult, error)
	Invalidate(requestID string, data workflowapimodels.InvalidateData) (historyID string, err error)
	GetByID(requestID string) (*workflowapimodels.RequestView, error)
	List(filter workflowapimodels.RequestFilter) ([]workflowapimodels.RequestView, int64, error)
	PendingForUser(userID string) ([]workflowapimodels.RequestView, error)
	WorkflowStatus(requestID string) (*workflowapimodels.WorkflowStatusView, error)
	CommentTimeline(requestID string) ([]workflowapimodels.StageComments, error)
	History(filter workflowapimodels.RequestFilter) ([]workflowapimodels.HistoryView, int64, error)
	HistoryByID(id string) (*workflowapimodels.HistoryView, error)
	HistoryExportXlsx(filter workflowapimodels.RequestFilter) (*bytes.Buffer, error)
	HistoryCard(id string) ([]byte, error)
}

func NewHandler() {
	Instance = &impl{
		requestStore:     requeststore.NewInstance(db.DB),
		transactionStore: transactionstore.NewInstance(db.DB),
		historyStore:     historystore.NewInstance(db.DB),
		routeStore:       approvalroutestore.NewInstance(db.DB),
		usersStore:       usersstore.NewInstance(db.DB),
		vehicleStore:     vehiclestore.NewInstance(db.DB),
	}
}

type impl struct {
	requestStore     requeststore.Provider
	transactionStore transactionstore.Provider
	historyStore     historystore.Provider
	routeStore       approvalroutestore.Provider
	usersStore       usersstore.Provider
	vehicleStore     vehiclestore.Provider
}

func (i impl) Submit(userID string, data workflowapimodels.RequestCreateData) (*workflowapimodels.SubmitResult, error) {
	err := data.Validate()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidState, err.Error())
	}
	requestor, err := i.usersStore.GetByID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения автора заявки")
	}
	if requestor == nil {
		return nil, errors.Wrap(ErrNotFound, "пользователь не найден")
	}
	vehicle, err := i.vehicleStore.GetByID(data.VehicleID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения транспортного средства")
	}
	if vehicle == nil {
		return nil, errors.Wrap(ErrNotFound, "транспортное средство не найдено")
	}
	route, err := i.routeStore.GetByDepartment(requestor.Department)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения маршрута согласования")
	}
	if route == nil {
		return nil, errors.Wrapf(ErrNotFound, "для подразделения «%s» не настроен маршрут согласования", requestor.Department.ToHuman())
	}

	now := time.Now()
	rec := dbmodels.WorkflowRequest{
		Kind:          data.Kind,
		RequestedByID: userID,
		VehicleID:     data.VehicleID,
		Department:    requestor.Department,
		RouteID:       route.ID,
		CurrentStage:  models.StageComment,
		Status:        models.RequestStatusPending,
		RequestDate:   now,
		Description:   data.Description,
		EstimatedCost: data.EstimatedCost,
		Reason:        data.Reason,
	}
	// Автопропуск применяется сразу при подаче:
	// автор, назначенный на первые этапы, не согласует собственную заявку
	adv := AdvanceUntilBlocked(rec, *route, nil, now)

	err = runInTx(func(tx *gorm.DB) error {
		txRequestStore := newRequestStore(tx)
		id, err := txRequestStore.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания заявки")
		}
		rec.ID = id
		txTransactionStore := newTransactionStore(tx)
		for _, entry := range adv.Appended {
			entry.RequestID = id
			_, err = txTransactionStore.Create(entry)
			if err != nil {
				return errors.Wrap(err, "ошибка записи журнала согласования")
			}
		}
		if adv.NewStatus == models.RequestStatusApproved {
			rec.CurrentStage = adv.NewStage
			rec.Status = adv.NewStatus
			_, err = i.finalizeApproved(tx, rec, adv.Appended, now)
			return err
		}
		if adv.NewStage != rec.CurrentStage {
			err = txRequestStore.Update(id, map[string]interface{}{
				"current_stage": adv.NewStage,
			})
			if err != nil {
				return errors.Wrap(err, "ошибка продвижения заявки")
			}
			rec.CurrentStage = adv.NewStage
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	i.sendNotifications(rec, *route, adv, *requestor, "")

	return &workflowapimodels.SubmitResult{
		RequestID:    rec.ID,
		RouteID:      route.ID,
		CurrentStage: adv.NewStage,
		Status:       adv.NewStatus,
	}, nil
}

func (i impl) ProcessStage(ctx context.Context, requestID, userID string, data workflowapimodels.ProcessStageData) (*workflowapimodels.ProcessStageResult, error) {
	err := data.Validate()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidState, err.Error())
	}
	var result *workflowapimodels.ProcessStageResult
	var notify func()
	locked, err := lock.WithDelay(ctx, requestID, lockWait, func() error {
		return runInTx(func(tx *gorm.DB) error {
			txRequestStore := newRequestStore(tx)
			rec, err := txRequestStore.GetByID(requestID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения заявки")
			}
			if rec == nil {
				return ErrNotFound
			}
			if rec.Route == nil {
				return errors.New("у заявки отсутствует маршрут согласования")
			}
			route := *rec.Route
			ledger := rec.Transactions
			err = EvaluateAction(*rec, route, ledger, userID)
			if err != nil {
				return err
			}

			now := time.Now()
			updMap := map[string]interface{}{}
			// Стоимость уточняется только на этапе фиксации заявки на обслуживание
			if data.CostUpdate != nil && rec.Kind == models.KindMaintenance && rec.CurrentStage.Equal(models.StageCommit) {
				updMap["estimated_cost"] = *data.CostUpdate
				rec.EstimatedCost = data.CostUpdate
			}

			txTransactionStore := newTransactionStore(tx)
			entry := dbmodels.WorkflowTransaction{
				BaseModel:   dbmodels.BaseModel{CreatedAt: now, UpdatedAt: now},
				RequestID:   rec.ID,
				UserID:      userID,
				Stage:       rec.CurrentStage,
				Comments:    data.Comments,
				IsCompleted: true,
			}
			_, err = txTransactionStore.Create(entry)
			if err != nil {
				return errors.Wrap(err, "ошибка записи журнала согласования")
			}
			ledger = append(ledger, entry)

			adv := AdvanceUntilBlocked(*rec, route, ledger, now)
			for _, appended := range adv.Appended {
				_, err = txTransactionStore.Create(appended)
				if err != nil {
					return errors.Wrap(err, "ошибка записи журнала согласования")
				}
				ledger = append(ledger, appended)
			}

			historyID := ""
			if adv.NewStatus == models.RequestStatusApproved {
				rec.CurrentStage = adv.NewStage
				rec.Status = adv.NewStatus
				historyID, err = i.finalizeApproved(tx, *rec, ledger, now)
			} else {
				if adv.Advanced {
					updMap["current_stage"] = adv.NewStage
					rec.CurrentStage = adv.NewStage
				}
				err = txRequestStore.Update(rec.ID, updMap)
			}
			if err != nil {
				return err
			}

			result = &workflowapimodels.ProcessStageResult{
				CurrentStage:  adv.NewStage,
				Status:        adv.NewStatus,
				HistoryID:     historyID,
				StageComments: buildStageComments(ledger),
			}
			requestor := dbmodels.User{BaseModel: dbmodels.BaseModel{ID: rec.RequestedByID}}
			if rec.RequestedBy != nil {
				requestor = *rec.RequestedBy
			}
			recCopy := *rec
			notify = func() {
				i.sendNotifications(recCopy, route, adv, requestor, "")
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, errors.Wrap(ErrConflict, "заявка обрабатывается параллельным запросом")
	}
	if notify != nil {
		notify()
	}
	return result, nil
}

func (i impl) Reject(ctx context.Context, requestID, userID string, data workflowapimodels.RejectData) (*workflowapimodels.ProcessStageResult, error) {
	err := data.Validate()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidState, err.Error())
	}
	var result *workflowapimodels.ProcessStageResult
	var notify func()
	locked, err := lock.WithDelay(ctx, requestID, lockWait, func() error {
		return runInTx(func(tx *gorm.DB) error {
			txRequestStore := newRequestStore(tx)
			rec, err := txRequestStore.GetByID(requestID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения заявки")
			}
			if rec == nil {
				return ErrNotFound
			}
			if rec.Route == nil {
				return errors.New("у заявки отсутствует маршрут согласования")
			}
			route := *rec.Route
			ledger := rec.Transactions
			err = EvaluateAction(*rec, route, ledger, userID)
			if err != nil {
				return err
			}

			now := time.Now()
			entry := dbmodels.WorkflowTransaction{
				BaseModel:   dbmodels.BaseModel{CreatedAt: now, UpdatedAt: now},
				RequestID:   rec.ID,
				UserID:      userID,
				Stage:       rec.CurrentStage,
				Comments:    data.Reason,
				IsCompleted: false,
			}
			_, err = newTransactionStore(tx).Create(entry)
			if err != nil {
				return errors.Wrap(err, "ошибка записи журнала согласования")
			}
			ledger = append(ledger, entry)

			rec.Status = models.RequestStatusRejected
			historyID, err := i.archive(tx, *rec, ledger, now)
			if err != nil {
				return err
			}

			result = &workflowapimodels.ProcessStageResult{
				CurrentStage:  rec.CurrentStage,
				Status:        models.RequestStatusRejected,
				HistoryID:     historyID,
				StageComments: buildStageComments(ledger),
			}
			requestor := dbmodels.User{BaseModel: dbmodels.BaseModel{ID: rec.RequestedByID}}
			if rec.RequestedBy != nil {
				requestor = *rec.RequestedBy
			}
			recCopy := *rec
			notify = func() {
				notification.Instance.RequestRejected(recCopy, requestor, data.Reason)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, errors.Wrap(ErrConflict, "заявка обрабатывается параллельным запросом")
	}
	if notify != nil {
		notify()
	}
	return result, nil
}

// Invalidate аннулирует завершенную заявку в архиве.
// Живые заявки аннулированию не подлежат, для них есть отклонение.
func (i impl) Invalidate(requestID string, data workflowapimodels.InvalidateData) (string, error) {
	err := data.Validate()
	if err != nil {
		return "", errors.Wrap(ErrInvalidState, err.Error())
	}
	rec, err := i.historyStore.GetByOriginalRequest(requestID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения архивной заявки")
	}
	if rec == nil {
		return "", errors.Wrap(ErrNotFound, "архивная заявка не найдена")
	}
	if rec.Status == models.RequestStatusInvalid {
		return "", errors.Wrap(ErrConflict, "заявка уже аннулирована")
	}
	if rec.Status != models.RequestStatusApproved {
		return "", errors.Wrap(ErrInvalidState, "аннулированию подлежат только согласованные заявки")
	}
	comment := data.Comment
	if rec.ApprovalComments != "" {
		comment = fmt.Sprintf("%s\nАннулирована: %s", rec.ApprovalComments, data.Comment)
	}
	err = i.historyStore.UpdateStatus(rec.ID, models.RequestStatusInvalid, comment)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(requestID string) (*workflowapimodels.RequestView, error) {
	rec, err := i.requestStore.GetByID(requestID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	view := workflowapimodels.RequestConvert(*rec)
	return &view, nil
}

func (i impl) List(filter workflowapimodels.RequestFilter) ([]workflowapimodels.RequestView, int64, error) {
	list, err := i.requestStore.List(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка заявок")
	}
	count, err := i.requestStore.ListCount(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения количества заявок")
	}
	result := make([]workflowapimodels.RequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, workflowapimodels.RequestConvert(rec))
	}
	return result, count, nil
}

func (i impl) PendingForUser(userID string) ([]workflowapimodels.RequestView, error) {
	list, err := i.requestStore.PendingForUser(userID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявок, ожидающих действия")
	}
	result := make([]workflowapimodels.RequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, workflowapimodels.RequestConvert(rec))
	}
	return result, nil
}

func (i impl) WorkflowStatus(requestID string) (*workflowapimodels.WorkflowStatusView, error) {
	rec, err := i.requestStore.GetByID(requestID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	result := workflowapimodels.WorkflowStatusView{
		Request:        workflowapimodels.RequestConvert(*rec),
		Stages:         []workflowapimodels.StageStatusView{},
		PendingActions: []workflowapimodels.PendingActionView{},
	}
	for _, stage := range models.RouteStages() {
		stageView := workflowapimodels.StageStatusView{
			Stage:     stage,
			StageName: stage.ToHuman(),
			Completed: []workflowapimodels.StageActionView{},
		}
		for _, entry := range rec.Transactions {
			if !entry.IsCompleted || !entry.Stage.Equal(stage) {
				continue
			}
			userName := ""
			if entry.User != nil {
				userName = entry.User.GetFullName()
			}
			stageView.Completed = append(stageView.Completed, workflowapimodels.StageActionView{
				UserID:        entry.UserID,
				UserName:      userName,
				Comment:       entry.Comments,
				IsAutoSkipped: entry.IsAutoSkipped,
				Date:          entry.CreatedAt,
			})
		}
		result.Stages = append(result.Stages, stageView)
	}
	if rec.Route != nil && !rec.CurrentStage.IsTerminal() {
		for _, ra := range rec.Route.AssigneeForStage(rec.CurrentStage) {
			userName := ""
			if ra.User != nil {
				userName = ra.User.GetFullName()
			}
			pending := !hasEntry(rec.Transactions, nil, ra.UserID, rec.CurrentStage)
			result.PendingActions = append(result.PendingActions, workflowapimodels.PendingActionView{
				UserID:    ra.UserID,
				UserName:  userName,
				IsPending: pending,
			})
		}
	}
	return &result, nil
}

func (i impl) CommentTimeline(requestID string) ([]workflowapimodels.StageComments, error) {
	rec, err := i.requestStore.GetByID(requestID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	ledger, err := i.transactionStore.ListByRequest(requestID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения журнала согласования")
	}
	return buildStageComments(ledger), nil
}

func (i impl) History(filter workflowapimodels.RequestFilter) ([]workflowapimodels.HistoryView, int64, error) {
	list, err := i.historyStore.List(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения архива заявок")
	}
	count, err := i.historyStore.ListCount(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения количества архивных заявок")
	}
	result := make([]workflowapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, workflowapimodels.HistoryConvert(rec))
	}
	return result, count, nil
}

func (i impl) HistoryByID(id string) (*workflowapimodels.HistoryView, error) {
	rec, err := i.historyStore.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения архивной заявки")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	view := workflowapimodels.HistoryConvert(*rec)
	return &view, nil
}

func (i impl) HistoryExportXlsx(filter workflowapimodels.RequestFilter) (*bytes.Buffer, error) {
	list, err := i.historyStore.List(filter)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения архива заявок")
	}
	return xlsexport.Instance.ExportHistoryList(list)
}

func (i impl) HistoryCard(id string) ([]byte, error) {
	rec, err := i.historyStore.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения архивной заявки")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return pdfexport.GenerateRequestCard(*rec)
}

// finalizeApproved применяет эффекты согласованной заявки и переносит ее в архив
func (i impl) finalizeApproved(tx *gorm.DB, rec dbmodels.WorkflowRequest, ledger []dbmodels.WorkflowTransaction, now time.Time) (historyID string, err error) {
	switch rec.Kind {
	case models.KindAssignment:
		err = i.applyAssignment(tx, rec, now)
		if err != nil {
			return "", err
		}
	case models.KindMaintenance:
		// итоговая стоимость фиксируется в архивной записи
	}
	return i.archive(tx, rec, ledger, now)
}

// applyAssignment закрывает открытое окно закрепления ТС и открывает новое на автора заявки
func (i impl) applyAssignment(tx *gorm.DB, rec dbmodels.WorkflowRequest, now time.Time) error {
	txAssignmentStore := newAssignmentStore(tx)
	open, err := txAssignmentStore.GetOpenByVehicle(rec.VehicleID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения окна закрепления")
	}
	if open != nil {
		err = txAssignmentStore.CloseWindow(open.ID, now)
		if err != nil {
			return errors.Wrap(err, "ошибка закрытия окна закрепления")
		}
	}
	_, err = txAssignmentStore.Create(dbmodels.VehicleAssignment{
		VehicleID: rec.VehicleID,
		UserID:    rec.RequestedByID,
		StartDate: now,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка открытия окна закрепления")
	}
	err = newVehicleStore(tx).Update(rec.VehicleID, map[string]interface{}{
		"assigned_user_id": rec.RequestedByID,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка закрепления транспортного средства")
	}
	return nil
}

// archive переносит заявку в архив и удаляет живую запись вместе с журналом
func (i impl) archive(tx *gorm.DB, rec dbmodels.WorkflowRequest, ledger []dbmodels.WorkflowTransaction, now time.Time) (historyID string, err error) {
	history := dbmodels.RequestHistory{
		OriginalRequestID: rec.ID,
		Kind:              rec.Kind,
		RequestedByID:     rec.RequestedByID,
		VehicleID:         rec.VehicleID,
		Department:        rec.Department,
		RouteID:           rec.RouteID,
		Status:            rec.Status,
		RequestDate:       rec.RequestDate,
		Description:       rec.Description,
		FinalCost:         rec.EstimatedCost,
		Reason:            rec.Reason,
		CompletionDate:    now,
		ApprovalComments:  collectComments(ledger),
	}
	historyID, err = newHistoryStore(tx).Create(history)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания архивной записи")
	}
	err = newTransactionStore(tx).DeleteByRequest(rec.ID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка очистки журнала согласования")
	}
	err = newRequestStore(tx).Delete(rec.ID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка удаления заявки")
	}
	return historyID, nil
}

// sendNotifications рассылает события по итогам продвижения заявки.
// Рассылка не влияет на результат согласования.
func (i impl) sendNotifications(rec dbmodels.WorkflowRequest, route dbmodels.ApprovalRoute, adv AdvanceResult, requestor dbmodels.User, rejectReason string) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("request_id", rec.ID).Errorf("паника при отправке уведомлений: %v", r)
		}
	}()
	switch {
	case adv.NewStatus == models.RequestStatusApproved:
		notification.Instance.RequestApproved(rec, requestor)
	case adv.NewStatus == models.RequestStatusRejected:
		notification.Instance.RequestRejected(rec, requestor, rejectReason)
	default:
		if adv.Advanced {
			notification.Instance.StageAdvanced(rec, requestor)
		}
		for _, ra := range route.AssigneeForStage(rec.CurrentStage) {
			if ra.User == nil || ra.UserID == requestor.ID {
				continue
			}
			notification.Instance.ActionRequired(rec, *ra.User)
		}
	}
}

// buildStageComments группирует журнал по этапам в каноническом порядке
func buildStageComments(ledger []dbmodels.WorkflowTransaction) []workflowapimodels.StageComments {
	result := make([]workflowapimodels.StageComments, 0, len(models.RouteStages()))
	for _, stage := range models.RouteStages() {
		group := workflowapimodels.StageComments{
			Stage:     stage,
			StageName: stage.ToHuman(),
			Comments:  []workflowapimodels.CommentView{},
		}
		for _, entry := range ledger {
			if !entry.Stage.Equal(stage) || entry.Comments == "" {
				continue
			}
			userName := ""
			if entry.User != nil {
				userName = entry.User.GetFullName()
			}
			group.Comments = append(group.Comments, workflowapimodels.CommentView{
				UserID:   entry.UserID,
				UserName: userName,
				Comment:  entry.Comments,
				Date:     entry.CreatedAt,
			})
		}
		result = append(result, group)
	}
	return result
}

// collectComments собирает комментарии журнала в итоговую строку архива
func collectComments(ledger []dbmodels.WorkflowTransaction) string {
	parts := make([]string, 0, len(ledger))
	for _, entry := range ledger {
		if entry.Comments == "" {
			continue
		}
		author := entry.UserID
		if entry.User != nil {
			author = entry.User.GetFullName()
		}
		parts = append(parts, fmt.Sprintf("%s (%s): %s", entry.Stage.ToHuman(), author, entry.Comments))
	}
	return strings.Join(parts, "\n")
}
