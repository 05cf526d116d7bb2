package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fleet-tools-backend/lib/notification"
	assignmentstore "fleet-tools-backend/lib/vehicle/assignment-store"
	vehiclestore "fleet-tools-backend/lib/vehicle/store"
	historystore "fleet-tools-backend/lib/workflow/history-store"
	requeststore "fleet-tools-backend/lib/workflow/request-store"
	transactionstore "fleet-tools-backend/lib/workflow/transaction-store"
	"fleet-tools-backend/models"
	vehicleapimodels "fleet-tools-backend/models/api/vehicle"
	workflowapimodels "fleet-tools-backend/models/api/workflow"
	dbmodels "fleet-tools-backend/models/db"
)

type fakeRequestStore struct {
	rec     *dbmodels.WorkflowRequest
	updates []map[string]interface{}
	deleted []string
}

func (f *fakeRequestStore) Create(rec dbmodels.WorkflowRequest) (string, error) {
	rec.ID = "req-1"
	f.rec = &rec
	return rec.ID, nil
}

func (f *fakeRequestStore) GetByID(id string) (*dbmodels.WorkflowRequest, error) {
	if f.rec == nil || f.rec.ID != id {
		return nil, nil
	}
	rec := *f.rec
	return &rec, nil
}

func (f *fakeRequestStore) Update(id string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}

func (f *fakeRequestStore) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	f.rec = nil
	return nil
}

func (f *fakeRequestStore) List(workflowapimodels.RequestFilter) ([]dbmodels.WorkflowRequest, error) {
	return nil, nil
}

func (f *fakeRequestStore) ListCount(workflowapimodels.RequestFilter) (int64, error) {
	return 0, nil
}

func (f *fakeRequestStore) PendingForUser(string) ([]dbmodels.WorkflowRequest, error) {
	return nil, nil
}

func (f *fakeRequestStore) ExistsByRoute(string) (bool, error) {
	return false, nil
}

type fakeTransactionStore struct {
	entries []dbmodels.WorkflowTransaction
	cleared []string
}

func (f *fakeTransactionStore) Create(rec dbmodels.WorkflowTransaction) (string, error) {
	f.entries = append(f.entries, rec)
	return rec.ID, nil
}

func (f *fakeTransactionStore) ListByRequest(requestID string) ([]dbmodels.WorkflowTransaction, error) {
	list := []dbmodels.WorkflowTransaction{}
	for _, rec := range f.entries {
		if rec.RequestID == requestID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeTransactionStore) DeleteByRequest(requestID string) error {
	f.cleared = append(f.cleared, requestID)
	return nil
}

type fakeHistoryStore struct {
	rec           *dbmodels.RequestHistory
	created       []dbmodels.RequestHistory
	statusUpdates []models.RequestStatus
	lastComment   string
}

func (f *fakeHistoryStore) Create(rec dbmodels.RequestHistory) (string, error) {
	rec.ID = "hist-1"
	f.created = append(f.created, rec)
	return rec.ID, nil
}

func (f *fakeHistoryStore) GetByID(id string) (*dbmodels.RequestHistory, error) {
	if f.rec == nil || f.rec.ID != id {
		return nil, nil
	}
	rec := *f.rec
	return &rec, nil
}

func (f *fakeHistoryStore) GetByOriginalRequest(requestID string) (*dbmodels.RequestHistory, error) {
	if f.rec == nil || f.rec.OriginalRequestID != requestID {
		return nil, nil
	}
	rec := *f.rec
	return &rec, nil
}

func (f *fakeHistoryStore) UpdateStatus(id string, status models.RequestStatus, comment string) error {
	f.statusUpdates = append(f.statusUpdates, status)
	f.lastComment = comment
	return nil
}

func (f *fakeHistoryStore) List(workflowapimodels.RequestFilter) ([]dbmodels.RequestHistory, error) {
	return nil, nil
}

func (f *fakeHistoryStore) ListCount(workflowapimodels.RequestFilter) (int64, error) {
	return 0, nil
}

type fakeAssignmentStore struct {
	open    *dbmodels.VehicleAssignment
	closed  []string
	created []dbmodels.VehicleAssignment
}

func (f *fakeAssignmentStore) Create(rec dbmodels.VehicleAssignment) (string, error) {
	f.created = append(f.created, rec)
	return "va-1", nil
}

func (f *fakeAssignmentStore) GetOpenByVehicle(vehicleID string) (*dbmodels.VehicleAssignment, error) {
	if f.open == nil || f.open.VehicleID != vehicleID {
		return nil, nil
	}
	rec := *f.open
	return &rec, nil
}

func (f *fakeAssignmentStore) CloseWindow(id string, _ time.Time) error {
	f.closed = append(f.closed, id)
	return nil
}

func (f *fakeAssignmentStore) ListByVehicle(string) ([]dbmodels.VehicleAssignment, error) {
	return nil, nil
}

type fakeVehicleStore struct {
	updates []map[string]interface{}
}

func (f *fakeVehicleStore) Create(dbmodels.Vehicle) (string, error) {
	return "", nil
}

func (f *fakeVehicleStore) GetByID(string) (*dbmodels.Vehicle, error) {
	return nil, nil
}

func (f *fakeVehicleStore) Update(id string, updMap map[string]interface{}) error {
	f.updates = append(f.updates, updMap)
	return nil
}

func (f *fakeVehicleStore) Delete(string) error {
	return nil
}

func (f *fakeVehicleStore) List(vehicleapimodels.VehicleFilter) ([]dbmodels.Vehicle, error) {
	return nil, nil
}

func (f *fakeVehicleStore) ListCount(vehicleapimodels.VehicleFilter) (int64, error) {
	return 0, nil
}

type stubNotifier struct{}

func (stubNotifier) ActionRequired(dbmodels.WorkflowRequest, dbmodels.User)          {}
func (stubNotifier) StageAdvanced(dbmodels.WorkflowRequest, dbmodels.User)           {}
func (stubNotifier) RequestApproved(dbmodels.WorkflowRequest, dbmodels.User)         {}
func (stubNotifier) RequestRejected(dbmodels.WorkflowRequest, dbmodels.User, string) {}

type handlerEnv struct {
	requests     *fakeRequestStore
	transactions *fakeTransactionStore
	history      *fakeHistoryStore
	assignments  *fakeAssignmentStore
	vehicles     *fakeVehicleStore
	handler      impl
}

func newHandlerEnv(t *testing.T, rec *dbmodels.WorkflowRequest) *handlerEnv {
	env := &handlerEnv{
		requests:     &fakeRequestStore{rec: rec},
		transactions: &fakeTransactionStore{},
		history:      &fakeHistoryStore{},
		assignments:  &fakeAssignmentStore{},
		vehicles:     &fakeVehicleStore{},
	}
	env.handler = impl{
		requestStore:     env.requests,
		transactionStore: env.transactions,
		historyStore:     env.history,
	}

	prevRequest, prevTransaction, prevHistory := newRequestStore, newTransactionStore, newHistoryStore
	prevAssignment, prevVehicle, prevRun := newAssignmentStore, newVehicleStore, runInTx
	prevNotifier := notification.Instance
	newRequestStore = func(*gorm.DB) requeststore.Provider { return env.requests }
	newTransactionStore = func(*gorm.DB) transactionstore.Provider { return env.transactions }
	newHistoryStore = func(*gorm.DB) historystore.Provider { return env.history }
	newAssignmentStore = func(*gorm.DB) assignmentstore.Provider { return env.assignments }
	newVehicleStore = func(*gorm.DB) vehiclestore.Provider { return env.vehicles }
	runInTx = func(fn func(tx *gorm.DB) error) error { return fn(nil) }
	notification.Instance = stubNotifier{}
	t.Cleanup(func() {
		newRequestStore, newTransactionStore, newHistoryStore = prevRequest, prevTransaction, prevHistory
		newAssignmentStore, newVehicleStore, runInTx = prevAssignment, prevVehicle, prevRun
		notification.Instance = prevNotifier
	})
	return env
}

func pendingRequest(stage models.ApprovalStage, route dbmodels.ApprovalRoute, ledger []dbmodels.WorkflowTransaction) *dbmodels.WorkflowRequest {
	rec := testRequest("u5")
	rec.CurrentStage = stage
	rec.Route = &route
	rec.Transactions = ledger
	return &rec
}

func TestProcessStage(t *testing.T) {
	route := testRoute(map[models.ApprovalStage]string{
		models.StageComment: "u1",
		models.StageReview:  "u2",
		models.StageCommit:  "u3",
		models.StageApprove: "u4",
	})

	t.Run(`завершение последнего этапа переносит заявку в архив`, func(t *testing.T) {
		ledger := []dbmodels.WorkflowTransaction{
			entry("u1", models.StageComment),
			entry("u2", models.StageReview),
			entry("u3", models.StageCommit),
		}
		rec := pendingRequest(models.StageApprove, route, ledger)
		env := newHandlerEnv(t, rec)

		result, err := env.handler.ProcessStage(context.Background(), "req-1", "u4",
			workflowapimodels.ProcessStageData{Comments: "согласовано"})
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusApproved, result.Status)
		require.Equal(t, models.StageComplete, result.CurrentStage)
		require.Equal(t, "hist-1", result.HistoryID)

		require.Len(t, env.history.created, 1)
		require.Equal(t, "req-1", env.history.created[0].OriginalRequestID)
		require.Equal(t, models.RequestStatusApproved, env.history.created[0].Status)
		require.Equal(t, []string{"req-1"}, env.transactions.cleared)
		require.Equal(t, []string{"req-1"}, env.requests.deleted)
		require.Empty(t, env.assignments.created)
	})

	t.Run(`обновление стоимости сохраняется на этапе фиксации`, func(t *testing.T) {
		ledger := []dbmodels.WorkflowTransaction{
			entry("u1", models.StageComment),
			entry("u2", models.StageReview),
		}
		rec := pendingRequest(models.StageCommit, route, ledger)
		env := newHandlerEnv(t, rec)

		cost := 500.0
		result, err := env.handler.ProcessStage(context.Background(), "req-1", "u3",
			workflowapimodels.ProcessStageData{Comments: "стоимость уточнена", CostUpdate: &cost})
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusPending, result.Status)
		require.Equal(t, models.StageApprove, result.CurrentStage)

		require.Len(t, env.requests.updates, 1)
		require.Equal(t, 500.0, env.requests.updates[0]["estimated_cost"])
		require.Equal(t, models.StageApprove, env.requests.updates[0]["current_stage"])
		require.Len(t, env.transactions.entries, 1)
		require.Equal(t, "u3", env.transactions.entries[0].UserID)
		require.Equal(t, models.StageCommit, env.transactions.entries[0].Stage)
		require.True(t, env.transactions.entries[0].IsCompleted)
	})

	t.Run(`обновление стоимости вне этапа фиксации игнорируется`, func(t *testing.T) {
		rec := pendingRequest(models.StageComment, route, nil)
		env := newHandlerEnv(t, rec)

		cost := 500.0
		result, err := env.handler.ProcessStage(context.Background(), "req-1", "u1",
			workflowapimodels.ProcessStageData{CostUpdate: &cost})
		require.NoError(t, err)
		require.Equal(t, models.StageReview, result.CurrentStage)

		require.Len(t, env.requests.updates, 1)
		require.NotContains(t, env.requests.updates[0], "estimated_cost")
	})

	t.Run(`согласование закрепления перезакрепляет ТС`, func(t *testing.T) {
		ledger := []dbmodels.WorkflowTransaction{
			entry("u1", models.StageComment),
			entry("u2", models.StageReview),
			entry("u3", models.StageCommit),
		}
		rec := pendingRequest(models.StageApprove, route, ledger)
		rec.Kind = models.KindAssignment
		rec.VehicleID = "veh-1"
		env := newHandlerEnv(t, rec)
		env.assignments.open = &dbmodels.VehicleAssignment{
			BaseModel: dbmodels.BaseModel{ID: "va-0"},
			VehicleID: "veh-1",
			UserID:    "old-holder",
		}

		result, err := env.handler.ProcessStage(context.Background(), "req-1", "u4",
			workflowapimodels.ProcessStageData{})
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusApproved, result.Status)

		require.Equal(t, []string{"va-0"}, env.assignments.closed)
		require.Len(t, env.assignments.created, 1)
		require.Equal(t, "veh-1", env.assignments.created[0].VehicleID)
		require.Equal(t, "u5", env.assignments.created[0].UserID)
		require.Len(t, env.vehicles.updates, 1)
		require.Equal(t, "u5", env.vehicles.updates[0]["assigned_user_id"])
	})

	t.Run(`несуществующая заявка`, func(t *testing.T) {
		env := newHandlerEnv(t, nil)
		_, err := env.handler.ProcessStage(context.Background(), "req-1", "u1",
			workflowapimodels.ProcessStageData{})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReject(t *testing.T) {
	route := testRoute(map[models.ApprovalStage]string{
		models.StageComment: "u1",
		models.StageReview:  "u2",
		models.StageCommit:  "u3",
		models.StageApprove: "u4",
	})

	t.Run(`отклонение переносит заявку в архив с причиной`, func(t *testing.T) {
		ledger := []dbmodels.WorkflowTransaction{entry("u1", models.StageComment)}
		rec := pendingRequest(models.StageReview, route, ledger)
		env := newHandlerEnv(t, rec)

		result, err := env.handler.Reject(context.Background(), "req-1", "u2",
			workflowapimodels.RejectData{Reason: "нет бюджета"})
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusRejected, result.Status)
		require.Equal(t, "hist-1", result.HistoryID)

		require.Len(t, env.transactions.entries, 1)
		require.False(t, env.transactions.entries[0].IsCompleted)
		require.Equal(t, models.StageReview, env.transactions.entries[0].Stage)
		require.Equal(t, "нет бюджета", env.transactions.entries[0].Comments)

		require.Len(t, env.history.created, 1)
		require.Equal(t, models.RequestStatusRejected, env.history.created[0].Status)
		require.Contains(t, env.history.created[0].ApprovalComments, "нет бюджета")
		require.Equal(t, []string{"req-1"}, env.transactions.cleared)
		require.Equal(t, []string{"req-1"}, env.requests.deleted)
	})

	t.Run(`чужой пользователь не может отклонить`, func(t *testing.T) {
		rec := pendingRequest(models.StageReview, route, nil)
		env := newHandlerEnv(t, rec)

		_, err := env.handler.Reject(context.Background(), "req-1", "u3",
			workflowapimodels.RejectData{Reason: "нет бюджета"})
		require.ErrorIs(t, err, ErrForbidden)
		require.Empty(t, env.history.created)
	})
}

func TestInvalidate(t *testing.T) {
	archived := func(status models.RequestStatus) *fakeHistoryStore {
		return &fakeHistoryStore{rec: &dbmodels.RequestHistory{
			BaseModel:         dbmodels.BaseModel{ID: "hist-1"},
			OriginalRequestID: "req-1",
			Status:            status,
			ApprovalComments:  "Утверждение (u4): ок",
		}}
	}

	t.Run(`согласованная заявка аннулируется`, func(t *testing.T) {
		history := archived(models.RequestStatusApproved)
		handler := impl{historyStore: history}
		historyID, err := handler.Invalidate("req-1", workflowapimodels.InvalidateData{Comment: "дубль заявки"})
		require.NoError(t, err)
		require.Equal(t, "hist-1", historyID)
		require.Equal(t, []models.RequestStatus{models.RequestStatusInvalid}, history.statusUpdates)
		require.Contains(t, history.lastComment, "Аннулирована: дубль заявки")
	})

	t.Run(`отклоненная заявка аннулированию не подлежит`, func(t *testing.T) {
		history := archived(models.RequestStatusRejected)
		handler := impl{historyStore: history}
		_, err := handler.Invalidate("req-1", workflowapimodels.InvalidateData{Comment: "дубль заявки"})
		require.ErrorIs(t, err, ErrInvalidState)
		require.Empty(t, history.statusUpdates)
	})

	t.Run(`повторное аннулирование отклоняется`, func(t *testing.T) {
		history := archived(models.RequestStatusInvalid)
		handler := impl{historyStore: history}
		_, err := handler.Invalidate("req-1", workflowapimodels.InvalidateData{Comment: "дубль заявки"})
		require.ErrorIs(t, err, ErrConflict)
		require.Empty(t, history.statusUpdates)
	})

	t.Run(`архивная запись не найдена`, func(t *testing.T) {
		handler := impl{historyStore: &fakeHistoryStore{}}
		_, err := handler.Invalidate("req-1", workflowapimodels.InvalidateData{Comment: "дубль заявки"})
		require.ErrorIs(t, err, ErrNotFound)
	})
}
