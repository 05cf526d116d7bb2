package workflow

import (
	"time"

	"fleet-tools-backend/models"
	dbmodels "fleet-tools-backend/models/db"
)

// AdvanceResult результат каскадного продвижения заявки по этапам
type AdvanceResult struct {
	NewStage  models.ApprovalStage
	NewStatus models.RequestStatus
	Appended  []dbmodels.WorkflowTransaction
	Advanced  bool
}

// AdvanceUntilBlocked продвигает заявку по этапам без обращения к БД:
// на каждом этапе сначала применяется автопропуск для автора заявки,
// затем проверяется завершенность этапа по числу завершивших его ответственных.
// Останавливается на первом незавершенном этапе либо на терминальном.
// Изменения возвращаются вызывающему и сохраняются им атомарно.
func AdvanceUntilBlocked(req dbmodels.WorkflowRequest, route dbmodels.ApprovalRoute, ledger []dbmodels.WorkflowTransaction, now time.Time) AdvanceResult {
	result := AdvanceResult{
		NewStage:  req.CurrentStage,
		NewStatus: req.Status,
		Appended:  []dbmodels.WorkflowTransaction{},
	}
	for !result.NewStage.IsTerminal() {
		stage := result.NewStage
		if route.HasUserRole(req.RequestedByID, stage) &&
			!hasEntry(ledger, result.Appended, req.RequestedByID, stage) {
			result.Appended = append(result.Appended, dbmodels.WorkflowTransaction{
				BaseModel:     dbmodels.BaseModel{CreatedAt: now, UpdatedAt: now},
				RequestID:     req.ID,
				UserID:        req.RequestedByID,
				Stage:         stage,
				Comments:      models.AutoSkipComment,
				IsCompleted:   true,
				IsAutoSkipped: true,
			})
		}
		if !stageCompleted(route, ledger, result.Appended, stage) {
			break
		}
		result.NewStage = stage.Next()
		result.Advanced = true
	}
	if result.NewStage.IsTerminal() {
		result.NewStatus = models.RequestStatusApproved
	}
	return result
}

// EvaluateAction проверяет допустимость действия пользователя по заявке:
// заявка на согласовании, пользователь отвечает за текущий этап,
// этап им еще не обработан.
func EvaluateAction(req dbmodels.WorkflowRequest, route dbmodels.ApprovalRoute, ledger []dbmodels.WorkflowTransaction, userID string) error {
	if req.Status.IsTerminal() || req.CurrentStage.IsTerminal() {
		return ErrInvalidState
	}
	if !route.HasUserRole(userID, req.CurrentStage) {
		return ErrForbidden
	}
	if hasEntry(ledger, nil, userID, req.CurrentStage) {
		return ErrConflict
	}
	return nil
}

// stageCompleted этап завершен, когда число завершивших его пользователей
// не меньше числа назначенных на этап (уникальность пары пользователь/этап
// обеспечивается журналом)
func stageCompleted(route dbmodels.ApprovalRoute, ledger, appended []dbmodels.WorkflowTransaction, stage models.ApprovalStage) bool {
	required := map[string]bool{}
	for _, ra := range route.AssigneeForStage(stage) {
		required[ra.UserID] = true
	}

	completed := map[string]bool{}
	collect := func(entries []dbmodels.WorkflowTransaction) {
		for _, entry := range entries {
			if entry.IsCompleted && entry.Stage.Equal(stage) {
				completed[entry.UserID] = true
			}
		}
	}
	collect(ledger)
	collect(appended)

	return len(completed) >= len(required)
}

func hasEntry(ledger, appended []dbmodels.WorkflowTransaction, userID string, stage models.ApprovalStage) bool {
	for _, entry := range ledger {
		if entry.UserID == userID && entry.Stage.Equal(stage) {
			return true
		}
	}
	for _, entry := range appended {
		if entry.UserID == userID && entry.Stage.Equal(stage) {
			return true
		}
	}
	return false
}
