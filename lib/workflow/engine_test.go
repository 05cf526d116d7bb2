package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fleet-tools-backend/models"
	dbmodels "fleet-tools-backend/models/db"
)

func testRoute(stageUsers map[models.ApprovalStage]string) dbmodels.ApprovalRoute {
	route := dbmodels.ApprovalRoute{
		BaseModel:  dbmodels.BaseModel{ID: "route-1"},
		Department: models.DepartmentFinance,
	}
	for k, stage := range models.RouteStages() {
		route.RoleAssignments = append(route.RoleAssignments, dbmodels.RouteRoleAssignment{
			RouteID:  route.ID,
			UserID:   stageUsers[stage],
			Role:     stage,
			Position: k,
		})
	}
	return route
}

func testRequest(requestedByID string) dbmodels.WorkflowRequest {
	return dbmodels.WorkflowRequest{
		BaseModel:     dbmodels.BaseModel{ID: "req-1"},
		Kind:          models.KindMaintenance,
		RequestedByID: requestedByID,
		RouteID:       "route-1",
		CurrentStage:  models.StageComment,
		Status:        models.RequestStatusPending,
	}
}

func entry(userID string, stage models.ApprovalStage) dbmodels.WorkflowTransaction {
	return dbmodels.WorkflowTransaction{
		RequestID:   "req-1",
		UserID:      userID,
		Stage:       stage,
		IsCompleted: true,
	}
}

func TestAdvanceUntilBlocked(t *testing.T) {
	now := time.Now()
	stageUsers := map[models.ApprovalStage]string{
		models.StageComment: "u1",
		models.StageReview:  "u2",
		models.StageCommit:  "u3",
		models.StageApprove: "u4",
	}

	t.Run(`без записей журнала заявка остается на первом этапе`, func(t *testing.T) {
		route := testRoute(stageUsers)
		req := testRequest("u5")
		result := AdvanceUntilBlocked(req, route, nil, now)
		require.Equal(t, models.StageComment, result.NewStage)
		require.Equal(t, models.RequestStatusPending, result.NewStatus)
		require.False(t, result.Advanced)
		require.Empty(t, result.Appended)
	})

	t.Run(`завершенный этап продвигает заявку на следующий`, func(t *testing.T) {
		route := testRoute(stageUsers)
		req := testRequest("u5")
		ledger := []dbmodels.WorkflowTransaction{entry("u1", models.StageComment)}
		result := AdvanceUntilBlocked(req, route, ledger, now)
		require.Equal(t, models.StageReview, result.NewStage)
		require.Equal(t, models.RequestStatusPending, result.NewStatus)
		require.True(t, result.Advanced)
	})

	t.Run(`этап не продвигается без завершенной записи`, func(t *testing.T) {
		route := testRoute(stageUsers)
		req := testRequest("u5")
		rejected := entry("u1", models.StageComment)
		rejected.IsCompleted = false
		result := AdvanceUntilBlocked(req, route, []dbmodels.WorkflowTransaction{rejected}, now)
		require.Equal(t, models.StageComment, result.NewStage)
		require.False(t, result.Advanced)
	})

	t.Run(`этап сравнивается без учета регистра`, func(t *testing.T) {
		route := testRoute(stageUsers)
		req := testRequest("u5")
		lower := entry("u1", models.ApprovalStage("comment"))
		result := AdvanceUntilBlocked(req, route, []dbmodels.WorkflowTransaction{lower}, now)
		require.Equal(t, models.StageReview, result.NewStage)
	})

	t.Run(`продвижение монотонно и не откатывается назад`, func(t *testing.T) {
		route := testRoute(stageUsers)
		req := testRequest("u5")
		req.CurrentStage = models.StageCommit
		ledger := []dbmodels.WorkflowTransaction{
			entry("u1", models.StageComment),
			entry("u2", models.StageReview),
		}
		result := AdvanceUntilBlocked(req, route, ledger, now)
		require.Equal(t, models.StageCommit, result.NewStage)
		require.GreaterOrEqual(t, result.NewStage.Order(), req.CurrentStage.Order())
	})

	t.Run(`автопропуск этапов автора заявки каскадом`, func(t *testing.T) {
		route := testRoute(map[models.ApprovalStage]string{
			models.StageComment: "author",
			models.StageReview:  "author",
			models.StageCommit:  "u3",
			models.StageApprove: "u4",
		})
		req := testRequest("author")
		result := AdvanceUntilBlocked(req, route, nil, now)
		require.Equal(t, models.StageCommit, result.NewStage)
		require.Equal(t, models.RequestStatusPending, result.NewStatus)
		require.Len(t, result.Appended, 2)
		for _, appended := range result.Appended {
			require.Equal(t, "author", appended.UserID)
			require.True(t, appended.IsAutoSkipped)
			require.True(t, appended.IsCompleted)
			require.Equal(t, models.AutoSkipComment, appended.Comments)
		}
		require.Equal(t, models.StageComment, result.Appended[0].Stage)
		require.Equal(t, models.StageReview, result.Appended[1].Stage)
	})

	t.Run(`автопропуск не дублирует существующую запись`, func(t *testing.T) {
		route := testRoute(map[models.ApprovalStage]string{
			models.StageComment: "author",
			models.StageReview:  "u2",
			models.StageCommit:  "u3",
			models.StageApprove: "u4",
		})
		req := testRequest("author")
		ledger := []dbmodels.WorkflowTransaction{entry("author", models.StageComment)}
		result := AdvanceUntilBlocked(req, route, ledger, now)
		require.Equal(t, models.StageReview, result.NewStage)
		require.Empty(t, result.Appended)
	})

	t.Run(`автор на всех этапах - заявка согласована сразу`, func(t *testing.T) {
		route := testRoute(map[models.ApprovalStage]string{
			models.StageComment: "author",
			models.StageReview:  "author",
			models.StageCommit:  "author",
			models.StageApprove: "author",
		})
		req := testRequest("author")
		result := AdvanceUntilBlocked(req, route, nil, now)
		require.Equal(t, models.StageComplete, result.NewStage)
		require.Equal(t, models.RequestStatusApproved, result.NewStatus)
		require.Len(t, result.Appended, 4)
	})

	t.Run(`завершение последнего этапа делает заявку согласованной`, func(t *testing.T) {
		route := testRoute(stageUsers)
		req := testRequest("u5")
		req.CurrentStage = models.StageApprove
		ledger := []dbmodels.WorkflowTransaction{
			entry("u1", models.StageComment),
			entry("u2", models.StageReview),
			entry("u3", models.StageCommit),
			entry("u4", models.StageApprove),
		}
		result := AdvanceUntilBlocked(req, route, ledger, now)
		require.Equal(t, models.StageComplete, result.NewStage)
		require.Equal(t, models.RequestStatusApproved, result.NewStatus)
	})

	t.Run(`три завершенных этапа из четырех не согласуют заявку`, func(t *testing.T) {
		route := testRoute(stageUsers)
		req := testRequest("u5")
		ledger := []dbmodels.WorkflowTransaction{
			entry("u1", models.StageComment),
			entry("u2", models.StageReview),
			entry("u3", models.StageCommit),
		}
		result := AdvanceUntilBlocked(req, route, ledger, now)
		require.Equal(t, models.StageApprove, result.NewStage)
		require.Equal(t, models.RequestStatusPending, result.NewStatus)
	})
}

// сценарий: автор заявки назначен на этап проверки,
// остальные этапы закрывают разные ответственные
func TestApprovalScenario(t *testing.T) {
	now := time.Now()
	route := testRoute(map[models.ApprovalStage]string{
		models.StageComment: "u1",
		models.StageReview:  "author",
		models.StageCommit:  "u3",
		models.StageApprove: "u4",
	})
	req := testRequest("author")
	ledger := []dbmodels.WorkflowTransaction{}

	// подача: автор не отвечает за первый этап, автопропуска нет
	result := AdvanceUntilBlocked(req, route, ledger, now)
	require.Equal(t, models.StageComment, result.NewStage)

	// u1 комментирует: этап проверки пропускается для автора каскадом
	ledger = append(ledger, entry("u1", models.StageComment))
	result = AdvanceUntilBlocked(req, route, ledger, now)
	require.Equal(t, models.StageCommit, result.NewStage)
	require.Len(t, result.Appended, 1)
	require.Equal(t, models.StageReview, result.Appended[0].Stage)
	ledger = append(ledger, result.Appended...)
	req.CurrentStage = result.NewStage

	// u3 фиксирует стоимость
	ledger = append(ledger, entry("u3", models.StageCommit))
	result = AdvanceUntilBlocked(req, route, ledger, now)
	require.Equal(t, models.StageApprove, result.NewStage)
	req.CurrentStage = result.NewStage

	// u4 утверждает: заявка согласована
	ledger = append(ledger, entry("u4", models.StageApprove))
	result = AdvanceUntilBlocked(req, route, ledger, now)
	require.Equal(t, models.StageComplete, result.NewStage)
	require.Equal(t, models.RequestStatusApproved, result.NewStatus)
}

func TestEvaluateAction(t *testing.T) {
	stageUsers := map[models.ApprovalStage]string{
		models.StageComment: "u1",
		models.StageReview:  "u2",
		models.StageCommit:  "u3",
		models.StageApprove: "u4",
	}

	t.Run(`ответственный за текущий этап допускается`, func(t *testing.T) {
		route := testRoute(stageUsers)
		req := testRequest("u5")
		require.NoError(t, EvaluateAction(req, route, nil, "u1"))
	})

	t.Run(`чужой пользователь не допускается`, func(t *testing.T) {
		route := testRoute(stageUsers)
		req := testRequest("u5")
		err := EvaluateAction(req, route, nil, "u2")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run(`повторная обработка этапа отклоняется`, func(t *testing.T) {
		route := testRoute(stageUsers)
		req := testRequest("u5")
		ledger := []dbmodels.WorkflowTransaction{entry("u1", models.StageComment)}
		err := EvaluateAction(req, route, ledger, "u1")
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run(`повторная обработка с другим регистром этапа отклоняется`, func(t *testing.T) {
		route := testRoute(stageUsers)
		req := testRequest("u5")
		ledger := []dbmodels.WorkflowTransaction{entry("u1", models.ApprovalStage("COMMENT"))}
		err := EvaluateAction(req, route, ledger, "u1")
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run(`действия по завершенной заявке недопустимы`, func(t *testing.T) {
		route := testRoute(stageUsers)
		req := testRequest("u5")
		req.Status = models.RequestStatusRejected
		err := EvaluateAction(req, route, nil, "u1")
		require.ErrorIs(t, err, ErrInvalidState)
	})
}
