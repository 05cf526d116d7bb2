package workflowapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fleet-tools-backend/models"
)

func TestRoleAssignmentDataValidate(t *testing.T) {
	t.Run(`каноническая роль принимается`, func(t *testing.T) {
		data := RoleAssignmentData{UserID: "u1", Role: models.StageReview}
		require.NoError(t, data.Validate())
	})

	t.Run(`роль в нижнем регистре принимается`, func(t *testing.T) {
		data := RoleAssignmentData{UserID: "u1", Role: models.ApprovalStage("review")}
		require.NoError(t, data.Validate())
	})

	t.Run(`терминальный этап не назначается`, func(t *testing.T) {
		data := RoleAssignmentData{UserID: "u1", Role: models.StageComplete}
		require.Error(t, data.Validate())
	})

	t.Run(`неизвестная роль отклоняется`, func(t *testing.T) {
		data := RoleAssignmentData{UserID: "u1", Role: models.ApprovalStage("audit")}
		require.Error(t, data.Validate())
	})

	t.Run(`пустой идентификатор пользователя отклоняется`, func(t *testing.T) {
		data := RoleAssignmentData{Role: models.StageComment}
		require.Error(t, data.Validate())
	})
}
