package approvalroute

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fleet-tools-backend/models"
	workflowapimodels "fleet-tools-backend/models/api/workflow"
)

func assignments(roles ...models.ApprovalStage) []workflowapimodels.RoleAssignmentData {
	result := make([]workflowapimodels.RoleAssignmentData, 0, len(roles))
	for k, role := range roles {
		result = append(result, workflowapimodels.RoleAssignmentData{
			UserID: string(rune('a' + k)),
			Role:   role,
		})
	}
	return result
}

func TestValidateRoleAssignments(t *testing.T) {
	t.Run(`полный маршрут в каноническом порядке`, func(t *testing.T) {
		err := ValidateRoleAssignments(assignments(
			models.StageComment, models.StageReview, models.StageCommit, models.StageApprove,
		))
		require.NoError(t, err)
	})

	t.Run(`роли в другом регистре допустимы`, func(t *testing.T) {
		err := ValidateRoleAssignments(assignments(
			models.ApprovalStage("comment"), models.ApprovalStage("REVIEW"),
			models.ApprovalStage("Commit"), models.ApprovalStage("approve"),
		))
		require.NoError(t, err)
	})

	t.Run(`пропущенный этап отклоняется`, func(t *testing.T) {
		err := ValidateRoleAssignments(assignments(
			models.StageComment, models.StageReview, models.StageApprove,
		))
		require.Error(t, err)
	})

	t.Run(`дубль этапа отклоняется`, func(t *testing.T) {
		err := ValidateRoleAssignments(assignments(
			models.StageComment, models.StageComment, models.StageCommit, models.StageApprove,
		))
		require.Error(t, err)
	})

	t.Run(`нарушенный порядок этапов отклоняется`, func(t *testing.T) {
		err := ValidateRoleAssignments(assignments(
			models.StageReview, models.StageComment, models.StageCommit, models.StageApprove,
		))
		require.Error(t, err)
	})

	t.Run(`пустой список отклоняется`, func(t *testing.T) {
		err := ValidateRoleAssignments(nil)
		require.Error(t, err)
	})
}

func TestBuildAssignments(t *testing.T) {
	result := buildAssignments(assignments(
		models.ApprovalStage("comment"), models.ApprovalStage("REVIEW"),
		models.StageCommit, models.StageApprove,
	))
	require.Len(t, result, 4)
	require.Equal(t, models.StageComment, result[0].Role)
	require.Equal(t, models.StageReview, result[1].Role)
	for k, rec := range result {
		require.Equal(t, k, rec.Position)
	}
}
