package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApprovalStage(t *testing.T) {
	t.Run(`порядок этапов`, func(t *testing.T) {
		require.Equal(t, StageReview, StageComment.Next())
		require.Equal(t, StageCommit, StageReview.Next())
		require.Equal(t, StageApprove, StageCommit.Next())
		require.Equal(t, StageComplete, StageApprove.Next())
		require.Equal(t, StageComplete, StageComplete.Next())
	})

	t.Run(`терминальный этап`, func(t *testing.T) {
		require.True(t, StageComplete.IsTerminal())
		for _, stage := range RouteStages() {
			require.False(t, stage.IsTerminal())
		}
	})

	t.Run(`сравнение без учета регистра`, func(t *testing.T) {
		require.True(t, StageComment.Equal(ApprovalStage("COMMENT")))
		require.True(t, ApprovalStage("review").Equal(StageReview))
		require.False(t, StageComment.Equal(StageReview))
	})

	t.Run(`порядковые номера возрастают`, func(t *testing.T) {
		prev := -1
		for _, stage := range RouteStages() {
			require.Greater(t, stage.Order(), prev)
			prev = stage.Order()
		}
		require.Equal(t, -1, ApprovalStage("unknown").Order())
	})
}
