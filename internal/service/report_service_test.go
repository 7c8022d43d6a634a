package service

import (
	"context"
	"testing"

	"edulearn_backend/internal/model"
	"edulearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAttempt(t *testing.T, env *testEnv, userID, quizID uint, obtained, total, timeTaken int) *model.QuizAttempt {
	t.Helper()
	attempt := &model.QuizAttempt{
		UserID:        userID,
		QuizID:        quizID,
		ObtainedMarks: obtained,
		TotalMarks:    total,
		TimeTaken:     timeTaken,
	}
	require.NoError(t, env.db.Create(attempt).Error)
	return attempt
}

func TestGetAttemptDetailOwnership(t *testing.T) {
	env := newTestEnv(t)
	attempt := seedAttempt(t, env, 1, 10, 8, 10, 60)

	got, err := env.report.GetAttemptDetail(attempt.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, got.ID)

	// 别人的尝试一律当作不存在
	_, err = env.report.GetAttemptDetail(attempt.ID, 2)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestListAttempts(t *testing.T) {
	env := newTestEnv(t)
	seedAttempt(t, env, 1, 10, 8, 10, 60)
	seedAttempt(t, env, 1, 11, 3, 10, 45)
	seedAttempt(t, env, 2, 10, 9, 10, 30)

	attempts, err := env.report.ListAttempts(1, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, 8, attempts[0].ObtainedMarks)
}

func TestLeaderboardOrdering(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice", "alice@example.com")
	bob := env.createUser(t, "Bob", "bob@example.com")
	cara := env.createUser(t, "Cara", "cara@example.com")

	quizID := uint(42)
	seedAttempt(t, env, alice.ID, quizID, 5, 10, 30)
	seedAttempt(t, env, bob.ID, quizID, 9, 10, 60)
	seedAttempt(t, env, cara.ID, quizID, 9, 10, 20)

	// Redis为nil时直接回源数据库
	entries, err := env.report.Leaderboard(context.Background(), quizID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// 得分降序，同分按用时升序
	assert.Equal(t, "Cara", entries[0].UserName)
	assert.Equal(t, "Bob", entries[1].UserName)
	assert.Equal(t, "Alice", entries[2].UserName)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestLeaderboardRespectsSizeLimit(t *testing.T) {
	env := newTestEnv(t)
	env.report.Config.Quiz.LeaderboardSize = 2
	for i := 1; i <= 5; i++ {
		seedAttempt(t, env, uint(i), 7, i, 10, 10)
	}

	entries, err := env.report.Leaderboard(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 5, entries[0].ObtainedMarks)
}

func TestPerformanceReport(t *testing.T) {
	env := newTestEnv(t)
	// 及格线按快照总分的40%向上取整回推
	seedAttempt(t, env, 1, 10, 8, 10, 60)  // 80%，通过
	seedAttempt(t, env, 1, 11, 2, 10, 60)  // 20%，未通过
	seedAttempt(t, env, 1, 12, 0, 0, 10)   // 空测验，不计通过
	seedAttempt(t, env, 2, 10, 10, 10, 30) // 其他用户，不计入

	lessonA := uint(1)
	lessonB := uint(2)
	require.NoError(t, env.xpRepo.Create(&model.UserXPEarned{UserID: 1, LessonID: &lessonA, XPPoints: 25}))
	require.NoError(t, env.xpRepo.Create(&model.UserXPEarned{UserID: 1, LessonID: &lessonB, XPPoints: 15}))

	report, err := env.report.Performance(1)
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalAttempts)
	assert.Equal(t, 1, report.PassedAttempts)
	assert.InDelta(t, (80.0+20.0+0)/3, report.AveragePercentage, 0.001)
	assert.Equal(t, 40, report.TotalXPEarned)
}

func TestPerformanceReportEmpty(t *testing.T) {
	env := newTestEnv(t)
	report, err := env.report.Performance(1)
	require.NoError(t, err)
	assert.Zero(t, report.TotalAttempts)
	assert.Zero(t, report.AveragePercentage)
	assert.Zero(t, report.TotalXPEarned)
}

func TestPassMarksOf(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{10, 4},
		{12, 5},
		{9, 4},
		{1, 1},
		{0, 0},
	}
	for _, tt := range tests {
		got := passMarksOf(model.QuizAttempt{TotalMarks: tt.total})
		assert.Equal(t, tt.want, got, "totalMarks=%d", tt.total)
	}
}
