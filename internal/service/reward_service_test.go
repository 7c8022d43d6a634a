package service

import (
	"testing"

	"edulearn_backend/internal/model"
	"edulearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaybeAwardLessonXP(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.createLesson(t, 30)
	quiz := env.createQuizForLesson(t, "Bound", lesson.ID, nil)

	// 未通过不发放
	require.NoError(t, env.reward.MaybeAwardLessonXP(1, quiz.ID, false))
	total, err := env.xpRepo.TotalByUser(1)
	require.NoError(t, err)
	assert.Zero(t, total)

	// 通过发放一次
	require.NoError(t, env.reward.MaybeAwardLessonXP(1, quiz.ID, true))
	total, err = env.xpRepo.TotalByUser(1)
	require.NoError(t, err)
	assert.Equal(t, 30, total)

	// 重复通知是无操作
	require.NoError(t, env.reward.MaybeAwardLessonXP(1, quiz.ID, true))
	total, err = env.xpRepo.TotalByUser(1)
	require.NoError(t, err)
	assert.Equal(t, 30, total)

	entries, err := env.xpRepo.ListByUser(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].QuizID)
	assert.Equal(t, quiz.ID, *entries[0].QuizID)
}

func TestMaybeAwardLessonXPUnboundQuiz(t *testing.T) {
	env := newTestEnv(t)
	courseID := uint(1)
	quiz, err := env.quiz.CreateQuiz(QuizCreateRequest{Title: "Course quiz", CourseID: &courseID})
	require.NoError(t, err)

	// 绑定到课程而非课时：没有XP可发，也不报错
	require.NoError(t, env.reward.MaybeAwardLessonXP(1, quiz.ID, true))
	total, err := env.xpRepo.TotalByUser(1)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestXPSingleAwardAcrossBothPaths(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.createLesson(t, 40)
	quiz := env.createQuizForLesson(t, "Dual path", lesson.ID, nil)

	t.Run("quiz reward first blocks direct completion", func(t *testing.T) {
		require.NoError(t, env.reward.MaybeAwardLessonXP(1, quiz.ID, true))

		_, err := env.lesson.CompleteLesson(1, lesson.ID)
		assert.ErrorIs(t, err, util.ErrLessonAlreadyCompleted)

		total, err := env.xpRepo.TotalByUser(1)
		require.NoError(t, err)
		assert.Equal(t, 40, total)
	})

	t.Run("direct completion first makes quiz reward a no-op", func(t *testing.T) {
		entry, err := env.lesson.CompleteLesson(2, lesson.ID)
		require.NoError(t, err)
		assert.Equal(t, 40, entry.XPPoints)

		require.NoError(t, env.reward.MaybeAwardLessonXP(2, quiz.ID, true))

		entries, err := env.xpRepo.ListByUser(2)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestCompleteLesson(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.createLesson(t, 15)

	entry, err := env.lesson.CompleteLesson(5, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, entry.XPPoints)
	require.NotNil(t, entry.LessonID)
	assert.Equal(t, lesson.ID, *entry.LessonID)
	assert.Nil(t, entry.QuizID)

	_, err = env.lesson.CompleteLesson(5, lesson.ID)
	assert.ErrorIs(t, err, util.ErrLessonAlreadyCompleted)
}

func TestCompleteLessonInactiveRejected(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.createLesson(t, 15)
	_, err := env.lesson.ToggleStatus(lesson.ID)
	require.NoError(t, err)

	_, err = env.lesson.CompleteLesson(1, lesson.ID)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)

	_, err = env.lesson.CompleteLesson(1, 9999)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestCreateLessonLinksChapters(t *testing.T) {
	env := newTestEnv(t)
	lesson, err := env.lesson.CreateLesson(LessonCreateRequest{
		Title:        "Intro",
		Type:         model.LessonVideo,
		NoOfXPPoints: 5,
		ChapterIDs:   []uint{1, 2},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, lesson.Slug)

	var count int64
	require.NoError(t, env.db.Model(&model.LessonChapter{}).Where("lesson_id = ?", lesson.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
