package service

import (
	"testing"

	"edulearn_backend/internal/model"
	"edulearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuizRequiresExactlyOneBinding(t *testing.T) {
	env := newTestEnv(t)
	lessonID := uint(1)
	courseID := uint(2)

	_, err := env.quiz.CreateQuiz(QuizCreateRequest{Title: "No binding"})
	assert.ErrorIs(t, err, util.ErrMultipleBindings)

	_, err = env.quiz.CreateQuiz(QuizCreateRequest{
		Title:    "Two bindings",
		LessonID: &lessonID,
		CourseID: &courseID,
	})
	assert.ErrorIs(t, err, util.ErrMultipleBindings)

	quiz, err := env.quiz.CreateQuiz(QuizCreateRequest{Title: "One binding", LessonID: &lessonID})
	require.NoError(t, err)
	assert.NotEmpty(t, quiz.Slug)

	binding, err := env.quizRepo.GetBinding(quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, binding.LessonID)
	assert.Equal(t, lessonID, *binding.LessonID)
}

func TestCreateQuizRejectsDuplicateTitle(t *testing.T) {
	env := newTestEnv(t)
	lessonID := uint(1)

	_, err := env.quiz.CreateQuiz(QuizCreateRequest{Title: "Geography", LessonID: &lessonID})
	require.NoError(t, err)

	_, err = env.quiz.CreateQuiz(QuizCreateRequest{Title: "Geography", LessonID: &lessonID})
	assert.ErrorIs(t, err, util.ErrQuizTitleTaken)
}

func TestGetQuizLearnerViewHidesCorrectness(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.createLesson(t, 0)
	quiz := env.createQuizForLesson(t, "Learner view", lesson.ID, []QuestionRequest{
		mcqQuestion("Pick", 5, "Right", "Wrong"),
		blankQuestion("Fill", 5, "secret"),
	})
	// 停用一题，学员视角不应看到
	questions, _, err := env.question.ListQuestions(quiz.ID, 1, 10)
	require.NoError(t, err)
	var blank model.Question
	for _, q := range questions {
		if q.Type == model.FillInTheBlank {
			blank = q
		}
	}
	_, err = env.question.ToggleStatus(blank.ID)
	require.NoError(t, err)

	view, err := env.quiz.GetQuiz(quiz.ID)
	require.NoError(t, err)
	require.Len(t, view.Questions, 1)
	assert.Equal(t, "Pick", view.Questions[0].Question)
	// 选项只暴露文本，不暴露正确性和标准答案
	require.Len(t, view.Questions[0].Options, 2)
	for _, opt := range view.Questions[0].Options {
		assert.NotEmpty(t, opt.Option)
	}

	bySlug, err := env.quiz.GetQuizBySlug(quiz.Slug)
	require.NoError(t, err)
	assert.Equal(t, view.ID, bySlug.ID)

	_, err = env.quiz.GetQuiz(9999)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestUpdateQuizRebinds(t *testing.T) {
	env := newTestEnv(t)
	lessonID := uint(1)
	chapterID := uint(3)
	courseID := uint(4)

	quiz, err := env.quiz.CreateQuiz(QuizCreateRequest{Title: "Rebind", LessonID: &lessonID})
	require.NoError(t, err)

	// 两个目标同时给出被拒绝
	_, err = env.quiz.UpdateQuiz(quiz.ID, QuizUpdateRequest{ChapterID: &chapterID, CourseID: &courseID})
	assert.ErrorIs(t, err, util.ErrMultipleBindings)

	_, err = env.quiz.UpdateQuiz(quiz.ID, QuizUpdateRequest{ChapterID: &chapterID})
	require.NoError(t, err)

	binding, err := env.quizRepo.GetBinding(quiz.ID)
	require.NoError(t, err)
	assert.Nil(t, binding.LessonID)
	require.NotNil(t, binding.ChapterID)
	assert.Equal(t, chapterID, *binding.ChapterID)

	// 不带绑定字段的更新保留原绑定
	updated, err := env.quiz.UpdateQuiz(quiz.ID, QuizUpdateRequest{Description: "new text"})
	require.NoError(t, err)
	assert.Equal(t, "new text", updated.Description)
	binding, err = env.quizRepo.GetBinding(quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, binding.ChapterID)
}

func TestSubmitQuizGradesAndPersists(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.createLesson(t, 25)
	quiz := env.createQuizForLesson(t, "Capitals", lesson.ID, []QuestionRequest{
		mcqQuestion("Capital of France?", 5, "Paris", "London"),
		blankQuestion("Sky color?", 5, "Blue"),
		{QuestionText: "Explain gravity", Type: model.ShortAnswer, Marks: 10, Duration: 5},
	})
	// 聚合重算：20分总分，40%向上取整=8分及格
	assert.Equal(t, 20, quiz.TotalMarks)
	assert.Equal(t, 8, quiz.PassMarks)

	questions, _, err := env.question.ListQuestions(quiz.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	byText := make(map[string]model.Question, 3)
	for _, q := range questions {
		byText[q.Text] = q
	}

	result, err := env.quiz.SubmitQuiz(1, quiz.ID, SubmitQuizRequest{
		TimeTaken: 90,
		Answers: []SubmitAnswer{
			{QuestionID: byText["Capital of France?"].ID, Answer: "Paris"},
			{QuestionID: byText["Sky color?"].ID, Answer: "  blue "},
			{QuestionID: byText["Explain gravity"].ID, Answer: "it pulls"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.ObtainedMarks)
	assert.Equal(t, 20, result.TotalMarks)
	assert.Equal(t, 8, result.PassMarks)
	assert.Equal(t, 2, result.CorrectAnswers)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.InDelta(t, 50.0, result.Percentage, 0.001)
	assert.True(t, result.Passed)
	assert.Equal(t, 90, result.TimeTaken)
	require.Len(t, result.Answers, 3)

	// 逐题记录随尝试一次性落库
	attempt, err := env.attemptRepo.FindByIDAndUser(result.AttemptID, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, attempt.ObtainedMarks)
	assert.Len(t, attempt.Answers, 3)

	// 通过且绑定课时：XP落入台账
	total, err := env.xpRepo.TotalByUser(1)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
}

func TestSubmitQuizSecondAttemptRejected(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.createLesson(t, 10)
	quiz := env.createQuizForLesson(t, "One shot", lesson.ID, []QuestionRequest{
		blankQuestion("1+1?", 5, "2"),
	})
	questions, _, err := env.question.ListQuestions(quiz.ID, 1, 10)
	require.NoError(t, err)

	req := SubmitQuizRequest{Answers: []SubmitAnswer{{QuestionID: questions[0].ID, Answer: "2"}}}
	_, err = env.quiz.SubmitQuiz(7, quiz.ID, req)
	require.NoError(t, err)

	_, err = env.quiz.SubmitQuiz(7, quiz.ID, req)
	assert.ErrorIs(t, err, util.ErrQuizAlreadyAttempted)

	// 另一个用户不受影响
	_, err = env.quiz.SubmitQuiz(8, quiz.ID, req)
	assert.NoError(t, err)
}

func TestSubmitQuizUnknownQuestionAborts(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.createLesson(t, 10)
	quiz := env.createQuizForLesson(t, "Strict", lesson.ID, []QuestionRequest{
		blankQuestion("1+1?", 5, "2"),
	})
	questions, _, err := env.question.ListQuestions(quiz.ID, 1, 10)
	require.NoError(t, err)

	_, err = env.quiz.SubmitQuiz(1, quiz.ID, SubmitQuizRequest{
		Answers: []SubmitAnswer{
			{QuestionID: questions[0].ID, Answer: "2"},
			{QuestionID: 99999, Answer: "ghost"},
		},
	})
	assert.ErrorIs(t, err, util.ErrQuestionNotInQuiz)

	// 整个提交失败，不留半截尝试
	attempted, err := env.attemptRepo.ExistsByUserAndQuiz(1, quiz.ID)
	require.NoError(t, err)
	assert.False(t, attempted)
}

func TestSubmitQuizMissingQuizNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.quiz.SubmitQuiz(1, 424242, SubmitQuizRequest{})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestSubmitQuizEmptyQuizPercentageGuard(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.createLesson(t, 10)
	quiz := env.createQuizForLesson(t, "Empty", lesson.ID, nil)

	result, err := env.quiz.SubmitQuiz(1, quiz.ID, SubmitQuizRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalMarks)
	assert.Zero(t, result.Percentage)
}

func TestSubmitQuizInactiveQuestionStillGradable(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.createLesson(t, 10)
	quiz := env.createQuizForLesson(t, "Mixed", lesson.ID, []QuestionRequest{
		blankQuestion("Active", 5, "yes"),
		blankQuestion("Retired", 5, "yes"),
	})
	questions, _, err := env.question.ListQuestions(quiz.ID, 1, 10)
	require.NoError(t, err)
	var active, retired model.Question
	for _, q := range questions {
		if q.Text == "Active" {
			active = q
		} else {
			retired = q
		}
	}
	_, err = env.question.ToggleStatus(retired.ID)
	require.NoError(t, err)

	// 停用题不计入快照总分，但提交里引用它仍能对账
	result, err := env.quiz.SubmitQuiz(1, quiz.ID, SubmitQuizRequest{
		Answers: []SubmitAnswer{
			{QuestionID: active.ID, Answer: "yes"},
			{QuestionID: retired.ID, Answer: "yes"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalMarks)
	assert.Equal(t, 10, result.ObtainedMarks)
}

func TestSubmitQuizFailedNoXP(t *testing.T) {
	env := newTestEnv(t)
	lesson := env.createLesson(t, 25)
	quiz := env.createQuizForLesson(t, "Hard", lesson.ID, []QuestionRequest{
		blankQuestion("Q1", 10, "right"),
	})
	questions, _, err := env.question.ListQuestions(quiz.ID, 1, 10)
	require.NoError(t, err)

	result, err := env.quiz.SubmitQuiz(1, quiz.ID, SubmitQuizRequest{
		Answers: []SubmitAnswer{{QuestionID: questions[0].ID, Answer: "wrong"}},
	})
	require.NoError(t, err)
	assert.False(t, result.Passed)

	total, err := env.xpRepo.TotalByUser(1)
	require.NoError(t, err)
	assert.Zero(t, total)
}
