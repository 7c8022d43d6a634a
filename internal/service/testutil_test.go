package service

import (
	"testing"

	"edulearn_backend/internal/config"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/pkg/database"
	"edulearn_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

type testEnv struct {
	db       *gorm.DB
	quiz     *QuizService
	question *QuestionService
	reward   *RewardService
	lesson   *LessonService
	report   *ReportService

	quizRepo    *repository.QuizRepository
	attemptRepo *repository.AttemptRepository
	xpRepo      *repository.XPRepository
}

// newTestEnv 每个测试一个独立的内存库。连接数限制为1，
// 保证内存库在测试生命周期内不被连接池丢弃。
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.Quiz.LeaderboardSize = 10
	cfg.Quiz.LeaderboardCacheTTL = 60

	userRepo := repository.NewUserRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	xpRepo := repository.NewXPRepository(db)

	reward := NewRewardService(xpRepo, quizRepo)

	return &testEnv{
		db:          db,
		quiz:        NewQuizService(quizRepo, attemptRepo, reward, db),
		question:    NewQuestionService(questionRepo, quizRepo, db),
		reward:      reward,
		lesson:      NewLessonService(lessonRepo, xpRepo),
		report:      NewReportService(attemptRepo, xpRepo, userRepo, nil, cfg),
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		xpRepo:      xpRepo,
	}
}

func (e *testEnv) createLesson(t *testing.T, xpPoints int) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{
		Title:        "Test Lesson",
		Slug:         "test-lesson",
		NoOfXPPoints: xpPoints,
		Status:       true,
	}
	require.NoError(t, e.db.Create(lesson).Error)
	return lesson
}

// createQuizForLesson 建一个绑定课时的测验并配齐题目
func (e *testEnv) createQuizForLesson(t *testing.T, title string, lessonID uint, questions []QuestionRequest) *model.Quiz {
	t.Helper()
	quiz, err := e.quiz.CreateQuiz(QuizCreateRequest{
		Title:    title,
		LessonID: &lessonID,
	})
	require.NoError(t, err)
	if len(questions) > 0 {
		_, err = e.question.CreateBatch(QuestionBatchRequest{
			QuizID:    quiz.ID,
			Questions: questions,
		})
		require.NoError(t, err)
	}
	reloaded, err := e.quizRepo.FindByID(quiz.ID)
	require.NoError(t, err)
	return reloaded
}

func (e *testEnv) createUser(t *testing.T, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, Role: model.Student}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func mcqQuestion(text string, marks int, correct string, wrong ...string) QuestionRequest {
	options := []OptionRequest{{Option: correct, IsCorrect: true}}
	for _, w := range wrong {
		options = append(options, OptionRequest{Option: w})
	}
	return QuestionRequest{
		QuestionText: text,
		Type:         model.MCQ,
		Marks:        marks,
		Duration:     2,
		Options:      options,
	}
}

func blankQuestion(text string, marks int, answer string) QuestionRequest {
	return QuestionRequest{
		QuestionText: text,
		Type:         model.FillInTheBlank,
		Marks:        marks,
		Duration:     1,
		Answer:       answer,
	}
}
