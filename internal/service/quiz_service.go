package service

import (
	"errors"

	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"edulearn_backend/pkg/logger"
	"edulearn_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
	Reward      *RewardService
	DB          *gorm.DB
}

func NewQuizService(quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository, reward *RewardService, db *gorm.DB) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		Reward:      reward,
		DB:          db,
	}
}

type QuizCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`

	// 绑定到内容层级中的一层，五选一
	CourseID  *uint `json:"courseId,omitempty"`
	SubjectID *uint `json:"subjectId,omitempty"`
	ModuleID  *uint `json:"moduleId,omitempty"`
	ChapterID *uint `json:"chapterId,omitempty"`
	LessonID  *uint `json:"lessonId,omitempty"`
}

func (req *QuizCreateRequest) bindingTargets() int {
	n := 0
	for _, id := range []*uint{req.CourseID, req.SubjectID, req.ModuleID, req.ChapterID, req.LessonID} {
		if id != nil {
			n++
		}
	}
	return n
}

func (s *QuizService) CreateQuiz(req QuizCreateRequest) (*model.Quiz, error) {
	if req.bindingTargets() != 1 {
		return nil, util.ErrMultipleBindings
	}
	taken, err := s.QuizRepo.TitleExists(req.Title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrQuizTitleTaken
	}

	quiz := &model.Quiz{
		Title:       req.Title,
		Slug:        util.UniqueSlug(req.Title),
		Description: req.Description,
		Status:      true,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		binding := &model.QuizBinding{
			QuizID:    quiz.ID,
			CourseID:  req.CourseID,
			SubjectID: req.SubjectID,
			ModuleID:  req.ModuleID,
			ChapterID: req.ChapterID,
			LessonID:  req.LessonID,
		}
		return tx.Create(binding).Error
	})
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

// OptionView 学员视角的选项：绝不携带 isCorrect
type OptionView struct {
	ID     uint   `json:"id"`
	Option string `json:"option"`
}

type QuestionView struct {
	ID       uint               `json:"id"`
	Question string             `json:"question"`
	Type     model.QuestionType `json:"type"`
	Marks    int                `json:"marks"`
	Duration int                `json:"duration"`
	Options  []OptionView       `json:"options,omitempty"`
}

type QuizView struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	TotalMarks  int            `json:"totalMarks"`
	PassMarks   int            `json:"passMarks"`
	TimeLimit   int            `json:"timeLimit"`
	Status      bool           `json:"status"`
	Questions   []QuestionView `json:"questions"`
}

func toQuizView(quiz *model.Quiz) *QuizView {
	view := &QuizView{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Slug:        quiz.Slug,
		Description: quiz.Description,
		TotalMarks:  quiz.TotalMarks,
		PassMarks:   quiz.PassMarks,
		TimeLimit:   quiz.TimeLimit,
		Status:      quiz.Status,
		Questions:   make([]QuestionView, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		qv := QuestionView{
			ID:       q.ID,
			Question: q.Text,
			Type:     q.Type,
			Marks:    q.Marks,
			Duration: q.Duration,
		}
		for _, opt := range q.Options {
			qv.Options = append(qv.Options, OptionView{ID: opt.ID, Option: opt.Option})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}

func (s *QuizService) GetQuiz(id uint) (*QuizView, error) {
	quiz, err := s.QuizRepo.FindByIDWithActiveQuestions(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return toQuizView(quiz), nil
}

func (s *QuizService) GetQuizBySlug(slug string) (*QuizView, error) {
	quiz, err := s.QuizRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return toQuizView(quiz), nil
}

type QuizUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	// 可选的重新绑定，给了就必须恰好一个
	CourseID  *uint `json:"courseId,omitempty"`
	SubjectID *uint `json:"subjectId,omitempty"`
	ModuleID  *uint `json:"moduleId,omitempty"`
	ChapterID *uint `json:"chapterId,omitempty"`
	LessonID  *uint `json:"lessonId,omitempty"`
}

func (req *QuizUpdateRequest) bindingTargets() int {
	n := 0
	for _, id := range []*uint{req.CourseID, req.SubjectID, req.ModuleID, req.ChapterID, req.LessonID} {
		if id != nil {
			n++
		}
	}
	return n
}

func (s *QuizService) UpdateQuiz(id uint, req QuizUpdateRequest) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	if req.Title != "" && req.Title != quiz.Title {
		taken, err := s.QuizRepo.TitleExists(req.Title, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrQuizTitleTaken
		}
		quiz.Title = req.Title
		quiz.Slug = util.UniqueSlug(req.Title)
	}
	if req.Description != "" {
		quiz.Description = req.Description
	}

	targets := req.bindingTargets()
	if targets > 1 {
		return nil, util.ErrMultipleBindings
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(quiz).Error; err != nil {
			return err
		}
		if targets == 1 {
			// 物理删除旧绑定，软删会占住 quiz_id 唯一索引
			if err := tx.Unscoped().Where("quiz_id = ?", quiz.ID).Delete(&model.QuizBinding{}).Error; err != nil {
				return err
			}
			binding := &model.QuizBinding{
				QuizID:    quiz.ID,
				CourseID:  req.CourseID,
				SubjectID: req.SubjectID,
				ModuleID:  req.ModuleID,
				ChapterID: req.ChapterID,
				LessonID:  req.LessonID,
			}
			return tx.Create(binding).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ToggleQuizStatus(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	quiz.Status = !quiz.Status
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

type SubmitAnswer struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
	Type       string `json:"type,omitempty"`
	TimeSpent  int    `json:"timeSpent,omitempty"`
}

type SubmitQuizRequest struct {
	Answers   []SubmitAnswer `json:"answers" binding:"required,dive"`
	TimeTaken int            `json:"timeTaken"` // 秒
}

type AnswerBreakdown struct {
	QuestionID    uint   `json:"questionId"`
	Question      string `json:"question"`
	IsCorrect     bool   `json:"isCorrect"`
	ObtainedMarks int    `json:"obtainedMarks"`
	TotalMarks    int    `json:"totalMarks"`
	CorrectAnswer string `json:"correctAnswer"`
}

type AttemptResult struct {
	AttemptID      uint              `json:"attemptId"`
	ObtainedMarks  int               `json:"obtainedMarks"`
	TotalMarks     int               `json:"totalMarks"`
	PassMarks      int               `json:"passMarks"`
	CorrectAnswers int               `json:"correctAnswers"`
	TotalQuestions int               `json:"totalQuestions"`
	Percentage     float64           `json:"percentage"`
	Passed         bool              `json:"passed"`
	TimeTaken      int               `json:"timeTaken"`
	Answers        []AnswerBreakdown `json:"answers"`
}

// SubmitQuiz 评分引擎入口：校验、判分、聚合，然后把尝试连同逐题
// 记录一次性落库。每个 (user, quiz) 只允许一次提交；这里的存在性
// 检查只是快速失败，真正的执行点是 quiz_attempts 上的唯一索引。
func (s *QuizService) SubmitQuiz(userID, quizID uint, req SubmitQuizRequest) (*AttemptResult, error) {
	attempted, err := s.AttemptRepo.ExistsByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}
	if attempted {
		return nil, util.ErrQuizAlreadyAttempted
	}

	// 评分需要全部题目（含停用），提交里引用了停用题也要能找到
	quiz, err := s.QuizRepo.FindByIDWithAllQuestions(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	qByID := make(map[uint]*model.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		qByID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	// 快照：当前活跃题目的总分，独立于 Quiz 自身的缓存字段
	totalMarks := 0
	for i := range quiz.Questions {
		if quiz.Questions[i].Status {
			totalMarks += quiz.Questions[i].Marks
		}
	}

	// 全部聚合在任何写入之前算完
	obtainedMarks := 0
	correctAnswers := 0
	answerRows := make([]model.AttemptAnswer, 0, len(req.Answers))
	breakdown := make([]AnswerBreakdown, 0, len(req.Answers))
	for _, a := range req.Answers {
		q, ok := qByID[a.QuestionID]
		if !ok {
			// 未知题目ID：整个提交失败，绝不静默跳过
			return nil, util.ErrQuestionNotInQuiz
		}
		correct := gradeAnswer(q, a.Answer)
		credited := 0
		if correct {
			correctAnswers++
			credited = q.Marks
			obtainedMarks += q.Marks
		}
		answerRows = append(answerRows, model.AttemptAnswer{
			QuestionID:    q.ID,
			GivenAnswer:   a.Answer,
			ObtainedMarks: credited,
			TotalMarks:    q.Marks,
			IsCorrect:     correct,
		})
		breakdown = append(breakdown, AnswerBreakdown{
			QuestionID:    q.ID,
			Question:      q.Text,
			IsCorrect:     correct,
			ObtainedMarks: credited,
			TotalMarks:    q.Marks,
			CorrectAnswer: correctAnswerFor(q),
		})
	}

	attempt := &model.QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		ObtainedMarks:  obtainedMarks,
		TotalMarks:     totalMarks,
		CorrectAnswers: correctAnswers,
		TotalQuestions: len(quiz.Questions),
		TimeTaken:      req.TimeTaken,
		Answers:        answerRows,
	}

	// 尝试和逐题记录一次事务写入；并发重复提交撞唯一索引
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(attempt).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, util.ErrQuizAlreadyAttempted
	}
	if err != nil {
		return nil, err
	}

	percentage := float64(0)
	if totalMarks > 0 {
		percentage = float64(obtainedMarks) / float64(totalMarks) * 100
	}
	passed := obtainedMarks >= quiz.PassMarks

	result := "failed"
	if passed {
		result = "passed"
	}
	monitoring.QuizSubmissions.WithLabelValues(result).Inc()

	// 尝试已落库；发奖失败只记录，XP可凭台账重新核算
	if err := s.Reward.MaybeAwardLessonXP(userID, quizID, passed); err != nil {
		logger.Log.Error("lesson XP award failed after graded attempt",
			zap.Uint("userId", userID),
			zap.Uint("quizId", quizID),
			zap.Error(err))
	}

	return &AttemptResult{
		AttemptID:      attempt.ID,
		ObtainedMarks:  obtainedMarks,
		TotalMarks:     totalMarks,
		PassMarks:      quiz.PassMarks,
		CorrectAnswers: correctAnswers,
		TotalQuestions: len(quiz.Questions),
		Percentage:     percentage,
		Passed:         passed,
		TimeTaken:      req.TimeTaken,
		Answers:        breakdown,
	}, nil
}
