package service

import (
	"errors"
	"math"

	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	QuizRepo     *repository.QuizRepository
	DB           *gorm.DB
}

func NewQuestionService(questionRepo *repository.QuestionRepository, quizRepo *repository.QuizRepository, db *gorm.DB) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		QuizRepo:     quizRepo,
		DB:           db,
	}
}

type OptionRequest struct {
	Option    string `json:"option" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionRequest struct {
	QuestionText string             `json:"questionText" binding:"required"`
	Type         model.QuestionType `json:"type" binding:"required"`
	Marks        int                `json:"marks" binding:"required,gt=0"`
	Duration     int                `json:"duration"`
	Answer       string             `json:"answer,omitempty"`
	Options      []OptionRequest    `json:"options,omitempty"`
}

type QuestionBatchRequest struct {
	QuizID    uint              `json:"quizId" binding:"required"`
	Questions []QuestionRequest `json:"questions" binding:"required,dive"`
}

func validateQuestion(req *QuestionRequest) error {
	if req.Type == model.TrueOrFalse && len(req.Options) != 2 {
		return util.ErrTrueFalseOptions
	}
	return nil
}

func buildQuestion(quizID uint, req *QuestionRequest) *model.Question {
	q := &model.Question{
		QuizID:   quizID,
		Text:     req.QuestionText,
		Type:     req.Type,
		Marks:    req.Marks,
		Duration: req.Duration,
		Status:   true,
	}
	if req.Type.IsChoice() {
		for _, opt := range req.Options {
			q.Options = append(q.Options, model.QuestionOption{
				Option:    opt.Option,
				IsCorrect: opt.IsCorrect,
			})
		}
	} else {
		// 标准答案只属于非选择类题型
		q.Answer = req.Answer
	}
	return q
}

// CreateBatch 为测验批量建题，建完后在同一事务内重算测验聚合
func (s *QuestionService) CreateBatch(req QuestionBatchRequest) ([]model.Question, error) {
	if _, err := s.QuizRepo.FindByID(req.QuizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	for i := range req.Questions {
		if err := validateQuestion(&req.Questions[i]); err != nil {
			return nil, err
		}
	}

	created := make([]model.Question, 0, len(req.Questions))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range req.Questions {
			q := buildQuestion(req.QuizID, &req.Questions[i])
			if err := tx.Create(q).Error; err != nil {
				return err
			}
			created = append(created, *q)
		}
		return s.RecomputeQuizAggregates(tx, req.QuizID)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *QuestionService) GetQuestion(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return q, err
}

func (s *QuestionService) ListQuestions(quizID uint, page, limit int) ([]model.Question, int64, error) {
	return s.QuestionRepo.ListByQuiz(quizID, true, page, limit)
}

// UpdateQuestion 整体更新题目；选项传入时全量替换。
// 事务尾部重算聚合，保证读不到过期的 totalMarks/passMarks。
func (s *QuestionService) UpdateQuestion(id uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := validateQuestion(&req); err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		q.Text = req.QuestionText
		q.Type = req.Type
		q.Marks = req.Marks
		q.Duration = req.Duration
		if req.Type.IsChoice() {
			q.Answer = ""
		} else {
			q.Answer = req.Answer
		}
		if err := tx.Model(q).Select("Text", "Type", "Marks", "Duration", "Answer").Updates(q).Error; err != nil {
			return err
		}

		if len(req.Options) > 0 {
			if err := tx.Where("question_id = ?", q.ID).Delete(&model.QuestionOption{}).Error; err != nil {
				return err
			}
			options := make([]model.QuestionOption, 0, len(req.Options))
			for _, opt := range req.Options {
				options = append(options, model.QuestionOption{
					QuestionID: q.ID,
					Option:     opt.Option,
					IsCorrect:  opt.IsCorrect,
				})
			}
			if err := tx.Create(&options).Error; err != nil {
				return err
			}
			q.Options = options
		}

		return s.RecomputeQuizAggregates(tx, q.QuizID)
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ToggleStatus 启用/停用题目并重算聚合
func (s *QuestionService) ToggleStatus(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		q.Status = !q.Status
		if err := tx.Model(q).Update("status", q.Status).Error; err != nil {
			return err
		}
		return s.RecomputeQuizAggregates(tx, q.QuizID)
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Remove 软删除：status置false，历史尝试仍可对账
func (s *QuestionService) Remove(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		q.Status = false
		if err := tx.Model(q).Update("status", false).Error; err != nil {
			return err
		}
		return s.RecomputeQuizAggregates(tx, q.QuizID)
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// RecomputeQuizAggregates 用当前活跃题目全量重算测验的
// totalMarks/passMarks/timeLimit。永远是纯重算而不是增量修补：
// 重算是当前状态的纯函数，并发下重跑一次总能收敛。
func (s *QuestionService) RecomputeQuizAggregates(tx *gorm.DB, quizID uint) error {
	agg, err := s.QuestionRepo.SumActive(tx, quizID)
	if err != nil {
		return err
	}
	passMarks := int(math.Ceil(float64(agg.TotalMarks) * 0.4))
	return tx.Model(&model.Quiz{}).
		Where("id = ?", quizID).
		Updates(map[string]interface{}{
			"total_marks": agg.TotalMarks,
			"pass_marks":  passMarks,
			"time_limit":  agg.TotalDuration,
		}).Error
}
