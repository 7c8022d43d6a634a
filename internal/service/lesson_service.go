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

type LessonService struct {
	LessonRepo *repository.LessonRepository
	XPRepo     *repository.XPRepository
}

func NewLessonService(lessonRepo *repository.LessonRepository, xpRepo *repository.XPRepository) *LessonService {
	return &LessonService{
		LessonRepo: lessonRepo,
		XPRepo:     xpRepo,
	}
}

type LessonCreateRequest struct {
	Title        string           `json:"title" binding:"required"`
	Description  string           `json:"description"`
	TopicName    string           `json:"topicName"`
	Type         model.LessonType `json:"lessonType"`
	DocURL       string           `json:"docUrl"`
	VideoURL     string           `json:"videoUrl"`
	NoOfPages    int              `json:"noOfPages"`
	NoOfXPPoints int              `json:"noOfXpPoints"`
	ChapterIDs   []uint           `json:"chapterIds"`
}

func (s *LessonService) CreateLesson(req LessonCreateRequest) (*model.Lesson, error) {
	lesson := &model.Lesson{
		Title:        req.Title,
		Slug:         util.UniqueSlug(req.Title),
		Description:  req.Description,
		TopicName:    req.TopicName,
		Type:         req.Type,
		DocURL:       req.DocURL,
		VideoURL:     req.VideoURL,
		NoOfPages:    req.NoOfPages,
		NoOfXPPoints: req.NoOfXPPoints,
		Status:       true,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	if len(req.ChapterIDs) > 0 {
		if err := s.LessonRepo.ReplaceChapters(lesson.ID, req.ChapterIDs); err != nil {
			return nil, err
		}
	}
	return lesson, nil
}

func (s *LessonService) GetLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return lesson, err
}

func (s *LessonService) ListLessons(page, limit int) ([]model.Lesson, int64, error) {
	return s.LessonRepo.ListActive(page, limit)
}

func (s *LessonService) ToggleStatus(id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	lesson.Status = !lesson.Status
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// CompleteLesson 课时直接完成路径。与测验发奖路径共用同一张XP台账：
// 无论已有行来自哪条路径，这里都视为已完成，不再发放。
func (s *LessonService) CompleteLesson(userID, lessonID uint) (*model.UserXPEarned, error) {
	lesson, err := s.LessonRepo.FindActiveByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	completed, err := s.XPRepo.ExistsByUserAndLesson(userID, lessonID)
	if err != nil {
		return nil, err
	}
	if completed {
		return nil, util.ErrLessonAlreadyCompleted
	}

	lid := lesson.ID
	entry := &model.UserXPEarned{
		UserID:   userID,
		LessonID: &lid,
		XPPoints: lesson.NoOfXPPoints,
	}
	err = s.XPRepo.Create(entry)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 并发的另一条路径刚写入了台账
		return nil, util.ErrLessonAlreadyCompleted
	}
	if err != nil {
		return nil, err
	}

	monitoring.XPAwarded.Inc()
	logger.Log.Info("lesson completed directly",
		zap.Uint("userId", userID),
		zap.Uint("lessonId", lesson.ID),
		zap.Int("xpPoints", lesson.NoOfXPPoints))
	return entry, nil
}
