package service

import (
	"errors"

	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/pkg/logger"
	"edulearn_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RewardService 课时XP发放协调器。与课时完成流程共享 user_xp_earned
// 台账：两条路径都以同一张表的存在性检查加唯一索引作为互斥。
type RewardService struct {
	XPRepo   *repository.XPRepository
	QuizRepo *repository.QuizRepository
}

func NewRewardService(xpRepo *repository.XPRepository, quizRepo *repository.QuizRepository) *RewardService {
	return &RewardService{
		XPRepo:   xpRepo,
		QuizRepo: quizRepo,
	}
}

// MaybeAwardLessonXP 测验通过后尝试发放课时XP，最多一次。
// 未通过、未绑定课时、或 (user, lesson) 已有任何来源的台账行都是无操作。
func (s *RewardService) MaybeAwardLessonXP(userID, quizID uint, passed bool) error {
	if !passed {
		return nil
	}

	lesson, err := s.QuizRepo.FindLessonForQuiz(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 测验没有绑定课时，没有XP可发
		return nil
	}
	if err != nil {
		return err
	}

	earned, err := s.XPRepo.ExistsByUserAndLesson(userID, lesson.ID)
	if err != nil {
		return err
	}
	if earned {
		return nil
	}

	lessonID := lesson.ID
	entry := &model.UserXPEarned{
		UserID:   userID,
		LessonID: &lessonID,
		QuizID:   &quizID,
		XPPoints: lesson.NoOfXPPoints,
	}
	err = s.XPRepo.Create(entry)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 并发发放（本路径或课时完成路径）先到了，视为已发
		logger.Log.Info("lesson XP already credited concurrently",
			zap.Uint("userId", userID),
			zap.Uint("lessonId", lesson.ID))
		return nil
	}
	if err != nil {
		return err
	}

	monitoring.XPAwarded.Inc()
	logger.Log.Info("lesson XP awarded via quiz",
		zap.Uint("userId", userID),
		zap.Uint("lessonId", lesson.ID),
		zap.Uint("quizId", quizID),
		zap.Int("xpPoints", lesson.NoOfXPPoints))
	return nil
}
