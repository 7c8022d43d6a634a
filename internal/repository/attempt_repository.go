package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) ExistsByUserAndQuiz(userID, quizID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count > 0, err
}

func (r *AttemptRepository) FindByIDAndUser(attemptID, userID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.
		Preload("Answers").
		Where("id = ? AND user_id = ?", attemptID, userID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) ListByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Preload("Answers").
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at desc").
		Find(&attempts).Error
	return attempts, err
}

// TopByQuiz 排行榜查询：得分降序，同分按用时升序
func (r *AttemptRepository) TopByQuiz(quizID uint, limit int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Where("quiz_id = ?", quizID).
		Order("obtained_marks desc, time_taken asc").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByUser(userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&attempts).Error
	return attempts, err
}
