package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.Preload("Options").First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) ListByQuiz(quizID uint, activeOnly bool, page, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64
	query := r.DB.Model(&model.Question{}).Where("quiz_id = ?", quizID)
	if activeOnly {
		query = query.Where("status = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Options").Order("created_at desc").Offset(offset).Limit(limit).Find(&questions).Error
	return questions, total, err
}

// ActiveAggregates 活跃题目的分值与时长总和，聚合重算的数据源
type ActiveAggregates struct {
	TotalMarks    int
	TotalDuration int
}

func (r *QuestionRepository) SumActive(tx *gorm.DB, quizID uint) (ActiveAggregates, error) {
	var agg struct {
		TotalMarks    *int
		TotalDuration *int
	}
	err := tx.Model(&model.Question{}).
		Select("SUM(marks) as total_marks, SUM(duration) as total_duration").
		Where("quiz_id = ? AND status = ?", quizID, true).
		Scan(&agg).Error
	if err != nil {
		return ActiveAggregates{}, err
	}
	result := ActiveAggregates{}
	if agg.TotalMarks != nil {
		result.TotalMarks = *agg.TotalMarks
	}
	if agg.TotalDuration != nil {
		result.TotalDuration = *agg.TotalDuration
	}
	return result, nil
}
