package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.DB.First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) FindActiveByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Where("id = ? AND status = ?", id, true).First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) ListActive(page, limit int) ([]model.Lesson, int64, error) {
	var lessons []model.Lesson
	var total int64
	query := r.DB.Model(&model.Lesson{}).Where("status = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&lessons).Error
	return lessons, total, err
}

func (r *LessonRepository) ReplaceChapters(lessonID uint, chapterIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("lesson_id = ?", lessonID).Delete(&model.LessonChapter{}).Error; err != nil {
			return err
		}
		if len(chapterIDs) == 0 {
			return nil
		}
		links := make([]model.LessonChapter, 0, len(chapterIDs))
		for _, cid := range chapterIDs {
			links = append(links, model.LessonChapter{LessonID: lessonID, ChapterID: cid})
		}
		return tx.Create(&links).Error
	})
}
