package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

// XPRepository XP台账访问层。台账即去重机制：任何发放路径都
// 必须经由同一张表的存在性检查加唯一索引兜底。
type XPRepository struct {
	DB *gorm.DB
}

func NewXPRepository(db *gorm.DB) *XPRepository {
	return &XPRepository{DB: db}
}

func (r *XPRepository) ExistsByUserAndLesson(userID, lessonID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserXPEarned{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&count).Error
	return count > 0, err
}

func (r *XPRepository) Create(entry *model.UserXPEarned) error {
	return r.DB.Create(entry).Error
}

func (r *XPRepository) TotalByUser(userID uint) (int, error) {
	var total *int
	err := r.DB.Model(&model.UserXPEarned{}).
		Select("SUM(xp_points)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *XPRepository) ListByUser(userID uint) ([]model.UserXPEarned, error) {
	var entries []model.UserXPEarned
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&entries).Error
	return entries, err
}
