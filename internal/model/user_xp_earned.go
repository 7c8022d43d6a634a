package model

// UserXPEarned XP台账。(user_id, lesson_id) 唯一索引是
// 课时奖励去重的唯一依据：无论XP来自直接完成课时还是
// 通过绑定该课时的测验，双方都先查同一张表再写入。
// swagger:model
type UserXPEarned struct {
	BaseModel

	UserID   uint  `gorm:"index;uniqueIndex:idx_xp_user_lesson" json:"userId"`
	LessonID *uint `gorm:"uniqueIndex:idx_xp_user_lesson" json:"lessonId,omitempty"`
	QuizID   *uint `gorm:"index" json:"quizId,omitempty"` // 来源测验，仅做溯源
	XPPoints int   `gorm:"default:0" json:"xpPoints"`
}

func (UserXPEarned) TableName() string {
	return "user_xp_earned"
}
