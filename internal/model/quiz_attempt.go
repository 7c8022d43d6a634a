package model

// QuizAttempt 一次评分完成的测验提交，写入后不再修改。
// (user_id, quiz_id) 唯一索引是"一人一次"规则的真正执行点，
// 服务层的预检查只用于快速失败。
// swagger:model
type QuizAttempt struct {
	BaseModel

	UserID         uint `gorm:"index;uniqueIndex:idx_attempt_user_quiz" json:"userId"`
	QuizID         uint `gorm:"index;uniqueIndex:idx_attempt_user_quiz" json:"quizId"`
	ObtainedMarks  int  `json:"obtainedMarks"`
	TotalMarks     int  `json:"totalMarks"` // 评分时刻的快照，不回指Quiz缓存
	CorrectAnswers int  `json:"correctAnswers"`
	TotalQuestions int  `json:"totalQuestions"`
	TimeTaken      int  `json:"timeTaken"` // 秒

	Answers []AttemptAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// AttemptAnswer 单题判分记录，随所属Attempt一次性写入
// swagger:model
type AttemptAnswer struct {
	BaseModel

	AttemptID     uint   `gorm:"index" json:"attemptId"`
	QuestionID    uint   `gorm:"index" json:"questionId"`
	GivenAnswer   string `gorm:"type:text" json:"givenAnswer"`
	ObtainedMarks int    `json:"obtainedMarks"`
	TotalMarks    int    `json:"totalMarks"` // 该题分值快照
	IsCorrect     bool   `json:"isCorrect"`
}

func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
