package model

type QuestionType string

const (
	MCQ            QuestionType = "MCQ"
	TrueOrFalse    QuestionType = "TRUEORFALSE"
	FillInTheBlank QuestionType = "FILLINTHEBLANK"
	ShortAnswer    QuestionType = "SHORTANSWER"
	Descriptive    QuestionType = "DESCRIPTIVE"
)

// IsChoice 选择类题型由选项判分，非选择类由标准答案判分
func (t QuestionType) IsChoice() bool {
	return t == MCQ || t == TrueOrFalse
}

// swagger:model
type Question struct {
	BaseModel

	QuizID   uint         `gorm:"index" json:"quizId"`
	Text     string       `gorm:"type:text" json:"question"`
	Type     QuestionType `gorm:"size:20" json:"type"`
	Marks    int          `json:"marks"`
	Duration int          `json:"duration"` // 分钟
	Answer   string       `gorm:"type:text" json:"answer,omitempty"` // 仅非选择类题型
	Status   bool         `gorm:"default:true" json:"status"`        // 软删除/停用标记

	Options []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model
type QuestionOption struct {
	BaseModel

	QuestionID uint   `gorm:"index" json:"questionId"`
	Option     string `gorm:"type:text" json:"option"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
