package model

// Quiz 的 totalMarks/passMarks/timeLimit 是派生字段，
// 只能由题目变更后的聚合重算写入，禁止直接编辑。
// swagger:model
type Quiz struct {
	BaseModel

	Title       string `gorm:"size:191;uniqueIndex" json:"title"`
	Slug        string `gorm:"size:191;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	TotalMarks  int    `gorm:"default:0" json:"totalMarks"`
	PassMarks   int    `gorm:"default:0" json:"passMarks"`
	TimeLimit   int    `gorm:"default:0" json:"timeLimit"` // 分钟，取活跃题目时长之和
	Status      bool   `gorm:"default:true" json:"status"`

	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizBinding 测验与内容层级的一对一绑定，只允许其中一个外键非空。
// 只有绑定到课时(lesson)的测验参与XP奖励。
type QuizBinding struct {
	BaseModel

	QuizID    uint  `gorm:"uniqueIndex" json:"quizId"`
	CourseID  *uint `gorm:"index" json:"courseId,omitempty"`
	SubjectID *uint `gorm:"index" json:"subjectId,omitempty"`
	ModuleID  *uint `gorm:"index" json:"moduleId,omitempty"`
	ChapterID *uint `gorm:"index" json:"chapterId,omitempty"`
	LessonID  *uint `gorm:"index" json:"lessonId,omitempty"`
}

func (QuizBinding) TableName() string {
	return "quiz_bindings"
}
