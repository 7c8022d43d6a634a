package model

// 内容层级：课程 → 学科 → 模块 → 章节 → 课时。
// 测验通过 QuizBinding 绑定到其中一层，课时层参与XP奖励。

// swagger:model
type Course struct {
	BaseModel

	Title       string `gorm:"size:191" json:"title"`
	Slug        string `gorm:"size:191;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Status      bool   `gorm:"default:true" json:"status"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model
type Subject struct {
	BaseModel

	CourseID uint   `gorm:"index" json:"courseId"`
	Title    string `gorm:"size:191" json:"title"`
	Slug     string `gorm:"size:191;uniqueIndex" json:"slug"`
	Status   bool   `gorm:"default:true" json:"status"`
}

func (Subject) TableName() string {
	return "subjects"
}

// swagger:model
type CourseModule struct {
	BaseModel

	SubjectID uint   `gorm:"index" json:"subjectId"`
	Title     string `gorm:"size:191" json:"title"`
	Slug      string `gorm:"size:191;uniqueIndex" json:"slug"`
	Status    bool   `gorm:"default:true" json:"status"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

// swagger:model
type Chapter struct {
	BaseModel

	ModuleID uint   `gorm:"index" json:"moduleId"`
	Title    string `gorm:"size:191" json:"title"`
	Slug     string `gorm:"size:191;uniqueIndex" json:"slug"`
	Status   bool   `gorm:"default:true" json:"status"`
}

func (Chapter) TableName() string {
	return "chapters"
}
