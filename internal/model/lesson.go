package model

type LessonType string

const (
	LessonVideo    LessonType = "video"
	LessonDocument LessonType = "document"
)

// swagger:model
type Lesson struct {
	BaseModel

	Title        string     `gorm:"size:191" json:"title"`
	Slug         string     `gorm:"size:191;uniqueIndex" json:"slug"`
	Description  string     `gorm:"type:text" json:"description"`
	TopicName    string     `gorm:"size:191" json:"topicName"`
	Type         LessonType `gorm:"size:20" json:"type"`
	DocURL       string     `gorm:"size:500" json:"docUrl"`
	VideoURL     string     `gorm:"size:500" json:"videoUrl"`
	NoOfPages    int        `json:"noOfPages"`
	NoOfXPPoints int        `gorm:"default:0" json:"noOfXpPoints"`
	Status       bool       `gorm:"default:true" json:"status"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// LessonChapter 课时与章节的多对多关联
type LessonChapter struct {
	BaseModel

	LessonID  uint `gorm:"index;uniqueIndex:idx_lesson_chapter" json:"lessonId"`
	ChapterID uint `gorm:"index;uniqueIndex:idx_lesson_chapter" json:"chapterId"`
}

func (LessonChapter) TableName() string {
	return "lesson_chapters"
}
