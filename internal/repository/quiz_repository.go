package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.DB.First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

// FindByIDWithActiveQuestions 学员视角：只带活跃题目及其选项
func (r *QuizRepository) FindByIDWithActiveQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", "status = ?", true).
		Preload("Questions.Options").
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// FindByIDWithAllQuestions 评分视角：含停用题目，提交里引用了停用题也要能对账
func (r *QuizRepository) FindByIDWithAllQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions").
		Preload("Questions.Options").
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindBySlug(slug string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", "status = ?", true).
		Preload("Questions.Options").
		Where("slug = ?", slug).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) TitleExists(title string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Quiz{}).Where("title = ?", title)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *QuizRepository) CreateBinding(binding *model.QuizBinding) error {
	return r.DB.Create(binding).Error
}

func (r *QuizRepository) GetBinding(quizID uint) (*model.QuizBinding, error) {
	var binding model.QuizBinding
	err := r.DB.Where("quiz_id = ?", quizID).First(&binding).Error
	if err != nil {
		return nil, err
	}
	return &binding, nil
}

// FindLessonForQuiz 返回测验绑定的课时；未绑定课时返回 gorm.ErrRecordNotFound
func (r *QuizRepository) FindLessonForQuiz(quizID uint) (*model.Lesson, error) {
	var binding model.QuizBinding
	err := r.DB.Where("quiz_id = ? AND lesson_id IS NOT NULL", quizID).First(&binding).Error
	if err != nil {
		return nil, err
	}
	var lesson model.Lesson
	if err := r.DB.First(&lesson, *binding.LessonID).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// FindQuizIDsForLesson 课时绑定的全部测验ID
func (r *QuizRepository) FindQuizIDsForLesson(lessonID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.QuizBinding{}).
		Where("lesson_id = ?", lessonID).
		Pluck("quiz_id", &ids).Error
	return ids, err
}
