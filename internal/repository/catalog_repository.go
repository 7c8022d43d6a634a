package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository 内容层级的薄访问层：课程/学科/模块/章节。
// 测验绑定和课时挂载需要这些行真实存在。
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) CreateCourse(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CatalogRepository) FindCourse(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.DB.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CatalogRepository) ListCourses(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64
	query := r.DB.Model(&model.Course{}).Where("status = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CatalogRepository) CreateSubject(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *CatalogRepository) ListSubjects(courseID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Where("course_id = ? AND status = ?", courseID, true).
		Order("created_at asc").Find(&subjects).Error
	return subjects, err
}

func (r *CatalogRepository) CreateModule(module *model.CourseModule) error {
	return r.DB.Create(module).Error
}

func (r *CatalogRepository) ListModules(subjectID uint) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("subject_id = ? AND status = ?", subjectID, true).
		Order("created_at asc").Find(&modules).Error
	return modules, err
}

func (r *CatalogRepository) CreateChapter(chapter *model.Chapter) error {
	return r.DB.Create(chapter).Error
}

func (r *CatalogRepository) ListChapters(moduleID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.Where("module_id = ? AND status = ?", moduleID, true).
		Order("created_at asc").Find(&chapters).Error
	return chapters, err
}
