package service

import (
	"errors"

	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"

	"gorm.io/gorm"
)

// CatalogService 维护课程→学科→模块→章节层级。只做测验绑定和
// 课时挂载所需要的最小维护操作。
type CatalogService struct {
	CatalogRepo *repository.CatalogRepository
}

func NewCatalogService(catalogRepo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{CatalogRepo: catalogRepo}
}

type CourseCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (s *CatalogService) CreateCourse(req CourseCreateRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Slug:        util.UniqueSlug(req.Title),
		Description: req.Description,
		Status:      true,
	}
	if err := s.CatalogRepo.CreateCourse(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CatalogService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CatalogRepo.FindCourse(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CatalogService) ListCourses(page, limit int) ([]model.Course, int64, error) {
	return s.CatalogRepo.ListCourses(page, limit)
}

type SubjectCreateRequest struct {
	CourseID uint   `json:"courseId" binding:"required"`
	Title    string `json:"title" binding:"required"`
}

func (s *CatalogService) CreateSubject(req SubjectCreateRequest) (*model.Subject, error) {
	if _, err := s.GetCourse(req.CourseID); err != nil {
		return nil, err
	}
	subject := &model.Subject{
		CourseID: req.CourseID,
		Title:    req.Title,
		Slug:     util.UniqueSlug(req.Title),
		Status:   true,
	}
	if err := s.CatalogRepo.CreateSubject(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *CatalogService) ListSubjects(courseID uint) ([]model.Subject, error) {
	return s.CatalogRepo.ListSubjects(courseID)
}

type ModuleCreateRequest struct {
	SubjectID uint   `json:"subjectId" binding:"required"`
	Title     string `json:"title" binding:"required"`
}

func (s *CatalogService) CreateModule(req ModuleCreateRequest) (*model.CourseModule, error) {
	module := &model.CourseModule{
		SubjectID: req.SubjectID,
		Title:     req.Title,
		Slug:      util.UniqueSlug(req.Title),
		Status:    true,
	}
	if err := s.CatalogRepo.CreateModule(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *CatalogService) ListModules(subjectID uint) ([]model.CourseModule, error) {
	return s.CatalogRepo.ListModules(subjectID)
}

type ChapterCreateRequest struct {
	ModuleID uint   `json:"moduleId" binding:"required"`
	Title    string `json:"title" binding:"required"`
}

func (s *CatalogService) CreateChapter(req ChapterCreateRequest) (*model.Chapter, error) {
	chapter := &model.Chapter{
		ModuleID: req.ModuleID,
		Title:    req.Title,
		Slug:     util.UniqueSlug(req.Title),
		Status:   true,
	}
	if err := s.CatalogRepo.CreateChapter(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *CatalogService) ListChapters(moduleID uint) ([]model.Chapter, error) {
	return s.CatalogRepo.ListChapters(moduleID)
}
