package controller

import (
	"errors"
	"strconv"

	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// @Summary 创建课程
// @Tags 内容层级
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param course body service.CourseCreateRequest true "课程信息"
// @Success 201 {object} util.Response
// @Router /api/teacher/courses [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	var req service.CourseCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CatalogService.CreateCourse(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary 课程列表
// @Tags 内容层级
// @Security ApiKeyAuth
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	page := 1
	limit := 20
	if p := ctx.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := ctx.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	courses, total, err := c.CatalogService.ListCourses(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 课程详情
// @Tags 内容层级
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	course, err := c.CatalogService.GetCourse(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// @Summary 创建学科
// @Tags 内容层级
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param subject body service.SubjectCreateRequest true "学科信息"
// @Success 201 {object} util.Response
// @Router /api/teacher/subjects [post]
func (c *CatalogController) CreateSubject(ctx *gin.Context) {
	var req service.SubjectCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.CatalogService.CreateSubject(req)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, subject)
}

// @Summary 学科列表（按课程）
// @Tags 内容层级
// @Security ApiKeyAuth
// @Produce json
// @Param courseId query int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/subjects [get]
func (c *CatalogController) ListSubjects(ctx *gin.Context) {
	courseID, err := strconv.Atoi(ctx.Query("courseId"))
	if err != nil || courseID <= 0 {
		util.BadRequest(ctx, "invalid courseId")
		return
	}

	subjects, err := c.CatalogService.ListSubjects(uint(courseID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// @Summary 创建模块
// @Tags 内容层级
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param module body service.ModuleCreateRequest true "模块信息"
// @Success 201 {object} util.Response
// @Router /api/teacher/modules [post]
func (c *CatalogController) CreateModule(ctx *gin.Context) {
	var req service.ModuleCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.CatalogService.CreateModule(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// @Summary 模块列表（按学科）
// @Tags 内容层级
// @Security ApiKeyAuth
// @Produce json
// @Param subjectId query int true "学科ID"
// @Success 200 {object} util.Response
// @Router /api/modules [get]
func (c *CatalogController) ListModules(ctx *gin.Context) {
	subjectID, err := strconv.Atoi(ctx.Query("subjectId"))
	if err != nil || subjectID <= 0 {
		util.BadRequest(ctx, "invalid subjectId")
		return
	}

	modules, err := c.CatalogService.ListModules(uint(subjectID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// @Summary 创建章节
// @Tags 内容层级
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param chapter body service.ChapterCreateRequest true "章节信息"
// @Success 201 {object} util.Response
// @Router /api/teacher/chapters [post]
func (c *CatalogController) CreateChapter(ctx *gin.Context) {
	var req service.ChapterCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.CatalogService.CreateChapter(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, chapter)
}

// @Summary 章节列表（按模块）
// @Tags 内容层级
// @Security ApiKeyAuth
// @Produce json
// @Param moduleId query int true "模块ID"
// @Success 200 {object} util.Response
// @Router /api/chapters [get]
func (c *CatalogController) ListChapters(ctx *gin.Context) {
	moduleID, err := strconv.Atoi(ctx.Query("moduleId"))
	if err != nil || moduleID <= 0 {
		util.BadRequest(ctx, "invalid moduleId")
		return
	}

	chapters, err := c.CatalogService.ListChapters(uint(moduleID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chapters)
}
