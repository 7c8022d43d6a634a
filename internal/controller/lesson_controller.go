package controller

import (
	"errors"
	"strconv"

	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// @Summary 创建课时
// @Tags 课时管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lesson body service.LessonCreateRequest true "课时信息"
// @Success 201 {object} util.Response
// @Router /api/teacher/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	var req service.LessonCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.CreateLesson(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// @Summary 课时详情
// @Tags 课时管理
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	lesson, err := c.LessonService.GetLesson(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// @Summary 课时列表
// @Tags 课时管理
// @Security ApiKeyAuth
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
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

	lessons, total, err := c.LessonService.ListLessons(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  lessons,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 切换课时启用状态
// @Tags 课时管理
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/lessons/status/{id} [patch]
func (c *LessonController) ToggleLessonStatus(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	lesson, err := c.LessonService.ToggleStatus(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// @Summary 标记课时完成（直接完成路径，发放XP）
// @Tags 课时管理
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/complete [post]
func (c *LessonController) CompleteLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	entry, err := c.LessonService.CompleteLesson(user.UserID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrLessonAlreadyCompleted):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, entry)
}
