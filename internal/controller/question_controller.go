package controller

import (
	"errors"
	"strconv"

	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// @Summary 批量创建题目
// @Tags 题库管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param questions body service.QuestionBatchRequest true "题目列表"
// @Success 201 {object} util.Response
// @Router /api/teacher/questions [post]
func (c *QuestionController) CreateQuestions(ctx *gin.Context) {
	var req service.QuestionBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.QuestionService.CreateBatch(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTrueFalseOptions):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, questions)
}

// @Summary 获取题目
// @Tags 题库管理
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	question, err := c.QuestionService.GetQuestion(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}

// @Summary 题目列表（按测验过滤，仅活跃）
// @Tags 题库管理
// @Security ApiKeyAuth
// @Produce json
// @Param quizId query int true "测验ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/teacher/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	quizID, err := strconv.Atoi(ctx.Query("quizId"))
	if err != nil || quizID <= 0 {
		util.BadRequest(ctx, "invalid quizId")
		return
	}
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

	questions, total, err := c.QuestionService.ListQuestions(uint(quizID), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  questions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 更新题目
// @Tags 题库管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Param question body service.QuestionRequest true "题目信息"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{id} [patch]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.UpdateQuestion(uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTrueFalseOptions):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}

// @Summary 切换题目启用状态
// @Tags 题库管理
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/status/{id} [patch]
func (c *QuestionController) ToggleQuestionStatus(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	question, err := c.QuestionService.ToggleStatus(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}

// @Summary 删除题目（软删除）
// @Tags 题库管理
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{id} [delete]
func (c *QuestionController) RemoveQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	question, err := c.QuestionService.Remove(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}
