package controller

import (
	"errors"
	"strconv"

	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// @Summary 创建测验
// @Tags 测验管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz body service.QuizCreateRequest true "测验信息"
// @Success 201 {object} util.Response
// @Router /api/teacher/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMultipleBindings), errors.Is(err, util.ErrQuizTitleTaken):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, quiz)
}

// @Summary 获取测验详情（学员视角，仅活跃题目）
// @Tags 测验管理
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	quiz, err := c.QuizService.GetQuiz(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// @Summary 按slug获取测验
// @Tags 测验管理
// @Security ApiKeyAuth
// @Produce json
// @Param slug path string true "测验slug"
// @Success 200 {object} util.Response
// @Router /api/quizzes/slug/{slug} [get]
func (c *QuizController) GetQuizBySlug(ctx *gin.Context) {
	quiz, err := c.QuizService.GetQuizBySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// @Summary 更新测验
// @Tags 测验管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param quiz body service.QuizUpdateRequest true "测验信息"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/{id} [patch]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.QuizUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.UpdateQuiz(uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizTitleTaken):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// @Summary 切换测验启用状态
// @Tags 测验管理
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/status/{id} [patch]
func (c *QuizController) ToggleQuizStatus(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	quiz, err := c.QuizService.ToggleQuizStatus(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// @Summary 提交测验答卷并评分
// @Tags 测验提交
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path int true "测验ID"
// @Param submission body service.SubmitQuizRequest true "答卷"
// @Success 200 {object} util.Response
// @Router /api/quiz/{quizId}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := strconv.Atoi(ctx.Param("quizId"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitQuiz(user.UserID, uint(quizID), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuizAlreadyAttempted), errors.Is(err, util.ErrQuestionNotInQuiz):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
