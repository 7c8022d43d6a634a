package controller

import (
	"errors"
	"strconv"

	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// @Summary 我在某测验下的尝试记录
// @Tags 尝试与报告
// @Security ApiKeyAuth
// @Produce json
// @Param quizId path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quiz/{quizId}/attempts [get]
func (c *ReportController) ListAttempts(ctx *gin.Context) {
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

	attempts, err := c.ReportService.ListAttempts(user.UserID, uint(quizID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary 尝试详情（仅限本人）
// @Tags 尝试与报告
// @Security ApiKeyAuth
// @Produce json
// @Param attemptId path int true "尝试ID"
// @Success 200 {object} util.Response
// @Router /api/quiz/attempt/{attemptId} [get]
func (c *ReportController) GetAttemptDetail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attemptID, err := strconv.Atoi(ctx.Param("attemptId"))
	if err != nil {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	attempt, err := c.ReportService.GetAttemptDetail(uint(attemptID), user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, attempt)
}

// @Summary 测验排行榜
// @Tags 尝试与报告
// @Security ApiKeyAuth
// @Produce json
// @Param quizId path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quiz/{quizId}/leaderboard [get]
func (c *ReportController) Leaderboard(ctx *gin.Context) {
	quizID, err := strconv.Atoi(ctx.Param("quizId"))
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	entries, err := c.ReportService.Leaderboard(ctx.Request.Context(), uint(quizID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// @Summary 我的学习报告
// @Tags 尝试与报告
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/reports/performance [get]
func (c *ReportController) Performance(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	report, err := c.ReportService.Performance(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
