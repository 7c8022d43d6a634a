package app

import (
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/middleware"
	"edulearn_backend/internal/model"

	_ "edulearn_backend/docs" // swagger 文档

	"edulearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	// Swagger文档
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	// Prometheus指标
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	// 公开路由
	api.GET("/health", c.health.HealthCheck)
	api.POST("/register", c.auth.Register)
	api.POST("/login", c.auth.Login)

	// 需要登录的路由
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/profile", c.auth.GetProfile)

		// 内容层级（只读）
		auth.GET("/courses", c.catalog.ListCourses)
		auth.GET("/courses/:id", c.catalog.GetCourse)
		auth.GET("/subjects", c.catalog.ListSubjects)
		auth.GET("/modules", c.catalog.ListModules)
		auth.GET("/chapters", c.catalog.ListChapters)

		// 测验（学员视角）
		auth.GET("/quizzes/:id", c.quiz.GetQuiz)
		auth.GET("/quizzes/slug/:slug", c.quiz.GetQuizBySlug)

		// 答卷提交与查询
		auth.POST("/quiz/:quizId/submit", c.quiz.SubmitQuiz)
		auth.GET("/quiz/:quizId/attempts", c.report.ListAttempts)
		auth.GET("/quiz/:quizId/leaderboard", c.report.Leaderboard)
		auth.GET("/quiz/attempt/:attemptId", c.report.GetAttemptDetail)

		// 课时
		auth.GET("/lessons", c.lesson.ListLessons)
		auth.GET("/lessons/:id", c.lesson.GetLesson)
		auth.POST("/lessons/:id/complete", c.lesson.CompleteLesson)

		// 学习报告
		auth.GET("/reports/performance", c.report.Performance)
	}

	// 教师与管理员路由
	teacher := api.Group("/teacher")
	teacher.Use(middleware.AuthMiddleware(cfg))
	teacher.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		teacher.POST("/courses", c.catalog.CreateCourse)
		teacher.POST("/subjects", c.catalog.CreateSubject)
		teacher.POST("/modules", c.catalog.CreateModule)
		teacher.POST("/chapters", c.catalog.CreateChapter)

		teacher.POST("/quizzes", c.quiz.CreateQuiz)
		teacher.PATCH("/quizzes/:id", c.quiz.UpdateQuiz)
		teacher.PATCH("/quizzes/status/:id", c.quiz.ToggleQuizStatus)

		teacher.POST("/questions", c.question.CreateQuestions)
		teacher.GET("/questions", c.question.ListQuestions)
		teacher.GET("/questions/:id", c.question.GetQuestion)
		teacher.PATCH("/questions/:id", c.question.UpdateQuestion)
		teacher.PATCH("/questions/status/:id", c.question.ToggleQuestionStatus)
		teacher.DELETE("/questions/:id", c.question.RemoveQuestion)

		teacher.POST("/lessons", c.lesson.CreateLesson)
		teacher.PATCH("/lessons/status/:id", c.lesson.ToggleLessonStatus)
	}
}
