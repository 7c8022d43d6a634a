package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edulearn_backend/internal/config"
	"edulearn_backend/internal/controller"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/service"
	"edulearn_backend/pkg/configwatcher"
	"edulearn_backend/pkg/database"
	"edulearn_backend/pkg/logger"
	"edulearn_backend/pkg/monitoring"
	"edulearn_backend/pkg/security"
	"edulearn_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	catalog  *repository.CatalogRepository
	quiz     *repository.QuizRepository
	question *repository.QuestionRepository
	attempt  *repository.AttemptRepository
	lesson   *repository.LessonRepository
	xp       *repository.XPRepository
}

type services struct {
	auth     *service.AuthService
	catalog  *service.CatalogService
	quiz     *service.QuizService
	question *service.QuestionService
	reward   *service.RewardService
	lesson   *service.LessonService
	report   *service.ReportService
}

type controllers struct {
	auth     *controller.AuthController
	catalog  *controller.CatalogController
	quiz     *controller.QuizController
	question *controller.QuestionController
	lesson   *controller.LessonController
	report   *controller.ReportController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		catalog:  repository.NewCatalogRepository(db),
		quiz:     repository.NewQuizRepository(db),
		question: repository.NewQuestionRepository(db),
		attempt:  repository.NewAttemptRepository(db),
		lesson:   repository.NewLessonRepository(db),
		xp:       repository.NewXPRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.catalog = service.NewCatalogService(repos.catalog)
	s.reward = service.NewRewardService(repos.xp, repos.quiz)
	s.quiz = service.NewQuizService(repos.quiz, repos.attempt, s.reward, db)
	s.question = service.NewQuestionService(repos.question, repos.quiz, db)
	s.lesson = service.NewLessonService(repos.lesson, repos.xp)
	s.report = service.NewReportService(repos.attempt, repos.xp, repos.user, rdb, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		catalog:  controller.NewCatalogController(s.catalog),
		quiz:     controller.NewQuizController(s.quiz),
		question: controller.NewQuestionController(s.question),
		lesson:   controller.NewLessonController(s.lesson),
		report:   controller.NewReportController(s.report),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式默认不自动迁移，需显式 --migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Database migration failed", zap.Error(err))
		}
		logger.Log.Info("Database migration completed")
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 排行榜缓存降级为直查数据库，不阻塞启动
		logger.Log.Warn("Failed to initialize redis, leaderboard cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("edulearn-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	// 配置热更新：目前只有排行榜参数支持运行中调整
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if updated, ok := newCfg.(*config.Config); ok {
			cfg.Quiz = updated.Quiz
			logger.Log.Info("Config reloaded",
				zap.Int("leaderboardSize", cfg.Quiz.LeaderboardSize),
				zap.Int("leaderboardCacheTTL", cfg.Quiz.LeaderboardCacheTTL))
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
