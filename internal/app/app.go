package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/controller"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/pkg/configwatcher"
	"learning_platform_backend/pkg/database"
	"learning_platform_backend/pkg/logger"
	"learning_platform_backend/pkg/monitoring"
	"learning_platform_backend/pkg/security"
	"learning_platform_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	category   *repository.CategoryRepository
	course     *repository.CourseRepository
	lesson     *repository.LessonRepository
	quiz       *repository.QuizRepository
	enrollment *repository.EnrollmentRepository
	progress   *repository.ProgressRepository
	attempt    *repository.QuizAttemptRepository
}

type services struct {
	storage    *service.StorageService
	auth       *service.AuthService
	user       *service.UserService
	catalog    *service.CatalogService
	lesson     *service.LessonService
	quiz       *service.QuizService
	grading    *service.GradingService
	progress   *service.ProgressService
	enrollment *service.EnrollmentService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	category   *controller.CategoryController
	course     *controller.CourseController
	lesson     *controller.LessonController
	quiz       *controller.QuizController
	enrollment *controller.EnrollmentController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		category:   repository.NewCategoryRepository(db),
		course:     repository.NewCourseRepository(db),
		lesson:     repository.NewLessonRepository(db),
		quiz:       repository.NewQuizRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		progress:   repository.NewProgressRepository(db),
		attempt:    repository.NewQuizAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.catalog = service.NewCatalogService(repos.course, repos.category, repos.lesson, s.storage, rdb)
	s.progress = service.NewProgressService(repos.course, repos.progress)
	s.lesson = service.NewLessonService(repos.lesson, repos.course, repos.enrollment, repos.progress, s.storage)
	s.quiz = service.NewQuizService(repos.quiz, repos.lesson, repos.course, repos.attempt)
	s.grading = service.NewGradingService(repos.quiz, repos.lesson, repos.enrollment, repos.attempt, db)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, s.progress)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		category:   controller.NewCategoryController(s.catalog),
		course:     controller.NewCourseController(s.catalog),
		lesson:     controller.NewLessonController(s.catalog, s.lesson),
		quiz:       controller.NewQuizController(s.quiz, s.grading),
		enrollment: controller.NewEnrollmentController(s.enrollment),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The course cache is an optimization; the API works without it.
		logger.Log.Warn("Redis unavailable, course list caching disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, db, rdb)
	ctls := app.initControllers(svcs, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer(cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctls, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Configuration reloaded")
		for _, callback := range app.configCallbacks {
			callback(newCfg)
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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
