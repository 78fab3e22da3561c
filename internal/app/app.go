package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"course_market_backend/internal/config"
	"course_market_backend/internal/controller"
	"course_market_backend/internal/repository"
	"course_market_backend/internal/service"
	"course_market_backend/pkg/configwatcher"
	"course_market_backend/pkg/database"
	"course_market_backend/pkg/logger"
	"course_market_backend/pkg/monitoring"
	"course_market_backend/pkg/security"
	"course_market_backend/pkg/tracing"

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
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user           *repository.UserRepository
	course         *repository.CourseRepository
	lesson         *repository.LessonRepository
	enrollment     *repository.EnrollmentRepository
	lessonProgress *repository.LessonProgressRepository
	certificate    *repository.CertificateRepository
}

type services struct {
	storage        *service.StorageService
	mail           *service.MailService
	auth           *service.AuthService
	user           *service.UserService
	content        *service.ContentService
	catalog        *service.CatalogService
	course         *service.CourseService
	enrollment     *service.EnrollmentService
	certificate    *service.CertificateService
	learning       *service.LearningService
	reconciliation *service.ReconciliationService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	catalog     *controller.CatalogController
	course      *controller.CourseController
	enrollment  *controller.EnrollmentController
	learning    *controller.LearningController
	certificate *controller.CertificateController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// watchConfig hot-reloads configs/config.yaml and fans the new config out to
// registered callbacks. Connections established at startup (DB, Redis) are
// not reopened.
func (a *App) watchConfig() {
	go configwatcher.WatchConfig(filepath.Join("configs", "config.yaml"), a.Config, func(raw interface{}) {
		newCfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("Config reloaded")
		a.Config = newCfg
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
	})
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		course:         repository.NewCourseRepository(db),
		lesson:         repository.NewLessonRepository(db),
		enrollment:     repository.NewEnrollmentRepository(db),
		lessonProgress: repository.NewLessonProgressRepository(db),
		certificate:    repository.NewCertificateRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.mail = service.NewMailService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.content = service.NewContentService(s.storage, cfg)
	s.catalog = service.NewCatalogService(repos.course, repos.lesson, repos.enrollment, repos.user, rdb)
	s.course = service.NewCourseService(repos.course, repos.lesson, repos.enrollment, s.catalog)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, repos.lesson, repos.user, s.mail)
	s.certificate = service.NewCertificateService(repos.certificate, repos.course, repos.user, s.mail)
	s.learning = service.NewLearningService(
		repos.course,
		repos.lesson,
		repos.enrollment,
		repos.lessonProgress,
		repos.certificate,
		s.enrollment,
		s.certificate,
	)
	s.reconciliation = service.NewReconciliationService(repos.enrollment, repos.lesson, repos.lessonProgress)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user),
		user:        controller.NewUserController(s.user, s.content),
		catalog:     controller.NewCatalogController(s.catalog),
		course:      controller.NewCourseController(s.course, s.content),
		enrollment:  controller.NewEnrollmentController(s.enrollment),
		learning:    controller.NewLearningController(s.learning),
		certificate: controller.NewCertificateController(s.certificate),
		health:      controller.NewHealthController(),
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

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Catalog caching degrades to direct DB reads without Redis.
		logger.Log.Warn("Failed to initialize redis, catalog cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("course-market", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	services.reconciliation.Start()

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.mail.Cfg = &newCfg.Mail
	})
	app.watchConfig()

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

	if a.services != nil && a.services.reconciliation != nil {
		a.services.reconciliation.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
