package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"odigyan_backend/internal/config"
	"odigyan_backend/internal/controller"
	"odigyan_backend/internal/repository"
	"odigyan_backend/internal/service"
	"odigyan_backend/internal/util"
	"odigyan_backend/pkg/database"
	"odigyan_backend/pkg/logger"
	"odigyan_backend/pkg/monitoring"
	"odigyan_backend/pkg/security"
	"odigyan_backend/pkg/tracing"

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
	course     *repository.CourseRepository
	student    *repository.StudentRepository
	banner     *repository.BannerRepository
	material   *repository.MaterialRepository
	question   *repository.QuestionRepository
	testResult *repository.TestResultRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	telegram *service.TelegramService
	course   *service.CourseService
	student  *service.StudentService
	banner   *service.BannerService
	material *service.MaterialService
	mockTest *service.MockTestService
}

type controllers struct {
	auth     *controller.AuthController
	course   *controller.CourseController
	student  *controller.StudentController
	banner   *controller.BannerController
	material *controller.MaterialController
	mockTest *controller.MockTestController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 热更新回调入口，由配置监听器触发
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		course:     repository.NewCourseRepository(db),
		student:    repository.NewStudentRepository(db),
		banner:     repository.NewBannerRepository(db),
		material:   repository.NewMaterialRepository(db),
		question:   repository.NewQuestionRepository(db),
		testResult: repository.NewTestResultRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.telegram = service.NewTelegramService(&cfg.Telegram)
	s.auth = service.NewAuthService(repos.user, service.NewGoogleTokenVerifier(cfg.Auth.TokenInfoURL), cfg)
	s.course = service.NewCourseService(repos.course, rdb, s.telegram)
	s.student = service.NewStudentService(repos.student, repos.course, repos.testResult)
	s.banner = service.NewBannerService(repos.banner, s.storage, s.telegram, cfg)
	s.material = service.NewMaterialService(repos.material, repos.course, s.storage, cfg)
	s.mockTest = service.NewMockTestService(repos.question, repos.testResult, repos.course, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		course:   controller.NewCourseController(s.course, s.student),
		student:  controller.NewStudentController(s.student),
		banner:   controller.NewBannerController(s.banner),
		material: controller.NewMaterialController(s.material),
		mockTest: controller.NewMockTestController(s.mockTest, s.course),
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
		maxRequests = 10000
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

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	// 配置指定的管理员账号在启动时兜底创建
	if err := services.auth.EnsureAdminAccount(); err != nil {
		logger.Log.Error("Failed to ensure admin account", zap.Error(err))
	}

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("odigyan-portal", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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
