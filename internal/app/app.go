package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"reda_kids_backend/internal/config"
	"reda_kids_backend/internal/controller"
	"reda_kids_backend/internal/repository"
	"reda_kids_backend/internal/service"
	"reda_kids_backend/internal/util"
	"reda_kids_backend/pkg/configwatcher"
	"reda_kids_backend/pkg/database"
	"reda_kids_backend/pkg/logger"
	"reda_kids_backend/pkg/monitoring"
	"reda_kids_backend/pkg/security"
	"reda_kids_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Scoring         *service.ScoringTable
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	student    *repository.StudentRepository
	teacher    *repository.TeacherRepository
	course     *repository.CourseRepository
	game       *repository.GameRepository
	gameLevel  *repository.GameLevelRepository
	statistics *repository.StatisticsRepository
	summary    *repository.SummaryCache
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	student    *service.StudentService
	teacher    *service.TeacherService
	course     *service.CourseService
	game       *service.GameService
	statistics *service.StatisticsService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	student    *controller.StudentController
	course     *controller.CourseController
	game       *controller.GameController
	statistics *controller.StatisticsController
	health     *controller.HealthController
}

// RegisterConfigCallback runs callback with every reloaded config.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	repos := &repositories{
		user:       repository.NewUserRepository(db),
		student:    repository.NewStudentRepository(db),
		teacher:    repository.NewTeacherRepository(db),
		course:     repository.NewCourseRepository(db),
		game:       repository.NewGameRepository(db),
		gameLevel:  repository.NewGameLevelRepository(db),
		statistics: repository.NewStatisticsRepository(db),
	}
	if rdb != nil {
		repos.summary = repository.NewSummaryCache(rdb, cfg.SummaryTTL())
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg, logger.Named("auth"))
	s.user = service.NewUserService(repos.user)
	s.student = service.NewStudentService(repos.student, repos.course)
	s.teacher = service.NewTeacherService(repos.teacher, repos.student)
	s.course = service.NewCourseService(repos.course, repos.teacher, repos.student)
	s.game = service.NewGameService(repos.game, repos.gameLevel)

	calculator := service.NewProgressCalculator(repos.statistics, repos.gameLevel, a.Scoring, logger.Named("progress"))
	aggregator := service.NewStatisticsAggregator(a.Scoring)

	// a nil *SummaryCache must not become a non-nil interface
	var cache service.SummaryCache
	if repos.summary != nil {
		cache = repos.summary
	}
	s.statistics = service.NewStatisticsService(
		repos.statistics,
		repos.game,
		repos.gameLevel,
		calculator,
		aggregator,
		cache,
		logger.Named("statistics"),
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user, s.student, s.teacher),
		student:    controller.NewStudentController(s.student),
		course:     controller.NewCourseController(s.course),
		game:       controller.NewGameController(s.game),
		statistics: controller.NewStatisticsController(s.statistics, s.student, s.teacher),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchConfig swaps the scoring table whenever the config file changes.
func (a *App) watchConfig(ctx context.Context) {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		rules, err := service.ScoringRulesFromConfig(cfg.Games)
		if err != nil {
			logger.Log.Error("Ignoring invalid scoring rules", zap.Error(err))
			return
		}
		a.Scoring.Replace(rules)
		logger.Log.Info("Scoring rules reloaded", zap.Int("games", len(rules)))
	})

	go func() {
		err := configwatcher.Watch(ctx, a.Config.FilePath, logger.Named("config"), func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == "debug")
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migrated")
	}

	rules, err := service.ScoringRulesFromConfig(cfg.Games)
	if err != nil {
		logger.Log.Fatal("Invalid scoring rules", zap.Error(err))
	}

	app := &App{
		Config:  cfg,
		DB:      db,
		Scoring: service.NewScoringTable(rules),
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// the summary cache is optional
		logger.Log.Warn("Redis unavailable, summary cache disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)

	if err := services.auth.EnsureAdmin(cfg.Admin); err != nil {
		logger.Log.Fatal("Failed to create bootstrap admin", zap.Error(err))
	}

	if err := util.RegisterValidators(); err != nil {
		logger.Log.Fatal("Failed to register validators", zap.Error(err))
	}

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stopWatching := context.WithCancel(context.Background())
	defer stopWatching()
	a.watchConfig(ctx)

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
