package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Harish8848/bhasaguru-sub001/config"
	"github.com/Harish8848/bhasaguru-sub001/internal/cache"
	adminctrl "github.com/Harish8848/bhasaguru-sub001/internal/controller/admin"
	userctrl "github.com/Harish8848/bhasaguru-sub001/internal/controller/user"
	"github.com/Harish8848/bhasaguru-sub001/internal/database"
	"github.com/Harish8848/bhasaguru-sub001/internal/logger"
	"github.com/Harish8848/bhasaguru-sub001/internal/model"
	"github.com/Harish8848/bhasaguru-sub001/internal/repository"
	"github.com/Harish8848/bhasaguru-sub001/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Language Assessment Engine API
// @version 1.0
// @description Practice queries, formal test attempts, and grading for the language-learning platform.
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewContentCache,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
		),

		// Services layer
		fx.Provide(
			service.NewShuffleService,
			service.NewScoreAggregator,
			service.NewSubjectiveEvaluator,
			service.NewEvaluationService,
			service.NewTestService,
			service.NewAttemptService,
			service.NewAdminTestService,
		),

		// API controllers layer
		fx.Provide(
			userctrl.NewAssessmentController,
			adminctrl.NewAdminTestController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

// NewContentCache wires the redis-backed content cache. When redis is
// unreachable at boot the service stays up on an in-process store: the
// cache tier is a performance layer, never a correctness dependency.
func NewContentCache(lc fx.Lifecycle, cfg *config.Config) cache.Cache {
	redisCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory content cache")
		return cache.NewMemoryCache()
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return redisCache.Close()
		},
	})
	return redisCache
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	assessmentCtrl *userctrl.AssessmentController,
	adminTestCtrl *adminctrl.AdminTestController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/tests", adminTestCtrl.CreateTest)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.GET("/tests", assessmentCtrl.ListTests)
		userAPIGroup.GET("/tests/:test_id", assessmentCtrl.GetTest)
		userAPIGroup.GET("/tests/:test_id/my-attempts", assessmentCtrl.ListMyAttempts)

		userAPIGroup.POST("/practice/questions", assessmentCtrl.StartPractice)
		userAPIGroup.POST("/tests/:test_id/attempts", assessmentCtrl.StartAttempt)
		userAPIGroup.POST("/attempts/:attempt_id/submit", assessmentCtrl.SubmitAttempt)
		userAPIGroup.GET("/attempts/:attempt_id", assessmentCtrl.GetAttempt)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Assessment engine server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Test{},
		&model.Question{},
		&model.Attempt{},
		&model.AnswerRecord{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
