package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/academic-voice-hub/avh-go-api/internal/config"
	"github.com/academic-voice-hub/avh-go-api/internal/database"
	"github.com/academic-voice-hub/avh-go-api/internal/dto"
	"github.com/academic-voice-hub/avh-go-api/internal/handler"
	"github.com/academic-voice-hub/avh-go-api/internal/middleware"
	"github.com/academic-voice-hub/avh-go-api/internal/models"
	"github.com/academic-voice-hub/avh-go-api/internal/repository"
	"github.com/academic-voice-hub/avh-go-api/internal/router"
	"github.com/academic-voice-hub/avh-go-api/internal/service"
	"github.com/academic-voice-hub/avh-go-api/pkg/pdfreport"
	"github.com/academic-voice-hub/avh-go-api/pkg/speech"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Student{}, &models.Teacher{}, &models.Result{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := dto.RegisterCustomValidators(validate); err != nil {
		log.Fatalf("failed to register validators: %v", err)
	}

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	resultRepo := repository.NewResultRepository(db)

	narrator := speech.NewNarrator(speech.NewLogSynthesizer(logger), logger)
	narrationOptions := speech.Options{Rate: cfg.NarrationRate, Pitch: cfg.NarrationPitch}

	authService := service.NewAuthService(studentRepo, teacherRepo, validate, cfg.JWTSecret, logger)
	resultService := service.NewResultService(resultRepo, studentRepo, validate, logger)
	analyticsService := service.NewAnalyticsService(resultRepo, redisClient, cfg.AnalyticsCacheTTL, logger)
	reportService := service.NewReportService(resultRepo, studentRepo, pdfreport.NewRenderer(), logger)
	narrationService := service.NewNarrationService(resultRepo, studentRepo, narrator, narrationOptions, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	studentHandler := handler.NewStudentHandler(resultService, reportService, narrationService, authService, logger)
	teacherHandler := handler.NewTeacherHandler(resultService, analyticsService, studentRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:    authHandler,
		StudentHandler: studentHandler,
		TeacherHandler: teacherHandler,
		JWTMiddleware:  middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, narrator)
}

func waitForShutdown(app *fiber.App, narrator *speech.Narrator) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	narrator.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
