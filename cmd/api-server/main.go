package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"reviewhub/database"
	"reviewhub/internal/api"
	"reviewhub/internal/api/handler"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
	"reviewhub/internal/config"
	"reviewhub/internal/mail"
	"reviewhub/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("could not load config: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogFormat == "text",
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	cancel()

	mailer, err := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	if err != nil {
		log.Fatal().Err(err).Msg("mailer setup failed")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	codeStore := repository.NewConfirmationCodeStore(rdb)

	// Services
	authService := service.NewAuthService(userRepo, codeStore, mailer, cfg.JWTSecret, cfg.TokenTTL, cfg.ConfirmationCodeTTL)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	router := api.NewRouter(
		api.Handlers{
			Auth:       handler.NewAuthHandler(authService),
			Users:      handler.NewUserHandler(userService),
			Categories: handler.NewCategoryHandler(categoryService),
			Genres:     handler.NewGenreHandler(genreService),
			Titles:     handler.NewTitleHandler(titleService),
			Reviews:    handler.NewReviewHandler(reviewService),
			Comments:   handler.NewCommentHandler(commentService),
		},
		api.Middlewares{
			Auth:         middleware.Auth(authService, userRepo),
			RequireAdmin: middleware.RequireAdmin(),
			AuthRate:     middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst),
		},
		log,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
