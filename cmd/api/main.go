package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/hartantowib/account-service/internal/config"
	"github.com/hartantowib/account-service/internal/logger"
	"github.com/hartantowib/account-service/internal/mailer"
	"github.com/hartantowib/account-service/internal/objectstore"
	"github.com/hartantowib/account-service/internal/service"
	"github.com/hartantowib/account-service/internal/store"
	"github.com/hartantowib/account-service/internal/token"
	"github.com/hartantowib/account-service/internal/transport/http/router"
)

func main() {
	config.Load()
	logger.Init()
	log := logger.Logger

	cfg := config.FromEnv()
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET_KEY is required")
	}

	db, err := store.Open(cfg.DB.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()
	log.Info().Str("host", cfg.DB.Host).Msg("database connected")

	ctx := context.Background()
	if err := store.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	storage := store.NewStorage(db)
	store.SeedAdmin(ctx, storage)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		// rate limiting fails open, so a missing redis only costs the limiter
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, rate limiting disabled")
		rdb = nil
	}

	var (
		sender   mailer.Sender
		amqpConn *amqp.Connection
	)
	if cfg.Mail.Transport == "amqp" {
		amqpConn, err = amqp.Dial(cfg.AmqpURL)
		if err != nil {
			log.Fatal().Err(err).Msg("amqp connection failed")
		}
		ch, err := amqpConn.Channel()
		if err != nil {
			log.Fatal().Err(err).Msg("amqp channel failed")
		}
		if err := mailer.DeclareExchange(ch); err != nil {
			log.Fatal().Err(err).Msg("amqp exchange declare failed")
		}
		sender = mailer.NewAMQPPublisher(ch)
		log.Info().Msg("mail transport: amqp")
	} else {
		sender = mailer.NewSMTPSender(cfg.Mail, log)
		log.Info().Str("host", cfg.Mail.Host).Msg("mail transport: smtp")
	}

	s3c, err := objectstore.NewS3Client(cfg.S3, log)
	if err != nil {
		log.Fatal().Err(err).Msg("object store init failed")
	}
	if err := s3c.EnsureBucket(ctx); err != nil {
		log.Warn().Err(err).Msg("avatar bucket check failed")
	}

	tokens := token.NewService(cfg.JWTSecret)
	authService := service.NewAuthService(storage, tokens, sender, cfg.AppLink)
	userService := service.NewUserService(storage, s3c)

	handler := router.New(router.Deps{
		Auth:   authService,
		Users:  userService,
		Tokens: tokens,
		Loader: authService,
		Redis:  rdb,
		Log:    log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		log.Info().Str("signal", s.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdown <- srv.Shutdown(ctx)
	}()

	log.Info().Str("addr", cfg.Addr).Msg("server started")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
	if err := <-shutdown; err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if amqpConn != nil {
		_ = amqpConn.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server stopped")
}
