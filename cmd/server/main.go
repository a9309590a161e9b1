// Apna Journey platform API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/apnajourney/platform/docs"
	"github.com/apnajourney/platform/internal/api"
	"github.com/apnajourney/platform/internal/core/ports"
	"github.com/apnajourney/platform/internal/infrastructure/config"
	mongostore "github.com/apnajourney/platform/internal/infrastructure/db/mongo"
	redisstore "github.com/apnajourney/platform/internal/infrastructure/db/redis"
	"github.com/apnajourney/platform/internal/infrastructure/mail"
	"github.com/apnajourney/platform/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Apna Journey API
// @version         1.0
// @description     Jobs and news platform for Gaya, Bihar.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Mail (optional: without SMTP_HOST no acknowledgements are sent) ---
	var mailer ports.Mailer
	if cfg.SMTP.Host != "" {
		m, err := mail.NewMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			UseTLS:   cfg.SMTP.UseTLS,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("smtp client failed")
		}
		mailer = m
	} else {
		log.Warn().Msg("SMTP_HOST not set, inquiry acknowledgements disabled")
	}

	e, dispatcher := api.NewRouter(cfg, db, rdb, mailer, log)
	dispatcher.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

type indexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	repos := []indexEnsurer{
		mongostore.NewAccountRepository(db),
		mongostore.NewJobRepository(db),
		mongostore.NewNewsRepository(db),
		mongostore.NewApplicationRepository(db),
		mongostore.NewInquiryRepository(db),
	}
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
