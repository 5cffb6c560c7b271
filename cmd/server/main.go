package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/altarmaker/altarmaker-api/internal/api"
	"github.com/altarmaker/altarmaker-api/internal/core/domain"
	"github.com/altarmaker/altarmaker-api/internal/infrastructure/config"
	mongodb "github.com/altarmaker/altarmaker-api/internal/infrastructure/db/mongo"
	redisdb "github.com/altarmaker/altarmaker-api/internal/infrastructure/db/redis"
	"github.com/altarmaker/altarmaker-api/internal/infrastructure/mail"
	"github.com/altarmaker/altarmaker-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.SecretKey == "" {
		log.Fatal().Msg("SECRET_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	client, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		// Redis only backs the resend throttle; run without it.
		log.Warn().Err(err).Msg("redis unavailable, mail throttling disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	if err := seedInitialAdmin(ctx, db, cfg.Admin, log); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.Mail.Server,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		UseTLS:   cfg.Mail.UseTLS,
		Sender:   cfg.Mail.Sender,
		AppURL:   cfg.AppURL,
	}, log)

	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     rdb,
		Mailer:    mailer,
		SecretKey: cfg.SecretKey,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("altarmaker api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewWallDesignRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewDesignSessionRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewFeedbackRepository(db).EnsureIndexes(ctx)
}

// seedInitialAdmin creates the first admin account from the environment when
// none exists. A no-op when the admin env vars are unset or an admin is
// already present.
func seedInitialAdmin(ctx context.Context, db *mongo.Database, cfg config.AdminConfig, log zerolog.Logger) error {
	if cfg.Username == "" || cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	users := mongodb.NewUserRepository(db)
	has, err := users.HasAdmin(ctx)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin, err := users.Create(ctx, &domain.User{
		Username:      cfg.Username,
		Email:         cfg.Email,
		PasswordHash:  string(hash),
		Role:          domain.RoleAdmin,
		EmailVerified: true,
		IsActive:      true,
		CreatedBy:     "system",
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	log.Info().Str("username", admin.Username).Msg("initial admin created")
	return nil
}
