package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nickearl/authgate/app"
	"github.com/nickearl/authgate/core/cipher"
	"github.com/nickearl/authgate/core/config"
	"github.com/nickearl/authgate/core/credstore"
	"github.com/nickearl/authgate/core/gate"
	"github.com/nickearl/authgate/core/logger"
	"github.com/nickearl/authgate/core/metrics"
	"github.com/nickearl/authgate/core/server"
	"github.com/nickearl/authgate/core/session"
	"github.com/nickearl/authgate/integration/google"
	"github.com/nickearl/authgate/integration/redis"
	"github.com/nickearl/authgate/integration/secretmanager"
	"github.com/nickearl/authgate/pkg/redirecturi"
)

func main() {
	var cfg app.Config
	config.MustLoad(&cfg)

	logOpts := []logger.Option{logger.WithProduction(cfg.AppName)}
	if cfg.IsDevelopment() {
		logOpts = []logger.Option{logger.WithDevelopment(cfg.AppName)}
	}
	logOpts = append(logOpts, logger.WithLevelString(cfg.LogLevel))
	log := logger.New(logOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("service exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg app.Config, log *slog.Logger) error {
	// The OAuth client identity is a hard startup dependency when federated
	// login is enabled. With login disabled no external call is made.
	creds := google.Placeholder()
	if cfg.Gate.Enabled {
		resolver, err := secretmanager.New(ctx, cfg.Secrets,
			secretmanager.WithLogger(log))
		if err != nil {
			return err
		}

		blob, err := resolver.Secret(ctx, cfg.Google.SecretName, cfg.Google.SecretVersion)
		if err != nil {
			return err
		}

		creds, err = google.ParseClientCredentials(blob)
		if err != nil {
			return err
		}
	}

	redirectURL := redirecturi.Select(creds.RedirectURIs, cfg.BasePath,
		cfg.Google.RedirectURL, cfg.IsDevelopment())
	provider := google.New(creds, redirectURL)

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("failed to close redis client", logger.Error(err))
		}
	}()

	ciph, err := cipher.New(cfg.EncryptionSecrets)
	if err != nil {
		return err
	}

	store := credstore.NewFromConfig(cfg.Credstore, redisClient, ciph,
		credstore.WithLogger(log))

	g := gate.NewFromConfig(cfg.Gate, provider, store,
		gate.WithLogger(log),
		gate.WithMetrics(metrics.New()),
	)

	sessions, err := session.NewFromConfig(cfg.Session, cfg.SessionSecrets)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, sessions, g, provider,
		app.WithLogger(log),
		app.WithHealthChecks(redis.Healthcheck(redisClient)),
	)
	if err != nil {
		return err
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}

	log.Info("starting authgate",
		slog.String("env", cfg.Env),
		slog.String("addr", cfg.Server.Addr),
		slog.Bool("federated_login", cfg.Gate.Enabled),
		slog.String("redirect_url", redirectURL),
	)

	return srv.Run(ctx, a.Router())
}
