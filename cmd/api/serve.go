package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"petdoc-id/internal/adapters/auth/jwtauth"
	"petdoc-id/internal/adapters/photos/cloudinary"
	"petdoc-id/internal/adapters/photos/local"
	"petdoc-id/internal/adapters/photos/remote"
	mem "petdoc-id/internal/adapters/storage/memory"
	pg "petdoc-id/internal/adapters/storage/postgres"
	rds "petdoc-id/internal/adapters/storage/redis"
	"petdoc-id/internal/domain/documents"
	"petdoc-id/internal/platform/config"
	"petdoc-id/internal/platform/httpclient"
	"petdoc-id/internal/platform/logger"
	"petdoc-id/internal/ports/photos"
	"petdoc-id/internal/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default command)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Log:                log,
		Templates:          os.DirFS(cfg.Documents.TemplatesDir),
		SignatureFont:      cfg.Documents.SignatureFont,
		LookupPath:         cfg.Public.LookupPath,
		LookupTTL:          cfg.Lookup.CacheTTL,
		MaxUpload:          cfg.HTTP.MaxUpload,
		PublicCreateLimit:  cfg.RateLimit.PublicCreateLimit,
		PublicCreateWindow: cfg.RateLimit.PublicCreateWindow,
		Cover: documents.CoverConfig{
			BaseURL:      cfg.Public.BaseURL,
			SocialURL:    cfg.Public.SocialURL,
			StoreURL:     cfg.Public.StoreURL,
			DonationInfo: cfg.Public.DonationInfo,
		},
		HealthChecks: map[string]func(context.Context) error{},
	}

	if cfg.Auth.JWTSecret != "" {
		authSvc, err := jwtauth.New(jwtauth.Config{
			Secret:        cfg.Auth.JWTSecret,
			TTL:           cfg.Auth.TokenTTL,
			AdminUser:     cfg.Auth.AdminUser,
			AdminPassHash: cfg.Auth.AdminPassHash,
		})
		if err != nil {
			return fmt.Errorf("auth: %w", err)
		}
		opts.AuthVerifier, opts.Authenticator = authSvc, authSvc
	} else {
		log.Warn("auth.jwt_secret is empty, admin routes are disabled", nil)
	}

	var db *sql.DB
	if cfg.DB.DSN != "" {
		if cfg.DB.Migrate {
			if err := pg.Migrate(cfg.DB.DSN); err != nil {
				return err
			}
		}
		db, err = pg.Open(cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer db.Close()
		opts.DB = db
		opts.HealthChecks["postgres"] = db.PingContext
	}

	redisClient, err := setupCounter(ctx, cfg, &opts)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	if err := setupPhotos(cfg, &opts); err != nil {
		return err
	}

	h, err := router.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{
			"addr":            srv.Addr,
			"counter_backend": opts.CounterBackend,
			"photos_backend":  cfg.Photos.Backend,
			"postgres":        db != nil,
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupCounter elige el contador de registro. auto: redis si hay URL, si no
// Postgres si hay DSN, si no memoria.
func setupCounter(ctx context.Context, cfg config.Config, opts *router.Options) (*goredis.Client, error) {
	backend := cfg.Counter.Backend
	if backend == "auto" {
		switch {
		case cfg.Redis.URL != "":
			backend = "redis"
		case cfg.DB.DSN != "":
			backend = "postgres"
		default:
			backend = "memory"
		}
	}

	switch backend {
	case "redis":
		client, err := rds.Open(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		store := rds.NewCounterStore(client)
		opts.Counter, opts.CounterBackend = store, "redis"
		opts.HealthChecks["redis"] = store.Health
		return client, nil
	case "memory":
		opts.Counter, opts.CounterBackend = mem.NewCounterStore(), "memory"
	default:
		// postgres: el router lo arma sobre opts.DB
		opts.CounterBackend = "postgres"
	}
	return nil, nil
}

func setupPhotos(cfg config.Config, opts *router.Options) error {
	fetchers := photos.Fetchers{}

	switch cfg.Photos.Backend {
	case "cloudinary":
		cl := cfg.Photos.Cloudinary
		store, err := cloudinary.New(cloudinary.Config{
			CloudName: cl.CloudName,
			APIKey:    cl.APIKey,
			APISecret: cl.APISecret,
			Folder:    cl.Folder,
			Optimized: cl.Optimized,
			Timeout:   cl.Timeout,
		})
		if err != nil {
			return err
		}
		opts.Photos = store
	default:
		store, err := local.New(cfg.Photos.LocalDir, cfg.Photos.PublicPath)
		if err != nil {
			return fmt.Errorf("photos: %w", err)
		}
		opts.Photos, opts.Uploads = store, store
		fetchers = append(fetchers, store)
	}

	remoteClient := httpclient.New(cfg.Photos.Cloudinary.Timeout)
	opts.PhotoFetcher = append(fetchers, remote.NewFetcher(remoteClient, cfg.HTTP.MaxUpload))
	return nil
}
