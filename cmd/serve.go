package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"breeder-site-backend/internal/config"
	"breeder-site-backend/internal/handlers"
	"breeder-site-backend/internal/repository"
	"breeder-site-backend/internal/repository/memory"
	"breeder-site-backend/internal/services"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var useMemory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server until SIGINT or SIGTERM.

Examples:
  breeder-site serve                      # PostgreSQL from config.yaml / DATABASE_URL
  breeder-site serve --memory             # in-memory store, data is lost on exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runServer(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&useMemory, "memory", false, "Keep data in memory instead of PostgreSQL")
}

// stores is the persistence backing one server run
type stores struct {
	puppies   services.PuppyStore
	reviews   services.ReviewStore
	inquiries services.InquiryStore
	settings  services.SettingStore
	users     services.UserStore
	pinger    handlers.Pinger
	close     func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if useMemory {
		log.Warn().Msg("Using in-memory store")
		m := memory.New()
		return &stores{
			puppies:   m.Puppies(),
			reviews:   m.Reviews(),
			inquiries: m.Inquiries(),
			settings:  m.Settings(),
			users:     m.Users(),
			pinger:    m,
			close:     func() {},
		}, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &stores{
		puppies:   repository.NewPuppyRepository(db.X),
		reviews:   repository.NewReviewRepository(db.X),
		inquiries: repository.NewInquiryRepository(db.X),
		settings:  repository.NewSettingRepository(db.X),
		users:     repository.NewUserRepository(db.X),
		pinger:    db,
		close:     db.Close,
	}, nil
}

// objectStore picks S3 when a bucket is configured and local disk otherwise
func objectStore(ctx context.Context, cfg *config.Config) (services.ObjectStore, string, error) {
	if cfg.AWS.S3Bucket != "" {
		store, err := services.NewS3Store(ctx, services.S3Options{
			Region:    cfg.AWS.Region,
			Bucket:    cfg.AWS.S3Bucket,
			AccessKey: cfg.AWS.AccessKey,
			SecretKey: cfg.AWS.SecretKey,
			Endpoint:  cfg.AWS.Endpoint,
			PublicURL: cfg.AWS.PublicURL,
		})
		if err != nil {
			return nil, "", err
		}
		log.Info().Str("bucket", cfg.AWS.S3Bucket).Msg("Uploads go to S3")
		return store, "", nil
	}

	store, err := services.NewLocalStore(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		return nil, "", err
	}
	log.Info().Str("dir", store.Dir()).Msg("Uploads go to local disk")
	return store, store.Dir(), nil
}

func mailer(cfg *config.Config) services.Mailer {
	if cfg.SMTP.Username == "" || cfg.SMTP.Password == "" {
		log.Warn().Msg("SMTP credentials missing, inquiry emails are only logged")
		return services.LogMailer{}
	}
	return services.NewSMTPMailer(services.SMTPOptions{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.Sender(),
		FromName: cfg.SMTP.FromName,
	})
}

func runServer(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	objects, uploadDir, err := objectStore(ctx, cfg)
	if err != nil {
		return err
	}

	// Initialize services
	hub := services.NewLiveHub()
	notifier := services.NewNotifier(mailer(cfg), hub, st.puppies, cfg.AdminEmail)
	svc := handlers.Services{
		Puppies:   services.NewPuppyService(st.puppies),
		Reviews:   services.NewReviewService(st.reviews),
		Inquiries: services.NewInquiryService(st.inquiries, st.puppies),
		Settings:  services.NewSettingService(st.settings),
		Auth:      services.NewAuthService(st.users, cfg.JWT.Secret, cfg.JWT.TTL),
		Uploads:   services.NewUploadService(objects, cfg.Upload.MaxBytes),
		Notifier:  notifier,
		Live:      hub,
		Store:     st.pinger,
	}

	router := handlers.NewRouter(svc, handlers.Options{
		Logger:         log.Logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SecureCookie:   cfg.Server.SecureCookie,
		UploadDir:      uploadDir,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// in-flight inquiry emails finish before the store closes
	if err := notifier.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Abandoned pending inquiry notifications")
	}

	log.Info().Msg("Server exited")
	return nil
}
