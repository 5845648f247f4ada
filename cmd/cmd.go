package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"breeder-site-backend/internal/config"
	"breeder-site-backend/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "breeder-site",
	Short: "Backend of the puppy breeder site",
	Long: `Serves the JSON API behind the breeder site: puppy listings, reviews,
contact inquiries, site settings, image uploads and operator sessions.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the YAML configuration file")
	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd)
}

// loadConfig reads the configuration and sets up the global logger
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	setupLogger(cfg.Log)
	return cfg, nil
}

// openDatabase connects to PostgreSQL and applies the schema
func openDatabase(ctx context.Context, cfg *config.Config) (*repository.DB, error) {
	db, err := repository.Open(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		return nil, err
	}
	log.Info().Msg("Database connection established")

	if err := repository.Migrate(ctx, db.X); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// setupLogger configures zerolog logger
func setupLogger(cfg config.LogConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	switch strings.ToLower(cfg.Level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
