package main

import (
	"fmt"
	"os"

	"go-erp-api/internal/repository"
	"go-erp-api/internal/service"
	"go-erp-api/pkg/config"
	"go-erp-api/pkg/database"
	"go-erp-api/pkg/jwt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	dbURL string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "erpctl",
	Short:         "Administrative tasks for the ERP master-data API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to DATABASE_URL / DB_* settings)")
}

// connect loads the configuration, applies --db and opens the database.
func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if dbURL != "" {
		cfg.Database.URL = dbURL
	}
	cfg.Database.LogLevel = "silent"

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func newAuthService(cfg *config.Config, db *gorm.DB) service.AuthService {
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)
	return service.NewAuthService(repository.NewUserRepo(db), tokens)
}
