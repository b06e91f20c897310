package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/khawajaawaiz/goblog/config"
	"github.com/khawajaawaiz/goblog/controllers"
	"github.com/khawajaawaiz/goblog/utils"
)

func main() {
	// Load environment variables
	godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL database
	db, err := config.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := controllers.MigrateModels(db); err != nil {
		logger.Error("failed to migrate models", "error", err)
		os.Exit(1)
	}

	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	r := controllers.NewRouter(db, logger, tokens, "templates/*.html")

	logger.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
