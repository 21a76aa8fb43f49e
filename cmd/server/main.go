package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/notch-0314/heattech-backend/internal"
	"github.com/notch-0314/heattech-backend/internal/api"
	"github.com/notch-0314/heattech-backend/internal/auth"
	"github.com/notch-0314/heattech-backend/internal/config"
	"github.com/notch-0314/heattech-backend/internal/oura"
	"github.com/notch-0314/heattech-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}

	repos, err := storage.NewRepositories(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	app := &api.Deps{
		Log:         logger,
		Repos:       repos,
		TokenIssuer: auth.NewTokenIssuer(cfg.JWTSecret, clockwork.NewRealClock()),
		OuraKeys:    oura.Credentials{Key1: cfg.OuraAPIKey1, Key2: cfg.OuraAPIKey2},
		Oura:        oura.NewClient(logger),
		Clk:         clockwork.NewRealClock(),
		Loc:         loc,
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	api.Register(r, app)

	logger.Infof("Server running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
