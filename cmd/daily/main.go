package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"github.com/notch-0314/heattech-backend/internal"
	"github.com/notch-0314/heattech-backend/internal/config"
	"github.com/notch-0314/heattech-backend/internal/gpt"
	"github.com/notch-0314/heattech-backend/internal/oura"
	"github.com/notch-0314/heattech-backend/internal/recommend"
	"github.com/notch-0314/heattech-backend/internal/storage"
)

func main() {
	schedule := flag.Bool("schedule", false, "keep running and fire daily at 06:00 instead of running once")
	flag.Parse()

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

	gptClient := gpt.Connect(gpt.ConnectProps{APIKey: cfg.OpenAIKey, Logger: logger})

	pipeline := &recommend.Pipeline{
		Users:       repos.Users,
		Master:      repos.Master,
		Messages:    repos.Messages,
		Daily:       repos.Daily,
		Readiness:   oura.NewClient(logger),
		Credentials: oura.Credentials{Key1: cfg.OuraAPIKey1, Key2: cfg.OuraAPIKey2},
		Rewriter:    recommend.NewRewriter(gptClient, logger),
		Clock:       clockwork.NewRealClock(),
		Rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		Location:    loc,
		Logger:      logger,
	}

	ctx := context.Background()

	if !*schedule {
		if err := pipeline.Run(ctx); err != nil {
			logger.Fatalf("daily message run failed: %v", err)
		}
		return
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		logger.Fatalf("failed to create scheduler: %v", err)
	}
	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(6, 0, 0))),
		gocron.NewTask(func() {
			if err := pipeline.Run(ctx); err != nil {
				logger.Errorf("daily message run failed: %v", err)
			}
		}),
		gocron.WithName("daily-messages"),
	)
	if err != nil {
		logger.Fatalf("failed to register daily job: %v", err)
	}

	s.Start()
	logger.Info("daily message scheduler started")
	select {}
}
