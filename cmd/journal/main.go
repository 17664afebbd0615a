package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/config"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/journal"
	kafkax "github.com/Tharindu-Theekshana/gadgethub-storefront/internal/kafka"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/postgres"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/redisx"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	configPath := pflag.String("config", "", "path to a YAML config file")
	stageOf := pflag.Int64("stage", 0, "print the projected stage of one order item and exit")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	service := cfg.ServiceName + "-journal"
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("service", service)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.JournalWorkers)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	repo := &journal.Repo{DB: db}
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if *stageOf != 0 {
		s, err := repo.Stage(ctx, *stageOf)
		if err != nil {
			log.Fatalf("stage of %d: %v", *stageOf, err)
		}
		fmt.Printf("order item %d: %s\n", *stageOf, s)
		return
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &journal.Service{
		Store: repo,
		Dedup: &redisx.Deduper{Redis: rdb, Service: service},
		Log:   logger,
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.JournalGroup, cfg.EventsTopic, cfg.JournalWorkers, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("journal consumer started: group=%s topic=%s workers=%d", cfg.JournalGroup, cfg.EventsTopic, cfg.JournalWorkers)
		return cons.Start(gctx, svc.HandleMessage)
	})
	if err := g.Wait(); err != nil {
		log.Printf("consumer exit: %v", err)
	}
	log.Println("journal stopped")
}
