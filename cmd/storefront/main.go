package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/config"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/gateway"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/httpx"
	kafkax "github.com/Tharindu-Theekshana/gadgethub-storefront/internal/kafka"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/orders"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/redisx"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	configPath := pflag.String("config", "", "path to a YAML config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("service", cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer; runs until Close so requests still draining can emit
	prod := kafkax.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic, 1024, logger)
	prod.Start(context.Background())

	// Backend API
	api, err := gateway.New(cfg.APIBaseURL, cfg.APITimeout, gateway.WithLogger(logger))
	if err != nil {
		log.Fatalf("gateway: %v", err)
	}

	router := httpx.NewRouter(logger)
	sh := &httpx.StorefrontHandler{
		API: api,
		Stores: func(sid string) httpx.Stores {
			return httpx.Stores{
				Session: redisx.NewSessionStore(rdb, sid, cfg.SessionTTL),
				Drafts:  redisx.NewCartDrafts(rdb, sid, cfg.SessionTTL),
			}
		},
		Board:      orders.NewBoardSize(cfg.BoardSize),
		Events:     prod,
		Cookie:     cfg.SessionCookie,
		SessionTTL: cfg.SessionTTL,
		Service:    cfg.ServiceName,
		Log:        logger,
	}
	sh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("HTTP listening at %s, backend %s", cfg.HTTPAddr, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down...")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	if err := g.Wait(); err != nil {
		log.Printf("server: %v", err)
	}

	// the server is drained, so nothing emits any more
	prod.Close()
	prod.WaitClosed()
	if n := prod.Dropped(); n > 0 {
		log.Printf("dropped %d workflow events", n)
	}
}
