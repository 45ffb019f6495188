package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"github.com/atharv3903/ambroute/internal/api"
	"github.com/atharv3903/ambroute/internal/config"
	"github.com/atharv3903/ambroute/internal/db"
	"github.com/atharv3903/ambroute/internal/logging"
	"github.com/atharv3903/ambroute/internal/scenario"
)

func main() {
	cfg, err := config.FromFlagsServer(os.Args[1:])
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(2)
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		slog.Error("logger", "err", err)
		os.Exit(2)
	}

	src, closeSrc, err := openSource(cfg, log)
	if err != nil {
		log.Error("scenario source", "err", err)
		os.Exit(1)
	}
	defer closeSrc()

	srv := api.New(src, log, cfg.CacheCapacity)
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdown)
	}()

	log.Info("AMBROUTE listening", "addr", cfg.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("serve", "err", err)
		os.Exit(1)
	}
}

// openSource picks where scenarios come from: a YAML file, MySQL, or the
// scenarios compiled into the binary.
func openSource(cfg config.ServerConfig, log *slog.Logger) (api.Source, func(), error) {
	noop := func() {}

	switch {
	case cfg.ScenarioFile != "":
		scenarios, err := scenario.Load(cfg.ScenarioFile)
		if err != nil {
			return nil, noop, err
		}
		reg, err := scenario.NewRegistry(append(scenario.Builtin(), scenarios...)...)
		if err != nil {
			return nil, noop, err
		}
		log.Info("serving scenario file", "file", cfg.ScenarioFile, "scenarios", len(scenarios))
		return reg, noop, nil

	case cfg.MySQLDSN != "":
		conn, err := db.Open(cfg.MySQLDSN)
		if err != nil {
			return nil, noop, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			return nil, noop, err
		}
		store := db.Store{DB: conn}
		if err := seedIfEmpty(ctx, store, log); err != nil {
			conn.Close()
			return nil, noop, err
		}
		log.Info("serving scenarios from mysql")
		return store, func() { conn.Close() }, nil
	}

	reg, err := scenario.NewRegistry(scenario.Builtin()...)
	if err != nil {
		return nil, noop, err
	}
	log.Info("serving built-in scenarios")
	return reg, noop, nil
}

// seedIfEmpty stores the built-in scenarios in a fresh database so the
// server has something to route on.
func seedIfEmpty(ctx context.Context, store db.Store, log *slog.Logger) error {
	names, err := store.ListScenarios(ctx)
	if err != nil {
		return err
	}
	if len(names) > 0 {
		return nil
	}
	for _, sc := range scenario.Builtin() {
		if err := store.SaveScenario(ctx, sc); err != nil {
			return err
		}
		log.Info("seeded scenario", "scenario", sc.Name)
	}
	return nil
}
