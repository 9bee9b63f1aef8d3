package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/xbraken/holiday-planner/internal/config"
	"github.com/xbraken/holiday-planner/internal/db"
	"github.com/xbraken/holiday-planner/internal/server"
	"github.com/xbraken/holiday-planner/internal/store"
)

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig      func() config.Config
	connectPostgres func(config.Config) (*pgxpool.Pool, error)
	connectRedis    func(config.Config) *redis.Client
	notify          func(chan<- os.Signal, ...os.Signal)
	run             func(context.Context, config.Config, store.Store, *redis.Client, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig:      config.Load,
		connectPostgres: db.ConnectPostgres,
		connectRedis:    db.ConnectRedis,
		notify:          signal.Notify,
		run:             Run,
	}
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	rdb := deps.connectRedis(cfg)

	var pg *pgxpool.Pool
	if rdb == nil && cfg.PostgresURL != "" {
		var err error
		pg, err = deps.connectPostgres(cfg)
		if err != nil {
			log.Printf("postgres connection failed, using file storage: %v", err)
		}
	}
	defer func() {
		if pg != nil {
			pg.Close()
		}
	}()

	st := buildStore(cfg, rdb, pg)

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, st, rdb, signals, nil); err != nil {
		log.Printf("server exited with error: %v", err)
	}
}

// buildStore picks the sync backend once at startup: redis when configured,
// then the postgres-backed emulator, then a plain file.
func buildStore(cfg config.Config, rdb *redis.Client, pg *pgxpool.Pool) store.Store {
	switch {
	case rdb != nil:
		return store.NewRedis(rdb, cfg.DocPath)
	case pg != nil:
		return store.NewLocal(store.PostgresSlot{DB: pg, Key: cfg.DocPath})
	default:
		return store.NewLocal(store.FileSlot{Path: cfg.LocalStorePath})
	}
}

type ListenFunc func(app *fiber.App, addr string) error

var defaultListen ListenFunc = func(app *fiber.App, addr string) error {
	return app.Listen(addr)
}

var shutdownFn = func(app *fiber.App, ctx context.Context) error {
	return app.ShutdownWithContext(ctx)
}

// Run starts the sync backend and HTTP server and waits for termination.
func Run(ctx context.Context, cfg config.Config, st store.Store, rdb *redis.Client, signals <-chan os.Signal, listen ListenFunc) error {
	if err := st.Start(ctx); err != nil {
		return err
	}

	srv := server.NewServer(cfg, st, rdb)

	streamCtx, stopStream := context.WithCancel(context.Background())
	defer stopStream()
	go srv.Stream.Run(streamCtx, st)

	if listen == nil {
		listen = defaultListen
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- listen(srv.App, cfg.ServerPort)
	}()

	select {
	case <-signals:
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdownFn(srv.App, shutdownCtx); err != nil {
		return err
	}
	stopStream()
	st.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
	return nil
}
