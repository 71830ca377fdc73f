// Package server initializes and runs the banking server: it opens the
// database, applies migrations, wires the session store and the service
// stack, and serves HTTP until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/hardbank/hardbank/internal/logging"
	"github.com/hardbank/hardbank/internal/server/authz"
	"github.com/hardbank/hardbank/internal/server/config"
	"github.com/hardbank/hardbank/internal/server/csrf"
	"github.com/hardbank/hardbank/internal/server/httpapi"
	"github.com/hardbank/hardbank/internal/server/ledger"
	"github.com/hardbank/hardbank/internal/server/repositories/repomanager"
	"github.com/hardbank/hardbank/internal/server/services"
	"github.com/hardbank/hardbank/internal/server/sessions"
)

// purgeInterval is how often the in-memory session store is swept for
// expired entries. Redis expires keys on its own.
const purgeInterval = 5 * time.Minute

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.Server
	purge  func(now time.Time) int
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	app := &App{config: cfg, logger: logger, db: db}

	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			db.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		store = sessions.NewRedisStore(client)
	case "memory":
		ms := sessions.NewMemoryStore()
		app.purge = ms.PurgeExpired
		store = ms
	default:
		db.Close()
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}

	book := ledger.NewSQL(db, rm, cfg.TransferLimit, logger)
	creds := services.NewCredentials(rm.Users(db), cfg, logger)
	sm := sessions.NewManager(store, cfg.SessionTTL)
	bank := services.NewBank(creds, sm, csrf.NewGuard(), authz.NewGate(book), book, logger)

	cookies := httpapi.NewCookieHelper(cfg.CookieSecure, int(cfg.SessionTTL.Seconds()))
	app.api = httpapi.NewServer(bank, cookies, cfg.EndpointAddr, logger)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) runPurgeLoop(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := app.purge(now); n > 0 {
				app.logger.Debug(ctx, "purged expired sessions", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	if app.purge != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runPurgeLoop(ctx)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.api.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
