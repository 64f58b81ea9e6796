package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NiteMackfly/Discord-Casino-Bot/internal/config"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/games"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/ledger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/logger"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/network/router"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/payout"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/services"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/session"
	"github.com/NiteMackfly/Discord-Casino-Bot/internal/storage"
)

// ShutdownTimeout - время на завершение запросов и ожидающих игр
const ShutdownTimeout = 5 * time.Second

// App - собранный сервис: хранилище, реестр, движок игр и HTTP сервер
type App struct {
	Storage storage.AccountsStorage
	Ledger  *ledger.Ledger
	Engine  *games.Engine
	Economy *services.Economy
	Server  *http.Server
}

// New - сборка сервиса по конфигурации
func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	rnd, err := payout.NewRandom()
	if err != nil {
		store.Close()
		return nil, err
	}

	accounts := ledger.NewLedger(store, cfg.Storage, cfg.Economy.ReserveBounty)
	engine := games.NewEngine(accounts, session.NewGuard(), cfg.Games, rnd)
	economy := services.NewEconomy(accounts, cfg.Economy)
	r := router.NewRouter(cfg, economy, engine)

	return &App{
		Storage: store,
		Ledger:  accounts,
		Engine:  engine,
		Economy: economy,
		Server: &http.Server{
			Addr:    cfg.Server.ListenAddr,
			Handler: r.HandleRouter(),
		},
	}, nil
}

// Shutdown - остановка сервера, отмена ожидающих игр и закрытие хранилища
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown server: %w", err))
	}
	if err := a.Engine.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown engine: %w", err))
	}
	if err := a.Storage.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	return errors.Join(errs...)
}

func Run(cfg config.Config) error {
	app, err := New(context.Background(), cfg)
	if err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	failed := make(chan error, 1)
	go func() {
		logger.Infow("starting server", "address", cfg.Server.ListenAddr, "storage", storageKind(cfg.Storage))
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case <-stop:
		logger.Info("Shutdown server")
	case err = <-failed:
		logger.Error("error listen server", err.Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if shutdownErr := app.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("error shutdown server", shutdownErr.Error())
		err = errors.Join(err, shutdownErr)
	}
	logger.Info("Server stopped")
	return err
}

func storageKind(cfg config.StorageConfig) string {
	if cfg.DatabaseDSN != "" {
		return "postgres"
	}
	return "sqlite:" + cfg.SQLitePath
}
