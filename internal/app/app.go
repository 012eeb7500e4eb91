package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"issue_tracker/internal/config"
	"issue_tracker/internal/config/env"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	err := config.Load(".env")
	if err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}
	s.ServiceProvider = newServiceProvider()
}

// Run - применяет миграции и запускает HTTP сервер до SIGINT/SIGTERM
func (s *App) Run() error {
	s.initServiceProvider()
	defer s.ServiceProvider.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := s.ServiceProvider.Logger()
	if err := migrate(ctx, s.ServiceProvider.DBClient(ctx)); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              s.ServiceProvider.HTTPCfg().Address(),
		Handler:           s.ServiceProvider.Router(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// Migrate - только применяет миграции
func (s *App) Migrate() error {
	s.initServiceProvider()
	defer s.ServiceProvider.Close()

	ctx := context.Background()
	if err := migrate(ctx, s.ServiceProvider.DBClient(ctx)); err != nil {
		return err
	}
	s.ServiceProvider.Logger().Info("migrations applied")
	return nil
}

// Seed - заполняет базу демо данными из yaml файла
func (s *App) Seed(path string) error {
	s.initServiceProvider()
	defer s.ServiceProvider.Close()

	cfg, err := env.NewSeedConfigFromYAML(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := migrate(ctx, s.ServiceProvider.DBClient(ctx)); err != nil {
		return err
	}

	sd := &seeder{
		txManager: s.ServiceProvider.TXManager(ctx),
		userRepo:  s.ServiceProvider.UserRepo(ctx),
		issueRepo: s.ServiceProvider.IssueRepo(ctx),
		log:       s.ServiceProvider.Logger(),
	}
	return sd.run(ctx, cfg)
}
