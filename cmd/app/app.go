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

	"go.uber.org/zap"

	"github.com/vietanh2810/festivals-api/internal/api"
	"github.com/vietanh2810/festivals-api/internal/config"
	"github.com/vietanh2810/festivals-api/internal/db"
	"github.com/vietanh2810/festivals-api/internal/filestore"
	"github.com/vietanh2810/festivals-api/internal/logger"
	"github.com/vietanh2810/festivals-api/internal/repository"
	"github.com/vietanh2810/festivals-api/internal/repository/dao"
	"github.com/vietanh2810/festivals-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	gormDB, err := db.Open(conf, os.Getenv("DATABASE_URL"))
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}
	defer db.Close(gormDB)

	if err = dao.InitTables(gormDB); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authSvc := service.NewAuthService(repository.NewAdminRepository(dao.NewAdminDAO(gormDB)))
	admin, created, err := authSvc.EnsureAdmin(ctx, conf.Admin.Username, conf.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to seed admin -> %w", err)
	}
	zap.L().Info("admin account ready", zap.String("username", admin.Username), zap.Bool("created", created))

	images, err := filestore.New(ctx, conf.Upload)
	if err != nil {
		return fmt.Errorf("failed to initialize image storage -> %w", err)
	}

	s := api.NewServer(conf, gormDB, images)

	addr := ":" + s.Config.API.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}
