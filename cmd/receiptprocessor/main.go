package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MikeRez0/receiptprocessor/internal/adapter/config"
	"github.com/MikeRez0/receiptprocessor/internal/adapter/handler/http"
	"github.com/MikeRez0/receiptprocessor/internal/adapter/logger"
	"github.com/MikeRez0/receiptprocessor/internal/adapter/metrics"
	"github.com/MikeRez0/receiptprocessor/internal/adapter/storage"
	"github.com/MikeRez0/receiptprocessor/internal/adapter/storage/bolt"
	"github.com/MikeRez0/receiptprocessor/internal/adapter/storage/repository"
	"github.com/MikeRez0/receiptprocessor/internal/core/points"
	"github.com/MikeRez0/receiptprocessor/internal/core/port"
	"github.com/MikeRez0/receiptprocessor/internal/core/service"
	"github.com/MikeRez0/receiptprocessor/internal/core/validation"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := newRepository(ctx, conf.Database, log)
	if err != nil {
		log.Error("receipt repo creating error", zap.Error(err))
		return
	}
	defer func() {
		if err := closeRepo(); err != nil {
			log.Error("receipt repo closing error", zap.Error(err))
		}
	}()

	calculator := points.NewCalculator(points.DefaultRules(), log.Named("Points"))
	validator := validation.NewValidator()

	svc, err := service.NewService(repo, calculator, validator, log.Named("Service"))
	if err != nil {
		log.Error("receipt service creating error", zap.Error(err))
		return
	}

	m := metrics.New()
	receiptHandler, err := http.NewReceiptHandler(svc, m, log.Named("Receipt handler"))
	if err != nil {
		log.Error("receipt handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, receiptHandler, m, log.Named("Router"))
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(ctx)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}

// newRepository prefers Postgres and falls back to the embedded bbolt file.
func newRepository(ctx context.Context, conf *config.Database, log *zap.Logger) (port.Repository, func() error, error) {
	if conf.DSN == "" {
		log.Info("using embedded receipt store", zap.String("path", conf.BoltPath))
		repo, err := bolt.NewRepository(conf.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}

	db, err := storage.NewDBStorage(ctx, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("database error: %w", err)
	}
	err = db.RunMigrations()
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("database migration error: %w", err)
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, db.Close, nil
}
