package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/api"
	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
)

const shutdownTimeout = 15 * time.Second

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.WithField("storage", envConfig.StorageDriver).Info("ledger-server starting")

	store, err := openStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer store.Close()

	delegator := operator.NewOperatorDelegator(store, envConfig.OperatorWorkers, logger)
	delegator.Start()

	svc := service.NewService(store, delegator)

	if envConfig.ReconcileSchedule != config.AuditDisabled {
		scheduler := audit.NewScheduler(svc.Audit, logger)
		if err := scheduler.Start(envConfig.ReconcileSchedule); err != nil {
			logger.WithError(err).Fatal("audit.Scheduler.Start")
			return
		}
		defer scheduler.Stop()
	}

	httpRest := &api.Rest{
		Logger:  logger,
		Port:    envConfig.HTTPPort,
		Service: svc,
		Storage: store,
	}

	done := make(chan error, 1)
	go func() {
		done <- httpRest.Serve()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-signals:
		logger.WithField("signal", sig.String()).Info("ledger-server stopping")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := httpRest.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("HttpServer.Shutdown")
		}
		cancel()
		<-done
	case err := <-done:
		if err != nil {
			logger.WithError(err).Error("HttpServer.Serve")
		}
	}

	// In-flight actions finish before the store closes.
	delegator.Stop()
}

func openStorage(env *config.Config) (*storage.Storage, error) {
	if env.StorageDriver == config.StorageDriverMemory {
		return memory.NewStorage(), nil
	}
	return storage.NewStorage(env)
}
