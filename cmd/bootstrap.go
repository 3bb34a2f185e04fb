package cmd

import (
	"context"
	"fmt"

	"opnsense-manager/core/config"
	"opnsense-manager/core/database"
	"opnsense-manager/core/history"
	"opnsense-manager/core/logger"
	"opnsense-manager/core/metrics"
	"opnsense-manager/core/opnsense"
	"opnsense-manager/core/reconcile"
	"opnsense-manager/core/report"
	"opnsense-manager/core/storage"
	"opnsense-manager/feature/objects"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services bundles everything a command needs to talk to the appliance.
type services struct {
	cfg      *config.Config
	logger   *zap.Logger
	client   *opnsense.Client
	metrics  *metrics.Collectors
	db       *gorm.DB
	recorder *history.Recorder
	engine   *reconcile.Engine
	service  *objects.Service
}

// bootstrap loads the configuration and wires the session, the engine and its
// observers. History and report archiving are optional and only degrade to a
// warning when their backends are unreachable.
func bootstrap(ctx context.Context) (*services, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &services{cfg: cfg, logger: l, metrics: metrics.New()}

	rt.client, err = opnsense.NewClient(cfg.API, l, rt.metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	observers := []reconcile.Observer{rt.metrics}

	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			l.Warn("Optional database connection failed, history disabled", zap.Error(err))
		} else {
			recorder := history.NewRecorder(db)
			if err := recorder.Migrate(); err != nil {
				l.Warn("History migration failed, history disabled", zap.Error(err))
			} else {
				rt.db = db
				rt.recorder = recorder
				observers = append(observers, recorder)
			}
		}
	}

	if cfg.Storage.Enabled {
		if archiver, err := newArchiver(ctx, cfg.Storage, l); err != nil {
			l.Warn("Report storage unavailable, archiving disabled", zap.Error(err))
		} else {
			observers = append(observers, archiver)
		}
	}

	rt.engine = reconcile.NewEngine(rt.client, l, reconcile.EngineOptions{
		CacheTTL:  cfg.Reconcile.CacheTTL(),
		Observers: observers,
	})
	rt.service = objects.NewService(rt.engine, objects.NewRegistry(), rt.recorder, l)

	return rt, nil
}

func newArchiver(ctx context.Context, cfg storage.Config, l *zap.Logger) (*report.Archiver, error) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return nil, err
	}
	return report.NewArchiver(client, cfg.Bucket, cfg.Prefix, l), nil
}

// Close releases connections and flushes the logger.
func (rt *services) Close() {
	_ = rt.client.Close()
	if rt.db != nil {
		if sqlDB, err := rt.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = rt.logger.Sync()
}
