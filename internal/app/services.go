package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/catalog"
	"github.com/hearthstack/homescore-backend/internal/jobs"
	"github.com/hearthstack/homescore-backend/internal/jobs/pipeline"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/services"
)

type Services struct {
	Job        services.JobService
	Snapshot   services.SnapshotService
	Risk       services.RiskService
	Financial  services.FinancialService
	Health     services.HealthProvider
	HomeScore  services.HomeScoreService
	Correction services.CorrectionService

	JobRegistry *jobs.Registry
	JobWorker   *jobs.Worker
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	cat, err := loadCatalog(cfg)
	if err != nil {
		return Services{}, fmt.Errorf("load asset catalog: %w", err)
	}
	log.Info("Asset catalog loaded", "version", cat.Version, "assets", len(cat.Assets))

	jobSvc := services.NewJobService(db, log, r.JobRun)
	snapshotSvc := services.NewSnapshotService(db, log, r.ScoreSnapshot)
	riskSvc := services.NewRiskService(db, log, cat, r.Property, r.InsurancePolicy, r.HomeWarranty, r.RiskReport, r.MaintenanceTask, snapshotSvc, jobSvc)
	financialSvc := services.NewFinancialService(db, log, r.Property, r.InsurancePolicy, r.HomeWarranty, r.ExpenseRecord, r.FinancialBenchmark, r.FinancialReport, snapshotSvc, jobSvc)
	healthProvider := services.NewSnapshotHealthProvider(db, log, r.Property, r.ScoreSnapshot)
	cache := services.NewRedisReportCache(log)
	if cache == nil {
		log.Warn("REDIS_ADDR unset; homescore report cache disabled")
	}
	homeScoreSvc := services.NewHomeScoreService(
		db, log,
		r.Property, r.InsurancePolicy, r.HomeWarranty, r.PropertyDocument, r.MaintenanceTask, r.Correction,
		healthProvider, riskSvc, financialSvc, snapshotSvc, jobSvc, cache,
	)
	correctionSvc := services.NewCorrectionService(db, log, r.Property, r.Correction)

	registry := jobs.NewRegistry()
	for _, h := range []jobs.Handler{
		pipeline.NewRiskRecalculate(riskSvc),
		pipeline.NewFinancialRecalculate(financialSvc),
		pipeline.NewSnapshotRollup(r.Property, r.RiskReport, r.FinancialReport, r.ScoreSnapshot, snapshotSvc),
	} {
		if err := registry.Register(h); err != nil {
			return Services{}, fmt.Errorf("register job handler: %w", err)
		}
	}

	var worker *jobs.Worker
	if cfg.RunWorker {
		worker = jobs.NewWorker(db, log, r.JobRun, registry)
	}

	return Services{
		Job:         jobSvc,
		Snapshot:    snapshotSvc,
		Risk:        riskSvc,
		Financial:   financialSvc,
		Health:      healthProvider,
		HomeScore:   homeScoreSvc,
		Correction:  correctionSvc,
		JobRegistry: registry,
		JobWorker:   worker,
	}, nil
}

func loadCatalog(cfg Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath != "" {
		return catalog.Load(cfg.CatalogPath)
	}
	return catalog.Default()
}
