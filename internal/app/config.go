package app

import (
	"github.com/hearthstack/homescore-backend/internal/platform/envutil"
	"github.com/hearthstack/homescore-backend/internal/platform/logger"
)

type Config struct {
	HTTPAddr    string
	CatalogPath string
	RunWorker   bool
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		HTTPAddr:    envutil.Str("HTTP_ADDR", ":8080"),
		CatalogPath: envutil.Str("ASSET_CATALOG_PATH", ""),
		RunWorker:   envutil.Bool("RUN_JOB_WORKER", true),
	}
	log.Info("Config loaded",
		"http_addr", cfg.HTTPAddr,
		"catalog_path", cfg.CatalogPath,
		"run_worker", cfg.RunWorker)
	return cfg
}
