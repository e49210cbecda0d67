package main

import (
	"net/http"

	"github.com/Chloelee05/ElevateTM/internal/config"
	"github.com/Chloelee05/ElevateTM/internal/logging"
	"github.com/Chloelee05/ElevateTM/internal/metrics"
	"github.com/Chloelee05/ElevateTM/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid configuration", err, logging.Fields{
			"config_path": path,
			"hint":        "create an elevatetm_config.json with an 'action_list' array and optional keys: rules, server.address, decision_prompt",
		})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}

func metricsHandler() http.Handler {
	return metrics.Handler()
}
