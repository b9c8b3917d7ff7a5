// @title CleanLeb API
// @version 1.0
// @description Backend server for the CleanLeb civic waste reporting platform.

// @contact.name API Support
// @contact.email support@cleanleb.org

// @license.name MIT

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"cleanleb_backend/internal/app"
	"cleanleb_backend/internal/config"
	"cleanleb_backend/pkg/configwatcher"
	"cleanleb_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(next interface{}) {
		updated, ok := next.(*config.Config)
		if !ok {
			return
		}
		// Only settings read per request can change without a restart.
		cfg.JWT = updated.JWT
		cfg.Storage.PublicBaseURL = updated.Storage.PublicBaseURL
		logger.Log.Info("Configuration reloaded")
	})

	application.Run()
}
