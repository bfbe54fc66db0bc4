package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/you/contactsvc/internal/config"
	"github.com/you/contactsvc/internal/infrastructure/database"
	"github.com/you/contactsvc/internal/infrastructure/repositories"
)

// Connects to the configured database, runs the migrations and reports table sizes
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.DSN, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Info("database connection successful")

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}
	log.Info("migrations completed")

	counts := log.Fields{}
	for table, model := range map[string]interface{}{
		"users":    &repositories.DBUser{},
		"contacts": &repositories.DBContact{},
	} {
		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			log.Fatalf("Failed to query %s table: %v", table, err)
		}
		counts[table] = n
	}
	var rules int64
	if err := db.Table("casbin_rule").Count(&rules).Error; err != nil {
		log.Fatalf("Failed to query casbin_rule table: %v", err)
	}
	counts["casbin_rule"] = rules

	log.WithFields(counts).Info("tables ready")
}
