// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/tienda-backend/internal/config"
	"github.com/your-org/tienda-backend/internal/infrastructure/database"
	"github.com/your-org/tienda-backend/internal/infrastructure/database/redis"
	"github.com/your-org/tienda-backend/internal/interfaces/http"
	"github.com/your-org/tienda-backend/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.Configure(cfg)
	decimal.MarshalJSONWithoutQuotes = true

	log.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting")

	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := db.Health(context.Background()); err != nil {
		log.Fatalf("Database health check failed: %v", err)
	}

	migration := database.NewMigration(db.GetDB(), log)

	if err := migration.RunAutoMigrations(); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	if err := migration.CreateIndexes(); err != nil {
		log.WithError(err).Warn("Index creation failed")
	}
	if err := migration.SeedRoles(); err != nil {
		log.Fatalf("Role seeding failed: %v", err)
	}

	if cfg.IsDevelopment() {
		if err := migration.SeedCatalog(); err != nil {
			log.WithError(err).Warn("Catalog seeding failed")
		}
		for table, count := range migration.TableCounts() {
			log.WithFields(logrus.Fields{"table": table, "rows": count}).Debug("Table info")
		}
	}

	server := http.NewServer(cfg, db.GetDB(), redisClient.GetClient(), log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}
