package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/config"
	"github.com/harvesthub/harvesthub/pkg/infra/database"
	"github.com/harvesthub/harvesthub/pkg/infra/database/softdelete"
	infralogger "github.com/harvesthub/harvesthub/pkg/infra/logger"
)

// Purges soft-deleted rows past retention across all entities. Meant to
// run from cron; the same operation is exposed on the admin API.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := infralogger.NewLogger(cfg.Server.Env)

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	store := softdelete.NewStore(logger, db.DB)
	retention := time.Duration(cfg.Retention.TrashDays) * 24 * time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var total int64
	for _, entity := range softdelete.All() {
		n, err := store.Purge(ctx, entity, retention)
		if err != nil {
			logger.WithError(err).WithField("entity", entity.String()).Error("purge failed")
			os.Exit(1)
		}
		logger.WithFields(logrus.Fields{
			"entity": entity.String(),
			"rows":   n,
		}).Info("purged trash")
		total += n
	}

	logger.WithFields(logrus.Fields{
		"retention_days": cfg.Retention.TrashDays,
		"total_rows":     total,
	}).Info("purge complete")
}
