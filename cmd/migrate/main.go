package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/config"
	"github.com/yourusername/fitbot-api/pkg/database"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	configPath := flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
	source := flag.String("source", database.DefaultMigrationsSource, "источник миграций")
	command := flag.String("cmd", "up", "команда: up | down | force | version")
	version := flag.Int("version", -1, "версия для команды force")
	flag.Parse()

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresURL())
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	m, err := database.NewMigrator(db, *source)
	if err != nil {
		logger.Fatal("failed to create migrator", zap.Error(err))
	}

	switch *command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "force":
		if *version < 0 {
			logger.Fatal("force requires -version")
		}
		// Снимает флаг dirty после упавшей миграции
		err = m.Force(*version)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			logger.Fatal("failed to read version", zap.Error(verr))
		}
		logger.Info("current migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return
	default:
		logger.Error("unknown command", zap.String("cmd", *command))
		os.Exit(2)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no change")
		return
	}
	if err != nil {
		logger.Fatal("migration failed", zap.String("cmd", *command), zap.Error(err))
	}
	logger.Info("migration applied", zap.String("cmd", *command))
}
