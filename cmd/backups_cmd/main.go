// Package main backs up all workout days to google drive. Meant to run periodically (cron).
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/2beens/liftlog/internal/backup"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/logging"
	"github.com/2beens/liftlog/internal/workouts"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	credentialsFile := flag.String("gd-creds", "./drive-credentials.json", "google drive service account credentials json")
	shareWith := flag.String("share-with", "", "email of the user the backup files are shared with (reader)")
	logsPath := flag.String("logs-path", "", "backup logs file path (empty for stdout)")
	reinit := flag.Bool("reinit", false, "drop all backups and back up everything again")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogFileName: *logsPath,
		LogToStdout: true,
		LogLevel:    "debug",
	})

	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %s", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	log.Println("starting workout days backup ...")
	if *credentialsFile == "" {
		log.Fatalln("google drive credentials json not specified")
	}
	if *reinit {
		log.Warnln("!! attention: will reinitialize all again...")
	}

	credentialsFileBytes, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read credentials file: %s", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     os.Getenv("LIFTLOG_DB_USER"),
		DBPassword: os.Getenv("LIFTLOG_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("db pool: %s", err)
	}
	defer dbPool.Close()

	drive, err := backup.NewGoogleDrive(ctx, credentialsFileBytes, *shareWith)
	if err != nil {
		log.Fatalf("failed to create google drive client: %s", err)
	}

	s, err := backup.NewService(ctx, drive, workouts.NewRepo(dbPool))
	if err != nil {
		log.Fatalf("failed to create backup service: %s", err)
	}

	start := time.Now()
	var daysCount int
	if *reinit {
		daysCount, err = s.Reinit(ctx, start)
	} else {
		daysCount, err = s.DoBackup(ctx, start)
	}
	if err != nil {
		log.Fatalf("backup failed: %+v", err)
	}

	report := backup.Report{DaysCount: daysCount, Duration: time.Since(start)}
	log.Printf("backup done: %d workout days in %s", report.DaysCount, report.Duration)

	if cfg.BackupsSocketDir != "" {
		if err := backup.SendReport(cfg.BackupsSocketDir, cfg.BackupsSocketFile, report); err != nil {
			log.Warnf("failed to report backup to the service: %s", err)
		}
	}
}
