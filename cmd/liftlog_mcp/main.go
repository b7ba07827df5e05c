// Package main runs the liftlog MCP server over stdio (for local MCP clients).
// The same server is mounted on the backend at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/2beens/liftlog/internal/catalog"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	liftlogmcp "github.com/2beens/liftlog/internal/mcp"
	"github.com/2beens/liftlog/internal/workouts"
	"github.com/2beens/liftlog/internal/workouts/stats"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout belongs to the MCP transport
	log.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         os.Getenv("LIFTLOG_DB_USER"),
		DBPassword:     os.Getenv("LIFTLOG_DB_PASS"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("LIFTLOG_REDIS_PASS"),
	})
	defer func() { _ = rdb.Close() }()

	workoutsRepo := workouts.NewRepo(dbPool)
	catalogService := catalog.NewService(
		catalog.NewRepo(dbPool),
		catalog.NewExerciseDBClient(cfg.ExerciseDBHost, os.Getenv("LIFTLOG_RAPIDAPI_KEY"), http.DefaultClient, rdb),
	)
	analyzer := stats.NewAnalyzer(workoutsRepo, catalogService, nil)
	server := liftlogmcp.NewServer(dbPool, workoutsRepo, analyzer)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
