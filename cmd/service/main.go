package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/liftlog/internal"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/logging"
	"github.com/2beens/liftlog/pkg"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %s", err)
	}

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "liftlog-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	params := readEnv()
	params.Config = cfg
	params.VersionInfo = versionInfo
	server, err := internal.NewServer(ctx, params)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// readEnv collects the secrets and toggles that never live in the TOML config.
func readEnv() internal.NewServerParams {
	params := internal.NewServerParams{
		DBUser:                  os.Getenv("LIFTLOG_DB_USER"),
		DBPassword:              os.Getenv("LIFTLOG_DB_PASS"),
		RedisPassword:           os.Getenv("LIFTLOG_REDIS_PASS"),
		GeminiApiKey:            os.Getenv("LIFTLOG_GEMINI_API_KEY"),
		RapidApiKey:             os.Getenv("LIFTLOG_RAPIDAPI_KEY"),
		MCPSecret:               os.Getenv("LIFTLOG_MCP_SECRET"),
		HoneycombTracingEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
	}

	if params.RedisPassword == "" {
		log.Errorln("redis password not set, use LIFTLOG_REDIS_PASS")
	}
	if params.GeminiApiKey == "" {
		log.Errorln("gemini API key not set, the coach will not answer. use LIFTLOG_GEMINI_API_KEY")
	}
	if params.RapidApiKey == "" {
		log.Warnln("rapidapi key not set, only built-in exercises available. use LIFTLOG_RAPIDAPI_KEY")
	}
	if params.MCPSecret == "" {
		log.Warnln("LIFTLOG_MCP_SECRET not set, /mcp is disabled")
	}
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}
	if params.HoneycombTracingEnabled && os.Getenv("HONEYCOMB_API_KEY") == "" {
		log.Warnln("honeycomb enabled, but HONEYCOMB_API_KEY env var not set")
	}

	return params
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "--short", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
