package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/backup"
	"github.com/2beens/liftlog/internal/blobstore"
	"github.com/2beens/liftlog/internal/catalog"
	"github.com/2beens/liftlog/internal/coach"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/forum"
	liftlogmcp "github.com/2beens/liftlog/internal/mcp"
	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/profile"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workouts"
	"github.com/2beens/liftlog/internal/workouts/stats"
)

const sessionsCleanupInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	mcpSecret         string

	config   *config.Config
	dbPool   *pgxpool.Pool
	blobs    blobstore.Store
	liveHub  *forum.Hub
	coachGen *coach.GeminiClient
	exDB     *catalog.ExerciseDBClient

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	DBUser                  string
	DBPassword              string
	RedisPassword           string
	GeminiApiKey            string
	RapidApiKey             string
	MCPSecret               string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.DBUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	} else if err := db.Migrate(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("liftlog", "server", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0,
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(auth.DefaultTTL, rdb)
	go func() {
		ticker := time.NewTicker(sessionsCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				authService.ScanAndClean(ctx)
			}
		}
	}()

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "liftlog-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   time.Minute,
	}

	blobs, err := blobstore.New(ctx, blobstore.Params{
		Kind:     params.Config.BlobStoreKind,
		DiskRoot: params.Config.BlobStoreDiskRoot,
		S3Bucket: params.Config.BlobStoreS3Bucket,
		S3Region: params.Config.BlobStoreS3Region,
		S3Prefix: "avatars",
	})
	if err != nil {
		return nil, fmt.Errorf("new blob store: %w", err)
	}

	if params.MCPSecret == "" {
		log.Warnln("mcp secret not set, /mcp endpoint disabled")
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,
		mcpSecret:   params.MCPSecret,
		blobs:       blobs,
		liveHub:     forum.NewHub(params.Config.AllowedOrigins, metricsManager),
		coachGen: coach.NewGeminiClient(
			params.Config.CoachBaseURL,
			params.Config.CoachModel,
			params.GeminiApiKey,
			tracedHttpClient,
		),
		exDB: catalog.NewExerciseDBClient(
			params.Config.ExerciseDBHost,
			params.RapidApiKey,
			tracedHttpClient,
			rdb,
		),

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("liftlog-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if s.versionInfo == "" {
			_, _ = w.Write([]byte("liftlog"))
			return
		}
		_, _ = w.Write([]byte("liftlog " + s.versionInfo))
	}).Methods("GET", "OPTIONS").Name("root")

	authHandler := auth.NewHandler(
		auth.NewUsers(auth.NewUsersRepo(s.dbPool)),
		s.authService,
	)
	authHandler.SetupRoutes(r)

	workoutsRepo := workouts.NewRepo(s.dbPool)
	workoutsHandler := workouts.NewHandler(workouts.NewService(workoutsRepo, s.metricsManager))
	workoutsHandler.SetupRoutes(r)

	catalogService := catalog.NewService(catalog.NewRepo(s.dbPool), s.exDB)
	catalog.NewHandler(catalogService).SetupRoutes(r)

	analyzer := stats.NewAnalyzer(workoutsRepo, catalogService, s.metricsManager)
	stats.NewHandler(analyzer).SetupRoutes(r)

	coach.NewHandler(s.coachGen, s.metricsManager).SetupRoutes(r)

	profileService := profile.NewService(profile.NewRepo(s.dbPool), s.blobs, s.config.BlobPublicBaseURL)
	profile.NewHandler(profileService).SetupRoutes(r)

	forumService := forum.NewService(forum.NewRepo(s.dbPool), profileService, s.liveHub, s.metricsManager)
	forum.NewHandler(forumService, s.liveHub).SetupRoutes(r)

	mcpServer := liftlogmcp.NewServer(s.dbPool, workoutsRepo, analyzer)
	r.PathPrefix("/mcp").Handler(liftlogmcp.NewHTTPHandler(mcpServer, s.mcpSecret)).Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	for _, rl := range []struct {
		route         string
		allowedPerMin int
		keyFunc       middleware.KeyFunc
	}{
		{"login", s.config.LoginRateLimitAllowedPerMin, middleware.ByIP},
		{"register", s.config.LoginRateLimitAllowedPerMin, middleware.ByIP},
		{"ai-coach", s.config.CoachRateLimitAllowedPerMin, middleware.ByUser},
	} {
		if err := rateLimitRoute(r, rl.route, reqRateLimiter, s.metricsManager, rl.allowedPerMin, rl.keyFunc); err != nil {
			return nil, err
		}
	}

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

// rateLimitRoute wraps the handler of an already registered, named route.
func rateLimitRoute(
	r *mux.Router,
	routeName string,
	limiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	allowedPerMin int,
	keyFunc middleware.KeyFunc,
) error {
	route := r.Get(routeName)
	if route == nil {
		return fmt.Errorf("rate limit: route %s not found", routeName)
	}
	if allowedPerMin <= 0 {
		log.Warnf("rate limit for route %s disabled", routeName)
		return nil
	}
	limited := middleware.RateLimit(limiter, metricsManager, routeName, allowedPerMin, keyFunc)
	route.Handler(limited(route.GetHandler()))
	return nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:     router,
		Addr:        ipAndPort,
		ReadTimeout: time.Minute,
		// no WriteTimeout, it would cut the long lived /live and /mcp streams
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)

	s.setBackupsReportsSocket(ctx)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// live websockets are hijacked, the http server shutdown does not wait for them
	s.liveHub.Close()
	log.Trace("live hub closed ...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) setBackupsReportsSocket(ctx context.Context) {
	if s.config.BackupsSocketDir == "" {
		log.Debugln("backups reports socket disabled")
		return
	}

	if err := os.MkdirAll(s.config.BackupsSocketDir, os.ModePerm); err != nil {
		log.Errorf("failed to create backups unix socket dir: %s", err)
		return
	}

	addr, err := backup.ListenForReports(
		ctx,
		s.config.BackupsSocketDir,
		s.config.BackupsSocketFile,
		s.metricsManager,
	)
	if err != nil {
		log.Errorf("failed to create backups unix socket: %s", err)
		return
	}
	log.Debugf("backups reports unix socket: %s", addr)
}
