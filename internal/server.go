package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/gymcore/internal/attendance"
	"github.com/2beens/gymcore/internal/attendance/leaderboard"
	"github.com/2beens/gymcore/internal/attendance/streak"
	"github.com/2beens/gymcore/internal/auth"
	"github.com/2beens/gymcore/internal/config"
	"github.com/2beens/gymcore/internal/db"
	"github.com/2beens/gymcore/internal/exercises"
	"github.com/2beens/gymcore/internal/exercises/catalog"
	"github.com/2beens/gymcore/internal/exercises/recommend"
	"github.com/2beens/gymcore/internal/exercises/similarity"
	"github.com/2beens/gymcore/internal/middleware"
	"github.com/2beens/gymcore/internal/routine"
	"github.com/2beens/gymcore/internal/telemetry/metrics"
	"github.com/2beens/gymcore/internal/telemetry/tracing"
	"github.com/2beens/gymcore/pkg"
)

const routineRouterName = "routines"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	sessionChecker *auth.SessionChecker
	authMiddleware *middleware.AuthMiddlewareHandler
	rateLimiter    middleware.RequestRateLimiter

	attendanceHandler *attendance.Handler
	exercisesHandler  *exercises.Handler
	routineHandler    *routine.Handler

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	DBPassword              string
	RoutineApiKey           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("gymcore", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // set to 1 once serving

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymcore-backend", rdb)
	if err != nil {
		return nil, err
	}

	sessionChecker := auth.NewSessionChecker(cfg.SessionTTL.Duration, rdb)

	// attendance
	attendanceRepo := attendance.NewRepo(dbPool)
	streakEngine := streak.NewEngine()
	tracker := streak.NewTracker(
		streakEngine,
		streak.NewRedisCounterStore(rdb),
		attendanceRepo,
		metricsManager,
	)
	attendanceService := attendance.NewService(
		attendanceRepo,
		streakEngine,
		tracker,
		leaderboard.NewAggregator(streakEngine, metricsManager),
		metricsManager,
		time.Now,
	)

	// exercises
	exerciseCatalog := catalog.New(cfg.ExercisesCSVPath)
	similarityIndex, err := similarity.Build(exerciseCatalog.All())
	if err != nil {
		// recommendations still work, similar exercise lookups come back empty
		log.Errorf("build exercise similarity index: %s", err)
		similarityIndex = nil
	}
	recommender := recommend.NewEngine(exerciseCatalog, similarityIndex)

	routineClient := routine.NewClient(routine.ClientParams{
		ApiURL:      cfg.RoutineApiURL,
		ApiKey:      params.RoutineApiKey,
		Model:       cfg.RoutineModel,
		Timeout:     cfg.RoutineTimeout.Duration,
		CacheTTL:    cfg.RoutineCacheTTL.Duration,
		MaxFailures: cfg.RoutineBreakerThreshold,
		HttpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Recommender:    recommender,
		MetricsManager: metricsManager,
	})

	middleware.AllowOrigins(cfg.AllowedOrigins...)

	return &Server{
		config:      cfg,
		dbPool:      dbPool,
		redisClient: rdb,
		versionInfo: params.VersionInfo,

		sessionChecker: sessionChecker,
		authMiddleware: middleware.NewAuthMiddlewareHandler(sessionChecker),
		rateLimiter:    redis_rate.NewLimiter(rdb),

		attendanceHandler: attendance.NewHandler(attendanceService),
		exercisesHandler:  exercises.NewHandler(recommender, metricsManager),
		routineHandler:    routine.NewHandler(routineClient),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// gated wraps h so it only serves sessions holding one of the capabilities.
func gated(h http.HandlerFunc, capabilities ...auth.Capability) http.Handler {
	return middleware.RequireCapability(capabilities...)(h)
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymcore-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET")
	r.HandleFunc("/version", s.handleVersion).Methods("GET")

	att := r.PathPrefix("/attendance/gyms/{gymId:[0-9]+}").Subrouter()
	att.Handle("/checkin", gated(s.attendanceHandler.HandleCheckIn, auth.CapCheckIn)).
		Methods("POST", "OPTIONS").Name("checkin")
	att.Handle("/backfill", gated(s.attendanceHandler.HandleBackfill, auth.CapBackfillAttendance)).
		Methods("POST", "OPTIONS").Name("backfill")
	att.Handle("/members/{memberId:[0-9]+}/streak", gated(s.attendanceHandler.HandleMemberStreak, auth.CapViewOwnStreak, auth.CapViewAnalytics)).
		Methods("GET", "OPTIONS").Name("member-streak")
	att.Handle("/leaderboard", gated(s.attendanceHandler.HandleLeaderboard, auth.CapViewLeaderboard)).
		Methods("GET", "OPTIONS").Name("leaderboard")
	att.Handle("/analytics", gated(s.attendanceHandler.HandleAnalytics, auth.CapViewAnalytics)).
		Methods("GET", "OPTIONS").Name("analytics")
	att.Handle("/streaks/rebuild", gated(s.attendanceHandler.HandleRebuild, auth.CapRebuildStreaks)).
		Methods("POST", "OPTIONS").Name("rebuild-streaks")

	ml := r.PathPrefix("/ml").Subrouter()
	ml.Handle("/recommendations", gated(s.exercisesHandler.HandleRecommendations, auth.CapRecommend)).
		Methods("POST", "OPTIONS").Name("recommendations")
	ml.HandleFunc("/categories", s.exercisesHandler.HandleCategories).Methods("GET", "OPTIONS").Name("categories")
	ml.HandleFunc("/filter", s.exercisesHandler.HandleFilter).Methods("GET", "OPTIONS").Name("filter")
	ml.HandleFunc("/similar", s.exercisesHandler.HandleSimilar).Methods("GET", "OPTIONS").Name("similar")
	ml.HandleFunc("/health", s.exercisesHandler.HandleHealth).Methods("GET", "OPTIONS").Name("health")

	routineRateLimit := middleware.RateLimit(
		s.rateLimiter,
		s.metricsManager,
		routineRouterName,
		s.config.RoutineRequestsPerMin,
	)
	r.Handle("/routines/generate",
		gated(routineRateLimit(http.HandlerFunc(s.routineHandler.HandleGenerate)).ServeHTTP, auth.CapGenerateRoutine),
	).Methods("POST", "OPTIONS").Name("generate-routine")

	// all the rest - unhandled paths
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(s.authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "gymcore")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, s.versionInfo)
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", metrics.Handler(s.promRegistry))
	metricsAddr := net.JoinHostPort(host, strconv.Itoa(s.config.MetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
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

	go s.cleanSessions(ctx, s.config.SessionScanInterval.Duration)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// cleanSessions drops expired sessions every interval, until ctx is done.
func (s *Server) cleanSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sessionChecker.ScanAndClean(ctx)
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before closing what they depend on
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

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
