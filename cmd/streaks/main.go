// streaks rebuilds the denormalized streak counters of a gym from the
// attendance log. Run it after bulk imports or when counters drift.
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2beens/gymcore/internal/attendance"
	"github.com/2beens/gymcore/internal/attendance/leaderboard"
	"github.com/2beens/gymcore/internal/attendance/streak"
	"github.com/2beens/gymcore/internal/config"
	"github.com/2beens/gymcore/internal/db"
	"github.com/2beens/gymcore/internal/logging"
	"github.com/2beens/gymcore/internal/telemetry/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development | ddev | dockerdev ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	gymID := flag.Int("gym", 0, "id of the gym to rebuild counters for")
	timeout := flag.Duration("timeout", 10*time.Minute, "max duration of the rebuild")
	flag.Parse()

	if *gymID <= 0 {
		log.Fatalln("gym id must be set, use -gym")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, timeoutCancel := context.WithTimeout(ctx, *timeout)
	defer timeoutCancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("GYMCORE_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("GYMCORE_REDIS_PASS"),
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis client: %s", err)
		}
	}()

	// counters are not scraped from a one-off run
	metricsManager := metrics.NewManager("gymcore", "streaks_cli", prometheus.NewRegistry())

	repo := attendance.NewRepo(dbPool)
	engine := streak.NewEngine()
	service := attendance.NewService(
		repo,
		engine,
		streak.NewTracker(engine, streak.NewRedisCounterStore(rdb), repo, metricsManager),
		leaderboard.NewAggregator(engine, metricsManager),
		metricsManager,
		time.Now,
	)

	start := time.Now()
	rebuilt, err := service.RebuildCounters(ctx, *gymID)
	for _, e := range multierr.Errors(err) {
		log.Errorf(" -> %s", e)
	}
	log.Infof("gym %d: rebuilt %d streak counters in %s", *gymID, rebuilt, time.Since(start))

	if err != nil {
		log.Errorf("gym %d: rebuild finished with errors", *gymID)
	}
}
