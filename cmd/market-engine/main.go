package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fredballer90-ops/Trendbet-backend/internal/engine"
	mhttp "github.com/fredballer90-ops/Trendbet-backend/internal/market-engine/http"
	"github.com/fredballer90-ops/Trendbet-backend/internal/market-engine/producer"
	"github.com/fredballer90-ops/Trendbet-backend/internal/market-engine/repo"
	"github.com/fredballer90-ops/Trendbet-backend/internal/shared/cache"
	"github.com/fredballer90-ops/Trendbet-backend/internal/shared/config"
	"github.com/fredballer90-ops/Trendbet-backend/internal/shared/db"
	skafka "github.com/fredballer90-ops/Trendbet-backend/internal/shared/kafka"
	"github.com/fredballer90-ops/Trendbet-backend/internal/shared/logger"
	"github.com/fredballer90-ops/Trendbet-backend/internal/shared/metrics"
	"github.com/fredballer90-ops/Trendbet-backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	// Store transacional do engine
	var (
		st  store.Store
		rdb *redis.Client
	)
	switch cfg.StoreBackend {
	case "memory":
		st = store.NewMemory()
		log.Warn("using in-memory store; state is volatile")
	default:
		rdb, err = cache.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		st = store.NewRedis(rdb, cfg.StateKey)
	}

	// Postgres: read model de histórico + trilha de liquidação
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	hist := repo.NewPostgres(pg)
	if err := hist.Migrate(ctx); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	// Kafka writers, um por tópico
	wBetPlaced := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced)
	defer wBetPlaced.Close()
	wResolved := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMarketResolved)
	defer wResolved.Close()
	wFrozen := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMarketFrozen)
	defer wFrozen.Close()
	publ := producer.NewKafkaPublisher(wBetPlaced, wResolved, wFrozen)

	// Engine + gate de admin
	eng := engine.New(log, st, engine.NewStateGate(st))
	if err := eng.SeedAdmins(ctx, cfg.AdminIDs); err != nil {
		log.Fatal("seed admins", zap.Error(err))
	}

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	})

	// HTTP público
	api := mhttp.NewServer(log, eng, hist, publ)
	addr := fmt.Sprintf(":%s", cfg.HTTPPort)
	log.Info("market-engine listening", zap.String("addr", addr))
	srv := &http.Server{Addr: addr, Handler: api.Router()}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
