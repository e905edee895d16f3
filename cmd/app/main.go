package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/aerodrome/config"
	"github.com/Domenick1991/aerodrome/internal/bootstrap"
	"github.com/Domenick1991/aerodrome/internal/cache"
	"github.com/Domenick1991/aerodrome/internal/kafka"
	"github.com/Domenick1991/aerodrome/internal/repository"
	"github.com/Domenick1991/aerodrome/internal/service/billing"
	"github.com/Domenick1991/aerodrome/internal/service/infras"
	"github.com/Domenick1991/aerodrome/internal/service/slots"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Slots.InfrasCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	slotRepo := repository.NewSlotRepository(pool)
	infraRepo := repository.NewInfrastructureRepository(pool)
	fuelingRepo := repository.NewFuelingRepository(pool)

	billingService := billing.NewService(infraRepo, fuelingRepo)
	infraService := infras.NewInfraService(infraRepo, redisCache)
	slotService := slots.NewSlotService(
		slotRepo,
		infraRepo,
		billingService,
		redisCache,
		producer,
		cfg.Kafka.SlotEventsTopic,
		time.Duration(cfg.Slots.LockTTLSeconds)*time.Second,
		slots.WithMargin(time.Duration(cfg.Slots.MarginMinutes)*time.Minute),
		slots.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, slotService, infraService, billingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
