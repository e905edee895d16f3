package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/aerodrome/config"
	"github.com/Domenick1991/aerodrome/internal/email"
	"github.com/Domenick1991/aerodrome/internal/kafka"
	"github.com/Domenick1991/aerodrome/internal/repository"
	"github.com/Domenick1991/aerodrome/internal/service/billing"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	slotRepo := repository.NewSlotRepository(pool)
	infraRepo := repository.NewInfrastructureRepository(pool)
	fuelingRepo := repository.NewFuelingRepository(pool)
	billingService := billing.NewService(infraRepo, fuelingRepo)
	slotService := slots.NewSlotService(
		slotRepo,
		infraRepo,
		billingService,
		nil,
		producer,
		cfg.Kafka.SlotEventsTopic,
		time.Duration(cfg.Slots.LockTTLSeconds)*time.Second,
		slots.WithMargin(time.Duration(cfg.Slots.MarginMinutes)*time.Minute),
		slots.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, emailSender.Send); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.StaleSweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			cancelled, err := slotService.CancelStaleRequests(ctx)
			if err != nil {
				log.Printf("stale request sweep error: %v", err)
				continue
			}
			if len(cancelled) > 0 {
				log.Printf("cancelled %d stale slot requests", len(cancelled))
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
