package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"takeout/internal/config"
	"takeout/internal/infra/db"
	"takeout/internal/infra/mq"
	infraRepo "takeout/internal/infra/repository"
	"takeout/internal/usecase"

	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 未払い注文の自動キャンセルを待ち受けるワーカー。
func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Error("db connect failed", "error", err)
		os.Exit(1)
	}

	mqConn, err := mq.Connect(cfg.RabbitMQURL)
	if err != nil {
		log.Error("rabbitmq connect failed", "error", err)
		os.Exit(1)
	}
	defer mqConn.Close()

	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	uc := usecase.NewAutoCancelWorker(orderRepo, &realClock{}, log)

	//SIGINT/SIGTERMで止める
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("auto cancel consumer started")

	if err := mq.ConsumeCancel(ctx, mqConn, log, uc.AutoCancelUnpaid); err != nil {
		log.Error("consumer stopped", "error", err)
		os.Exit(1)
	}

	log.Info("auto cancel consumer stopped")
}
