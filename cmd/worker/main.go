package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnendingLoop/BrandMarker/internal/brand"
	"github.com/UnendingLoop/BrandMarker/internal/config"
	"github.com/UnendingLoop/BrandMarker/internal/imageproc"
	"github.com/UnendingLoop/BrandMarker/internal/kafka"
	"github.com/UnendingLoop/BrandMarker/internal/storage"
	"github.com/UnendingLoop/BrandMarker/internal/worker"
	kafkago "github.com/segmentio/kafka-go"
	wbfkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	// инициализировать конфиг/ считать энвы
	settings, err := config.Load("./.env")
	if err != nil {
		log.Fatalf("Failed to load envs: %s\nExiting app...", err)
	}

	zlog.InitConsole()
	if err := zlog.SetLevel(settings.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// Listening to interruptions through context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// подключиться к хранилищу - в нём исходники и результаты задач
	strg, err := storage.NewObjectStorage(ctx, settings.Minio, 10*time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}
	src := assetSource(settings, strg)

	// ждем пока кафка раздуплится
	broker := settings.Kafka.Broker
	if err := kafka.WaitKafkaReady(ctx, broker, 10*time.Second); err != nil {
		log.Fatalf("Kafka is unavailable: %v", err)
	}
	if err := kafka.InitKafkaTopics(ctx, broker, 10*time.Second, settings.Kafka.Topic); err != nil {
		log.Fatalf("Failed to init kafka topics: %v", err)
	}

	// подключиться к кафке как читатель
	queue := make(chan kafkago.Message)
	retryStrategy := retry.Strategy{
		Attempts: 5,
		Delay:    2 * time.Second,
		Backoff:  1.5,
	}
	cons := wbfkafka.NewConsumer([]string{broker}, settings.Kafka.Topic, settings.Kafka.GroupID)
	cons.StartConsuming(ctx, queue, retryStrategy)

	// Собираем воедино все что нужно воркеру и запускаем его
	w := worker.NewWorkerInstance(strg, src, brand.NewRegistry(settings.DefaultBrand), queue, cons, worker.Settings{
		Canvas:       imageproc.CanvasConfig{MinSize: settings.CanvasMin, MaxSize: settings.CanvasMax},
		Quality:      settings.JPEGQuality,
		ResultPrefix: settings.ResultKey,
	})
	go w.StartWorker(ctx)

	// Waiting for interruption to stop context to start Graceful shutdown
	<-ctx.Done()

	shutdown(cons)
	log.Println("Exiting worker...")
}

func shutdown(cons *wbfkafka.Consumer) {
	log.Println("Interrupt received!!! Starting shutdown sequence...")

	// Closing Kafka connection:
	if err := cons.Close(); err != nil {
		log.Println("Failed to close Kafka-reader:", err)
	}
	log.Println("Kafka-consumer connection closed.")
}
