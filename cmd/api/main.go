// Package main (in api-subfolder) provides launch of the HTTP application
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnendingLoop/BrandMarker/internal/brand"
	"github.com/UnendingLoop/BrandMarker/internal/config"
	"github.com/UnendingLoop/BrandMarker/internal/imageproc"
	"github.com/UnendingLoop/BrandMarker/internal/kafka"
	"github.com/UnendingLoop/BrandMarker/internal/mwlogger"
	"github.com/UnendingLoop/BrandMarker/internal/service"
	"github.com/UnendingLoop/BrandMarker/internal/storage"
	"github.com/UnendingLoop/BrandMarker/internal/storage/miniostorage"
	"github.com/UnendingLoop/BrandMarker/internal/transport"
	"github.com/wb-go/wbf/ginext"
	wbfkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	// инициализировать конфиг/ считать энвы
	settings, err := config.Load("./.env")
	if err != nil {
		log.Fatalf("Failed to load envs: %s\nExiting app...", err)
	}

	// стартуем логгер
	zlog.InitConsole()
	if err := zlog.SetLevel(settings.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	// готовим заранее слушатель прерываний - контекст для всего приложения
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// хранилище нужно для экспорта и для ассетов в режиме minio
	var strg *miniostorage.MinioStorage
	if settings.Minio.Addr != "" {
		strg, err = storage.NewObjectStorage(ctx, settings.Minio, 10*time.Second)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
	}
	src, err := assetSource(settings, strg)
	if err != nil {
		log.Fatalf("Failed to init asset source: %v", err)
	}

	// поток прогресса в кафку - опционально
	var producer *wbfkafka.Producer
	var pub service.TaskPublisher
	if settings.Kafka.Broker != "" && settings.Kafka.ProgressTopic != "" {
		if err := kafka.WaitKafkaReady(ctx, settings.Kafka.Broker, 10*time.Second); err != nil {
			log.Fatalf("Kafka is unavailable: %v", err)
		}
		if err := kafka.InitKafkaTopics(ctx, settings.Kafka.Broker, 10*time.Second, settings.Kafka.ProgressTopic); err != nil {
			log.Fatalf("Failed to init kafka topics: %v", err)
		}
		producer = wbfkafka.NewProducer([]string{settings.Kafka.Broker}, settings.Kafka.ProgressTopic)
		pub = producer
	}

	var exportStrg service.ImageStorage
	if strg != nil {
		exportStrg = strg
	}

	// создаем экземпляр сервиса
	svc, err := service.NewWatermarkService(brand.NewRegistry(settings.DefaultBrand), src, pub, exportStrg, service.Options{
		Canvas:       imageproc.CanvasConfig{MinSize: settings.CanvasMin, MaxSize: settings.CanvasMax},
		Quality:      settings.JPEGQuality,
		MaxUpload:    settings.MaxUploadBytes,
		ExportPrefix: settings.ExportPrefix,
	})
	if err != nil {
		log.Fatalf("Failed to init watermark service: %v", err)
	}
	if err := svc.Warmup(ctx); err != nil {
		zlog.Logger.Error().Err(err).Msg("Brand resources are not loaded yet, will retry on first batch")
	}

	var apiSvc WatermarkAPIService = svc
	// cоздаем экземпляр хендлера HTTP
	handlers := transport.NewWatermarkHandler(apiSvc, settings.MaxUploadBytes)
	// сетапим сервер
	engine := ginext.New(settings.GinMode)

	engine.GET("/ping", handlers.SimplePinger)
	engine.GET("/brands", handlers.ListBrands)          // список брендов
	engine.GET("/brand", handlers.ActiveBrand)          // активный бренд
	engine.PUT("/brand/:id", handlers.ActivateBrand)    // переключение бренда
	engine.POST("/images", handlers.Upload)             // пакетная обработка
	engine.GET("/images", handlers.ListImages)          // галерея
	engine.PUT("/images/variant", handlers.Reapply)     // перерисовка с другим вариантом
	engine.PATCH("/images/select", handlers.SelectAll)  // выбрать/снять все
	engine.PATCH("/images/:id/select", handlers.Select) // выбрать одну
	engine.DELETE("/images/:id", handlers.Delete)       // удаление
	engine.GET("/images/archive", handlers.Archive)     // zip выбранных
	engine.POST("/images/export", handlers.Export)      // выгрузка выбранных в хранилище
	engine.GET("/display/:handle", handlers.Display)    // отображение по хендлу

	srv := &http.Server{
		Addr:    ":" + settings.Port,
		Handler: mwlogger.NewMWLogger(engine),
	}

	// Server launch
	go func() {
		log.Printf("Server running on http://localhost%s\n", srv.Addr)
		err := srv.ListenAndServe()
		if err != nil {
			switch {
			case errors.Is(err, http.ErrServerClosed):
				log.Println("Server gracefully stopping...")
			default:
				log.Printf("Server stopped: %v", err)
				stop()
			}
		}
	}()

	// ждем отмены контекста для запуска грейсфул закрытия сервера и кафки
	<-ctx.Done()

	shutdown(srv, producer)
	log.Println("Exiting api...")
}

func shutdown(srv *http.Server, producer *wbfkafka.Producer) {
	log.Println("Interrupt received!!! Starting shutdown sequence...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Failed to shutdown HTTP-server correctly:", err)
	}

	// Closing Kafka connection:
	if producer == nil {
		return
	}
	if err := producer.Close(); err != nil {
		log.Println("Failed to close Kafka-producer:", err)
	}
	log.Println("Kafka-producer connection closed.")
}
