// Package config reads application settings from env and .env files
package config

import (
	"strconv"
	"strings"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/wb-go/wbf/config"
)

const (
	AssetSourceDir   = "dir"
	AssetSourceMinio = "minio"
)

// Minio - параметры подключения к объектному хранилищу
type Minio struct {
	Addr   string
	User   string
	Pass   string
	Bucket string
}

type Kafka struct {
	Broker        string
	Topic         string
	ProgressTopic string
	GroupID       string
}

type Settings struct {
	Port     string
	GinMode  string
	LogLevel string

	DefaultBrand   model.BrandID
	CanvasMin      float64
	CanvasMax      float64
	JPEGQuality    int
	MaxUploadBytes int64

	AssetSource  string
	AssetDir     string
	ExportPrefix string
	ResultKey    string

	Minio Minio
	Kafka Kafka
}

// getter is the part of wbf config we read from
type getter interface {
	GetString(key string) string
}

// Load reads env and the .env file into Settings. Empty envFile means env only.
func Load(envFile string) (*Settings, error) {
	cfg := config.New()
	cfg.EnableEnv("")
	if envFile != "" {
		if err := cfg.LoadEnvFiles(envFile); err != nil {
			return nil, err
		}
	}
	return fromGetter(cfg), nil
}

func fromGetter(cfg getter) *Settings {
	s := &Settings{
		Port:     stringOr(cfg, "APP_PORT", "8080"),
		GinMode:  stringOr(cfg, "GIN_MODE", "release"),
		LogLevel: stringOr(cfg, "LOG_LEVEL", "info"),

		DefaultBrand:   model.BrandID(cfg.GetString("DEFAULT_BRAND")),
		CanvasMin:      floatOr(cfg, "CANVAS_MIN_SIZE", 600),
		CanvasMax:      floatOr(cfg, "CANVAS_MAX_SIZE", 2000),
		JPEGQuality:    int(intOr(cfg, "JPEG_QUALITY", 90)),
		MaxUploadBytes: intOr(cfg, "MAX_UPLOAD_BYTES", model.MaxUploadBytes),

		AssetSource:  strings.ToLower(stringOr(cfg, "ASSET_SOURCE", AssetSourceDir)),
		AssetDir:     stringOr(cfg, "ASSET_DIR", "./assets"),
		ExportPrefix: stringOr(cfg, "EXPORT_PREFIX", "exports/"),
		ResultKey:    stringOr(cfg, "RESULT_KEY", "results/"),

		Minio: Minio{
			Addr:   cfg.GetString("MINIO_CONTAINER_NAME"),
			User:   cfg.GetString("MINIO_USER"),
			Pass:   cfg.GetString("MINIO_PASS"),
			Bucket: stringOr(cfg, "BUCKET_NAME", "default"),
		},
		Kafka: Kafka{
			Broker:        cfg.GetString("KAFKA_BROKER"),
			Topic:         cfg.GetString("KAFKA_TOPIC"),
			ProgressTopic: cfg.GetString("KAFKA_PROGRESS_TOPIC"),
			GroupID:       cfg.GetString("KAFKA_GROUPID"),
		},
	}

	// кривые границы холста - откатываемся на дефолт
	if s.CanvasMin <= 0 || s.CanvasMax < s.CanvasMin {
		s.CanvasMin, s.CanvasMax = 600, 2000
	}
	if s.AssetSource != AssetSourceMinio {
		s.AssetSource = AssetSourceDir
	}
	return s
}

func stringOr(cfg getter, key, def string) string {
	if v := strings.TrimSpace(cfg.GetString(key)); v != "" {
		return v
	}
	return def
}

func floatOr(cfg getter, key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cfg.GetString(key)), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func intOr(cfg getter, key string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(cfg.GetString(key)), 10, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
