package config

import (
	"testing"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/stretchr/testify/require"
)

type mapGetter map[string]string

func (m mapGetter) GetString(key string) string { return m[key] }

func TestFromGetter_Defaults(t *testing.T) {
	s := fromGetter(mapGetter{})

	require.Equal(t, "8080", s.Port)
	require.Equal(t, "info", s.LogLevel)
	require.Equal(t, 600.0, s.CanvasMin)
	require.Equal(t, 2000.0, s.CanvasMax)
	require.Equal(t, 90, s.JPEGQuality)
	require.Equal(t, model.MaxUploadBytes, s.MaxUploadBytes)
	require.Equal(t, AssetSourceDir, s.AssetSource)
	require.Equal(t, "default", s.Minio.Bucket)
	require.Empty(t, s.Kafka.ProgressTopic)
}

func TestFromGetter_Values(t *testing.T) {
	tests := []struct {
		name  string
		env   mapGetter
		check func(t *testing.T, s *Settings)
	}{
		{
			name: "explicit values",
			env: mapGetter{
				"APP_PORT":             "9090",
				"DEFAULT_BRAND":        "TT",
				"CANVAS_MIN_SIZE":      "800",
				"CANVAS_MAX_SIZE":      "1600",
				"JPEG_QUALITY":         "75",
				"MAX_UPLOAD_BYTES":     "1024",
				"ASSET_SOURCE":         "MinIO",
				"KAFKA_PROGRESS_TOPIC": "progress",
			},
			check: func(t *testing.T, s *Settings) {
				require.Equal(t, "9090", s.Port)
				require.Equal(t, model.BrandID("TT"), s.DefaultBrand)
				require.Equal(t, 800.0, s.CanvasMin)
				require.Equal(t, 1600.0, s.CanvasMax)
				require.Equal(t, 75, s.JPEGQuality)
				require.Equal(t, int64(1024), s.MaxUploadBytes)
				require.Equal(t, AssetSourceMinio, s.AssetSource)
				require.Equal(t, "progress", s.Kafka.ProgressTopic)
			},
		},
		{
			name: "broken numbers fall back",
			env:  mapGetter{"CANVAS_MIN_SIZE": "abc", "JPEG_QUALITY": "-1", "MAX_UPLOAD_BYTES": "1e9"},
			check: func(t *testing.T, s *Settings) {
				require.Equal(t, 600.0, s.CanvasMin)
				require.Equal(t, 90, s.JPEGQuality)
				require.Equal(t, model.MaxUploadBytes, s.MaxUploadBytes)
			},
		},
		{
			name: "inverted canvas bounds",
			env:  mapGetter{"CANVAS_MIN_SIZE": "3000", "CANVAS_MAX_SIZE": "1000"},
			check: func(t *testing.T, s *Settings) {
				require.Equal(t, 600.0, s.CanvasMin)
				require.Equal(t, 2000.0, s.CanvasMax)
			},
		},
		{
			name: "unknown asset source",
			env:  mapGetter{"ASSET_SOURCE": "s3"},
			check: func(t *testing.T, s *Settings) {
				require.Equal(t, AssetSourceDir, s.AssetSource)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, fromGetter(tt.env))
		})
	}
}
