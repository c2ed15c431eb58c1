// Package storage connects the app to the object storage
package storage

import (
	"context"
	"time"

	"github.com/UnendingLoop/BrandMarker/internal/config"
	"github.com/UnendingLoop/BrandMarker/internal/storage/miniostorage"
	"github.com/wb-go/wbf/zlog"
)

// NewObjectStorage connects to MinIO, retrying until success or ctx cancellation
func NewObjectStorage(ctx context.Context, cfg config.Minio, delay time.Duration) (*miniostorage.MinioStorage, error) {
	for {
		zlog.Logger.Info().Str("addr", cfg.Addr).Msg("Connecting to object storage...")
		client, err := miniostorage.NewMinioClient(ctx, cfg)
		if err == nil {
			zlog.Logger.Info().Str("bucket", cfg.Bucket).Msg("Successfully connected to object storage")
			return client, nil
		}

		zlog.Logger.Warn().Err(err).Dur("retry_in", delay).Msg("Failed to init connection to object storage")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}
