package main

import (
	"context"
	"fmt"

	"github.com/UnendingLoop/BrandMarker/internal/assets"
	"github.com/UnendingLoop/BrandMarker/internal/config"
	"github.com/UnendingLoop/BrandMarker/internal/storage/miniostorage"
	"github.com/UnendingLoop/BrandMarker/internal/transport"
)

type WatermarkAPIService interface {
	transport.WatermarkService
	Warmup(ctx context.Context) error
}

func assetSource(s *config.Settings, strg *miniostorage.MinioStorage) (assets.Source, error) {
	if s.AssetSource != config.AssetSourceMinio {
		return assets.NewDirSource(s.AssetDir), nil
	}
	if strg == nil {
		return nil, fmt.Errorf("asset source %q requires MINIO_CONTAINER_NAME", s.AssetSource)
	}
	return strg, nil
}
