package main

import (
	"github.com/UnendingLoop/BrandMarker/internal/assets"
	"github.com/UnendingLoop/BrandMarker/internal/config"
	"github.com/UnendingLoop/BrandMarker/internal/storage/miniostorage"
)

// assetSource - у воркера хранилище есть всегда, поэтому режим minio не может не собраться
func assetSource(s *config.Settings, strg *miniostorage.MinioStorage) assets.Source {
	if s.AssetSource == config.AssetSourceMinio {
		return strg
	}
	return assets.NewDirSource(s.AssetDir)
}
