package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/gabriel-vasile/mimetype"
)

// validateUpload checks an upload against the accepted formats and the size limit and normalizes its content type
func validateUpload(img *model.SourceImage, maxBytes int64) error {
	if img == nil {
		return model.ErrEmptySource
	}

	// хендлер не читает тело слишком большого файла, поэтому размер проверяем до пустоты
	if int64(len(img.Data)) > maxBytes || img.Size > maxBytes {
		return fmt.Errorf("%w: %q", model.ErrFileTooLarge, img.Filename)
	}

	if len(img.Data) == 0 {
		return model.ErrEmptySource
	}

	ext := strings.ToLower(filepath.Ext(img.Filename))
	if !model.InImageExtMap[ext] {
		return fmt.Errorf("%w: extension %q", model.ErrUnsupportedFormat, ext)
	}

	declared := strings.ToLower(strings.TrimSpace(img.ContentType))
	if declared != "" && !model.InImageTypeMap[declared] {
		return fmt.Errorf("%w: content type %q", model.ErrUnsupportedFormat, declared)
	}

	sniffed := mimetype.Detect(img.Data).String()
	if !model.InImageTypeMap[sniffed] {
		return fmt.Errorf("%w: %q is %s", model.ErrUnsupportedFormat, img.Filename, sniffed)
	}

	img.ContentType = sniffed
	img.Size = int64(len(img.Data))
	return nil
}
