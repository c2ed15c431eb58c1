package transport

import (
	"errors"
	"io"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/wb-go/wbf/zlog"
)

func errorCodeDefiner(err error) int {
	switch {
	case errors.Is(err, model.ErrCommon500),
		errors.Is(err, model.ErrResourceLoad),
		errors.Is(err, model.ErrResourcesNotLoaded),
		errors.Is(err, model.ErrUnsupportedStrategy),
		errors.Is(err, model.ErrRasterization):
		return 500
	case errors.Is(err, model.ErrImageNotFound),
		errors.Is(err, model.ErrHandleReleased):
		return 404
	case errors.Is(err, model.ErrSourceDecode),
		errors.Is(err, model.ErrEmptySource),
		errors.Is(err, model.ErrNoImages),
		errors.Is(err, model.ErrFileTooLarge),
		errors.Is(err, model.ErrUnknownVariant),
		errors.Is(err, model.ErrUnknownBrand),
		errors.Is(err, model.ErrNothingSelected),
		errors.Is(err, model.ErrUnsupportedFormat):
		return 400
	default:
		return 500
	}
}

func closeFileFlow(res io.ReadCloser) {
	if res == nil {
		return
	}
	if err := res.Close(); err != nil {
		zlog.Logger.Warn().Err(err).Msg("Handler failed to close fileflow")
	}
}
