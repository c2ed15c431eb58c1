// Package transport provides methods for processing requests from endpoints
package transport

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/UnendingLoop/BrandMarker/internal/model"
	"github.com/wb-go/wbf/ginext"
)

const uploadField = "images[]"

type WatermarkHandler struct {
	service   WatermarkService
	maxUpload int64
}

type WatermarkService interface {
	Brands() []model.BrandConfig
	ActiveBrand() model.BrandConfig
	ActivateBrand(ctx context.Context, id model.BrandID) (model.BrandConfig, error)

	Process(ctx context.Context, uploads []model.SourceImage, variant string, opts model.RenderOptions) (*model.ProcessReport, error)
	Reapply(ctx context.Context, ids []string, variant string, opts model.RenderOptions) ([]model.BatchResult, error)
	Delete(ctx context.Context, id string) error
	Select(ctx context.Context, id string, selected bool) error
	SelectAll(ctx context.Context, selected bool) int
	List(ctx context.Context) []model.ProcessedImage
	Display(ctx context.Context, handle string) ([]byte, string, error) // байты по хендлу отображения

	Archive(ctx context.Context) (string, []byte, error)
	Export(ctx context.Context) (model.ExportReport, error)
}

func NewWatermarkHandler(svc WatermarkService, maxUpload int64) *WatermarkHandler {
	if maxUpload <= 0 {
		maxUpload = model.MaxUploadBytes
	}
	return &WatermarkHandler{
		service:   svc,
		maxUpload: maxUpload,
	}
}

func (h WatermarkHandler) SimplePinger(ctx *ginext.Context) {
	ctx.JSON(200, map[string]string{"message": "pong"})
}

func (h WatermarkHandler) ListBrands(ctx *ginext.Context) {
	ctx.JSON(200, h.service.Brands())
}

func (h WatermarkHandler) ActiveBrand(ctx *ginext.Context) {
	ctx.JSON(200, h.service.ActiveBrand())
}

func (h WatermarkHandler) ActivateBrand(ctx *ginext.Context) {
	id := model.BrandID(ctx.Param("id"))

	res, err := h.service.ActivateBrand(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.JSON(200, res)
}

func (h WatermarkHandler) Upload(ctx *ginext.Context) {
	opts, err := parseRenderOptions(ctx.PostForm("insert_secondary_logo"))
	if err != nil {
		ctx.JSON(400, map[string]string{"error": err.Error()})
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(400, map[string]string{"error": "multipart form is required"})
		return
	}
	headers := form.File[uploadField]
	if len(headers) == 0 {
		headers = form.File["images"]
	}
	if len(headers) == 0 {
		ctx.JSON(400, map[string]string{"error": model.ErrNoImages.Error()})
		return
	}

	// читаем файлы в порядке загрузки - порядок результатов совпадает
	uploads := make([]model.SourceImage, 0, len(headers))
	for _, fh := range headers {
		img, err := h.readUpload(fh)
		if err != nil {
			ctx.JSON(400, map[string]string{"error": err.Error()})
			return
		}
		uploads = append(uploads, img)
	}

	res, err := h.service.Process(ctx.Request.Context(), uploads, ctx.PostForm("variant"), opts)
	if err != nil {
		body := map[string]any{"error": err.Error()}
		if res != nil && len(res.Rejected) > 0 {
			body["rejected"] = res.Rejected
		}
		ctx.JSON(errorCodeDefiner(err), body)
		return
	}

	ctx.JSON(201, res)
}

func (h WatermarkHandler) readUpload(fh *multipart.FileHeader) (model.SourceImage, error) {
	img := model.SourceImage{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	if fh.Size > h.maxUpload {
		// отдаём в сервис без байтов - он отклонит файл по размеру
		return img, nil
	}

	f, err := fh.Open()
	if err != nil {
		return img, fmt.Errorf("failed to open %q: %w", fh.Filename, err)
	}
	defer closeFileFlow(f)

	img.Data, err = io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		return img, fmt.Errorf("failed to read %q: %w", fh.Filename, err)
	}
	return img, nil
}

func (h WatermarkHandler) ListImages(ctx *ginext.Context) {
	ctx.JSON(200, h.service.List(ctx.Request.Context()))
}

func (h WatermarkHandler) Reapply(ctx *ginext.Context) {
	var req model.ReapplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, map[string]string{"error": "failed to parse request body"})
		return
	}

	res, err := h.service.Reapply(ctx.Request.Context(), req.IDs, req.Variant, model.RenderOptions{InsertSecondaryLogo: req.InsertSecondaryLogo})
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.JSON(200, res)
}

func (h WatermarkHandler) Select(ctx *ginext.Context) {
	var req model.SelectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, map[string]string{"error": "field 'selected' is required"})
		return
	}

	if err := h.service.Select(ctx.Request.Context(), ctx.Param("id"), *req.Selected); err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.Status(204)
}

func (h WatermarkHandler) SelectAll(ctx *ginext.Context) {
	var req model.SelectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(400, map[string]string{"error": "field 'selected' is required"})
		return
	}

	n := h.service.SelectAll(ctx.Request.Context(), *req.Selected)
	ctx.JSON(200, map[string]int{"affected": n})
}

func (h WatermarkHandler) Delete(ctx *ginext.Context) {
	id := ctx.Param("id")
	if err := h.service.Delete(ctx.Request.Context(), id); err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.Status(204)
}

func (h WatermarkHandler) Display(ctx *ginext.Context) {
	data, cType, err := h.service.Display(ctx.Request.Context(), ctx.Param("handle"))
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.Header("Cache-Control", "no-store")
	ctx.Data(200, cType, data)
}

func (h WatermarkHandler) Archive(ctx *ginext.Context) {
	name, data, err := h.service.Archive(ctx.Request.Context())
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	ctx.Data(200, model.ZIP, data)
}

func (h WatermarkHandler) Export(ctx *ginext.Context) {
	res, err := h.service.Export(ctx.Request.Context())
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]any{"error": err.Error(), "saved": res.Saved, "total": res.Total})
		return
	}

	ctx.JSON(200, res)
}

func parseRenderOptions(secondaryLogo string) (model.RenderOptions, error) {
	var opts model.RenderOptions
	if secondaryLogo == "" {
		return opts, nil
	}

	v, err := strconv.ParseBool(secondaryLogo)
	if err != nil {
		return opts, fmt.Errorf("incorrect insert_secondary_logo value %q", secondaryLogo)
	}
	opts.InsertSecondaryLogo = &v
	return opts, nil
}
