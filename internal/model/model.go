// Package model provides data-structs for internal app-usage
package model

import "errors"

type (
	BrandID        string
	LayoutStrategy int
)

// Layout strategies are a closed set: a brand picks one, every one has an implementation in imageproc.
const (
	LayoutPhoneOverride LayoutStrategy = iota + 1 // centre+corner pair, replaced wholesale by a phone overlay
	LayoutSideLogo                                // toggleable side logo, fixed centre, conditional phone
	LayoutPhoneCorner                             // optional phone, fixed corner and centre
	LayoutTriptych                                // centre/bottom/number, brand opt-out variant
)

var layoutNames = map[LayoutStrategy]string{
	LayoutPhoneOverride: "phone_override",
	LayoutSideLogo:      "side_logo",
	LayoutPhoneCorner:   "phone_corner",
	LayoutTriptych:      "triptych",
}

func (l LayoutStrategy) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return "unknown"
}

func (l LayoutStrategy) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Keys of brand-level assets inside BrandConfig.Assets
const (
	AssetLogoCenter = "logoCenter"
	AssetLogoCorner = "logoCorner"
	AssetLogoBottom = "logoBottom"
	AssetCenter     = "center"
	AssetNumber     = "number"
)

//---------------------

type WatermarkVariant struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Asset   string `json:"-"`
	Default bool   `json:"default,omitempty"`
	OptOut  bool   `json:"opt_out,omitempty"` // "no phone" / "no watermark" for the brand
}

type BrandFeatures struct {
	SecondaryLogoToggle bool `json:"secondary_logo_toggle"`
	ArchiveDownload     bool `json:"archive_download"`
}

type Theme struct {
	PrimaryColor    string `json:"primary_color"`
	BackgroundColor string `json:"background_color"`
}

type BrandConfig struct {
	ID          BrandID            `json:"id"`
	Name        string             `json:"name"`
	DisplayName string             `json:"display_name"`
	Description string             `json:"description"`
	Assets      map[string]string  `json:"-"`
	Variants    []WatermarkVariant `json:"variants"`
	Layout      LayoutStrategy     `json:"layout"`
	Features    BrandFeatures      `json:"features"`
	Theme       Theme              `json:"theme"`
}

// DefaultVariant returns the first variant flagged default, or the first variant when none is flagged.
func (b BrandConfig) DefaultVariant() WatermarkVariant {
	for _, v := range b.Variants {
		if v.Default {
			return v
		}
	}
	if len(b.Variants) == 0 {
		return WatermarkVariant{}
	}
	return b.Variants[0]
}

// Variant resolves a variant by value; empty value means the brand default.
func (b BrandConfig) Variant(value string) (WatermarkVariant, bool) {
	if value == "" {
		return b.DefaultVariant(), len(b.Variants) > 0
	}
	for _, v := range b.Variants {
		if v.Value == value {
			return v, true
		}
	}
	return WatermarkVariant{}, false
}

// ArchiveName is the suggested file name for a bundle of this brand's results
func (b BrandConfig) ArchiveName() string {
	return b.DisplayName + "-watermarked-images.zip"
}

//---------------------

type RenderOptions struct {
	InsertSecondaryLogo *bool `json:"insert_secondary_logo,omitempty"`
}

// SecondaryLogo reports whether the secondary logo must be drawn. Absent means yes.
func (o RenderOptions) SecondaryLogo() bool {
	return o.InsertSecondaryLogo == nil || *o.InsertSecondaryLogo
}

// SourceImage describes an original upload. Handle is its display handle once it lives in the gallery.
type SourceImage struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
	Handle      string `json:"handle,omitempty"`
}

// Rendered describes a watermarked output
type Rendered struct {
	Blob     []byte `json:"-"`
	Filename string `json:"filename"`
	Size     int    `json:"size"`
	Handle   string `json:"handle,omitempty"`
}

type BatchResult struct {
	Original  SourceImage `json:"original"`
	Processed *Rendered   `json:"processed,omitempty"`
	Err       string      `json:"error,omitempty"`
}

type ProcessedImage struct {
	ID        string      `json:"id"`
	Original  SourceImage `json:"original"`
	Processed Rendered    `json:"processed"`
	Variant   string      `json:"variant"`
	Label     string      `json:"label"`
	Selected  bool        `json:"selected"`
}

// ProgressFunc receives fraction in (0..1], 1-based index of the finished item and the batch size
type ProgressFunc func(fraction float64, current, total int)

type ProgressEvent struct {
	BatchID  string  `json:"batch_id"`
	Fraction float64 `json:"fraction"`
	Current  int     `json:"current"`
	Total    int     `json:"total"`
}

// RenderJob is the queue message consumed by the headless worker
type RenderJob struct {
	ID      string        `json:"id"`
	Brand   BrandID       `json:"brand"`
	Variant string        `json:"variant"`
	Options RenderOptions `json:"options"`
	Sources []string      `json:"sources"`
}

// ProcessReport is the outcome of one upload: per-item batch results in input order,
// files rejected before the batch and the gallery items created from successes
type ProcessReport struct {
	BatchID  string           `json:"batch_id"`
	Results  []BatchResult    `json:"results"`
	Rejected []BatchResult    `json:"rejected,omitempty"`
	Added    []ProcessedImage `json:"added"`
}

type ReapplyRequest struct {
	IDs                 []string `json:"ids"`
	Variant             string   `json:"variant"`
	InsertSecondaryLogo *bool    `json:"insert_secondary_logo"`
}

type SelectRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

type ExportReport struct {
	Saved int `json:"saved"`
	Total int `json:"total"`
}

//---------------------

const OutputPrefix = "marked-"

// OutputFilename is the suggested file name of a processed image
func OutputFilename(original string) string {
	return OutputPrefix + original
}

// MarkTypeLabel is the gallery caption of an applied variant: phone numbers and other values are shown as is
func MarkTypeLabel(value string) string {
	if value == "" || value == "default" || value == "0" {
		return "Mặc định"
	}
	return value
}

// ------------------

var (
	ErrCommon500           error = errors.New("something went wrong. Try again later")             // 500
	ErrResourceLoad        error = errors.New("failed to load image resource")                     // 500
	ErrResourcesNotLoaded  error = errors.New("brand resources are not preloaded")                 // 500
	ErrUnsupportedStrategy error = errors.New("layout strategy is not supported")                  // 500
	ErrRasterization       error = errors.New("failed to rasterize canvas")                        // 500
	ErrSourceDecode        error = errors.New("failed to decode source image")                     // 400
	ErrUnsupportedFormat   error = errors.New("unsupported image format")                          // 400
	ErrFileTooLarge        error = errors.New("file size exceeds the upload limit")                // 400
	ErrEmptySource         error = errors.New("empty/incorrect source image provided")             // 400
	ErrNoImages            error = errors.New("no images provided")                                // 400
	ErrUnknownVariant      error = errors.New("watermark variant is not defined for the brand")    // 400
	ErrUnknownBrand        error = errors.New("brand is not supported")                            // 400
	ErrNothingSelected     error = errors.New("no processed images selected")                      // 400
	ErrImageNotFound       error = errors.New("specified image doesn't exist")                     // 404
	ErrHandleReleased      error = errors.New("display handle doesn't exist or has been released") // 404
)

//--------------------

const (
	JPEG    = "image/jpeg"
	JPEGAlt = "image/jpg"
	PNG     = "image/png"
	GIF     = "image/gif"
	WEBP    = "image/webp"
	ZIP     = "application/zip"
)

const MaxUploadBytes int64 = 50 << 20

var InImageTypeMap = map[string]bool{
	JPEG:    true,
	JPEGAlt: true,
	PNG:     true,
	GIF:     true,
	WEBP:    true,
}

var InImageExtMap = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

var GetCTypeByExt = map[string]string{
	".jpeg": JPEG,
	".jpg":  JPEG,
	".png":  PNG,
	".webp": WEBP,
	".gif":  GIF,
}
