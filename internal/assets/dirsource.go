package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/UnendingLoop/BrandMarker/internal/model"
)

// DirSource reads assets from a local directory; keys are slash-separated paths relative to it
type DirSource struct {
	root string
}

func NewDirSource(root string) DirSource {
	return DirSource{root: root}
}

func (d DirSource) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) {
		return nil, "", fmt.Errorf("asset key %q escapes asset directory", key)
	}

	f, err := os.Open(filepath.Join(d.root, rel))
	if err != nil {
		return nil, "", err
	}
	return f, model.GetCTypeByExt[strings.ToLower(filepath.Ext(key))], nil
}
