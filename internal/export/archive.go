// Package export bundles processed images for download
package export

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// Entry is one file of the bundle
type Entry struct {
	Name string
	Data []byte
}

// WriteArchive writes entries into a zip stream. Repeated names get a numeric suffix.
func WriteArchive(w io.Writer, entries []Entry, modified time.Time) error {
	zw := zip.NewWriter(w)
	seen := map[string]int{}

	for _, e := range entries {
		hdr := &zip.FileHeader{
			Name:     uniqueName(e.Name, seen),
			Method:   zip.Store, // JPEG уже сжат
			Modified: modified,
		}
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("failed to add %q to archive: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return fmt.Errorf("failed to write %q to archive: %w", e.Name, err)
		}
	}

	return zw.Close()
}

// Archive returns the zip as bytes
func Archive(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteArchive(&buf, entries, time.Now()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func uniqueName(name string, seen map[string]int) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}

	ext := path.Ext(name)
	res := fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(name, ext), n+1, ext)
	if _, taken := seen[res]; taken {
		return uniqueName(res, seen)
	}
	seen[res] = 1
	return res
}
