package export

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	res := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		res[f.Name] = string(b)
	}
	return res
}

func TestArchive(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    map[string]string
	}{
		{
			name:    "empty",
			entries: nil,
			want:    map[string]string{},
		},
		{
			name: "distinct names",
			entries: []Entry{
				{Name: "marked-a.jpg", Data: []byte("a")},
				{Name: "marked-b.png", Data: []byte("b")},
			},
			want: map[string]string{"marked-a.jpg": "a", "marked-b.png": "b"},
		},
		{
			name: "duplicates get suffix",
			entries: []Entry{
				{Name: "marked-a.jpg", Data: []byte("1")},
				{Name: "marked-a.jpg", Data: []byte("2")},
				{Name: "marked-a (2).jpg", Data: []byte("3")},
			},
			want: map[string]string{"marked-a.jpg": "1", "marked-a (2).jpg": "2", "marked-a (2) (2).jpg": "3"},
		},
		{
			name:    "paths are flattened",
			entries: []Entry{{Name: "../../etc/marked-x.jpg", Data: []byte("x")}},
			want:    map[string]string{"marked-x.jpg": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Archive(tt.entries)
			require.NoError(t, err)
			require.Equal(t, tt.want, readArchive(t, data))
		})
	}
}

func TestWriteArchive_Modified(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, []Entry{{Name: "a.jpg", Data: []byte("a")}}, ts))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	require.Equal(t, zip.Store, zr.File[0].Method)
	require.True(t, zr.File[0].Modified.Equal(ts))
}
