package export

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/forktal/internal/fractal"
)

// WritePNG encodes the current frame of f.
func WritePNG(w io.Writer, f *fractal.Field) error {
	return png.Encode(w, f.Image())
}

// SavePNG writes the current frame of f to path, creating parent
// directories as needed.
func SavePNG(path string, f *fractal.Field) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WritePNG(file, f); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

// SnapshotName returns a timestamped file name for interactive snapshots.
func SnapshotName(t time.Time) string {
	return fmt.Sprintf("forktal_%s.png", t.Format("20060102150405"))
}
