// Package debug provides debug visualization and capture dump utilities.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SnapshotWriter saves images as timestamped PNG files.
type SnapshotWriter struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewSnapshotWriter creates a writer for outputDir. Files are named
// <prefix>_<label>_<timestamp>.png.
func NewSnapshotWriter(outputDir, prefix string) *SnapshotWriter {
	return &SnapshotWriter{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// OutputDir returns the output directory.
func (w *SnapshotWriter) OutputDir() string {
	return w.outputDir
}

// Save encodes img as PNG and returns the file path.
func (w *SnapshotWriter) Save(label string, img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("snapshot %q: no image", label)
	}

	// Create output directory if needed
	if w.outputDir != "" {
		if err := os.MkdirAll(w.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := w.Filename(label)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

// Filename generates a snapshot filename without saving.
func (w *SnapshotWriter) Filename(label string) string {
	timestamp := w.now().Format("2006-01-02_15-04-05.000")
	parts := []string{w.prefix}
	if label = sanitize(label); label != "" {
		parts = append(parts, label)
	}
	parts = append(parts, timestamp)

	filename := strings.Join(parts, "_") + ".png"
	if w.outputDir != "" {
		filename = filepath.Join(w.outputDir, filename)
	}
	return filename
}

// sanitize keeps labels safe for file names.
func sanitize(label string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		case r == ' ', r == '_', r == '.':
			return '-'
		}
		return -1
	}, strings.TrimSpace(label))
}
