package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/toran/types"
)

const (
	// Filename is the name suggested for the CSV download
	Filename = "toran_inventory.csv"

	// MediaType is the content type of the CSV download
	MediaType = "text/csv"
)

// Artifact is a named blob offered to the user for download
type Artifact struct {
	Filename  string
	MediaType string
	Content   []byte
}

// NewCSVArtifact wraps the CSV rendering of items
func NewCSVArtifact(items []types.Item) Artifact {
	return Artifact{
		Filename:  Filename,
		MediaType: MediaType,
		Content:   CSV(items),
	}
}

// Download writes the artifact into dir under its own filename and returns
// the written path. The file is written to a temporary name first and renamed
// into place, so readers never observe a partial export.
func Download(artifact Artifact, dir string) (string, error) {
	if artifact.Filename == "" {
		return "", fmt.Errorf("artifact has no filename")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(artifact.Filename))
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(artifact.Filename)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(artifact.Content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write %s: %w", artifact.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write %s: %w", artifact.Filename, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move %s into place: %w", artifact.Filename, err)
	}
	return path, nil
}
