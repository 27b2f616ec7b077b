package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	domrepo "ChurnScope/internal/domain/repository"
)

// FileArtifactSource reads the artifact from the local filesystem.
type FileArtifactSource struct {
	path   string
	format string
}

// NewFileArtifactSource infers the format from the file extension when
// format is empty.
func NewFileArtifactSource(path, format string) *FileArtifactSource {
	if format == "" {
		format = FormatFromPath(path)
	}
	return &FileArtifactSource{path: path, format: format}
}

func (s *FileArtifactSource) Name() string   { return s.path }
func (s *FileArtifactSource) Format() string { return s.format }

func (s *FileArtifactSource) Read(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read artifact file: %w", err)
	}
	return b, nil
}

func (s *FileArtifactSource) Close() error { return nil }

// FormatFromPath maps .yaml/.yml to "yaml" and everything else to "json".
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

var _ domrepo.ArtifactSource = (*FileArtifactSource)(nil)
