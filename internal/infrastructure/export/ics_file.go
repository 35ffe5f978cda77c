// Package export writes exported documents to the local export directory
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chefaid/chefaid/internal/ports/outbound"
	"go.uber.org/zap"
)

// FileSink stores calendars as files in a single directory. A later export
// under the same name replaces the earlier file.
type FileSink struct {
	dir    string
	logger *zap.Logger
}

var _ outbound.CalendarSink = (*FileSink)(nil)

// NewFileSink creates a sink rooted at dir
func NewFileSink(dir string, logger *zap.Logger) *FileSink {
	return &FileSink{dir: dir, logger: logger.Named("export")}
}

// Dir returns the export directory
func (s *FileSink) Dir() string {
	return s.dir
}

// SaveCalendar writes content to dir/name and returns the full path
func (s *FileSink) SaveCalendar(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("replace %s: %w", name, err)
	}

	s.logger.Debug("Document written", zap.String("path", path), zap.Int("bytes", len(content)))
	return path, nil
}
