// Package vizstore persists rendered diagrams to the workspace directory and
// keeps an optional SQLite catalog of what was saved.
package vizstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/qntx-braket/db"
	"github.com/teranos/qntx-braket/errors"
	"github.com/teranos/qntx-braket/internal/util"
	"github.com/teranos/qntx-braket/logger"
)

// SubDir is created under the workspace directory to hold saved images.
const SubDir = "braket_visualizations"

// FileSink writes PNG images to <workspace>/braket_visualizations.
type FileSink struct {
	dir     string
	catalog *Catalog
	log     *zap.SugaredLogger
	now     func() time.Time
}

// Option configures a FileSink.
type Option func(*FileSink)

// WithCatalog records every saved image in c.
func WithCatalog(c *Catalog) Option {
	return func(s *FileSink) { s.catalog = c }
}

// WithClock overrides the timestamp source used in file names.
func WithClock(now func() time.Time) Option {
	return func(s *FileSink) { s.now = now }
}

// NewFileSink returns a sink rooted at workspace. An empty workspace means
// the OS temp directory.
func NewFileSink(workspace string, opts ...Option) *FileSink {
	if workspace == "" {
		workspace = os.TempDir()
	}
	s := &FileSink{
		dir: filepath.Join(workspace, SubDir),
		log: logger.ComponentLogger("vizstore"),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory images are written to.
func (s *FileSink) Dir() string { return s.dir }

// Save writes image and returns its path.
func (s *FileSink) Save(ctx context.Context, image []byte, baseName string) (string, error) {
	return s.SaveDescribed(ctx, image, baseName, "")
}

// SaveDescribed writes image plus a sidecar metadata file holding
// description, and records the entry in the catalog when one is attached.
func (s *FileSink) SaveDescribed(ctx context.Context, image []byte, baseName, description string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.MarkVisualization(errors.Wrapf(err, "create %s", s.dir))
	}

	created := s.now()
	id := uuid.NewString()
	stem := fmt.Sprintf("%s_%s_%s", util.SafeFileName(baseName, "visualization"), created.Format("20060102_150405"), id[:8])
	path := filepath.Join(s.dir, stem+".png")

	if err := os.WriteFile(path, image, 0o644); err != nil {
		return "", errors.MarkVisualization(errors.Wrapf(err, "write %s", path))
	}
	if description != "" {
		meta := fmt.Sprintf("name: %s\ncreated: %s\ndescription: %s\n", baseName, created.Format(time.RFC3339), description)
		if err := os.WriteFile(filepath.Join(s.dir, stem+"_metadata.txt"), []byte(meta), 0o644); err != nil {
			return "", errors.MarkVisualization(errors.Wrap(err, "write metadata"))
		}
	}

	if s.catalog != nil {
		entry := Entry{
			ID:          id,
			Kind:        KindOf(baseName),
			BaseName:    baseName,
			Path:        path,
			Description: description,
			SizeBytes:   int64(len(image)),
			CreatedAt:   created,
		}
		// The image is already on disk; a catalog miss only hides it from listings.
		if err := s.catalog.Record(ctx, entry); db.IsDatabaseClosed(err) {
			s.log.Debugw("Catalog closed, visualization not recorded", logger.FieldPath, path)
		} else if err != nil {
			s.log.Warnw("Failed to catalog visualization", logger.FieldPath, path, logger.FieldError, err)
		}
	}

	s.log.Debugw("Saved visualization", logger.FieldPath, path, "bytes", len(image))
	return path, nil
}

// KindOf classifies a base name as "results" or "circuit".
func KindOf(baseName string) string {
	if strings.HasPrefix(baseName, "results_") {
		return "results"
	}
	return "circuit"
}
