// Package download turns generated documents into local files. A document is
// first staged as a temporary object next to its destination and then moved
// into place under its final name; the staged object is always released.
package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidFilename is returned for names that are empty or carry a path.
var ErrInvalidFilename = errors.New("download: invalid filename")

// Artifact is a payload ready to be delivered.
type Artifact struct {
	Filename    string
	Content     []byte
	ContentType string
}

// Sink delivers artifacts and reports where they ended up.
type Sink interface {
	Save(ctx context.Context, artifact Artifact) (string, error)
}

// DirSink writes artifacts into a directory.
type DirSink struct {
	dir    string
	perm   os.FileMode
	logger *slog.Logger
}

// DirOption configures a DirSink.
type DirOption func(*DirSink)

// WithFileMode sets the permission bits of delivered files.
func WithFileMode(perm os.FileMode) DirOption {
	return func(s *DirSink) {
		s.perm = perm
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) DirOption {
	return func(s *DirSink) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewDirSink returns a sink that saves into dir ("." when empty).
func NewDirSink(dir string, options ...DirOption) *DirSink {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	s := &DirSink{dir: dir, perm: 0o644, logger: slog.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

var _ Sink = (*DirSink)(nil)

// Dir returns the target directory.
func (s *DirSink) Dir() string {
	return s.dir
}

// Save stages the content in a temporary file, then renames it over the final
// name. A previous file under that name stays readable until the rename.
func (s *DirSink) Save(ctx context.Context, artifact Artifact) (string, error) {
	name := artifact.Filename
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("download: create %s: %w", s.dir, err)
	}

	staged, err := s.stage(artifact.Content)
	if err != nil {
		return "", err
	}
	defer s.release(staged)

	target := filepath.Join(s.dir, name)
	// os.Rename replaces an existing file in one step.
	if err := os.Rename(staged, target); err != nil {
		return "", fmt.Errorf("download: deliver %s: %w", name, err)
	}
	s.logger.DebugContext(ctx, "document saved",
		slog.String("path", target),
		slog.Int("bytes", len(artifact.Content)),
	)
	return target, nil
}

func (s *DirSink) stage(content []byte) (string, error) {
	f, err := os.CreateTemp(s.dir, ".l4doc-*.part")
	if err != nil {
		return "", fmt.Errorf("download: stage: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		s.release(path)
		return "", fmt.Errorf("download: stage: %w", err)
	}
	if err := f.Chmod(s.perm); err != nil {
		_ = f.Close()
		s.release(path)
		return "", fmt.Errorf("download: stage: %w", err)
	}
	if err := f.Close(); err != nil {
		s.release(path)
		return "", fmt.Errorf("download: stage: %w", err)
	}
	return path, nil
}

// release drops a staged object. After a successful rename the path no
// longer exists and this is a no-op.
func (s *DirSink) release(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("release staged document", slog.String("path", path), slog.Any("error", err))
	}
}
