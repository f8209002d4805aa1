// Package workspace provides per-invocation scratch directories. A rendered
// settings profile lives here for exactly one task run; nothing in a scratch
// directory is shared between invocations or survives the run that created it.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Scratch is a freshly created working directory for one task invocation.
type Scratch struct {
	dir string
}

// Create makes a new scratch directory under baseDir (os.TempDir when empty).
// The name carries a timestamp so directories left behind by a crashed run
// are easy to date and sweep by hand.
func Create(baseDir string) (*Scratch, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create scratch base directory: %w", err)
	}

	stamp := time.Now().Format("20060102-150405")
	dir, err := os.MkdirTemp(baseDir, fmt.Sprintf("blogbuilder-%s-", stamp))
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	slog.Debug("Created scratch directory", logfields.Path(dir))
	return &Scratch{dir: dir}, nil
}

// Dir returns the scratch directory path.
func (s *Scratch) Dir() string {
	return s.dir
}

// Remove deletes the scratch directory and everything in it. Calling it on
// an already-removed scratch is a no-op.
func (s *Scratch) Remove() error {
	if s.dir == "" {
		return nil
	}
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to remove scratch directory: %w", err)
	}
	slog.Debug("Removed scratch directory", logfields.Path(s.dir))
	s.dir = ""
	return nil
}
