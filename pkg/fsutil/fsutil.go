package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"
)

// WriteAtomic streams write's output into a pending file next to path and
// renames it into place only when write succeeds.
func WriteAtomic(path string, write func(w io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory '%s': %w", dir, err)
		}
	}

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file '%s': %w", path, err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			log.Debug().Err(err).Msgf("cleanup pending file %s", path)
		}
	}()

	if err := write(pendingFile); err != nil {
		return err
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace '%s': %w", path, err)
	}
	return nil
}

// EnsureDir returns an error unless path exists and is a directory.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path '%s' does not exist: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path '%s' is not a directory", path)
	}
	return nil
}
