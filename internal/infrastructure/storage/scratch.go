package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// DefaultScratchDir is the scratch directory name under the OS temp dir.
const DefaultScratchDir = "uisampler_tmp"

// FallbackScratchDir is used, relative to the working directory, when the
// preferred scratch root is not writable.
const FallbackScratchDir = ".ui_sampler_tmp"

const probeName = ".write_probe"

// ResolveScratchRoot picks the scratch root: configured, else
// <os temp>/uisampler_tmp. The choice is verified with a write probe and
// falls back to ./.ui_sampler_tmp.
func ResolveScratchRoot(configured string, log ports.Logger) (string, error) {
	preferred := configured
	if preferred == "" {
		preferred = filepath.Join(os.TempDir(), DefaultScratchDir)
	}
	err := Probe(preferred)
	if err == nil {
		return preferred, nil
	}
	if log != nil {
		log.Warn("scratch root not writable, falling back", map[string]interface{}{
			"root":     preferred,
			"fallback": FallbackScratchDir,
			"error":    err.Error(),
		})
	}

	fallback, absErr := filepath.Abs(FallbackScratchDir)
	if absErr != nil {
		fallback = FallbackScratchDir
	}
	if err := Probe(fallback); err != nil {
		return "", fmt.Errorf("no writable scratch root: %w", err)
	}
	return fallback, nil
}

// Probe creates dir if needed and checks a file can be written and removed.
func Probe(dir string) error {
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	probe := filepath.Join(dir, probeName)
	if err := os.WriteFile(probe, []byte("ok"), domain.FilePermissions); err != nil {
		return err
	}
	return os.Remove(probe)
}
