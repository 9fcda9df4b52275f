package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Yaoxizzz/AutoJs6-UI-sampler/assets"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/domain"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/pkg/filesystem"
	"github.com/Yaoxizzz/AutoJs6-UI-sampler/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "UISAMPLER_CONFIG"

// FileLoader loads YAML configuration from ~/.uisampler/config.yaml (overridable via UISAMPLER_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := writeConfig(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return hydrateDefaults(cfg), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Save writes the given config back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// Reset overwrites the config with defaults, keeping a backup of the old
// file when one exists.
func (l *FileLoader) Reset() (domain.Config, string, error) {
	backup, err := l.Backup()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.Config{}, "", err
	}
	cfg := DefaultConfig()
	if err := l.Save(cfg); err != nil {
		return domain.Config{}, "", err
	}
	return cfg, backup, nil
}

// Backup copies the current config file to a timestamped backup.
func (l *FileLoader) Backup() (string, error) {
	path := l.resolvePath()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102T150405"))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".uisampler", "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// DefaultConfig returns the embedded default configuration with paths
// expanded.
func DefaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		// embedded YAML is validated by tests; keep a usable minimum anyway
		cfg = domain.Config{ConfigFormatVersion: "1"}
	}
	return hydrateDefaults(cfg)
}

// hydrateDefaults fills zero values so a partial file behaves like the
// defaults. Paths with a leading ~/ are expanded.
func hydrateDefaults(cfg domain.Config) domain.Config {
	home := filesystem.UserHomeDir()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Output.Root == "" {
		cfg.Output.Root = filepath.Join(home, "uisampler", "samples")
	}
	cfg.Output.Root = filesystem.ExpandPath(cfg.Output.Root)
	if cfg.Output.ScratchRoot != "" {
		cfg.Output.ScratchRoot = filesystem.ExpandPath(cfg.Output.ScratchRoot)
	}

	s := &cfg.Sampling
	if s.PointCropSize <= 0 {
		s.PointCropSize = domain.DefaultPointCropSize
	}
	if s.TreeRetry <= 0 {
		s.TreeRetry = domain.DefaultTreeRetry
	}
	if s.TreeRetryInterval == "" {
		s.TreeRetryInterval = domain.DefaultTreeRetryInterval.String()
	}
	if s.CaptureDelay == "" {
		s.CaptureDelay = domain.DefaultCaptureDelay.String()
	}
	if s.AncestorDepth <= 0 {
		s.AncestorDepth = domain.DefaultAncestorDepth
	}

	if cfg.Codegen.FindTimeoutMS <= 0 {
		cfg.Codegen.FindTimeoutMS = domain.DefaultFindTimeoutMS
	}
	if cfg.Codegen.MaxCandidates <= 0 {
		cfg.Codegen.MaxCandidates = domain.DefaultMaxCandidates
	}

	if cfg.Naming.MaxAttempts <= 0 {
		cfg.Naming.MaxAttempts = domain.DefaultMaxNameAttempts
	}
	if cfg.Naming.MaxLength <= 0 {
		cfg.Naming.MaxLength = domain.DefaultMaxNameLength
	}
	if cfg.Naming.PromptTimeout == "" {
		cfg.Naming.PromptTimeout = domain.DefaultPromptTimeout.String()
	}

	if cfg.Commit.PromoteAttempts <= 0 {
		cfg.Commit.PromoteAttempts = domain.DefaultPromoteAttempts
	}

	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = filepath.Join(home, ".uisampler", "catalog.db")
	}
	cfg.Catalog.Path = filesystem.ExpandPath(cfg.Catalog.Path)
	if cfg.Tree.Snapshot != "" {
		cfg.Tree.Snapshot = filesystem.ExpandPath(cfg.Tree.Snapshot)
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
