package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths resolves every file location of the application against one base directory
type Paths struct {
	BaseDir    string
	DataDir    string
	LogsDir    string
	ExportsDir string
}

// GetPaths returns the application paths. The base directory is JOBS_HOME
// when set, otherwise the current working directory.
func GetPaths() (*Paths, error) {
	base := os.Getenv(EnvPrefix + "_HOME")
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}
	return NewPaths(base)
}

// NewPaths returns the application paths below base
func NewPaths(base string) (*Paths, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %q: %w", base, err)
	}

	return &Paths{
		BaseDir:    abs,
		DataDir:    filepath.Join(abs, "data"),
		LogsDir:    filepath.Join(abs, DefaultLogsDir),
		ExportsDir: filepath.Join(abs, DefaultExportDir),
	}, nil
}

// Resolve returns path unchanged when absolute, otherwise joined to the base directory
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// EnsureDirectories creates the writable directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.LogsDir, p.ExportsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// FileExists checks if a regular file exists
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Path resolution",
		slog.String("base_dir", p.BaseDir),
		slog.String("data_dir", p.DataDir),
		slog.String("logs_dir", p.LogsDir),
		slog.String("exports_dir", p.ExportsDir),
	)
}
