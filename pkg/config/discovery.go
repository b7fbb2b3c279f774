package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// configFileNames are the project config file names we search for, in
// order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var configFileNames = []string{
	".mdtree.yml",
	".mdtree.yaml",
	"mdtree.yml",
	"mdtree.yaml",
}

// vcsRootMarkers are directories that stop the upward search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// Discover searches upward from workDir for a project config file,
// stopping at a VCS root. Returns the empty string when none exists.
func Discover(workDir string) (string, error) {
	dir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", workDir, err)
	}

	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		if atVCSRoot(dir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func atVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// LoadFile reads and parses a config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Load resolves the effective configuration: an explicit path if
// given, otherwise the discovered project file, otherwise defaults.
// Environment overrides apply last.
func Load(workDir, explicit string) (*Config, error) {
	var cfg *Config

	switch {
	case explicit != "":
		loaded, err := LoadFile(explicit)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		path, err := Discover(workDir)
		if err != nil {
			return nil, err
		}
		if path != "" {
			loaded, err := LoadFile(path)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		} else {
			cfg = NewConfig()
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Environment variables recognized by applyEnv.
const (
	envFormat  = "MDTREE_FORMAT"
	envJobs    = "MDTREE_JOBS"
	envDisable = "MDTREE_DISABLE"
)

// applyEnv layers environment overrides onto an already-loaded config.
func applyEnv(cfg *Config) error {
	if v := os.Getenv(envFormat); v != "" {
		format := OutputFormat(v)
		if !format.IsValid() {
			return fmt.Errorf("%s: unknown output format %q", envFormat, v)
		}
		cfg.Format = format
	}

	if v := os.Getenv(envJobs); v != "" {
		jobs, err := strconv.Atoi(v)
		if err != nil || jobs < 0 {
			return fmt.Errorf("%s: expected a non-negative integer, got %q", envJobs, v)
		}
		cfg.Jobs = jobs
	}

	if v := os.Getenv(envDisable); v != "" {
		for _, tag := range strings.Split(v, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				cfg.Features.Disable = append(cfg.Features.Disable, tag)
			}
		}
		if _, err := cfg.FeatureSet(); err != nil {
			return fmt.Errorf("%s: %w", envDisable, err)
		}
	}

	return nil
}
