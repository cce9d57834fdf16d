// Package config resolves export settings from defaults, catalog.yaml and
// the environment. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/seysony91-ship-it/product-images/internal/catalog"
	"github.com/seysony91-ship-it/product-images/internal/rawurl"
	"github.com/seysony91-ship-it/product-images/internal/source"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the repository root
const DefaultFile = "catalog.yaml"

// Sources
const (
	SourceLocal = "local"
	SourceGit   = "git"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Environment variables read by FromEnv
const (
	EnvUser      = "CATALOG_GITHUB_USER"
	EnvRepo      = "CATALOG_GITHUB_REPO"
	EnvBranch    = "CATALOG_GITHUB_BRANCH"
	EnvBaseURL   = "CATALOG_BASE_URL"
	EnvImagesDir = "CATALOG_IMAGES_DIR"
)

// Config holds everything an export run needs
type Config struct {
	Source       string        `yaml:"source"`
	ImagesDir    string        `yaml:"images_dir"`
	Output       string        `yaml:"output"`
	Format       string        `yaml:"format"`
	IncludeFiles bool          `yaml:"include_files"`
	Extensions   []string      `yaml:"extensions"`
	Ref          string        `yaml:"ref"` // Empty means origin/<branch>
	Fetch        bool          `yaml:"fetch"`
	GitHub       rawurl.Config `yaml:"github"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Source:       SourceLocal,
		ImagesDir:    "images",
		Output:       "image_urls.csv",
		IncludeFiles: true,
		Extensions:   append([]string(nil), source.DefaultExtensions...),
		GitHub: rawurl.Config{
			User:   "seysony91-ship-it",
			Repo:   "product-images",
			Branch: "main",
		},
	}
}

// Load starts from Default, overlays the YAML file at configPath if it
// exists, then the environment. A missing file is not an error.
func Load(fs afero.Fs, configPath string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := afero.ReadFile(fs, configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalid, configPath, err)
			}
			slog.Debug("Loaded config file", "path", configPath)
		case errors.Is(err, os.ErrNotExist):
			slog.Debug("No config file", "path", configPath)
		default:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.applyEnv(getenv)

	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.GitHub.User, EnvUser)
	set(&c.GitHub.Repo, EnvRepo)
	set(&c.GitHub.Branch, EnvBranch)
	set(&c.GitHub.BaseURL, EnvBaseURL)
	set(&c.ImagesDir, EnvImagesDir)
}

// EffectiveRef is the git tree-ish listed by the git source
func (c Config) EffectiveRef() string {
	if c.Ref != "" {
		return c.Ref
	}
	return "origin/" + c.GitHub.Branch
}

// Validate reports the first problem found, wrapped in ErrInvalid
func (c Config) Validate() error {
	switch c.Source {
	case SourceLocal, SourceGit:
	default:
		return fmt.Errorf("%w: unknown source %q (expected %s or %s)", ErrInvalid, c.Source, SourceLocal, SourceGit)
	}

	if c.ImagesDir == "" {
		return fmt.Errorf("%w: images_dir is empty", ErrInvalid)
	}
	if filepath.IsAbs(c.ImagesDir) {
		return fmt.Errorf("%w: images_dir %q must be relative to the repository root", ErrInvalid, c.ImagesDir)
	}
	clean := path.Clean(filepath.ToSlash(c.ImagesDir))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: images_dir %q must be inside the repository root", ErrInvalid, c.ImagesDir)
	}

	if c.Output == "" {
		return fmt.Errorf("%w: output is empty", ErrInvalid)
	}
	if _, err := catalog.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: extensions is empty", ErrInvalid)
	}

	if err := c.GitHub.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}
