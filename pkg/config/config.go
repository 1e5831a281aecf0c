// Package config loads the optional crossview.yaml file that seeds a
// view.Context.
//
// Every field is optional. Resolve fills in defaults, validates the result
// and returns the concrete values a context is built from:
//
//	resolved, err := config.Resolve(dir)
//	if err != nil {
//	    return err
//	}
//	ctx := resolved.Context()
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	viewerrors "github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/locale"
	"github.com/go-drift/crossview/pkg/platform"
	"github.com/go-drift/crossview/pkg/view"
)

// FileName is the configuration file looked up by LoadOptional.
const FileName = "crossview.yaml"

const (
	defaultPlatform = "macos"
	defaultVersion  = "v14.0.0"
	defaultLocale   = "en-US"
	defaultLogLevel = "info"
)

// Config represents the optional crossview.yaml configuration.
type Config struct {
	Platform PlatformConfig `yaml:"platform"`
	Render   RenderConfig   `yaml:"render"`
	Locale   string         `yaml:"locale,omitempty"`
	Log      LogConfig      `yaml:"log"`
}

// PlatformConfig selects the target views are materialized for.
type PlatformConfig struct {
	Name    string `yaml:"name,omitempty" validate:"omitempty,oneof=macos ios tvos watchos linux"`
	Version string `yaml:"version,omitempty" validate:"omitempty,osversion"`
}

// RenderConfig contains backend selection settings.
type RenderConfig struct {
	// Legacy starts the context with the native fallback forced on.
	Legacy bool `yaml:"legacy"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error disabled"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	Target     platform.Target
	Legacy     bool
	Locale     locale.Setting
	LogLevel   zerolog.Level
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("osversion", func(fl validator.FieldLevel) bool {
		_, err := platform.CanonicalVersion(fl.Field().String())
		return err == nil
	})
	return v
}

// LoadOptional reads crossview.yaml from dir if present. A missing file
// yields an empty Config.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Validate checks field values against their constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &viewerrors.ViewError{
			Op:        "config.Validate",
			Kind:      viewerrors.KindConfig,
			Err:       err,
			Timestamp: time.Now(),
		}
	}
	return nil
}

// Resolve loads crossview.yaml (if present), validates it and resolves
// defaults. An empty dir resolves the module enclosing the current
// directory.
func Resolve(dir string) (*Resolved, error) {
	if dir == "" {
		root, err := FindProjectRoot()
		if err != nil {
			return nil, err
		}
		dir = root
	}
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(dir)
}

// Resolve validates c and fills in defaults. dir is used to look up the
// enclosing module path; a directory without go.mod leaves it empty.
func (c *Config) Resolve(dir string) (*Resolved, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	target, err := platform.ParseTarget(
		orDefault(c.Platform.Name, defaultPlatform),
		orDefault(c.Platform.Version, defaultVersion),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid platform: %w", err)
	}

	setting, err := locale.ParseSetting(orDefault(c.Locale, defaultLocale))
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(orDefault(c.Log.Level, defaultLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		Target:     target,
		Legacy:     c.Render.Legacy,
		Locale:     setting,
		LogLevel:   level,
	}, nil
}

// Context builds a view context that logs to stderr.
func (r *Resolved) Context() *view.Context {
	return r.ContextWithLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger())
}

// ContextWithLogger builds a view context logging through logger at the
// configured level.
func (r *Resolved) ContextWithLogger(logger zerolog.Logger) *view.Context {
	ctx := view.NewContext(r.Target).WithLogger(logger.Level(r.LogLevel))
	ctx.Legacy.Set(r.Legacy)
	ctx.Locale.Set(r.Locale)
	return ctx
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}
