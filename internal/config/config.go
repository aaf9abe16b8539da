// Package config holds process-wide cryostasis settings: the default
// exclusions applied by DeepFreeze, the unsupported-object diagnostic
// toggle, the log level and metrics.
//
// A Config is created once at startup and passed explicitly to
// engine.NewFromConfig. Files may be YAML, JSON or CUE.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/IljaManakov/cryostasis/internal/exclusion"
	"github.com/IljaManakov/cryostasis/internal/metrics"
	"github.com/IljaManakov/cryostasis/internal/object"
)

// Config is the process configuration.
type Config struct {
	// WarnUnsupported emits a diagnostic whenever an unsupported object
	// is skipped during freezing.
	WarnUnsupported bool `yaml:"warn_unsupported" json:"warn_unsupported"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// DefaultExclusions is unioned into every DeepFreeze.
	DefaultExclusions Exclusions `yaml:"default_exclusions" json:"default_exclusions"`

	Metrics metrics.Config `yaml:"metrics" json:"metrics"`
}

// Exclusions names exclusion members in a serializable form. Shapes are
// referenced by registered name, see object.LookupShape.
type Exclusions struct {
	Attrs   []string `yaml:"attrs" json:"attrs" validate:"dive,required"`
	Items   []string `yaml:"items" json:"items" validate:"dive,required"`
	Indexes []int64  `yaml:"indexes" json:"indexes"`
	Types   []string `yaml:"types" json:"types" validate:"dive,required"`
	Bases   []string `yaml:"bases" json:"bases" validate:"dive,required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the built-in configuration: diagnostics on, info
// logging, enums excluded from deep freezing and metrics off.
func Default() *Config {
	return &Config{
		WarnUnsupported: true,
		LogLevel:        "info",
		DefaultExclusions: Exclusions{
			Types: []string{object.EnumShape.Name()},
		},
	}
}

// Load reads path over the defaults and validates the result. The format
// is chosen by extension: .yaml, .yml, .json or .cue.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
	case ".cue":
		data, err = cueToJSON(data, path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// cueToJSON evaluates a CUE document and exports it as JSON, which the
// YAML decoder accepts as-is.
func cueToJSON(data []byte, path string) ([]byte, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile CUE config: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("CUE config is not concrete: %w", err)
	}
	out, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("export CUE config: %w", err)
	}
	return out, nil
}

// Validate checks struct constraints and that every shape name resolves.
// All problems are reported together.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			result = multierror.Append(result,
				fmt.Errorf("%s: failed %q constraint (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}

	for _, name := range c.DefaultExclusions.Types {
		if _, ok := object.LookupShape(name); !ok && name != "" {
			result = multierror.Append(result, fmt.Errorf("default_exclusions.types: unknown shape %q", name))
		}
	}
	for _, name := range c.DefaultExclusions.Bases {
		if _, ok := object.LookupShape(name); !ok && name != "" {
			result = multierror.Append(result, fmt.Errorf("default_exclusions.bases: unknown shape %q", name))
		}
	}

	return result.ErrorOrNil()
}

// Exclusions resolves DefaultExclusions into an exclusion set.
func (c *Config) Exclusions() (*exclusion.Set, error) {
	types, err := resolveShapes(c.DefaultExclusions.Types)
	if err != nil {
		return nil, err
	}
	bases, err := resolveShapes(c.DefaultExclusions.Bases)
	if err != nil {
		return nil, err
	}

	items := make([]object.Hashable, 0, len(c.DefaultExclusions.Items)+len(c.DefaultExclusions.Indexes))
	for _, k := range c.DefaultExclusions.Items {
		items = append(items, object.Str(k))
	}
	for _, i := range c.DefaultExclusions.Indexes {
		items = append(items, object.Int(i))
	}

	return exclusion.New(
		exclusion.Attrs(c.DefaultExclusions.Attrs...),
		exclusion.Items(items...),
		exclusion.Types(types...),
		exclusion.Bases(bases...),
	), nil
}

func resolveShapes(names []string) ([]*object.Shape, error) {
	out := make([]*object.Shape, 0, len(names))
	for _, name := range names {
		s, ok := object.LookupShape(name)
		if !ok {
			return nil, fmt.Errorf("unknown shape %q", name)
		}
		out = append(out, s)
	}
	return out, nil
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
