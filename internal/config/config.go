package config

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/dshills/ordtree/internal/logging"
)

// Config is the merged ordtree configuration.
type Config struct {
	Logging LoggingConfig
	Demo    DemoConfig
	Script  ScriptConfig
	Watch   WatchConfig
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum level written ("debug", "info", "warn", "error").
	Level string
}

// DemoConfig holds settings for the random demo run.
type DemoConfig struct {
	// Size is how many random values seed the tree.
	Size int

	// MaxValue bounds random values to [2, MaxValue+1].
	MaxValue int

	// UnbalanceCount is how many values are added after the first build.
	UnbalanceCount int

	// Seed fixes the random source. Zero picks a time-based seed.
	Seed int64
}

// ScriptConfig holds limits for Lua scripts.
type ScriptConfig struct {
	// InstructionLimit caps VM instructions per run. Zero means unlimited.
	InstructionLimit int

	// Timeout cancels a run after this long. Zero means no timeout.
	Timeout time.Duration
}

// WatchConfig holds file watcher settings.
type WatchConfig struct {
	// Debounce is the quiet period before a changed script is re-run.
	Debounce time.Duration
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Demo: DemoConfig{
			Size:           20,
			MaxValue:       100,
			UnbalanceCount: 3,
		},
		Script: ScriptConfig{
			InstructionLimit: 1_000_000,
			Timeout:          5 * time.Second,
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
	}
}

// knownSettings lists every setting path a config file may contain.
// maxDemoValue keeps demo values in [2, maxValue+1] from overflowing int.
const maxDemoValue = math.MaxInt - 2

var knownSettings = []string{
	"logging.level",
	"demo.size",
	"demo.maxValue",
	"demo.unbalanceCount",
	"demo.seed",
	"script.instructionLimit",
	"script.timeout",
	"watch.debounce",
}

// Load reads the config file at path (skipped when path is empty) from fsys,
// layers ORDTREE_ environment variables over it, and validates the result.
func Load(fsys FileSystem, path string) (*Config, error) {
	return LoadWith(NewTOMLLoaderWithFS(fsys), NewEnvLoader(EnvPrefix), path)
}

// LoadWith is Load with explicit loaders. A nil env skips the environment.
func LoadWith(file *TOMLLoader, env *EnvLoader, path string) (*Config, error) {
	data := make(map[string]any)

	if path != "" {
		fileData, err := file.LoadFrom(path)
		if err != nil {
			return nil, err
		}
		if errs := unknownSettings(fileData); len(errs) > 0 {
			return nil, errs
		}
		deepMerge(data, fileData)
	}

	if env != nil {
		envData, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		deepMerge(data, envData)
	}

	return FromMap(data)
}

// FromMap applies data over the defaults and validates the result.
// Paths absent from data keep their default; paths not listed in
// knownSettings are ignored.
func FromMap(data map[string]any) (*Config, error) {
	cfg := Default()
	d := &decoder{data: data}

	d.string("logging.level", &cfg.Logging.Level)
	d.int("demo.size", &cfg.Demo.Size)
	d.int("demo.maxValue", &cfg.Demo.MaxValue)
	d.int("demo.unbalanceCount", &cfg.Demo.UnbalanceCount)
	d.int64("demo.seed", &cfg.Demo.Seed)
	d.int("script.instructionLimit", &cfg.Script.InstructionLimit)
	d.duration("script.timeout", &cfg.Script.Timeout)
	d.duration("watch.debounce", &cfg.Watch.Debounce)

	if len(d.errs) > 0 {
		return nil, d.errs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if !logging.ValidLogLevel(c.Logging.Level) {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Logging.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}

	atLeast := func(path string, value, lo int64) {
		if value < lo {
			errs = append(errs, &ValidationError{
				Path:    path,
				Message: fmt.Sprintf("must be at least %d", lo),
				Value:   value,
				Code:    ErrCodeOutOfRange,
			})
		}
	}
	if c.Demo.MaxValue > maxDemoValue {
		errs = append(errs, &ValidationError{
			Path:    "demo.maxValue",
			Message: fmt.Sprintf("must be at most %d", maxDemoValue),
			Value:   c.Demo.MaxValue,
			Code:    ErrCodeOutOfRange,
		})
	}
	atLeast("demo.size", int64(c.Demo.Size), 0)
	atLeast("demo.maxValue", int64(c.Demo.MaxValue), 1)
	atLeast("demo.unbalanceCount", int64(c.Demo.UnbalanceCount), 0)
	atLeast("script.instructionLimit", int64(c.Script.InstructionLimit), 0)
	atLeast("script.timeout", int64(c.Script.Timeout), 0)
	atLeast("watch.debounce", int64(c.Watch.Debounce), 0)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// unknownSettings reports paths in data that no setting uses.
func unknownSettings(data map[string]any) ValidationErrors {
	var errs ValidationErrors
	for section, value := range data {
		keys, ok := value.(map[string]any)
		if !ok {
			errs = append(errs, &ValidationError{
				Path:    section,
				Message: "unknown setting",
				Value:   value,
				Code:    ErrCodeUnknownSetting,
			})
			continue
		}
		for key, v := range keys {
			path := section + "." + key
			if !slices.Contains(knownSettings, path) {
				errs = append(errs, &ValidationError{
					Path:    path,
					Message: "unknown setting",
					Value:   v,
					Code:    ErrCodeUnknownSetting,
				})
			}
		}
	}
	slices.SortFunc(errs, func(a, b *ValidationError) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return errs
}

// decoder copies typed values out of a nested settings map, collecting
// type errors instead of stopping at the first.
type decoder struct {
	data map[string]any
	errs ValidationErrors
}

func (d *decoder) mismatch(path string, value any, want string) {
	d.errs = append(d.errs, &ValidationError{
		Path:    path,
		Message: "expected " + want,
		Value:   value,
		Code:    ErrCodeTypeMismatch,
	})
}

func (d *decoder) string(path string, dst *string) {
	v, ok := getByPath(d.data, path)
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		d.mismatch(path, v, "string")
		return
	}
	*dst = s
}

func (d *decoder) int64(path string, dst *int64) {
	v, ok := getByPath(d.data, path)
	if !ok {
		return
	}
	switch n := v.(type) {
	case int64:
		*dst = n
	case int:
		*dst = int64(n)
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			d.mismatch(path, v, "integer")
			return
		}
		*dst = int64(n)
	default:
		d.mismatch(path, v, "integer")
	}
}

func (d *decoder) int(path string, dst *int) {
	n := int64(*dst)
	before := len(d.errs)
	d.int64(path, &n)
	if len(d.errs) > before {
		return
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		d.errs = append(d.errs, &ValidationError{
			Path:    path,
			Message: "out of range",
			Value:   n,
			Code:    ErrCodeOutOfRange,
		})
		return
	}
	*dst = int(n)
}

// duration accepts a time.Duration, a string such as "250ms", or an
// integer number of milliseconds.
func (d *decoder) duration(path string, dst *time.Duration) {
	v, ok := getByPath(d.data, path)
	if !ok {
		return
	}
	switch t := v.(type) {
	case time.Duration:
		*dst = t
	case string:
		parsed, err := time.ParseDuration(t)
		if err != nil {
			d.mismatch(path, v, "duration")
			return
		}
		*dst = parsed
	case int64:
		*dst = time.Duration(t) * time.Millisecond
	case int:
		*dst = time.Duration(t) * time.Millisecond
	default:
		d.mismatch(path, v, "duration")
	}
}
