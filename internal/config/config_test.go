package config

import (
	"errors"
	"io/fs"
	"math"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

// envOf returns an EnvLoader that sees only vars.
func envOf(vars ...string) *EnvLoader {
	l := NewEnvLoader(EnvPrefix)
	l.lookup = func() []string { return vars }
	return l
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Demo.Size != 20 || cfg.Demo.MaxValue != 100 || cfg.Demo.UnbalanceCount != 3 {
		t.Errorf("Demo = %+v, want size 20, maxValue 100, unbalanceCount 3", cfg.Demo)
	}
	if cfg.Demo.Seed != 0 {
		t.Errorf("Demo.Seed = %d, want 0", cfg.Demo.Seed)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadWith_File(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/ordtree.toml", `
[logging]
level = "debug"

[demo]
size = 30
maxValue = 200
seed = 42

[script]
instructionLimit = 5000
timeout = "2s"

[watch]
debounce = 250
`)

	cfg, err := LoadWith(NewTOMLLoaderWithFS(memfs), nil, "/ordtree.toml")
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Demo.Size != 30 || cfg.Demo.MaxValue != 200 || cfg.Demo.Seed != 42 {
		t.Errorf("Demo = %+v", cfg.Demo)
	}
	if cfg.Demo.UnbalanceCount != 3 {
		t.Errorf("Demo.UnbalanceCount = %d, want default 3", cfg.Demo.UnbalanceCount)
	}
	if cfg.Script.InstructionLimit != 5000 {
		t.Errorf("Script.InstructionLimit = %d, want 5000", cfg.Script.InstructionLimit)
	}
	if cfg.Script.Timeout != 2*time.Second {
		t.Errorf("Script.Timeout = %v, want 2s", cfg.Script.Timeout)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 250ms", cfg.Watch.Debounce)
	}
}

func TestLoadWith_EnvOverridesFile(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/ordtree.toml", "[demo]\nsize = 30\nmaxValue = 200\n")

	env := envOf(
		"ORDTREE_DEMO_SIZE=7",
		"ORDTREE_LOG_LEVEL=warn",
		"ORDTREE_WATCH_DEBOUNCE=1s",
		"OTHER_DEMO_SIZE=99",
	)
	cfg, err := LoadWith(NewTOMLLoaderWithFS(memfs), env, "/ordtree.toml")
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}

	if cfg.Demo.Size != 7 {
		t.Errorf("Demo.Size = %d, want 7 from env", cfg.Demo.Size)
	}
	if cfg.Demo.MaxValue != 200 {
		t.Errorf("Demo.MaxValue = %d, want 200 from file", cfg.Demo.MaxValue)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Watch.Debounce = %v, want 1s", cfg.Watch.Debounce)
	}
}

func TestLoadWith_NoPath(t *testing.T) {
	cfg, err := LoadWith(NewTOMLLoaderWithFS(NewMemFS()), envOf(), "")
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("LoadWith(\"\") = %+v, want defaults", *cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(NewMemFS(), "/missing.toml")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Load() error = %v, want ErrFileNotFound", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoad_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[demo]\nsize = = 3\n")

	_, err := LoadWith(NewTOMLLoaderWithFS(memfs), nil, "/bad.toml")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("LoadWith() error = %v, want *ParseError", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("ParseError.Path = %q, want /bad.toml", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", perr.Line)
	}
}

func TestLoad_UnknownSetting(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/ordtree.toml", "[demo]\nsize = 3\ncolour = \"red\"\n")

	_, err := LoadWith(NewTOMLLoaderWithFS(memfs), nil, "/ordtree.toml")
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("LoadWith() error = %v, want ValidationErrors", err)
	}
	if len(verrs) != 1 || verrs[0].Path != "demo.colour" {
		t.Fatalf("errors = %v, want one for demo.colour", verrs)
	}
	if verrs[0].Code != ErrCodeUnknownSetting {
		t.Errorf("Code = %s, want unknown_setting", verrs[0].Code)
	}
}

func TestFromMap_Validation(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		path string
		code ValidationErrorCode
	}{
		{
			name: "bad level",
			data: map[string]any{"logging": map[string]any{"level": "loud"}},
			path: "logging.level",
			code: ErrCodeInvalidEnum,
		},
		{
			name: "negative size",
			data: map[string]any{"demo": map[string]any{"size": int64(-1)}},
			path: "demo.size",
			code: ErrCodeOutOfRange,
		},
		{
			name: "zero max value",
			data: map[string]any{"demo": map[string]any{"maxValue": int64(0)}},
			path: "demo.maxValue",
			code: ErrCodeOutOfRange,
		},
		{
			name: "max value overflows",
			data: map[string]any{"demo": map[string]any{"maxValue": int64(math.MaxInt64)}},
			path: "demo.maxValue",
			code: ErrCodeOutOfRange,
		},
		{
			name: "string size",
			data: map[string]any{"demo": map[string]any{"size": "big"}},
			path: "demo.size",
			code: ErrCodeTypeMismatch,
		},
		{
			name: "fractional seed",
			data: map[string]any{"demo": map[string]any{"seed": 1.5}},
			path: "demo.seed",
			code: ErrCodeTypeMismatch,
		},
		{
			name: "bad duration",
			data: map[string]any{"script": map[string]any{"timeout": "soon"}},
			path: "script.timeout",
			code: ErrCodeTypeMismatch,
		},
		{
			name: "negative debounce",
			data: map[string]any{"watch": map[string]any{"debounce": "-1s"}},
			path: "watch.debounce",
			code: ErrCodeOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.data)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("FromMap() error = %v, want *ValidationError", err)
			}
			if verr.Path != tt.path || verr.Code != tt.code {
				t.Errorf("FromMap() error = %s %s, want %s %s", verr.Path, verr.Code, tt.path, tt.code)
			}
			if tt.code == ErrCodeTypeMismatch && !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("errors.Is(err, ErrTypeMismatch) = false for %v", err)
			}
		})
	}
}

func TestFromMap_CollectsAllErrors(t *testing.T) {
	_, err := FromMap(map[string]any{
		"logging": map[string]any{"level": "loud"},
		"demo":    map[string]any{"size": int64(-5), "unbalanceCount": int64(-1)},
	})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("FromMap() error = %v, want ValidationErrors", err)
	}
	if len(verrs) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(verrs), verrs)
	}
	if !strings.Contains(err.Error(), "and 2 more") {
		t.Errorf("Error() = %q, want a count of the rest", err.Error())
	}
}

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Message: "bad"}, "parse error in a.toml: bad"},
		{&ParseError{Path: "a.toml", Line: 3, Message: "bad"}, "parse error in a.toml at line 3: bad"},
		{&ParseError{Path: "a.toml", Line: 3, Column: 7, Message: "bad"}, "parse error in a.toml at line 3, column 7: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestValidateCapsMaxValue(t *testing.T) {
	cfg := Default()
	cfg.Demo.MaxValue = math.MaxInt

	var verr *ValidationError
	if err := cfg.Validate(); !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	if verr.Path != "demo.maxValue" || verr.Code != ErrCodeOutOfRange {
		t.Errorf("Validate() = %v, want demo.maxValue out of range", verr)
	}

	cfg.Demo.MaxValue = maxDemoValue
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() at the cap = %v, want nil", err)
	}
}
