// Package source reads the starting values for a tree from files.
//
// YAML, TOML and JSON files hold a top-level "values" list; YAML and JSON
// may also be a bare list. Any other file is read as numbers separated by
// whitespace or commas, with '#' starting a comment.
package source

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Errors returned by the loaders.
var (
	// ErrNoValues indicates the file has no values list.
	ErrNoValues = errors.New("no values list found")

	// ErrNotInteger indicates a fractional value where integers are required.
	ErrNotInteger = errors.New("value is not an integer")
)

// Format identifies a values file format.
type Format int

// Supported formats.
const (
	FormatText Format = iota
	FormatYAML
	FormatTOML
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	default:
		return "text"
	}
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

// ParseError describes a values file that could not be decoded.
type ParseError struct {
	// Path is the file (or "<input>") that failed.
	Path string
	// Format is the format it was decoded as.
	Format Format
	// Message describes the problem.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s (%s): %s", e.Path, e.Format, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FileSystem reads whole files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader reads values files through a FileSystem.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a loader over the OS file system.
func NewLoader() *Loader {
	return &Loader{fs: OSFS{}}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads the numbers in the file at path.
func (l *Loader) Load(path string) ([]float64, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading values file %s: %w", path, err)
	}
	return parse(path, DetectFormat(path), data)
}

// LoadInts reads the file at path and requires every number to be integral.
func (l *Loader) LoadInts(path string) ([]int, error) {
	values, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return ToInts(values)
}

// Load reads the numbers in the file at path from the OS file system.
func Load(path string) ([]float64, error) {
	return NewLoader().Load(path)
}

// LoadInts reads integers from the file at path on the OS file system.
func LoadInts(path string) ([]int, error) {
	return NewLoader().LoadInts(path)
}

// Parse decodes data in the given format.
func Parse(format Format, data []byte) ([]float64, error) {
	return parse("<input>", format, data)
}

// ToInts converts values to ints, rejecting fractions and non-finite numbers.
func ToInts(values []float64) ([]int, error) {
	ints := make([]int, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: %v at index %d", ErrNotInteger, v, i)
		}
		ints[i] = int(v)
	}
	return ints, nil
}

func parse(path string, format Format, data []byte) ([]float64, error) {
	var (
		values []float64
		err    error
	)
	switch format {
	case FormatYAML:
		values, err = parseYAML(data)
	case FormatTOML:
		values, err = parseTOML(data)
	case FormatJSON:
		values, err = parseJSON(data)
	default:
		values, err = parseText(data)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Format: format, Message: err.Error(), Err: err}
	}
	return values, nil
}

func parseYAML(data []byte) ([]float64, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	switch d := doc.(type) {
	case []any:
		return numbers(d)
	case map[string]any:
		list, ok := d["values"].([]any)
		if !ok {
			return nil, ErrNoValues
		}
		return numbers(list)
	default:
		return nil, ErrNoValues
	}
}

func parseTOML(data []byte) ([]float64, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	list, ok := doc["values"].([]any)
	if !ok {
		return nil, ErrNoValues
	}
	return numbers(list)
}

func parseJSON(data []byte) ([]float64, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	list := gjson.ParseBytes(data)
	if !list.IsArray() {
		list = list.Get("values")
	}
	if !list.IsArray() {
		return nil, ErrNoValues
	}

	var values []float64
	for i, item := range list.Array() {
		if item.Type != gjson.Number {
			return nil, fmt.Errorf("element %d is %s, not a number", i, item.Type)
		}
		values = append(values, item.Float())
	}
	return values, nil
}

func parseText(data []byte) ([]float64, error) {
	var values []float64
	for lineNo, line := range strings.Split(string(data), "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q is not a number", lineNo+1, field)
			}
			values = append(values, v)
		}
	}
	return values, nil
}

// numbers converts decoded list elements to float64.
func numbers(list []any) ([]float64, error) {
	values := make([]float64, 0, len(list))
	for i, item := range list {
		switch v := item.(type) {
		case int:
			values = append(values, float64(v))
		case int64:
			values = append(values, float64(v))
		case uint64:
			values = append(values, float64(v))
		case float64:
			values = append(values, v)
		default:
			return nil, fmt.Errorf("element %d is %T, not a number", i, item)
		}
	}
	return values, nil
}
