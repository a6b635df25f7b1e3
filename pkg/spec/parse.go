package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/vischart/pkg/errors"
)

// Format is a spec document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".vischart":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported spec file extension: %q", filepath.Ext(path))
}

// ParseFile reads and parses a spec file.
func ParseFile(path string) (*ChartSpec, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "spec file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	return Parse(b, format)
}

// Parse decodes a spec document, applies defaults and validates it.
func Parse(b []byte, format Format) (*ChartSpec, error) {
	doc, err := toJSON(b, format)
	if err != nil {
		return nil, err
	}

	c := New()
	dec := json.NewDecoder(bytes.NewReader(doc))
	if err := dec.Decode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode %s spec", format)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseJSON is Parse with FormatJSON.
func ParseJSON(b []byte) (*ChartSpec, error) {
	return Parse(b, FormatJSON)
}

func toJSON(b []byte, format Format) ([]byte, error) {
	var doc any
	switch format {
	case FormatJSON:
		return b, nil
	case FormatYAML:
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode yaml spec")
		}
	case FormatTOML:
		var m map[string]any
		if _, err := toml.Decode(string(b), &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode toml spec")
		}
		doc = m
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported spec format: %q", format)
	}

	plain, err := plainJSON(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "convert %s spec", format)
	}
	out, err := json.Marshal(plain)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "convert %s spec", format)
	}
	return out, nil
}

// plainJSON rewrites decoded YAML or TOML values into types encoding/json
// can marshal: maps with non-string keys become string-keyed maps.
func plainJSON(v any) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			pv, err := plainJSON(val)
			if err != nil {
				return nil, err
			}
			out[k] = pv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			pv, err := plainJSON(val)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = pv
		}
		return out, nil
	case []map[string]any:
		out := make([]any, len(x))
		for i, val := range x {
			pv, err := plainJSON(val)
			if err != nil {
				return nil, err
			}
			out[i] = pv
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			pv, err := plainJSON(val)
			if err != nil {
				return nil, err
			}
			out[i] = pv
		}
		return out, nil
	}
	return v, nil
}
