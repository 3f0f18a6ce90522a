package cascade

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// cascadeSource represents a configuration source that can supply key/value data to the loader in a normalized map form.
type cascadeSource interface {
	// Name returns a human-readable label for the source, used in error messages and diagnostics.
	Name() string

	// ToMap returns a normalized map:
	//   - keys are lower cased
	//   - keys have no "." -- those are expansion operators that create nested maps
	//   - values are one of: nested maps (ONLY map[string]any); scalars (ONLY int, float64, bool, string); []any of scalars; nil.
	ToMap() (map[string]any, error)
}

// sourceMap adapts a Go map into a cascadeSource. Keys may use dot-notation to create nested objects.
type sourceMap struct {
	m map[string]any
}

func (s *sourceMap) Name() string {
	return "Defaults"
}

func (s *sourceMap) ToMap() (map[string]any, error) {
	out := map[string]any{}
	if err := mergeMap(out, s.m, ""); err != nil {
		return nil, err
	}
	return out, nil
}

type fileFormat uint8

const (
	formatJSON fileFormat = iota
	formatYAML
)

// sourceFile is a JSON or YAML file read at load time. Empty or whitespace-only files contribute no values.
type sourceFile struct {
	path   string // expanded with ExpandPath at load time
	format fileFormat
}

func (s *sourceFile) Name() string {
	if s.format == formatYAML {
		return fmt.Sprintf("YAML File: %s", s.path)
	}
	return fmt.Sprintf("JSON File: %s", s.path)
}

func (s *sourceFile) ToMap() (map[string]any, error) {
	data, err := os.ReadFile(ExpandPath(s.path))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}

	var raw any
	switch s.format {
	case formatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	}

	if raw == nil {
		return map[string]any{}, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level value must be an object")
	}

	normalized, err := normalizeValue(obj)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := mergeMap(out, normalized.(map[string]any), ""); err != nil {
		return nil, err
	}
	return out, nil
}

// normalizeValue converts decoded JSON/YAML values into the forms ToMap promises. Arrays must hold scalars only.
func normalizeValue(v any) (any, error) {
	switch vv := v.(type) {
	case nil, string, bool, float64, int:
		return vv, nil
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, e := range vv {
			ne, err := normalizeValue(e)
			if err != nil {
				return nil, fmt.Errorf("key '%s': %w", k, err)
			}
			out[k] = ne
		}
		return out, nil
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			switch e.(type) {
			case string, bool, float64, int:
				out[i] = e
			default:
				return nil, fmt.Errorf("array element %d: unsupported type %T", i, e)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// mergeMap merges src into dest, lowercasing keys and expanding dotted keys into nested objects. Setting the same leaf twice is an error.
func mergeMap(dest map[string]any, src map[string]any, baseKey string) error {
	for k, v := range src {
		full := k
		if baseKey != "" {
			full = baseKey + "." + k
		}
		if err := mergeIntoObject(dest, strings.Split(strings.ToLower(k), "."), v, full); err != nil {
			return err
		}
	}
	return nil
}

func mergeIntoObject(obj map[string]any, parts []string, value any, fullKey string) error {
	part := parts[0]
	existing, exists := obj[part]

	if len(parts) > 1 {
		if !exists {
			child := map[string]any{}
			obj[part] = child
			return mergeIntoObject(child, parts[1:], value, fullKey)
		}
		if m, ok := existing.(map[string]any); ok {
			return mergeIntoObject(m, parts[1:], value, fullKey)
		}
		return fmt.Errorf("key conflict at '%s': '%s' is not an object", fullKey, part)
	}

	if mv, ok := value.(map[string]any); ok {
		if !exists {
			existing = map[string]any{}
			obj[part] = existing
		}
		dest, isMap := existing.(map[string]any)
		if !isMap {
			return fmt.Errorf("key conflict: key '%s' was already set", fullKey)
		}
		return mergeMap(dest, mv, fullKey)
	}

	if exists {
		return fmt.Errorf("key conflict: key '%s' was already set", fullKey)
	}
	obj[part] = value
	return nil
}

// sourceEnv maps configuration keys ("." allowed for nesting) to environment variables.
type sourceEnv struct {
	keyToEnv map[string]string
}

func (s *sourceEnv) Name() string {
	return "ENV"
}

// ToMap implements cascadeSource. Missing and empty env variables do not set any key. All values are strings.
func (s *sourceEnv) ToMap() (map[string]any, error) {
	out := map[string]any{}
	for key, envVar := range s.keyToEnv {
		if envVar == "" {
			continue
		}
		val := os.Getenv(envVar)
		if val == "" {
			// An empty variable overriding a file setting is nearly always an accident.
			continue
		}
		if err := mergeIntoObject(out, strings.Split(strings.ToLower(key), "."), val, key); err != nil {
			return nil, err
		}
	}
	return out, nil
}
