package cascade

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

// Loader builds a prioritized cascade of configuration sources and applies them to a destination struct. Register sources in call order from lowest to highest priority using the With*
// methods, then call StrictlyLoad.
type Loader struct {
	sources []cascadeSource // ordered from low to high priority
	applied []string
}

// New returns a new Loader. It is equivalent to &Loader{} and exists to support fluent chaining.
func New() *Loader {
	return &Loader{}
}

// WithDefaults registers m as a source of default values. Keys may use dot-notation and are matched case-insensitively. A nil map contributes no values.
func (c *Loader) WithDefaults(m map[string]any) *Loader {
	c.sources = append(c.sources, &sourceMap{m: m})
	return c
}

// WithJSONFile registers a JSON file. path is expanded with ExpandPath and read during loading.
func (c *Loader) WithJSONFile(path string) *Loader {
	c.sources = append(c.sources, &sourceFile{path: path, format: formatJSON})
	return c
}

// WithYAMLFile registers a YAML file. path is expanded with ExpandPath and read during loading.
func (c *Loader) WithYAMLFile(path string) *Loader {
	c.sources = append(c.sources, &sourceFile{path: path, format: formatYAML})
	return c
}

// WithNearestJSONFile searches upward from startingAbsolutePath (or the working directory, if empty) for the first readable, non-empty file named fileName and registers it. fileName
// must be relative; it panics otherwise. If startingAbsolutePath is a file, its directory is used. If no file is found, the loader is unchanged.
func (c *Loader) WithNearestJSONFile(fileName string, startingAbsolutePath string) *Loader {
	if filepath.IsAbs(fileName) {
		panic("fileName shouldn't be absolute")
	}

	start := startingAbsolutePath
	if start == "" {
		if wd, err := os.Getwd(); err == nil {
			start = wd
		}
	}
	if start == "" {
		return c
	}
	if fi, err := os.Stat(start); err == nil && !fi.IsDir() {
		start = filepath.Dir(start)
	}

	for dir := start; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, fileName)
		if data, err := os.ReadFile(candidate); err == nil && strings.TrimSpace(string(data)) != "" {
			return c.WithJSONFile(candidate)
		}
		if filepath.Dir(dir) == dir {
			return c
		}
	}
}

// WithEnv registers an environment-variable-backed source. m maps a configuration key (dots denote nesting) to an environment variable name.
func (c *Loader) WithEnv(m map[string]string) *Loader {
	c.sources = append(c.sources, &sourceEnv{keyToEnv: m})
	return c
}

// Applied returns the names of the sources the last StrictlyLoad read, in priority order. Missing files are not included.
func (c *Loader) Applied() []string {
	return c.applied
}

// StrictlyLoad loads configuration from c's sources into dest, from low to high priority, with later sources overwriting earlier values. dest must be a non-nil pointer to a struct.
//
// If a readable source cannot be parsed or supplies a value that cannot be coerced to the field type, StrictlyLoad returns an error naming the source; it does not continue to later
// sources. Required fields are validated after all sources have been applied.
func (c *Loader) StrictlyLoad(dest any) error {
	destVal := reflect.ValueOf(dest)
	if dest == nil || destVal.Kind() != reflect.Ptr || destVal.IsNil() {
		return fmt.Errorf("dest must be a non-nil pointer to struct")
	}
	structVal := destVal.Elem()
	if structVal.Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a pointer to struct, got %s", structVal.Kind())
	}

	c.applied = nil
	present := map[string]bool{}
	for _, src := range c.sources {
		m, err := src.ToMap()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				continue
			}
			return fmt.Errorf("%s: %w", src.Name(), err)
		}
		if err := applyMapToStruct(structVal, m, "", present); err != nil {
			return fmt.Errorf("%s: %w", src.Name(), err)
		}
		c.applied = append(c.applied, src.Name())
	}

	return validateRequiredFields(structVal, "", present)
}

// computeFieldKey returns the lowercase key of f: the cascade tag name, else the json tag name, else the field name. "-" means skip.
func computeFieldKey(f reflect.StructField) string {
	if tag := f.Tag.Get("cascade"); tag != "" {
		name, _, _ := strings.Cut(tag, ",")
		if name = strings.TrimSpace(name); name != "" {
			return strings.ToLower(name)
		}
	}
	if tag := f.Tag.Get("json"); tag != "" {
		name, _, _ := strings.Cut(tag, ",")
		if name = strings.TrimSpace(name); name != "" && name != "-" {
			return strings.ToLower(name)
		}
	}
	return strings.ToLower(f.Name)
}

func requiredFromCascadeTag(f reflect.StructField) bool {
	_, opts, _ := strings.Cut(f.Tag.Get("cascade"), ",")
	for _, p := range strings.Split(opts, ",") {
		if strings.TrimSpace(p) == "required" {
			return true
		}
	}
	return false
}

// applyMapToStruct writes m into structVal, recording the dot-path of every assigned field in present. Unknown keys are ignored.
func applyMapToStruct(structVal reflect.Value, m map[string]any, basePath string, present map[string]bool) error {
	structType := structVal.Type()

	fieldIndex := map[string]int{}
	for i := 0; i < structType.NumField(); i++ {
		f := structType.Field(i)
		if !structVal.Field(i).CanSet() {
			continue
		}
		key := computeFieldKey(f)
		if key == "-" {
			continue
		}
		if prev, exists := fieldIndex[key]; exists {
			return fmt.Errorf("struct contains case-insensitive field key collision for %q: %s and %s", key, structType.Field(prev).Name, f.Name)
		}
		fieldIndex[key] = i
	}

	for key, raw := range m {
		idx, ok := fieldIndex[key]
		if !ok {
			continue
		}
		path := key
		if basePath != "" {
			path = basePath + "." + key
		}
		if err := setFieldValue(structVal.Field(idx), raw, path, present); err != nil {
			return err
		}
	}
	return nil
}

// setFieldValue sets fVal from raw, allocating pointers and coercing scalars. A nil raw leaves the field untouched.
func setFieldValue(fVal reflect.Value, raw any, path string, present map[string]bool) error {
	if raw == nil {
		return nil
	}
	if fVal.Kind() == reflect.Ptr {
		if fVal.IsNil() {
			fVal.Set(reflect.New(fVal.Type().Elem()))
		}
		return setFieldValue(fVal.Elem(), raw, path, present)
	}

	switch fVal.Kind() {
	case reflect.Struct:
		obj, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object for struct field", path)
		}
		return applyMapToStruct(fVal, obj, path, present)

	case reflect.Slice:
		items, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("%s: cannot coerce %T to slice", path, raw)
		}
		slice := reflect.MakeSlice(fVal.Type(), len(items), len(items))
		for i, item := range items {
			if err := setScalar(slice.Index(i), item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		fVal.Set(slice)

	default:
		if err := setScalar(fVal, raw, path); err != nil {
			return err
		}
	}
	present[path] = true
	return nil
}

func setScalar(v reflect.Value, raw any, path string) error {
	coerced, err := coerceScalar(raw, v.Kind(), path)
	if err != nil {
		return err
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(coerced.(string))
	case reflect.Bool:
		v.SetBool(coerced.(bool))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(coerced.(int64))
	case reflect.Float32, reflect.Float64:
		v.SetFloat(coerced.(float64))
	}
	return nil
}

// coerceScalar converts raw into a value for a field of targetKind: string, bool, int64 (for all signed int kinds) or float64 (for both float kinds). Strings are trimmed before
// parsing and floats are truncated toward zero for ints.
func coerceScalar(raw any, targetKind reflect.Kind, path string) (any, error) {
	switch targetKind {
	case reflect.String:
		switch v := raw.(type) {
		case string:
			return v, nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case int:
			return strconv.Itoa(v), nil
		case bool:
			return strconv.FormatBool(v), nil
		}
		return nil, fmt.Errorf("%s: cannot coerce %T to string", path, raw)
	case reflect.Bool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("%s: cannot parse bool from %q", path, v)
			}
			return parsed, nil
		}
		return nil, fmt.Errorf("%s: cannot coerce %T to bool", path, raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v := raw.(type) {
		case int:
			return int64(v), nil
		case float64:
			return int64(v), nil
		case string:
			parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: cannot parse int from %q", path, v)
			}
			return parsed, nil
		}
		return nil, fmt.Errorf("%s: cannot coerce %T to int", path, raw)
	case reflect.Float32, reflect.Float64:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("%s: cannot parse float from %q", path, v)
			}
			return parsed, nil
		}
		return nil, fmt.Errorf("%s: cannot coerce %T to float", path, raw)
	}
	return nil, fmt.Errorf("%s: unsupported field kind %s", path, targetKind)
}

// validateRequiredFields returns an error naming the first field tagged cascade:",required" that no source set. It recurses into nested structs.
func validateRequiredFields(structVal reflect.Value, basePath string, present map[string]bool) error {
	structType := structVal.Type()
	for i := 0; i < structType.NumField(); i++ {
		f := structType.Field(i)
		key := computeFieldKey(f)
		if key == "-" {
			continue
		}
		path := key
		if basePath != "" {
			path = basePath + "." + key
		}
		if requiredFromCascadeTag(f) && !present[path] {
			return fmt.Errorf("missing required key: %s", path)
		}

		fv := structVal.Field(i)
		if fv.Kind() == reflect.Ptr && !fv.IsNil() {
			fv = fv.Elem()
		}
		if fv.Kind() == reflect.Struct {
			if err := validateRequiredFields(fv, path, present); err != nil {
				return err
			}
		}
	}
	return nil
}
