// Package cascade loads layered configuration into Go structs from multiple sources with predictable precedence.
//
// A Loader builds a prioritized cascade of sources and writes into a destination struct. Register sources from lowest to highest priority using the With* methods, then call StrictlyLoad.
// The zero value of Loader is ready to use; New exists for fluent chaining (ex: New().WithDefaults(...).WithYAMLFile(...).WithNearestJSONFile(...).WithEnv(...).StrictlyLoad(&cfg)).
//
// Sources
//   - Defaults from a map[string]any whose keys may use dot-notation to denote nesting.
//   - JSON and YAML files read at load time. WithNearestJSONFile searches upward from a starting path for the first readable, non-empty file with a given relative name; it panics
//     if fileName is absolute.
//   - Environment variables mapped to configuration keys via WithEnv; missing or empty variables are ignored and present values are strings.
//
// Keys are case-insensitive and dot-separated for nesting. Struct fields are matched by cascade tag name, then json tag name, then field name. Unknown keys are ignored. Values are
// coerced when reasonable (strings to numbers/bools, numbers to strings, floats to ints truncated toward zero, and slices of scalars).
//
// Fields tagged cascade:",required" must be set by some source. StrictlyLoad fails fast when a readable source cannot be parsed or a value cannot be coerced. Missing sources,
// empty files, and unknown keys are not errors.
//
// ExpandPath expands a leading "~". InUserConfigDirectory returns a path under the XDG config home.
package cascade
