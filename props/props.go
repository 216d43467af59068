package props

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/freshmark/script"
)

// Table maps property keys to their values. Values are kept as parsed and
// converted to strings on lookup, so numeric and boolean YAML scalars keep
// their natural rendering.
type Table map[string]any

// Make creates an empty table.
func Make() Table { return Table{} }

// Load reads one or more YAML or JSON property files, later files
// overriding earlier ones. Nested mappings are flattened to dotted keys.
func Load(paths ...string) (Table, error) {
	table := Make()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, ErrReadFile.Wrap(err).
				With(slog.String("file", path))
		}

		var raw map[string]any

		err = yaml.Unmarshal(data, &raw)
		if err != nil {
			return nil, ErrParseFile.Wrap(err).
				With(slog.String("file", path))
		}

		table.merge("", raw)
	}

	return table, nil
}

// merge flattens raw into the table under the given key prefix.
func (t Table) merge(prefix string, raw map[string]any) {
	for key, value := range raw {
		if prefix != "" {
			key = prefix + "." + key
		}

		switch v := value.(type) {
		case map[string]any:
			t.merge(key, v)

		default:
			t[key] = value
		}
	}
}

// SetPairs adds key=value pairs to the table, overriding existing keys.
func (t Table) SetPairs(pairs ...string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return ErrBadPair.With(slog.String("pair", pair))
		}

		t[key] = value
	}

	return nil
}

// Value returns the string rendering of the named property.
func (t Table) Value(key string) (string, bool) {
	v, ok := t[key]
	if !ok || v == nil {
		return "", ok
	}

	return fmt.Sprint(v), true
}

// Keys returns all property keys in sorted order.
func (t Table) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}

// Resolver adapts the table to the compile pipeline's key-resolver
// capability. The resolver is total: a key with no value resolves to the
// unknown-key sentinel, and a warning naming the key is sent to warn.
// A nil warn discards warnings.
func (t Table) Resolver(warn func(msg string)) script.Resolver {
	if warn == nil {
		warn = func(string) {}
	}

	return func(_, key string) string {
		if v, ok := t.Value(key); ok {
			return v
		}

		warn(fmt.Sprintf("Unknown key '%s'", key))

		return script.UnknownKey(key)
	}
}
