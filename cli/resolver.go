package cli

import (
	"io"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads flag defaults from a
// YAML config file.
//
// The file maps flag names to values, with hyphens in flag names written
// as either hyphens or nested mappings:
//
//	log-level: debug
//	log:
//	  format: json
//	intron: "<!---freshmark"
//
// Nested mappings are flattened with hyphens, so "log: {format: json}"
// resolves the --log-format flag. Command-line flags override config file
// values.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any

	err = yaml.Unmarshal(data, &raw)
	if err != nil {
		// Unparseable config files are ignored rather than fatal so a
		// broken config cannot lock users out of the CLI.
		return config{}, nil
	}

	return config(flatten("", raw)), nil
}

// config resolves kong flags from a flattened key/value map.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	v, ok := c[flag.Name]
	if !ok {
		return nil, nil
	}

	return v, nil
}

// flatten joins nested mapping keys with hyphens to match flag names.
func flatten(prefix string, raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))

	for key, value := range raw {
		if prefix != "" {
			key = prefix + "-" + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flatten(key, nested) {
				out[k] = v
			}

			continue
		}

		out[key] = value
	}

	return out
}
