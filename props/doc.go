// Package props loads and resolves the property tables that supply values
// for {{key}} placeholders in comment-script programs.
//
// Properties come from YAML or JSON files (parsed with goccy/go-yaml, which
// accepts both) and from key=value pairs given on the command line. Nested
// mappings are flattened to dotted keys, so
//
//	project:
//	  version: 1.2.3
//
// is addressed as {{project.version}}.
//
// A [Table] adapts to the compile pipeline's key-resolver capability via
// [Table.Resolver]: lookups are total, unknown keys resolve to a
// deterministic sentinel and are reported through the caller's warning
// sink.
package props
