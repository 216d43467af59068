// Package cli contains the command line interface for freshmark.
//
// # Commands
//
//   - compile: recompile the comment sections of one or more documents in
//     place (the default command). With --check, report stale files
//     without rewriting them, for use in CI.
//   - init: write a starter configuration file.
//   - repl: interactively edit and evaluate a section program against the
//     current property table.
//
// # Properties
//
// Placeholder values come from YAML or JSON files passed with
// --properties, overridden by individual --set key=value pairs:
//
//	freshmark compile --properties project.yml --set version=1.2.3 README.md
//
// # Configuration
//
// Default flag values are read from a YAML config file in the user config
// directory (for example ~/.config/freshmark/config.yml); command-line
// flags override config file values.
//
// # Logging options
//
//   - --log-level: Set minimum log level (debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu,
//     goroutine, heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
