// Package log provides a concurrency-safe wrapper over log/slog with a
// process-wide default logger used throughout freshmark.
//
// The default logger writes to stderr so compiled documents on stdout stay
// clean. It is reconfigured with functional options:
//
//	log.Config(log.WithLevel(log.LevelDebug), log.WithFormat(log.FormatText))
//
// Compile-pipeline warnings (unknown placeholder keys) are emitted through
// this logger at Warn level by the CLI's warning sink.
package log
