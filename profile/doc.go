// Package profile provides optional runtime profiling for the freshmark
// application via [github.com/pkg/profile].
//
// Profiling must be enabled at build time with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, every operation is a no-op with zero overhead. With the
// tag, [Config.Start] begins profiling in the configured mode (see [Modes])
// and the returned value's Stop method writes the profile on shutdown.
package profile
