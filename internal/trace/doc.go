// Package trace provides structured tracing for convdup runs.
//
// Tracing shows where a scan spends its time and what it decided per file
// (cache hits, diagnostics, findings) without touching the report itself.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	convdup scan --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only error events
//   - LevelPhase: Driver and phase boundaries (discover, analyze, group)
//   - LevelDetail: Per-file events
//   - LevelDebug: Everything, including per-file pass boundaries (lex, extract)
//
// # Context Propagation
//
// Tracers travel through the pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePhase, "analyze")
//	defer span.End("")
package trace
