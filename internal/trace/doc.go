// Package trace is the structured event log of cclex.
//
// Tracing is enabled from the command line:
//
//	cclex tokenize --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only error points (failed loads, cache write errors)
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file spans
//   - LevelDebug: everything
//
// # Scopes
//
//   - ScopeDriver: one CLI command
//   - ScopePass: load, lex, cache, output stages
//   - ScopeFile: a single source file
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.StartSpan(ctx, trace.ScopePass, "lex")
//	defer span.End("")
package trace
