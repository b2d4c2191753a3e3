// Package trace records where the analyzer spends its time.
//
// Tracing is off by default. The CLI enables it with --trace-level and
// --trace (output path, "-" for stderr):
//
//	minic check --trace=- --trace-level=detail src/
//
// Events are grouped by scope: the driver run, the lex/parse passes of one
// file, the file itself and, at debug level, individual declarations. The
// tracer travels through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, "parse")
//	defer span.End("")
//
// Spans opened with BeginCtx nest under the span already in the context.
// StreamTracer writes each event as it happens. RingTracer keeps the most
// recent ones in memory; the CLI dumps it to stderr on exit.
package trace
