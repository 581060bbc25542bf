// Package trace is the logging layer of svfmt.
//
// Events are levelled (off, error, phase, detail, debug) and scoped (driver,
// pass, file, node). The CLI opens a driver span, the driver a file span per
// input and a pass span for parse and render; the renderer emits one node
// point per named CST node at debug level.
//
//	svfmt fmt --trace=- --trace-level=detail rtl/
//	svfmt fmt --trace-mode=ring --trace-level=debug top.sv   # dumped only on failure
//
// Spans nest through the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx))
//	defer span.End("")
package trace
