package emitcore

import "go.uber.org/zap"

// EmitProgramOptions controls which parts of the type graph EmitProgram
// visits (§4.9).
type EmitProgramOptions struct {
	// EmitGlobalNamespace, when false (the default), skips the synthetic
	// global namespace itself while still visiting its children.
	EmitGlobalNamespace bool
	// EmitCompilerBuiltinNamespace, when false (the default), skips any
	// namespace marked IsBuiltin.
	EmitCompilerBuiltinNamespace bool
}

// ContextOption configures an EmitterContext at construction time.
type ContextOption func(*EmitterContext)

// WithHost sets the filesystem Host used by WriteOutput. Defaults to
// DiskHost rooted at the current directory.
func WithHost(h Host) ContextOption {
	return func(c *EmitterContext) { c.host = h }
}

// WithTracer attaches a zap.Logger the dispatcher uses for debug-level
// traversal tracing: one "invoke" entry, carrying the run ID and operation
// key, each time an operation runs on a memo miss. The default, and a nil
// logger, is zap.NewNop(), which disables tracing.
func WithTracer(l *zap.Logger) ContextOption {
	return func(c *EmitterContext) { c.tracer = l }
}

// WithParallelOutput enables concurrent WriteOutput across source files via
// an errgroup, bounded by limit goroutines (0 means unbounded).
func WithParallelOutput(limit int) ContextOption {
	return func(c *EmitterContext) {
		c.parallelOutput = true
		c.parallelLimit = limit
	}
}
