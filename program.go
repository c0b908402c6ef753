package emitcore

import (
	"github.com/cadl-tools/emitcore/internal/typegraph"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Program wraps the root of the type graph EmitProgram walks.
type Program struct {
	Root *typegraph.Namespace
}

// NewProgram wraps root as a Program.
func NewProgram(root *typegraph.Namespace) *Program { return &Program{Root: root} }

// EmitterContext bundles everything a dispatch cycle needs that is not
// specific to one invocation: the program being emitted, the output host,
// the context-folding engine, and an optional tracer.
type EmitterContext struct {
	program    *Program
	host       Host
	engine     *ContextEngine
	tracer     *zap.Logger
	tagFactory *TagFactory
	runID      string

	parallelOutput bool
	parallelLimit  int
}

// CreateEmitterContext builds an EmitterContext for program, applying opts.
// Unset options default to DiskHost(".") and a no-op tracer. runID
// identifies this one emit run in tracer output, so log lines from
// concurrent EmitterContexts (e.g. two target languages emitted side by
// side in a test run) don't interleave into one indistinguishable stream.
func CreateEmitterContext(program *Program, opts ...ContextOption) *EmitterContext {
	c := &EmitterContext{
		program:    program,
		host:       NewDiskHost("."),
		engine:     NewContextEngine(),
		tracer:     zap.NewNop(),
		tagFactory: NewTagFactory(),
		runID:      uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = zap.NewNop()
	}
	return c
}

// Program returns the wrapped Program.
func (c *EmitterContext) Program() *Program { return c.program }

// Host returns the configured output Host.
func (c *EmitterContext) Host() Host { return c.host }

// TagFactory returns the TagFactory shared by every AssetEmitter this
// EmitterContext creates.
func (c *EmitterContext) TagFactory() *TagFactory { return c.tagFactory }

// RunID returns this EmitterContext's unique identifier, attached to every
// tracer log line the dispatcher emits for it.
func (c *EmitterContext) RunID() string { return c.runID }

// CreateAssetEmitter builds an AssetEmitter over c and tags, handing it to
// newEmitter so the concrete emitter can capture the AssetEmitter at
// construction (the same bootstrapping a UserEmitterClass needs to call back
// into emitType/emitTypeReference from its own operation methods).
func (c *EmitterContext) CreateAssetEmitter(newEmitter func(*AssetEmitter) UserEmitter, tags ...Tag) *AssetEmitter {
	ae := &AssetEmitter{
		ctx:    c,
		disp:   newDispatcher(),
		scopes: make(map[*SourceFile]*Scope),
		tags:   tags,
	}
	ae.emitter = newEmitter(ae)
	return ae
}
