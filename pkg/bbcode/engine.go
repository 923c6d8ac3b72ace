// Package bbcode renders bracket-tag markup to HTML or plain text.
//
// Tag definitions live in a Registry. The Engine scans input for the
// earliest open match (registration order breaks ties, fallback
// definitions go last), balances same-name nesting to find each close,
// builds a node tree recursively and renders it. Malformed markup never
// fails the call: it degrades to literal text and is reported as an Issue.
package bbcode

import (
	"context"

	"go.uber.org/zap"
)

// Options control a single parse call.
type Options struct {
	Namespaces   []string      // variable namespaces visible to the call
	Strict       bool          // any issue aborts and empties the output
	AutoDiscover bool          // run registry modules before parsing
	AsText       bool          // render plain text instead of HTML
	Context      *ParseContext // bindings and collaborators, may be nil
}

// Engine parses content against a registry. It is safe for concurrent use
// once the registry is no longer being written.
type Engine struct {
	registry *Registry
	maxDepth int
	log      *zap.SugaredLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for issue tracing.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithMaxDepth sets the nesting ceiling. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// NewEngine creates an engine over reg.
func NewEngine(reg *Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		maxDepth: DefaultMaxDepth,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse renders content. In strict mode the first issue aborts the call and
// the output is empty; otherwise the full output is returned together with
// every soft issue encountered. A failing AutoDiscover panics, since it
// means the catalog itself is broken.
func (e *Engine) Parse(ctx context.Context, content string, opts Options) (string, Issues) {
	if ctx == nil {
		ctx = context.Background()
	}

	issues := &collector{strict: opts.Strict}
	issues.onAdd = func(i *Issue) {
		e.log.Debugw("bbcode issue",
			"tag", i.Tag,
			"offset", i.Offset,
			"severity", i.Severity.String(),
			"message", i.Message,
		)
	}

	if opts.AutoDiscover {
		if err := e.registry.AutoDiscover(); err != nil {
			// Catalog defects are programmer errors, surface them loudly.
			panic(err)
		}
	}

	pc := opts.Context
	if pc == nil {
		pc = &ParseContext{}
	}

	b := &builder{
		registry:   e.registry,
		candidates: e.registry.Candidates(),
		maxDepth:   e.maxDepth,
		issues:     issues,
	}
	tree := b.build(content, 0, nil, 0)
	if issues.aborted {
		return "", issues.issues
	}

	rc := &RenderContext{
		Ctx:        ctx,
		AsText:     opts.AsText,
		Context:    pc,
		Namespaces: freezeNamespaces(opts.Namespaces),
		issues:     issues,
	}
	out := rc.renderAll(tree)
	if issues.aborted {
		return "", issues.issues
	}
	return out, issues.issues
}

// Validate parses content in strict mode and returns only the issues.
func (e *Engine) Validate(ctx context.Context, content string, opts Options) Issues {
	opts.Strict = true
	_, issues := e.Parse(ctx, content, opts)
	return issues
}

var defaultEngine = NewEngine(Default)

// Parse renders content with the Default registry.
func Parse(ctx context.Context, content string, opts Options) (string, Issues) {
	return defaultEngine.Parse(ctx, content, opts)
}

// Validate checks content with the Default registry, discovering modules first.
func Validate(ctx context.Context, content string) Issues {
	return defaultEngine.Validate(ctx, content, Options{AutoDiscover: true})
}

// Tree builds the node tree without rendering it. It is meant for tooling
// and tests; issues from the build step are returned alongside.
func (e *Engine) Tree(content string) ([]*Node, Issues) {
	issues := &collector{}
	b := &builder{
		registry:   e.registry,
		candidates: e.registry.Candidates(),
		maxDepth:   e.maxDepth,
		issues:     issues,
	}
	return b.build(content, 0, nil, 0), issues.issues
}
