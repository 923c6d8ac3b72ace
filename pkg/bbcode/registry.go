// registry.go defines tag definitions and the append-only registry that holds them.
package bbcode

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Shape is the structural category a tag definition belongs to.
type Shape int

const (
	ShapeText               Shape = iota // literal text, never registered
	ShapeReplace                         // inline element wrapping its children
	ShapeBlockReplace                    // block element wrapping its children
	ShapeSelfClosing                     // open match only, no children
	ShapeArgument                        // one positional argument plus children
	ShapeBlockArgument                   // block variant of ShapeArgument
	ShapeMultiArgument                   // declared keyword arguments plus children
	ShapeBlockMultiArgument              // block variant of ShapeMultiArgument
	ShapeCustom                          // bespoke inline renderer
	ShapeBlockCustom                     // bespoke block renderer
)

var shapeNames = map[Shape]string{
	ShapeText:               "text",
	ShapeReplace:            "replace",
	ShapeBlockReplace:       "block-replace",
	ShapeSelfClosing:        "self-closing",
	ShapeArgument:           "argument",
	ShapeBlockArgument:      "block-argument",
	ShapeMultiArgument:      "multi-argument",
	ShapeBlockMultiArgument: "block-multi-argument",
	ShapeCustom:             "custom",
	ShapeBlockCustom:        "block-custom",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// IsBlock reports whether nodes of this shape are block level.
func (s Shape) IsBlock() bool {
	switch s {
	case ShapeBlockReplace, ShapeBlockArgument, ShapeBlockMultiArgument, ShapeBlockCustom:
		return true
	}
	return false
}

// HasClose reports whether the shape expects a closing tag.
func (s Shape) HasClose() bool {
	return s != ShapeText && s != ShapeSelfClosing
}

// ChildPolicy restricts what may appear directly inside a node.
type ChildPolicy struct {
	textOnly bool
	only     []string
}

var (
	// ChildrenAny allows any nested content.
	ChildrenAny = ChildPolicy{}
	// ChildrenText allows literal text and fallback (auto-detected) matches only.
	ChildrenText = ChildPolicy{textOnly: true}
)

// ChildrenOnly allows only tags with the given names, plus whitespace-only text.
func ChildrenOnly(names ...string) ChildPolicy {
	return ChildPolicy{only: names}
}

// allows reports whether child may sit directly inside a node with this policy.
func (p ChildPolicy) allows(child *Node) bool {
	if child.IsText() {
		if len(p.only) > 0 {
			return strings.TrimSpace(child.Raw) == ""
		}
		return true
	}
	if p.textOnly {
		return child.Def.Fallback
	}
	if len(p.only) > 0 {
		for _, name := range p.only {
			if strings.EqualFold(name, child.Def.Name) {
				return true
			}
		}
		return false
	}
	return true
}

// RenderFunc renders a custom node. Returning an *Issue (see Node.Fail) degrades
// the node to literal text; any other error is reported the same way.
type RenderFunc func(rc *RenderContext, n *Node) (string, error)

// TagDefinition is an immutable catalog entry.
type TagDefinition struct {
	Name        string            // tag name, used for same-name nesting
	Description string            // human readable, shown by `bbc tags`
	Element     string            // HTML element for replace shapes (defaults to Name)
	Open        string            // regexp source for the open token
	Close       string            // regexp source for the close token, empty for self-closing
	Shape       Shape             // structural category
	Keywords    map[string]string // declared keyword arguments and their defaults
	Children    ChildPolicy       // what may be nested directly inside
	Fallback    bool              // considered only after every explicit definition
	Verbatim    bool              // inner span is kept as one text child, never scanned
	Render      RenderFunc        // required for custom shapes, optional otherwise

	precedence int
	open       *regexp.Regexp
	close      *regexp.Regexp
}

// Precedence is the registration index, lower wins at the same offset.
func (d *TagDefinition) Precedence() int {
	return d.precedence
}

// Registry is the append-only table of tag definitions.
type Registry struct {
	mu       sync.RWMutex
	defs     []*TagDefinition
	frozen   bool
	discover sync.Once
	discErr  error
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Default is the process registry used by the package-level Parse.
var Default = NewRegistry()

// ErrFrozen is returned when registering into a registry that is already in use.
var ErrFrozen = errors.New("registry is frozen")

// Register compiles and appends a definition. Errors are catalog defects, not
// content problems, and should stop the program at startup.
func (r *Registry) Register(def TagDefinition) error {
	if err := def.compile(); err != nil {
		return fmt.Errorf("register %q: %w", def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("register %q: %w", def.Name, ErrFrozen)
	}

	for _, existing := range r.defs {
		if !strings.EqualFold(existing.Name, def.Name) || existing.Open != def.Open {
			continue
		}
		if existing.Shape != def.Shape {
			return fmt.Errorf("register %q: open pattern already registered as %s, not %s",
				def.Name, existing.Shape, def.Shape)
		}
		// Identical entry, the earlier one would always win anyway.
		return nil
	}

	d := def
	d.precedence = len(r.defs)
	r.defs = append(r.defs, &d)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(def TagDefinition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Candidates returns explicit definitions in registration order followed by
// fallback definitions in registration order.
func (r *Registry) Candidates() []*TagDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*TagDefinition, 0, len(r.defs))
	for _, d := range r.defs {
		if !d.Fallback {
			out = append(out, d)
		}
	}
	for _, d := range r.defs {
		if d.Fallback {
			out = append(out, d)
		}
	}
	return out
}

// Lookup returns every definition with the given name, in registration order.
func (r *Registry) Lookup(name string) []*TagDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*TagDefinition
	for _, d := range r.defs {
		if strings.EqualFold(d.Name, name) {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// compile validates the definition and compiles its patterns.
func (d *TagDefinition) compile() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("definition has no name")
	}
	if d.Shape == ShapeText || shapeNames[d.Shape] == "" {
		return fmt.Errorf("invalid shape %s", d.Shape)
	}
	if d.Open == "" {
		return errors.New("definition has no open pattern")
	}
	if d.Shape.HasClose() && d.Close == "" {
		return fmt.Errorf("%s shape requires a close pattern", d.Shape)
	}
	if !d.Shape.HasClose() && d.Close != "" {
		return errors.New("self-closing shape cannot have a close pattern")
	}
	if d.Verbatim && !d.Shape.HasClose() {
		return errors.New("verbatim requires a closing shape")
	}
	if (d.Shape == ShapeCustom || d.Shape == ShapeBlockCustom) && d.Render == nil {
		return fmt.Errorf("%s shape requires a render function", d.Shape)
	}

	open, err := regexp.Compile(d.Open)
	if err != nil {
		return fmt.Errorf("invalid open pattern: %w", err)
	}
	if open.MatchString("") {
		return errors.New("open pattern matches the empty string")
	}
	d.open = open

	if d.Close != "" {
		closeRe, err := regexp.Compile(d.Close)
		if err != nil {
			return fmt.Errorf("invalid close pattern: %w", err)
		}
		if closeRe.MatchString("") {
			return errors.New("close pattern matches the empty string")
		}
		d.close = closeRe
	}

	if d.Element == "" {
		d.Element = strings.ToLower(d.Name)
	}
	return nil
}

// Module registers a group of definitions into a registry.
type Module func(r *Registry) error

type namedModule struct {
	name string
	fn   Module
}

var (
	modulesMu sync.Mutex
	modules   []namedModule
)

// RegisterModule makes a definition module discoverable. Catalog packages call
// it from init; nothing is registered until AutoDiscover runs.
func RegisterModule(name string, fn Module) {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	for _, m := range modules {
		if m.name == name {
			panic(fmt.Sprintf("bbcode: module %q registered twice", name))
		}
	}
	modules = append(modules, namedModule{name: name, fn: fn})
}

// Modules returns the names of the discoverable modules in registration order.
func Modules() []string {
	modulesMu.Lock()
	defer modulesMu.Unlock()
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.name
	}
	return names
}

// AutoDiscover runs every discoverable module against the registry exactly
// once and freezes it. Later calls return the first call's result.
func (r *Registry) AutoDiscover() error {
	r.discover.Do(func() {
		modulesMu.Lock()
		mods := append([]namedModule(nil), modules...)
		modulesMu.Unlock()

		for _, m := range mods {
			if err := m.fn(r); err != nil {
				r.discErr = fmt.Errorf("module %s: %w", m.name, err)
				return
			}
		}
		r.Freeze()
	})
	return r.discErr
}
