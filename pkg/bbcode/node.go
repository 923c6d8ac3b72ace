// node.go defines the parse tree produced by the builder.
package bbcode

import (
	"fmt"
	"strings"
)

// Node is one element of the parse tree. Text nodes have a nil Def.
//
// Raw always equals Open + the concatenated Raw of Children + Close, except
// for degraded nodes whose inner span was kept as a single text child.
type Node struct {
	Def       *TagDefinition
	Raw       string            // exact span of the input this node was built from
	Offset    int               // byte offset of Raw in the top-level input
	Open      string            // open match text
	Close     string            // close match text, empty for self-closing and text
	Captures  map[string]string // named groups of the open match
	Argument  string            // positional argument, unquoted
	Arguments map[string]string // keyword arguments with defaults applied
	Children  []*Node
	Parent    *Node
}

// IsText reports whether the node is literal text.
func (n *Node) IsText() bool {
	return n.Def == nil
}

// Name returns the definition name, or "" for text.
func (n *Node) Name() string {
	if n.Def == nil {
		return ""
	}
	return n.Def.Name
}

// Shape returns the node shape.
func (n *Node) Shape() Shape {
	if n.Def == nil {
		return ShapeText
	}
	return n.Def.Shape
}

// Inner returns the raw span between the open and close tokens.
func (n *Node) Inner() string {
	return n.Raw[len(n.Open) : len(n.Raw)-len(n.Close)]
}

// Capture returns a named group of the open match.
func (n *Node) Capture(name string) string {
	return n.Captures[name]
}

// Fail builds an issue for this node. Returning it from a RenderFunc
// degrades the node to literal text.
func (n *Node) Fail(format string, args ...interface{}) error {
	return &Issue{
		Tag:     n.Name(),
		Offset:  n.Offset,
		Message: fmt.Sprintf(format, args...),
	}
}

// String returns a compact debug representation of the tree.
func (n *Node) String() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, level int) {
	sb.WriteString(strings.Repeat("  ", level))
	if n.IsText() {
		fmt.Fprintf(sb, "text %q\n", n.Raw)
		return
	}
	fmt.Fprintf(sb, "%s(%s) %q\n", n.Def.Name, n.Def.Shape, n.Open)
	for _, c := range n.Children {
		c.dump(sb, level+1)
	}
}

// newTextNode creates a literal node.
func newTextNode(raw string, offset int, parent *Node) *Node {
	return &Node{Raw: raw, Offset: offset, Parent: parent}
}

// appendChild adds child, merging adjacent text runs.
func appendChild(children []*Node, child *Node) []*Node {
	if child.IsText() {
		if child.Raw == "" {
			return children
		}
		if len(children) > 0 && children[len(children)-1].IsText() {
			last := children[len(children)-1]
			last.Raw += child.Raw
			return children
		}
	}
	return append(children, child)
}

// bindArguments fills Argument and Arguments from the open match.
func (n *Node) bindArguments() {
	if arg, ok := n.Captures["argument"]; ok {
		n.Argument = strings.TrimSpace(Unquote(arg))
	}
	if len(n.Def.Keywords) == 0 {
		return
	}
	// Undeclared keywords are dropped.
	parsed := parseAttributes(n.Captures["attrs"])
	n.Arguments = make(map[string]string, len(n.Def.Keywords))
	for key, def := range n.Def.Keywords {
		n.Arguments[key] = def
		if v, ok := parsed[key]; ok {
			n.Arguments[key] = v
		}
	}
}
