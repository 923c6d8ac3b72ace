// render.go renders a node tree to HTML or plain text.
package bbcode

import (
	"context"
	"errors"
	"html"
	"sort"
	"strings"
)

// RenderContext is handed to every renderer during one parse call.
type RenderContext struct {
	Ctx        context.Context
	AsText     bool
	Context    *ParseContext
	Namespaces []string // frozen, sorted

	issues *collector
}

// Escape escapes s for HTML output; text mode passes it through.
func (rc *RenderContext) Escape(s string) string {
	if rc.AsText {
		return s
	}
	return html.EscapeString(s)
}

// Resolve substitutes variable references using the active namespaces.
func (rc *RenderContext) Resolve(s string) string {
	return rc.Context.Resolve(s, rc.Namespaces)
}

// Warn records an issue for n without degrading it.
func (rc *RenderContext) Warn(n *Node, format string, args ...interface{}) {
	rc.issues.add(n.Name(), n.Offset, format, args...)
}

// Inner renders the children of n.
func (rc *RenderContext) Inner(n *Node) string {
	return rc.renderAll(n.Children)
}

// Raw concatenates the raw spans of the children of n.
func (rc *RenderContext) Raw(n *Node) string {
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.Raw)
	}
	return sb.String()
}

func (rc *RenderContext) renderAll(nodes []*Node) string {
	var sb strings.Builder
	for _, c := range nodes {
		if rc.issues.aborted {
			return ""
		}
		sb.WriteString(rc.Render(c))
	}
	return sb.String()
}

// Render renders a single node, degrading it to literal text when its
// children violate the definition's policy or its renderer fails.
func (rc *RenderContext) Render(n *Node) string {
	if rc.issues.aborted {
		return ""
	}
	if n.IsText() {
		return rc.Escape(n.Raw)
	}

	for _, c := range n.Children {
		if !n.Def.Children.allows(c) {
			what := "text"
			if !c.IsText() {
				what = "[" + c.Def.Name + "]"
			}
			return rc.degrade(n, n.Fail("%s is not allowed inside [%s]", what, n.Def.Name))
		}
	}

	if n.Def.Render != nil {
		out, err := n.Def.Render(rc, n)
		if err != nil {
			return rc.degrade(n, err)
		}
		return out
	}

	switch n.Def.Shape {
	case ShapeReplace, ShapeBlockReplace:
		return rc.wrap(n, "", rc.Inner(n))
	case ShapeSelfClosing:
		if rc.AsText {
			return ""
		}
		return "<" + n.Def.Element + " />"
	case ShapeArgument, ShapeBlockArgument:
		attrs := ""
		if n.Argument != "" {
			attrs = ` class="` + html.EscapeString(n.Def.Name+"-"+rc.Resolve(n.Argument)) + `"`
		}
		return rc.wrap(n, attrs, rc.Inner(n))
	case ShapeMultiArgument, ShapeBlockMultiArgument:
		return rc.wrap(n, rc.attributes(n.Arguments), rc.Inner(n))
	}
	return rc.degrade(n, n.Fail("no renderer for %s shape", n.Def.Shape))
}

// wrap puts inner into the definition's element; text mode is transparent.
func (rc *RenderContext) wrap(n *Node, attrs, inner string) string {
	if rc.AsText {
		return inner
	}
	return "<" + n.Def.Element + attrs + ">" + inner + "</" + n.Def.Element + ">"
}

// attributes renders non-empty keyword arguments in key order.
func (rc *RenderContext) attributes(args map[string]string) string {
	keys := make([]string, 0, len(args))
	for k, v := range args {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(rc.Resolve(args[k])))
		sb.WriteString(`"`)
	}
	return sb.String()
}

// degrade records err as an issue and renders n as literal text.
func (rc *RenderContext) degrade(n *Node, err error) string {
	var issue *Issue
	if !errors.As(err, &issue) {
		issue = &Issue{Tag: n.Name(), Offset: n.Offset, Message: err.Error()}
	}
	rc.issues.record(issue)
	if rc.issues.aborted {
		return ""
	}
	if rc.AsText {
		return n.Raw
	}
	return ErrorMarker(issue.Message) + html.EscapeString(n.Raw)
}

// ErrorMarker is the inline element placed before degraded fragments.
func ErrorMarker(message string) string {
	return `<span class="bbcode-error" title="` + html.EscapeString(message) + `"></span>`
}
