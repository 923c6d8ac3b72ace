// builder.go turns scanner matches into a tree of nodes.
package bbcode

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxDepth bounds tag nesting when no WithMaxDepth option is given.
const DefaultMaxDepth = 64

// builder holds the state of one tree construction.
type builder struct {
	registry   *Registry
	candidates []*TagDefinition
	maxDepth   int
	issues     *collector
	sameName   map[string][]*TagDefinition
}

// family returns every closing definition sharing def's name.
func (b *builder) family(def *TagDefinition) []*TagDefinition {
	key := strings.ToLower(def.Name)
	if fam, ok := b.sameName[key]; ok {
		return fam
	}
	if b.sameName == nil {
		b.sameName = make(map[string][]*TagDefinition)
	}
	var fam []*TagDefinition
	for _, d := range b.registry.Lookup(def.Name) {
		if d.Shape.HasClose() {
			fam = append(fam, d)
		}
	}
	b.sameName[key] = fam
	return fam
}

// build parses input, located at offset in the top-level content, into the
// children of parent. depth is the number of tags enclosing input; at the
// ceiling the whole span stays literal text, reported only when it holds a tag.
func (b *builder) build(input string, offset int, parent *Node, depth int) []*Node {
	var children []*Node
	sc := newScanner(input, b.candidates)

	if depth >= b.maxDepth {
		if _, ok := sc.next(0); ok {
			name := ""
			if parent != nil {
				name = parent.Name()
			}
			b.issues.add(name, offset, "maximum nesting depth %d exceeded", b.maxDepth)
		}
		return appendChild(children, newTextNode(input, offset, parent))
	}

	closers := make(map[*TagDefinition]*closeFinder)
	pos := 0
	textFrom := 0 // literal text pending since the last tag node

	flush := func(to int) {
		if to > textFrom {
			children = appendChild(children, newTextNode(input[textFrom:to], offset+textFrom, parent))
		}
	}

	for pos < len(input) {
		if b.issues.aborted {
			return children
		}

		m, ok := sc.next(pos)
		if !ok {
			break
		}

		node := &Node{
			Def:      m.def,
			Offset:   offset + m.start,
			Open:     input[m.start:m.end],
			Captures: m.captures,
			Parent:   parent,
		}
		node.bindArguments()

		if !m.def.Shape.HasClose() {
			node.Raw = node.Open
			flush(m.start)
			children = append(children, node)
			pos = m.end
			textFrom = pos
			continue
		}

		cf, ok := closers[m.def]
		if !ok {
			cf = newCloseFinder(input, m.def, b.family(m.def))
			closers[m.def] = cf
		}
		closeStart, closeEnd, found := cf.find(m.end)
		if !found {
			b.issues.add(m.def.Name, node.Offset, "unterminated tag [%s]", m.def.Name)
			// Keep the first character literally and rescan right after it.
			_, width := utf8.DecodeRuneInString(input[m.start:])
			pos = m.start + width
			continue
		}

		node.Close = input[closeStart:closeEnd]
		node.Raw = input[m.start:closeEnd]
		if m.def.Verbatim {
			node.Children = appendChild(nil, newTextNode(input[m.end:closeStart], offset+m.end, node))
		} else {
			node.Children = b.build(input[m.end:closeStart], offset+m.end, node, depth+1)
		}
		flush(m.start)
		children = append(children, node)
		pos = closeEnd
		textFrom = pos
	}

	flush(len(input))
	return children
}
