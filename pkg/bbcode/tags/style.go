package tags

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
)

func registerStyle(r *bbcode.Registry) error {
	defs := []bbcode.TagDefinition{
		inline("b", "strong", "Bold text"),
		inline("i", "em", "Italic text"),
		inline("u", "u", "Underlined text"),
		inline("s", "del", "Struck-through text"),
	}
	for level := 1; level <= 6; level++ {
		defs = append(defs, heading(level))
	}
	return registerAll(r, defs)
}

func inline(name, element, description string) bbcode.TagDefinition {
	return bbcode.TagDefinition{
		Name:        name,
		Description: description,
		Element:     element,
		Open:        bbcode.NoArgument(name),
		Close:       bbcode.Closing(name),
		Shape:       bbcode.ShapeReplace,
	}
}

// heading renders [hN] with an anchor id. The id is the argument when given,
// otherwise a slug of the heading text.
func heading(level int) bbcode.TagDefinition {
	name := fmt.Sprintf("h%d", level)
	return bbcode.TagDefinition{
		Name:        name,
		Description: fmt.Sprintf("Level %d heading, [%s=anchor] sets the id", level, name),
		Open:        bbcode.SingleArgument(name),
		Close:       bbcode.Closing(name),
		Shape:       bbcode.ShapeBlockArgument,
		Render: func(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
			inner := rc.Inner(n)
			if rc.AsText {
				return inner, nil
			}
			id := slug.Make(rc.Resolve(n.Argument))
			if id == "" {
				id = slug.Make(plainText(rc, n))
			}
			return "<" + name + attr("id", id) + ">" + inner + "</" + name + ">", nil
		},
	}
}

// plainText is the raw text of n's literal children, ignoring nested markup.
func plainText(rc *bbcode.RenderContext, n *bbcode.Node) string {
	var sb strings.Builder
	var walk func(nodes []*bbcode.Node)
	walk = func(nodes []*bbcode.Node) {
		for _, c := range nodes {
			if c.IsText() {
				sb.WriteString(rc.Resolve(c.Raw))
				continue
			}
			walk(c.Children)
		}
	}
	walk(n.Children)
	return sb.String()
}
