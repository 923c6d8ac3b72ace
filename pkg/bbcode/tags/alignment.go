package tags

import "github.com/open-cli-collective/bbcode-cli/pkg/bbcode"

func registerAlignment(r *bbcode.Registry) error {
	var defs []bbcode.TagDefinition
	for _, name := range []string{"center", "left", "right", "justify"} {
		defs = append(defs, aligned(name))
	}
	return registerAll(r, defs)
}

func aligned(name string) bbcode.TagDefinition {
	return bbcode.TagDefinition{
		Name:        name,
		Description: "Paragraph aligned " + name,
		Element:     "p",
		Open:        bbcode.NoArgument(name),
		Close:       bbcode.Closing(name),
		Shape:       bbcode.ShapeBlockReplace,
		Render: func(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
			inner := rc.Inner(n)
			if rc.AsText {
				return inner, nil
			}
			return `<p class="ta-` + name + `">` + inner + `</p>`, nil
		},
	}
}
