package tags

import (
	"strconv"
	"strings"

	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
)

// listItem separates entries in [ol] and [ul].
const listItem = "[*]"

func registerStructures(r *bbcode.Registry) error {
	return registerAll(r, []bbcode.TagDefinition{
		list("ol", "Ordered list, items start with [*]"),
		list("ul", "Unordered list, items start with [*]"),
		{
			Name:        "steps",
			Description: "Numbered steps, only [step] children",
			Open:        bbcode.NoArgument("steps"),
			Close:       bbcode.Closing("steps"),
			Shape:       bbcode.ShapeBlockCustom,
			Children:    bbcode.ChildrenOnly("step"),
			Render: func(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
				inner := rc.Inner(n)
				if rc.AsText {
					return inner, nil
				}
				return `<div class="steps">` + inner + `</div>`, nil
			},
		},
		{
			Name:        "step",
			Description: "One step inside [steps], [step=N]",
			Open:        bbcode.SingleArgument("step"),
			Close:       bbcode.Closing("step"),
			Shape:       bbcode.ShapeBlockCustom,
			Render:      renderStep,
		},
	})
}

func list(name, description string) bbcode.TagDefinition {
	return bbcode.TagDefinition{
		Name:        name,
		Description: description,
		Open:        bbcode.KeywordArguments(name),
		Close:       bbcode.Closing(name),
		Shape:       bbcode.ShapeBlockMultiArgument,
		Keywords:    map[string]string{"css": "", "itemcss": ""},
		Render: func(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
			parts := strings.Split(rc.Inner(n), listItem)
			if strings.TrimSpace(parts[0]) != "" {
				rc.Warn(n, "content before the first [*] in [%s] is dropped", name)
			}
			items := parts[1:]

			var sb strings.Builder
			if rc.AsText {
				for _, item := range items {
					sb.WriteString("- ")
					sb.WriteString(item)
				}
				return sb.String(), nil
			}

			itemClass := attr("class", classList(rc.Resolve(n.Arguments["itemcss"])))
			sb.WriteString("<" + name + attr("class", classList(rc.Resolve(n.Arguments["css"]))) + ">")
			for _, item := range items {
				sb.WriteString("<li" + itemClass + ">" + strings.TrimSpace(item) + "</li>")
			}
			sb.WriteString("</" + name + ">")
			return sb.String(), nil
		},
	}
}

func renderStep(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
	if n.Parent == nil || !strings.EqualFold(n.Parent.Name(), "steps") {
		return "", n.Fail("steps are only allowed inside a [steps] list")
	}

	num := 1
	if arg := rc.Resolve(n.Argument); arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 0 {
			rc.Warn(n, "step argument must be a number, got %q", arg)
		} else {
			num = v
		}
	}

	inner := rc.Inner(n)
	if rc.AsText {
		return strconv.Itoa(num) + ". " + strings.TrimSpace(inner) + "\n", nil
	}
	return `<div class="step"><span class="key">` + strconv.Itoa(num) + `</span>` +
		`<span class="value">` + inner + `</span><div class="clear"></div></div>`, nil
}
