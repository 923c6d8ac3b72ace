// Package tags is the stock tag catalog. Importing it makes the catalog
// discoverable; nothing is added to a registry until AutoDiscover runs.
//
//	import _ "github.com/open-cli-collective/bbcode-cli/pkg/bbcode/tags"
package tags

import (
	"fmt"
	"html"
	"strings"

	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
)

// Groups lists the catalog groups in registration order. Order is precedence:
// a definition in an earlier group wins ties at the same offset.
var Groups = []struct {
	Name     string
	Register bbcode.Module
}{
	{"style", registerStyle},
	{"alignment", registerAlignment},
	{"blocks", registerBlocks},
	{"relational", registerRelational},
	{"structures", registerStructures},
	{"emoticons", registerEmoticons},
}

func init() {
	bbcode.RegisterModule("tags", Register)
}

// Register adds the whole catalog to r.
func Register(r *bbcode.Registry) error {
	for _, g := range Groups {
		if err := g.Register(r); err != nil {
			return fmt.Errorf("%s: %w", g.Name, err)
		}
	}
	return nil
}

func registerAll(r *bbcode.Registry, defs []bbcode.TagDefinition) error {
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// attr renders ` name="value"` with value escaped, or "" for an empty value.
func attr(name, value string) string {
	if value == "" {
		return ""
	}
	return " " + name + `="` + html.EscapeString(value) + `"`
}

// classList turns a comma or space separated list into a class attribute value.
func classList(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, ",", " ")), " ")
}

// textOnly returns the raw content of n when every child is literal text or a
// fallback match, and false otherwise.
func textOnly(n *bbcode.Node) (string, bool) {
	var sb strings.Builder
	for _, c := range n.Children {
		if !c.IsText() && !c.Def.Fallback {
			return "", false
		}
		sb.WriteString(c.Raw)
	}
	return sb.String(), true
}
