// variables.go resolves [[namespace:key]] references against a ParseContext.
package bbcode

import (
	"context"
	"regexp"
	"sort"
)

// ContentRecord is what a content lookup returns for a quoted item.
type ContentRecord struct {
	AuthorName      string
	AuthorURL       string
	AuthorAvatar    string
	AuthorRank      int
	AuthorSpecialty string
	PageURL         string
	PageTitle       string
}

// ContentLookup fetches a content record by id. A nil record with a nil
// error means the id is unknown.
type ContentLookup interface {
	Fetch(ctx context.Context, id string) (*ContentRecord, error)
}

// Highlighter marks up source code. Implementations return an error when
// they cannot highlight; callers fall back to preformatted text.
type Highlighter interface {
	Highlight(code, language string) (string, error)
}

// ParseContext carries bindings and collaborators for one parse call. It is
// read, never written, by nodes.
type ParseContext struct {
	Bindings    map[string]map[string]string // namespace -> key -> value
	Content     ContentLookup
	Highlighter Highlighter
	MediaURL    string // prefix for relative asset paths
	Copyright   string // holder shown on code blocks
}

// variablePattern matches [[key]] and [[namespace:key]].
var variablePattern = regexp.MustCompile(`\[\[(?:([\w.-]+):)?([\w.-]+)\]\]`)

// Resolve substitutes variable references bound in the active namespaces.
// Unqualified references use the first active namespace, in sorted order,
// that binds the key. Unresolved references are returned unchanged and
// substituted values are never rescanned.
func (pc *ParseContext) Resolve(ref string, namespaces []string) string {
	if pc == nil || len(pc.Bindings) == 0 || len(namespaces) == 0 {
		return ref
	}

	active := make(map[string]bool, len(namespaces))
	for _, ns := range namespaces {
		active[ns] = true
	}
	ordered := append([]string(nil), namespaces...)
	sort.Strings(ordered)

	return variablePattern.ReplaceAllStringFunc(ref, func(match string) string {
		groups := variablePattern.FindStringSubmatch(match)
		ns, key := groups[1], groups[2]

		if ns != "" {
			if !active[ns] {
				return match
			}
			if v, ok := pc.Bindings[ns][key]; ok {
				return v
			}
			return match
		}

		for _, candidate := range ordered {
			if v, ok := pc.Bindings[candidate][key]; ok {
				return v
			}
		}
		return match
	})
}

// freezeNamespaces returns a sorted, de-duplicated copy.
func freezeNamespaces(namespaces []string) []string {
	seen := make(map[string]bool, len(namespaces))
	out := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		if ns == "" || seen[ns] {
			continue
		}
		seen[ns] = true
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}
