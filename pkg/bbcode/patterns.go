// patterns.go builds open/close pattern sources and parses keyword attributes.
package bbcode

import (
	"regexp"
	"strings"
	"unicode"
)

// ArgValue matches an argument value. Variable references like [[ns:key]]
// are allowed inside unquoted and quoted values.
const ArgValue = `(?:"(?:\[\[[^\]]*\]\]|[^"\]])*"|'(?:\[\[[^\]]*\]\]|[^'\]])*'|(?:\[\[[^\]]*\]\]|[^\]])+)`

// AttrList matches zero or more whitespace separated key=value pairs.
// Unquoted values may contain [[ns:key]] references.
const AttrList = `(?:\s+[\w-]+=(?:"[^"]*"|'[^']*'|(?:\[\[[^\]]*\]\]|[^\s\]])+))*`

// NoArgument matches [name].
func NoArgument(name string) string {
	return `(?i)\[` + regexp.QuoteMeta(name) + `\]`
}

// SingleArgument matches [name] and [name=value], capturing "argument".
func SingleArgument(name string) string {
	return `(?i)\[` + regexp.QuoteMeta(name) + `(?:=(?P<argument>` + ArgValue + `))?\]`
}

// RequiredArgument matches [name=value] only, capturing the value as group.
func RequiredArgument(name, group string) string {
	return `(?i)\[` + regexp.QuoteMeta(name) + `=(?P<` + group + `>` + ArgValue + `)\]`
}

// OptionalArgument matches [name] and [name=value], capturing the value as group.
func OptionalArgument(name, group string) string {
	return `(?i)\[` + regexp.QuoteMeta(name) + `(?:=(?P<` + group + `>` + ArgValue + `))?\]`
}

// KeywordArguments matches [name] and [name key=value ...], capturing "attrs".
func KeywordArguments(name string) string {
	return `(?i)\[` + regexp.QuoteMeta(name) + `(?P<attrs>` + AttrList + `)\s*\]`
}

// Closing matches [/name].
func Closing(name string) string {
	return `(?i)\[/` + regexp.QuoteMeta(name) + `\]`
}

// Unquote strips one pair of matching surrounding quotes.
func Unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// parseAttributes parses key=value pairs. Values may be single or double
// quoted; \" and \' are unescaped inside quotes. Keys are lowercased.
func parseAttributes(input string) map[string]string {
	params := make(map[string]string)
	pos := 0

	for pos < len(input) {
		for pos < len(input) && unicode.IsSpace(rune(input[pos])) {
			pos++
		}
		if pos >= len(input) {
			break
		}

		keyStart := pos
		for pos < len(input) && isAttrKeyChar(input[pos]) {
			pos++
		}
		if pos == keyStart {
			// Not a key, skip the byte so malformed input cannot stall the loop
			pos++
			continue
		}
		key := strings.ToLower(input[keyStart:pos])

		if pos >= len(input) || input[pos] != '=' {
			params[key] = "true"
			continue
		}
		pos++ // skip '='

		value, next := parseAttrValue(input, pos)
		params[key] = value
		pos = next
	}

	return params
}

// parseAttrValue reads a possibly quoted value starting at pos.
func parseAttrValue(input string, pos int) (string, int) {
	if pos >= len(input) {
		return "", pos
	}

	if input[pos] == '"' || input[pos] == '\'' {
		quote := input[pos]
		pos++
		var value strings.Builder
		for pos < len(input) {
			if input[pos] == quote {
				return value.String(), pos + 1
			}
			if input[pos] == '\\' && pos+1 < len(input) && input[pos+1] == quote {
				value.WriteByte(quote)
				pos += 2
				continue
			}
			value.WriteByte(input[pos])
			pos++
		}
		// Unclosed quote, keep what we have
		return value.String(), pos
	}

	start := pos
	for pos < len(input) && !unicode.IsSpace(rune(input[pos])) && input[pos] != ']' {
		if strings.HasPrefix(input[pos:], "[[") {
			if end := strings.Index(input[pos+2:], "]]"); end >= 0 {
				pos += end + 4
				continue
			}
		}
		pos++
	}
	return input[start:pos], pos
}

func isAttrKeyChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}
