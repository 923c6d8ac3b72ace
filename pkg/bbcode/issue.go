// issue.go defines the issue collector shared by the builder and the renderers.
package bbcode

import (
	"fmt"
	"strings"
)

// Severity tells whether an issue degraded the output or aborted it.
type Severity uint8

const (
	SeveritySoft  Severity = iota // recovered locally, output continues
	SeverityFatal                 // strict mode, output discarded
)

func (s Severity) String() string {
	switch s {
	case SeveritySoft:
		return "soft"
	case SeverityFatal:
		return "fatal"
	}
	return "unknown"
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Issue is a content problem found while building or rendering.
// It implements error so custom renderers can return it to request degradation.
type Issue struct {
	Severity Severity `json:"severity"`
	Tag      string   `json:"tag,omitempty"` // definition name, empty for engine-level issues
	Offset   int      `json:"offset"`        // byte offset in the top-level input
	Message  string   `json:"message"`
}

func (i *Issue) Error() string {
	if i.Tag == "" {
		return fmt.Sprintf("%s at offset %d", i.Message, i.Offset)
	}
	return fmt.Sprintf("[%s] %s at offset %d", i.Tag, i.Message, i.Offset)
}

// Issues is the ordered list of issues produced by one parse call.
type Issues []*Issue

// HasFatal reports whether any issue aborted the render.
func (is Issues) HasFatal() bool {
	for _, i := range is {
		if i.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// Soft returns the recoverable issues.
func (is Issues) Soft() Issues {
	return is.filter(SeveritySoft)
}

// Fatal returns the issues that aborted the render.
func (is Issues) Fatal() Issues {
	return is.filter(SeverityFatal)
}

func (is Issues) filter(sev Severity) Issues {
	var out Issues
	for _, i := range is {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Error joins every issue into one line per issue.
func (is Issues) Error() string {
	msgs := make([]string, len(is))
	for n, i := range is {
		msgs[n] = i.Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns the list as an error, or nil when it is empty.
func (is Issues) Err() error {
	if len(is) == 0 {
		return nil
	}
	return is
}

// collector accumulates issues for a single parse call.
type collector struct {
	strict  bool
	issues  Issues
	aborted bool
	onAdd   func(*Issue)
}

// add records an issue. In strict mode every issue is fatal and stops the call.
func (c *collector) add(tag string, offset int, format string, args ...interface{}) *Issue {
	issue := &Issue{
		Severity: SeveritySoft,
		Tag:      tag,
		Offset:   offset,
		Message:  fmt.Sprintf(format, args...),
	}
	c.record(issue)
	return issue
}

func (c *collector) record(issue *Issue) {
	if c.strict {
		issue.Severity = SeverityFatal
		c.aborted = true
	}
	c.issues = append(c.issues, issue)
	if c.onAdd != nil {
		c.onAdd(issue)
	}
}
