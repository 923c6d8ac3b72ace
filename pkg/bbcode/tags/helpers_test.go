package tags

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
)

func newEngine(t *testing.T) *bbcode.Engine {
	t.Helper()
	r := bbcode.NewRegistry()
	require.NoError(t, Register(r))
	r.Freeze()
	return bbcode.NewEngine(r)
}

func parse(t *testing.T, input string, pc *bbcode.ParseContext) (string, bbcode.Issues) {
	t.Helper()
	return newEngine(t).Parse(context.Background(), input, bbcode.Options{Context: pc})
}

func parseText(t *testing.T, input string, pc *bbcode.ParseContext) string {
	t.Helper()
	out, _ := newEngine(t).Parse(context.Background(), input, bbcode.Options{Context: pc, AsText: true})
	return out
}

type fakeContent map[string]*bbcode.ContentRecord

func (f fakeContent) Fetch(_ context.Context, id string) (*bbcode.ContentRecord, error) {
	if id == "broken" {
		return nil, errors.New("connection refused")
	}
	return f[id], nil
}

type failingHighlighter struct{}

func (failingHighlighter) Highlight(string, string) (string, error) {
	return "", errors.New("lexer exploded")
}
