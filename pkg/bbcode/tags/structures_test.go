package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLists(t *testing.T) {
	out, issues := parse(t, "[ul][*]one\n[*]two\n[/ul]", nil)
	assert.Empty(t, issues)
	assert.Equal(t, "<ul><li>one</li><li>two</li></ul>", out)

	out, issues = parse(t, `[ol css="a,b" itemcss=c][*]x[/ol]`, nil)
	assert.Empty(t, issues)
	assert.Equal(t, `<ol class="a b"><li class="c">x</li></ol>`, out)

	assert.Equal(t, "- one\n- two\n", parseText(t, "[ul][*]one\n[*]two\n[/ul]", nil))
}

func TestLists_LeadingText(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		issues int
	}{
		{"text before first item", "[ul]intro[*]a[/ul]", "<ul><li>a</li></ul>", 1},
		{"whitespace before first item", "[ul]\n [*]a[/ul]", "<ul><li>a</li></ul>", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, issues := parse(t, tt.input, nil)
			assert.Equal(t, tt.want, out)
			require.Len(t, issues, tt.issues)
			if tt.issues > 0 {
				assert.Contains(t, issues[0].Message, "before the first [*]")
			}
		})
	}
}

func TestSteps(t *testing.T) {
	out, issues := parse(t, "[steps][step=1]Open[/step][step=2]Close[/step][/steps]", nil)
	assert.Empty(t, issues)
	assert.Equal(t, `<div class="steps">`+
		`<div class="step"><span class="key">1</span><span class="value">Open</span><div class="clear"></div></div>`+
		`<div class="step"><span class="key">2</span><span class="value">Close</span><div class="clear"></div></div>`+
		`</div>`, out)

	assert.Equal(t, "1. Open\n2. Close\n", parseText(t, "[steps][step=1]Open[/step][step=2]Close[/step][/steps]", nil))
}

func TestSteps_Failures(t *testing.T) {
	t.Run("step outside steps", func(t *testing.T) {
		_, issues := parse(t, "[step]lonely[/step]", nil)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "only allowed inside")
	})

	t.Run("text inside steps", func(t *testing.T) {
		_, issues := parse(t, "[steps]text[/steps]", nil)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "text is not allowed inside [steps]")
	})

	t.Run("non numeric step", func(t *testing.T) {
		out, issues := parse(t, "[steps]\n[step=x]a[/step]\n[/steps]", nil)
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "must be a number")
		assert.Contains(t, out, `<span class="key">1</span>`)
	})
}
