package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	orig := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = orig[0], orig[1], orig[2] })

	Version, Commit, Date = "1.2.3", "abc123", "2024-05-01"
	assert.Equal(t, "bbc version 1.2.3 (commit: abc123, built: 2024-05-01)", Info())
}
