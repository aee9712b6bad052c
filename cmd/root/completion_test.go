package root

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestCompleteParser(t *testing.T) {
	t.Parallel()

	got, directive := completeParser(nil, nil, "")
	assert.Len(t, got, 6)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	got, _ = completeParser(nil, nil, "j")
	assert.Equal(t, []string{"journal-json\tjournalctl -o json output"}, got)

	got, _ = completeParser(nil, nil, "xml")
	assert.Empty(t, got)
}

func TestCompleteTheme(t *testing.T) {
	t.Parallel()

	got, directive := completeTheme(nil, nil, "")
	assert.Equal(t, []string{"system", "light", "dark"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	got, _ = completeTheme(nil, nil, "d")
	assert.Equal(t, []string{"dark"}, got)
}
