package root

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/docker/logview/pkg/parser"
	"github.com/docker/logview/pkg/tui"
)

func completeParser(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var candidates []string
	for _, info := range parser.All() {
		if strings.HasPrefix(info.Name, toComplete) {
			candidates = append(candidates, info.Name+"\t"+info.Description)
		}
	}
	return candidates, cobra.ShellCompDirectiveNoFileComp
}

func completeTheme(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var candidates []string
	for _, theme := range tui.Themes {
		if strings.HasPrefix(theme.String(), toComplete) {
			candidates = append(candidates, theme.String())
		}
	}
	return candidates, cobra.ShellCompDirectiveNoFileComp
}
