package root

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/docker/logview/pkg/document"
	"github.com/docker/logview/pkg/parser"
	"github.com/docker/logview/pkg/printer"
)

func newParsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parsers",
		Short: "List the available line parsers",
		Args:  cobra.NoArgs,
		RunE:  runParsersCommand,
	}
}

func runParsersCommand(cmd *cobra.Command, _ []string) error {
	doc := document.New()
	doc.Append(document.PlainRow("NAME", "ALIASES", "DESCRIPTION"))
	for _, info := range parser.All() {
		doc.Append(document.PlainRow(info.Name, strings.Join(info.Aliases, ","), info.Description))
	}

	return printer.New(cmd.OutOrStdout(), doc).Flush()
}
