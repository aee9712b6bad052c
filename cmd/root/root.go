package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/docker/logview/pkg/logging"
	"github.com/docker/logview/pkg/parser"
	"github.com/docker/logview/pkg/tui"
	"github.com/docker/logview/pkg/userconfig"
)

type rootFlags struct {
	debugMode   bool
	verbose     bool
	logFilePath string
	configPath  string
	logFile     io.Closer

	view viewFlags
}

func NewRootCmd() *cobra.Command {
	flags := rootFlags{
		view: viewFlags{
			parser: parser.Spaces,
			theme:  tui.ThemeSystem,
			fps:    tui.DefaultFPS,
		},
	}

	cmd := &cobra.Command{
		Use:   "logview [FILE]",
		Short: "logview - view log files as a live table",
		Long: `logview reads a log file, or standard input, line by line, splits every
line into columns and shows the result as a scrollable table that grows
while the input is being read.`,
		Example: `  logview /var/log/syslog
  journalctl -o json -f | logview -p journal
  logview -p csv --plain data.csv`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Logging first so nothing is written over the table.
			if err := flags.setupLogging(cmd); err != nil {
				slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn})))
				slog.Warn("Failed to open debug log file", "error", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if flags.logFile != nil {
				if err := flags.logFile.Close(); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "failed to close log file:", err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.runView(cmd, args)
		},
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveDefault
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&flags.debugMode, "debug", "d", false, "Enable debug logging")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Same as --debug")
	pf.StringVar(&flags.logFilePath, "log-file", "", "Path to debug log file (default: ~/.logview/logview.debug.log; only used with --debug)")
	pf.StringVar(&flags.configPath, "config", "", "Path to the user configuration file (default: ~/.config/logview/config.yaml)")

	flags.view.register(cmd)

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newParsersCmd())
	cmd.AddCommand(newConfigCmd(&flags))

	return cmd
}

func Execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args ...string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return processErr(ctx, err, stderr, rootCmd)
	}
	return nil
}

func processErr(ctx context.Context, err error, stderr io.Writer, rootCmd *cobra.Command) error {
	if ctx.Err() != nil {
		return ctx.Err()
	} else if _, ok := errors.AsType[RuntimeError](err); ok {
		// Already reported by the command.
	} else {
		fmt.Fprintln(stderr, "logview:", err)
		if strings.HasPrefix(err.Error(), "unknown command ") ||
			strings.HasPrefix(err.Error(), "accepts ") ||
			strings.HasPrefix(err.Error(), "unknown flag") {
			fmt.Fprintln(stderr)
			_ = rootCmd.Usage()
		}
	}

	return err
}

// setupLogging configures slog. With --debug logs go to a rotating file,
// otherwise warnings go to stderr unless the interactive viewer owns the
// terminal.
func (f *rootFlags) setupLogging(cmd *cobra.Command) error {
	opts := logging.Options{
		Debug: f.debugMode || f.verbose,
		File:  f.logFilePath,
	}
	if !f.interactive(cmd) {
		opts.Stderr = cmd.ErrOrStderr()
	}

	logger, closer, err := logging.New(opts)
	if err != nil {
		return err
	}
	f.logFile = closer
	slog.SetDefault(logger)

	return nil
}

// interactive reports whether cmd will start the full-screen viewer.
func (f *rootFlags) interactive(cmd *cobra.Command) bool {
	return !cmd.HasParent() && !f.view.plain && isTerminal(cmd.OutOrStdout())
}

func (f *rootFlags) loadConfig() (*userconfig.Config, error) {
	if f.configPath != "" {
		return userconfig.LoadFile(f.configPath)
	}
	return userconfig.Load()
}

func (f *rootFlags) configFile() string {
	if f.configPath != "" {
		return f.configPath
	}
	return userconfig.Path()
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// RuntimeError wraps errors that were already reported to the user.
type RuntimeError struct {
	Err error
}

func (e RuntimeError) Error() string {
	return e.Err.Error()
}

func (e RuntimeError) Unwrap() error {
	return e.Err
}
