package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/docker/logview/pkg/document"
	"github.com/docker/logview/pkg/ingest"
	"github.com/docker/logview/pkg/parser"
	"github.com/docker/logview/pkg/printer"
	"github.com/docker/logview/pkg/tui"
	"github.com/docker/logview/pkg/userconfig"
)

type viewFlags struct {
	parser         parser.Kind
	theme          tui.Theme
	follow         bool
	plain          bool
	fps            int
	maxColumnWidth int
}

func (f *viewFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.VarP(&f.parser, "parser", "p", "Line parser to use (see 'logview parsers')")
	fl.VarP(&f.theme, "theme", "t", "Colour theme: system, light or dark")
	fl.BoolVarP(&f.follow, "follow", "f", false, "Keep reading a regular file as it grows")
	fl.BoolVar(&f.plain, "plain", false, "Print an aligned plain-text table instead of the interactive viewer")
	fl.IntVar(&f.fps, "fps", f.fps, "Viewer refresh rate in frames per second")
	fl.IntVar(&f.maxColumnWidth, "max-column-width", 0, "Truncate columns wider than this (0 means unlimited)")

	_ = cmd.RegisterFlagCompletionFunc("parser", completeParser)
	_ = cmd.RegisterFlagCompletionFunc("theme", completeTheme)
}

// applyConfig fills in every flag the user did not set from the config file.
func (f *viewFlags) applyConfig(cmd *cobra.Command, config *userconfig.Config) error {
	changed := cmd.Flags().Changed

	if config.Parser != "" && !changed("parser") {
		if err := f.parser.Set(config.Parser); err != nil {
			return fmt.Errorf("invalid config file: %w", err)
		}
	}
	if config.Theme != "" && !changed("theme") {
		if err := f.theme.Set(config.Theme); err != nil {
			return fmt.Errorf("invalid config file: %w", err)
		}
	}
	if config.FPS > 0 && !changed("fps") {
		f.fps = config.FPS
	}
	if config.MaxColumnWidth > 0 && !changed("max-column-width") {
		f.maxColumnWidth = config.MaxColumnWidth
	}
	if config.Follow && !changed("follow") {
		f.follow = true
	}
	return nil
}

func (f *viewFlags) validate() error {
	if f.fps <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", f.fps)
	}
	if f.maxColumnWidth < 0 {
		return fmt.Errorf("--max-column-width must not be negative, got %d", f.maxColumnWidth)
	}
	return nil
}

// input is the opened data source.
type input struct {
	reader  io.Reader
	closer  io.Closer
	title   string
	isStdin bool
}

func (f *viewFlags) openInput(ctx context.Context, cmd *cobra.Command, args []string) (*input, error) {
	if len(args) == 0 || args[0] == "-" {
		return &input{reader: cmd.InOrStdin(), title: "stdin", isStdin: true}, nil
	}

	name := args[0]
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open input: %w", err)
	}

	in := &input{reader: file, closer: file, title: filepath.Base(name)}
	if !f.follow {
		return in, nil
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("cannot open input: %w", err)
	}
	if !info.Mode().IsRegular() {
		slog.Warn("Follow mode needs a regular file, reading once", "file", name, "mode", info.Mode().String())
		return in, nil
	}

	rc := ingest.Follow(ctx, file)
	in.reader = rc
	in.closer = rc
	return in, nil
}

func (f *rootFlags) runView(cmd *cobra.Command, args []string) error {
	config, err := f.loadConfig()
	if err != nil {
		return err
	}
	if err := f.view.applyConfig(cmd, config); err != nil {
		return err
	}
	if err := f.view.validate(); err != nil {
		return err
	}

	if len(args) == 0 && f.interactive(cmd) && isTerminal(cmd.InOrStdin()) {
		return errors.New("no input: pass a FILE or pipe data to standard input")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	in, err := f.view.openInput(ctx, cmd, args)
	if err != nil {
		return err
	}
	if in.closer != nil {
		defer in.closer.Close()
	}

	slog.Debug("Starting logview", "input", in.title, "parser", f.view.parser.String(), "follow", f.view.follow)

	pipeline := ingest.New(in.reader, f.view.parser, document.New(), ingest.NewLive())
	pipeline.Start(ctx)

	if !f.interactive(cmd) {
		return f.view.runPlain(ctx, cmd.OutOrStdout(), pipeline)
	}
	return f.view.runInteractive(ctx, cmd, in, pipeline)
}

func (f *viewFlags) runPlain(ctx context.Context, out io.Writer, pipeline *ingest.Pipeline) error {
	opts := []printer.Option{printer.WithMaxColumnWidth(f.maxColumnWidth)}
	if file, ok := out.(*os.File); ok && isTerminal(file) {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil {
			opts = append(opts, printer.WithLineWidth(width))
		}
		opts = append(opts, printer.WithColor(!color.NoColor))
	}
	p := printer.New(out, pipeline.Document(), opts...)
	done := pipeline.Live().Done()

	if !f.follow {
		// Wait for the whole input so every column is aligned.
		select {
		case <-done:
		case <-ctx.Done():
		}
		return p.Flush()
	}

	ticker := time.NewTicker(time.Second / time.Duration(f.fps))
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return p.Flush()
		case <-ctx.Done():
			return p.Flush()
		case <-ticker.C:
			if err := p.Flush(); err != nil {
				return err
			}
		}
	}
}

func (f *viewFlags) runInteractive(ctx context.Context, cmd *cobra.Command, in *input, pipeline *ingest.Pipeline) error {
	progOpts := []tea.ProgramOption{tea.WithOutput(cmd.OutOrStdout())}

	// Keys come from the terminal when the data arrives on stdin.
	if in.isStdin {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("reading keys from the terminal: %w (use --plain)", err)
		}
		defer tty.Close()
		progOpts = append(progOpts, tea.WithInput(tty))
	} else {
		progOpts = append(progOpts, tea.WithInput(cmd.InOrStdin()))
	}

	err := tui.Run(ctx, pipeline, tui.Options{
		Title:          in.title,
		Theme:          f.theme,
		FPS:            f.fps,
		MaxColumnWidth: f.maxColumnWidth,
	}, progOpts...)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.ErrOrStderr(), "logview: viewer failed:", err)
		return RuntimeError{Err: err}
	}
	return nil
}
