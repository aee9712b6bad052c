package tui

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
)

// Run shows the viewer until the user quits or ctx is cancelled.
func Run(ctx context.Context, src Source, opts Options, progOpts ...tea.ProgramOption) error {
	m := New(src, opts)

	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)
	p := tea.NewProgram(m, progOpts...)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
