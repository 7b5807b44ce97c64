package widget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasklist/internal/lifecycle"
	"github.com/idilsaglam/tasklist/internal/state"
)

// Bridge is the persistence surface the widget mounts against.
type Bridge interface {
	Hydrate(ctx context.Context, c *state.Container) error
	Persist(ctx context.Context, c *state.Container) error
}

// RunOptions configures Run.
type RunOptions struct {
	Logger *log.Logger
	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
	// AltScreen runs full-window.
	AltScreen bool
}

// Run mounts the widget: hydrate, subscribe to exit signals, run the
// program. Teardown unsubscribes and persists whatever state is left.
func Run(ctx context.Context, c *state.Container, b Bridge, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if err := b.Hydrate(ctx, c); err != nil {
		return fmt.Errorf("hydrate: %w", err)
	}
	logger.Debug("mounted", "items", c.Len())

	saveCtx := context.WithoutCancel(ctx)
	m := New(c,
		WithLogger(logger),
		WithPersist(func() error { return b.Persist(saveCtx, c) }),
	)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithoutSignalHandler()}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(m, progOpts...)

	unsubscribe := lifecycle.Subscribe(func(sig os.Signal) {
		p.Send(ExitSignalMsg{Signal: sig})
	})
	_, runErr := p.Run()
	unsubscribe()

	if errors.Is(runErr, tea.ErrProgramKilled) {
		runErr = nil
	}
	if err := b.Persist(saveCtx, c); err != nil {
		logger.Error("save on teardown failed", "err", err)
		return errors.Join(runErr, fmt.Errorf("persist: %w", err))
	}
	logger.Debug("unmounted", "items", c.Len())
	return runErr
}
