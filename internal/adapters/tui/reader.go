package tui

import (
	"context"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kezou/pacer/internal/dispatch"
	"github.com/kezou/pacer/internal/engine"
	"github.com/kezou/pacer/internal/ports"
	"github.com/kezou/pacer/internal/render"
)

// Options assembles everything the reader surface needs.
type Options struct {
	Engine     *engine.Engine
	Dispatcher *dispatch.Dispatcher
	Settings   render.Settings
	Text       string
	Callbacks  Callbacks

	// Input overrides the key event source. Set when stdin was consumed
	// by a piped document, so keys come from the reopened terminal.
	Input io.Reader
}

// Reader implements the ports.ReaderUI interface using Bubbletea.
type Reader struct {
	opts    Options
	program *tea.Program
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.RWMutex
	wg      sync.WaitGroup
}

// NewReader creates a new TUI reader adapter.
func NewReader(opts Options) *Reader {
	return &Reader{opts: opts}
}

// Run starts the reader interface and blocks until the user exits.
// Engine events are forwarded into the Bubbletea loop so the display
// reacts to changes made from outside the UI as well.
func (r *Reader) Run(ctx context.Context) error {
	model := NewModel(r.opts.Engine, r.opts.Dispatcher, r.opts.Settings, r.opts.Text, r.opts.Callbacks)

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if r.opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(r.opts.Input))
	}

	r.mu.Lock()
	r.program = tea.NewProgram(model, progOpts...)
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.mu.Unlock()
	defer r.cancel()

	events := r.opts.Engine.Subscribe(16)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case <-r.ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				r.send(engineMsg{event: event})
			}
		}
	}()

	// Handle context cancellation
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		<-r.ctx.Done()
		r.mu.RLock()
		program := r.program
		r.mu.RUnlock()
		if program != nil {
			program.Quit()
		}
	}()

	if _, err := r.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	// Signal cancellation and wait for goroutines
	r.cancel()
	r.wg.Wait()

	return nil
}

func (r *Reader) send(msg tea.Msg) {
	r.mu.RLock()
	program := r.program
	r.mu.RUnlock()
	if program != nil {
		program.Send(msg)
	}
}

// Stop gracefully stops the reader interface.
func (r *Reader) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
	if r.program != nil {
		r.program.Quit()
	}
}

// Ensure Reader implements ports.ReaderUI.
var _ ports.ReaderUI = (*Reader)(nil)
