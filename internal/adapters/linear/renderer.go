// Package linear provides a line-oriented renderer for terminals and CI logs.
package linear

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/core/ports"
	"go.trai.ch/rewind/internal/ui/output"
	"go.trai.ch/rewind/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer. Event lines of a scenario are buffered
// and written to stdout as one block when the scenario completes, so that
// concurrent scenarios do not interleave.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu        sync.Mutex
	scenarios map[string]*scenarioState
}

type scenarioState struct {
	buf       bytes.Buffer
	triggers  int
	rollbacks int
	replayed  int
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	profile termenv.Profile
	set     bool
}

// WithProfile fixes the color profile instead of detecting it from the environment.
func WithProfile(profile termenv.Profile) Option {
	return func(o *options) {
		o.profile = profile
		o.set = true
	}
}

// NewRenderer creates a Renderer. Nil writers default to stdout and stderr.
func NewRenderer(stdout, stderr io.Writer, opts ...Option) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	o := options{profile: output.ColorProfileANSI()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Renderer{
		stdout:    stdout,
		stderr:    stderr,
		output:    output.NewWithProfile(stderr, o.profile),
		scenarios: make(map[string]*scenarioState),
	}
}

// OnScenarioStart announces the scenario on stderr.
func (r *Renderer) OnScenarioStart(scenario string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scenarios[scenario] = &scenarioState{}
	_, _ = fmt.Fprintf(r.stderr, "%s Simulating...\n", r.prefix(scenario))
}

// OnTrigger buffers one line per broadcast.
func (r *Renderer) OnTrigger(scenario string, trigger domain.Trigger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.stateLocked(scenario)
	state.triggers++

	line := fmt.Sprintf("%s frame %d %s %s %s %g %s %g",
		r.prefix(scenario), trigger.Frame,
		r.paint(style.Dot, style.Iris),
		trigger.Task, trigger.Attribute,
		trigger.OldValue, style.Arrow, trigger.NewValue)
	if trigger.Replayed {
		line += " " + r.paint("(replayed)", style.Yellow)
	}
	state.buf.WriteString(line + "\n")
}

// OnRollback buffers a line describing the reconciliation.
func (r *Renderer) OnRollback(scenario string, record domain.RollbackRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.stateLocked(scenario)
	state.rollbacks++
	state.replayed += record.Replayed

	outcome := "prediction confirmed"
	if record.Resimmed {
		outcome = fmt.Sprintf("rewound, replayed %d frame(s)", record.Replayed)
	}
	_, _ = fmt.Fprintf(&state.buf, "%s frame %d %s correction for frame %d: %s\n",
		r.prefix(scenario), record.At, r.paint(style.Rewind, style.Yellow), record.Frame, outcome)
}

// OnScenarioComplete writes the buffered lines followed by a summary.
func (r *Renderer) OnScenarioComplete(scenario string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := r.stateLocked(scenario)
	_ = r.flushLocked(scenario)
	delete(r.scenarios, scenario)

	if err != nil {
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed: %v\n",
			r.prefix(scenario), r.paint(style.Cross, style.Red), err)
		return
	}
	_, _ = fmt.Fprintf(r.stderr, "%s %s Completed: %d trigger(s), %d rollback(s), %d frame(s) replayed\n",
		r.prefix(scenario), r.paint(style.Check, style.Green), state.triggers, state.rollbacks, state.replayed)
}

// Flush writes the lines of scenarios that have not completed, in name order.
func (r *Renderer) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range slices.Sorted(maps.Keys(r.scenarios)) {
		if err := r.flushLocked(name); err != nil {
			return err
		}
	}
	return nil
}

// stateLocked must be called with r.mu held.
func (r *Renderer) stateLocked(scenario string) *scenarioState {
	state, ok := r.scenarios[scenario]
	if !ok {
		state = &scenarioState{}
		r.scenarios[scenario] = state
	}
	return state
}

// flushLocked must be called with r.mu held.
func (r *Renderer) flushLocked(scenario string) error {
	state, ok := r.scenarios[scenario]
	if !ok || state.buf.Len() == 0 {
		return nil
	}
	_, err := state.buf.WriteTo(r.stdout)
	return err
}

func (r *Renderer) prefix(scenario string) string {
	return r.output.String("[" + scenario + "]").Faint().String()
}

func (r *Renderer) paint(s string, color lipgloss.Color) string {
	return r.output.String(s).Foreground(r.output.Color(string(color))).String()
}
