// Package app implements the application layer for rewind.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/rewind/internal/adapters/detector"
	"go.trai.ch/rewind/internal/adapters/linear"
	"go.trai.ch/rewind/internal/adapters/telemetry"
	"go.trai.ch/rewind/internal/adapters/tui"
	"go.trai.ch/rewind/internal/adapters/watcher"
	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/core/ports"
	"go.trai.ch/rewind/internal/engine/simulation"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader   ports.ScenarioLoader
	store    ports.TimelineStore
	logger   ports.Logger
	tracer   ports.Tracer
	watchers ports.WatcherFactory

	stdout     io.Writer
	stderr     io.Writer
	debounce   time.Duration
	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ScenarioLoader,
	store ports.TimelineStore,
	log ports.Logger,
	tracer ports.Tracer,
	watchers ports.WatcherFactory,
) *App {
	return &App{
		loader:   loader,
		store:    store,
		logger:   log,
		tracer:   tracer,
		watchers: watchers,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		debounce: watcher.DefaultDebounceWindow,
	}
}

// WithOutput redirects rendered output. Used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithTeaOptions adds bubbletea program options used by the timeline browser.
// This is primarily used for testing to disable input and output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithDebounce sets how long watch mode waits for further changes before rerunning.
func (a *App) WithDebounce(window time.Duration) *App {
	a.debounce = window
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Record stores the timeline of every successful scenario.
	Record bool
	// Watch reruns the scenarios whenever their files change, until ctx is done.
	Watch bool
	// Trace logs a span for every scenario and rollback.
	Trace bool
	// Color selects the color profile of rendered output.
	Color detector.ColorMode
	// HistorySize overrides the number of frames kept for rollbacks when positive.
	HistorySize int
	// Jobs limits how many scenarios run at once. Zero means one per CPU.
	Jobs int
}

// Run simulates the scenarios found at paths.
func (a *App) Run(ctx context.Context, paths []string, opts RunOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to get working directory")
	}

	if opts.Trace {
		shutdown := telemetry.Setup(a.logger)
		defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()
	}

	renderer := linear.NewRenderer(a.stdout, a.stderr,
		linear.WithProfile(detector.ResolveProfile(detector.DetectEnvironment(), opts.Color)))

	err = a.runOnce(ctx, cwd, paths, renderer, opts)
	if !opts.Watch {
		return err
	}
	a.report(err)

	return a.watch(ctx, cwd, paths, renderer, opts)
}

func (a *App) runOnce(
	ctx context.Context,
	cwd string,
	paths []string,
	renderer ports.Renderer,
	opts RunOptions,
) error {
	scenarios, err := a.load(cwd, paths)
	if err != nil {
		return err
	}

	runner := simulation.NewRunner(a.tracer, renderer)
	if opts.HistorySize > 0 {
		runner = runner.WithHistorySize(opts.HistorySize)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var (
		mu       sync.Mutex
		failures []error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, err)
	}

	// Scenarios are independent: a failing one does not cancel the others.
	var g errgroup.Group
	g.SetLimit(jobs)
	for _, scenario := range scenarios {
		g.Go(func() error {
			timeline, err := runner.Run(ctx, scenario)
			if err != nil {
				fail(zerr.With(err, "scenario", scenario.Name))
				return nil
			}
			if !opts.Record {
				return nil
			}
			if err := a.store.Put(cwd, timeline); err != nil {
				err = zerr.With(err, "scenario", scenario.Name)
				a.logger.Error(err)
				fail(err)
				return nil
			}
			a.logger.Info(fmt.Sprintf("recorded timeline for %q", scenario.Name))
			return nil
		})
	}
	_ = g.Wait()

	if err := renderer.Flush(); err != nil {
		err = zerr.Wrap(err, "failed to write output")
		a.logger.Error(err)
		failures = append(failures, err)
	}

	// Every failure has been reported by the renderer or the logger by now.

	if len(failures) > 0 {
		return errors.Join(append([]error{domain.ErrSimulationFailed}, failures...)...)
	}
	return nil
}

// report logs a watch-mode run error unless its failures were already reported.
func (a *App) report(err error) {
	if err != nil && !errors.Is(err, domain.ErrSimulationFailed) {
		a.logger.Error(err)
	}
}

// load discovers and loads every scenario, rejecting duplicate names.
func (a *App) load(cwd string, paths []string) ([]*domain.Scenario, error) {
	files, err := a.loader.Discover(cwd, paths)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to discover scenarios")
	}

	seen := make(map[string]string, len(files))
	scenarios := make([]*domain.Scenario, 0, len(files))
	for _, file := range files {
		scenario, err := a.loader.Load(file)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to load scenario")
		}
		if previous, ok := seen[scenario.Name]; ok {
			err := zerr.With(domain.ErrDuplicateScenarioName, "scenario", scenario.Name)
			err = zerr.With(err, "first", previous)
			return nil, zerr.With(err, "second", file)
		}
		seen[scenario.Name] = file
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

// watch reruns the scenarios after every debounced batch of changes until ctx is done.
func (a *App) watch(
	ctx context.Context,
	cwd string,
	paths []string,
	renderer ports.Renderer,
	opts RunOptions,
) error {
	targets, err := a.watchTargets(cwd, paths)
	if err != nil {
		return err
	}

	w, err := a.watchers()
	if err != nil {
		return err
	}
	if err := w.Start(ctx, targets); err != nil {
		_ = w.Stop()
		return err
	}
	a.logger.Info(fmt.Sprintf("watching %d path(s) for changes", len(targets)))

	rerun := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(changed []string) {
		select {
		case rerun <- changed:
		default:
			// A rerun is already queued and will pick up the latest files.
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for event := range w.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})
	g.Go(func() error {
		defer func() { _ = w.Stop() }()
		for {
			select {
			case <-gctx.Done():
				return nil
			case changed := <-rerun:
				a.logger.Info(fmt.Sprintf("%d file(s) changed, rerunning", len(changed)))
				a.report(a.runOnce(gctx, cwd, paths, renderer, opts))
			}
		}
	})
	return g.Wait()
}

// watchTargets lists the discovered scenario files and any explicit directories,
// so that new scenarios in those directories are noticed.
func (a *App) watchTargets(cwd string, paths []string) ([]string, error) {
	targets, err := a.loader.Discover(cwd, paths)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to discover scenarios")
	}

	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(cwd, p)
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() && !slices.Contains(targets, p) {
			targets = append(targets, filepath.Clean(p))
		}
	}
	return targets, nil
}

// InspectOptions configuration for the Inspect method.
type InspectOptions struct {
	// JSON prints the stored timeline as JSON instead of rendering it.
	JSON bool
	// Interactive opens the timeline in the terminal browser.
	Interactive bool
	Color       detector.ColorMode
}

// Inspect prints the timeline recorded for scenario.
func (a *App) Inspect(ctx context.Context, scenario string, opts InspectOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to get working directory")
	}

	timeline, err := a.store.Get(cwd, scenario)
	if err != nil {
		return err
	}
	if timeline == nil {
		return zerr.With(domain.ErrTimelineNotFound, "scenario", scenario)
	}

	if opts.JSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(timeline)
	}

	if opts.Interactive {
		teaOpts := append([]tea.ProgramOption{
			tea.WithContext(ctx),
			tea.WithOutput(a.stdout),
			tea.WithAltScreen(),
		}, a.teaOptions...)
		if _, err := tea.NewProgram(tui.NewModel(timeline), teaOpts...).Run(); err != nil {
			return zerr.Wrap(err, "timeline browser failed")
		}
		return nil
	}

	renderer := linear.NewRenderer(a.stdout, a.stderr,
		linear.WithProfile(detector.ResolveProfile(detector.DetectEnvironment(), opts.Color)))

	renderer.OnScenarioStart(timeline.Scenario)
	for _, trigger := range timeline.Triggers {
		renderer.OnTrigger(timeline.Scenario, trigger)
	}
	for _, record := range timeline.Rollbacks {
		renderer.OnRollback(timeline.Scenario, record)
	}
	renderer.OnScenarioComplete(timeline.Scenario, nil)

	for _, frame := range timeline.Frames {
		_, _ = fmt.Fprintf(a.stdout, "frame %d:%s\n", frame.Frame, formatTasks(frame.Tasks))
	}
	return renderer.Flush()
}

func formatTasks(tasks map[domain.TaskID]domain.SyncedTaskState) string {
	var sb strings.Builder
	for _, id := range slices.Sorted(maps.Keys(tasks)) {
		state := tasks[id]
		status := "inactive"
		if state.Active {
			status = "active"
		}
		fmt.Fprintf(&sb, " %s=%s", id, status)
		if !state.ExternalTarget.IsZero() {
			sb.WriteString("@" + string(state.ExternalTarget))
		}
	}
	return sb.String()
}
