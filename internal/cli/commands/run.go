package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cyclic-lang/cyclic/internal/scenario"
	"github.com/cyclic-lang/cyclic/pkg/interp"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Scenario string
	NoState  bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [script...]",
		Short: "Execute cyclic scripts or a scenario",
		Long: `Execute one or more cyclic scripts, one operation per line.

Lines starting with # are comments and are skipped. Each script runs in
its own interpreter with its own field registry; multiple scripts run
concurrently. Use --scenario to run a named scenario instead of script
files (built-in demos or YAML files in the scenarios directory).`,
		Example: `  # Run a script
  cyclic run growth.cyc

  # Run several scripts, each in an isolated interpreter
  cyclic run a.cyc b.cyc c.cyc

  # Run a built-in or project scenario
  cyclic run --scenario ecosystem

  # Machine-readable output
  cyclic run growth.cyc -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "Run a named scenario instead of script files")
	cmd.Flags().BoolVar(&opts.NoState, "no-state", false, "Skip the final system state report")

	return cmd
}

func runRun(cmd *cobra.Command, args []string, opts *RunOptions) error {
	cmdCtx := NewCommandContext(cmd)

	if opts.Scenario != "" {
		if len(args) > 0 {
			return fmt.Errorf("cannot combine --scenario with script files")
		}
		return runScenario(cmdCtx, opts)
	}
	if len(args) == 0 {
		return fmt.Errorf("no scripts given (or use --scenario)")
	}
	if len(args) == 1 {
		return runScript(cmdCtx, args[0], opts)
	}
	return runScriptsConcurrently(cmdCtx, args, opts)
}

// scriptRun is the outcome of executing one script.
type scriptRun struct {
	id      string
	path    string
	results []interp.Result
	state   interp.SystemState
	elapsed time.Duration
}

func executeScript(cmdCtx *CommandContext, path string) (*scriptRun, error) {
	source, err := loadScript(path)
	if err != nil {
		return nil, err
	}

	run := &scriptRun{
		id:   uuid.NewString(),
		path: path,
	}

	in := cmdCtx.NewInterpreter()
	start := time.Now()
	run.results = in.Execute(source)
	run.elapsed = time.Since(start)
	run.state = in.Snapshot()

	cmdCtx.Logger.Info("script executed",
		"run_id", run.id,
		"script", path,
		"results", len(run.results),
		"elapsed", run.elapsed,
	)
	return run, nil
}

func runScript(cmdCtx *CommandContext, path string, opts *RunOptions) error {
	run, err := executeScript(cmdCtx, path)
	if err != nil {
		return err
	}
	return reportRun(cmdCtx, run, opts)
}

// runScriptsConcurrently executes every script in its own goroutine and
// interpreter. Reports are rendered in argument order once all runs
// finish, so concurrent execution never interleaves output.
func runScriptsConcurrently(cmdCtx *CommandContext, paths []string, opts *RunOptions) error {
	runs := make([]*scriptRun, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			run, err := executeScript(cmdCtx, path)
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, run := range runs {
		if err := reportRun(cmdCtx, run, opts); err != nil {
			return err
		}
	}
	return nil
}

func runScenario(cmdCtx *CommandContext, opts *RunOptions) error {
	s, err := resolveScenario(cmdCtx, opts.Scenario)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	in := cmdCtx.NewInterpreter()
	for _, f := range s.Fields {
		freq := f.Frequency
		if freq == 0 {
			freq = 1.0
		}
		in.CreateField(f.Name, f.Energy, freq)
	}

	styles := r.Styles()
	r.Println(styles.Header1.Render("Scenario: " + s.Name))
	if s.Description != "" {
		r.Println(styles.Muted.Render(s.Description))
	}

	for _, stage := range s.Stages {
		r.Println("")
		r.Println(styles.Header2.Render(stage.Title))
		results := in.Execute(strings.Join(stage.Lines, "\n"))
		if err := renderResults(r, results); err != nil {
			return err
		}
	}

	if opts.NoState {
		return nil
	}
	r.Println("")
	return renderState(r, in.Snapshot())
}

// resolveScenario finds a scenario by name: a YAML file in the configured
// scenarios directory wins over a built-in demo of the same name.
func resolveScenario(cmdCtx *CommandContext, name string) (*scenario.Scenario, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(cmdCtx.Cfg.ScenariosDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return scenario.LoadFile(path)
		}
	}
	return scenario.Builtin(name)
}

func reportRun(cmdCtx *CommandContext, run *scriptRun, opts *RunOptions) error {
	r := cmdCtx.Renderer
	styles := r.Styles()

	r.Println(styles.Header1.Render(fmt.Sprintf("Run %s (%s)", run.id, run.path)))
	if err := renderResults(r, run.results); err != nil {
		return err
	}
	if !opts.NoState {
		r.Println("")
		if err := renderState(r, run.state); err != nil {
			return err
		}
	}
	if cmdCtx.Cfg.Verbose {
		r.Printf("Completed in %s\n", run.elapsed.Round(time.Millisecond))
	}
	return nil
}

// loadScript reads a script file and strips comment lines. Blank lines are
// kept; the interpreter skips them.
func loadScript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read script %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), nil
}
