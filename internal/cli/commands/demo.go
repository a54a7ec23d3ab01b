package commands

import (
	"strings"

	"github.com/cyclic-lang/cyclic/internal/scenario"
	"github.com/spf13/cobra"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [name]",
		Short: "Run a built-in demo scenario",
		Long: `Run one of the built-in demo scenarios, or all of them when no
name is given.`,
		Example: `  # Run all demos
  cyclic demo

  # Run one demo
  cyclic demo ecosystem`,
		ValidArgs: scenario.BuiltinNames(),
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)

			names := scenario.BuiltinNames()
			if len(args) == 1 {
				names = args
			}

			for i, name := range names {
				if i > 0 {
					cmdCtx.Renderer.Println("")
				}
				if err := runDemo(cmdCtx, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func runDemo(cmdCtx *CommandContext, name string) error {
	s, err := scenario.Builtin(name)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	styles := r.Styles()
	in := cmdCtx.NewInterpreter()

	for _, f := range s.Fields {
		freq := f.Frequency
		if freq == 0 {
			freq = 1.0
		}
		in.CreateField(f.Name, f.Energy, freq)
	}

	r.Println(styles.Header1.Render("Demo: " + s.Name))
	r.Println(styles.Muted.Render(s.Description))

	for _, stage := range s.Stages {
		r.Println("")
		r.Println(styles.Header2.Render(stage.Title))
		for _, line := range stage.Lines {
			r.Println(styles.Muted.Render("  " + line))
		}
		results := in.Execute(strings.Join(stage.Lines, "\n"))
		if err := renderResults(r, results); err != nil {
			return err
		}
	}

	r.Println("")
	return renderState(r, in.Snapshot())
}
