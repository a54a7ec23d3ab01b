package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/cyclic-lang/cyclic/pkg/interp"
	"github.com/spf13/cobra"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive cyclic session",
		Long: `Start an interactive session with a persistent field registry.

Each line is executed immediately and its result printed. Dot-commands
inspect and control the session; type .help to list them.`,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	in := cmdCtx.NewInterpreter()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cyclic> ",
		HistoryFile:     cmdCtx.Cfg.HistoryFile,
		AutoComplete:    replCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := cmdCtx.Renderer
	r.Println("cyclic interactive session")
	r.Println("Type .help for commands, .quit to exit")
	r.Println("")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmdCtx, in, line); quit {
				break
			}
			continue
		}

		results := in.Execute(line)
		if err := renderResults(r, results); err != nil {
			r.Errorf("Error: %v\n", err)
		}
	}

	return nil
}

// handleDotCommand runs one REPL dot-command and reports whether the
// session should end.
func handleDotCommand(cmdCtx *CommandContext, in *interp.Interpreter, line string) bool {
	r := cmdCtx.Renderer
	command := strings.ToLower(strings.Fields(line)[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(r.Writer())

	case ".state":
		if err := renderState(r, in.Snapshot()); err != nil {
			r.Errorf("Error: %v\n", err)
		}

	case ".fields":
		state := in.Snapshot()
		if len(state.Fields) == 0 {
			r.Println("(no fields)")
			break
		}
		for _, f := range state.Fields {
			r.Printf("%s  %.2f\n", f.Name, f.Energy)
		}

	case ".reset":
		in.Reset()
		r.Println("registry cleared")

	case ".clear":
		r.Printf("\033[H\033[2J")

	default:
		r.Errorf("Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .state          Show the full system state
  .fields         List field names and energies
  .reset          Drop all fields
  .clear          Clear the screen
  .quit / .exit   Exit the session

Tips:
  - One operation per line, e.g. plant = 100
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

func replCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".state"),
		readline.PcItem(".fields"),
		readline.PcItem(".reset"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
