package commands

import (
	"encoding/json"
	"strings"

	"github.com/cyclic-lang/cyclic/internal/cli/output"
	"github.com/cyclic-lang/cyclic/pkg/parser"
	"github.com/spf13/cobra"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <script>",
		Short: "Classify script lines without executing them",
		Long: `Show how each line of a script is recognized: the operation kind
and the fields it references. Nothing is executed; this is a dry run for
checking syntax.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			return runParse(cmdCtx, args[0])
		},
	}
}

// parsedLine is one classified line of the script.
type parsedLine struct {
	Line string `json:"line"`
	Kind string `json:"kind"`
}

func runParse(cmdCtx *CommandContext, path string) error {
	source, err := loadScript(path)
	if err != nil {
		return err
	}

	var parsed []parsedLine
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		op := parser.Parse(line)
		parsed = append(parsed, parsedLine{Line: line, Kind: string(op.Kind())})
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(parsed)
	case output.ModeMarkdown:
		r.Println("| Kind | Line |")
		r.Println("| --- | --- |")
		for _, p := range parsed {
			r.Printf("| %s | `%s` |\n", p.Kind, p.Line)
		}
		return nil
	default:
		styles := r.Styles()
		for _, p := range parsed {
			kindStyle := styles.Muted
			if p.Kind == string(parser.KindUnknown) {
				kindStyle = styles.Warning
			}
			r.Printf("%-26s %s\n", kindStyle.Render(p.Kind), p.Line)
		}
		return nil
	}
}
