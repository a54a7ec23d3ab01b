package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cyclic-lang/cyclic/internal/cli/output"
	"github.com/cyclic-lang/cyclic/pkg/interp"
	"github.com/jedib0t/go-pretty/v6/table"
)

// renderResults writes the execution log in the renderer's mode.
func renderResults(r *output.Renderer, results []interp.Result) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return renderResultsJSON(r, results)
	case output.ModeMarkdown:
		renderResultsMarkdown(r, results)
		return nil
	default:
		renderResultsText(r, results)
		return nil
	}
}

func renderResultsJSON(r *output.Renderer, results []interp.Result) error {
	entries := make([]map[string]any, len(results))
	for i, res := range results {
		raw, err := json.Marshal(res)
		if err != nil {
			return err
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return err
		}
		m["key"] = res.Key
		entries[i] = m
	}
	enc := json.NewEncoder(r.Writer())
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func renderResultsText(r *output.Renderer, results []interp.Result) {
	styles := r.Styles()
	if len(results) == 0 {
		r.Println(styles.Muted.Render("(no results)"))
		return
	}
	for _, res := range results {
		keyStyle := styles.Muted
		if isErrorKind(res.Kind) {
			keyStyle = styles.Error
		}
		r.Printf("%s  %s\n", keyStyle.Render(res.Key), summarizeResult(res))
	}
}

func renderResultsMarkdown(r *output.Renderer, results []interp.Result) {
	if len(results) == 0 {
		r.Println("(no results)")
		return
	}
	r.Println("| Key | Type | Summary |")
	r.Println("| --- | --- | --- |")
	for _, res := range results {
		r.Printf("| %s | %s | %s |\n", res.Key, res.Kind, summarizeResult(res))
	}
}

func isErrorKind(kind interp.ResultKind) bool {
	return kind == interp.ResultExecutionError || kind == interp.ResultConservationViolation
}

// summarizeResult produces the one-line human summary for a result entry.
func summarizeResult(res interp.Result) string {
	switch p := res.Payload.(type) {
	case interp.CreationResult:
		return fmt.Sprintf("created %s with %.2f energy", p.Field, p.Energy)
	case interp.InteractionResult:
		names := make([]string, 0, len(p.Fields))
		for name := range p.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Sprintf("exchanged energy between %s (conserved)", strings.Join(names, " and "))
	case interp.RegenerativeResult:
		return fmt.Sprintf("%s regenerated, capacity %.4f (+%.4f)", p.Field, p.NewCapacity, p.CapacityGrowth)
	case interp.DecayResult:
		return fmt.Sprintf("%s lost %.2f energy, entropy +%.3f", p.Field, p.EnergyLost, p.EntropyIncrease)
	case interp.SymbioticResult:
		return fmt.Sprintf("mutual benefit between %s", strings.Join(p.Fields, " and "))
	case interp.EntanglementResult:
		return fmt.Sprintf("entangled %s, coherence %.3f", strings.Join(p.Fields, " and "), p.Coherence)
	case interp.ResonanceResult:
		locked := ""
		if p.PhaseLocked {
			locked = ", phase locked"
		}
		return fmt.Sprintf("resonance between %s, amplification %.4f%s",
			strings.Join(p.Fields, " and "), p.Amplification, locked)
	case interp.PhaseResult:
		if p.OldPhase == p.NewPhase {
			return fmt.Sprintf("%s stayed %s (insufficient energy)", p.Field, p.NewPhase)
		}
		return fmt.Sprintf("%s shifted %s -> %s, cost %.1f", p.Field, p.OldPhase, p.NewPhase, p.EnergyCost)
	case interp.FractalResult:
		return fmt.Sprintf("%s spawned %d children at depth %d", p.Parent, p.SpawnsCreated, p.Depth)
	case interp.SpatialResult:
		return fmt.Sprintf("gradient flow between %s", strings.Join(p.Fields, " and "))
	case interp.NetworkResult:
		return fmt.Sprintf("network of %d fields, %d interactions", p.NetworkSize, len(p.Interactions))
	case interp.UnknownResult:
		return fmt.Sprintf("unrecognized: %s", p.Expression)
	case interp.ErrorResult:
		return p.Error
	default:
		return string(res.Kind)
	}
}

// renderState writes the system snapshot in the renderer's mode.
func renderState(r *output.Renderer, state interp.SystemState) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	case output.ModeMarkdown:
		renderStateMarkdown(r, state)
		return nil
	default:
		renderStateText(r, state)
		return nil
	}
}

func renderStateText(r *output.Renderer, state interp.SystemState) {
	styles := r.Styles()

	r.Println(styles.Header2.Render("System State"))
	if len(state.Fields) == 0 {
		r.Println(styles.Muted.Render("(no fields)"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Field", "Energy", "Entropy", "Coherence", "Capacity", "Phase", "Freq", "Age"})
	for _, f := range state.Fields {
		t.AppendRow(table.Row{
			f.Name,
			fmt.Sprintf("%.2f", f.Energy),
			fmt.Sprintf("%.3f", f.Entropy),
			fmt.Sprintf("%.3f", f.Coherence),
			fmt.Sprintf("%.3f", f.Capacity),
			f.Phase.String(),
			fmt.Sprintf("%.2f", f.Frequency),
			f.Age,
		})
	}
	t.Render()

	r.Printf("Total energy: %.2f   Total entropy: %.3f   Budget remaining: %.2f\n",
		state.TotalEnergy, state.TotalEntropy, state.BudgetRemaining)
}

func renderStateMarkdown(r *output.Renderer, state interp.SystemState) {
	r.Println("## System State")
	r.Println("")
	if len(state.Fields) == 0 {
		r.Println("(no fields)")
		return
	}
	r.Println("| Field | Energy | Entropy | Coherence | Capacity | Phase | Freq | Age |")
	r.Println("| --- | --- | --- | --- | --- | --- | --- | --- |")
	for _, f := range state.Fields {
		r.Printf("| %s | %.2f | %.3f | %.3f | %.3f | %s | %.2f | %d |\n",
			f.Name, f.Energy, f.Entropy, f.Coherence, f.Capacity, f.Phase, f.Frequency, f.Age)
	}
	r.Println("")
	r.Printf("Total energy: %.2f, total entropy: %.3f, budget remaining: %.2f\n",
		state.TotalEnergy, state.TotalEntropy, state.BudgetRemaining)
}
