package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultDecayRate applies when ∂decay is written without an explicit rate.
const DefaultDecayRate = 0.05

// rule is one entry in the ordered recognition table. Patterns are
// anchored at the start of the (trimmed) line only; trailing text after a
// match is ignored, mirroring prefix-match semantics. build may return nil
// to reject a syntactic match and let later rules try.
type rule struct {
	name  string
	re    *regexp.Regexp
	build func(m []string) Operation
}

const number = `\d+(?:\.\d+)?`

// rules is tried top to bottom; the first match wins. Order is load-bearing
// because patterns overlap: any new operator syntax that could collide with
// an existing form (in particular the bare `name = number` creation rule at
// the bottom) must be inserted above the rule it would otherwise lose to.
var rules = []rule{
	{
		name: "quantum_entangle",
		re:   regexp.MustCompile(`^⊗\(([^,]+),\s*([^)]+)\)`),
		build: func(m []string) Operation {
			return Entangle{A: strings.TrimSpace(m[1]), B: strings.TrimSpace(m[2])}
		},
	},
	{
		name: "resonance",
		re:   regexp.MustCompile(`^~\(([^≈]+)\s*≈\s*([^)]+)\)`),
		build: func(m []string) Operation {
			return Resonance{A: strings.TrimSpace(m[1]), B: strings.TrimSpace(m[2])}
		},
	},
	{
		name: "phase_transition",
		re:   regexp.MustCompile(`^∂phase\(([^,]+),\s*([^)]+)\)`),
		build: func(m []string) Operation {
			return PhaseShift{Field: strings.TrimSpace(m[1]), Target: strings.TrimSpace(m[2])}
		},
	},
	{
		name: "fractal_spawn",
		re:   regexp.MustCompile(`^∮\^(\d+)\(([^,]+),\s*(\d+)\)`),
		build: func(m []string) Operation {
			iterations, _ := strconv.Atoi(m[1])
			depth, _ := strconv.Atoi(m[3])
			return Fractal{Iterations: iterations, Field: strings.TrimSpace(m[2]), Depth: depth}
		},
	},
	{
		name: "spatial_gradient",
		re:   regexp.MustCompile(`^∇spatial\(([^,]+),\s*([^)]+)\)`),
		build: func(m []string) Operation {
			return SpatialGradient{A: strings.TrimSpace(m[1]), B: strings.TrimSpace(m[2])}
		},
	},
	{
		name: "multi_field_network",
		re:   regexp.MustCompile(`^∇³F?\(([^)]+)\)\|(.+)`),
		build: func(m []string) Operation {
			return Network{Fields: splitNames(m[1], "↔"), Constraint: m[2]}
		},
	},
	{
		name: "regenerate",
		re:   regexp.MustCompile(`^∮regenerate\(([^,]+),\s*(` + number + `)\)`),
		build: func(m []string) Operation {
			energy, _ := strconv.ParseFloat(m[2], 64)
			return Regenerate{Field: strings.TrimSpace(m[1]), Energy: energy}
		},
	},
	{
		name: "decay",
		re:   regexp.MustCompile(`^∂decay\(([^,)]+)(?:,\s*(` + number + `))?\)`),
		build: func(m []string) Operation {
			rate := DefaultDecayRate
			if m[2] != "" {
				rate, _ = strconv.ParseFloat(m[2], 64)
			}
			return Decay{Field: strings.TrimSpace(m[1]), Rate: rate}
		},
	},
	{
		name: "symbiosis",
		re:   regexp.MustCompile(`^∇∇\(([^⇄]+)⇄([^)]+)\)`),
		build: func(m []string) Operation {
			return Symbiosis{A: strings.TrimSpace(m[1]), B: strings.TrimSpace(m[2])}
		},
	},
	{
		name: "field_interaction",
		re:   regexp.MustCompile(`^∇(?:²)?F?\(([^)]+)\)\|(.+)`),
		build: func(m []string) Operation {
			switch {
			case strings.Contains(m[1], "↔"):
				return Interaction{Fields: splitNames(m[1], "↔"), Constraint: m[2]}
			case strings.Contains(m[1], "→"):
				return Flow{Fields: splitNames(m[1], "→"), Constraint: m[2]}
			default:
				return nil
			}
		},
	},
	{
		name: "field_creation",
		re:   regexp.MustCompile(`^(\w+)\s*=\s*(` + number + `)`),
		build: func(m []string) Operation {
			energy, _ := strconv.ParseFloat(m[2], 64)
			return Create{Name: m[1], Energy: energy}
		},
	},
}

// Parse classifies one line of cyclic source. It never fails: lines that
// match no rule come back as Unknown with the expression echoed verbatim.
func Parse(line string) Operation {
	line = strings.TrimSpace(line)
	for _, r := range rules {
		m := r.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if op := r.build(m); op != nil {
			return op
		}
	}
	return Unknown{Expression: line}
}

// RuleNames returns the recognition rule names in match order. Exposed so
// the documented ordering constraint stays testable.
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

func splitNames(s, sep string) []string {
	parts := strings.Split(s, sep)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return names
}
