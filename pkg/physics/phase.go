package physics

import "fmt"

// Phase is the discrete matter phase of a field. Phases are linearly
// ordered; transition cost scales with the distance between ordinals.
type Phase int

const (
	PhaseCrystalline Phase = iota
	PhaseNormal
	PhaseLiquid
	PhaseGas
	PhasePlasma
)

var phaseNames = [...]string{
	PhaseCrystalline: "crystalline",
	PhaseNormal:      "normal",
	PhaseLiquid:      "liquid",
	PhaseGas:         "gas",
	PhasePlasma:      "plasma",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// ParsePhase resolves a phase name to its ordinal.
func ParsePhase(name string) (Phase, bool) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), true
		}
	}
	return PhaseNormal, false
}

// MarshalText implements encoding.TextMarshaler so phases render as names
// in JSON and YAML output.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	parsed, ok := ParsePhase(string(text))
	if !ok {
		return fmt.Errorf("unknown phase %q", string(text))
	}
	*p = parsed
	return nil
}
