// Package physics defines the value types of the cyclic field runtime:
// energy records, field records, and the pure transitions between them.
//
// Everything in this package is a value. Transitions never mutate their
// receiver; they return fresh records, and the interpreter replaces registry
// entries wholesale. This keeps conservation checks free of aliasing hazards.
package physics

import "math"

// Tolerances used by the conservation and resonance checks.
const (
	ConservationTolerance = 1e-10
	PhaseLockTolerance    = 0.1
)

// EnergyState is the six-component physical record carried by every field.
// PhaseAngle is kept in [0, 2π).
type EnergyState struct {
	Total      float64 `json:"total_energy"`
	Kinetic    float64 `json:"kinetic"`
	Potential  float64 `json:"potential"`
	Entropy    float64 `json:"entropy"`
	Coherence  float64 `json:"quantum_coherence"`
	PhaseAngle float64 `json:"phase_angle"`
}

// Combine merges two energy states. Totals, kinetic, potential and entropy
// are additive. Coherence is the midpoint average, not a sum: combined
// quantum state is shared, not stacked. The phase angle is the wrapped sum.
func Combine(a, b EnergyState) EnergyState {
	return EnergyState{
		Total:      a.Total + b.Total,
		Kinetic:    a.Kinetic + b.Kinetic,
		Potential:  a.Potential + b.Potential,
		Entropy:    a.Entropy + b.Entropy,
		Coherence:  (a.Coherence + b.Coherence) / 2,
		PhaseAngle: wrapAngle(a.PhaseAngle + b.PhaseAngle),
	}
}

// ConservedWith reports whether two states carry the same total energy
// within tolerance.
func (e EnergyState) ConservedWith(other EnergyState, tolerance float64) bool {
	return math.Abs(e.Total-other.Total) < tolerance
}

// EntropyIncreased reports whether other's entropy is at least e's,
// allowing for floating-point slack. Second law check.
func (e EnergyState) EntropyIncreased(other EnergyState) bool {
	return other.Entropy >= e.Entropy-ConservationTolerance
}

// InPhaseWith reports whether two states are phase locked: the angular
// difference, or its complement to a full turn, is within tolerance.
func (e EnergyState) InPhaseWith(other EnergyState, tolerance float64) bool {
	diff := math.Abs(e.PhaseAngle - other.PhaseAngle)
	return diff < tolerance || math.Abs(diff-2*math.Pi) < tolerance
}

// wrapAngle maps an angle onto [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
