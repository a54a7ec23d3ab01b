package physics

import "math"

// Vec3 is a spatial 3-vector used for field positions and gradients.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// FieldState is the complete state of one named field. The name is the
// registry key and never changes after creation. EntangledWith is a
// back-reference by name, not an ownership edge: it may dangle if the
// partner is later removed, and lookups must tolerate that.
type FieldState struct {
	Name          string      `json:"name"`
	Energy        EnergyState `json:"energy"`
	Position      Vec3        `json:"position"`
	Gradient      Vec3        `json:"gradient"`
	Capacity      float64     `json:"capacity"`
	Age           int         `json:"age"`
	Phase         Phase       `json:"phase_state"`
	Frequency     float64     `json:"frequency"`
	FractalDepth  int         `json:"fractal_depth"`
	EntangledWith string      `json:"entangled_with,omitempty"`
}

// NewField creates a field at the origin in the normal phase, with unit
// capacity and the conventional starting entropy of 1.
func NewField(name string, initialEnergy, frequency float64) FieldState {
	return FieldState{
		Name: name,
		Energy: EnergyState{
			Total:   initialEnergy,
			Entropy: 1.0,
		},
		Capacity:  1.0,
		Phase:     PhaseNormal,
		Frequency: frequency,
	}
}

// aged returns a copy of f with its cycle counter advanced.
func (f FieldState) aged() FieldState {
	f.Age++
	return f
}

// withEnergy returns a copy of f carrying the given energy state.
func (f FieldState) withEnergy(e EnergyState) FieldState {
	f.Energy = e
	return f
}
