package interp

import "github.com/cyclic-lang/cyclic/pkg/physics"

// FieldInfo is the read-only projection of one field for display and
// logging collaborators.
type FieldInfo struct {
	Name          string        `json:"name"`
	Energy        float64       `json:"energy"`
	Kinetic       float64       `json:"kinetic"`
	Potential     float64       `json:"potential"`
	Entropy       float64       `json:"entropy"`
	Coherence     float64       `json:"quantum_coherence"`
	PhaseAngle    float64       `json:"phase_angle"`
	Capacity      float64       `json:"capacity"`
	Age           int           `json:"age"`
	Phase         physics.Phase `json:"phase_state"`
	Frequency     float64       `json:"frequency"`
	FractalDepth  int           `json:"fractal_depth"`
	EntangledWith string        `json:"entangled_with,omitempty"`
	Position      physics.Vec3  `json:"position"`
	Gradient      physics.Vec3  `json:"gradient"`
}

// SystemState is the aggregate read-only snapshot of the registry. Fields
// are listed in registry insertion order.
type SystemState struct {
	Fields           []FieldInfo `json:"fields"`
	TotalEnergy      float64     `json:"total_system_energy"`
	TotalEntropy     float64     `json:"total_system_entropy"`
	AverageCapacity  float64     `json:"average_capacity"`
	AverageCoherence float64     `json:"average_coherence"`
	BudgetRemaining  float64     `json:"energy_budget_remaining"`
}

// Snapshot projects the current registry into a SystemState. The snapshot
// is a value copy; later executions never mutate it.
func (in *Interpreter) Snapshot() SystemState {
	state := SystemState{
		Fields:          make([]FieldInfo, 0, len(in.order)),
		BudgetRemaining: in.budget - in.used,
	}

	var capacitySum, coherenceSum float64
	for _, name := range in.order {
		f := in.fields[name]
		state.Fields = append(state.Fields, FieldInfo{
			Name:          f.Name,
			Energy:        f.Energy.Total,
			Kinetic:       f.Energy.Kinetic,
			Potential:     f.Energy.Potential,
			Entropy:       f.Energy.Entropy,
			Coherence:     f.Energy.Coherence,
			PhaseAngle:    f.Energy.PhaseAngle,
			Capacity:      f.Capacity,
			Age:           f.Age,
			Phase:         f.Phase,
			Frequency:     f.Frequency,
			FractalDepth:  f.FractalDepth,
			EntangledWith: f.EntangledWith,
			Position:      f.Position,
			Gradient:      f.Gradient,
		})
		state.TotalEnergy += f.Energy.Total
		state.TotalEntropy += f.Energy.Entropy
		capacitySum += f.Capacity
		coherenceSum += f.Energy.Coherence
	}

	if n := float64(len(state.Fields)); n > 0 {
		state.AverageCapacity = capacitySum / n
		state.AverageCoherence = coherenceSum / n
	}
	return state
}
