package interp

import (
	"encoding/json"
	"fmt"

	"github.com/cyclic-lang/cyclic/pkg/physics"
)

// ResultKind tags the outcome record emitted for one executed line.
type ResultKind string

const (
	ResultFieldCreated          ResultKind = "field_created"
	ResultBidirectional         ResultKind = "bidirectional"
	ResultRegenerative          ResultKind = "regenerative"
	ResultDecay                 ResultKind = "decay"
	ResultSymbiotic             ResultKind = "symbiotic"
	ResultQuantumEntanglement   ResultKind = "quantum_entanglement"
	ResultResonance             ResultKind = "resonance"
	ResultPhaseTransition       ResultKind = "phase_transition"
	ResultFractalGeneration     ResultKind = "fractal_generation"
	ResultSpatialGradientFlow   ResultKind = "spatial_gradient_flow"
	ResultMultiFieldNetwork     ResultKind = "multi_field_network"
	ResultUnknown               ResultKind = "unknown"
	ResultConservationViolation ResultKind = "conservation_violation"
	ResultExecutionError        ResultKind = "execution_error"
)

// keyPrefixes synthesize result keys: "{prefix}_{sequence}" where the
// sequence number is the count of results already recorded in this call.
var keyPrefixes = map[ResultKind]string{
	ResultFieldCreated:          "creation",
	ResultBidirectional:         "interaction",
	ResultRegenerative:          "regenerate",
	ResultDecay:                 "decay",
	ResultSymbiotic:             "symbiosis",
	ResultQuantumEntanglement:   "quantum",
	ResultResonance:             "resonance",
	ResultPhaseTransition:       "phase",
	ResultFractalGeneration:     "fractal",
	ResultSpatialGradientFlow:   "spatial",
	ResultMultiFieldNetwork:     "network",
	ResultUnknown:               "unknown",
	ResultConservationViolation: "error",
	ResultExecutionError:        "error",
}

// Result is one entry of the ordered execution log. Payload holds the
// kind-specific outcome record.
type Result struct {
	Key     string
	Kind    ResultKind
	Payload any
}

// MarshalJSON flattens the payload fields alongside the "type" tag, so the
// log serializes the way consumers expect result records to look.
func (r Result) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, err
	}
	merged := map[string]any{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	merged["type"] = string(r.Kind)
	return json.Marshal(merged)
}

func newResult(seq int, kind ResultKind, payload any) Result {
	return Result{
		Key:     fmt.Sprintf("%s_%d", keyPrefixes[kind], seq),
		Kind:    kind,
		Payload: payload,
	}
}

// FieldSummary is the per-field energy digest embedded in interaction
// results.
type FieldSummary struct {
	Energy     float64 `json:"energy"`
	Kinetic    float64 `json:"kinetic"`
	Potential  float64 `json:"potential"`
	Entropy    float64 `json:"entropy"`
	Coherence  float64 `json:"quantum_coherence"`
	PhaseAngle float64 `json:"phase_angle"`
}

func summarize(f physics.FieldState) FieldSummary {
	return FieldSummary{
		Energy:     f.Energy.Total,
		Kinetic:    f.Energy.Kinetic,
		Potential:  f.Energy.Potential,
		Entropy:    f.Energy.Entropy,
		Coherence:  f.Energy.Coherence,
		PhaseAngle: f.Energy.PhaseAngle,
	}
}

// CreationResult records a field declaration.
type CreationResult struct {
	Field  string  `json:"field"`
	Energy float64 `json:"energy"`
}

// InteractionResult records a bidirectional exchange that passed the
// conservation gate.
type InteractionResult struct {
	Fields          map[string]FieldSummary `json:"fields"`
	EnergyConserved bool                    `json:"energy_conserved"`
}

// RegenerativeResult records a regeneration cycle.
type RegenerativeResult struct {
	Field          string  `json:"field"`
	CapacityGrowth float64 `json:"capacity_growth"`
	NewCapacity    float64 `json:"new_capacity"`
}

// DecayResult records a decay step.
type DecayResult struct {
	Field           string  `json:"field"`
	EnergyLost      float64 `json:"energy_lost"`
	EntropyIncrease float64 `json:"entropy_increase"`
}

// SymbioticResult records a mutual-benefit exchange.
type SymbioticResult struct {
	Fields         []string           `json:"fields"`
	MutualBenefit  bool               `json:"mutual_benefit"`
	CapacityGrowth map[string]float64 `json:"capacity_growth"`
}

// EntanglementResult records a quantum entanglement.
type EntanglementResult struct {
	Fields    []string `json:"fields"`
	Coherence float64  `json:"coherence"`
	Entangled bool     `json:"entangled"`
}

// ResonanceResult records a resonant coupling. Amplification is the
// post/pre total energy ratio across the pair, 1.0 when the pair started
// with no energy.
type ResonanceResult struct {
	Fields        []string `json:"fields"`
	Amplification float64  `json:"amplification"`
	PhaseLocked   bool     `json:"phase_locked"`
}

// PhaseResult records a phase transition, including the silent no-op case
// where old and new phases are equal and the cost is zero.
type PhaseResult struct {
	Field      string        `json:"field"`
	OldPhase   physics.Phase `json:"old_phase"`
	NewPhase   physics.Phase `json:"new_phase"`
	EnergyCost float64       `json:"energy_cost"`
}

// FractalResult records a fractal spawn generation.
type FractalResult struct {
	Parent        string   `json:"parent"`
	Depth         int      `json:"depth"`
	SpawnsCreated int      `json:"spawns_created"`
	SpawnNames    []string `json:"spawn_names"`
}

// SpatialResult records a spatial gradient flow; GradientStrength is the
// first field's resulting gradient vector.
type SpatialResult struct {
	Fields           []string     `json:"fields"`
	GradientStrength physics.Vec3 `json:"gradient_strength"`
}

// NetworkResult records a multi-field network fan-out.
type NetworkResult struct {
	Fields       []string    `json:"fields"`
	Interactions [][2]string `json:"interactions"`
	NetworkSize  int         `json:"network_size"`
}

// UnknownResult echoes an unrecognized expression.
type UnknownResult struct {
	Expression string `json:"expression"`
}

// ErrorResult carries a per-line failure message.
type ErrorResult struct {
	Error string `json:"error"`
}
