// Package parser recognizes single-line cyclic field expressions.
//
// The grammar is a closed set of symbolic operator forms, matched by an
// ordered list of pattern rules. The first rule that matches wins; rule
// order, not rule specificity, determines classification. There is no
// nesting, no composition, and no backtracking across rules.
package parser

// Kind identifies the operation class a line was recognized as.
type Kind string

const (
	KindFieldCreation   Kind = "field_creation"
	KindInteraction     Kind = "bidirectional_interaction"
	KindFlow            Kind = "unidirectional_flow"
	KindEntangle        Kind = "quantum_entangle"
	KindResonance       Kind = "resonance"
	KindPhaseTransition Kind = "phase_transition"
	KindFractalSpawn    Kind = "fractal_spawn"
	KindSpatialGradient Kind = "spatial_gradient"
	KindNetwork         Kind = "multi_field_network"
	KindRegenerate      Kind = "regenerate"
	KindDecay           Kind = "decay"
	KindSymbiosis       Kind = "symbiosis"
	KindUnknown         Kind = "unknown"
)

// Operation is the tagged union produced by Parse. Dispatch in the
// interpreter is an exhaustive type switch over these variants.
type Operation interface {
	Kind() Kind
}

// Create declares a new field: name = energy.
type Create struct {
	Name   string
	Energy float64
}

// Entangle is the quantum entanglement form ⊗(a, b).
type Entangle struct {
	A, B string
}

// Resonance is the resonant coupling form ~(a ≈ b).
type Resonance struct {
	A, B string
}

// PhaseShift is the phase transition form ∂phase(field, target). Target is
// the raw phase name; resolution happens at execution time.
type PhaseShift struct {
	Field  string
	Target string
}

// Fractal is the fractal spawn form ∮^n(field, depth).
type Fractal struct {
	Iterations int
	Field      string
	Depth      int
}

// SpatialGradient is the spatial flow form ∇spatial(a, b).
type SpatialGradient struct {
	A, B string
}

// Network is the multi-field form ∇³F(a↔b↔...)|constraint.
type Network struct {
	Fields     []string
	Constraint string
}

// Regenerate is the regenerative cycle form ∮regenerate(field, energy).
type Regenerate struct {
	Field  string
	Energy float64
}

// Decay is the decay form ∂decay(field[, rate]).
type Decay struct {
	Field string
	Rate  float64
}

// Symbiosis is the double-gradient form ∇∇(a⇄b).
type Symbiosis struct {
	A, B string
}

// Interaction is the field interaction form ∇F(a↔b)|constraint. The name
// list is carried as parsed; arity is checked at execution time.
type Interaction struct {
	Fields     []string
	Constraint string
}

// Flow is the unidirectional form ∇F(a→b)|constraint. Recognized for
// completeness of the grammar; the runtime currently assigns it no
// semantics and the interpreter emits no result for it.
type Flow struct {
	Fields     []string
	Constraint string
}

// Unknown is the fallback for lines matching no rule. The expression is
// echoed verbatim; this is not an error.
type Unknown struct {
	Expression string
}

func (Create) Kind() Kind          { return KindFieldCreation }
func (Entangle) Kind() Kind        { return KindEntangle }
func (Resonance) Kind() Kind       { return KindResonance }
func (PhaseShift) Kind() Kind      { return KindPhaseTransition }
func (Fractal) Kind() Kind         { return KindFractalSpawn }
func (SpatialGradient) Kind() Kind { return KindSpatialGradient }
func (Network) Kind() Kind         { return KindNetwork }
func (Regenerate) Kind() Kind      { return KindRegenerate }
func (Decay) Kind() Kind           { return KindDecay }
func (Symbiosis) Kind() Kind       { return KindSymbiosis }
func (Interaction) Kind() Kind     { return KindInteraction }
func (Flow) Kind() Kind            { return KindFlow }
func (Unknown) Kind() Kind         { return KindUnknown }
