// Package interp executes cyclic field programs: it owns the named-field
// registry, dispatches recognized operations to the physics transitions,
// enforces the conservation gate, and records a structured result per line.
//
// Execution is single-threaded and synchronous. One Interpreter owns one
// registry; concurrent scripts each get their own instance. Field states
// are values replaced wholesale, never mutated in place.
package interp

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/cyclic-lang/cyclic/pkg/parser"
	"github.com/cyclic-lang/cyclic/pkg/physics"
)

// Default initial energies for implicitly created fields. The default is
// operation-specific: richer operations seed richer fields.
const (
	DefaultCreateEnergy      = 10.0
	DefaultInteractionEnergy = 50.0
	DefaultEntangleEnergy    = 60.0
	DefaultNetworkEnergy     = 70.0
	DefaultSymbiosisEnergy   = 80.0
	DefaultRegenerateEnergy  = 50.0

	// DefaultBudget is the initial system energy budget reported by
	// snapshots.
	DefaultBudget = 1000.0
)

// Interpreter is the cyclic language runtime.
type Interpreter struct {
	fields map[string]physics.FieldState
	order  []string // registry insertion order, for stable snapshots

	budget float64
	used   float64
	logger *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the structured logger used for per-line execution logs.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) { in.logger = l }
}

// WithBudget overrides the initial energy budget.
func WithBudget(budget float64) Option {
	return func(in *Interpreter) { in.budget = budget }
}

// New creates an empty interpreter.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		fields: make(map[string]physics.FieldState),
		budget: DefaultBudget,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// CreateField registers a new field with the given initial energy and
// frequency. An existing field of the same name is replaced.
func (in *Interpreter) CreateField(name string, initialEnergy, frequency float64) {
	in.put(physics.NewField(name, initialEnergy, frequency))
}

// Reset drops every field, returning the interpreter to its initial state.
func (in *Interpreter) Reset() {
	in.fields = make(map[string]physics.FieldState)
	in.order = in.order[:0]
	in.used = 0
}

// Field looks up a field by name.
func (in *Interpreter) Field(name string) (physics.FieldState, bool) {
	f, ok := in.fields[name]
	return f, ok
}

// Execute runs cyclic source, one operation per line, and returns the
// ordered result log. Blank lines are skipped. Every line is an
// independent unit of failure: argument errors and conservation violations
// become error results and execution continues with the next line.
func (in *Interpreter) Execute(code string) []Result {
	var results []Result

	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		op := parser.Parse(line)
		kind, payload, err := in.dispatch(op)

		switch {
		case err != nil:
			kind = ResultExecutionError
			var cv *ConservationError
			if errors.As(err, &cv) {
				kind = ResultConservationViolation
			}
			in.logger.Warn("line failed", "line", line, "kind", kind, "error", err)
			results = append(results, newResult(len(results), kind, ErrorResult{Error: err.Error()}))
		case payload == nil:
			// Silent skip: referenced field absent for an operation that
			// requires pre-existing fields, or a form with no semantics.
			in.logger.Debug("line skipped", "line", line, "op", op.Kind())
		default:
			r := newResult(len(results), kind, payload)
			in.logger.Debug("line executed", "key", r.Key, "op", op.Kind())
			results = append(results, r)
		}
	}

	return results
}

// dispatch applies one recognized operation to the registry. A nil payload
// with nil error means no result is recorded for the line.
func (in *Interpreter) dispatch(op parser.Operation) (ResultKind, any, error) {
	switch op := op.(type) {
	case parser.Create:
		in.CreateField(op.Name, op.Energy, 1.0)
		return ResultFieldCreated, CreationResult{Field: op.Name, Energy: op.Energy}, nil

	case parser.Interaction:
		return in.applyInteraction(op)

	case parser.Flow:
		// Recognized grammar with no assigned semantics: no mutation, no
		// result entry.
		return "", nil, nil

	case parser.Entangle:
		return in.applyEntangle(op)

	case parser.Resonance:
		return in.applyResonance(op)

	case parser.PhaseShift:
		return in.applyPhaseShift(op)

	case parser.Fractal:
		return in.applyFractal(op)

	case parser.SpatialGradient:
		return in.applySpatialGradient(op)

	case parser.Network:
		return in.applyNetwork(op)

	case parser.Regenerate:
		return in.applyRegenerate(op)

	case parser.Decay:
		return in.applyDecay(op)

	case parser.Symbiosis:
		return in.applySymbiosis(op)

	case parser.Unknown:
		return ResultUnknown, UnknownResult{Expression: op.Expression}, nil

	default:
		return "", nil, &ArgumentError{Message: "unhandled operation kind " + string(op.Kind())}
	}
}

func (in *Interpreter) applyInteraction(op parser.Interaction) (ResultKind, any, error) {
	if len(op.Fields) != 2 {
		return "", nil, &ArgumentError{Message: "bidirectional interaction requires exactly 2 fields"}
	}

	a := in.ensure(op.Fields[0], DefaultInteractionEnergy)
	b := in.ensure(op.Fields[1], DefaultInteractionEnergy)

	newA, newB, err := in.exactExchange(a, b, physics.FieldState.InteractWith)
	if err != nil {
		return "", nil, err
	}
	in.put(newA)
	in.put(newB)

	return ResultBidirectional, InteractionResult{
		Fields: map[string]FieldSummary{
			newA.Name: summarize(newA),
			newB.Name: summarize(newB),
		},
		EnergyConserved: true,
	}, nil
}

func (in *Interpreter) applyEntangle(op parser.Entangle) (ResultKind, any, error) {
	a := in.ensure(op.A, DefaultEntangleEnergy)
	b := in.ensure(op.B, DefaultEntangleEnergy)

	newA, newB := a.QuantumEntangle(b)
	in.put(newA)
	in.put(newB)

	return ResultQuantumEntanglement, EntanglementResult{
		Fields:    []string{op.A, op.B},
		Coherence: newA.Energy.Coherence,
		Entangled: true,
	}, nil
}

func (in *Interpreter) applyResonance(op parser.Resonance) (ResultKind, any, error) {
	a, okA := in.fields[op.A]
	b, okB := in.fields[op.B]
	if !okA || !okB {
		return "", nil, nil
	}

	before := a.Energy.Total + b.Energy.Total
	newA, newB := a.ResonateWith(b)
	in.put(newA)
	in.put(newB)

	amplification := 1.0
	if before > 0 {
		amplification = (newA.Energy.Total + newB.Energy.Total) / before
	}

	return ResultResonance, ResonanceResult{
		Fields:        []string{op.A, op.B},
		Amplification: amplification,
		PhaseLocked:   newA.Energy.InPhaseWith(newB.Energy, physics.PhaseLockTolerance),
	}, nil
}

func (in *Interpreter) applyPhaseShift(op parser.PhaseShift) (ResultKind, any, error) {
	old, ok := in.fields[op.Field]
	if !ok {
		return "", nil, nil
	}

	target, ok := physics.ParsePhase(op.Target)
	if !ok {
		return "", nil, &ArgumentError{Message: "unknown phase " + op.Target}
	}

	updated := old.PhaseTransition(target)
	in.put(updated)

	return ResultPhaseTransition, PhaseResult{
		Field:      op.Field,
		OldPhase:   old.Phase,
		NewPhase:   updated.Phase,
		EnergyCost: old.Energy.Total - updated.Energy.Total,
	}, nil
}

func (in *Interpreter) applyFractal(op parser.Fractal) (ResultKind, any, error) {
	parent, ok := in.fields[op.Field]
	if !ok {
		return "", nil, nil
	}

	spawns := parent.FractalSpawn(op.Depth)
	names := make([]string, len(spawns))
	for i, s := range spawns {
		in.put(s)
		names[i] = s.Name
	}

	return ResultFractalGeneration, FractalResult{
		Parent:        op.Field,
		Depth:         op.Depth,
		SpawnsCreated: len(spawns),
		SpawnNames:    names,
	}, nil
}

func (in *Interpreter) applySpatialGradient(op parser.SpatialGradient) (ResultKind, any, error) {
	a, okA := in.fields[op.A]
	b, okB := in.fields[op.B]
	if !okA || !okB {
		return "", nil, nil
	}

	newA, newB, err := in.exactExchange(a, b, physics.FieldState.SpatialGradientFlow)
	if err != nil {
		return "", nil, err
	}
	in.put(newA)
	in.put(newB)

	return ResultSpatialGradientFlow, SpatialResult{
		Fields:           []string{op.A, op.B},
		GradientStrength: newA.Gradient,
	}, nil
}

func (in *Interpreter) applyNetwork(op parser.Network) (ResultKind, any, error) {
	for _, name := range op.Fields {
		in.ensure(name, DefaultNetworkEnergy)
	}

	// Every unordered pair interacts in index order. Later pairs see the
	// registry as updated by earlier ones; the ordering is part of the
	// semantics and must stay reproducible.
	var interactions [][2]string
	for i := 0; i < len(op.Fields); i++ {
		for j := i + 1; j < len(op.Fields); j++ {
			a := in.fields[op.Fields[i]]
			b := in.fields[op.Fields[j]]

			newA, newB, err := in.exactExchange(a, b, physics.FieldState.InteractWith)
			if err != nil {
				return "", nil, err
			}
			in.put(newA)
			in.put(newB)
			interactions = append(interactions, [2]string{op.Fields[i], op.Fields[j]})
		}
	}

	return ResultMultiFieldNetwork, NetworkResult{
		Fields:       op.Fields,
		Interactions: interactions,
		NetworkSize:  len(op.Fields),
	}, nil
}

func (in *Interpreter) applyRegenerate(op parser.Regenerate) (ResultKind, any, error) {
	old := in.ensure(op.Field, DefaultRegenerateEnergy)
	updated := old.Regenerate(op.Energy)
	in.put(updated)

	return ResultRegenerative, RegenerativeResult{
		Field:          op.Field,
		CapacityGrowth: updated.Capacity - old.Capacity,
		NewCapacity:    updated.Capacity,
	}, nil
}

func (in *Interpreter) applyDecay(op parser.Decay) (ResultKind, any, error) {
	old, ok := in.fields[op.Field]
	if !ok {
		return "", nil, nil
	}

	updated := old.Decay(op.Rate)
	in.put(updated)

	return ResultDecay, DecayResult{
		Field:           op.Field,
		EnergyLost:      old.Energy.Total - updated.Energy.Total,
		EntropyIncrease: updated.Energy.Entropy - old.Energy.Entropy,
	}, nil
}

func (in *Interpreter) applySymbiosis(op parser.Symbiosis) (ResultKind, any, error) {
	a := in.ensure(op.A, DefaultSymbiosisEnergy)
	b := in.ensure(op.B, DefaultSymbiosisEnergy)

	newA, newB := a.SymbiosisWith(b)
	in.put(newA)
	in.put(newB)

	return ResultSymbiotic, SymbioticResult{
		Fields:        []string{op.A, op.B},
		MutualBenefit: true,
		CapacityGrowth: map[string]float64{
			op.A: newA.Capacity - a.Capacity,
			op.B: newB.Capacity - b.Capacity,
		},
	}, nil
}

// exactExchange runs a conservative pairwise transition and gates it:
// total energy across the pair must match before and after to within the
// conservation tolerance.
func (in *Interpreter) exactExchange(
	a, b physics.FieldState,
	exchange func(physics.FieldState, physics.FieldState) (physics.FieldState, physics.FieldState),
) (physics.FieldState, physics.FieldState, error) {
	before := a.Energy.Total + b.Energy.Total
	newA, newB := exchange(a, b)
	after := newA.Energy.Total + newB.Energy.Total

	pre := physics.EnergyState{Total: before}
	post := physics.EnergyState{Total: after}
	if !pre.ConservedWith(post, physics.ConservationTolerance) {
		return a, b, &ConservationError{Before: before, After: after}
	}
	return newA, newB, nil
}

// ensure returns the named field, creating it with the given default
// energy if absent.
func (in *Interpreter) ensure(name string, defaultEnergy float64) physics.FieldState {
	if f, ok := in.fields[name]; ok {
		return f
	}
	f := physics.NewField(name, defaultEnergy, 1.0)
	in.put(f)
	return f
}

// put replaces the registry entry for the field wholesale.
func (in *Interpreter) put(f physics.FieldState) {
	if _, ok := in.fields[f.Name]; !ok {
		in.order = append(in.order, f.Name)
	}
	in.fields[f.Name] = f
}
