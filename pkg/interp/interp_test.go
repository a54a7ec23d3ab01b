package interp

import (
	"encoding/json"
	"testing"

	"github.com/cyclic-lang/cyclic/internal/testutil"
	"github.com/cyclic-lang/cyclic/pkg/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInterpreter(t *testing.T, opts ...Option) *Interpreter {
	t.Helper()
	return New(append([]Option{WithLogger(testutil.NewTestLogger(t))}, opts...)...)
}

func TestExecuteFieldCreation(t *testing.T) {
	in := newTestInterpreter(t)

	results := in.Execute("plant = 100")

	require.Len(t, results, 1)
	assert.Equal(t, "creation_0", results[0].Key)
	assert.Equal(t, ResultFieldCreated, results[0].Kind)
	assert.Equal(t, CreationResult{Field: "plant", Energy: 100}, results[0].Payload)

	f, ok := in.Field("plant")
	require.True(t, ok)
	assert.Equal(t, 100.0, f.Energy.Total)
	assert.Equal(t, 1.0, f.Energy.Entropy)
	assert.Equal(t, physics.PhaseNormal, f.Phase)
}

func TestExecuteInteractionImplicitCreationDefaults(t *testing.T) {
	in := newTestInterpreter(t)

	results := in.Execute("∇F(a↔b)|∂E/∂t=0")

	require.Len(t, results, 1)
	require.Equal(t, ResultBidirectional, results[0].Kind)
	payload := results[0].Payload.(InteractionResult)
	assert.True(t, payload.EnergyConserved)

	// Both sides are auto-created at 50; equal energies mean a zero
	// exchange and a conserved pair total of 100.
	a, _ := in.Field("a")
	b, _ := in.Field("b")
	assert.InDelta(t, 100.0, a.Energy.Total+b.Energy.Total, physics.ConservationTolerance)
	assert.Equal(t, 1, a.Age)
	assert.Equal(t, 1, b.Age)
}

func TestExecuteInteractionConservesUnequalPair(t *testing.T) {
	in := newTestInterpreter(t)
	in.CreateField("sun", 200, 1.0)
	in.CreateField("plant", 50, 1.0)

	results := in.Execute("∇F(sun↔plant)|∂E/∂t=0")

	require.Len(t, results, 1)
	sun, _ := in.Field("sun")
	plant, _ := in.Field("plant")
	assert.InDelta(t, 250.0, sun.Energy.Total+plant.Energy.Total, physics.ConservationTolerance)
	assert.InDelta(t, 185.0, sun.Energy.Total, 1e-12)
}

func TestExecuteInteractionWrongArityIsExecutionError(t *testing.T) {
	in := newTestInterpreter(t)

	results := in.Execute("∇F(a↔b↔c)|x")

	require.Len(t, results, 1)
	assert.Equal(t, ResultExecutionError, results[0].Kind)
	assert.Equal(t, "error_0", results[0].Key)
	payload := results[0].Payload.(ErrorResult)
	assert.Contains(t, payload.Error, "exactly 2 fields")

	// The failed line must not have touched the registry.
	_, ok := in.Field("a")
	assert.False(t, ok)
}

func TestExecuteUnidirectionalFlowEmitsNoResult(t *testing.T) {
	in := newTestInterpreter(t)

	results := in.Execute("∇F(a→b)|∂E/∂t=0")

	assert.Empty(t, results)
	_, ok := in.Field("a")
	assert.False(t, ok)
}

func TestExecuteEntangle(t *testing.T) {
	in := newTestInterpreter(t)

	results := in.Execute("⊗(alice, bob)")

	require.Len(t, results, 1)
	require.Equal(t, ResultQuantumEntanglement, results[0].Kind)
	assert.Equal(t, "quantum_0", results[0].Key)
	payload := results[0].Payload.(EntanglementResult)
	assert.True(t, payload.Entangled)
	assert.InDelta(t, 0.2, payload.Coherence, 1e-12)

	alice, _ := in.Field("alice")
	bob, _ := in.Field("bob")
	assert.Equal(t, DefaultEntangleEnergy, alice.Energy.Total)
	assert.Equal(t, "bob", alice.EntangledWith)
	assert.Equal(t, "alice", bob.EntangledWith)
}

func TestExecuteResonanceAmplifies(t *testing.T) {
	in := newTestInterpreter(t)
	in.CreateField("a", 100, 5.0)
	in.CreateField("b", 100, 5.1)

	results := in.Execute("~(a ≈ b)")

	require.Len(t, results, 1)
	payload := results[0].Payload.(ResonanceResult)
	assert.InDelta(t, 1.1810, payload.Amplification, 0.001)
	assert.True(t, payload.PhaseLocked)

	a, _ := in.Field("a")
	assert.InDelta(t, 118.10, a.Energy.Total, 0.01)
}

func TestExecuteResonanceZeroEnergyAmplificationIsOne(t *testing.T) {
	in := newTestInterpreter(t)
	in.CreateField("a", 0, 1.0)
	in.CreateField("b", 0, 1.0)

	results := in.Execute("~(a ≈ b)")

	require.Len(t, results, 1)
	payload := results[0].Payload.(ResonanceResult)
	assert.Equal(t, 1.0, payload.Amplification)
}

func TestExecutePhaseTransition(t *testing.T) {
	in := newTestInterpreter(t)
	in.CreateField("water", 100, 1.0)

	results := in.Execute("∂phase(water, gas)")

	require.Len(t, results, 1)
	payload := results[0].Payload.(PhaseResult)
	assert.Equal(t, physics.PhaseNormal, payload.OldPhase)
	assert.Equal(t, physics.PhaseGas, payload.NewPhase)
	assert.InDelta(t, 20.0, payload.EnergyCost, 1e-12)
}

func TestExecutePhaseTransitionInsufficientEnergyIsRecordedNoOp(t *testing.T) {
	in := newTestInterpreter(t)
	in.CreateField("weak", 5, 1.0)

	results := in.Execute("∂phase(weak, gas)")

	// The transition silently declines but the line still yields a result
	// showing no phase change and zero cost.
	require.Len(t, results, 1)
	payload := results[0].Payload.(PhaseResult)
	assert.Equal(t, payload.OldPhase, payload.NewPhase)
	assert.Equal(t, 0.0, payload.EnergyCost)

	f, _ := in.Field("weak")
	assert.Equal(t, 5.0, f.Energy.Total)
	assert.Equal(t, 0, f.Age)
}

func TestExecuteUnknownPhaseIsExecutionError(t *testing.T) {
	in := newTestInterpreter(t)
	in.CreateField("water", 100, 1.0)

	results := in.Execute("∂phase(water, solid)")

	require.Len(t, results, 1)
	assert.Equal(t, ResultExecutionError, results[0].Kind)
}

func TestExecuteFractalSpawn(t *testing.T) {
	in := newTestInterpreter(t)
	in.CreateField("seed", 128, 1.0)

	results := in.Execute("∮^1(seed, 2)")

	require.Len(t, results, 1)
	payload := results[0].Payload.(FractalResult)
	assert.Equal(t, "seed", payload.Parent)
	assert.Equal(t, 4, payload.SpawnsCreated)
	assert.Equal(t, []string{
		"seed_fractal_2_0", "seed_fractal_2_1", "seed_fractal_2_2", "seed_fractal_2_3",
	}, payload.SpawnNames)

	// Parent stays present and unmodified; spawn energies sum to the
	// parent's pre-spawn total.
	parent, ok := in.Field("seed")
	require.True(t, ok)
	assert.Equal(t, 128.0, parent.Energy.Total)
	assert.Equal(t, 0, parent.Age)

	var sum float64
	for _, name := range payload.SpawnNames {
		s, ok := in.Field(name)
		require.True(t, ok)
		sum += s.Energy.Total
	}
	assert.InDelta(t, 128.0, sum, physics.ConservationTolerance)
}

func TestExecuteSpatialGradientFlow(t *testing.T) {
	in := newTestInterpreter(t)
	in.CreateField("peak", 100, 1.0)
	in.CreateField("valley", 20, 1.0)

	results := in.Execute("∇spatial(peak, valley)")

	require.Len(t, results, 1)
	payload := results[0].Payload.(SpatialResult)
	assert.Equal(t, []string{"peak", "valley"}, payload.Fields)

	peak, _ := in.Field("peak")
	valley, _ := in.Field("valley")
	assert.InDelta(t, 120.0, peak.Energy.Total+valley.Energy.Total, physics.ConservationTolerance)
	assert.Equal(t, payload.GradientStrength, peak.Gradient)
}

func TestExecuteNetworkFanOut(t *testing.T) {
	in := newTestInterpreter(t)

	results := in.Execute("∇³F(x↔y↔z)|∂E/∂t=0")

	require.Len(t, results, 1)
	assert.Equal(t, "network_0", results[0].Key)
	payload := results[0].Payload.(NetworkResult)
	assert.Equal(t, 3, payload.NetworkSize)
	// Pairs run in index order; later pairs see earlier updates.
	assert.Equal(t, [][2]string{{"x", "y"}, {"x", "z"}, {"y", "z"}}, payload.Interactions)

	// All members auto-created at 70; pairwise exchanges conserve the
	// network total.
	var total float64
	for _, name := range payload.Fields {
		f, ok := in.Field(name)
		require.True(t, ok)
		total += f.Energy.Total
	}
	assert.InDelta(t, 3*DefaultNetworkEnergy, total, physics.ConservationTolerance)
}

func TestExecuteRegenerate(t *testing.T) {
	in := newTestInterpreter(t)
	in.CreateField("plant", 100, 1.0)

	results := in.Execute("∮regenerate(plant, 20)")

	require.Len(t, results, 1)
	payload := results[0].Payload.(RegenerativeResult)
	assert.Equal(t, "plant", payload.Field)
	assert.InDelta(t, 0.06, payload.CapacityGrowth, 1e-12)
	assert.InDelta(t, 1.06, payload.NewCapacity, 1e-12)
}

func TestExecuteRegenerateAutoCreates(t *testing.T) {
	in := newTestInterpreter(t)

	results := in.Execute("∮regenerate(sprout, 10)")

	require.Len(t, results, 1)
	sprout, ok := in.Field("sprout")
	require.True(t, ok)
	// Created at the regenerate default of 50 before the cycle ran.
	assert.Greater(t, sprout.Energy.Total, DefaultRegenerateEnergy)
}

func TestExecuteDecay(t *testing.T) {
	in := newTestInterpreter(t)
	in.CreateField("reactor", 150, 1.0)

	results := in.Execute("∂decay(reactor, 0.1)")

	require.Len(t, results, 1)
	payload := results[0].Payload.(DecayResult)
	assert.InDelta(t, 15.0, payload.EnergyLost, 1e-12)
	assert.InDelta(t, 1.5, payload.EntropyIncrease, 1e-12)
}

func TestExecuteSymbiosis(t *testing.T) {
	in := newTestInterpreter(t)

	results := in.Execute("∇∇(fungus⇄tree)")

	require.Len(t, results, 1)
	payload := results[0].Payload.(SymbioticResult)
	assert.True(t, payload.MutualBenefit)
	assert.Greater(t, payload.CapacityGrowth["fungus"], 0.0)
	assert.Greater(t, payload.CapacityGrowth["tree"], 0.0)

	// Both auto-created at the symbiosis default of 80, then entrained.
	fungus, _ := in.Field("fungus")
	tree, _ := in.Field("tree")
	assert.Equal(t, fungus.Frequency, tree.Frequency)
}

func TestExecuteSilentSkipForAbsentFields(t *testing.T) {
	lines := []string{
		"~(ghost ≈ phantom)",
		"∂phase(ghost, gas)",
		"∮^1(ghost, 1)",
		"∇spatial(ghost, phantom)",
		"∂decay(ghost)",
	}
	for _, line := range lines {
		in := newTestInterpreter(t)

		results := in.Execute(line)

		assert.Empty(t, results, line)
		_, ok := in.Field("ghost")
		assert.False(t, ok, line)
	}
}

func TestExecuteUnknownExpression(t *testing.T) {
	in := newTestInterpreter(t)

	results := in.Execute("this is not cyclic")

	require.Len(t, results, 1)
	assert.Equal(t, "unknown_0", results[0].Key)
	assert.Equal(t, UnknownResult{Expression: "this is not cyclic"}, results[0].Payload)
}

func TestExecuteContinuesAfterFailedLine(t *testing.T) {
	in := newTestInterpreter(t)

	results := in.Execute("∇F(a↔b↔c)|x\nplant = 30\n∮regenerate(plant, 10)")

	require.Len(t, results, 3)
	assert.Equal(t, ResultExecutionError, results[0].Kind)
	assert.Equal(t, "error_0", results[0].Key)
	assert.Equal(t, "creation_1", results[1].Key)
	assert.Equal(t, "regenerate_2", results[2].Key)
}

func TestExecuteStateVisibleToLaterLines(t *testing.T) {
	in := newTestInterpreter(t)

	in.Execute("plant = 100\n∂decay(plant, 0.5)")

	plant, _ := in.Field("plant")
	assert.InDelta(t, 50.0, plant.Energy.Total, 1e-12)
}

func TestExecuteSkipsBlankLines(t *testing.T) {
	in := newTestInterpreter(t)

	results := in.Execute("\n\n  plant = 10  \n\n")

	require.Len(t, results, 1)
	assert.Equal(t, "creation_0", results[0].Key)
}

func TestSnapshotAggregates(t *testing.T) {
	in := newTestInterpreter(t)
	in.CreateField("a", 100, 1.0)
	in.CreateField("b", 50, 2.0)

	state := in.Snapshot()

	require.Len(t, state.Fields, 2)
	assert.Equal(t, "a", state.Fields[0].Name)
	assert.Equal(t, "b", state.Fields[1].Name)
	assert.InDelta(t, 150.0, state.TotalEnergy, 1e-12)
	assert.InDelta(t, 2.0, state.TotalEntropy, 1e-12)
	assert.InDelta(t, 1.0, state.AverageCapacity, 1e-12)
	assert.Equal(t, DefaultBudget, state.BudgetRemaining)
}

func TestSnapshotEmptyRegistry(t *testing.T) {
	in := newTestInterpreter(t, WithBudget(500))

	state := in.Snapshot()

	assert.Empty(t, state.Fields)
	assert.Equal(t, 0.0, state.AverageCapacity)
	assert.Equal(t, 0.0, state.AverageCoherence)
	assert.Equal(t, 500.0, state.BudgetRemaining)
}

func TestSnapshotShowsEntanglement(t *testing.T) {
	in := newTestInterpreter(t)
	in.Execute("⊗(a, b)")

	state := in.Snapshot()

	require.Len(t, state.Fields, 2)
	assert.Equal(t, "b", state.Fields[0].EntangledWith)
	assert.Equal(t, "a", state.Fields[1].EntangledWith)
}

func TestReset(t *testing.T) {
	in := newTestInterpreter(t)
	in.Execute("a = 10\nb = 20")

	in.Reset()

	assert.Empty(t, in.Snapshot().Fields)
	_, ok := in.Field("a")
	assert.False(t, ok)
}

func TestResultJSONIncludesType(t *testing.T) {
	r := newResult(0, ResultDecay, DecayResult{Field: "x", EnergyLost: 1.5, EntropyIncrease: 0.15})

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "decay", m["type"])
	assert.Equal(t, "x", m["field"])
	assert.Equal(t, 1.5, m["energy_lost"])
}

func TestEntangledReferenceMayDangle(t *testing.T) {
	in := newTestInterpreter(t)
	in.Execute("⊗(a, b)")

	// Replacing b wholesale leaves a's back-reference dangling; snapshots
	// and lookups must tolerate that.
	in.CreateField("b", 10, 1.0)

	a, _ := in.Field("a")
	assert.Equal(t, "b", a.EntangledWith)
	b, _ := in.Field("b")
	assert.Empty(t, b.EntangledWith)

	state := in.Snapshot()
	require.Len(t, state.Fields, 2)
}
