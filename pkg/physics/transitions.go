package physics

import (
	"fmt"
	"math"
)

// Exchange and coupling coefficients shared by the transition algebra.
// Kinetic/potential splits are always 60/40.
const (
	exchangeRate     = 0.1  // fraction of the energy difference moved per interaction
	kineticSplit     = 0.6
	potentialSplit   = 0.4
	phaseCouplingK   = 0.1  // phase drift toward the partner per interaction
	flowRate         = 0.05 // spatial flow fraction of the gradient strength
	minFlowDistance  = 0.01 // clamp against division blow-up
	DefaultDecayRate = 0.05
)

// InteractWith performs a bidirectional energy exchange. A tenth of the
// energy difference moves from f to other (negative when other is richer),
// split 60/40 into kinetic and potential. Entropy rises on both sides with
// the magnitude of the exchange, coherence decays slightly, and the phase
// angles drift toward each other. Total energy across the pair is exact:
// f loses precisely what other gains.
func (f FieldState) InteractWith(other FieldState) (FieldState, FieldState) {
	exchange := exchangeRate * (f.Energy.Total - other.Energy.Total)
	entropyRise := math.Abs(exchange) * 0.01
	coupling := phaseCouplingK * (other.Energy.PhaseAngle - f.Energy.PhaseAngle)

	newSelf := f.withEnergy(EnergyState{
		Total:      f.Energy.Total - exchange,
		Kinetic:    f.Energy.Kinetic - exchange*kineticSplit,
		Potential:  f.Energy.Potential - exchange*potentialSplit,
		Entropy:    f.Energy.Entropy + entropyRise,
		Coherence:  f.Energy.Coherence * 0.99,
		PhaseAngle: wrapAngle(f.Energy.PhaseAngle + coupling),
	}).aged()

	newOther := other.withEnergy(EnergyState{
		Total:      other.Energy.Total + exchange,
		Kinetic:    other.Energy.Kinetic + exchange*kineticSplit,
		Potential:  other.Energy.Potential + exchange*potentialSplit,
		Entropy:    other.Energy.Entropy + entropyRise,
		Coherence:  other.Energy.Coherence * 0.99,
		PhaseAngle: wrapAngle(other.Energy.PhaseAngle - coupling),
	}).aged()

	return newSelf, newOther
}

// QuantumEntangle correlates the pair: both coherences are set to their
// average plus a 0.2 boost, and each side records the other as its
// entanglement partner. Energy, position and age are untouched; this is a
// relation, not an exchange.
func (f FieldState) QuantumEntangle(other FieldState) (FieldState, FieldState) {
	shared := (f.Energy.Coherence+other.Energy.Coherence)/2 + 0.2

	newSelf := f
	newSelf.Energy.Coherence = shared
	newSelf.EntangledWith = other.Name

	newOther := other
	newOther.Energy.Coherence = shared
	newOther.EntangledWith = f.Name

	return newSelf, newOther
}

// ResonateWith couples the pair through their oscillation frequencies.
// Resonance strength falls off exponentially with the frequency gap, and
// both fields are amplified by up to 20%. Strong resonance (> 0.5) snaps
// both phase angles to their average. Energy is deliberately not conserved
// here: resonance models external pumping.
func (f FieldState) ResonateWith(other FieldState) (FieldState, FieldState) {
	resonance := math.Exp(-math.Abs(f.Frequency - other.Frequency))
	amp := 1.0 + 0.2*resonance
	avgPhase := (f.Energy.PhaseAngle + other.Energy.PhaseAngle) / 2

	selfPhase, otherPhase := f.Energy.PhaseAngle, other.Energy.PhaseAngle
	if resonance > 0.5 {
		selfPhase, otherPhase = avgPhase, avgPhase
	}

	newSelf := f.withEnergy(EnergyState{
		Total:      f.Energy.Total * amp,
		Kinetic:    f.Energy.Kinetic * amp,
		Potential:  f.Energy.Potential * amp,
		Entropy:    f.Energy.Entropy,
		Coherence:  f.Energy.Coherence + 0.1*resonance,
		PhaseAngle: selfPhase,
	}).aged()

	newOther := other.withEnergy(EnergyState{
		Total:      other.Energy.Total * amp,
		Kinetic:    other.Energy.Kinetic * amp,
		Potential:  other.Energy.Potential * amp,
		Entropy:    other.Energy.Entropy,
		Coherence:  other.Energy.Coherence + 0.1*resonance,
		PhaseAngle: otherPhase,
	}).aged()

	return newSelf, newOther
}

// PhaseTransition shifts the field to the target phase if it can pay the
// cost of 10 energy per ordinal step. An underfunded transition returns the
// field unchanged; that is a silent no-op, not an error. Moving up the
// order shifts energy into kinetic, moving down shifts it into potential.
// Entering plasma halves coherence.
func (f FieldState) PhaseTransition(target Phase) FieldState {
	steps := int(target) - int(f.Phase)
	cost := math.Abs(float64(steps)) * 10.0

	if f.Energy.Total < cost {
		return f
	}

	kinetic, potential := f.Energy.Kinetic, f.Energy.Potential
	if steps > 0 {
		kinetic += cost
		potential -= cost
	} else {
		kinetic -= cost
		potential += cost
	}

	coherence := f.Energy.Coherence
	if target == PhasePlasma {
		coherence *= 0.5
	}

	out := f.withEnergy(EnergyState{
		Total:      f.Energy.Total - cost,
		Kinetic:    kinetic,
		Potential:  potential,
		Entropy:    f.Energy.Entropy + math.Abs(float64(steps))*2.0,
		Coherence:  coherence,
		PhaseAngle: f.Energy.PhaseAngle,
	}).aged()
	out.Phase = target
	return out
}

// FractalSpawn produces 2^depth children at smaller scale. The parent's
// energy is split evenly across the spawns (split, not created: the spawned
// total equals the parent's total), coherence is inherited, and each spawn
// is phase-offset by its slice of the full turn. Spawns sit on a small
// lattice around the parent, oscillate 2^depth times faster, and start with
// 80% capacity at age zero. The parent itself is never modified.
func (f FieldState) FractalSpawn(depth int) []FieldState {
	count := 1 << uint(depth)
	share := 1.0 / float64(count)

	spawns := make([]FieldState, 0, count)
	for i := 0; i < count; i++ {
		offset := Vec3{
			X: float64(i%2) * 0.1,
			Y: float64((i/2)%2) * 0.1,
			Z: float64(i/4) * 0.1,
		}
		spawns = append(spawns, FieldState{
			Name: fmt.Sprintf("%s_fractal_%d_%d", f.Name, depth, i),
			Energy: EnergyState{
				Total:      f.Energy.Total * share,
				Kinetic:    f.Energy.Kinetic * share,
				Potential:  f.Energy.Potential * share,
				Entropy:    f.Energy.Entropy * share,
				Coherence:  f.Energy.Coherence,
				PhaseAngle: wrapAngle(f.Energy.PhaseAngle + float64(i)*(2*math.Pi/float64(count))),
			},
			Position:     f.Position.Add(offset),
			Gradient:     f.Gradient,
			Capacity:     f.Capacity * 0.8,
			Age:          0,
			Phase:        f.Phase,
			Frequency:    f.Frequency * float64(count),
			FractalDepth: depth,
		})
	}
	return spawns
}

// SpatialGradientFlow moves energy down the spatial energy gradient between
// the two fields. Flow scales with the energy difference over the distance,
// with the distance clamped to 0.01 so near-coincident fields cannot blow
// up the division. Both gradients are updated by the displacement vector at
// opposite signs. The exchange is exact.
func (f FieldState) SpatialGradientFlow(other FieldState) (FieldState, FieldState) {
	disp := other.Position.Sub(f.Position)
	distance := disp.Norm()
	if distance < minFlowDistance {
		distance = minFlowDistance
	}

	strength := (f.Energy.Total - other.Energy.Total) / distance
	flow := strength * flowRate
	entropyRise := math.Abs(flow) * 0.01

	newSelf := f.withEnergy(EnergyState{
		Total:      f.Energy.Total - flow,
		Kinetic:    f.Energy.Kinetic - flow*kineticSplit,
		Potential:  f.Energy.Potential - flow*potentialSplit,
		Entropy:    f.Energy.Entropy + entropyRise,
		Coherence:  f.Energy.Coherence,
		PhaseAngle: f.Energy.PhaseAngle,
	}).aged()
	newSelf.Gradient = f.Gradient.Sub(disp.Scale(0.1))

	newOther := other.withEnergy(EnergyState{
		Total:      other.Energy.Total + flow,
		Kinetic:    other.Energy.Kinetic + flow*kineticSplit,
		Potential:  other.Energy.Potential + flow*potentialSplit,
		Entropy:    other.Energy.Entropy + entropyRise,
		Coherence:  other.Energy.Coherence,
		PhaseAngle: other.Energy.PhaseAngle,
	}).aged()
	newOther.Gradient = other.Gradient.Add(disp.Scale(0.1))

	return newSelf, newOther
}

// Regenerate feeds input energy into the field: 70% becomes work, 30%
// builds capacity, and the capacity growth earns an efficiency bonus of up
// to 20% on the new total. Regeneration is a net energy increase: it models
// harvesting from outside the system.
func (f FieldState) Regenerate(input float64) FieldState {
	work := input * 0.7
	capacityEnergy := input * 0.3

	newCapacity := f.Capacity * (1.0 + capacityEnergy/100.0)
	bonus := math.Min(newCapacity/f.Capacity-1.0, 0.2)

	out := f.withEnergy(EnergyState{
		Total:      (f.Energy.Total + work) * (1.0 + bonus),
		Kinetic:    f.Energy.Kinetic + work*kineticSplit,
		Potential:  f.Energy.Potential + work*potentialSplit,
		Entropy:    f.Energy.Entropy + input*0.005,
		Coherence:  math.Min(f.Energy.Coherence+0.01, 1.0),
		PhaseAngle: f.Energy.PhaseAngle,
	}).aged()
	out.Capacity = newCapacity
	return out
}

// Decay dissipates a fraction of the field's energy. Entropy rises with
// the loss, coherence and capacity erode. Monotonic: repeated decay never
// raises total energy and never lowers entropy.
func (f FieldState) Decay(rate float64) FieldState {
	loss := f.Energy.Total * rate

	out := f.withEnergy(EnergyState{
		Total:      f.Energy.Total - loss,
		Kinetic:    f.Energy.Kinetic * (1 - rate),
		Potential:  f.Energy.Potential * (1 - rate),
		Entropy:    f.Energy.Entropy + loss*0.1,
		Coherence:  f.Energy.Coherence * 0.95,
		PhaseAngle: f.Energy.PhaseAngle,
	}).aged()
	out.Capacity = f.Capacity * 0.99
	return out
}

// SymbiosisWith has each field regenerate on 5% of the other's total
// energy, then charges both half of a small interaction cost and entrains
// their frequencies to the common average. Both sides end stronger; the
// growth comes from Regenerate's harvesting law.
func (f FieldState) SymbiosisWith(other FieldState) (FieldState, FieldState) {
	selfContribution := f.Energy.Total * 0.05
	otherContribution := other.Energy.Total * 0.05

	newSelf := f.Regenerate(otherContribution)
	newOther := other.Regenerate(selfContribution)

	cost := 0.01 * (selfContribution + otherContribution)
	newSelf.Energy.Total -= cost / 2
	newOther.Energy.Total -= cost / 2

	avgFreq := (newSelf.Frequency + newOther.Frequency) / 2
	newSelf.Frequency = avgFreq
	newOther.Frequency = avgFreq

	return newSelf, newOther
}
