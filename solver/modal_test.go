package solver

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandeng/strand/model"
)

func TestModalAxialBar(t *testing.T) {
	length := 1.0
	density := 7850.0
	m := axialBar(t, length)
	m.Settings.EigenModes = 4

	res, err := NewModal().Solve(m)
	require.NoError(t, err)
	require.Len(t, res.Frequencies, 4)

	// Frequencies come out ascending.
	assert.True(t, sort.Float64sAreSorted(res.Frequencies))

	// Fundamental axial mode of the single-element bar with consistent mass:
	// ω² = k/m_tip = (EA/L)/(ρAL/3) = 3E/(ρL²).
	want := math.Sqrt(3.0*barYoung/density) / length / (2.0 * math.Pi)
	assert.InEpsilon(t, want, res.Frequencies[0], 1e-3)

	// Penalty-dominated constrained modes sit far above the structural band.
	assert.Greater(t, res.Frequencies[3], 100.0*res.Frequencies[0])

	r, c := res.ModeShapes.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 4, c)
}

func TestModalDefaultsModeCount(t *testing.T) {
	m := axialBar(t, 1.0)
	// EigenModes unset: the solver asks for its default, capped at the
	// system size (4 DOFs here).
	res, err := NewModal().Solve(m)
	require.NoError(t, err)
	assert.Len(t, res.Frequencies, 4)
}

func TestModalRequiresDensity(t *testing.T) {
	m := axialBar(t, 1.0)
	m.Materials[1].Props.Density = 0
	_, err := NewModal().Solve(m)
	assert.ErrorIs(t, err, ErrNoDensity)
}

func TestModalFrequencyScalesWithStiffness(t *testing.T) {
	soft := axialBar(t, 1.0)
	soft.Settings.EigenModes = 1

	stiff := soft.Clone()
	stiff.Materials[1].Props.YoungModulus *= 4.0

	rs, err := NewModal().Solve(soft)
	require.NoError(t, err)
	rf, err := NewModal().Solve(stiff)
	require.NoError(t, err)

	// f ∝ √E: quadrupling the modulus doubles the frequency.
	assert.InEpsilon(t, 2.0*rs.Frequencies[0], rf.Frequencies[0], 1e-3)
}

func TestModalReportsAutoRestrained(t *testing.T) {
	m := axialBar(t, 1.0)
	require.NoError(t, m.AddNode(model.NewNode(2, 3, 3, 0)))

	res, err := NewModal().Solve(m)
	require.NoError(t, err)
	assert.Contains(t, res.AutoRestrained, 4)
}
