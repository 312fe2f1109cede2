package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandeng/strand/model"
)

func TestVaryMaterialProperty(t *testing.T) {
	m := axialBar(t, 1.0)
	require.NoError(t, m.AddLoad(model.NewNodalForce(1, 1, model.Ux, 1000, "p")))

	points := VaryMaterialProperty(m, 1, []float64{100e9, 200e9, 400e9},
		func(p *model.MatProps, v float64) { p.YoungModulus = v })
	require.Len(t, points, 3)
	for _, pt := range points {
		require.NoError(t, pt.Err)
	}

	// Displacement is inversely proportional to E.
	u0 := points[0].Results.MaxDisplacement()
	u1 := points[1].Results.MaxDisplacement()
	u2 := points[2].Results.MaxDisplacement()
	assert.InEpsilon(t, 2.0*u1, u0, 1e-3)
	assert.InEpsilon(t, 2.0*u2, u1, 1e-3)

	// The sweep works on clones; the source model is untouched.
	assert.Equal(t, barYoung, m.Materials[1].Props.YoungModulus)
}

func TestVaryMaterialPropertyBadValue(t *testing.T) {
	m := axialBar(t, 1.0)
	points := VaryMaterialProperty(m, 1, []float64{-1},
		func(p *model.MatProps, v float64) { p.YoungModulus = v })
	require.Len(t, points, 1)
	assert.Error(t, points[0].Err)
}

func TestVaryNodeCoordinate(t *testing.T) {
	m := axialBar(t, 1.0)
	require.NoError(t, m.AddLoad(model.NewNodalForce(1, 1, model.Ux, 1000, "p")))

	points := VaryNodeCoordinate(m, 1, []float64{1.0, 2.0},
		func(n *model.Node, v float64) { n.X = v })
	require.Len(t, points, 2)
	for _, pt := range points {
		require.NoError(t, pt.Err)
	}

	// A longer bar is more flexible.
	assert.InEpsilon(t, 2.0*points[0].Results.MaxDisplacement(),
		points[1].Results.MaxDisplacement(), 1e-3)
	assert.Equal(t, 1.0, m.Nodes[1].X)
}

func TestGoldenSectionSearch(t *testing.T) {
	t.Run("Quadratic", func(t *testing.T) {
		x, fx, err := GoldenSectionSearch(func(v float64) (float64, error) {
			return (v - 2.0) * (v - 2.0), nil
		}, 0, 5, 1e-8)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, x, 1e-6)
		assert.InDelta(t, 0.0, fx, 1e-10)
	})

	t.Run("EmptyInterval", func(t *testing.T) {
		_, _, err := GoldenSectionSearch(func(float64) (float64, error) { return 0, nil }, 2, 1, 1e-6)
		assert.Error(t, err)
	})

	t.Run("ObjectiveErrorAborts", func(t *testing.T) {
		calls := 0
		_, _, err := GoldenSectionSearch(func(float64) (float64, error) {
			calls++
			return 0, assert.AnError
		}, 0, 1, 1e-6)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, calls)
	})
}

func TestMinimizeDisplacement(t *testing.T) {
	// Stiffness grows monotonically with E, so the flexible end of the
	// interval is never the minimizer: the search must land at the stiff end.
	m := axialBar(t, 1.0)
	require.NoError(t, m.AddLoad(model.NewNodalForce(1, 1, model.Ux, 1000, "p")))

	lo, hi := 100e9, 400e9
	x, fx, err := MinimizeDisplacement(m, lo, hi, 1e6, func(c *model.Model, v float64) error {
		c.Materials[1].Props.YoungModulus = v
		return nil
	})
	require.NoError(t, err)
	assert.InDelta(t, hi, x, (hi-lo)*1e-2)

	want := 1000.0 * 1.0 / (barArea * hi)
	assert.InEpsilon(t, want, fx, 1e-2)
}

func TestMinimizeDisplacementQuadraticGeometry(t *testing.T) {
	// Moving the loaded tip along x changes the bar length; displacement
	// P·L/(EA) is monotone in L, minimized at the short end.
	m := axialBar(t, 1.0)
	require.NoError(t, m.AddLoad(model.NewNodalForce(1, 1, model.Ux, 1000, "p")))

	x, _, err := MinimizeDisplacement(m, 0.5, 2.0, 1e-4, func(c *model.Model, v float64) error {
		c.Nodes[1].X = v
		return nil
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, x, 0.02)
}

func TestSweepUnknownIDs(t *testing.T) {
	m := axialBar(t, 1.0)

	points := VaryMaterialProperty(m, 99, []float64{1}, func(*model.MatProps, float64) {})
	require.Len(t, points, 1)
	assert.ErrorIs(t, points[0].Err, model.ErrUnknownMaterial)

	points = VaryNodeCoordinate(m, 99, []float64{1}, func(*model.Node, float64) {})
	require.Len(t, points, 1)
	assert.ErrorIs(t, points[0].Err, model.ErrUnknownNode)
}
