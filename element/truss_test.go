package element

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/strandeng/strand/model"
)

const (
	testArea  = 0.01
	testYoung = 200e9
)

func trussElement(t model.ElementType) *model.Element {
	return model.NewElement(1, t, []int{0, 1}, 1, model.TrussSection(testArea))
}

func horizontalPair(length float64) []*model.Node {
	return []*model.Node{
		model.NewNode(0, 0, 0, 0),
		model.NewNode(1, length, 0, 0),
	}
}

func TestTruss2DLocalStiffness(t *testing.T) {
	e := trussElement(model.Truss2D)
	mt := model.Steel(1, "")
	nodes := horizontalPair(2.0)

	k, err := truss2D{}.LocalStiffness(e, mt, nodes)
	require.NoError(t, err)

	eaL := testYoung * testArea / 2.0
	assert.InEpsilon(t, eaL, k.At(0, 0), 1e-12)
	assert.InEpsilon(t, -eaL, k.At(0, 2), 1e-12)
	assert.InEpsilon(t, eaL, k.At(2, 2), 1e-12)
	assert.Zero(t, k.At(1, 1)) // no transverse stiffness
}

func TestTruss2DGlobalStiffness(t *testing.T) {
	t.Run("Inclined45Degrees", func(t *testing.T) {
		e := trussElement(model.Truss2D)
		mt := model.Steel(1, "")
		nodes := []*model.Node{
			model.NewNode(0, 0, 0, 0),
			model.NewNode(1, 1, 1, 0),
		}

		k, err := GlobalStiffness(e, mt, nodes)
		require.NoError(t, err)

		// K = (EA/L)·c·cᵀ per node block with c = (cos, sin) = (√2/2, √2/2).
		l := math.Sqrt2
		want := testYoung * testArea / l * 0.5
		assert.InEpsilon(t, want, k.At(0, 0), 1e-9)
		assert.InEpsilon(t, want, k.At(0, 1), 1e-9)
		assert.InEpsilon(t, -want, k.At(0, 2), 1e-9)
		assert.True(t, mat.EqualApprox(k, k.T(), 1e-3))
	})

	t.Run("FreeFreeIsSingular", func(t *testing.T) {
		e := trussElement(model.Truss2D)
		mt := model.Steel(1, "")
		k, err := GlobalStiffness(e, mt, horizontalPair(1.0))
		require.NoError(t, err)

		// Rigid-body translation lies in the null space: row sums over the
		// matching direction vanish.
		n, _ := k.Dims()
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := i % 2; j < n; j += 2 {
				sum += k.At(i, j)
			}
			assert.InDelta(t, 0.0, sum, 1e-3)
		}
	})
}

func TestTruss3DGlobalStiffness(t *testing.T) {
	e := trussElement(model.Truss3D)
	mt := model.Steel(1, "")
	nodes := []*model.Node{
		model.NewNode(0, 0, 0, 0),
		model.NewNode(1, 1, 1, 1),
	}

	k, err := GlobalStiffness(e, mt, nodes)
	require.NoError(t, err)

	// Direction cosines are all 1/√3, so each diagonal block entry is
	// (EA/L)/3.
	l := math.Sqrt(3.0)
	want := testYoung * testArea / l / 3.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InEpsilon(t, want, k.At(i, j), 1e-9)
			assert.InEpsilon(t, -want, k.At(i, j+3), 1e-9)
		}
	}
}

func TestTrussMass(t *testing.T) {
	e := trussElement(model.Truss2D)
	mt := model.Steel(1, "")
	nodes := horizontalPair(2.0)

	m, err := MassMatrix(e, mt, nodes)
	require.NoError(t, err)

	total := 7850.0 * testArea * 2.0
	assert.InEpsilon(t, total/3.0, m.At(0, 0), 1e-12)
	assert.InEpsilon(t, total/6.0, m.At(0, 2), 1e-12)

	// The consistent element mass must sum to the physical mass per
	// direction.
	sum := 0.0
	for _, i := range []int{0, 2} {
		for _, j := range []int{0, 2} {
			sum += m.At(i, j)
		}
	}
	assert.InEpsilon(t, total, sum, 1e-12)
}

func TestTrussPropertyErrors(t *testing.T) {
	nodes := horizontalPair(1.0)

	t.Run("MissingArea", func(t *testing.T) {
		e := model.NewElement(1, model.Truss2D, []int{0, 1}, 1, model.Section{})
		_, err := GlobalStiffness(e, model.Steel(1, ""), nodes)
		var pe *model.PropertyError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "cross-sectional area", pe.Property)
	})

	t.Run("MissingDensity", func(t *testing.T) {
		e := trussElement(model.Truss2D)
		mt := model.NewLinearElastic(1, "", 200e9, 0.3, 0)
		_, err := MassMatrix(e, mt, nodes)
		var pe *model.PropertyError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "density", pe.Property)
	})

	t.Run("ZeroLength", func(t *testing.T) {
		e := trussElement(model.Truss2D)
		coincident := []*model.Node{
			model.NewNode(0, 1, 1, 0),
			model.NewNode(1, 1, 1, 0),
		}
		_, err := GlobalStiffness(e, model.Steel(1, ""), coincident)
		assert.ErrorIs(t, err, model.ErrInvalidModel)
	})
}

func TestUnsupportedFamilies(t *testing.T) {
	for _, family := range []model.ElementType{model.Plate, model.Shell, model.Solid} {
		t.Run(family.String(), func(t *testing.T) {
			f := ForType(family)
			_, err := f.LocalStiffness(nil, nil, nil)
			var unsup *model.UnsupportedError
			assert.True(t, errors.As(err, &unsup))
			_, err = f.Transformation(nil)
			assert.True(t, errors.As(err, &unsup))
			_, err = f.Mass(nil, nil, nil)
			assert.True(t, errors.As(err, &unsup))
		})
	}
}
