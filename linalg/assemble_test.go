package linalg

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestAssembleGlobalAccumulates(t *testing.T) {
	// Two 2x2 contributions overlapping at global index 1.
	c1 := Contribution{
		Indices: []int{0, 1},
		Matrix:  mat.NewDense(2, 2, []float64{1, -1, -1, 1}),
	}
	c2 := Contribution{
		Indices: []int{1, 2},
		Matrix:  mat.NewDense(2, 2, []float64{2, -2, -2, 2}),
	}
	g := AssembleGlobal([]Contribution{c1, c2}, 3)

	assert.Equal(t, 1.0, g.At(0, 0))
	assert.Equal(t, 3.0, g.At(1, 1)) // 1 + 2 at the shared DOF
	assert.Equal(t, 2.0, g.At(2, 2))
	assert.Equal(t, -1.0, g.At(0, 1))
	assert.Equal(t, -2.0, g.At(1, 2))
	assert.Equal(t, 0.0, g.At(0, 2))
}

func TestAssembleGlobalOrderInvariant(t *testing.T) {
	contributions := []Contribution{
		{Indices: []int{0, 1}, Matrix: mat.NewDense(2, 2, []float64{4, -4, -4, 4})},
		{Indices: []int{1, 2}, Matrix: mat.NewDense(2, 2, []float64{7, -7, -7, 7})},
		{Indices: []int{0, 2}, Matrix: mat.NewDense(2, 2, []float64{1, -1, -1, 1})},
	}
	forward := AssembleGlobal(contributions, 3)

	reversed := []Contribution{contributions[2], contributions[1], contributions[0]}
	backward := AssembleGlobal(reversed, 3)

	assert.True(t, mat.EqualApprox(forward, backward, 1e-15))
}

func TestAssembleGlobalParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	n := 50
	var contributions []Contribution
	for i := 0; i < ParallelThreshold+50; i++ {
		a, b := rng.Intn(n), rng.Intn(n)
		if a == b {
			b = (a + 1) % n
		}
		v := rng.Float64() + 0.5
		contributions = append(contributions, Contribution{
			Indices: []int{a, b},
			Matrix:  mat.NewDense(2, 2, []float64{v, -v, -v, v}),
		})
	}
	parallel := AssembleGlobal(contributions, n)

	sequential := mat.NewDense(n, n, nil)
	for _, c := range contributions {
		scatterAdd(sequential, c)
	}
	assert.True(t, mat.EqualApprox(parallel, sequential, 1e-12))
}

func TestApplyPenalties(t *testing.T) {
	t.Run("PrescribedValueRecovered", func(t *testing.T) {
		k := mat.NewDense(2, 2, []float64{
			10, -10,
			-10, 10,
		})
		f := mat.NewVecDense(2, []float64{0, 100})
		require.NoError(t, ApplyPenalties(k, f, []int{0}, []float64{0}))

		x, err := Solve(k, f)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, x.AtVec(0), 1e-6)
		assert.InDelta(t, 10.0, x.AtVec(1), 1e-4)
	})

	t.Run("NonZeroPrescription", func(t *testing.T) {
		k := mat.NewDense(2, 2, []float64{
			10, -10,
			-10, 10,
		})
		f := mat.NewVecDense(2, nil)
		require.NoError(t, ApplyPenalties(k, f, []int{0}, []float64{0.5}))
		require.NoError(t, ApplyPenalties(k, f, []int{1}, []float64{0}))

		x, err := Solve(k, f)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, x.AtVec(0), 1e-6)
	})

	t.Run("Idempotent", func(t *testing.T) {
		k := mat.NewDense(2, 2, []float64{
			10, -10,
			-10, 10,
		})
		f := mat.NewVecDense(2, []float64{0, 100})
		require.NoError(t, ApplyPenalties(k, f, []int{0}, []float64{0}))
		require.NoError(t, ApplyPenalties(k, f, []int{0}, []float64{0}))

		x, err := Solve(k, f)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, x.AtVec(0), 1e-6)
		assert.InDelta(t, 10.0, x.AtVec(1), 1e-4)
	})

	t.Run("MismatchedInputs", func(t *testing.T) {
		k := mat.NewDense(2, 2, nil)
		f := mat.NewVecDense(2, nil)
		assert.ErrorIs(t, ApplyPenalties(k, f, []int{0}, nil), ErrDimensionMismatch)
		assert.ErrorIs(t, ApplyPenalties(k, f, []int{5}, []float64{0}), ErrDimensionMismatch)
	})
}

func TestRestrainUncoupled(t *testing.T) {
	// DOF 1 has no stiffness anywhere in its row or column.
	k := mat.NewDense(3, 3, []float64{
		5, 0, -5,
		0, 0, 0,
		-5, 0, 5,
	})
	f := mat.NewVecDense(3, []float64{1, 2, 3})

	pinned := RestrainUncoupled(k, f)
	assert.Equal(t, []int{1}, pinned)
	assert.Equal(t, PenaltyStiffness, k.At(1, 1))
	assert.Equal(t, 0.0, f.AtVec(1))

	// Fully coupled systems stay untouched.
	k2 := mat.NewDense(2, 2, []float64{2, -1, -1, 2})
	f2 := mat.NewVecDense(2, nil)
	assert.Empty(t, RestrainUncoupled(k2, f2))
}
