package dof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandeng/strand/model"
)

func planarTruss(t *testing.T) *model.Model {
	t.Helper()
	m := model.New()
	require.NoError(t, m.AddMaterial(model.Steel(1, "")))
	require.NoError(t, m.AddNode(model.NewNode(0, 0, 0, 0)))
	require.NoError(t, m.AddNode(model.NewNode(1, 1, 0, 0)))
	require.NoError(t, m.AddNode(model.NewNode(2, 2, 0, 0)))
	require.NoError(t, m.AddElement(model.NewElement(1, model.Truss2D, []int{0, 1}, 1, model.TrussSection(0.01))))
	require.NoError(t, m.AddElement(model.NewElement(2, model.Truss2D, []int{1, 2}, 1, model.TrussSection(0.01))))
	return m
}

func TestCompactPlanarNumbering(t *testing.T) {
	p := NewPlan(planarTruss(t))

	assert.True(t, p.Compact())
	assert.Equal(t, 2, p.Stride())
	assert.Equal(t, 6, p.TotalDofs())

	idx, ok := p.NodalIndex(1, model.Uy)
	require.True(t, ok)
	assert.Equal(t, 3, idx)

	_, ok = p.NodalIndex(1, model.Rz)
	assert.False(t, ok)
	assert.False(t, p.Applicable(model.Uz))
}

func TestBendingAdmitsRotation(t *testing.T) {
	m := model.New()
	require.NoError(t, m.AddMaterial(model.Steel(1, "")))
	require.NoError(t, m.AddNode(model.NewNode(0, 0, 0, 0)))
	require.NoError(t, m.AddNode(model.NewNode(1, 1, 0, 0)))
	require.NoError(t, m.AddElement(model.NewElement(1, model.Beam2D, []int{0, 1}, 1, model.BeamSection(0.01, 0, 1e-5, 0))))

	p := NewPlan(m)
	assert.True(t, p.Compact())
	assert.Equal(t, 3, p.Stride())
	assert.True(t, p.Applicable(model.Rz))
	assert.False(t, p.Applicable(model.Uz))

	// Rotation sits after the two translations in the compact layout.
	idx, ok := p.NodalIndex(1, model.Rz)
	require.True(t, ok)
	assert.Equal(t, 5, idx)
}

func TestSpatialSwitchesToTraditional(t *testing.T) {
	m := model.New()
	require.NoError(t, m.AddMaterial(model.Steel(1, "")))
	require.NoError(t, m.AddNode(model.NewNode(0, 0, 0, 0)))
	require.NoError(t, m.AddNode(model.NewNode(1, 1, 1, 1)))
	require.NoError(t, m.AddElement(model.NewElement(1, model.Truss3D, []int{0, 1}, 1, model.TrussSection(0.01))))

	p := NewPlan(m)
	assert.False(t, p.Compact())
	assert.Equal(t, 6, p.Stride())
	assert.True(t, p.Applicable(model.Rx))

	idx, ok := p.NodalIndex(1, model.Uz)
	require.True(t, ok)
	assert.Equal(t, 8, idx)
}

func TestNonContiguousNodeIDs(t *testing.T) {
	m := model.New()
	require.NoError(t, m.AddMaterial(model.Steel(1, "")))
	require.NoError(t, m.AddNode(model.NewNode(0, 0, 0, 0)))
	require.NoError(t, m.AddNode(model.NewNode(10, 1, 0, 0)))
	require.NoError(t, m.AddElement(model.NewElement(1, model.Truss2D, []int{0, 10}, 1, model.TrussSection(0.01))))

	p := NewPlan(m)
	// The gap stays addressable: sizing follows the highest node id.
	assert.Equal(t, 22, p.TotalDofs())
	idx, ok := p.NodalIndex(10, model.Uy)
	require.True(t, ok)
	assert.Equal(t, 21, idx)
}

func TestElementIndicesOrder(t *testing.T) {
	m := planarTruss(t)
	p := NewPlan(m)

	e := m.Elements[2] // nodes 1, 2
	assert.Equal(t, []int{2, 3, 4, 5}, p.ElementIndices(e))
}

func TestActiveTracksElementCoupling(t *testing.T) {
	m := model.New()
	require.NoError(t, m.AddMaterial(model.Steel(1, "")))
	require.NoError(t, m.AddNode(model.NewNode(0, 0, 0, 0)))
	require.NoError(t, m.AddNode(model.NewNode(1, 1, 0, 0)))
	require.NoError(t, m.AddNode(model.NewNode(2, 5, 5, 0))) // no element touches it
	require.NoError(t, m.AddElement(model.NewElement(1, model.Truss2D, []int{0, 1}, 1, model.TrussSection(0.01))))

	p := NewPlan(m)
	assert.Equal(t, 4, p.ActiveCount())
	idx, ok := p.NodalIndex(2, model.Ux)
	require.True(t, ok)
	assert.False(t, p.Active(idx))
	idx, ok = p.NodalIndex(1, model.Ux)
	require.True(t, ok)
	assert.True(t, p.Active(idx))
}
