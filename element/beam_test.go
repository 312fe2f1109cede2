package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/strandeng/strand/model"
)

const testInertia = 1e-5

func beamElement() *model.Element {
	return model.NewElement(1, model.Beam2D, []int{0, 1}, 1,
		model.Section{Area: testArea, InertiaZ: testInertia})
}

func TestBeam2DLocalStiffness(t *testing.T) {
	e := beamElement()
	mt := model.Steel(1, "")
	l := 2.0
	nodes := horizontalPair(l)

	k, err := beam2D{}.LocalStiffness(e, mt, nodes)
	require.NoError(t, err)

	ea := testYoung * testArea
	ei := testYoung * testInertia

	assert.InEpsilon(t, ea/l, k.At(0, 0), 1e-12)
	assert.InEpsilon(t, 12*ei/(l*l*l), k.At(1, 1), 1e-12)
	assert.InEpsilon(t, 6*ei/(l*l), k.At(1, 2), 1e-12)
	assert.InEpsilon(t, 4*ei/l, k.At(2, 2), 1e-12)
	assert.InEpsilon(t, 2*ei/l, k.At(2, 5), 1e-12)
	assert.InEpsilon(t, -12*ei/(l*l*l), k.At(1, 4), 1e-12)

	assert.True(t, mat.EqualApprox(k, k.T(), 1e-6))
}

func TestBeam2DRotatedStiffness(t *testing.T) {
	e := beamElement()
	mt := model.Steel(1, "")

	// A vertical member: the axial direction swaps with the transverse one.
	nodes := []*model.Node{
		model.NewNode(0, 0, 0, 0),
		model.NewNode(1, 0, 3, 0),
	}
	k, err := GlobalStiffness(e, mt, nodes)
	require.NoError(t, err)

	l := 3.0
	ea := testYoung * testArea
	ei := testYoung * testInertia
	assert.InEpsilon(t, 12*ei/(l*l*l), k.At(0, 0), 1e-9)
	assert.InEpsilon(t, ea/l, k.At(1, 1), 1e-9)
	assert.InEpsilon(t, 4*ei/l, k.At(2, 2), 1e-9)
	assert.True(t, mat.EqualApprox(k, k.T(), 1e-3))
}

func TestBeam2DMass(t *testing.T) {
	e := beamElement()
	mt := model.Steel(1, "")
	l := 2.0
	nodes := horizontalPair(l)

	m, err := beam2D{}.Mass(e, mt, nodes)
	require.NoError(t, err)

	total := 7850.0 * testArea * l
	assert.InEpsilon(t, total/3.0, m.At(0, 0), 1e-12)
	assert.InEpsilon(t, 13.0*total/35.0, m.At(1, 1), 1e-12)
	assert.InEpsilon(t, 11.0*total*l/210.0, m.At(1, 2), 1e-12)
	assert.InEpsilon(t, total*l*l/105.0, m.At(2, 2), 1e-12)
	assert.True(t, mat.EqualApprox(m, m.T(), 1e-9))
}

func TestBeam2DFreeFreeRigidBody(t *testing.T) {
	e := beamElement()
	mt := model.Steel(1, "")
	k, err := GlobalStiffness(e, mt, horizontalPair(2.0))
	require.NoError(t, err)

	// Pure translations lie in the null space of the unconstrained element.
	for name, rigid := range map[string][]float64{
		"TranslationX": {1, 0, 0, 1, 0, 0},
		"TranslationY": {0, 1, 0, 0, 1, 0},
	} {
		u := mat.NewVecDense(6, rigid)
		ku := mat.NewVecDense(6, nil)
		ku.MulVec(k, u)
		assert.InDelta(t, 0.0, mat.Norm(ku, 2), 1e-3, name)
	}
}

func TestBeam2DRequiresInertia(t *testing.T) {
	e := model.NewElement(1, model.Beam2D, []int{0, 1}, 1, model.TrussSection(testArea))
	_, err := beam2D{}.LocalStiffness(e, model.Steel(1, ""), horizontalPair(1.0))
	assert.Error(t, err)
}

func TestFrame2DSharesBeamFormulation(t *testing.T) {
	beam := model.NewElement(1, model.Beam2D, []int{0, 1}, 1,
		model.Section{Area: testArea, InertiaZ: testInertia})
	frame := model.NewElement(2, model.Frame2D, []int{0, 1}, 1,
		model.Section{Area: testArea, InertiaZ: testInertia})
	mt := model.Steel(1, "")
	nodes := horizontalPair(2.0)

	kb, err := GlobalStiffness(beam, mt, nodes)
	require.NoError(t, err)
	kf, err := GlobalStiffness(frame, mt, nodes)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(kb, kf, 1e-12))
}
