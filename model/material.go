package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// MaterialKind identifies the constitutive model. Only LinearElastic is
// functionally supported by the formulations; the others are declared so
// models can carry them, and fail fast when a computation is requested.
type MaterialKind uint8

const (
	LinearElastic MaterialKind = iota
	Plastic
	Viscoelastic
	Composite
	NonlinearElastic
)

func (k MaterialKind) String() string {
	switch k {
	case LinearElastic:
		return "LinearElastic"
	case Plastic:
		return "Plastic"
	case Viscoelastic:
		return "Viscoelastic"
	case Composite:
		return "Composite"
	case NonlinearElastic:
		return "NonlinearElastic"
	}
	return "MaterialKind(?)"
}

// MatProps is the material property bag. YoungModulus and PoissonRatio are
// mandatory for any stiffness computation; the remaining properties are
// optional with zero meaning absent (none of them is physically zero).
type MatProps struct {
	YoungModulus     float64 // Pa
	PoissonRatio     float64 // dimensionless
	Density          float64 // kg/m³, required for dynamic analyses
	YieldStrength    float64 // Pa
	UltimateStrength float64 // Pa
	ThermalExpansion float64 // 1/K
	DampingRatio     float64 // dimensionless
}

// HasDensity reports whether a density has been set.
func (p MatProps) HasDensity() bool { return p.Density > 0 }

// Material is an identified constitutive definition.
type Material struct {
	ID    int
	Name  string
	Kind  MaterialKind
	Props MatProps
}

// NewLinearElastic builds an isotropic linear elastic material.
func NewLinearElastic(id int, name string, young, poisson, density float64) *Material {
	return &Material{
		ID:   id,
		Name: name,
		Kind: LinearElastic,
		Props: MatProps{
			YoungModulus: young,
			PoissonRatio: poisson,
			Density:      density,
		},
	}
}

// Steel builds a material with typical structural steel properties.
func Steel(id int, name string) *Material {
	m := NewLinearElastic(id, name, 200e9, 0.3, 7850.0)
	m.Props.YieldStrength = 250e6
	m.Props.UltimateStrength = 400e6
	m.Props.ThermalExpansion = 12e-6
	return m
}

// Aluminum builds a material with typical aluminum alloy properties.
func Aluminum(id int, name string) *Material {
	m := NewLinearElastic(id, name, 70e9, 0.33, 2700.0)
	m.Props.YieldStrength = 270e6
	m.Props.UltimateStrength = 310e6
	m.Props.ThermalExpansion = 23e-6
	return m
}

// Concrete builds a material from its compressive strength, deriving the
// elastic modulus with the ACI 318 correlation E = 4700·√f'c (f'c in MPa).
func Concrete(id int, name string, compressiveStrength float64) *Material {
	young := 4700.0 * math.Sqrt(compressiveStrength*1e-6) * 1e6
	m := NewLinearElastic(id, name, young, 0.2, 2400.0)
	m.Props.UltimateStrength = compressiveStrength
	m.Props.ThermalExpansion = 10e-6
	return m
}

// ShearModulus derives G = E / 2(1+ν).
func (m *Material) ShearModulus() (float64, error) {
	if err := m.requireElastic(); err != nil {
		return 0, err
	}
	return m.Props.YoungModulus / (2.0 * (1.0 + m.Props.PoissonRatio)), nil
}

// BulkModulus derives K = E / 3(1−2ν).
func (m *Material) BulkModulus() (float64, error) {
	if err := m.requireElastic(); err != nil {
		return 0, err
	}
	return m.Props.YoungModulus / (3.0 * (1.0 - 2.0*m.Props.PoissonRatio)), nil
}

// LameLambda derives Lamé's first parameter λ = Eν / (1+ν)(1−2ν).
func (m *Material) LameLambda() (float64, error) {
	if err := m.requireElastic(); err != nil {
		return 0, err
	}
	e, nu := m.Props.YoungModulus, m.Props.PoissonRatio
	return e * nu / ((1.0 + nu) * (1.0 - 2.0*nu)), nil
}

// LameMu is Lamé's second parameter, identical to the shear modulus.
func (m *Material) LameMu() (float64, error) { return m.ShearModulus() }

func (m *Material) requireElastic() error {
	if m.Props.YoungModulus <= 0 {
		return MissingProperty("Young's modulus")
	}
	return nil
}

// Validate checks the mandatory elastic constants and the optional ranges.
func (m *Material) Validate() error {
	if m.Kind != LinearElastic {
		// Nothing to check yet for unimplemented constitutive models.
		return nil
	}
	e, nu := m.Props.YoungModulus, m.Props.PoissonRatio
	if e == 0 {
		return MissingProperty("Young's modulus")
	}
	if e < 0 || math.IsNaN(e) || math.IsInf(e, 0) {
		return &PropertyError{Property: "Young's modulus", Reason: "must be positive and finite"}
	}
	// The bound is open at -1: the shear modulus E/(2(1+ν)) blows up there.
	if nu <= -1.0 || nu >= 0.5 || math.IsNaN(nu) {
		return &PropertyError{Property: "Poisson's ratio", Reason: "must be in (-1, 0.5)"}
	}
	if d := m.Props.Density; d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return &PropertyError{Property: "density", Reason: "must be positive"}
	}
	return nil
}

// clone returns a copy of the material.
func (m *Material) clone() *Material {
	c := *m
	return &c
}

// StressState selects the constitutive relation assembled by Constitutive.
type StressState uint8

const (
	PlaneStress StressState = iota
	PlaneStrain
	ThreeDimensional
	Axisymmetric
)

// Constitutive assembles the elasticity matrix D for the requested stress
// state. Only linear elastic isotropic materials are supported.
func (m *Material) Constitutive(state StressState) (*mat.Dense, error) {
	if m.Kind != LinearElastic {
		return nil, Unsupported("constitutive matrix for " + m.Kind.String())
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	e, nu := m.Props.YoungModulus, m.Props.PoissonRatio

	switch state {
	case PlaneStress:
		f := e / (1.0 - nu*nu)
		d := mat.NewDense(3, 3, nil)
		d.Set(0, 0, f)
		d.Set(1, 1, f)
		d.Set(0, 1, f*nu)
		d.Set(1, 0, f*nu)
		d.Set(2, 2, f*(1.0-nu)/2.0)
		return d, nil

	case PlaneStrain:
		f := e / ((1.0 + nu) * (1.0 - 2.0*nu))
		d := mat.NewDense(3, 3, nil)
		d.Set(0, 0, f*(1.0-nu))
		d.Set(1, 1, f*(1.0-nu))
		d.Set(0, 1, f*nu)
		d.Set(1, 0, f*nu)
		d.Set(2, 2, f*(1.0-2.0*nu)/2.0)
		return d, nil

	case ThreeDimensional:
		f := e / ((1.0 + nu) * (1.0 - 2.0*nu))
		g := e / (2.0 * (1.0 + nu))
		d := mat.NewDense(6, 6, nil)
		for i := 0; i < 3; i++ {
			d.Set(i, i, f*(1.0-nu))
			for j := 0; j < 3; j++ {
				if i != j {
					d.Set(i, j, f*nu)
				}
			}
			d.Set(i+3, i+3, g)
		}
		return d, nil

	case Axisymmetric:
		f := e / ((1.0 + nu) * (1.0 - 2.0*nu))
		d := mat.NewDense(4, 4, nil)
		for i := 0; i < 3; i++ {
			d.Set(i, i, f*(1.0-nu))
			for j := 0; j < 3; j++ {
				if i != j {
					d.Set(i, j, f*nu)
				}
			}
		}
		d.Set(3, 3, f*(1.0-2.0*nu)/2.0)
		return d, nil
	}
	return nil, Unsupported("stress state")
}
