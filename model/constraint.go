package model

// ConstraintKind identifies the constraint variant. Only Nodal constraints
// are enforced by the solvers (penalty method); the multi-point variants are
// modeled and validated but skipped with a diagnostic during assembly.
type ConstraintKind uint8

const (
	Nodal ConstraintKind = iota
	RigidLink
	EqualDisplacement
	LinearEquation
)

func (k ConstraintKind) String() string {
	switch k {
	case Nodal:
		return "Nodal"
	case RigidLink:
		return "RigidLink"
	case EqualDisplacement:
		return "EqualDisplacement"
	case LinearEquation:
		return "LinearEquation"
	}
	return "ConstraintKind(?)"
}

// LinearTerm is one coefficient·DOF term of a general linear constraint
// equation Σ coefficient·DOF = RHS.
type LinearTerm struct {
	Node        int
	Dof         Dof
	Coefficient float64
}

// Constraint restricts the motion of one or more nodes.
type Constraint struct {
	ID   int
	Kind ConstraintKind

	// Nodal
	Node  int
	Dofs  []DofConstraint

	// RigidLink
	Master     int
	Slaves     []int
	LinkedDofs []Dof

	// EqualDisplacement
	Nodes []int
	Dof   Dof

	// LinearEquation
	Terms []LinearTerm
	RHS   float64
}

// NewNodalConstraint prescribes the listed DOF values at one node.
func NewNodalConstraint(id, node int, dofs []DofConstraint) *Constraint {
	return &Constraint{ID: id, Kind: Nodal, Node: node, Dofs: dofs}
}

// FixedSupport constrains all six DOFs of a node to zero.
func FixedSupport(id, node int) *Constraint {
	dofs := make([]DofConstraint, 0, 6)
	for _, d := range AllDofs() {
		dofs = append(dofs, FixedDof(d))
	}
	return NewNodalConstraint(id, node, dofs)
}

// PinnedSupport constrains the three translations, leaving rotations free.
func PinnedSupport(id, node int) *Constraint {
	dofs := make([]DofConstraint, 0, 3)
	for _, d := range Translational() {
		dofs = append(dofs, FixedDof(d))
	}
	return NewNodalConstraint(id, node, dofs)
}

// RollerSupport constrains a single translation.
func RollerSupport(id, node int, d Dof) *Constraint {
	return NewNodalConstraint(id, node, []DofConstraint{FixedDof(d)})
}

// PrescribedDisplacement prescribes a non-zero value for one DOF.
func PrescribedDisplacement(id, node int, d Dof, value float64) *Constraint {
	return NewNodalConstraint(id, node, []DofConstraint{PrescribedDof(d, value)})
}

// SymmetryX constrains the DOFs eliminated by a YZ symmetry plane.
func SymmetryX(id, node int) *Constraint {
	return NewNodalConstraint(id, node, []DofConstraint{
		FixedDof(Ux), FixedDof(Ry), FixedDof(Rz),
	})
}

// SymmetryY constrains the DOFs eliminated by an XZ symmetry plane.
func SymmetryY(id, node int) *Constraint {
	return NewNodalConstraint(id, node, []DofConstraint{
		FixedDof(Uy), FixedDof(Rx), FixedDof(Rz),
	})
}

// SymmetryZ constrains the DOFs eliminated by an XY symmetry plane.
func SymmetryZ(id, node int) *Constraint {
	return NewNodalConstraint(id, node, []DofConstraint{
		FixedDof(Uz), FixedDof(Rx), FixedDof(Ry),
	})
}

// NewRigidLink couples the linked DOFs of the slave nodes to the master.
func NewRigidLink(id, master int, slaves []int, linked []Dof) *Constraint {
	return &Constraint{ID: id, Kind: RigidLink, Master: master, Slaves: slaves, LinkedDofs: linked}
}

// NewEqualDisplacement forces one DOF to be equal across the listed nodes.
func NewEqualDisplacement(id int, nodes []int, d Dof) *Constraint {
	return &Constraint{ID: id, Kind: EqualDisplacement, Nodes: nodes, Dof: d}
}

// NewLinearEquation builds a general multi-point constraint.
func NewLinearEquation(id int, terms []LinearTerm, rhs float64) *Constraint {
	return &Constraint{ID: id, Kind: LinearEquation, Terms: terms, RHS: rhs}
}

// Validate checks the populated variant.
func (c *Constraint) Validate() error {
	switch c.Kind {
	case Nodal:
		if len(c.Dofs) == 0 {
			return invalidf("constraint %d has no DOF prescriptions", c.ID)
		}
		for _, dc := range c.Dofs {
			if !isFinite(dc.Value) {
				return invalidf("constraint %d has non-finite prescribed value", c.ID)
			}
		}
	case RigidLink:
		if len(c.Slaves) == 0 {
			return invalidf("rigid link %d has no slave nodes", c.ID)
		}
	case EqualDisplacement:
		if len(c.Nodes) < 2 {
			return invalidf("equal-displacement constraint %d needs at least 2 nodes", c.ID)
		}
	case LinearEquation:
		if len(c.Terms) == 0 {
			return invalidf("linear constraint %d has no terms", c.ID)
		}
		if !isFinite(c.RHS) {
			return invalidf("linear constraint %d has non-finite RHS", c.ID)
		}
		for _, t := range c.Terms {
			if !isFinite(t.Coefficient) {
				return invalidf("linear constraint %d has non-finite coefficient", c.ID)
			}
		}
	}
	return nil
}

// clone returns a deep copy of the constraint.
func (c *Constraint) clone() *Constraint {
	cp := *c
	cp.Dofs = append([]DofConstraint(nil), c.Dofs...)
	cp.Slaves = append([]int(nil), c.Slaves...)
	cp.LinkedDofs = append([]Dof(nil), c.LinkedDofs...)
	cp.Nodes = append([]int(nil), c.Nodes...)
	cp.Terms = append([]LinearTerm(nil), c.Terms...)
	return &cp
}
