package model

import "math"

// Dof identifies one nodal degree of freedom: three translations followed by
// three rotations. The integer value is the offset used by the traditional
// 6-DOF-per-node numbering.
type Dof uint8

const (
	Ux Dof = iota // Translation along global X
	Uy            // Translation along global Y
	Uz            // Translation along global Z
	Rx            // Rotation about global X
	Ry            // Rotation about global Y
	Rz            // Rotation about global Z
)

func (d Dof) String() string {
	switch d {
	case Ux:
		return "Ux"
	case Uy:
		return "Uy"
	case Uz:
		return "Uz"
	case Rx:
		return "Rx"
	case Ry:
		return "Ry"
	case Rz:
		return "Rz"
	}
	return "Dof(?)"
}

// Translational returns the three translational DOFs.
func Translational() []Dof { return []Dof{Ux, Uy, Uz} }

// Rotational returns the three rotational DOFs.
func Rotational() []Dof { return []Dof{Rx, Ry, Rz} }

// AllDofs returns every nodal DOF in numbering order.
func AllDofs() []Dof { return []Dof{Ux, Uy, Uz, Rx, Ry, Rz} }

// DofConstraint prescribes the value of a single nodal DOF.
type DofConstraint struct {
	Dof   Dof
	Value float64
}

// FixedDof builds a zero-displacement prescription for the given DOF.
func FixedDof(d Dof) DofConstraint {
	return DofConstraint{Dof: d}
}

// PrescribedDof builds a non-zero prescription for the given DOF.
func PrescribedDof(d Dof, value float64) DofConstraint {
	return DofConstraint{Dof: d, Value: value}
}

// Node is a point in the structural model. Coordinates are global Cartesian.
type Node struct {
	ID      int
	X, Y, Z float64

	// Constraints carried directly on the node; equivalent to a nodal
	// Constraint entry and merged with those during assembly.
	Constraints []DofConstraint
}

// NewNode constructs a node at the given position.
func NewNode(id int, x, y, z float64) *Node {
	return &Node{ID: id, X: x, Y: y, Z: z}
}

// Position returns the node coordinates as an array.
func (n *Node) Position() [3]float64 {
	return [3]float64{n.X, n.Y, n.Z}
}

// AddConstraint appends a DOF prescription to the node.
func (n *Node) AddConstraint(c DofConstraint) {
	n.Constraints = append(n.Constraints, c)
}

// Validate checks that the node coordinates are finite.
func (n *Node) Validate() error {
	for _, v := range []float64{n.X, n.Y, n.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidf("node %d has non-finite coordinates", n.ID)
		}
	}
	return nil
}

// clone returns a deep copy of the node.
func (n *Node) clone() *Node {
	c := *n
	c.Constraints = append([]DofConstraint(nil), n.Constraints...)
	return &c
}
