package model

// ElementType identifies the structural element family.
type ElementType uint8

const (
	Truss2D ElementType = iota // 2-node axial member, planar
	Truss3D                    // 2-node axial member, spatial
	Beam2D                     // 2-node Euler-Bernoulli beam, planar
	Beam3D                     // 2-node space beam (treated as Frame3D)
	Frame2D                    // 2-node planar frame (treated as Beam2D)
	Frame3D                    // 2-node space frame, 6 DOF per node
	Plate                      // declared, formulation not implemented
	Shell                      // declared, formulation not implemented
	Solid                      // declared, formulation not implemented
)

func (t ElementType) String() string {
	switch t {
	case Truss2D:
		return "Truss2D"
	case Truss3D:
		return "Truss3D"
	case Beam2D:
		return "Beam2D"
	case Beam3D:
		return "Beam3D"
	case Frame2D:
		return "Frame2D"
	case Frame3D:
		return "Frame3D"
	case Plate:
		return "Plate"
	case Shell:
		return "Shell"
	case Solid:
		return "Solid"
	}
	return "ElementType(?)"
}

// DofsPerNode returns the number of DOFs each node of this family carries.
func (t ElementType) DofsPerNode() int {
	switch t {
	case Truss2D:
		return 2
	case Truss3D, Solid, Plate:
		return 3
	case Beam2D, Frame2D:
		return 3
	case Beam3D, Frame3D, Shell:
		return 6
	}
	return 0
}

// NodeCount returns the node count the family expects.
func (t ElementType) NodeCount() int {
	switch t {
	case Truss2D, Truss3D, Beam2D, Beam3D, Frame2D, Frame3D:
		return 2
	case Plate, Shell:
		return 3 // triangular; quads would carry 4
	case Solid:
		return 4 // tetrahedral; hexes would carry 8
	}
	return 0
}

// Spatial reports whether the family demands a full 3-D DOF set. Models
// containing any spatial family are numbered with the traditional 6-DOF
// scheme.
func (t ElementType) Spatial() bool {
	switch t {
	case Truss3D, Beam3D, Frame3D, Shell, Solid:
		return true
	}
	return false
}

// Section holds the cross-section and geometric properties an element may
// carry. All fields are optional; each family checks for the subset it needs.
// Zero is treated as absent, since none of these quantities may be zero for a
// physical section.
type Section struct {
	Area      float64 // cross-sectional area
	InertiaY  float64 // second moment of area about local y
	InertiaZ  float64 // second moment of area about local z
	Torsion   float64 // torsional constant J
	Thickness float64 // plate/shell thickness
	Width     float64 // section width
	Height    float64 // section height
}

// TrussSection builds the section for an axial-only member.
func TrussSection(area float64) Section {
	return Section{Area: area}
}

// BeamSection builds the section for a bending member.
func BeamSection(area, inertiaY, inertiaZ, torsion float64) Section {
	return Section{Area: area, InertiaY: inertiaY, InertiaZ: inertiaZ, Torsion: torsion}
}

// PlateSection builds the section for a surface element.
func PlateSection(thickness float64) Section {
	return Section{Thickness: thickness}
}

// Element connects nodes through a material and a formulation family.
// It holds only integer references; the owning Model resolves them.
type Element struct {
	ID       int
	Type     ElementType
	Nodes    []int
	Material int
	Section  Section
}

// NewElement constructs an element over the given node ids.
func NewElement(id int, t ElementType, nodes []int, material int, section Section) *Element {
	return &Element{ID: id, Type: t, Nodes: nodes, Material: material, Section: section}
}

// TotalDofs returns the element DOF count (nodes × DOFs per node).
func (e *Element) TotalDofs() int {
	return len(e.Nodes) * e.Type.DofsPerNode()
}

// Validate checks the node count against the family.
func (e *Element) Validate() error {
	if len(e.Nodes) == 0 {
		return invalidf("element %d has no nodes", e.ID)
	}
	if want := e.Type.NodeCount(); len(e.Nodes) != want {
		return invalidf("element %d of type %s expects %d nodes, got %d",
			e.ID, e.Type, want, len(e.Nodes))
	}
	return nil
}

// clone returns a deep copy of the element.
func (e *Element) clone() *Element {
	c := *e
	c.Nodes = append([]int(nil), e.Nodes...)
	return &c
}
