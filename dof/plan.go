// Package dof decides the global degree-of-freedom numbering for a model.
//
// Two schemes exist. Models built only from planar families (at most 3 DOFs
// per node) are numbered compactly: index = nodeID·stride + offset, with the
// stride equal to the largest per-node DOF count any element demands. Any
// spatial family switches the whole model to the traditional 6-DOF-per-node
// scheme: index = nodeID·6 + DOF offset, leaving unused DOFs as structurally
// empty rows. A Plan is computed once per model and shared by stiffness,
// mass, load and constraint assembly, so every consumer agrees on where each
// DOF lives.
package dof

import "github.com/strandeng/strand/model"

// Plan is the frozen DOF numbering for one model.
type Plan struct {
	compact bool
	stride  int
	total   int
	active  map[int]bool
}

// localDofs returns the DOF identities of one node of the family, in the
// row order of the element's local matrices.
func localDofs(t model.ElementType) []model.Dof {
	switch t {
	case model.Truss2D:
		return []model.Dof{model.Ux, model.Uy}
	case model.Truss3D, model.Solid, model.Plate:
		return []model.Dof{model.Ux, model.Uy, model.Uz}
	case model.Beam2D, model.Frame2D:
		return []model.Dof{model.Ux, model.Uy, model.Rz}
	case model.Beam3D, model.Frame3D, model.Shell:
		return model.AllDofs()
	}
	return nil
}

// NewPlan derives the numbering scheme for a model.
func NewPlan(m *model.Model) *Plan {
	is2D := true
	stride := 0
	for _, e := range m.Elements {
		if e.Type.Spatial() {
			is2D = false
		}
		if d := e.Type.DofsPerNode(); d > stride {
			stride = d
		}
	}

	p := &Plan{active: make(map[int]bool)}
	if is2D && stride <= 3 && stride > 0 {
		p.compact = true
		p.stride = stride
		maxNode := -1
		for id := range m.Nodes {
			if id > maxNode {
				maxNode = id
			}
		}
		p.total = (maxNode + 1) * stride
	} else {
		p.stride = 6
	}

	// Element-coupled DOFs. In the traditional scheme the numbering extent is
	// the highest DOF any element, load or constraint touches.
	maxIndex := -1
	for _, e := range m.Elements {
		for _, idx := range p.ElementIndices(e) {
			p.active[idx] = true
			if idx > maxIndex {
				maxIndex = idx
			}
		}
	}
	if !p.compact {
		for _, l := range m.Loads {
			if l.Kind != model.NodalForce {
				continue
			}
			if idx, ok := p.NodalIndex(l.Node, l.Dof); ok && idx > maxIndex {
				maxIndex = idx
			}
		}
		for _, c := range m.Constraints {
			if c.Kind != model.Nodal {
				continue
			}
			for _, dc := range c.Dofs {
				if idx, ok := p.NodalIndex(c.Node, dc.Dof); ok && idx > maxIndex {
					maxIndex = idx
				}
			}
		}
		p.total = maxIndex + 1
	}

	return p
}

// Compact reports whether the compact planar scheme is in use.
func (p *Plan) Compact() bool { return p.compact }

// Stride returns the per-node index stride of the scheme.
func (p *Plan) Stride() int { return p.stride }

// TotalDofs returns the size of the assembled global system.
func (p *Plan) TotalDofs() int { return p.total }

// Applicable reports whether the DOF exists in the model's scheme. In a
// purely translational planar model only Ux and Uy exist; adding bending
// members admits Rz. Spatial models carry all six.
func (p *Plan) Applicable(d model.Dof) bool {
	if !p.compact {
		return true
	}
	switch p.stride {
	case 2:
		return d == model.Ux || d == model.Uy
	default:
		return d == model.Ux || d == model.Uy || d == model.Rz
	}
}

// NodalIndex maps a (node, DOF) pair to its global index. The second return
// is false when the DOF does not exist in the scheme.
func (p *Plan) NodalIndex(node int, d model.Dof) (int, bool) {
	if !p.compact {
		return node*6 + int(d), true
	}
	if !p.Applicable(d) {
		return 0, false
	}
	offset := int(d)
	if d == model.Rz {
		offset = 2 // rotation sits after the two translations
	}
	return node*p.stride + offset, true
}

// ElementIndices maps every local DOF of the element to its global index, in
// local matrix row order.
func (p *Plan) ElementIndices(e *model.Element) []int {
	dofs := localDofs(e.Type)
	indices := make([]int, 0, len(e.Nodes)*len(dofs))
	for _, node := range e.Nodes {
		for _, d := range dofs {
			idx, ok := p.NodalIndex(node, d)
			if !ok {
				// Cannot happen: the stride is at least as wide as any
				// element family that selected the compact scheme.
				continue
			}
			indices = append(indices, idx)
		}
	}
	return indices
}

// Active reports whether any element couples the global DOF. Constraints on
// inactive DOFs are skipped so the penalty terms cannot corrupt rows no
// element contributes to.
func (p *Plan) Active(index int) bool { return p.active[index] }

// ActiveCount returns the number of element-coupled DOFs.
func (p *Plan) ActiveCount() int { return len(p.active) }
