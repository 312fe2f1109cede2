// Package assemble turns a structural model into global system matrices: it
// evaluates every element formulation, scatters the contributions through
// the model's DOF numbering plan, builds the load vector, and enforces
// nodal boundary conditions with the penalty method. One Assembler carries
// one model and one frozen plan, so stiffness, mass, load and constraint
// indices always agree.
package assemble

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/strandeng/strand/dof"
	"github.com/strandeng/strand/element"
	"github.com/strandeng/strand/linalg"
	"github.com/strandeng/strand/model"
)

// Assembler builds global matrices for one model snapshot.
type Assembler struct {
	m    *model.Model
	plan *dof.Plan
}

// New computes the DOF numbering plan for the model and returns an assembler
// bound to it.
func New(m *model.Model) *Assembler {
	return &Assembler{m: m, plan: dof.NewPlan(m)}
}

// Plan exposes the numbering plan shared by every assembly pass.
func (a *Assembler) Plan() *dof.Plan { return a.plan }

// Stiffness assembles the global stiffness matrix from all element global
// stiffness matrices.
func (a *Assembler) Stiffness() (*mat.Dense, error) {
	return a.assembleMatrix(element.GlobalStiffness, "stiffness")
}

// Mass assembles the global mass matrix. Every element material must carry a
// density.
func (a *Assembler) Mass() (*mat.Dense, error) {
	return a.assembleMatrix(element.MassMatrix, "mass")
}

func (a *Assembler) assembleMatrix(
	compute func(*model.Element, *model.Material, []*model.Node) (*mat.Dense, error),
	kind string,
) (*mat.Dense, error) {
	total := a.plan.TotalDofs()
	slog.Info("assembling global matrix",
		"kind", kind, "dofs", total, "elements", len(a.m.Elements))

	contributions := make([]linalg.Contribution, 0, len(a.m.Elements))
	for _, id := range a.m.ElementIDs() {
		e := a.m.Elements[id]
		nodes, err := a.m.ElementNodes(e)
		if err != nil {
			return nil, err
		}
		mt, err := a.m.Material(e.Material)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", e.ID, err)
		}
		local, err := compute(e, mt, nodes)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", e.ID, err)
		}
		contributions = append(contributions, linalg.Contribution{
			Indices: a.plan.ElementIndices(e),
			Matrix:  local,
		})
	}
	return linalg.AssembleGlobal(contributions, total), nil
}

// Loads assembles the global load vector. Only nodal forces contribute
// numerically; the remaining load kinds are recognized and skipped with a
// warning so dropped engineering input stays visible.
func (a *Assembler) Loads() (*mat.VecDense, error) {
	total := a.plan.TotalDofs()
	f := mat.NewVecDense(total, nil)
	slog.Info("assembling load vector", "loads", len(a.m.Loads))

	for _, l := range a.m.Loads {
		switch l.Kind {
		case model.NodalForce:
			if _, err := a.m.Node(l.Node); err != nil {
				return nil, fmt.Errorf("load %d: %w", l.ID, err)
			}
			idx, ok := a.plan.NodalIndex(l.Node, l.Dof)
			if !ok {
				slog.Warn("skipping load on DOF absent from numbering scheme",
					"load", l.ID, "node", l.Node, "dof", l.Dof.String())
				continue
			}
			if idx >= total {
				continue
			}
			f.SetVec(idx, f.AtVec(idx)+l.Magnitude*l.Factor)
		default:
			slog.Warn("load kind not assembled; skipping",
				"load", l.ID, "kind", l.Kind.String())
		}
	}
	return f, nil
}

// ApplyConstraints enforces nodal constraints on the assembled system by the
// penalty method and then pins any DOF left entirely uncoupled. It returns
// the auto-pinned DOF indices. Constraints on DOFs that are inapplicable in
// the model's numbering scheme, or untouched by any element, are skipped
// with a warning so penalty terms never land on rows no element owns.
func (a *Assembler) ApplyConstraints(k *mat.Dense, f *mat.VecDense) ([]int, error) {
	var dofs []int
	var values []float64
	n, _ := k.Dims()

	add := func(owner string, id, node int, dc model.DofConstraint) {
		if !a.plan.Applicable(dc.Dof) {
			slog.Warn("skipping constraint on DOF absent from numbering scheme",
				owner, id, "node", node, "dof", dc.Dof.String())
			return
		}
		idx, ok := a.plan.NodalIndex(node, dc.Dof)
		if !ok {
			return
		}
		if !a.plan.Active(idx) || idx >= n {
			slog.Warn("skipping constraint on DOF no element couples",
				owner, id, "node", node, "dof", dc.Dof.String())
			return
		}
		dofs = append(dofs, idx)
		values = append(values, dc.Value)
	}

	for _, id := range a.m.NodeIDs() {
		node := a.m.Nodes[id]
		for _, dc := range node.Constraints {
			add("nodeConstraint", node.ID, node.ID, dc)
		}
	}
	for _, c := range a.m.Constraints {
		switch c.Kind {
		case model.Nodal:
			for _, dc := range c.Dofs {
				add("constraint", c.ID, c.Node, dc)
			}
		default:
			slog.Warn("constraint kind not enforced; skipping",
				"constraint", c.ID, "kind", c.Kind.String())
		}
	}

	slog.Info("applying constraints", "prescribedDofs", len(dofs))
	if err := linalg.ApplyPenalties(k, f, dofs, values); err != nil {
		return nil, err
	}

	pinned := linalg.RestrainUncoupled(k, f)
	if len(pinned) > 0 {
		slog.Warn("auto-restrained uncoupled DOFs; check for unconnected nodes",
			"count", len(pinned), "dofs", pinned)
	}
	return pinned, nil
}

// PrescribedCount returns how many individual DOF prescriptions the model
// carries, across nodal constraints and node-attached constraints. Solvers
// use it to reject unconstrained (mechanism) models before assembly.
func PrescribedCount(m *model.Model) int {
	count := 0
	for _, n := range m.Nodes {
		count += len(n.Constraints)
	}
	for _, c := range m.Constraints {
		if c.Kind == model.Nodal {
			count += len(c.Dofs)
		}
	}
	return count
}
