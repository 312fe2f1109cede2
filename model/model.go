// Package model defines the structural model consumed by the analysis engine:
// nodes, elements, materials, loads, constraints and analysis settings. The
// model owns every entity; elements, loads and constraints reference nodes
// and materials only by integer id. Add-operations validate before insertion
// and reject duplicate ids and dangling references, so a model that was built
// through them is structurally sound by construction.
package model

import (
	"fmt"
	"sort"
)

// Model is the root container handed to solvers. Solvers treat it as
// read-only; callers that mutate a model between runs (parametric loops)
// must work on a Clone.
type Model struct {
	Nodes       map[int]*Node
	Elements    map[int]*Element
	Materials   map[int]*Material
	Loads       []*Load
	Constraints []*Constraint
	Settings    Settings
}

// New returns an empty model with default settings.
func New() *Model {
	return &Model{
		Nodes:     make(map[int]*Node),
		Elements:  make(map[int]*Element),
		Materials: make(map[int]*Material),
		Settings:  DefaultSettings(),
	}
}

// AddNode validates and inserts a node.
func (m *Model) AddNode(n *Node) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if _, ok := m.Nodes[n.ID]; ok {
		return fmt.Errorf("%w: node %d", ErrDuplicateID, n.ID)
	}
	m.Nodes[n.ID] = n
	return nil
}

// AddElement validates and inserts an element, checking that every referenced
// node and the material exist.
func (m *Model) AddElement(e *Element) error {
	if err := e.Validate(); err != nil {
		return err
	}
	for _, id := range e.Nodes {
		if _, ok := m.Nodes[id]; !ok {
			return fmt.Errorf("%w: %d (element %d)", ErrUnknownNode, id, e.ID)
		}
	}
	if _, ok := m.Materials[e.Material]; !ok {
		return fmt.Errorf("%w: %d (element %d)", ErrUnknownMaterial, e.Material, e.ID)
	}
	if _, ok := m.Elements[e.ID]; ok {
		return fmt.Errorf("%w: element %d", ErrDuplicateID, e.ID)
	}
	m.Elements[e.ID] = e
	return nil
}

// AddMaterial validates and inserts a material.
func (m *Model) AddMaterial(mt *Material) error {
	if err := mt.Validate(); err != nil {
		return err
	}
	if _, ok := m.Materials[mt.ID]; ok {
		return fmt.Errorf("%w: material %d", ErrDuplicateID, mt.ID)
	}
	m.Materials[mt.ID] = mt
	return nil
}

// AddLoad validates and appends a load, checking node and element references.
func (m *Model) AddLoad(l *Load) error {
	if err := l.Validate(); err != nil {
		return err
	}
	switch l.Kind {
	case NodalForce:
		if _, ok := m.Nodes[l.Node]; !ok {
			return fmt.Errorf("%w: %d (load %d)", ErrUnknownNode, l.Node, l.ID)
		}
	case Distributed, Pressure, Thermal:
		if _, ok := m.Elements[l.Element]; !ok {
			return fmt.Errorf("%w: %d (load %d)", ErrUnknownElement, l.Element, l.ID)
		}
	}
	m.Loads = append(m.Loads, l)
	return nil
}

// AddConstraint validates and appends a constraint, checking that every
// referenced node exists.
func (m *Model) AddConstraint(c *Constraint) error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch c.Kind {
	case Nodal:
		if _, ok := m.Nodes[c.Node]; !ok {
			return fmt.Errorf("%w: %d (constraint %d)", ErrUnknownNode, c.Node, c.ID)
		}
	case RigidLink:
		for _, id := range append([]int{c.Master}, c.Slaves...) {
			if _, ok := m.Nodes[id]; !ok {
				return fmt.Errorf("%w: %d (constraint %d)", ErrUnknownNode, id, c.ID)
			}
		}
	case EqualDisplacement:
		for _, id := range c.Nodes {
			if _, ok := m.Nodes[id]; !ok {
				return fmt.Errorf("%w: %d (constraint %d)", ErrUnknownNode, id, c.ID)
			}
		}
	case LinearEquation:
		for _, term := range c.Terms {
			if _, ok := m.Nodes[term.Node]; !ok {
				return fmt.Errorf("%w: %d (constraint %d)", ErrUnknownNode, term.Node, c.ID)
			}
		}
	}
	m.Constraints = append(m.Constraints, c)
	return nil
}

// Node resolves a node id.
func (m *Model) Node(id int) (*Node, error) {
	n, ok := m.Nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return n, nil
}

// Element resolves an element id.
func (m *Model) Element(id int) (*Element, error) {
	e, ok := m.Elements[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownElement, id)
	}
	return e, nil
}

// Material resolves a material id.
func (m *Model) Material(id int) (*Material, error) {
	mt, ok := m.Materials[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMaterial, id)
	}
	return mt, nil
}

// ElementNodes resolves the ordered node list of an element.
func (m *Model) ElementNodes(e *Element) ([]*Node, error) {
	nodes := make([]*Node, len(e.Nodes))
	for i, id := range e.Nodes {
		n, err := m.Node(id)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", e.ID, err)
		}
		nodes[i] = n
	}
	return nodes, nil
}

// ElementIDs returns the element ids in ascending order, for deterministic
// iteration over the id-keyed map.
func (m *Model) ElementIDs() []int {
	ids := make([]int, 0, len(m.Elements))
	for id := range m.Elements {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// NodeIDs returns the node ids in ascending order.
func (m *Model) NodeIDs() []int {
	ids := make([]int, 0, len(m.Nodes))
	for id := range m.Nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Validate checks every owned entity and the minimum model contents.
func (m *Model) Validate() error {
	if len(m.Nodes) == 0 {
		return invalidf("model has no nodes")
	}
	if len(m.Elements) == 0 {
		return invalidf("model has no elements")
	}
	for _, n := range m.Nodes {
		if err := n.Validate(); err != nil {
			return err
		}
	}
	for _, e := range m.Elements {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	for _, mt := range m.Materials {
		if err := mt.Validate(); err != nil {
			return err
		}
	}
	for _, l := range m.Loads {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	for _, c := range m.Constraints {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of the model. Solvers never mutate a model;
// Clone exists for parametric and optimization loops that do.
func (m *Model) Clone() *Model {
	c := New()
	c.Settings = m.Settings
	for id, n := range m.Nodes {
		c.Nodes[id] = n.clone()
	}
	for id, e := range m.Elements {
		c.Elements[id] = e.clone()
	}
	for id, mt := range m.Materials {
		c.Materials[id] = mt.clone()
	}
	for _, l := range m.Loads {
		c.Loads = append(c.Loads, l.clone())
	}
	for _, ct := range m.Constraints {
		c.Constraints = append(c.Constraints, ct.clone())
	}
	return c
}

// Summary aggregates model statistics.
type Summary struct {
	Nodes       int
	Elements    int
	Materials   int
	Loads       int
	Constraints int
	Families    []string
}

// Summarize returns counts and the element families present.
func (m *Model) Summarize() Summary {
	seen := make(map[ElementType]bool)
	for _, e := range m.Elements {
		seen[e.Type] = true
	}
	families := make([]string, 0, len(seen))
	for t := range seen {
		families = append(families, t.String())
	}
	sort.Strings(families)
	return Summary{
		Nodes:       len(m.Nodes),
		Elements:    len(m.Elements),
		Materials:   len(m.Materials),
		Loads:       len(m.Loads),
		Constraints: len(m.Constraints),
		Families:    families,
	}
}
