package model

import "math"

// LoadKind identifies the load variant. Only NodalForce loads are assembled
// into the load vector; the remaining kinds are modeled and validated but
// skipped with a diagnostic during assembly.
type LoadKind uint8

const (
	NodalForce LoadKind = iota
	Distributed
	Pressure
	Thermal
	Gravity
	Seismic
)

func (k LoadKind) String() string {
	switch k {
	case NodalForce:
		return "NodalForce"
	case Distributed:
		return "Distributed"
	case Pressure:
		return "Pressure"
	case Thermal:
		return "Thermal"
	case Gravity:
		return "Gravity"
	case Seismic:
		return "Seismic"
	}
	return "LoadKind(?)"
}

// Load is an applied action on the model. The populated fields depend on the
// kind; Factor scales the magnitude multiplicatively and Case names the load
// case the action belongs to.
type Load struct {
	ID     int
	Kind   LoadKind
	Case   string
	Factor float64

	// NodalForce
	Node      int
	Dof       Dof
	Magnitude float64 // also pressure magnitude and distributed intensity

	// Distributed
	Element   int // also pressure and thermal target
	Direction [3]float64

	// Thermal
	TemperatureChange float64

	// Gravity
	Acceleration [3]float64

	// Seismic
	History  [][3]float64
	TimeStep float64
}

// NewNodalForce builds a concentrated force on one nodal DOF.
func NewNodalForce(id, node int, dof Dof, magnitude float64, loadCase string) *Load {
	return &Load{ID: id, Kind: NodalForce, Case: loadCase, Factor: 1.0,
		Node: node, Dof: dof, Magnitude: magnitude}
}

// NewDistributed builds a distributed line load on an element.
func NewDistributed(id, element int, direction [3]float64, magnitude float64, loadCase string) *Load {
	return &Load{ID: id, Kind: Distributed, Case: loadCase, Factor: 1.0,
		Element: element, Direction: direction, Magnitude: magnitude}
}

// NewPressure builds a pressure load on an element face.
func NewPressure(id, element int, magnitude float64, loadCase string) *Load {
	return &Load{ID: id, Kind: Pressure, Case: loadCase, Factor: 1.0,
		Element: element, Magnitude: magnitude}
}

// NewThermal builds a uniform temperature change on an element.
func NewThermal(id, element int, temperatureChange float64, loadCase string) *Load {
	return &Load{ID: id, Kind: Thermal, Case: loadCase, Factor: 1.0,
		Element: element, TemperatureChange: temperatureChange}
}

// NewGravity builds a body acceleration applied to the whole model.
func NewGravity(id int, acceleration [3]float64, loadCase string) *Load {
	return &Load{ID: id, Kind: Gravity, Case: loadCase, Factor: 1.0,
		Acceleration: acceleration}
}

// NewSeismic builds a base-acceleration time history.
func NewSeismic(id int, history [][3]float64, timeStep float64, loadCase string) *Load {
	return &Load{ID: id, Kind: Seismic, Case: loadCase, Factor: 1.0,
		History: history, TimeStep: timeStep}
}

// WithFactor sets the multiplicative load factor and returns the load.
func (l *Load) WithFactor(factor float64) *Load {
	l.Factor = factor
	return l
}

// Validate checks the numeric fields of the populated variant.
func (l *Load) Validate() error {
	switch l.Kind {
	case NodalForce, Pressure:
		if !isFinite(l.Magnitude) {
			return invalidf("load %d has non-finite magnitude", l.ID)
		}
	case Distributed:
		if !isFinite(l.Magnitude) {
			return invalidf("load %d has non-finite magnitude", l.ID)
		}
		if norm3(l.Direction) == 0 {
			return invalidf("load %d has zero direction vector", l.ID)
		}
	case Thermal:
		if !isFinite(l.TemperatureChange) {
			return invalidf("load %d has non-finite temperature change", l.ID)
		}
	case Gravity:
		for _, a := range l.Acceleration {
			if !isFinite(a) {
				return invalidf("load %d has non-finite acceleration", l.ID)
			}
		}
	case Seismic:
		if l.TimeStep <= 0 || !isFinite(l.TimeStep) {
			return invalidf("load %d has invalid time step", l.ID)
		}
		if len(l.History) == 0 {
			return invalidf("load %d has empty acceleration history", l.ID)
		}
	}
	return nil
}

// clone returns a deep copy of the load.
func (l *Load) clone() *Load {
	c := *l
	c.History = append([][3]float64(nil), l.History...)
	return &c
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func norm3(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
