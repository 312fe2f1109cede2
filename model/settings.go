package model

// AnalysisType selects the analysis a solver run performs. Static and Modal
// are functional; TimeHistory validates and then fails unsupported; Buckling
// and NonlinearStatic are declared only.
type AnalysisType uint8

const (
	Static AnalysisType = iota
	Modal
	TimeHistory
	Buckling
	NonlinearStatic
)

func (t AnalysisType) String() string {
	switch t {
	case Static:
		return "Static"
	case Modal:
		return "Modal"
	case TimeHistory:
		return "TimeHistory"
	case Buckling:
		return "Buckling"
	case NonlinearStatic:
		return "NonlinearStatic"
	}
	return "AnalysisType(?)"
}

// SolverFamily selects how the linear system is solved. Sparse is accepted
// but falls back to Direct with a warning.
type SolverFamily uint8

const (
	Direct SolverFamily = iota
	Iterative
	Sparse
)

func (f SolverFamily) String() string {
	switch f {
	case Direct:
		return "Direct"
	case Iterative:
		return "Iterative"
	case Sparse:
		return "Sparse"
	}
	return "SolverFamily(?)"
}

// Settings carries the numerical parameters of an analysis run. Optional
// fields are zero when unset; solvers substitute their own defaults.
type Settings struct {
	Tolerance     float64
	MaxIterations int
	Solver        SolverFamily

	// Modal
	EigenModes int

	// TimeHistory
	TimeStep float64
	Duration float64
}

// DefaultSettings returns the standard analysis settings.
func DefaultSettings() Settings {
	return Settings{
		Tolerance:     1e-6,
		MaxIterations: 100,
		Solver:        Direct,
	}
}
