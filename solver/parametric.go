package solver

import (
	"fmt"
	"math"

	"github.com/strandeng/strand/model"
)

// SweepPoint is one evaluation of a parametric sweep: the parameter value,
// the static results for it, and the error if the run failed. Failed points
// do not abort the sweep.
type SweepPoint struct {
	Value   float64
	Results *model.Results
	Err     error
}

// VaryMaterialProperty runs a static analysis per parameter value, cloning
// the model each time and letting apply write the value into the material's
// property bag.
func VaryMaterialProperty(m *model.Model, materialID int, values []float64, apply func(*model.MatProps, float64)) []SweepPoint {
	return sweep(values, func(c *model.Model, v float64) error {
		mt, err := c.Material(materialID)
		if err != nil {
			return err
		}
		apply(&mt.Props, v)
		return mt.Validate()
	}, m)
}

// VaryNodeCoordinate runs a static analysis per parameter value, cloning the
// model each time and letting apply move the node.
func VaryNodeCoordinate(m *model.Model, nodeID int, values []float64, apply func(*model.Node, float64)) []SweepPoint {
	return sweep(values, func(c *model.Model, v float64) error {
		n, err := c.Node(nodeID)
		if err != nil {
			return err
		}
		apply(n, v)
		return n.Validate()
	}, m)
}

func sweep(values []float64, mutate func(*model.Model, float64) error, m *model.Model) []SweepPoint {
	static := NewStatic()
	points := make([]SweepPoint, 0, len(values))
	for _, v := range values {
		c := m.Clone()
		if err := mutate(c, v); err != nil {
			points = append(points, SweepPoint{Value: v, Err: err})
			continue
		}
		res, err := static.Solve(c)
		points = append(points, SweepPoint{Value: v, Results: res, Err: err})
	}
	return points
}

// goldenRatio is (√5−1)/2, the interval reduction factor of the search.
var goldenRatio = (math.Sqrt(5.0) - 1.0) / 2.0

// GoldenSectionSearch minimizes a unimodal objective on [lo, hi] to within
// tol, returning the minimizing argument and its objective value. Objective
// errors abort the search.
func GoldenSectionSearch(objective func(float64) (float64, error), lo, hi, tol float64) (float64, float64, error) {
	if hi <= lo {
		return 0, 0, fmt.Errorf("solver: search interval [%g, %g] is empty", lo, hi)
	}
	a, b := lo, hi
	c := b - goldenRatio*(b-a)
	d := a + goldenRatio*(b-a)
	fc, err := objective(c)
	if err != nil {
		return 0, 0, err
	}
	fd, err := objective(d)
	if err != nil {
		return 0, 0, err
	}

	for b-a > tol {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - goldenRatio*(b-a)
			if fc, err = objective(c); err != nil {
				return 0, 0, err
			}
		} else {
			a, c, fc = c, d, fd
			d = a + goldenRatio*(b-a)
			if fd, err = objective(d); err != nil {
				return 0, 0, err
			}
		}
	}
	x := 0.5 * (a + b)
	fx, err := objective(x)
	if err != nil {
		return 0, 0, err
	}
	return x, fx, nil
}

// MinimizeDisplacement finds the parameter value in [lo, hi] that minimizes
// the model's maximum static displacement, with apply writing each candidate
// value into a clone of the model.
func MinimizeDisplacement(m *model.Model, lo, hi, tol float64, apply func(*model.Model, float64) error) (float64, float64, error) {
	static := NewStatic()
	return GoldenSectionSearch(func(v float64) (float64, error) {
		c := m.Clone()
		if err := apply(c, v); err != nil {
			return 0, err
		}
		res, err := static.Solve(c)
		if err != nil {
			return 0, err
		}
		return res.MaxDisplacement(), nil
	}, lo, hi, tol)
}
