package linalg

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// ParallelThreshold is the contribution count above which scatter assembly
// fans out across workers.
const ParallelThreshold = 100

// Contribution is one element's share of the global matrix: a local matrix
// and the global index of each of its rows/columns.
type Contribution struct {
	Indices []int
	Matrix  *mat.Dense
}

// AssembleGlobal scatter-adds element contributions into a fresh numDofs ×
// numDofs global matrix. Entries touched by several elements accumulate
// additively, so the result is independent of contribution order. Small sets
// assemble sequentially; larger ones are distributed over workers that take a
// coarse lock on the whole matrix for each scatter-add.
func AssembleGlobal(contributions []Contribution, numDofs int) *mat.Dense {
	global := mat.NewDense(numDofs, numDofs, nil)
	if len(contributions) > ParallelThreshold {
		assembleParallel(global, contributions)
		return global
	}
	for _, c := range contributions {
		scatterAdd(global, c)
	}
	return global
}

func assembleParallel(global *mat.Dense, contributions []Contribution) {
	workers := runtime.NumCPU()
	if workers > len(contributions) {
		workers = len(contributions)
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	work := make(chan Contribution)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for c := range work {
				mu.Lock()
				scatterAdd(global, c)
				mu.Unlock()
			}
		}()
	}
	for _, c := range contributions {
		work <- c
	}
	close(work)
	wg.Wait()
}

// scatterAdd accumulates one local matrix at the cross product of its global
// indices. Callers in the parallel path must hold the matrix lock.
func scatterAdd(global *mat.Dense, c Contribution) {
	for i, gi := range c.Indices {
		for j, gj := range c.Indices {
			global.Set(gi, gj, global.At(gi, gj)+c.Matrix.At(i, j))
		}
	}
}
