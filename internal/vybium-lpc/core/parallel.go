package core

import (
	"runtime"
	"sync"
)

// parallelThreshold is the iteration count below which work runs inline
const parallelThreshold = 1 << 10

// Parallelize process in parallel the work function.
// work receives half-open [start, end) ranges covering [0, nbIterations) exactly once.
func Parallelize(nbIterations int, work func(int, int), maxCpus ...int) {
	if nbIterations <= 0 {
		return
	}

	nbTasks := runtime.NumCPU()
	if len(maxCpus) == 1 && maxCpus[0] > 0 {
		nbTasks = maxCpus[0]
	}
	nbIterationsPerCpus := nbIterations / nbTasks

	// more CPUs than tasks: a CPU will work on exactly one iteration
	if nbIterationsPerCpus < 1 {
		nbIterationsPerCpus = 1
		nbTasks = nbIterations
	}

	var wg sync.WaitGroup

	extraTasks := nbIterations - (nbTasks * nbIterationsPerCpus)
	extraTasksOffset := 0

	for i := 0; i < nbTasks; i++ {
		wg.Add(1)
		_start := i*nbIterationsPerCpus + extraTasksOffset
		_end := _start + nbIterationsPerCpus
		if extraTasks > 0 {
			_end++
			extraTasks--
			extraTasksOffset++
		}
		go func() {
			work(_start, _end)
			wg.Done()
		}()
	}

	wg.Wait()
}

// ParallelizeAbove runs work inline for small inputs and through Parallelize otherwise
func ParallelizeAbove(nbIterations int, work func(int, int)) {
	if nbIterations < parallelThreshold {
		work(0, nbIterations)
		return
	}
	Parallelize(nbIterations, work)
}
