package core

import "fmt"

// BatchInverse inverts every element with Montgomery's trick:
// one inversion plus 3(n-1) multiplications.
//
// For elements a, b, c: (abc)^(-1) * (ab) = c^(-1)
func BatchInverse[E any](f Field[E], elements []E) ([]E, error) {
	n := len(elements)
	if n == 0 {
		return []E{}, nil
	}

	for i, elem := range elements {
		if f.IsZero(elem) {
			return nil, fmt.Errorf("cannot invert zero element at index %d: %w", i, ErrDivisionByZero)
		}
	}

	// acc[i] = elements[0] * ... * elements[i]
	acc := make([]E, n)
	acc[0] = elements[0]
	for i := 1; i < n; i++ {
		acc[i] = f.Mul(acc[i-1], elements[i])
	}

	accInv := f.Inverse(acc[n-1])

	results := make([]E, n)
	for i := n - 1; i > 0; i-- {
		results[i] = f.Mul(accInv, acc[i-1])
		accInv = f.Mul(accInv, elements[i])
	}
	results[0] = accInv

	return results, nil
}

// ParallelBatchInverse splits elements into chunks and batch-inverts each chunk concurrently
func ParallelBatchInverse[E any](f Field[E], elements []E) ([]E, error) {
	n := len(elements)
	if n < parallelThreshold {
		return BatchInverse(f, elements)
	}
	for i, elem := range elements {
		if f.IsZero(elem) {
			return nil, fmt.Errorf("cannot invert zero element at index %d: %w", i, ErrDivisionByZero)
		}
	}

	results := make([]E, n)
	Parallelize(n, func(start, end int) {
		// no zeros, so the chunk cannot fail
		chunk, _ := BatchInverse(f, elements[start:end])
		copy(results[start:end], chunk)
	})
	return results, nil
}
