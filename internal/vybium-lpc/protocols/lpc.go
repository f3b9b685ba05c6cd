package protocols

import (
	"fmt"

	"github.com/vybium/vybium-lpc/internal/vybium-lpc/core"
	"github.com/vybium/vybium-lpc/internal/vybium-lpc/utils"
)

// LPCParams configures the batched list polynomial commitment
type LPCParams[E any] struct {
	FRI *FRIParams[E]
	// Lambda is the number of FRI queries
	Lambda int
	// Combine merges all quotients into one FRI column with powers of a transcript challenge
	Combine bool
	// IndependentRepetitions runs Lambda one-query FRI instances instead of one instance with Lambda queries
	IndependentRepetitions bool
}

// Validate checks the FRI parameters and the repetition count
func (p *LPCParams[E]) Validate() error {
	if p.FRI == nil {
		return fmt.Errorf("missing FRI parameters: %w", ErrInvalidParams)
	}
	if p.Lambda < 1 {
		return fmt.Errorf("lambda %d: %w", p.Lambda, ErrInvalidParams)
	}
	return p.FRI.Validate()
}

// Commit evaluates the polynomials over D0 and commits to them in one tree
func Commit[E any](params *LPCParams[E], polys []*core.Polynomial[E]) (*Precommitment[E], error) {
	return CommitPolynomials(params.FRI, polys)
}

// CommitDFS commits to polynomials already given by their values over D0
func CommitDFS[E any](params *LPCParams[E], polys []*core.PolynomialDFS[E]) (*Precommitment[E], error) {
	d0 := params.FRI.Domains[0]
	columns := make([][]E, len(polys))
	for i, p := range polys {
		if !p.Domain().Equal(d0) {
			return nil, fmt.Errorf("polynomial %d is given over %d points instead of D0 (%d): %w",
				i, p.Size(), d0.Size, core.ErrDomainMismatch)
		}
		columns[i] = p.Values()
	}
	return CommitColumns(params.FRI, columns)
}

// ProveEval proves that polys[i] takes the values returned in the proof at evaluationPoints[i].
// pre must be the commitment of polys.
func ProveEval[E any](evaluationPoints [][]E, pre *Precommitment[E], polys []*core.Polynomial[E], params *LPCParams[E], tr *utils.Transcript) (*LPCProof[E], error) {
	if len(polys) == 0 {
		return nil, fmt.Errorf("no polynomials to open: %w", ErrShapeMismatch)
	}
	if len(evaluationPoints) != len(polys) || len(polys) != len(pre.Columns) {
		return nil, fmt.Errorf("%d point sets, %d polynomials and %d committed columns: %w",
			len(evaluationPoints), len(polys), len(pre.Columns), ErrShapeMismatch)
	}
	f := params.FRI.Field
	d0 := params.FRI.Domains[0]

	root := pre.Root()
	tr.Absorb(root)

	z := make([][]E, len(polys))
	quotients := make([]*core.Polynomial[E], len(polys))
	for i, g := range polys {
		points := evaluationPoints[i]
		for _, pt := range points {
			if d0.Contains(pt) {
				return nil, fmt.Errorf("polynomial %d point %s: %w", i, f.String(pt), ErrPointInDomain)
			}
		}
		z[i] = make([]E, len(points))
		for j, pt := range points {
			z[i][j] = g.Eval(pt)
		}
		q, err := quotient(f, g, points, z[i])
		if err != nil {
			return nil, fmt.Errorf("polynomial %d: %w", i, err)
		}
		quotients[i] = q
	}
	absorbClaims(tr, f, evaluationPoints, z)

	columns, err := evaluateAll(d0, degreeCorrected(quotients, evaluationPoints))
	if err != nil {
		return nil, err
	}
	if params.Combine {
		theta := utils.ChallengeField(tr, f)
		columns = [][]E{combineColumns(f, columns, theta)}
	}

	proof := &LPCProof[E]{Z: z, Root: root}
	if params.IndependentRepetitions {
		for rep := 0; rep < params.Lambda; rep++ {
			fri, err := ProveFRI(params.FRI, pre, columns, 1, tr)
			if err != nil {
				return nil, fmt.Errorf("repetition %d: %w", rep, err)
			}
			proof.FRI = append(proof.FRI, fri)
		}
		return proof, nil
	}
	fri, err := ProveFRI(params.FRI, pre, columns, params.Lambda, tr)
	if err != nil {
		return nil, err
	}
	proof.FRI = []*FRIProof[E]{fri}
	return proof, nil
}

// ProveEvalShared opens every polynomial at the same points
func ProveEvalShared[E any](points []E, pre *Precommitment[E], polys []*core.Polynomial[E], params *LPCParams[E], tr *utils.Transcript) (*LPCProof[E], error) {
	return ProveEval(sharedPoints(points, len(polys)), pre, polys, params, tr)
}

// ProveEvalDFS is ProveEval for polynomials held in evaluation form
func ProveEvalDFS[E any](evaluationPoints [][]E, pre *Precommitment[E], polys []*core.PolynomialDFS[E], params *LPCParams[E], tr *utils.Transcript) (*LPCProof[E], error) {
	coeffs := make([]*core.Polynomial[E], len(polys))
	for i, p := range polys {
		c, err := p.Coefficients()
		if err != nil {
			return nil, fmt.Errorf("polynomial %d: %w", i, err)
		}
		coeffs[i] = c
	}
	return ProveEval(evaluationPoints, pre, coeffs, params, tr)
}

// VerifyEval checks an evaluation proof against the points it was produced for
func VerifyEval[E any](evaluationPoints [][]E, proof *LPCProof[E], params *LPCParams[E], tr *utils.Transcript) bool {
	if proof == nil || len(proof.Z) != len(evaluationPoints) || len(evaluationPoints) == 0 {
		return false
	}
	f := params.FRI.Field

	// U interpolates the claims and V vanishes on the points
	us := make([]*core.Polynomial[E], len(evaluationPoints))
	vs := make([]*core.Polynomial[E], len(evaluationPoints))
	for i, points := range evaluationPoints {
		if len(proof.Z[i]) != len(points) {
			return false
		}
		u, err := core.Interpolate(f, points, proof.Z[i])
		if err != nil {
			return false
		}
		us[i] = u
		vs[i] = core.Vanishing(f, points)
	}

	tr.Absorb(proof.Root)
	absorbClaims(tr, f, evaluationPoints, proof.Z)
	var thetas []E
	if params.Combine {
		thetas = core.Powers(f, utils.ChallengeField(tr, f), 2*len(evaluationPoints))
	}

	reducer := func(_ int, x E, leaf []E) ([]E, bool) {
		if len(leaf) != len(us) {
			return nil, false
		}
		qs := make([]E, 2*len(leaf))
		for i, value := range leaf {
			denominator := vs[i].Eval(x)
			if f.IsZero(denominator) {
				return nil, false
			}
			q := f.Mul(f.Sub(value, us[i].Eval(x)), f.Inverse(denominator))
			qs[2*i] = q
			qs[2*i+1] = f.Mul(f.Exp(x, uint64(len(evaluationPoints[i]))), q)
		}
		if thetas == nil {
			return qs, true
		}
		acc := f.Zero()
		for i, q := range qs {
			acc = f.Add(acc, f.Mul(thetas[i], q))
		}
		return []E{acc}, true
	}

	repetitions, queries := 1, params.Lambda
	if params.IndependentRepetitions {
		repetitions, queries = params.Lambda, 1
	}
	if len(proof.FRI) != repetitions {
		return false
	}
	for _, fri := range proof.FRI {
		if !VerifyFRI(params.FRI, proof.Root, reducer, fri, queries, tr) {
			return false
		}
	}
	return true
}

// VerifyEvalShared mirrors ProveEvalShared
func VerifyEvalShared[E any](points []E, proof *LPCProof[E], params *LPCParams[E], tr *utils.Transcript) bool {
	if proof == nil {
		return false
	}
	return VerifyEval(sharedPoints(points, len(proof.Z)), proof, params, tr)
}

// quotient returns (g - U) / V where U interpolates z over points and V vanishes on points
func quotient[E any](f core.Field[E], g *core.Polynomial[E], points, z []E) (*core.Polynomial[E], error) {
	u, err := core.Interpolate(f, points, z)
	if err != nil {
		return nil, err
	}
	return g.Sub(u).Div(core.Vanishing(f, points))
}

// degreeCorrected returns Q_i and x^k_i * Q_i for every quotient, k_i being the number of points of
// polynomial i. deg Q_i <= MaxDegree - k_i iff both columns stay within MaxDegree.
func degreeCorrected[E any](quotients []*core.Polynomial[E], evaluationPoints [][]E) []*core.Polynomial[E] {
	out := make([]*core.Polynomial[E], 0, 2*len(quotients))
	for i, q := range quotients {
		out = append(out, q, q.ShiftUp(len(evaluationPoints[i])))
	}
	return out
}

func absorbClaims[E any](tr *utils.Transcript, f core.Field[E], points, z [][]E) {
	for i := range points {
		utils.AbsorbElements(tr, f, points[i]...)
		utils.AbsorbElements(tr, f, z[i]...)
	}
}

// combineColumns returns sum theta^i * columns[i]
func combineColumns[E any](f core.Field[E], columns [][]E, theta E) []E {
	thetas := core.Powers(f, theta, len(columns))
	out := make([]E, len(columns[0]))
	core.ParallelizeAbove(len(out), func(start, end int) {
		for pos := start; pos < end; pos++ {
			acc := f.Zero()
			for i, col := range columns {
				acc = f.Add(acc, f.Mul(thetas[i], col[pos]))
			}
			out[pos] = acc
		}
	})
	return out
}

func sharedPoints[E any](points []E, n int) [][]E {
	out := make([][]E, n)
	for i := range out {
		out[i] = points
	}
	return out
}
