package protocols

import (
	"errors"
	"fmt"

	"github.com/vybium/vybium-lpc/internal/vybium-lpc/core"
	"github.com/vybium/vybium-lpc/internal/vybium-lpc/utils"
)

var (
	// ErrInvalidParams is returned for inconsistent FRI or LPC parameters
	ErrInvalidParams = errors.New("invalid parameters")

	// ErrPointInDomain is returned when an evaluation point lies in D0
	ErrPointInDomain = errors.New("evaluation point lies in the evaluation domain")

	// ErrShapeMismatch is returned when inputs disagree in length
	ErrShapeMismatch = errors.New("input shape mismatch")
)

// FRIParams fixes the domains and folding schedule for FRI.
// Domains[i+1] is Domains[i].Halve(); round j folds StepList[j] times.
type FRIParams[E any] struct {
	Field        core.Field[E]
	Domains      []*core.Domain[E]
	MaxDegree    int
	StepList     []int
	MerkleHasher core.Hasher
}

// NewFRIParams derives the domain chain from the coset offset * <omega> of size 2^logDomainSize
func NewFRIParams[E any](f core.Field[E], logDomainSize, maxDegree int, stepList []int, offset E, h core.Hasher) (*FRIParams[E], error) {
	if logDomainSize < 1 || logDomainSize > 62 {
		return nil, fmt.Errorf("log domain size %d: %w", logDomainSize, ErrInvalidParams)
	}
	d0, err := core.NewCosetDomain(f, 1<<logDomainSize, offset)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, step := range stepList {
		total += step
	}
	if total > logDomainSize {
		return nil, fmt.Errorf("step list %v folds %d times below a domain of 2^%d: %w",
			stepList, total, logDomainSize, ErrInvalidParams)
	}

	domains := []*core.Domain[E]{d0}
	for i := 0; i < total; i++ {
		next, err := domains[i].Halve()
		if err != nil {
			return nil, err
		}
		domains = append(domains, next)
	}

	params := &FRIParams[E]{
		Field:        f,
		Domains:      domains,
		MaxDegree:    maxDegree,
		StepList:     append([]int(nil), stepList...),
		MerkleHasher: h,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Validate checks the domain chain against the step list and the degree bound
func (p *FRIParams[E]) Validate() error {
	if len(p.StepList) == 0 {
		return fmt.Errorf("empty step list: %w", ErrInvalidParams)
	}
	total := 0
	for i, step := range p.StepList {
		if step < 1 {
			return fmt.Errorf("step %d is %d: %w", i, step, ErrInvalidParams)
		}
		total += step
	}
	if len(p.Domains) != total+1 {
		return fmt.Errorf("%d domains for %d foldings: %w", len(p.Domains), total, ErrInvalidParams)
	}
	for i := 1; i < len(p.Domains); i++ {
		if p.Domains[i].Size*2 != p.Domains[i-1].Size {
			return fmt.Errorf("domain %d has size %d after %d: %w",
				i, p.Domains[i].Size, p.Domains[i-1].Size, ErrInvalidParams)
		}
	}
	if p.MaxDegree < 0 || p.MaxDegree >= p.Domains[0].Size {
		return fmt.Errorf("max degree %d on a domain of size %d: %w", p.MaxDegree, p.Domains[0].Size, ErrInvalidParams)
	}
	if div := 1 << total; (p.MaxDegree+1)%div != 0 {
		return fmt.Errorf("max degree %d: MaxDegree+1 must be a multiple of 2^%d: %w", p.MaxDegree, total, ErrInvalidParams)
	}
	if p.MerkleHasher == nil {
		return fmt.Errorf("missing Merkle hasher: %w", ErrInvalidParams)
	}
	return nil
}

// Rounds returns the number of FRI rounds
func (p *FRIParams[E]) Rounds() int {
	return len(p.StepList)
}

// Foldings returns the total number of halvings
func (p *FRIParams[E]) Foldings() int {
	return len(p.Domains) - 1
}

// FinalBound is the largest number of coefficients a final polynomial may have.
// MaxDegree+1 is a multiple of 2^Foldings, so the bound is exact.
func (p *FRIParams[E]) FinalBound() int {
	return (p.MaxDegree + 1) >> p.Foldings()
}

// roundStart returns the index of the first domain of round j
func (p *FRIParams[E]) roundStart(j int) int {
	s := 0
	for i := 0; i < j; i++ {
		s += p.StepList[i]
	}
	return s
}

// FRIState tracks the progress of a FRI prover
type FRIState int

const (
	FRIInit FRIState = iota
	FRICommitted
	FRIFolding
	FRIFinalPolynomial
	FRIQueryPhase
	FRIDone
)

func (s FRIState) String() string {
	switch s {
	case FRIInit:
		return "init"
	case FRICommitted:
		return "committed"
	case FRIFolding:
		return "folding"
	case FRIFinalPolynomial:
		return "final-polynomial"
	case FRIQueryPhase:
		return "query-phase"
	case FRIDone:
		return "done"
	default:
		return fmt.Sprintf("FRIState(%d)", int(s))
	}
}

// Precommitment is a Merkle commitment over D0 together with the committed evaluations.
// Leaf i is the concatenation of every column at position i.
type Precommitment[E any] struct {
	Tree    *core.MerkleTree
	Columns [][]E
}

// Root returns the commitment root
func (p *Precommitment[E]) Root() []byte {
	return p.Tree.Root()
}

// Row returns every column value at position pos
func (p *Precommitment[E]) Row(pos int) []E {
	row := make([]E, len(p.Columns))
	for c, col := range p.Columns {
		row[c] = col[pos]
	}
	return row
}

// CommitColumns commits to evaluations given over D0
func CommitColumns[E any](params *FRIParams[E], columns [][]E) (*Precommitment[E], error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns to commit: %w", ErrShapeMismatch)
	}
	size := params.Domains[0].Size
	for i, col := range columns {
		if len(col) != size {
			return nil, fmt.Errorf("column %d has %d values on a domain of size %d: %w",
				i, len(col), size, core.ErrDomainMismatch)
		}
	}
	tree, err := commitRows(params.Field, params.MerkleHasher, columns, size)
	if err != nil {
		return nil, err
	}
	return &Precommitment[E]{Tree: tree, Columns: columns}, nil
}

// CommitPolynomials evaluates every polynomial over D0 and commits to the rows
func CommitPolynomials[E any](params *FRIParams[E], polys []*core.Polynomial[E]) (*Precommitment[E], error) {
	columns, err := evaluateAll(params.Domains[0], polys)
	if err != nil {
		return nil, err
	}
	return CommitColumns(params, columns)
}

func evaluateAll[E any](d *core.Domain[E], polys []*core.Polynomial[E]) ([][]E, error) {
	columns := make([][]E, len(polys))
	errs := make([]error, len(polys))
	core.Parallelize(len(polys), func(start, end int) {
		for i := start; i < end; i++ {
			columns[i], errs[i] = d.FFT(polys[i].Coefficients())
		}
	})
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("polynomial %d: %w", i, err)
		}
	}
	return columns, nil
}

func commitRows[E any](f core.Field[E], h core.Hasher, columns [][]E, size int) (*core.MerkleTree, error) {
	leaves := make([][]byte, size)
	core.ParallelizeAbove(size, func(start, end int) {
		row := make([]E, len(columns))
		for i := start; i < end; i++ {
			for c, col := range columns {
				row[c] = col[i]
			}
			leaves[i] = core.ElementsToBytes(f, row)
		}
	})
	return core.NewMerkleTree(h, leaves)
}

// friProver walks the FRI state machine for one proof
type friProver[E any] struct {
	params *FRIParams[E]
	tr     *utils.Transcript
	state  FRIState

	round0 *Precommitment[E]
	// trees[j] commits round j and layers[j] holds its columns; trees[0] is round0.Tree
	trees  []*core.MerkleTree
	layers [][][]E
	proof  *FRIProof[E]
}

// ProveFRI proves that every column, given over D0 and bound to round0, is close to a
// polynomial of degree at most params.MaxDegree.
// The round-0 leaves are whatever round0 committed to; the verifier maps them to column
// values through its reducer.
func ProveFRI[E any](params *FRIParams[E], round0 *Precommitment[E], columns [][]E, numQueries int, tr *utils.Transcript) (*FRIProof[E], error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns to prove: %w", ErrShapeMismatch)
	}
	if numQueries < 1 {
		return nil, fmt.Errorf("%d queries: %w", numQueries, ErrInvalidParams)
	}
	for i, col := range columns {
		if len(col) != params.Domains[0].Size {
			return nil, fmt.Errorf("column %d has %d values on a domain of size %d: %w",
				i, len(col), params.Domains[0].Size, core.ErrDomainMismatch)
		}
	}
	if round0 == nil || round0.Tree.NumLeaves() != params.Domains[0].Size {
		return nil, fmt.Errorf("round 0 commitment does not cover D0: %w", core.ErrDomainMismatch)
	}

	p := &friProver[E]{params: params, tr: tr, state: FRIInit, proof: &FRIProof[E]{}}
	if err := p.commit(round0, columns); err != nil {
		return nil, err
	}
	if err := p.fold(); err != nil {
		return nil, err
	}
	if err := p.finalize(); err != nil {
		return nil, err
	}
	if err := p.query(numQueries); err != nil {
		return nil, err
	}
	return p.proof, nil
}

func (p *friProver[E]) expect(state FRIState) error {
	if p.state != state {
		return fmt.Errorf("fri prover in state %s, expected %s", p.state, state)
	}
	return nil
}

func (p *friProver[E]) commit(round0 *Precommitment[E], columns [][]E) error {
	if err := p.expect(FRIInit); err != nil {
		return err
	}
	p.tr.Absorb(round0.Root())
	p.round0 = round0
	p.trees = []*core.MerkleTree{round0.Tree}
	p.layers = [][][]E{columns}
	p.state = FRICommitted
	return nil
}

func (p *friProver[E]) fold() error {
	if err := p.expect(FRICommitted); err != nil {
		return err
	}
	p.state = FRIFolding

	f := p.params.Field
	current := p.layers[0]
	for j, steps := range p.params.StepList {
		if j > 0 {
			tree, err := commitRows(f, p.params.MerkleHasher, current, len(current[0]))
			if err != nil {
				return fmt.Errorf("round %d commitment: %w", j, err)
			}
			root := tree.Root()
			p.tr.Absorb(root)
			p.trees = append(p.trees, tree)
			p.layers = append(p.layers, current)
			p.proof.Roots = append(p.proof.Roots, root)
		}

		start := p.params.roundStart(j)
		for s := 0; s < steps; s++ {
			alpha := utils.ChallengeField(p.tr, f)
			d := p.params.Domains[start+s]
			next := make([][]E, len(current))
			for c, col := range current {
				folded, err := foldLayer(f, d, col, alpha)
				if err != nil {
					return fmt.Errorf("round %d fold %d: %w", j, s, err)
				}
				next[c] = folded
			}
			current = next
		}
	}
	// values over the last domain, consumed by finalize
	p.layers = append(p.layers, current)
	p.state = FRIFinalPolynomial
	return nil
}

func (p *friProver[E]) finalize() error {
	if err := p.expect(FRIFinalPolynomial); err != nil {
		return err
	}
	f := p.params.Field
	last := p.params.Domains[len(p.params.Domains)-1]
	for c, values := range p.layers[len(p.layers)-1] {
		coeffs, err := last.IFFT(values)
		if err != nil {
			return fmt.Errorf("final polynomial %d: %w", c, err)
		}
		poly := core.NewPolynomial(f, coeffs)
		p.proof.FinalPolys = append(p.proof.FinalPolys, poly)
		p.tr.Absorb(core.ElementsToBytes(f, poly.Coefficients()))
	}
	p.layers = p.layers[:len(p.layers)-1]
	p.state = FRIQueryPhase
	return nil
}

func (p *friProver[E]) query(numQueries int) error {
	if err := p.expect(FRIQueryPhase); err != nil {
		return err
	}
	n0 := p.params.Domains[0].Size
	for q := 0; q < numQueries; q++ {
		index, err := p.tr.ChallengeIndex(n0)
		if err != nil {
			return err
		}
		query := FRIQuery[E]{Index: index}
		for j := range p.params.StepList {
			opening, err := p.open(j, index)
			if err != nil {
				return fmt.Errorf("query %d round %d: %w", q, j, err)
			}
			query.Rounds = append(query.Rounds, opening)
		}
		p.proof.Queries = append(p.proof.Queries, query)
	}
	p.state = FRIDone
	return nil
}

func (p *friProver[E]) open(j, index int) (FRIRoundOpening[E], error) {
	n := p.params.Domains[p.params.roundStart(j)].Size
	members, stride := 1<<p.params.StepList[j], n>>p.params.StepList[j]
	t := index % stride

	opening := FRIRoundOpening[E]{
		Leaves: make([][]E, members),
		Proofs: make([]*core.MerkleProof, members),
	}
	for m := 0; m < members; m++ {
		pos := t + m*stride
		proof, err := p.trees[j].Open(pos)
		if err != nil {
			return opening, err
		}
		if j == 0 {
			opening.Leaves[m] = p.round0.Row(pos)
		} else {
			row := make([]E, len(p.layers[j]))
			for c, col := range p.layers[j] {
				row[c] = col[pos]
			}
			opening.Leaves[m] = row
		}
		opening.Proofs[m] = proof
	}
	return opening, nil
}

// foldLayer halves a column over d with
// f'(x²) = (f(x) + f(-x))/2 + alpha * (f(x) - f(-x))/(2x), pairing positions i and i + n/2
func foldLayer[E any](f core.Field[E], d *core.Domain[E], values []E, alpha E) ([]E, error) {
	n := len(values)
	if n != d.Size || n < 2 {
		return nil, fmt.Errorf("%d values on a domain of size %d: %w", n, d.Size, core.ErrDomainMismatch)
	}
	half := n / 2

	two := f.FromUint64(2)
	denominators := make([]E, half)
	x := d.Offset
	for i := 0; i < half; i++ {
		denominators[i] = f.Mul(two, x)
		x = f.Mul(x, d.Generator)
	}
	invDenominators, err := core.ParallelBatchInverse(f, denominators)
	if err != nil {
		return nil, err
	}
	halfInv := f.Inverse(two)

	out := make([]E, half)
	core.ParallelizeAbove(half, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = foldPair(f, values[i], values[i+half], alpha, halfInv, invDenominators[i])
		}
	})
	return out, nil
}

// foldPair combines f(x) and f(-x) given 1/2 and 1/(2x)
func foldPair[E any](f core.Field[E], fx, fnegx, alpha, halfInv, inv2x E) E {
	even := f.Mul(f.Add(fx, fnegx), halfInv)
	odd := f.Mul(f.Sub(fx, fnegx), inv2x)
	return f.Add(even, f.Mul(alpha, odd))
}
