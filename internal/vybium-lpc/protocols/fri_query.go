package protocols

import (
	"github.com/vybium/vybium-lpc/internal/vybium-lpc/core"
	"github.com/vybium/vybium-lpc/internal/vybium-lpc/utils"
)

// Reducer maps the opened round-0 leaf at D0 position pos, whose domain point is x,
// to the column values FRI folds. It reports false for leaves it cannot reduce.
type Reducer[E any] func(pos int, x E, leaf []E) ([]E, bool)

// IdentityReducer treats round-0 leaves as the column values themselves
func IdentityReducer[E any]() Reducer[E] {
	return func(_ int, _ E, leaf []E) ([]E, bool) {
		return leaf, true
	}
}

// VerifyFRI replays the transcript of ProveFRI and checks every query.
// It never panics on malformed proofs; any inconsistency yields false.
func VerifyFRI[E any](params *FRIParams[E], root0 []byte, reducer Reducer[E], proof *FRIProof[E], numQueries int, tr *utils.Transcript) bool {
	if proof == nil || reducer == nil || numQueries < 1 {
		return false
	}
	rounds := params.Rounds()
	if len(proof.Roots) != rounds-1 || len(proof.Queries) != numQueries || len(proof.FinalPolys) == 0 {
		return false
	}
	bound := params.FinalBound()
	for _, poly := range proof.FinalPolys {
		if poly == nil || poly.Len() > bound {
			return false
		}
	}

	f := params.Field
	roots := append([][]byte{root0}, proof.Roots...)
	tr.Absorb(root0)
	alphas := make([][]E, rounds)
	for j, steps := range params.StepList {
		if j > 0 {
			tr.Absorb(roots[j])
		}
		for s := 0; s < steps; s++ {
			alphas[j] = append(alphas[j], utils.ChallengeField(tr, f))
		}
	}
	for _, poly := range proof.FinalPolys {
		tr.Absorb(core.ElementsToBytes(f, poly.Coefficients()))
	}

	v := &friVerifier[E]{
		params:  params,
		roots:   roots,
		alphas:  alphas,
		reducer: reducer,
		columns: len(proof.FinalPolys),
		halfInv: f.Inverse(f.FromUint64(2)),
	}
	last := params.Domains[len(params.Domains)-1]
	for _, query := range proof.Queries {
		index, err := tr.ChallengeIndex(params.Domains[0].Size)
		if err != nil || index != query.Index || len(query.Rounds) != rounds {
			return false
		}
		values, ok := v.checkQuery(query)
		if !ok {
			return false
		}
		x := last.Element(index % last.Size)
		for c, poly := range proof.FinalPolys {
			if !f.Equal(poly.Eval(x), values[c]) {
				return false
			}
		}
	}
	return true
}

type friVerifier[E any] struct {
	params  *FRIParams[E]
	roots   [][]byte
	alphas  [][]E
	reducer Reducer[E]
	columns int
	halfInv E
}

// checkQuery verifies every round of one query and returns the folded values on the last domain
func (v *friVerifier[E]) checkQuery(query FRIQuery[E]) ([]E, bool) {
	f := v.params.Field
	var carried []E
	for j, opening := range query.Rounds {
		start := v.params.roundStart(j)
		d := v.params.Domains[start]
		steps := v.params.StepList[j]
		members, stride := 1<<steps, d.Size>>steps
		t := query.Index % stride

		if len(opening.Leaves) != members || len(opening.Proofs) != members {
			return nil, false
		}

		fiber := make([][]E, members)
		for m := 0; m < members; m++ {
			pos := t + m*stride
			leaf, proof := opening.Leaves[m], opening.Proofs[m]
			if proof == nil || proof.Index != pos {
				return nil, false
			}
			if !core.VerifyProof(v.params.MerkleHasher, v.roots[j], core.ElementsToBytes(f, leaf), proof, d.Size) {
				return nil, false
			}
			if j == 0 {
				values, ok := v.reducer(pos, d.Element(pos), leaf)
				if !ok || len(values) != v.columns {
					return nil, false
				}
				fiber[m] = values
			} else {
				if len(leaf) != v.columns {
					return nil, false
				}
				fiber[m] = leaf
			}
		}

		// the previous round's folded value sits at position index mod |D| of this domain
		if carried != nil {
			m := (query.Index%d.Size - t) / stride
			for c := range carried {
				if !f.Equal(fiber[m][c], carried[c]) {
					return nil, false
				}
			}
		}

		for s := 0; s < steps; s++ {
			dom := v.params.Domains[start+s]
			half := len(fiber) / 2
			next := make([][]E, half)
			for m := 0; m < half; m++ {
				x := dom.Element(t + m*stride)
				inv2x := f.Inverse(f.Add(x, x))
				row := make([]E, v.columns)
				for c := range row {
					row[c] = foldPair(f, fiber[m][c], fiber[m+half][c], v.alphas[j][s], v.halfInv, inv2x)
				}
				next[m] = row
			}
			fiber = next
		}
		carried = fiber[0]
	}
	return carried, true
}
