package utils

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/vybium/vybium-lpc/internal/vybium-lpc/core"
)

const (
	squeezeTag = 0x00
	ratchetTag = 0x01
)

// Transcript is a Fiat-Shamir transcript: every absorbed message and every
// drawn challenge advances a hash chain, so prover and verifier replaying the
// same operations in the same order see the same challenges.
type Transcript struct {
	hasher     core.Hasher
	state      []byte
	log        []string
	challenges int
}

// NewTranscript creates a transcript whose state is H(seed)
func NewTranscript(h core.Hasher, seed []byte) *Transcript {
	return &Transcript{
		hasher: h,
		state:  h.Sum(seed),
		log:    []string{fmt.Sprintf("init:%s", hex.EncodeToString(seed))},
	}
}

// Absorb binds data into the state: state = H(state || data)
func (t *Transcript) Absorb(data []byte) {
	t.log = append(t.log, fmt.Sprintf("absorb:%s", hex.EncodeToString(data)))
	t.state = t.hasher.Sum(t.state, data)
}

// ChallengeBytes squeezes n pseudo-random bytes and ratchets the state
func (t *Transcript) ChallengeBytes(n int) []byte {
	out := make([]byte, 0, n+t.hasher.Size())
	var ctr [4]byte
	for i := uint32(0); len(out) < n; i++ {
		binary.BigEndian.PutUint32(ctr[:], i)
		out = append(out, t.hasher.Sum(t.state, []byte{squeezeTag}, ctr[:])...)
	}
	out = out[:n]

	t.state = t.hasher.Sum(t.state, []byte{ratchetTag})
	t.challenges++
	t.log = append(t.log, fmt.Sprintf("challenge:%s", hex.EncodeToString(out)))
	return out
}

// ChallengeIndex draws an integer in [0, bound)
func (t *Transcript) ChallengeIndex(bound int) (int, error) {
	if bound < 1 {
		return 0, fmt.Errorf("challenge index bound must be positive, got %d", bound)
	}
	v := binary.BigEndian.Uint64(t.ChallengeBytes(8))
	return int(v % uint64(bound)), nil
}

// State returns a copy of the current state
func (t *Transcript) State() []byte {
	return append([]byte(nil), t.state...)
}

// Challenges returns how many challenges were drawn so far
func (t *Transcript) Challenges() int {
	return t.challenges
}

// Log returns the operation trail
func (t *Transcript) Log() []string {
	return append([]string(nil), t.log...)
}

// Clone returns an independent copy that continues from the same state
func (t *Transcript) Clone() *Transcript {
	return &Transcript{
		hasher:     t.hasher,
		state:      t.State(),
		log:        t.Log(),
		challenges: t.challenges,
	}
}

// String returns the operation trail on one line
func (t *Transcript) String() string {
	return strings.Join(t.log, " ")
}

// AbsorbElements absorbs the canonical encoding of xs as one message
func AbsorbElements[E any](t *Transcript, f core.Field[E], xs ...E) {
	t.Absorb(core.ElementsToBytes(f, xs))
}

// ChallengeField draws a field element with 128 bits of slack so the reduction bias is negligible
func ChallengeField[E any](t *Transcript, f core.Field[E]) E {
	return f.SetBytes(t.ChallengeBytes(f.ElementSize() + 16))
}
