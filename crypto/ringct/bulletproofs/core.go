package bulletproofs

import (
	"math/bits"

	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
)

// MaxCommitments The maximum amount of commitments provable for within a single Bulletproof+.
const MaxCommitments = 16

// CommitmentBits The amount of bits a value within a commitment may use.
const CommitmentBits = 64

// LogCommitmentBits log2(CommitmentBits), the fixed amount of folding rounds a
// single-commitment proof takes.
const LogCommitmentBits = 6

func saturatingSub(a, b uint64) uint64 {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow > 0 {
		diff = 0
	}
	return diff
}

// ChallengeProducts Expands the per-round folding challenges into the full
// table of their signed products.
//
// Slot i holds the product, over every round j, of either the challenge
// (when bit j of i, reading rounds most significant first, is set) or its
// inverse. Slot 0 is accordingly the product of every inverse and the last
// slot the product of every challenge. The table is built iteratively, each
// round doubling the populated prefix top-down so slots can be derived from
// their already-populated halves in place.
func ChallengeProducts(challenges, inverses []curve25519.Scalar) []curve25519.Scalar {
	if len(challenges) != len(inverses) {
		panic("len mismatch")
	}

	products := make([]curve25519.Scalar, 1<<len(challenges))
	products[0].Set(&inverses[0])
	products[1].Set(&challenges[0])

	for j := 1; j < len(challenges); j++ {
		slots := uint64(1<<(j+1)) - 1
		for slots > 0 {
			products[slots].Multiply(&products[slots/2], &challenges[j])
			products[slots-1].Multiply(&products[slots/2], &inverses[j])

			slots = saturatingSub(slots, 2)
		}
	}

	// Sanity check since if the above failed to populate, it'd be critical
	var zeroScalar curve25519.Scalar
	for i := range products {
		if products[i].Equal(&zeroScalar) == 1 {
			panic("challenge product cannot be zero")
		}
	}
	return products
}

var amountScalarBit = [2]curve25519.Scalar{
	*(&curve25519.PrivateKeyBytes{0}).Scalar(),
	*(&curve25519.PrivateKeyBytes{1}).Scalar(),
}

// Decompose Splits amount into its CommitmentBits bits, least significant first,
// as scalars.
func Decompose[T curve25519.PointOperations](amount uint64) (out ScalarVector[T]) {
	out = make(ScalarVector[T], 0, CommitmentBits)
	for range CommitmentBits {
		out = append(out, amountScalarBit[amount&1])
		amount >>= 1
	}
	return out
}

func PaddedPowerOfTwo[T int | uint64](i T) T {
	powerOfTwo := T(1)
	for powerOfTwo < i {
		powerOfTwo <<= 1
	}
	return powerOfTwo
}

var scalarOne = (&curve25519.PrivateKeyBytes{1}).Scalar()

// ScalarPow out = base**exp via square and multiply
func ScalarPow(out, base *curve25519.Scalar, exp uint64) *curve25519.Scalar {
	out.Set(scalarOne)
	var b curve25519.Scalar
	b.Set(base)
	for exp > 0 {
		if exp&1 == 1 {
			out.Multiply(out, &b)
		}
		b.Multiply(&b, &b)
		exp >>= 1
	}
	return out
}

// CalculateClawback Calculate the weight penalty for the Bulletproof(+).
//
// Bulletproofs(+) are logarithmically sized yet linearly timed. Evaluating by their size alone
// accordingly doesn't properly represent the burden of the proof. Some of the weight lost by
// using a proof smaller than it is fast gets 'clawed back' to compensate for this.
//
// If the amount of outputs specified exceeds the maximum amount of outputs, the result for the
// maximum amount of outputs will be returned.
func CalculateClawback(plus bool, outputs int) (clawback, LRLen int) {
	nPaddedOutputs := 1
	for nPaddedOutputs < min(outputs, MaxCommitments) {
		LRLen++
		nPaddedOutputs <<= 1
	}
	LRLen += LogCommitmentBits

	if nPaddedOutputs > 2 {
		fields := 9
		if plus {
			fields = 6
		}

		base := ((fields + (2 * (LogCommitmentBits + 1))) * 32) / 2
		size := (fields + (2 * LRLen)) * 32
		clawback = ((base * nPaddedOutputs) - size) * 4 / 5
	}
	return clawback, LRLen
}
