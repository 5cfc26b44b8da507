package ringct

import (
	"encoding/binary"

	"git.gammaspectra.live/Salvium/ringct/crypto"
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
)

type Commitment struct {
	Mask   curve25519.Scalar
	Amount uint64
}

// ZeroCommitment A commitment to zero, defined with a mask of 1 (as to not be the identity).
var ZeroCommitment = Commitment{
	Mask:   *(&curve25519.PrivateKeyBytes{1}).Scalar(),
	Amount: 0,
}

// AmountToScalar Place amount into c, little endian. Also called d2h
func AmountToScalar(c *curve25519.Scalar, amount uint64) *curve25519.Scalar {
	var amountBytes curve25519.PrivateKeyBytes
	binary.LittleEndian.PutUint64(amountBytes[:], amount)

	// no reduction is necessary: amountBytes is always lesser than l
	_, _ = c.SetCanonicalBytes(amountBytes[:])
	return c
}

func CalculateCommitment[T curve25519.PointOperations](out *curve25519.PublicKey[T], c Commitment) *curve25519.PublicKey[T] {
	Commit(out, c.Amount, &c.Mask)
	return out
}

// Commit generates C = aG + bH from b, a is mask
func Commit[T curve25519.PointOperations](dst *curve25519.PublicKey[T], amount uint64, mask *curve25519.Scalar) {
	var amountK curve25519.Scalar
	dst.DoubleScalarBaseMultPrecomputed(AmountToScalar(&amountK, amount), crypto.GeneratorH, mask)
}
