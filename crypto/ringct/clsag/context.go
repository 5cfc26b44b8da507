package clsag

import (
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct"
)

// MaxRingSize Upper bound on ring members accepted when signing
const MaxRingSize = 256

// Context Everything needed to sign for one input: the ring it hides in,
// the signer's position and the opening of the signer's commitment.
type Context[T curve25519.PointOperations] struct {
	Commitment  ringct.Commitment
	Ring        ringct.CommitmentRing[T]
	SignerIndex int
}

func NewContext[T curve25519.PointOperations](ring ringct.CommitmentRing[T], signerIndex int, commitment ringct.Commitment) (*Context[T], error) {
	if len(ring) == 0 || len(ring) > MaxRingSize {
		return nil, ErrInvalidRing
	}
	if signerIndex < 0 || signerIndex >= len(ring) {
		return nil, ErrInvalidRing
	}

	if ring[signerIndex][1].Equal(ringct.CalculateCommitment(new(curve25519.PublicKey[T]), commitment)) == 0 {
		return nil, ErrInvalidCommitment
	}

	return &Context[T]{
		Commitment:  commitment,
		Ring:        ring,
		SignerIndex: signerIndex,
	}, nil
}
