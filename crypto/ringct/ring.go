package ringct

import (
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
)

// CommitmentRing An ordered ring of (output key, commitment) member pairs.
// Commitments are the raw chain commitments; signing subtracts the pseudo
// output commitment per member.
type CommitmentRing[T curve25519.PointOperations] [][2]curve25519.PublicKey[T]

// Ring The output keys of the ring members
func (r CommitmentRing[T]) Ring() []curve25519.PublicKey[T] {
	keys := make([]curve25519.PublicKey[T], len(r))
	for i := range r {
		keys[i] = r[i][0]
	}
	return keys
}

// RingFromBytes Decompresses a ring of (key, commitment) byte pairs.
// Returns nil if any member fails to decompress.
func RingFromBytes[T curve25519.PointOperations](members [][2]curve25519.PublicKeyBytes) CommitmentRing[T] {
	ring := make(CommitmentRing[T], len(members))
	for i := range members {
		if _, err := ring[i][0].SetBytes(members[i][0].Slice()); err != nil {
			return nil
		}
		if _, err := ring[i][1].SetBytes(members[i][1].Slice()); err != nil {
			return nil
		}
	}
	return ring
}
