package ringct

import (
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
)

// Type The RCT signature scheme a transaction declares.
type Type uint8

const (
	// TypeCLSAG One CLSAG for each input and a Bulletproof.
	TypeCLSAG = Type(iota + 5)

	// TypeBulletproofPlus One CLSAG for each input and a Bulletproof+.
	TypeBulletproofPlus

	// TypeFullProofs One CLSAG for each input, a Bulletproof+ and full output proofs.
	TypeFullProofs

	// TypeSalviumZero Salvium protocol v0. Signature layout matches TypeFullProofs.
	TypeSalviumZero

	// TypeSalviumOne Salvium protocol v1, spending twin keys P = x*G + y*T with
	// one TCLSAG for each input.
	TypeSalviumOne
)

func (t Type) Valid() bool {
	switch t {
	case TypeCLSAG, TypeBulletproofPlus, TypeFullProofs, TypeSalviumZero, TypeSalviumOne:
		return true
	default:
		return false
	}
}

// TwinKey Whether inputs carry twin-key ring signatures with two response
// scalars per ring member.
func (t Type) TwinKey() bool {
	return t == TypeSalviumOne
}

// SignatureSize Packed byte length of one input's ring signature payload,
// `s‖c1‖D` or `sx‖sy‖c1‖D` for twin keys. The key image travels in the
// transaction prefix, not here.
func (t Type) SignatureSize(ringSize int) int {
	n := ringSize
	if t.TwinKey() {
		n *= 2
	}
	return n*curve25519.PrivateKeySize + curve25519.PrivateKeySize + curve25519.PublicKeySize
}
