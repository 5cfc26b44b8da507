package crypto

import (
	"git.gammaspectra.live/P2Pool/edwards25519"
	"git.gammaspectra.live/P2Pool/sha3"
	"golang.org/x/crypto/blake2b"

	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
	"git.gammaspectra.live/Salvium/ringct/types"
)

//go:nosplit
func NewKeccak256() *sha3.HasherState {
	return sha3.NewLegacyKeccak256()
}

func Keccak256Var[T ~string | ~[]byte](data ...T) (result types.Hash) {
	h := NewKeccak256()
	for _, b := range data {
		_, _ = h.Write([]byte(b))
	}
	_, _ = h.Read(result[:types.HashSize])

	return
}

func Keccak256[T ~string | ~[]byte](data T) (result types.Hash) {
	h := NewKeccak256()
	_, _ = h.Write([]byte(data))
	_, _ = h.Read(result[:types.HashSize])

	return
}

// HashFastSum sha3.Sum clones the state by allocating memory. prevent that. b must be pre-allocated to the expected size, or larger
//
//go:nosplit
func HashFastSum(hasher *sha3.HasherState, b []byte) []byte {
	_ = b[31] // bounds check hint to compiler; see golang.org/issue/14808
	_, _ = hasher.Read(b[:types.HashSize])
	return b
}

// HopefulHashToPoint
// Defined as H_p^1 in Carrot
//
// note: this does not use the point_from_bytes() function found in H_p(), instead directly interpreting the
// input bytes as a compressed point (this can fail, so should not be used generically)
func HopefulHashToPoint(data []byte) *edwards25519.Point {
	result := curve25519.DecodeCompressedPoint(new(curve25519.VarTimePublicKey), Keccak256(data))
	if result == nil {
		return nil
	}

	// Ensure this point lies within the prime-order subgroup
	return result.P().MultByCofactor(result.P())
}

// BiasedHashToPoint Monero's `hash_to_ec` / `biased_hash_to_ec` function.
//
// This achieves parity with the cryptonote `hash_to_ec` flow, inlining the
// `ge_fromfe_frombytes_vartime` function. This implementation runs in constant time.
//
// In reality, this implements Elligator 2 as detailed in
// "Elligator: Elliptic-curve points indistinguishable from uniform random strings"
// (https://eprint.iacr.org/2013/325). Specifically, Section 5.5 details the application of
// Elligator 2 to Curve25519, after which the result is mapped to Ed25519.
//
// As this only applies Elligator 2 once, it's limited to a subset of points where a certain
// derivative of their `u` coordinates (in Montgomery form) are quadratic residues. It's biased
// accordingly.
func BiasedHashToPoint[T curve25519.PointOperations](dst *curve25519.PublicKey[T], data []byte) *curve25519.PublicKey[T] {
	if curve25519.Elligator2WithUniformBytes(dst, Keccak256(data)) == nil {
		return nil
	}

	// Ensure points lie within the prime-order subgroup
	return dst.MultByCofactor(dst)
}

// UnbiasedHashToPoint Monero's `unbiased_hash_to_ec` function.
// Defined as H_p^2 in Carrot
func UnbiasedHashToPoint(preimage []byte) *edwards25519.Point {
	h := blake2b.Sum512(preimage)

	first := new(curve25519.VarTimePublicKey)
	second := new(curve25519.VarTimePublicKey)
	if curve25519.Elligator2WithUniformBytes(first, [32]byte(h[:32])) == nil {
		return nil
	}
	if curve25519.Elligator2WithUniformBytes(second, [32]byte(h[32:])) == nil {
		return nil
	}

	// Ensure points lie within the prime-order subgroup
	first.MultByCofactor(first)
	second.MultByCofactor(second)

	return new(edwards25519.Point).Add(first.P(), second.P())
}
