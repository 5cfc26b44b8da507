package crypto

import (
	"git.gammaspectra.live/P2Pool/sha3"

	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
	"git.gammaspectra.live/Salvium/ringct/types"
)

// ScalarDeriveLegacy BytesToInt256(Keccak256(x)) mod ℓ, the classic hash_to_scalar
func ScalarDeriveLegacy(data ...[]byte) *curve25519.Scalar {
	c := new(curve25519.Scalar)
	ScalarDeriveLegacyNoAllocate(c, data...)
	return c
}

// ScalarDeriveLegacyNoAllocate Version of ScalarDeriveLegacy that places the result in c
func ScalarDeriveLegacyNoAllocate(c *curve25519.Scalar, data ...[]byte) *curve25519.Scalar {
	h := PooledKeccak256(data...)
	curve25519.BytesToScalar32(c, h)
	return c
}

// HashKeysToScalarNoAllocate hash_cache_mash over a running hasher, reducing the final
// keccak state into a scalar
func HashKeysToScalarNoAllocate(c *curve25519.Scalar, hasher *sha3.HasherState, data ...[]byte) {
	hasher.Reset()
	for _, b := range data {
		_, _ = hasher.Write(b)
	}
	var h types.Hash
	HashFastSum(hasher, h[:])
	curve25519.BytesToScalar32(c, h)
}

func GetKeyImage[T curve25519.PointOperations](pair *KeyPair[T]) *curve25519.PublicKey[T] {
	k := BiasedHashToPoint(new(curve25519.PublicKey[T]), pair.PublicKey.Slice())
	return k.ScalarMult(&pair.PrivateKey, k)
}
