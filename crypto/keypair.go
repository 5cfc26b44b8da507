package crypto

import "git.gammaspectra.live/Salvium/ringct/crypto/curve25519"

type KeyPair[T curve25519.PointOperations] struct {
	PrivateKey curve25519.Scalar
	PublicKey  curve25519.PublicKey[T]
}

func NewKeyPairFromPrivate[T curve25519.PointOperations](privateKey *curve25519.Scalar) *KeyPair[T] {
	k := &KeyPair[T]{}
	k.PrivateKey.Set(privateKey)
	k.PublicKey.ScalarBaseMult(privateKey)
	return k
}

// NewTwinKeyPairFromPrivate Twin-key output key x·G + y·T
func NewTwinKeyPairFromPrivate[T curve25519.PointOperations](x, y *curve25519.Scalar) *TwinKeyPair[T] {
	k := &TwinKeyPair[T]{}
	k.PrivateKeyG.Set(x)
	k.PrivateKeyT.Set(y)
	k.PublicKey.DoubleScalarBaseMultPrecomputed(y, GeneratorT, x)
	return k
}

type TwinKeyPair[T curve25519.PointOperations] struct {
	PrivateKeyG curve25519.Scalar
	PrivateKeyT curve25519.Scalar
	PublicKey   curve25519.PublicKey[T]
}
