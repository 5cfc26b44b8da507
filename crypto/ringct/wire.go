package ringct

import (
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
)

// InvEightScalar 8⁻¹ mod l. Points transmitted on the wire are stored
// pre-multiplied by this cofactor clearing factor.
var InvEightScalar = func() *curve25519.Scalar {
	var eight curve25519.Scalar
	return new(curve25519.Scalar).Invert(AmountToScalar(&eight, 8))
}()

// ScaleToWire Multiplies src by 8⁻¹, producing the wire representation of a point
func ScaleToWire[T curve25519.PointOperations](dst, src *curve25519.PublicKey[T]) *curve25519.PublicKey[T] {
	return dst.ScalarMult(InvEightScalar, src)
}

// ScaleFromWire Multiplies src by the cofactor, recovering the effective point
// from its wire representation
func ScaleFromWire[T curve25519.PointOperations](dst, src *curve25519.PublicKey[T]) *curve25519.PublicKey[T] {
	return dst.MultByCofactor(src)
}
