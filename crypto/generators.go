package crypto

import (
	"git.gammaspectra.live/P2Pool/edwards25519"

	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
)

func inlineKeccak[T ~[]byte | ~string](data T) []byte {
	h := Keccak256(data)
	return h[:]
}

var (
	// GeneratorG generator of 𝔾E
	// G = {x, 4/5 mod q}
	GeneratorG = curve25519.NewGenerator(edwards25519.NewGeneratorPoint())

	// GeneratorH H_p^1(G)
	// H = 8*to_point(keccak(G))
	// note: to_point(keccak(G)) is known to succeed for the canonical value of G (it will fail 7/8ths of the time
	// normally)
	//
	// Contrary to convention (`G` for values, `H` for randomness), `H` is used for amounts within Pedersen commitments
	GeneratorH = curve25519.NewGenerator(HopefulHashToPoint(GeneratorG.Point.Bytes()))

	// GeneratorT H_p^2(Keccak256("Monero Generator T"))
	// Second basis point for twin-key outputs, blinding the key-image component
	GeneratorT = curve25519.NewGenerator(UnbiasedHashToPoint(inlineKeccak("Monero Generator T")))
)
