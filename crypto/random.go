package crypto

import (
	"crypto/rand"
	"io"

	"git.gammaspectra.live/P2Pool/sha3"

	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
)

func RandomScalar() *curve25519.Scalar {
	return curve25519.RandomScalar(new(curve25519.Scalar), rand.Reader)
}

type deterministicTestGenerator struct {
	h *sha3.HasherState
}

func (g *deterministicTestGenerator) Read(p []byte) (n int, err error) {
	// keccak sponge squeezed as a stream
	return g.h.Read(p)
}

// NewDeterministicTestGenerator Randomness source with a fixed seed, for reproducible tests
func NewDeterministicTestGenerator() io.Reader {
	h := NewKeccak256()
	_, _ = h.Write([]byte("deterministic test generator"))
	return &deterministicTestGenerator{h: h}
}
