package tclsag

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"testing"

	"git.gammaspectra.live/Salvium/ringct/crypto"
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct"
	"git.gammaspectra.live/Salvium/ringct/types"
	"github.com/stretchr/testify/require"
)

const RingLength = 11
const Amount = 1337

func twinKeyImage[T curve25519.PointOperations](pair *crypto.TwinKeyPair[T]) *curve25519.PublicKey[T] {
	k := crypto.BiasedHashToPoint(new(curve25519.PublicKey[T]), pair.PublicKey.Slice())
	return k.ScalarMult(&pair.PrivateKeyG, k)
}

func testTwinRing[T curve25519.PointOperations](t *testing.T, randomReader io.Reader, ringLength, realIndex int) (ring ringct.CommitmentRing[T], keyPair *crypto.TwinKeyPair[T], commitment ringct.Commitment) {
	var secretMask curve25519.Scalar

	for i := range ringLength {
		var x, y, mask curve25519.Scalar
		curve25519.RandomScalar(&x, randomReader)
		curve25519.RandomScalar(&y, randomReader)
		curve25519.RandomScalar(&mask, randomReader)

		pair := crypto.NewTwinKeyPairFromPrivate[T](&x, &y)

		var amount uint64
		if i == realIndex {
			keyPair, secretMask = pair, mask
			amount = Amount
		} else {
			var buf [8]byte
			if _, err := io.ReadFull(randomReader, buf[:]); err != nil {
				t.Fatal(err)
			}
			amount = binary.LittleEndian.Uint64(buf[:])
		}
		ring = append(ring, [2]curve25519.PublicKey[T]{
			pair.PublicKey,
			*ringct.CalculateCommitment(new(curve25519.PublicKey[T]), ringct.Commitment{
				Mask:   mask,
				Amount: amount,
			}),
		})
	}

	return ring, keyPair, ringct.Commitment{
		Mask:   secretMask,
		Amount: Amount,
	}
}

func TestTCLSAG(t *testing.T) {
	t.Run("Constant", func(t *testing.T) {
		rng := crypto.NewDeterministicTestGenerator()
		testTCLSAG[curve25519.ConstantTimeOperations](t, rng)
	})
	t.Run("VarTime", func(t *testing.T) {
		rng := crypto.NewDeterministicTestGenerator()
		testTCLSAG[curve25519.VarTimeOperations](t, rng)
	})
}

func testTCLSAG[T curve25519.PointOperations](t *testing.T, randomReader io.Reader) {
	for realIndex := range RingLength {
		t.Run(fmt.Sprintf("#%d", realIndex), func(t *testing.T) {
			var prefixHash = types.Hash{1}

			ring, keyPair, commitment := testTwinRing[T](t, randomReader, RingLength, realIndex)

			var sumOutputs curve25519.Scalar
			curve25519.RandomScalar(&sumOutputs, randomReader)

			ctx, err := NewContext(ring, realIndex, commitment)
			if err != nil {
				t.Fatal(err)
			}

			result, err := Sign(prefixHash, []Input[T]{
				{
					KeyPair: *keyPair,
					Context: *ctx,
				},
			}, &sumOutputs, randomReader)
			if err != nil {
				t.Fatalf("real %d: sign failed: %s", realIndex, err)
			}
			sig := result[0].Signature
			pseudoOut := result[0].PseudoOut

			if err := sig.Verify(prefixHash, ring, twinKeyImage(keyPair), &pseudoOut); err != nil {
				t.Fatalf("real %d: verify failed: %s", realIndex, err)
			}
		})
	}
}

func TestTCLSAGKeyImageMatchesSingleKey(t *testing.T) {
	randomReader := crypto.NewDeterministicTestGenerator()

	// with y = 0, the twin public key and image collapse to the single-key ones
	var x, zero curve25519.Scalar
	curve25519.RandomScalar(&x, randomReader)

	twin := crypto.NewTwinKeyPairFromPrivate[curve25519.VarTimeOperations](&x, &zero)
	single := crypto.NewKeyPairFromPrivate[curve25519.VarTimeOperations](&x)

	if twin.PublicKey.Equal(&single.PublicKey) == 0 {
		t.Fatal("public key mismatch")
	}
	if twinKeyImage(twin).Equal(crypto.GetKeyImage(single)) == 0 {
		t.Fatal("key image mismatch")
	}
}

func TestTCLSAGTampered(t *testing.T) {
	randomReader := crypto.NewDeterministicTestGenerator()

	const realIndex = 7

	ring, keyPair, commitment := testTwinRing[curve25519.VarTimeOperations](t, randomReader, 16, realIndex)

	var sumOutputs curve25519.Scalar
	curve25519.RandomScalar(&sumOutputs, randomReader)

	ctx, err := NewContext(ring, realIndex, commitment)
	if err != nil {
		t.Fatal(err)
	}

	prefixHash := types.Hash{1, 2, 3}

	result, err := Sign(prefixHash, []Input[curve25519.VarTimeOperations]{
		{
			KeyPair: *keyPair,
			Context: *ctx,
		},
	}, &sumOutputs, randomReader)
	if err != nil {
		t.Fatal(err)
	}
	sig := result[0].Signature
	pseudoOut := result[0].PseudoOut
	image := twinKeyImage(keyPair)

	if err = sig.Verify(prefixHash, ring, image, &pseudoOut); err != nil {
		t.Fatal(err)
	}

	t.Run("WrongMessage", func(t *testing.T) {
		if sig.Verify(types.Hash{3, 2, 1}, ring, image, &pseudoOut) == nil {
			t.Fatal("verified under a different message")
		}
	})

	t.Run("WrongImage", func(t *testing.T) {
		var x, y curve25519.Scalar
		curve25519.RandomScalar(&x, randomReader)
		curve25519.RandomScalar(&y, randomReader)
		wrongImage := twinKeyImage(crypto.NewTwinKeyPairFromPrivate[curve25519.VarTimeOperations](&x, &y))
		if sig.Verify(prefixHash, ring, wrongImage, &pseudoOut) == nil {
			t.Fatal("verified under a foreign key image")
		}
	})

	t.Run("SwappedResponses", func(t *testing.T) {
		tampered := sig
		tampered.SX = sig.SY
		tampered.SY = sig.SX
		if tampered.Verify(prefixHash, ring, image, &pseudoOut) == nil {
			t.Fatal("verified with sx and sy swapped")
		}
	})

	t.Run("WrongPseudoOut", func(t *testing.T) {
		var mask curve25519.Scalar
		curve25519.RandomScalar(&mask, randomReader)
		wrongPseudoOut := ringct.CalculateCommitment(new(curve25519.VarTimePublicKey), ringct.Commitment{
			Mask:   mask,
			Amount: Amount,
		})
		if sig.Verify(prefixHash, ring, image, wrongPseudoOut) == nil {
			t.Fatal("verified under a different pseudo output")
		}
	})

	t.Run("SwappedCommitment", func(t *testing.T) {
		tamperedRing := make(ringct.CommitmentRing[curve25519.VarTimeOperations], len(ring))
		copy(tamperedRing, ring)
		tamperedRing[0][1] = ring[1][1]
		if sig.Verify(prefixHash, tamperedRing, image, &pseudoOut) == nil {
			t.Fatal("verified with a substituted ring commitment")
		}
	})
}

func TestTCLSAGSerialization(t *testing.T) {
	randomReader := crypto.NewDeterministicTestGenerator()

	const realIndex = 2

	ring, keyPair, commitment := testTwinRing[curve25519.VarTimeOperations](t, randomReader, RingLength, realIndex)

	var sumOutputs curve25519.Scalar
	curve25519.RandomScalar(&sumOutputs, randomReader)

	ctx, err := NewContext(ring, realIndex, commitment)
	require.NoError(t, err)

	prefixHash := types.Hash{4}

	result, err := Sign(prefixHash, []Input[curve25519.VarTimeOperations]{
		{
			KeyPair: *keyPair,
			Context: *ctx,
		},
	}, &sumOutputs, randomReader)
	require.NoError(t, err)

	sig := result[0].Signature

	data, err := sig.AppendBinary(make([]byte, 0, sig.BufferLength()))
	require.NoError(t, err)
	require.Len(t, data, sig.BufferLength())

	var decoded Signature[curve25519.VarTimeOperations]
	require.NoError(t, decoded.FromReader(bytes.NewReader(data), RingLength))

	data2, err := decoded.AppendBinary(make([]byte, 0, decoded.BufferLength()))
	require.NoError(t, err)
	require.Equal(t, data, data2)

	require.NoError(t, decoded.Verify(prefixHash, ring, twinKeyImage(keyPair), &result[0].PseudoOut))

	var truncated Signature[curve25519.VarTimeOperations]
	require.Error(t, truncated.FromReader(bytes.NewReader(data[:len(data)-1]), RingLength))
}
