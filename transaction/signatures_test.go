package transaction_test

import (
	"encoding/binary"
	"io"
	"slices"
	"testing"

	"git.gammaspectra.live/Salvium/ringct/crypto"
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct/clsag"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct/tclsag"
	"git.gammaspectra.live/Salvium/ringct/transaction"
	"git.gammaspectra.live/Salvium/ringct/types"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/require"
)

const ringLength = 4
const amount = 1337

type ops = curve25519.VarTimeOperations

// fixture A signed transaction's verification inputs, ready to tamper with.
type fixture struct {
	typ        ringct.Type
	message    types.Hash
	keyImages  []curve25519.PublicKeyBytes
	pseudoOuts []curve25519.PublicKeyBytes
	packed     []byte
	rings      []ringct.CommitmentRing[ops]
}

func randomAmount(t *testing.T, randomReader io.Reader) uint64 {
	var buf [8]byte
	if _, err := io.ReadFull(randomReader, buf[:]); err != nil {
		t.Fatal(err)
	}
	return binary.LittleEndian.Uint64(buf[:])
}

func testRing(t *testing.T, randomReader io.Reader, realIndex int) (ring ringct.CommitmentRing[ops], keyPair *crypto.KeyPair[ops], commitment ringct.Commitment) {
	var secretKey, secretMask curve25519.Scalar

	for i := range ringLength {
		var dest, mask curve25519.Scalar
		curve25519.RandomScalar(&dest, randomReader)
		curve25519.RandomScalar(&mask, randomReader)

		memberAmount := uint64(amount)
		if i == realIndex {
			secretKey, secretMask = dest, mask
		} else {
			memberAmount = randomAmount(t, randomReader)
		}
		ring = append(ring, [2]curve25519.PublicKey[ops]{
			*new(curve25519.PublicKey[ops]).ScalarBaseMult(&dest),
			*ringct.CalculateCommitment(new(curve25519.PublicKey[ops]), ringct.Commitment{
				Mask:   mask,
				Amount: memberAmount,
			}),
		})
	}

	return ring, crypto.NewKeyPairFromPrivate[ops](&secretKey), ringct.Commitment{
		Mask:   secretMask,
		Amount: amount,
	}
}

func testTwinRing(t *testing.T, randomReader io.Reader, realIndex int) (ring ringct.CommitmentRing[ops], keyPair *crypto.TwinKeyPair[ops], commitment ringct.Commitment) {
	var secretMask curve25519.Scalar

	for i := range ringLength {
		var x, y, mask curve25519.Scalar
		curve25519.RandomScalar(&x, randomReader)
		curve25519.RandomScalar(&y, randomReader)
		curve25519.RandomScalar(&mask, randomReader)

		pair := crypto.NewTwinKeyPairFromPrivate[ops](&x, &y)

		memberAmount := uint64(amount)
		if i == realIndex {
			keyPair, secretMask = pair, mask
		} else {
			memberAmount = randomAmount(t, randomReader)
		}
		ring = append(ring, [2]curve25519.PublicKey[ops]{
			pair.PublicKey,
			*ringct.CalculateCommitment(new(curve25519.PublicKey[ops]), ringct.Commitment{
				Mask:   mask,
				Amount: memberAmount,
			}),
		})
	}

	return ring, keyPair, ringct.Commitment{
		Mask:   secretMask,
		Amount: amount,
	}
}

func signedFixture(t *testing.T, randomReader io.Reader, inputs int) fixture {
	f := fixture{
		typ:     ringct.TypeBulletproofPlus,
		message: transaction.SignatureMessage(types.Hash{1}, []byte("rct base"), []byte("bp components")),
	}

	var signInputs []clsag.Input[ops]
	for i := range inputs {
		ring, keyPair, commitment := testRing(t, randomReader, i%ringLength)

		ctx, err := clsag.NewContext(ring, i%ringLength, commitment)
		require.NoError(t, err)

		f.rings = append(f.rings, ring)
		f.keyImages = append(f.keyImages, crypto.GetKeyImage(keyPair).Bytes())
		signInputs = append(signInputs, clsag.Input[ops]{
			KeyPair: *keyPair,
			Context: *ctx,
		})
	}

	var sumOutputs curve25519.Scalar
	curve25519.RandomScalar(&sumOutputs, randomReader)

	result, err := clsag.Sign(f.message, signInputs, &sumOutputs, randomReader)
	require.NoError(t, err)

	var sigs []*clsag.Signature[ops]
	for i := range result {
		f.pseudoOuts = append(f.pseudoOuts, result[i].PseudoOut.Bytes())
		sigs = append(sigs, &result[i].Signature)
	}

	f.packed, err = transaction.PackSignatures(sigs...)
	require.NoError(t, err)

	return f
}

func signedTwinFixture(t *testing.T, randomReader io.Reader, inputs int) fixture {
	f := fixture{
		typ:     ringct.TypeSalviumOne,
		message: transaction.SignatureMessage(types.Hash{2}, []byte("rct base"), []byte("bp components")),
	}

	var signInputs []tclsag.Input[ops]
	for i := range inputs {
		ring, keyPair, commitment := testTwinRing(t, randomReader, i%ringLength)

		ctx, err := tclsag.NewContext(ring, i%ringLength, commitment)
		require.NoError(t, err)

		image := crypto.BiasedHashToPoint(new(curve25519.PublicKey[ops]), keyPair.PublicKey.Slice())
		image.ScalarMult(&keyPair.PrivateKeyG, image)

		f.rings = append(f.rings, ring)
		f.keyImages = append(f.keyImages, image.Bytes())
		signInputs = append(signInputs, tclsag.Input[ops]{
			KeyPair: *keyPair,
			Context: *ctx,
		})
	}

	var sumOutputs curve25519.Scalar
	curve25519.RandomScalar(&sumOutputs, randomReader)

	result, err := tclsag.Sign(f.message, signInputs, &sumOutputs, randomReader)
	require.NoError(t, err)

	var sigs []*tclsag.Signature[ops]
	for i := range result {
		f.pseudoOuts = append(f.pseudoOuts, result[i].PseudoOut.Bytes())
		sigs = append(sigs, &result[i].Signature)
	}

	f.packed, err = transaction.PackSignatures(sigs...)
	require.NoError(t, err)

	return f
}

func (f fixture) verify() (bool, int) {
	return transaction.VerifySignatures(f.typ, f.message, f.keyImages, f.pseudoOuts, f.packed, f.rings)
}

func TestSignatureMessage(t *testing.T) {
	spec.Run(t, "SignatureMessage", func(t *testing.T, when spec.G, it spec.S) {
		prefixHash := crypto.Keccak256([]byte("prefix"))
		rctBase := []byte("rct base data")
		bpComponents := []byte("bp components")

		it("matches the manual three-section construction", func() {
			baseHash := crypto.Keccak256(rctBase)
			componentsHash := crypto.Keccak256(bpComponents)

			var combined []byte
			combined = append(combined, prefixHash[:]...)
			combined = append(combined, baseHash[:]...)
			combined = append(combined, componentsHash[:]...)

			require.Equal(t, crypto.Keccak256(combined), transaction.SignatureMessage(prefixHash, rctBase, bpComponents))
		})

		it("changes when any section changes", func() {
			message := transaction.SignatureMessage(prefixHash, rctBase, bpComponents)

			require.NotEqual(t, message, transaction.SignatureMessage(types.Hash{}, rctBase, bpComponents))
			require.NotEqual(t, message, transaction.SignatureMessage(prefixHash, []byte("rct base data."), bpComponents))
			require.NotEqual(t, message, transaction.SignatureMessage(prefixHash, rctBase, []byte("bp components.")))
		})
	}, spec.Report(report.Terminal{}))
}

func TestVerifySignatures(t *testing.T) {
	randomReader := crypto.NewDeterministicTestGenerator()

	valid := signedFixture(t, randomReader, 3)
	validTwin := signedTwinFixture(t, randomReader, 2)

	spec.Run(t, "VerifySignatures", func(t *testing.T, when spec.G, it spec.S) {
		when("the transaction is well formed", func() {
			it("accepts every input", func() {
				ok, failed := valid.verify()
				require.True(t, ok)
				require.Equal(t, -1, failed)
			})

			it("accepts twin-key inputs", func() {
				ok, failed := validTwin.verify()
				require.True(t, ok)
				require.Equal(t, -1, failed)
			})
		})

		when("the structure is inconsistent", func() {
			it("rejects an unknown type at input 0", func() {
				f := valid
				f.typ = ringct.Type(4)
				ok, failed := f.verify()
				require.False(t, ok)
				require.Equal(t, 0, failed)
			})

			it("rejects a twin payload declared single-key at input 0", func() {
				f := validTwin
				f.typ = ringct.TypeSalviumZero
				ok, failed := f.verify()
				require.False(t, ok)
				require.Equal(t, 0, failed)
			})

			it("rejects a missing ring at input 0", func() {
				f := valid
				f.rings = nil
				ok, failed := f.verify()
				require.False(t, ok)
				require.Equal(t, 0, failed)
			})

			it("rejects uneven ring sizes at input 0", func() {
				f := valid
				f.rings = slices.Clone(valid.rings)
				f.rings[1] = f.rings[1][:ringLength-1]
				ok, failed := f.verify()
				require.False(t, ok)
				require.Equal(t, 0, failed)
			})

			it("rejects a short payload at input 0", func() {
				f := valid
				f.packed = f.packed[:len(f.packed)-1]
				ok, failed := f.verify()
				require.False(t, ok)
				require.Equal(t, 0, failed)
			})

			it("rejects a missing key image at input 0", func() {
				f := valid
				f.keyImages = f.keyImages[:len(f.keyImages)-1]
				ok, failed := f.verify()
				require.False(t, ok)
				require.Equal(t, 0, failed)
			})

			it("rejects a missing pseudo output at input 0", func() {
				f := valid
				f.pseudoOuts = f.pseudoOuts[:len(f.pseudoOuts)-1]
				ok, failed := f.verify()
				require.False(t, ok)
				require.Equal(t, 0, failed)
			})
		})

		when("an input fails", func() {
			it("reports the wrong message at input 0", func() {
				f := valid
				f.message = types.Hash{0xff}
				ok, failed := f.verify()
				require.False(t, ok)
				require.Equal(t, 0, failed)
			})

			it("reports the first corrupted input", func() {
				sigSize := valid.typ.SignatureSize(ringLength)

				for i := range valid.rings {
					f := valid
					f.packed = slices.Clone(valid.packed)
					f.packed[i*sigSize] ^= 1
					ok, failed := f.verify()
					require.False(t, ok)
					require.Equal(t, i, failed)
				}
			})

			it("reports an identity key image at its input", func() {
				f := valid
				f.keyImages = slices.Clone(valid.keyImages)
				f.keyImages[1] = curve25519.PublicKeyBytes{1}
				ok, failed := f.verify()
				require.False(t, ok)
				require.Equal(t, 1, failed)
			})

			it("reports a reused key image at its second occurrence", func() {
				f := valid
				f.keyImages = slices.Clone(valid.keyImages)
				f.keyImages[2] = f.keyImages[0]
				ok, failed := f.verify()
				require.False(t, ok)
				require.Equal(t, 2, failed)
			})

			it("reports a swapped pseudo output", func() {
				f := valid
				f.pseudoOuts = slices.Clone(valid.pseudoOuts)
				f.pseudoOuts[0], f.pseudoOuts[1] = f.pseudoOuts[1], f.pseudoOuts[0]
				ok, failed := f.verify()
				require.False(t, ok)
				require.Equal(t, 0, failed)
			})
		})
	}, spec.Report(report.Terminal{}))
}

func TestTypeSignatureSize(t *testing.T) {
	require.False(t, ringct.Type(0).Valid())
	require.False(t, ringct.Type(10).Valid())

	for typ := ringct.TypeCLSAG; typ <= ringct.TypeSalviumOne; typ++ {
		require.True(t, typ.Valid())
		require.Equal(t, typ == ringct.TypeSalviumOne, typ.TwinKey())
	}

	require.Equal(t, ringLength*32+64, ringct.TypeBulletproofPlus.SignatureSize(ringLength))
	require.Equal(t, ringLength*64+64, ringct.TypeSalviumOne.SignatureSize(ringLength))
}
