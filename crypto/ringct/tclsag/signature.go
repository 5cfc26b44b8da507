package tclsag

import (
	"errors"
	"fmt"
	"io"

	"git.gammaspectra.live/Salvium/ringct/crypto"
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct"
	"git.gammaspectra.live/Salvium/ringct/types"
	"git.gammaspectra.live/Salvium/ringct/utils"
)

var ErrInvalidKey = errors.New("invalid TCLSAG key")
var ErrInvalidRing = errors.New("invalid TCLSAG ring")
var ErrInvalidS = errors.New("invalid TCLSAG S")
var ErrInvalidD = errors.New("invalid TCLSAG D")
var ErrInvalidC1 = errors.New("invalid TCLSAG C1")
var ErrInvalidImage = errors.New("invalid TCLSAG image")
var ErrInvalidCommitment = errors.New("invalid TCLSAG commitment")
var ErrRandomSource = errors.New("could not draw randomness")

type Signature[T curve25519.PointOperations] struct {
	// D The difference of the commitment randomnesses, scaling the key image generator
	D curve25519.PublicKeyBytes

	// SX The responses for each ring member over the G component
	SX []curve25519.Scalar

	// SY The responses for each ring member over the T component
	SY []curve25519.Scalar

	// C1 The first challenge in the ring
	C1 curve25519.Scalar
}

func (s *Signature[T]) BufferLength() int {
	return (len(s.SX)+len(s.SY))*curve25519.PrivateKeySize + curve25519.PrivateKeySize + curve25519.PublicKeySize
}

func (s *Signature[T]) AppendBinary(preAllocatedBuf []byte) (data []byte, err error) {
	data = preAllocatedBuf
	for i := range s.SX {
		data = append(data, s.SX[i].Bytes()...)
	}
	for i := range s.SY {
		data = append(data, s.SY[i].Bytes()...)
	}
	data = append(data, s.C1.Bytes()...)
	data = append(data, s.D.Slice()...)
	return data, nil
}

func (s *Signature[T]) FromReader(reader utils.ReaderAndByteReader, decoys int) (err error) {
	var sec curve25519.PrivateKeyBytes
	var scalar curve25519.Scalar
	for range decoys {
		if _, err = utils.ReadFullNoEscape(reader, sec[:]); err != nil {
			return err
		}
		if _, err = scalar.SetCanonicalBytes(sec[:]); err != nil {
			return err
		}
		s.SX = append(s.SX, scalar)
	}
	for range decoys {
		if _, err = utils.ReadFullNoEscape(reader, sec[:]); err != nil {
			return err
		}
		if _, err = scalar.SetCanonicalBytes(sec[:]); err != nil {
			return err
		}
		s.SY = append(s.SY, scalar)
	}
	if _, err = utils.ReadFullNoEscape(reader, sec[:]); err != nil {
		return err
	}
	if _, err = s.C1.SetCanonicalBytes(sec[:]); err != nil {
		return err
	}
	if _, err = utils.ReadFullNoEscape(reader, s.D[:]); err != nil {
		return err
	}
	return nil
}

type Input[T curve25519.PointOperations] struct {
	KeyPair crypto.TwinKeyPair[T]
	Context Context[T]
}

type SignResult[T curve25519.PointOperations] struct {
	Signature Signature[T]
	PseudoOut curve25519.PublicKey[T]
}

// Sign TCLSAG signatures for the provided inputs.
//
// The balancing behavior mirrors the single-key variant: random masks cover
// all but the last input, whose mask is set so
// `sum(pseudo_out_masks) == sum(output_commitment_masks)`.
//
// The key image binds only the G component of the twin key,
// `I = x * Hp(P)`, with y never entering it.
func Sign[T curve25519.PointOperations](prefixHash types.Hash, inputs []Input[T], sumOutputs *curve25519.Scalar, randomReader io.Reader) (result []SignResult[T], err error) {

	// Create the key images
	keyImageGenerators := make([]curve25519.PublicKey[T], len(inputs))
	keyImages := make([]curve25519.PublicKey[T], len(inputs))

	for i := range inputs {
		key := &inputs[i].Context.Ring[inputs[i].Context.SignerIndex][0]

		// Check the twin key is consistent
		if key.Equal(&inputs[i].KeyPair.PublicKey) == 0 {
			return nil, ErrInvalidKey
		}

		crypto.BiasedHashToPoint(&keyImageGenerators[i], key.Slice())
		keyImages[i].ScalarMult(&inputs[i].KeyPair.PrivateKeyG, &keyImageGenerators[i])
	}

	result = make([]SignResult[T], 0, len(inputs))

	var mask, sumPseudoOuts, nonceA, nonceB curve25519.Scalar

	for i := range inputs {

		// If this is the last input, set the mask as described above
		if i == (len(inputs) - 1) {
			mask.Subtract(sumOutputs, &sumPseudoOuts)
		} else {
			if curve25519.RandomScalar(&mask, randomReader) == nil {
				return nil, ErrRandomSource
			}
			sumPseudoOuts.Add(&sumPseudoOuts, &mask)
		}

		if curve25519.RandomScalar(&nonceA, randomReader) == nil || curve25519.RandomScalar(&nonceB, randomReader) == nil {
			return nil, ErrRandomSource
		}

		// A = a*G + b*T, R = a*Hp(P)
		A := new(curve25519.PublicKey[T]).DoubleScalarBaseMultPrecomputed(&nonceB, crypto.GeneratorT, &nonceA)

		incomplete, pseudoOut, keyChallenge, challengedMask, err := signCore(
			prefixHash,
			&keyImages[i],
			&inputs[i].Context,
			&mask,
			A,
			new(curve25519.PublicKey[T]).ScalarMult(&nonceA, &keyImageGenerators[i]),
			randomReader,
		)
		if err != nil {
			return nil, err
		}

		signerIndex := inputs[i].Context.SignerIndex

		// sx = a - c*(mu_P*x + mu_C*z)
		incomplete.SX[signerIndex] = *new(curve25519.Scalar).Subtract(
			&nonceA,
			new(curve25519.Scalar).Add(
				new(curve25519.Scalar).Multiply(
					keyChallenge,
					&inputs[i].KeyPair.PrivateKeyG,
				),
				challengedMask,
			),
		)

		// sy = b - c*mu_P*y
		incomplete.SY[signerIndex] = *new(curve25519.Scalar).Subtract(
			&nonceB,
			new(curve25519.Scalar).Multiply(
				keyChallenge,
				&inputs[i].KeyPair.PrivateKeyT,
			),
		)

		// debug
		if err = incomplete.Verify(prefixHash, inputs[i].Context.Ring, &keyImages[i], pseudoOut); err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}

		result = append(result, SignResult[T]{
			Signature: incomplete,
			PseudoOut: *pseudoOut,
		})
	}

	return result, nil
}

func (s *Signature[T]) Verify(prefixHash types.Hash, ring ringct.CommitmentRing[T], I, pseudoOut *curve25519.PublicKey[T]) error {
	if len(ring) == 0 {
		return ErrInvalidRing
	}

	if len(ring) != len(s.SX) || len(ring) != len(s.SY) {
		return ErrInvalidS
	}

	if I == nil || I.IsIdentity() || !I.IsTorsionFree() {
		return ErrInvalidImage
	}

	// straightD D without torsion
	var straightD curve25519.PublicKey[T]
	if _, err := straightD.SetBytes(s.D[:]); err != nil {
		return ErrInvalidD
	}
	ringct.ScaleFromWire(&straightD, &straightD)
	if straightD.IsIdentity() {
		return ErrInvalidD
	}

	_, c1 := core(prefixHash, ring, I, pseudoOut, &straightD, s.SX, s.SY, modeVerify[T]{
		C1:          s.C1,
		DSerialized: s.D,
	})

	if c1.Equal(&s.C1) == 0 {
		return ErrInvalidC1
	}

	return nil
}
