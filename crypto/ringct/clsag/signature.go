package clsag

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

var ErrInvalidKey = errors.New("invalid CLSAG key")
var ErrInvalidRing = errors.New("invalid CLSAG ring")
var ErrInvalidS = errors.New("invalid CLSAG S")
var ErrInvalidD = errors.New("invalid CLSAG D")
var ErrInvalidC1 = errors.New("invalid CLSAG C1")
var ErrInvalidImage = errors.New("invalid CLSAG image")
var ErrInvalidCommitment = errors.New("invalid CLSAG commitment")
var ErrRandomSource = errors.New("could not draw randomness")

type Signature[T curve25519.PointOperations] struct {
	// D The difference of the commitment randomnesses, scaling the key image generator
	D curve25519.PublicKeyBytes

	// S The responses for each ring member
	S []curve25519.Scalar

	// C1 The first challenge in the ring
	C1 curve25519.Scalar
}

func (s *Signature[T]) BufferLength() int {
	return len(s.S)*curve25519.PrivateKeySize + curve25519.PrivateKeySize + curve25519.PublicKeySize
}

func (s *Signature[T]) AppendBinary(preAllocatedBuf []byte) (data []byte, err error) {
	data = preAllocatedBuf
	for i := range s.S {
		data = append(data, s.S[i].Bytes()...)
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
		s.S = append(s.S, scalar)
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
	KeyPair crypto.KeyPair[T]
	Context Context[T]
}

type SignResult[T curve25519.PointOperations] struct {
	Signature Signature[T]
	PseudoOut curve25519.PublicKey[T]
}

// Sign CLSAG signatures for the provided inputs.
//
// Balance requires the rerandomized input commitments carry the same masks, in sum, as the
// output commitments: `sum(pseudo_out_masks) == sum(output_commitment_masks)`. The wallet
// protocol determines each output commitment's randomness, random masks cover all but the
// last input, and the last input is rerandomized to the mask making the equation balance.
//
// Due to this behavior, it only makes sense to sign as a list, hence this API being the way
// it is.
//
// `sumOutputs` is the sum of the output commitments' masks.
func Sign[T curve25519.PointOperations](prefixHash types.Hash, inputs []Input[T], sumOutputs *curve25519.Scalar, randomReader io.Reader) (result []SignResult[T], err error) {

	// Create the key images
	keyImageGenerators := make([]curve25519.PublicKey[T], len(inputs))
	keyImages := make([]curve25519.PublicKey[T], len(inputs))

	for i := range inputs {
		key := &inputs[i].Context.Ring[inputs[i].Context.SignerIndex][0]

		// Check the key is consistent
		if key.Equal(&inputs[i].KeyPair.PublicKey) == 0 {
			return nil, ErrInvalidKey
		}

		// can't use crypto.GetKeyImage as we need to store the generator
		crypto.BiasedHashToPoint(&keyImageGenerators[i], key.Slice())
		keyImages[i].ScalarMult(&inputs[i].KeyPair.PrivateKey, &keyImageGenerators[i])
	}

	result = make([]SignResult[T], 0, len(inputs))

	var mask, sumPseudoOuts, nonce curve25519.Scalar

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

		if curve25519.RandomScalar(&nonce, randomReader) == nil {
			return nil, ErrRandomSource
		}

		incomplete, pseudoOut, keyChallenge, challengedMask, err := signCore(
			prefixHash,
			&keyImages[i],
			&inputs[i].Context,
			&mask,
			new(curve25519.PublicKey[T]).ScalarBaseMult(&nonce),
			new(curve25519.PublicKey[T]).ScalarMult(&nonce, &keyImageGenerators[i]),
			randomReader,
		)
		if err != nil {
			return nil, err
		}

		// Effectively r - c x, except c x is (c_p x) + (c_c z), where z is the delta between the
		// ring member's commitment and our pseudo-out commitment (which will only have a known
		// discrete log over G if the amounts cancel out)
		incomplete.S[inputs[i].Context.SignerIndex] = *new(curve25519.Scalar).Subtract(
			&nonce,
			new(curve25519.Scalar).Add(
				new(curve25519.Scalar).Multiply(
					keyChallenge,
					&inputs[i].KeyPair.PrivateKey,
				),
				challengedMask,
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

	if len(ring) != len(s.S) {
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

	_, c1 := core(prefixHash, ring, I, pseudoOut, &straightD, s.S, modeVerify[T]{
		C1:          s.C1,
		DSerialized: s.D,
	})

	if c1.Equal(&s.C1) == 0 {
		return ErrInvalidC1
	}

	return nil
}
