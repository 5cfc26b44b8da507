package transaction

import (
	"bytes"

	"git.gammaspectra.live/Salvium/ringct/crypto"
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct/clsag"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct/tclsag"
	"git.gammaspectra.live/Salvium/ringct/types"
	"github.com/dolthub/swiss"
)

// SignatureMessage The message every ring signature of a transaction commits
// to: H(prefixHash ‖ H(rctBase) ‖ H(bpComponents)).
//
// rctBase covers the fee, output commitments and encrypted amounts;
// bpComponents covers the range proof's public points and scalars. A single
// changed bit in either section, or in the prefix, invalidates every
// signature checked against the result.
func SignatureMessage(prefixHash types.Hash, rctBase, bpComponents []byte) types.Hash {
	baseHash := crypto.Keccak256(rctBase)
	componentsHash := crypto.Keccak256(bpComponents)
	return crypto.Keccak256Var(prefixHash[:], baseHash[:], componentsHash[:])
}

// VerifySignatures Checks every ring signature of a transaction against
// message, dispatching on the declared RCT type.
//
// keyImages and pseudoOuts come from the transaction prefix, one per input.
// packed is the concatenation of each input's signature payload, sized
// typ.SignatureSize(ringSize) per input. All rings must share one size.
//
// Structural mismatches fail at input 0 before any cryptography runs.
// Inputs then verify in declared order and the first failure wins; a key
// image repeated across inputs fails at its second occurrence. On success
// failedInput is -1. Malformed bytes make an input fail, never panic.
func VerifySignatures[T curve25519.PointOperations](typ ringct.Type, message types.Hash, keyImages, pseudoOuts []curve25519.PublicKeyBytes, packed []byte, rings []ringct.CommitmentRing[T]) (ok bool, failedInput int) {
	if !typ.Valid() || len(rings) == 0 {
		return false, 0
	}

	ringSize := len(rings[0])
	if ringSize == 0 {
		return false, 0
	}
	for i := range rings {
		if len(rings[i]) != ringSize {
			return false, 0
		}
	}

	if len(keyImages) != len(rings) || len(pseudoOuts) != len(rings) {
		return false, 0
	}

	sigSize := typ.SignatureSize(ringSize)
	if len(packed) != len(rings)*sigSize {
		return false, 0
	}

	seenImages := swiss.NewMap[curve25519.PublicKeyBytes, struct{}](uint32(len(rings)))

	var image, pseudoOut curve25519.PublicKey[T]

	for i := range rings {
		// The double-spend anchor: a key image may appear at most once
		if seenImages.Has(keyImages[i]) {
			return false, i
		}
		seenImages.Put(keyImages[i], struct{}{})

		if _, err := image.SetBytes(keyImages[i][:]); err != nil {
			return false, i
		}
		if _, err := pseudoOut.SetBytes(pseudoOuts[i][:]); err != nil {
			return false, i
		}

		reader := bytes.NewReader(packed[i*sigSize : (i+1)*sigSize])

		if typ.TwinKey() {
			var sig tclsag.Signature[T]
			if err := sig.FromReader(reader, ringSize); err != nil {
				return false, i
			}
			if err := sig.Verify(message, rings[i], &image, &pseudoOut); err != nil {
				return false, i
			}
		} else {
			var sig clsag.Signature[T]
			if err := sig.FromReader(reader, ringSize); err != nil {
				return false, i
			}
			if err := sig.Verify(message, rings[i], &image, &pseudoOut); err != nil {
				return false, i
			}
		}
	}

	return true, -1
}

// PackSignatures Concatenates per-input signature payloads into the flat
// buffer VerifySignatures consumes.
func PackSignatures[S interface {
	BufferLength() int
	AppendBinary(preAllocatedBuf []byte) ([]byte, error)
}](sigs ...S) (data []byte, err error) {
	n := 0
	for _, s := range sigs {
		n += s.BufferLength()
	}
	data = make([]byte, 0, n)
	for _, s := range sigs {
		if data, err = s.AppendBinary(data); err != nil {
			return nil, err
		}
	}
	return data, nil
}
