package plus

import (
	"git.gammaspectra.live/Salvium/ringct/crypto"
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
)

const DomainKeyTranscript = "bulletproof_plus_transcript"

var initialTranscriptHash = crypto.Keccak256(DomainKeyTranscript)

// initialTranscriptConstant Bulletproofs+ transcripts start with the following constant.
// Why this uses a hash to point is completely unknown.
var initialTranscriptConstant = crypto.BiasedHashToPoint(new(curve25519.VarTimePublicKey), initialTranscriptHash[:]).Bytes()

// InitialTranscript Binds the transcript to the commitments being proven for,
// as transmitted, chained onto the transcript constant.
func InitialTranscript[T curve25519.PointOperations](out *curve25519.Scalar, commitments []curve25519.PublicKey[T]) *curve25519.Scalar {
	data := make([]byte, 0, len(commitments)*curve25519.PublicKeySize)
	for i := range commitments {
		data = append(data, commitments[i].Slice()...)
	}
	crypto.ScalarDeriveLegacyNoAllocate(out, data)
	// this does scalar derive twice!
	crypto.ScalarDeriveLegacyNoAllocate(out, initialTranscriptConstant[:], out.Bytes())
	return out
}

// transcriptUpdate Absorbs a single compressed point, yielding the next challenge.
// The challenge doubles as the new transcript state.
func transcriptUpdate[T curve25519.PointOperations](out, transcript *curve25519.Scalar, p *curve25519.PublicKey[T]) *curve25519.Scalar {
	crypto.ScalarDeriveLegacyNoAllocate(out, transcript.Bytes(), p.Slice())
	transcript.Set(out)
	return out
}

// transcriptUpdate2 Absorbs a pair of compressed points, yielding the next challenge.
func transcriptUpdate2[T curve25519.PointOperations](out, transcript *curve25519.Scalar, p, q *curve25519.PublicKey[T]) *curve25519.Scalar {
	crypto.ScalarDeriveLegacyNoAllocate(out, transcript.Bytes(), p.Slice(), q.Slice())
	transcript.Set(out)
	return out
}
