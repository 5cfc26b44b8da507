package plus

import (
	"io"
	"math"

	"git.gammaspectra.live/Salvium/ringct/crypto"
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct/bulletproofs"
)

// BatchEntry A proof alongside the transmitted commitments it covers.
type BatchEntry[T curve25519.PointOperations] struct {
	Commitments []curve25519.PublicKey[T]
	Proof       *AggregateRangeProof[T]
}

// proofData Per-proof state shared between challenge replay and the weighted
// batch equation.
type proofData[T curve25519.PointOperations] struct {
	m, mVal, mn int

	y, z, e           curve25519.Scalar
	challenges        []curve25519.Scalar
	challengeInverses []curve25519.Scalar
	yInverse          curve25519.Scalar
}

// Verify Checks a single proof against the commitments it was made for.
func (arp *AggregateRangeProof[T]) Verify(commitments []curve25519.PublicKey[T]) bool {
	return VerifyBatch[T](nil, BatchEntry[T]{Commitments: commitments, Proof: arp})
}

// VerifyBatch Verifies every proof in a single multiscalar multiplication.
//
// Each proof's terms are folded in under an independent random weight so a
// satisfied sum implies, except with negligible probability, every individual
// statement holds. A single entry is weighted deterministically and needs no
// randomness; randomReader may then be nil.
func VerifyBatch[T curve25519.PointOperations](randomReader io.Reader, entries ...BatchEntry[T]) bool {
	if len(entries) == 0 {
		return false
	}

	var zero curve25519.Scalar

	data := make([]proofData[T], 0, len(entries))
	var toInvert []*curve25519.Scalar

	// replay the challenges of every transcript
	for i := range entries {
		proof := entries[i].Proof

		m := len(entries[i].Commitments)
		if m == 0 || m > bulletproofs.MaxCommitments {
			return false
		}
		mVal := bulletproofs.PaddedPowerOfTwo(m)
		logM := 0
		for padded := 1; padded < mVal; padded <<= 1 {
			logM++
		}
		rounds := bulletproofs.LogCommitmentBits + logM
		if len(proof.L) != rounds || len(proof.R) != rounds {
			return false
		}

		d := proofData[T]{
			m:    m,
			mVal: mVal,
			mn:   mVal * bulletproofs.CommitmentBits,
		}

		var transcript curve25519.Scalar
		InitialTranscript(&transcript, entries[i].Commitments)

		transcriptUpdate(&d.y, &transcript, &proof.A)
		if d.y.Equal(&zero) == 1 {
			return false
		}
		crypto.ScalarDeriveLegacyNoAllocate(&d.z, d.y.Bytes())
		if d.z.Equal(&zero) == 1 {
			return false
		}
		transcript.Set(&d.z)

		d.challenges = make([]curve25519.Scalar, rounds)
		d.challengeInverses = make([]curve25519.Scalar, rounds)
		for j := range rounds {
			transcriptUpdate2(&d.challenges[j], &transcript, &proof.L[j], &proof.R[j])
			if d.challenges[j].Equal(&zero) == 1 {
				return false
			}
			d.challengeInverses[j].Set(&d.challenges[j])
			toInvert = append(toInvert, &d.challengeInverses[j])
		}

		transcriptUpdate2(&d.e, &transcript, &proof.A1, &proof.B)
		if d.e.Equal(&zero) == 1 {
			return false
		}

		d.yInverse.Set(&d.y)
		toInvert = append(toInvert, &d.yInverse)

		data = append(data, d)
	}

	// a single inversion across every challenge of every proof
	curve25519.BatchInvert(toInvert)

	maxMN := 0
	for i := range data {
		maxMN = max(maxMN, data[i].mn)
	}

	ibv := bulletproofs.InternalBatchVerifier[T]{
		GBold: make([]curve25519.Scalar, maxMN),
		HBold: make([]curve25519.Scalar, maxMN),
	}

	var twoSixtyFourMinusOne curve25519.Scalar
	ringct.AmountToScalar(&twoSixtyFourMinusOne, math.MaxUint64)

	twoPow := bulletproofs.TwoScalarVectorPowers[T]()

	var w curve25519.Scalar
	w.Set(one)
	for i := range data {
		d := &data[i]
		proof := entries[i].Proof

		if len(entries) > 1 {
			if curve25519.RandomScalar(&w, randomReader) == nil {
				return false
			}
		}

		var eSquare curve25519.Scalar
		eSquare.Multiply(&d.e, &d.e)

		var yMn, yMnPlusOne curve25519.Scalar
		bulletproofs.ScalarPow(&yMn, &d.y, uint64(d.mn))
		yMnPlusOne.Multiply(&yMn, &d.y)

		var zSquare curve25519.Scalar
		zSquare.Multiply(&d.z, &d.z)
		zPow := make([]curve25519.Scalar, d.mVal)
		zPow[0].Set(&zSquare)
		for j := 1; j < d.mVal; j++ {
			zPow[j].Multiply(&zPow[j-1], &zSquare)
		}

		// (2**64 - 1) * sum(zPow)
		var sumD, sumZ curve25519.Scalar
		for j := range zPow {
			sumZ.Add(&sumZ, &zPow[j])
		}
		sumD.Multiply(&twoSixtyFourMinusOne, &sumZ)

		// y + y**2 + ... + y**mn
		var sumY, yP curve25519.Scalar
		yP.Set(&d.y)
		for range d.mn {
			sumY.Add(&sumY, &yP)
			yP.Multiply(&yP, &d.y)
		}

		var t curve25519.Scalar
		for j := range d.m {
			var pair bulletproofs.ScalarPointPair[T]
			t.Multiply(&w, &eSquare)
			t.Multiply(&t, &zPow[j])
			t.Multiply(&t, &yMnPlusOne)
			pair.S.Negate(&t)
			ringct.ScaleFromWire(&pair.P, &entries[i].Commitments[j])
			ibv.Other = append(ibv.Other, pair)
		}

		{
			var pair bulletproofs.ScalarPointPair[T]
			t.Multiply(&w, &eSquare)
			pair.S.Negate(&t)
			ringct.ScaleFromWire(&pair.P, &proof.A)
			ibv.Other = append(ibv.Other, pair)

			t.Multiply(&w, &d.e)
			pair.S.Negate(&t)
			ringct.ScaleFromWire(&pair.P, &proof.A1)
			ibv.Other = append(ibv.Other, pair)

			pair.S.Negate(&w)
			ringct.ScaleFromWire(&pair.P, &proof.B)
			ibv.Other = append(ibv.Other, pair)
		}

		ibv.G.MultiplyAdd(&w, &proof.D1, &ibv.G)

		// r1*y*s1 + e**2 * (y**(mn+1)*z*sumD + (z**2 - z)*sumY)
		var hTerm, u curve25519.Scalar
		hTerm.Multiply(&proof.R1, &d.y)
		hTerm.Multiply(&hTerm, &proof.S1)
		u.Multiply(&yMnPlusOne, &d.z)
		u.Multiply(&u, &sumD)
		t.Subtract(&zSquare, &d.z)
		u.MultiplyAdd(&t, &sumY, &u)
		hTerm.MultiplyAdd(&eSquare, &u, &hTerm)
		ibv.H.MultiplyAdd(&w, &hTerm, &ibv.H)

		cache := bulletproofs.ChallengeProducts(d.challenges, d.challengeInverses)

		var eR1W, eS1W, e2ZW, minusE2ZW, minusE2WY curve25519.Scalar
		eR1W.Multiply(&d.e, &proof.R1)
		eR1W.Multiply(&eR1W, &w)
		eS1W.Multiply(&d.e, &proof.S1)
		eS1W.Multiply(&eS1W, &w)
		e2ZW.Multiply(&eSquare, &d.z)
		e2ZW.Multiply(&e2ZW, &w)
		minusE2ZW.Negate(&e2ZW)
		minusE2WY.Multiply(&eSquare, &w)
		minusE2WY.Multiply(&minusE2WY, &yMn)
		minusE2WY.Negate(&minusE2WY)

		for bit := range d.mn {
			var dVal curve25519.Scalar
			dVal.Multiply(&zPow[bit/bulletproofs.CommitmentBits], &twoPow[bit%bulletproofs.CommitmentBits])

			t.MultiplyAdd(&eR1W, &cache[bit], &e2ZW)
			ibv.GBold[bit].Add(&ibv.GBold[bit], &t)

			invIndex := (^bit) & (d.mn - 1)
			t.MultiplyAdd(&eS1W, &cache[invIndex], &minusE2ZW)
			t.MultiplyAdd(&minusE2WY, &dVal, &t)
			ibv.HBold[bit].Add(&ibv.HBold[bit], &t)

			eR1W.Multiply(&eR1W, &d.yInverse)
			minusE2WY.Multiply(&minusE2WY, &d.yInverse)
		}

		for j := range d.challenges {
			var pair bulletproofs.ScalarPointPair[T]
			t.Multiply(&d.challenges[j], &d.challenges[j])
			t.Multiply(&t, &eSquare)
			t.Multiply(&t, &w)
			pair.S.Negate(&t)
			ringct.ScaleFromWire(&pair.P, &proof.L[j])
			ibv.Other = append(ibv.Other, pair)

			t.Multiply(&d.challengeInverses[j], &d.challengeInverses[j])
			t.Multiply(&t, &eSquare)
			t.Multiply(&t, &w)
			pair.S.Negate(&t)
			ringct.ScaleFromWire(&pair.P, &proof.R[j])
			ibv.Other = append(ibv.Other, pair)
		}
	}

	return ibv.Verify(
		curve25519.FromPoint[T](crypto.GeneratorG.Point),
		curve25519.FromPoint[T](crypto.GeneratorH.Point),
		bulletproofs.GeneratorPlus,
	)
}
