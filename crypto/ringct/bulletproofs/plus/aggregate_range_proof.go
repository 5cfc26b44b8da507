package plus

import (
	"encoding/binary"
	"errors"
	"io"
	"slices"

	"git.gammaspectra.live/Salvium/ringct/crypto"
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct/bulletproofs"
	"git.gammaspectra.live/Salvium/ringct/utils"
)

var one = (&curve25519.PrivateKeyBytes{1}).Scalar()

var (
	ErrStatementSize       = errors.New("invalid amount of commitments")
	ErrMismatchedWitness   = errors.New("witness does not match statement")
	ErrInvalidProofSize    = errors.New("invalid proof size")
	errZeroChallenge       = errors.New("zero challenge")
	errRandomSourceFailure = errors.New("could not draw randomness")
)

// AggregateRangeWitness The openings of the commitments being proven for.
type AggregateRangeWitness []ringct.Commitment

// AggregateRangeStatement Commitments an aggregate range proof covers, in
// their transmitted form (scaled by 8⁻¹).
type AggregateRangeStatement[T curve25519.PointOperations] struct {
	V []curve25519.PublicKey[T]
}

// NewAggregateRangeStatement Derives the statement commitments from their openings.
func NewAggregateRangeStatement[T curve25519.PointOperations](witness AggregateRangeWitness) AggregateRangeStatement[T] {
	V := make([]curve25519.PublicKey[T], len(witness))
	for i := range witness {
		ringct.CalculateCommitment(&V[i], witness[i])
		ringct.ScaleToWire(&V[i], &V[i])
	}
	return AggregateRangeStatement[T]{V: V}
}

// AggregateRangeProof An aggregate Bulletproofs+ range proof, attesting every
// committed value lies within [0, 2**CommitmentBits).
//
// All points are carried in their transmitted form, scaled by 8⁻¹ so the
// verifier can clear their cofactor without mutating the intended value.
type AggregateRangeProof[T curve25519.PointOperations] struct {
	A  curve25519.PublicKey[T]
	A1 curve25519.PublicKey[T]
	B  curve25519.PublicKey[T]
	R1 curve25519.Scalar
	S1 curve25519.Scalar
	D1 curve25519.Scalar
	L  []curve25519.PublicKey[T]
	R  []curve25519.PublicKey[T]
}

// Prove Produces an aggregate range proof over the witness openings.
//
// Drawing a zero challenge is statistically impossible, yet were it to happen
// the attempt is thrown away and retried with fresh randomness.
func (ars AggregateRangeStatement[T]) Prove(witness AggregateRangeWitness, randomReader io.Reader) (proof AggregateRangeProof[T], err error) {
	for {
		proof, err = ars.prove(witness, randomReader)
		if errors.Is(err, errZeroChallenge) {
			continue
		}
		return proof, err
	}
}

func (ars AggregateRangeStatement[T]) prove(witness AggregateRangeWitness, randomReader io.Reader) (proof AggregateRangeProof[T], err error) {
	m := len(ars.V)
	if m == 0 || m > bulletproofs.MaxCommitments {
		return proof, ErrStatementSize
	}
	if len(witness) != m {
		return proof, ErrMismatchedWitness
	}

	var tmp curve25519.PublicKey[T]
	for i := range witness {
		ringct.CalculateCommitment(&tmp, witness[i])
		ringct.ScaleToWire(&tmp, &tmp)
		if tmp.Equal(&ars.V[i]) == 0 {
			return proof, ErrMismatchedWitness
		}
	}

	var transcript curve25519.Scalar
	InitialTranscript(&transcript, ars.V)

	mVal := bulletproofs.PaddedPowerOfTwo(m)
	mn := mVal * bulletproofs.CommitmentBits

	aL := make(bulletproofs.ScalarVector[T], 0, mn)
	for j := range mVal {
		if j < m {
			aL = append(aL, bulletproofs.Decompose[T](witness[j].Amount)...)
		} else {
			aL = append(aL, bulletproofs.Decompose[T](0)...)
		}
	}
	// aR = aL - 1, so set bits pair with 0 and clear bits with -1
	aR := bulletproofs.ScalarVector[T](slices.Clone(aL)).Subtract(one)

	var alpha curve25519.Scalar
	if curve25519.RandomScalar(&alpha, randomReader) == nil {
		return proof, errRandomSourceFailure
	}

	{
		scalars := make([]*curve25519.Scalar, 0, mn*2+1)
		points := make([]*curve25519.Point, 0, mn*2+1)
		for i := range aL {
			scalars = append(scalars, &aL[i])
			points = append(points, bulletproofs.GeneratorPlus.G[i])
		}
		for i := range aR {
			scalars = append(scalars, &aR[i])
			points = append(points, bulletproofs.GeneratorPlus.H[i])
		}
		scalars = append(scalars, &alpha)
		points = append(points, crypto.GeneratorG.Point)

		proof.A.MultiScalarMultPoints(scalars, points)
		proof.A.ScalarMult(ringct.InvEightScalar, &proof.A)
	}

	var zero, y, z curve25519.Scalar
	transcriptUpdate(&y, &transcript, &proof.A)
	if y.Equal(&zero) == 1 {
		return proof, errZeroChallenge
	}
	crypto.ScalarDeriveLegacyNoAllocate(&z, y.Bytes())
	if z.Equal(&zero) == 1 {
		return proof, errZeroChallenge
	}
	transcript.Set(&z)

	// 2, 4, 6, 8... powers of z, one per (padded) commitment
	var zSquare curve25519.Scalar
	zSquare.Multiply(&z, &z)
	zPow := make(bulletproofs.ScalarVector[T], mVal)
	zPow[0].Set(&zSquare)
	for j := 1; j < mVal; j++ {
		zPow[j].Multiply(&zPow[j-1], &zSquare)
	}

	// d[j*bits + i] = z**(2*(j+1)) * 2**i
	twoPow := bulletproofs.TwoScalarVectorPowers[T]()
	d := make(bulletproofs.ScalarVector[T], mn)
	for j := range mVal {
		for i := range bulletproofs.CommitmentBits {
			d[j*bulletproofs.CommitmentBits+i].Multiply(&zPow[j], &twoPow[i])
		}
	}

	// y, y**2 ... y**(mn+1)
	yAsc := make(bulletproofs.ScalarVector[T], mn+1)
	yAsc[0].Set(&y)
	for i := 1; i <= mn; i++ {
		yAsc[i].Multiply(&yAsc[i-1], &y)
	}

	aL.Subtract(&z)
	aR.Add(&z)
	for i := range aR {
		// d[i] * y**(mn-i)
		aR[i].MultiplyAdd(&d[i], &yAsc[mn-1-i], &aR[i])
	}

	var alpha1 curve25519.Scalar
	alpha1.Set(&alpha)
	for j := range witness {
		var t curve25519.Scalar
		t.Multiply(&zPow[j], &witness[j].Mask)
		alpha1.MultiplyAdd(&t, &yAsc[mn], &alpha1)
	}

	var yInv curve25519.Scalar
	yInv.Invert(&y)

	gBold := bulletproofs.NewPointVector[T](bulletproofs.GeneratorPlus.G, mn)
	hBold := bulletproofs.NewPointVector[T](bulletproofs.GeneratorPlus.H, mn)
	aPrime, bPrime := aL, aR

	rounds := 0
	for n := mn; n > 1; rounds++ {
		n >>= 1
	}
	proof.L = make([]curve25519.PublicKey[T], 0, rounds)
	proof.R = make([]curve25519.PublicKey[T], 0, rounds)

	var x, xInv curve25519.Scalar
	var yPowN, yInvPowN curve25519.Scalar
	for n := mn; n > 1; {
		n >>= 1

		a1, a2 := aPrime.Split()
		b1, b2 := bPrime.Split()
		g1, g2 := gBold.Split()
		h1, h2 := hBold.Split()

		bulletproofs.ScalarPow(&yPowN, &y, uint64(n))
		bulletproofs.ScalarPow(&yInvPowN, &yInv, uint64(n))

		cL := a1.WeightedInnerProduct(yAsc[:n], b2)
		cR := a2.WeightedWeightedInnerProduct(&yPowN, yAsc[:n], b1)

		var dL, dR curve25519.Scalar
		if curve25519.RandomScalar(&dL, randomReader) == nil || curve25519.RandomScalar(&dR, randomReader) == nil {
			return proof, errRandomSourceFailure
		}

		scalars := make([]*curve25519.Scalar, 0, n*2+2)
		points := make([]*curve25519.PublicKey[T], 0, n*2+2)

		folded := make([]curve25519.Scalar, n)
		for i := range n {
			folded[i].Multiply(&a1[i], &yInvPowN)
			scalars = append(scalars, &folded[i])
			points = append(points, &g2[i])
			scalars = append(scalars, &b2[i])
			points = append(points, &h1[i])
		}
		scalars = append(scalars, &cL, &dL)
		points = append(points, curve25519.FromPoint[T](crypto.GeneratorH.Point), curve25519.FromPoint[T](crypto.GeneratorG.Point))

		var L curve25519.PublicKey[T]
		L.MultiScalarMult(scalars, points)
		L.ScalarMult(ringct.InvEightScalar, &L)

		scalars = scalars[:0]
		points = points[:0]
		for i := range n {
			folded[i].Multiply(&a2[i], &yPowN)
			scalars = append(scalars, &folded[i])
			points = append(points, &g1[i])
			scalars = append(scalars, &b1[i])
			points = append(points, &h2[i])
		}
		scalars = append(scalars, &cR, &dR)
		points = append(points, curve25519.FromPoint[T](crypto.GeneratorH.Point), curve25519.FromPoint[T](crypto.GeneratorG.Point))

		var R curve25519.PublicKey[T]
		R.MultiScalarMult(scalars, points)
		R.ScalarMult(ringct.InvEightScalar, &R)

		transcriptUpdate2(&x, &transcript, &L, &R)
		if x.Equal(&zero) == 1 {
			return proof, errZeroChallenge
		}
		xInv.Invert(&x)

		var xInvYPowN curve25519.Scalar
		xInvYPowN.Multiply(&xInv, &yPowN)
		aPrime = a1.Multiply(&x).AddVecMultiply(a2, &xInvYPowN)
		bPrime = b1.Multiply(&xInv).AddVecMultiply(b2, &x)

		var gFold curve25519.Scalar
		gFold.Multiply(&yInvPowN, &x)
		gBold = gBold.Fold(&xInv, &gFold)
		hBold = hBold.Fold(&x, &xInv)

		// alpha' += dL*x**2 + dR*x**-2
		var xSquare curve25519.Scalar
		xSquare.Multiply(&x, &x)
		alpha1.MultiplyAdd(&dL, &xSquare, &alpha1)
		xSquare.Multiply(&xInv, &xInv)
		alpha1.MultiplyAdd(&dR, &xSquare, &alpha1)

		proof.L = append(proof.L, L)
		proof.R = append(proof.R, R)
	}

	var r, s, dScalar, eta curve25519.Scalar
	if curve25519.RandomScalar(&r, randomReader) == nil ||
		curve25519.RandomScalar(&s, randomReader) == nil ||
		curve25519.RandomScalar(&dScalar, randomReader) == nil ||
		curve25519.RandomScalar(&eta, randomReader) == nil {
		return proof, errRandomSourceFailure
	}

	// (r*y*b' + s*y*a')
	var hCoeff, t curve25519.Scalar
	t.Multiply(&r, &y)
	hCoeff.Multiply(&t, &bPrime[0])
	t.Multiply(&s, &y)
	hCoeff.MultiplyAdd(&t, &aPrime[0], &hCoeff)

	{
		scalars := []*curve25519.Scalar{&r, &s, &dScalar, &hCoeff}
		points := []*curve25519.PublicKey[T]{
			&gBold[0], &hBold[0],
			curve25519.FromPoint[T](crypto.GeneratorG.Point),
			curve25519.FromPoint[T](crypto.GeneratorH.Point),
		}
		proof.A1.MultiScalarMult(scalars, points)
		proof.A1.ScalarMult(ringct.InvEightScalar, &proof.A1)
	}

	// B = eta*G + r*y*s*H
	t.Multiply(&r, &y)
	t.Multiply(&t, &s)
	proof.B.DoubleScalarBaseMultPrecomputed(&t, crypto.GeneratorH, &eta)
	proof.B.ScalarMult(ringct.InvEightScalar, &proof.B)

	var e curve25519.Scalar
	transcriptUpdate2(&e, &transcript, &proof.A1, &proof.B)
	if e.Equal(&zero) == 1 {
		return proof, errZeroChallenge
	}

	proof.R1.MultiplyAdd(&aPrime[0], &e, &r)
	proof.S1.MultiplyAdd(&bPrime[0], &e, &s)

	var eSquare curve25519.Scalar
	eSquare.Multiply(&e, &e)
	proof.D1.MultiplyAdd(&dScalar, &e, &eta)
	proof.D1.MultiplyAdd(&alpha1, &eSquare, &proof.D1)

	return proof, nil
}

func (arp *AggregateRangeProof[T]) BufferLength() int {
	return curve25519.PublicKeySize*3 + curve25519.PrivateKeySize*3 +
		utils.UVarInt64Size(len(arp.L)) + curve25519.PublicKeySize*len(arp.L) +
		utils.UVarInt64Size(len(arp.R)) + curve25519.PublicKeySize*len(arp.R)
}

func (arp *AggregateRangeProof[T]) AppendBinary(preAllocatedBuf []byte) (data []byte, err error) {
	buf := preAllocatedBuf
	buf, _ = arp.A.AppendBinary(buf)
	buf, _ = arp.A1.AppendBinary(buf)
	buf, _ = arp.B.AppendBinary(buf)
	buf = append(buf, arp.R1.Bytes()...)
	buf = append(buf, arp.S1.Bytes()...)
	buf = append(buf, arp.D1.Bytes()...)
	buf = binary.AppendUvarint(buf, uint64(len(arp.L)))
	for i := range arp.L {
		buf, _ = arp.L[i].AppendBinary(buf)
	}
	buf = binary.AppendUvarint(buf, uint64(len(arp.R)))
	for i := range arp.R {
		buf, _ = arp.R[i].AppendBinary(buf)
	}
	return buf, nil
}

// maxFoldingRounds The folding rounds a proof aggregating the maximum amount
// of commitments takes. Anything larger is rejected before allocating.
const maxFoldingRounds = bulletproofs.LogCommitmentBits + 4

func (arp *AggregateRangeProof[T]) FromReader(reader utils.ReaderAndByteReader) (err error) {
	if err = arp.A.FromReader(reader); err != nil {
		return err
	}
	if err = arp.A1.FromReader(reader); err != nil {
		return err
	}
	if err = arp.B.FromReader(reader); err != nil {
		return err
	}

	var sec curve25519.PrivateKeyBytes
	for _, s := range []*curve25519.Scalar{&arp.R1, &arp.S1, &arp.D1} {
		if _, err = io.ReadFull(reader, sec[:]); err != nil {
			return err
		}
		// scalars are reduced, not rejected, when out of range
		curve25519.BytesToScalar32(s, sec)
	}

	var n uint64
	{
		if n, err = utils.ReadCanonicalUvarint(reader); err != nil {
			return err
		}
		if n > maxFoldingRounds {
			return ErrInvalidProofSize
		}

		var p curve25519.PublicKey[T]
		for range n {
			if err = p.FromReader(reader); err != nil {
				return err
			}
			arp.L = append(arp.L, p)
		}
	}
	{
		if n, err = utils.ReadCanonicalUvarint(reader); err != nil {
			return err
		}
		if n > maxFoldingRounds {
			return ErrInvalidProofSize
		}

		var p curve25519.PublicKey[T]
		for range n {
			if err = p.FromReader(reader); err != nil {
				return err
			}
			arp.R = append(arp.R, p)
		}
	}

	return nil
}
