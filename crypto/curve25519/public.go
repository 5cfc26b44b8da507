package curve25519

import (
	"errors"
	"io"
	"unsafe"

	fasthex "github.com/tmthrgd/go-hex"
)

const PublicKeySize = 32

var ZeroPublicKeyBytes = PublicKeyBytes{}

var ErrInvalidPoint = errors.New("invalid point encoding")

type VarTimePublicKey = PublicKey[VarTimeOperations]
type ConstantTimePublicKey = PublicKey[ConstantTimeOperations]

type PublicKey[T PointOperations] struct {
	p Point
}

func To[T2 PointOperations, T1 PointOperations](u *PublicKey[T1]) *PublicKey[T2] {
	return (*PublicKey[T2])(unsafe.Pointer(u))
}

func FromPoint[T PointOperations](u *Point) *PublicKey[T] {
	return (*PublicKey[T])(unsafe.Pointer(u))
}

func (v *PublicKey[T]) NewPoint(u *Point) *PublicKey[T] {
	n := new(PublicKey[T])
	n.p.Set(u)
	return n
}

func (v *PublicKey[T]) op() T {
	var t T
	return t
}

func (v *PublicKey[T]) Set(u *PublicKey[T]) *PublicKey[T] {
	v.p.Set(&u.p)
	return v
}

// SetBytes Decompress an Ed25519 point, allowing any on-curve encoding.
//
// Unlike DecodeCompressedPoint this does not ban unreduced field elements,
// mirroring classic decompression as performed on incoming signature data.
func (v *PublicKey[T]) SetBytes(buf []byte) (*PublicKey[T], error) {
	if _, err := v.p.SetBytes(buf); err != nil {
		return nil, ErrInvalidPoint
	}
	return v, nil
}

func (v *PublicKey[T]) Add(p, q *PublicKey[T]) *PublicKey[T] {
	v.op().Add(&v.p, &p.p, &q.p)
	return v
}

func (v *PublicKey[T]) Subtract(p, q *PublicKey[T]) *PublicKey[T] {
	v.op().Subtract(&v.p, &p.p, &q.p)
	return v
}

func (v *PublicKey[T]) ScalarBaseMult(x *Scalar) *PublicKey[T] {
	v.op().ScalarBaseMult(&v.p, x)
	return v
}

func (v *PublicKey[T]) ScalarMult(x *Scalar, q *PublicKey[T]) *PublicKey[T] {
	v.op().ScalarMult(&v.p, x, &q.p)
	return v
}

func (v *PublicKey[T]) ScalarMultPrecomputed(x *Scalar, q *Generator) *PublicKey[T] {
	v.op().ScalarMultPrecomputed(&v.p, x, q)
	return v
}

func (v *PublicKey[T]) MultByCofactor(q *PublicKey[T]) *PublicKey[T] {
	v.p.MultByCofactor(&q.p)
	return v
}

func (v *PublicKey[T]) DoubleScalarBaseMult(a *Scalar, A *PublicKey[T], b *Scalar) *PublicKey[T] {
	v.op().DoubleScalarBaseMult(&v.p, a, &A.p, b)
	return v
}

func (v *PublicKey[T]) DoubleScalarBaseMultPrecomputed(a *Scalar, A *Generator, b *Scalar) *PublicKey[T] {
	v.op().DoubleScalarBaseMultPrecomputed(&v.p, a, A, b)
	return v
}

func (v *PublicKey[T]) DoubleScalarMult(a *Scalar, A *PublicKey[T], b *Scalar, B *PublicKey[T]) *PublicKey[T] {
	v.op().DoubleScalarMult(&v.p, a, &A.p, b, &B.p)
	return v
}

func (v *PublicKey[T]) DoubleScalarMultPrecomputed(a *Scalar, A *Generator, b *Scalar, B *Generator) *PublicKey[T] {
	v.op().DoubleScalarMultPrecomputed(&v.p, a, A, b, B)
	return v
}

func (v *PublicKey[T]) MultiScalarMult(scalars []*Scalar, points []*PublicKey[T]) *PublicKey[T] {
	// #nosec G103 -- PublicKey wraps a single Point
	pts := unsafe.Slice((**Point)(unsafe.Pointer(unsafe.SliceData(points))), len(points))
	v.op().MultiScalarMult(&v.p, scalars, pts)
	return v
}

func (v *PublicKey[T]) MultiScalarMultPoints(scalars []*Scalar, points []*Point) *PublicKey[T] {
	v.op().MultiScalarMult(&v.p, scalars, points)
	return v
}

func (v *PublicKey[T]) IsSmallOrder() bool {
	return v.op().IsSmallOrder(&v.p)
}

func (v *PublicKey[T]) IsTorsionFree() bool {
	return v.op().IsTorsionFree(&v.p)
}

func (v *PublicKey[T]) IsIdentity() bool {
	return v.p.Equal(identityPoint) == 1
}

func (v *PublicKey[T]) Equal(u *PublicKey[T]) int {
	return v.p.Equal(&u.p)
}

func (v *PublicKey[T]) Bytes() PublicKeyBytes {
	return PublicKeyBytes(v.p.Bytes())
}

func (v *PublicKey[T]) Slice() []byte {
	return v.p.Bytes()
}

func (v *PublicKey[T]) String() string {
	return fasthex.EncodeToString(v.Slice())
}

func (v *PublicKey[T]) P() *Point {
	return &v.p
}

func (v *PublicKey[T]) AppendBinary(preAllocatedBuf []byte) ([]byte, error) {
	return append(preAllocatedBuf, v.Slice()...), nil
}

func (v *PublicKey[T]) FromReader(reader io.Reader) error {
	var buf PublicKeyBytes
	if _, err := io.ReadFull(reader, buf[:]); err != nil {
		return err
	}
	_, err := v.SetBytes(buf[:])
	return err
}

type PublicKeyBytes [PublicKeySize]byte

func (k *PublicKeyBytes) Slice() []byte {
	return (*k)[:]
}

func (k *PublicKeyBytes) Point() *ConstantTimePublicKey {
	return DecodeCompressedPoint(new(ConstantTimePublicKey), *k)
}

func (k *PublicKeyBytes) String() string {
	return fasthex.EncodeToString(k.Slice())
}

func (k *PublicKeyBytes) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || len(b) == 2 {
		return nil
	}

	if len(b) != PublicKeySize*2+2 {
		return errors.New("wrong key size")
	}

	if _, err := fasthex.Decode(k[:], b[1:len(b)-1]); err != nil {
		return err
	} else {
		return nil
	}
}

func (k PublicKeyBytes) MarshalJSON() ([]byte, error) {
	var buf [PublicKeySize*2 + 2]byte
	buf[0] = '"'
	buf[PublicKeySize*2+1] = '"'
	fasthex.Encode(buf[1:], k[:])
	return buf[:], nil
}
