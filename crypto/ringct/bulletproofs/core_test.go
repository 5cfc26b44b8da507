package bulletproofs

import (
	"testing"

	"git.gammaspectra.live/Salvium/ringct/crypto"
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct"
)

func TestDecompose(t *testing.T) {
	var expected curve25519.Scalar

	for _, amount := range []uint64{0, 1, 2, 1337, 1 << 63, ^uint64(0)} {
		bits := Decompose[curve25519.ConstantTimeOperations](amount)
		if len(bits) != CommitmentBits {
			t.Fatalf("expected %d bits, got %d", CommitmentBits, len(bits))
		}

		recombined := bits.InnerProduct(TwoScalarVectorPowers[curve25519.ConstantTimeOperations]())
		if recombined.Equal(ringct.AmountToScalar(&expected, amount)) == 0 {
			t.Fatalf("amount %d did not recombine", amount)
		}
	}
}

func TestPaddedPowerOfTwo(t *testing.T) {
	for _, entry := range [][2]int{
		{1, 1}, {2, 2}, {3, 4}, {4, 4}, {5, 8}, {9, 16}, {16, 16},
	} {
		if padded := PaddedPowerOfTwo(entry[0]); padded != entry[1] {
			t.Fatalf("PaddedPowerOfTwo(%d) = %d, expected %d", entry[0], padded, entry[1])
		}
	}
}

func TestScalarPow(t *testing.T) {
	randomReader := crypto.NewDeterministicTestGenerator()

	var base, out, expected curve25519.Scalar
	if curve25519.RandomScalar(&base, randomReader) == nil {
		t.Fatal("could not draw base")
	}

	expected.Set(scalarOne)
	for exp := uint64(0); exp < 80; exp++ {
		if ScalarPow(&out, &base, exp).Equal(&expected) == 0 {
			t.Fatalf("base**%d mismatch", exp)
		}
		expected.Multiply(&expected, &base)
	}
}

func TestChallengeProducts(t *testing.T) {
	randomReader := crypto.NewDeterministicTestGenerator()

	const rounds = 4

	challenges := make([]curve25519.Scalar, rounds)
	inverses := make([]curve25519.Scalar, rounds)
	for i := range challenges {
		if curve25519.RandomScalar(&challenges[i], randomReader) == nil {
			t.Fatal("could not draw challenge")
		}
		inverses[i].Invert(&challenges[i])
	}

	products := ChallengeProducts(challenges, inverses)
	if len(products) != 1<<rounds {
		t.Fatalf("expected %d products, got %d", 1<<rounds, len(products))
	}

	// slot bits select challenge or inverse, most significant round first
	var expected curve25519.Scalar
	for slot := range products {
		expected.Set(scalarOne)
		for j := range rounds {
			if slot&(1<<(rounds-1-j)) != 0 {
				expected.Multiply(&expected, &challenges[j])
			} else {
				expected.Multiply(&expected, &inverses[j])
			}
		}
		if products[slot].Equal(&expected) == 0 {
			t.Fatalf("product mismatch at slot %d", slot)
		}
	}
}

func TestCalculateClawback(t *testing.T) {
	for _, entry := range []struct {
		outputs  int
		clawback int
		lrLen    int
	}{
		{1, 0, 6},
		{2, 0, 7},
		{4, 460, 8},
		{16, 3430, 10},
	} {
		clawback, lrLen := CalculateClawback(true, entry.outputs)
		if lrLen != entry.lrLen {
			t.Fatalf("%d outputs: expected %d rounds, got %d", entry.outputs, entry.lrLen, lrLen)
		}
		if clawback != entry.clawback {
			t.Fatalf("%d outputs: expected clawback %d, got %d", entry.outputs, entry.clawback, clawback)
		}
	}
}
