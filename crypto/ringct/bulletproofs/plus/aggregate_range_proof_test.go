package plus

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"
	"testing"

	"git.gammaspectra.live/Salvium/ringct/crypto"
	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct"
	"git.gammaspectra.live/Salvium/ringct/crypto/ringct/bulletproofs"
	"github.com/stretchr/testify/require"
)

func randomWitness(t *testing.T, randomReader io.Reader, amounts ...uint64) AggregateRangeWitness {
	witness := make(AggregateRangeWitness, 0, len(amounts))
	var mask curve25519.Scalar
	for _, amount := range amounts {
		if curve25519.RandomScalar(&mask, randomReader) == nil {
			t.Fatal("could not draw mask")
		}
		witness = append(witness, ringct.Commitment{
			Mask:   mask,
			Amount: amount,
		})
	}
	return witness
}

func TestAggregateRangeProof(t *testing.T) {
	t.Run("Constant", func(t *testing.T) {
		testAggregateRangeProof[curve25519.ConstantTimeOperations](t, crypto.NewDeterministicTestGenerator())
	})
	t.Run("VarTime", func(t *testing.T) {
		testAggregateRangeProof[curve25519.VarTimeOperations](t, crypto.NewDeterministicTestGenerator())
	})
}

func testAggregateRangeProof[T curve25519.PointOperations](t *testing.T, randomReader io.Reader) {
	for m := 1; m <= bulletproofs.MaxCommitments; m++ {
		t.Run(fmt.Sprintf("#%d", m), func(t *testing.T) {
			amounts := make([]uint64, m)
			var buf [8]byte
			for i := range amounts {
				if _, err := io.ReadFull(randomReader, buf[:]); err != nil {
					t.Fatal(err)
				}
				amounts[i] = binary.LittleEndian.Uint64(buf[:])
			}

			witness := randomWitness(t, randomReader, amounts...)
			statement := NewAggregateRangeStatement[T](witness)

			proof, err := statement.Prove(witness, randomReader)
			if err != nil {
				t.Fatal(err)
			}

			if !proof.Verify(statement.V) {
				t.Fatal("proof did not verify")
			}
		})
	}
}

func TestAggregateRangeProofRounds(t *testing.T) {
	randomReader := crypto.NewDeterministicTestGenerator()

	// one commitment folds in exactly log2(64) rounds, a second adds one
	for _, entry := range []struct {
		amounts []uint64
		rounds  int
	}{
		{[]uint64{1000000000}, 6},
		{[]uint64{1000000000, 5000000000}, 7},
		{[]uint64{0, math.MaxUint64, 1}, 8},
	} {
		witness := randomWitness(t, randomReader, entry.amounts...)
		statement := NewAggregateRangeStatement[curve25519.VarTimeOperations](witness)

		proof, err := statement.Prove(witness, randomReader)
		if err != nil {
			t.Fatal(err)
		}

		if len(proof.L) != entry.rounds || len(proof.R) != entry.rounds {
			t.Fatalf("expected %d folding rounds, got %d/%d", entry.rounds, len(proof.L), len(proof.R))
		}

		if !proof.Verify(statement.V) {
			t.Fatalf("%d outputs: proof did not verify", len(entry.amounts))
		}
	}
}

func TestAggregateRangeProofTampered(t *testing.T) {
	randomReader := crypto.NewDeterministicTestGenerator()

	witness := randomWitness(t, randomReader, 1000000000, 5000000000)
	statement := NewAggregateRangeStatement[curve25519.VarTimeOperations](witness)

	proof, err := statement.Prove(witness, randomReader)
	if err != nil {
		t.Fatal(err)
	}

	if !proof.Verify(statement.V) {
		t.Fatal("proof did not verify")
	}

	t.Run("ReorderedCommitments", func(t *testing.T) {
		reversed := slices.Clone(statement.V)
		slices.Reverse(reversed)
		if proof.Verify(reversed) {
			t.Fatal("verified against reordered commitments")
		}
	})

	t.Run("WrongCommitmentCount", func(t *testing.T) {
		if proof.Verify(statement.V[:1]) {
			t.Fatal("verified against a single commitment")
		}
		if proof.Verify(nil) {
			t.Fatal("verified against no commitments")
		}
	})

	t.Run("SubstitutedCommitment", func(t *testing.T) {
		other := randomWitness(t, randomReader, 1, 5000000000)
		if proof.Verify(NewAggregateRangeStatement[curve25519.VarTimeOperations](other).V) {
			t.Fatal("verified against foreign commitments")
		}
	})

	t.Run("Scalars", func(t *testing.T) {
		for i, f := range []*curve25519.Scalar{&proof.R1, &proof.S1, &proof.D1} {
			tampered := proof
			var s curve25519.Scalar
			s.Add(f, one)
			switch i {
			case 0:
				tampered.R1 = s
			case 1:
				tampered.S1 = s
			case 2:
				tampered.D1 = s
			}
			if tampered.Verify(statement.V) {
				t.Fatalf("verified with scalar %d tampered", i)
			}
		}
	})

	t.Run("Points", func(t *testing.T) {
		tampered := proof
		tampered.A = proof.A1
		if tampered.Verify(statement.V) {
			t.Fatal("verified with A substituted")
		}

		tampered = proof
		tampered.L = slices.Clone(proof.L)
		tampered.L[0] = proof.R[0]
		if tampered.Verify(statement.V) {
			t.Fatal("verified with L[0] substituted")
		}
	})

	t.Run("TruncatedRounds", func(t *testing.T) {
		tampered := proof
		tampered.L = proof.L[:len(proof.L)-1]
		tampered.R = proof.R[:len(proof.R)-1]
		if tampered.Verify(statement.V) {
			t.Fatal("verified with a folding round dropped")
		}
	})
}

func TestAggregateRangeProofBatch(t *testing.T) {
	randomReader := crypto.NewDeterministicTestGenerator()

	var entries []BatchEntry[curve25519.VarTimeOperations]
	for _, amounts := range [][]uint64{
		{0},
		{1000000000, math.MaxUint64},
		{1, 2, 3, 4, 5},
	} {
		witness := randomWitness(t, randomReader, amounts...)
		statement := NewAggregateRangeStatement[curve25519.VarTimeOperations](witness)

		proof, err := statement.Prove(witness, randomReader)
		if err != nil {
			t.Fatal(err)
		}

		entries = append(entries, BatchEntry[curve25519.VarTimeOperations]{
			Commitments: statement.V,
			Proof:       &proof,
		})
	}

	if !VerifyBatch(randomReader, entries...) {
		t.Fatal("batch did not verify")
	}

	if VerifyBatch[curve25519.VarTimeOperations](randomReader) {
		t.Fatal("empty batch verified")
	}

	// corrupting any single proof fails the whole batch
	for i := range entries {
		tampered := *entries[i].Proof
		tampered.R1.Add(&tampered.R1, one)

		corrupted := slices.Clone(entries)
		corrupted[i] = BatchEntry[curve25519.VarTimeOperations]{
			Commitments: entries[i].Commitments,
			Proof:       &tampered,
		}
		if VerifyBatch(randomReader, corrupted...) {
			t.Fatalf("batch verified with proof %d corrupted", i)
		}
	}
}

func TestAggregateRangeProofSerialization(t *testing.T) {
	randomReader := crypto.NewDeterministicTestGenerator()

	for _, amounts := range [][]uint64{
		{1337},
		{1000000000, 5000000000, 0, math.MaxUint64},
	} {
		witness := randomWitness(t, randomReader, amounts...)
		statement := NewAggregateRangeStatement[curve25519.VarTimeOperations](witness)

		proof, err := statement.Prove(witness, randomReader)
		require.NoError(t, err)

		data, err := proof.AppendBinary(make([]byte, 0, proof.BufferLength()))
		require.NoError(t, err)
		require.Len(t, data, proof.BufferLength())

		var decoded AggregateRangeProof[curve25519.VarTimeOperations]
		require.NoError(t, decoded.FromReader(bytes.NewReader(data)))

		data2, err := decoded.AppendBinary(make([]byte, 0, decoded.BufferLength()))
		require.NoError(t, err)
		require.Equal(t, data, data2)

		require.True(t, decoded.Verify(statement.V))

		// any truncation fails to parse
		var truncated AggregateRangeProof[curve25519.VarTimeOperations]
		require.Error(t, truncated.FromReader(bytes.NewReader(data[:len(data)-1])))
	}
}
