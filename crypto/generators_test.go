package crypto

import (
	"testing"

	"git.gammaspectra.live/Salvium/ringct/crypto/curve25519"
	fasthex "github.com/tmthrgd/go-hex"
)

func TestGenerators(t *testing.T) {
	for _, entry := range []struct {
		name      string
		generator *curve25519.Generator
		expected  string
	}{
		{"H", GeneratorH, "8b655970153799af2aeadc9ff1add0ea6c7251d54154cfa92c173a0dd39c1f94"},
		{"T", GeneratorT, "966fc66b82cd56cf85eaec801c42845f5f408878d1561e00d3d7ded2794d094f"},
	} {
		if encoded := fasthex.EncodeToString(entry.generator.Point.Bytes()); encoded != entry.expected {
			t.Fatalf("generator %s mismatch: %s", entry.name, encoded)
		}
	}
}

func TestKeyImage(t *testing.T) {
	randomReader := NewDeterministicTestGenerator()

	var secret, other curve25519.Scalar
	curve25519.RandomScalar(&secret, randomReader)
	curve25519.RandomScalar(&other, randomReader)

	pair := NewKeyPairFromPrivate[curve25519.VarTimeOperations](&secret)

	image := GetKeyImage(pair)
	if image.IsIdentity() || !image.IsTorsionFree() {
		t.Fatal("degenerate key image")
	}

	// deterministic per key, distinct across keys
	if image.Equal(GetKeyImage(pair)) == 0 {
		t.Fatal("key image is not deterministic")
	}
	if image.Equal(GetKeyImage(NewKeyPairFromPrivate[curve25519.VarTimeOperations](&other))) == 1 {
		t.Fatal("distinct keys map to one image")
	}
}
