package curve25519

// BatchInvert Inverts every scalar in s in place using Montgomery's trick,
// spending a single field inversion across the whole batch.
//
// All inputs must be nonzero; a zero input corrupts the whole batch.
func BatchInvert(s []*Scalar) {
	if len(s) == 0 {
		return
	}

	// running prefix products: prefix[i] = s[0] * ... * s[i]
	prefix := make([]Scalar, len(s))
	prefix[0].Set(s[0])
	for i := 1; i < len(s); i++ {
		prefix[i].Multiply(&prefix[i-1], s[i])
	}

	var inv Scalar
	inv.Invert(&prefix[len(s)-1])

	for i := len(s) - 1; i > 0; i-- {
		var tmp Scalar
		tmp.Multiply(&inv, &prefix[i-1])
		inv.Multiply(&inv, s[i])
		s[i].Set(&tmp)
	}
	s[0].Set(&inv)
}
