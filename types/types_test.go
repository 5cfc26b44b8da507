package types_test

import (
	"testing"

	"git.gammaspectra.live/Salvium/ringct/types"
	"git.gammaspectra.live/Salvium/ringct/utils"
	"github.com/stretchr/testify/require"
)

const testHashHex = "8b655970153799af2aeadc9ff1add0ea6c7251d54154cfa92c173a0dd39c1f94"

func TestHashRoundTrip(t *testing.T) {
	h := types.MustHashFromString(testHashHex)
	require.Equal(t, testHashHex, h.String())

	data, err := utils.MarshalJSON(h)
	require.NoError(t, err)
	require.Equal(t, `"`+testHashHex+`"`, string(data))

	var decoded types.Hash
	require.NoError(t, utils.UnmarshalJSON(data, &decoded))
	require.Equal(t, h, decoded)

	_, err = types.HashFromString("not hex")
	require.Error(t, err)
	_, err = types.HashFromString("abcd")
	require.Error(t, err)
}

func TestBytesRoundTrip(t *testing.T) {
	b := types.Bytes{0xde, 0xad, 0xbe, 0xef}
	require.Equal(t, "deadbeef", b.String())

	data, err := utils.MarshalJSON(b)
	require.NoError(t, err)
	require.Equal(t, `"deadbeef"`, string(data))

	var decoded types.Bytes
	require.NoError(t, utils.UnmarshalJSON(data, &decoded))
	require.Equal(t, b, decoded)

	require.Error(t, utils.UnmarshalJSON([]byte(`"zz"`), &decoded))
}
