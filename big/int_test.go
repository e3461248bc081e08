package big

import (
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/privacybydesign/clverify/cbor"
	"github.com/stretchr/testify/require"
)

func testJSON(t *testing.T, bigint *Int) *Int {
	bts, err := json.Marshal(bigint)
	require.NoError(t, err)
	require.Equal(t, `"`+bigint.String()+`"`, string(bts))
	unmarshaled := new(Int)
	err = json.Unmarshal(bts, unmarshaled)
	require.NoError(t, err)
	require.Zero(t, bigint.Cmp(unmarshaled))
	return unmarshaled
}

func testCBOR(t *testing.T, bigint *Int) {
	bts, err := cbor.Marshal(bigint)
	require.NoError(t, err)
	unmarshaled := new(Int)
	require.NoError(t, cbor.Unmarshal(bts, unmarshaled))
	require.Zero(t, bigint.Cmp(unmarshaled))
}

func TestInt(t *testing.T) {
	var i int64 = 42
	bigint := NewInt(i)
	unmarshaled := testJSON(t, bigint)
	require.Equal(t, i, unmarshaled.Int64())
	testCBOR(t, bigint)
}

func TestZero(t *testing.T) {
	var i int64 = 0
	bigint := NewInt(i)
	unmarshaled := testJSON(t, bigint)
	require.Equal(t, i, unmarshaled.Int64())
	testCBOR(t, bigint)
}

func TestBigInt(t *testing.T) {
	s := "8931748931759284679376938475395713602744853768923750102"
	bigint, err := FromDecimal(s)
	require.NoError(t, err)
	unmarshaled := testJSON(t, bigint)
	require.Equal(t, s, unmarshaled.String())
	testCBOR(t, bigint)
}

func TestUnquotedJSON(t *testing.T) {
	i := new(Int)
	require.NoError(t, json.Unmarshal([]byte("150136900874297269339868"), i))
	require.Equal(t, "150136900874297269339868", i.String())
}

func TestRandom(t *testing.T) {
	max := new(Int).Lsh(NewInt(1), 100)
	bigint, err := RandInt(rand.Reader, max)
	require.NoError(t, err)
	testJSON(t, bigint)
	testCBOR(t, bigint)
}

func TestNegative(t *testing.T) {
	bigint := NewInt(-42)
	_, err := json.Marshal(bigint)
	require.Error(t, err)
	_, err = cbor.Marshal(bigint)
	require.Error(t, err)
	_, err = FromDecimal("-42")
	require.Error(t, err)
}

func TestInvalidDecimal(t *testing.T) {
	_, err := FromDecimal("12ab")
	require.Error(t, err)
	require.Error(t, json.Unmarshal([]byte(`"0x12"`), new(Int)))
}
