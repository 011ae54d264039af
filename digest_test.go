package subtle

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigestSHA256Abc(t *testing.T) {
	e := NewDefault()
	out, err := e.Digest(context.Background(), "SHA-256", []byte("abc")).Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(out))
}

func TestDigestUnknownAlgorithm(t *testing.T) {
	e := NewDefault()
	_, err := e.Digest(context.Background(), "MD5", nil).Await(context.Background())
	require.Error(t, err)
	require.Equal(t, "NotSupportedError", DOMName(err))
}

func TestDigestCaseInsensitiveName(t *testing.T) {
	e := NewDefault()
	lower, err := e.Digest(context.Background(), "sha-256", []byte("abc")).Await(context.Background())
	require.NoError(t, err)
	upper, err := e.Digest(context.Background(), "SHA-256", []byte("abc")).Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, upper, lower)
}

func TestDigestDoesNotAliasInputBuffer(t *testing.T) {
	e := NewDefault()
	data := []byte("abc")
	fut := e.Digest(context.Background(), "SHA-256", data)
	data[0] = 'x' // mutate after the call; must not affect the in-flight digest
	out, err := fut.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(out))
}
