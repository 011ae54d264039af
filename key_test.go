package subtle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCryptoKeyRejectsEmptyUsages(t *testing.T) {
	_, err := newCryptoKey(KeyTypeSecret, true, nil, bareAlgorithm{Name: "AES-GCM"}, Handle(1), false)
	require.Error(t, err)
	require.Equal(t, "SyntaxError", DOMName(err))
}

func TestNewCryptoKeyAllowsEmptyUsagesWhenPermitted(t *testing.T) {
	k, err := newCryptoKey(KeyTypePublic, false, nil, bareAlgorithm{Name: "ECDH"}, Handle(1), true)
	require.NoError(t, err)
	require.Empty(t, k.Usages)
}

func TestNewCryptoKeyForcesPublicExtractable(t *testing.T) {
	k, err := newCryptoKey(KeyTypePublic, false, []Usage{UsageVerify}, bareAlgorithm{Name: "ECDSA"}, Handle(1), false)
	require.NoError(t, err)
	require.True(t, k.Extractable)
}

func TestCloneSharesHandle(t *testing.T) {
	k, err := newCryptoKey(KeyTypeSecret, true, []Usage{UsageEncrypt}, bareAlgorithm{Name: "AES-GCM"}, Handle(42), false)
	require.NoError(t, err)
	c := clone(k)
	require.Equal(t, k.Handle(), c.Handle())
	c.Usages[0] = UsageDecrypt
	require.Equal(t, UsageEncrypt, k.Usages[0])
}

func TestRequireUsageTypeAlgoName(t *testing.T) {
	k, err := newCryptoKey(KeyTypeSecret, true, []Usage{UsageEncrypt}, bareAlgorithm{Name: "AES-GCM"}, Handle(1), false)
	require.NoError(t, err)

	require.NoError(t, requireUsage(k, UsageEncrypt))
	require.Error(t, requireUsage(k, UsageDecrypt))

	require.NoError(t, requireType(k, KeyTypeSecret))
	require.Error(t, requireType(k, KeyTypePublic))

	require.NoError(t, requireAlgoName(k, "AES-GCM"))
	require.Error(t, requireAlgoName(k, "AES-CBC"))
}

func TestKeyStorePutGetDrop(t *testing.T) {
	s := NewKeyStore()
	h := s.Put(StoredKey{Type: StoredSecret, Material: []byte("secret")})
	stored, err := s.Get(h)
	require.NoError(t, err)
	require.Equal(t, []byte("secret"), stored.Material)

	s.Drop(h)
	_, err = s.Get(h)
	require.Error(t, err)
	require.Equal(t, "InvalidAccessError", DOMName(err))
}
