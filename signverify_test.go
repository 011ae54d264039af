package subtle

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHMACSHA256EmptyMessageZeroKeyVector(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	h := e.store.Put(StoredKey{Type: StoredSecret, Material: make([]byte, 32)})
	key, err := newCryptoKey(KeyTypeSecret, true, []Usage{UsageSign, UsageVerify}, HmacImportParams{Name: "HMAC", Hash: HashAlgorithm{Name: "SHA-256"}}, h, false)
	require.NoError(t, err)

	sig, err := e.Sign(ctx, bareAlgorithm{Name: "HMAC"}, key, nil).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, "b613679a0814d9ec772f95d778c35fc5ff1697c493715653c6c712144292c5ad", hex.EncodeToString(sig))

	ok, err := e.Verify(ctx, bareAlgorithm{Name: "HMAC"}, key, sig, nil).Await(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestHMACVerifyRejectsTamperedSignature(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	h := e.store.Put(StoredKey{Type: StoredSecret, Material: make([]byte, 32)})
	key, err := newCryptoKey(KeyTypeSecret, true, []Usage{UsageSign, UsageVerify}, HmacImportParams{Name: "HMAC", Hash: HashAlgorithm{Name: "SHA-256"}}, h, false)
	require.NoError(t, err)

	sig, err := e.Sign(ctx, bareAlgorithm{Name: "HMAC"}, key, []byte("msg")).Await(ctx)
	require.NoError(t, err)
	sig[0] ^= 0xff

	ok, err := e.Verify(ctx, bareAlgorithm{Name: "HMAC"}, key, sig, []byte("msg")).Await(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestECDSASignVerifyRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, EcKeyGenParams{Name: "ECDSA", NamedCurve: "P-256"}, true, []Usage{UsageSign, UsageVerify}).Await(ctx)
	require.NoError(t, err)
	pair := res.(*CryptoKeyPair)

	sig, err := e.Sign(ctx, EcdsaParams{Name: "ECDSA", Hash: HashAlgorithm{Name: "SHA-256"}}, pair.PrivateKey, []byte("msg")).Await(ctx)
	require.NoError(t, err)

	ok, err := e.Verify(ctx, EcdsaParams{Name: "ECDSA", Hash: HashAlgorithm{Name: "SHA-256"}}, pair.PublicKey, sig, []byte("msg")).Await(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = e.Verify(ctx, EcdsaParams{Name: "ECDSA", Hash: HashAlgorithm{Name: "SHA-256"}}, pair.PublicKey, sig, []byte("other")).Await(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRSAPSSSignVerifyRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, RsaHashedKeyGenParams{
		Name:          "RSA-PSS",
		ModulusLength: 2048,
		Hash:          HashAlgorithm{Name: "SHA-256"},
	}, true, []Usage{UsageSign, UsageVerify}).Await(ctx)
	require.NoError(t, err)
	pair := res.(*CryptoKeyPair)

	sig, err := e.Sign(ctx, RsaPssParams{Name: "RSA-PSS", SaltLength: 32}, pair.PrivateKey, []byte("msg")).Await(ctx)
	require.NoError(t, err)

	ok, err := e.Verify(ctx, RsaPssParams{Name: "RSA-PSS", SaltLength: 32}, pair.PublicKey, sig, []byte("msg")).Await(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRSASSAPKCS1SignVerifyRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, RsaHashedKeyGenParams{
		Name:          "RSASSA-PKCS1-v1_5",
		ModulusLength: 2048,
		Hash:          HashAlgorithm{Name: "SHA-256"},
	}, true, []Usage{UsageSign, UsageVerify}).Await(ctx)
	require.NoError(t, err)
	pair := res.(*CryptoKeyPair)

	sig, err := e.Sign(ctx, RsaHashedImportParams{Name: "RSASSA-PKCS1-v1_5", Hash: HashAlgorithm{Name: "SHA-256"}}, pair.PrivateKey, []byte("msg")).Await(ctx)
	require.NoError(t, err)

	ok, err := e.Verify(ctx, RsaHashedImportParams{Name: "RSASSA-PKCS1-v1_5", Hash: HashAlgorithm{Name: "SHA-256"}}, pair.PublicKey, sig, []byte("msg")).Await(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSignRejectsWrongKeyType(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, EcKeyGenParams{Name: "ECDSA", NamedCurve: "P-256"}, true, []Usage{UsageSign, UsageVerify}).Await(ctx)
	require.NoError(t, err)
	pair := res.(*CryptoKeyPair)

	_, err = e.Sign(ctx, EcdsaParams{Name: "ECDSA", Hash: HashAlgorithm{Name: "SHA-256"}}, pair.PublicKey, []byte("msg")).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "InvalidAccessError", DOMName(err))
}
