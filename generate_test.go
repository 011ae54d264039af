package subtle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAESKeyRoundTripsThroughEncrypt(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, AesKeyGenParams{Name: "AES-GCM", Length: 128}, true, []Usage{UsageEncrypt, UsageDecrypt}).Await(ctx)
	require.NoError(t, err)
	key := res.(*CryptoKey)
	require.Equal(t, KeyTypeSecret, key.Type)
	require.True(t, key.Extractable)

	iv := make([]byte, 12)
	ct, err := e.Encrypt(ctx, AesGcmParams{Name: "AES-GCM", Iv: iv}, key, []byte("hello")).Await(ctx)
	require.NoError(t, err)
	pt, err := e.Decrypt(ctx, AesGcmParams{Name: "AES-GCM", Iv: iv}, key, ct).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), pt)
}

func TestGenerateAESKeyRejectsEmptyFinalUsages(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	_, err := e.GenerateKey(ctx, AesKeyGenParams{Name: "AES-GCM", Length: 128}, true, nil).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "SyntaxError", DOMName(err))
}

func TestGenerateAESKeyRejectsBadLength(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	_, err := e.GenerateKey(ctx, AesKeyGenParams{Name: "AES-CBC", Length: 100}, true, []Usage{UsageEncrypt}).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "OperationError", DOMName(err))
}

func TestGenerateHMACKeyDefaultLength(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, HmacKeyGenParams{Name: "HMAC", Hash: HashAlgorithm{Name: "SHA-256"}}, true, []Usage{UsageSign, UsageVerify}).Await(ctx)
	require.NoError(t, err)
	key := res.(*CryptoKey)
	raw, err := keyMaterialAs[[]byte](e.store, key)
	require.NoError(t, err)
	require.Len(t, raw, 32) // 256 bits
}

func TestGenerateRSAKeyPairSplitsUsagesByHalf(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, RsaHashedKeyGenParams{
		Name:          "RSASSA-PKCS1-v1_5",
		ModulusLength: 2048,
		Hash:          HashAlgorithm{Name: "SHA-256"},
	}, true, []Usage{UsageSign, UsageVerify}).Await(ctx)
	require.NoError(t, err)
	pair := res.(*CryptoKeyPair)
	require.Equal(t, KeyTypePrivate, pair.PrivateKey.Type)
	require.Equal(t, KeyTypePublic, pair.PublicKey.Type)
	require.True(t, pair.PublicKey.Extractable)
	require.Contains(t, pair.PrivateKey.Usages, UsageSign)
	require.Contains(t, pair.PublicKey.Usages, UsageVerify)
	require.NotContains(t, pair.PrivateKey.Usages, UsageVerify)
}

func TestGenerateECDHPublicKeyAllowsEmptyUsages(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, EcKeyGenParams{Name: "ECDH", NamedCurve: "P-256"}, true, []Usage{UsageDeriveBits}).Await(ctx)
	require.NoError(t, err)
	pair := res.(*CryptoKeyPair)
	require.Empty(t, pair.PublicKey.Usages)
	require.True(t, pair.PublicKey.Extractable)
}

func TestGenerateECDSAKeyPairRejectsEmptyPrivateUsages(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	_, err := e.GenerateKey(ctx, EcKeyGenParams{Name: "ECDSA", NamedCurve: "P-256"}, true, []Usage{UsageVerify}).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "SyntaxError", DOMName(err))
}

func TestGenerateRSAKeyPairRejectsEmptyPrivateUsages(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	_, err := e.GenerateKey(ctx, RsaHashedKeyGenParams{
		Name:          "RSASSA-PKCS1-v1_5",
		ModulusLength: 2048,
		Hash:          HashAlgorithm{Name: "SHA-256"},
	}, true, []Usage{UsageVerify}).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "SyntaxError", DOMName(err))
}

func TestGenerateUnsupportedCurveRejected(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	_, err := e.GenerateKey(ctx, EcKeyGenParams{Name: "ECDSA", NamedCurve: "P-521"}, true, []Usage{UsageSign}).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "NotSupportedError", DOMName(err))
}
