package subtle

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRSAPKCS8SPKIExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, RsaHashedKeyGenParams{
		Name:          "RSASSA-PKCS1-v1_5",
		ModulusLength: 2048,
		Hash:          HashAlgorithm{Name: "SHA-256"},
	}, true, []Usage{UsageSign, UsageVerify}).Await(ctx)
	require.NoError(t, err)
	pair := res.(*CryptoKeyPair)

	privBytes, err := e.ExportKey(ctx, FormatPKCS8, pair.PrivateKey).Await(ctx)
	require.NoError(t, err)
	pubBytes, err := e.ExportKey(ctx, FormatSPKI, pair.PublicKey).Await(ctx)
	require.NoError(t, err)

	importedPriv, err := e.ImportKey(ctx, FormatPKCS8, privBytes, RsaHashedImportParams{Name: "RSASSA-PKCS1-v1_5", Hash: HashAlgorithm{Name: "SHA-256"}}, true, []Usage{UsageSign}).Await(ctx)
	require.NoError(t, err)
	importedPub, err := e.ImportKey(ctx, FormatSPKI, pubBytes, RsaHashedImportParams{Name: "RSASSA-PKCS1-v1_5", Hash: HashAlgorithm{Name: "SHA-256"}}, true, []Usage{UsageVerify}).Await(ctx)
	require.NoError(t, err)

	sig, err := e.Sign(ctx, RsaHashedImportParams{Name: "RSASSA-PKCS1-v1_5", Hash: HashAlgorithm{Name: "SHA-256"}}, importedPriv, []byte("msg")).Await(ctx)
	require.NoError(t, err)
	ok, err := e.Verify(ctx, RsaHashedImportParams{Name: "RSASSA-PKCS1-v1_5", Hash: HashAlgorithm{Name: "SHA-256"}}, importedPub, sig, []byte("msg")).Await(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRSAJWKExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, RsaHashedKeyGenParams{
		Name:          "RSA-OAEP",
		ModulusLength: 2048,
		Hash:          HashAlgorithm{Name: "SHA-256"},
	}, true, []Usage{UsageEncrypt, UsageDecrypt}).Await(ctx)
	require.NoError(t, err)
	pair := res.(*CryptoKeyPair)

	jwkBytes, err := e.ExportKey(ctx, FormatJWK, pair.PrivateKey).Await(ctx)
	require.NoError(t, err)

	imported, err := e.ImportKey(ctx, FormatJWK, jwkBytes, RsaHashedImportParams{Name: "RSA-OAEP", Hash: HashAlgorithm{Name: "SHA-256"}}, true, []Usage{UsageDecrypt}).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, KeyTypePrivate, imported.Type)
}

func TestECDSARawExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, EcKeyGenParams{Name: "ECDSA", NamedCurve: "P-256"}, true, []Usage{UsageSign, UsageVerify}).Await(ctx)
	require.NoError(t, err)
	pair := res.(*CryptoKeyPair)

	raw, err := e.ExportKey(ctx, FormatRaw, pair.PublicKey).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, byte(0x04), raw[0]) // uncompressed point tag

	imported, err := e.ImportKey(ctx, FormatRaw, raw, EcKeyImportParams{Name: "ECDSA", NamedCurve: "P-256"}, true, []Usage{UsageVerify}).Await(ctx)
	require.NoError(t, err)

	sig, err := e.Sign(ctx, EcdsaParams{Name: "ECDSA", Hash: HashAlgorithm{Name: "SHA-256"}}, pair.PrivateKey, []byte("m")).Await(ctx)
	require.NoError(t, err)
	ok, err := e.Verify(ctx, EcdsaParams{Name: "ECDSA", Hash: HashAlgorithm{Name: "SHA-256"}}, imported, sig, []byte("m")).Await(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestECDSAJWKExportImportRoundTripPadsFixedLength(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, EcKeyGenParams{Name: "ECDSA", NamedCurve: "P-256"}, true, []Usage{UsageSign, UsageVerify}).Await(ctx)
	require.NoError(t, err)
	pair := res.(*CryptoKeyPair)

	privJWK, err := e.ExportKey(ctx, FormatJWK, pair.PrivateKey).Await(ctx)
	require.NoError(t, err)
	pubJWK, err := e.ExportKey(ctx, FormatJWK, pair.PublicKey).Await(ctx)
	require.NoError(t, err)

	var priv, pub JWK
	require.NoError(t, json.Unmarshal(privJWK, &priv))
	require.NoError(t, json.Unmarshal(pubJWK, &pub))
	for _, member := range []string{priv.X, priv.Y, priv.D, pub.X, pub.Y} {
		raw, err := b64Decode(member)
		require.NoError(t, err)
		require.Len(t, raw, 32) // P-256 field size, fixed per RFC 7518
	}

	importedPriv, err := e.ImportKey(ctx, FormatJWK, privJWK, EcKeyImportParams{Name: "ECDSA", NamedCurve: "P-256"}, true, []Usage{UsageSign}).Await(ctx)
	require.NoError(t, err)
	importedPub, err := e.ImportKey(ctx, FormatJWK, pubJWK, EcKeyImportParams{Name: "ECDSA", NamedCurve: "P-256"}, true, []Usage{UsageVerify}).Await(ctx)
	require.NoError(t, err)

	sig, err := e.Sign(ctx, EcdsaParams{Name: "ECDSA", Hash: HashAlgorithm{Name: "SHA-256"}}, importedPriv, []byte("m")).Await(ctx)
	require.NoError(t, err)
	ok, err := e.Verify(ctx, EcdsaParams{Name: "ECDSA", Hash: HashAlgorithm{Name: "SHA-256"}}, importedPub, sig, []byte("m")).Await(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestECDHJWKExportImportRoundTripPadsFixedLength(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, EcKeyGenParams{Name: "ECDH", NamedCurve: "P-384"}, true, []Usage{UsageDeriveBits}).Await(ctx)
	require.NoError(t, err)
	pair := res.(*CryptoKeyPair)

	privJWK, err := e.ExportKey(ctx, FormatJWK, pair.PrivateKey).Await(ctx)
	require.NoError(t, err)
	pubJWK, err := e.ExportKey(ctx, FormatJWK, pair.PublicKey).Await(ctx)
	require.NoError(t, err)

	var priv, pub JWK
	require.NoError(t, json.Unmarshal(privJWK, &priv))
	require.NoError(t, json.Unmarshal(pubJWK, &pub))
	for _, member := range []string{priv.X, priv.Y, priv.D, pub.X, pub.Y} {
		raw, err := b64Decode(member)
		require.NoError(t, err)
		require.Len(t, raw, 48) // P-384 field size, fixed per RFC 7518
	}

	importedPriv, err := e.ImportKey(ctx, FormatJWK, privJWK, EcKeyImportParams{Name: "ECDH", NamedCurve: "P-384"}, true, []Usage{UsageDeriveBits}).Await(ctx)
	require.NoError(t, err)
	importedPub, err := e.ImportKey(ctx, FormatJWK, pubJWK, EcKeyImportParams{Name: "ECDH", NamedCurve: "P-384"}, true, nil).Await(ctx)
	require.NoError(t, err)

	secretA, err := e.DeriveBits(ctx, EcdhKeyDeriveParams{Name: "ECDH", Public: importedPub}, pair.PrivateKey, 128).Await(ctx)
	require.NoError(t, err)
	secretB, err := e.DeriveBits(ctx, EcdhKeyDeriveParams{Name: "ECDH", Public: pair.PublicKey}, importedPriv, 128).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, secretA, secretB)
}

func TestECDHPKCS8SPKIBridgeRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, EcKeyGenParams{Name: "ECDH", NamedCurve: "P-384"}, true, []Usage{UsageDeriveBits}).Await(ctx)
	require.NoError(t, err)
	pair := res.(*CryptoKeyPair)

	privBytes, err := e.ExportKey(ctx, FormatPKCS8, pair.PrivateKey).Await(ctx)
	require.NoError(t, err)
	pubBytes, err := e.ExportKey(ctx, FormatSPKI, pair.PublicKey).Await(ctx)
	require.NoError(t, err)

	importedPriv, err := e.ImportKey(ctx, FormatPKCS8, privBytes, EcKeyImportParams{Name: "ECDH", NamedCurve: "P-384"}, true, []Usage{UsageDeriveBits}).Await(ctx)
	require.NoError(t, err)
	importedPub, err := e.ImportKey(ctx, FormatSPKI, pubBytes, EcKeyImportParams{Name: "ECDH", NamedCurve: "P-384"}, true, nil).Await(ctx)
	require.NoError(t, err)

	secretA, err := e.DeriveBits(ctx, EcdhKeyDeriveParams{Name: "ECDH", Public: importedPub}, pair.PrivateKey, 128).Await(ctx)
	require.NoError(t, err)
	secretB, err := e.DeriveBits(ctx, EcdhKeyDeriveParams{Name: "ECDH", Public: pair.PublicKey}, importedPriv, 128).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, secretA, secretB)
}

func TestImportKeyRejectsDisallowedFormat(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	_, err := e.ImportKey(ctx, FormatPKCS8, make([]byte, 16), bareAlgorithm{Name: "AES-GCM"}, true, []Usage{UsageEncrypt}).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "NotSupportedError", DOMName(err))
}

func TestImportKeyRejectsBadAESLength(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	_, err := e.ImportKey(ctx, FormatRaw, make([]byte, 10), bareAlgorithm{Name: "AES-GCM"}, true, []Usage{UsageEncrypt}).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "DataError", DOMName(err))
}

func TestImportKeyRejectsExtractableHKDF(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	_, err := e.ImportKey(ctx, FormatRaw, []byte("ikm"), bareAlgorithm{Name: "HKDF"}, true, []Usage{UsageDeriveBits}).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "SyntaxError", DOMName(err))
}

func TestExportKeyRejectsNonExtractable(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	k, err := e.ImportKey(ctx, FormatRaw, make([]byte, 16), bareAlgorithm{Name: "AES-GCM"}, false, []Usage{UsageEncrypt}).Await(ctx)
	require.NoError(t, err)
	_, err = e.ExportKey(ctx, FormatRaw, k).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "InvalidAccessError", DOMName(err))
}

func TestWrapUnwrapAESGCMRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	wrappingRes, err := e.GenerateKey(ctx, AesKeyGenParams{Name: "AES-GCM", Length: 256}, true, []Usage{UsageWrapKey, UsageUnwrapKey}).Await(ctx)
	require.NoError(t, err)
	wrappingKey := wrappingRes.(*CryptoKey)

	toWrapRes, err := e.GenerateKey(ctx, AesKeyGenParams{Name: "AES-CTR", Length: 128}, true, []Usage{UsageEncrypt, UsageDecrypt}).Await(ctx)
	require.NoError(t, err)
	toWrap := toWrapRes.(*CryptoKey)

	iv := make([]byte, 12)
	wrapAlg := AesGcmParams{Name: "AES-GCM", Iv: iv}
	wrapped, err := e.WrapKey(ctx, FormatRaw, toWrap, wrappingKey, wrapAlg).Await(ctx)
	require.NoError(t, err)

	unwrapped, err := e.UnwrapKey(ctx, FormatRaw, wrapped, wrappingKey, wrapAlg, AesKeyGenParams{Name: "AES-CTR", Length: 128}, true, []Usage{UsageEncrypt, UsageDecrypt}).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, KeyTypeSecret, unwrapped.Type)
}

func TestWrapKeyAESKWReturnsNotSupported(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	wrappingRes, err := e.GenerateKey(ctx, AesKeyGenParams{Name: "AES-KW", Length: 128}, true, []Usage{UsageWrapKey, UsageUnwrapKey}).Await(ctx)
	require.NoError(t, err)
	wrappingKey := wrappingRes.(*CryptoKey)

	toWrapRes, err := e.GenerateKey(ctx, AesKeyGenParams{Name: "AES-GCM", Length: 128}, true, []Usage{UsageEncrypt}).Await(ctx)
	require.NoError(t, err)
	toWrap := toWrapRes.(*CryptoKey)

	_, err = e.WrapKey(ctx, FormatRaw, toWrap, wrappingKey, bareAlgorithm{Name: "AES-KW"}).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "NotSupportedError", DOMName(err))
}

func TestWrapKeyRejectsNonExtractableKey(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	wrappingRes, err := e.GenerateKey(ctx, AesKeyGenParams{Name: "AES-GCM", Length: 128}, true, []Usage{UsageWrapKey}).Await(ctx)
	require.NoError(t, err)
	wrappingKey := wrappingRes.(*CryptoKey)

	toWrapRes, err := e.GenerateKey(ctx, AesKeyGenParams{Name: "AES-CTR", Length: 128}, false, []Usage{UsageEncrypt}).Await(ctx)
	require.NoError(t, err)
	toWrap := toWrapRes.(*CryptoKey)

	_, err = e.WrapKey(ctx, FormatRaw, toWrap, wrappingKey, AesGcmParams{Name: "AES-GCM", Iv: make([]byte, 12)}).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "InvalidAccessError", DOMName(err))
}
