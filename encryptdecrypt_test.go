package subtle

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func zeroKeyCryptoKey(t *testing.T, e *Engine, n int, usages []Usage) *CryptoKey {
	t.Helper()
	h := e.store.Put(StoredKey{Type: StoredSecret, Material: make([]byte, n)})
	k, err := newCryptoKey(KeyTypeSecret, true, usages, bareAlgorithm{Name: "AES-CBC"}, h, false)
	require.NoError(t, err)
	return k
}

func TestAESCBCZeroKeyZeroIVVector(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	key := zeroKeyCryptoKey(t, e, 16, []Usage{UsageEncrypt, UsageDecrypt})
	iv := make([]byte, 16)
	pt := make([]byte, 16)

	ct, err := e.Encrypt(ctx, AesCbcParams{Name: "AES-CBC", Iv: iv}, key, pt).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, "66e94bd4ef8a2c3b884cfa59ca342b2e", hex.EncodeToString(ct))

	decrypted, err := e.Decrypt(ctx, AesCbcParams{Name: "AES-CBC", Iv: iv}, key, ct).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, pt, decrypted)
}

func TestAESCBCRejectsUnalignedIV(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	key := zeroKeyCryptoKey(t, e, 16, []Usage{UsageEncrypt})
	_, err := e.Encrypt(ctx, AesCbcParams{Name: "AES-CBC", Iv: make([]byte, 12)}, key, make([]byte, 16)).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "OperationError", DOMName(err))
}

func TestAESGCMRoundTripWithAdditionalData(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	res, err := e.GenerateKey(ctx, AesKeyGenParams{Name: "AES-GCM", Length: 256}, true, []Usage{UsageEncrypt, UsageDecrypt}).Await(ctx)
	require.NoError(t, err)
	key := res.(*CryptoKey)
	iv := make([]byte, 12)
	aad := []byte("header")

	ct, err := e.Encrypt(ctx, AesGcmParams{Name: "AES-GCM", Iv: iv, AdditionalData: aad}, key, []byte("payload")).Await(ctx)
	require.NoError(t, err)

	_, err = e.Decrypt(ctx, AesGcmParams{Name: "AES-GCM", Iv: iv, AdditionalData: []byte("wrong")}, key, ct).Await(ctx)
	require.Error(t, err)

	pt, err := e.Decrypt(ctx, AesGcmParams{Name: "AES-GCM", Iv: iv, AdditionalData: aad}, key, ct).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), pt)
}

func TestEncryptRejectsWrongUsage(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	key := zeroKeyCryptoKey(t, e, 16, []Usage{UsageDecrypt})
	_, err := e.Encrypt(ctx, AesCbcParams{Name: "AES-CBC", Iv: make([]byte, 16)}, key, make([]byte, 16)).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "InvalidAccessError", DOMName(err))
}

func TestEncryptRejectsAlgorithmKeyMismatch(t *testing.T) {
	ctx := context.Background()
	e := NewDefault()
	h := e.store.Put(StoredKey{Type: StoredSecret, Material: make([]byte, 16)})
	key, err := newCryptoKey(KeyTypeSecret, true, []Usage{UsageEncrypt}, bareAlgorithm{Name: "AES-GCM"}, h, false)
	require.NoError(t, err)
	_, err = e.Encrypt(ctx, AesCbcParams{Name: "AES-CBC", Iv: make([]byte, 16)}, key, make([]byte, 16)).Await(ctx)
	require.Error(t, err)
	require.Equal(t, "InvalidAccessError", DOMName(err))
}
