package subtle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalNameCaseInsensitive(t *testing.T) {
	canon, err := canonicalName(opGenerateKey, "aes-gcm")
	require.NoError(t, err)
	require.Equal(t, "AES-GCM", canon)
}

func TestCanonicalNameUnknownAlgorithm(t *testing.T) {
	_, err := canonicalName(opGenerateKey, "AES-XTS")
	require.Error(t, err)
	require.Equal(t, "NotSupportedError", DOMName(err))
}

func TestCanonicalNameOperationScoped(t *testing.T) {
	// HKDF is a valid importKey/deriveBits algorithm but never a
	// generateKey one.
	_, err := canonicalName(opGenerateKey, "HKDF")
	require.Error(t, err)
	_, err = canonicalName(opImportKey, "HKDF")
	require.NoError(t, err)
}

func TestCopyBytesIsIndependent(t *testing.T) {
	src := []byte{1, 2, 3}
	dup := copyBytes(src)
	dup[0] = 0xff
	require.Equal(t, byte(1), src[0])
}

func TestCopyBytesNil(t *testing.T) {
	require.Nil(t, copyBytes(nil))
}

func TestIntersectUsagesPreservesOrderAndDedups(t *testing.T) {
	got := intersectUsages(
		[]Usage{UsageDecrypt, UsageEncrypt, UsageDecrypt, UsageSign},
		[]Usage{UsageEncrypt, UsageDecrypt},
	)
	require.Equal(t, []Usage{UsageDecrypt, UsageEncrypt}, got)
}
