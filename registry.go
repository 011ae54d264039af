package subtle

import "strings"

// Operation names a SubtleCrypto entry point for registry lookups.
type Operation int

const (
	opDigest Operation = iota
	opGenerateKey
	opImportKey
	opExportKey
	opSign
	opVerify
	opEncrypt
	opDecrypt
	opDeriveBits
	opDeriveKey
	opWrapKey
	opUnwrapKey
)

// registry is the two-level static table: operation -> lowercased
// caller name -> canonical name. A name absent from an operation's
// row is not supported for that operation.
var registry = map[Operation]map[string]string{
	opDigest: hashNames(),
	opGenerateKey: namesOf(
		"RSASSA-PKCS1-v1_5", "RSA-PSS", "RSA-OAEP",
		"ECDSA", "ECDH",
		"AES-CTR", "AES-CBC", "AES-GCM", "AES-KW",
		"HMAC",
	),
	opImportKey: namesOf(
		"HMAC", "AES-CTR", "AES-CBC", "AES-GCM", "AES-KW",
		"HKDF", "PBKDF2",
		"RSASSA-PKCS1-v1_5", "RSA-PSS", "RSA-OAEP",
		"ECDSA", "ECDH",
	),
	opExportKey: namesOf(
		"HMAC", "AES-CTR", "AES-CBC", "AES-GCM", "AES-KW",
		"HKDF", "PBKDF2",
		"RSASSA-PKCS1-v1_5", "RSA-PSS", "RSA-OAEP",
		"ECDSA", "ECDH",
	),
	opSign:   namesOf("RSASSA-PKCS1-v1_5", "RSA-PSS", "ECDSA", "HMAC"),
	opVerify: namesOf("RSASSA-PKCS1-v1_5", "RSA-PSS", "ECDSA", "HMAC"),
	opEncrypt: namesOf("RSA-OAEP", "AES-CTR", "AES-CBC", "AES-GCM"),
	opDecrypt: namesOf("RSA-OAEP", "AES-CTR", "AES-CBC", "AES-GCM"),
	opDeriveBits: namesOf("ECDH", "HKDF", "PBKDF2"),
	opDeriveKey:  namesOf("ECDH", "HKDF", "PBKDF2"),
	opWrapKey:    namesOf("RSA-OAEP", "AES-CTR", "AES-CBC", "AES-GCM", "AES-KW"),
	opUnwrapKey:  namesOf("RSA-OAEP", "AES-CTR", "AES-CBC", "AES-GCM", "AES-KW"),
}

func namesOf(canonical ...string) map[string]string {
	m := make(map[string]string, len(canonical))
	for _, c := range canonical {
		m[strings.ToLower(c)] = c
	}
	return m
}

func hashNames() map[string]string {
	return namesOf("SHA-1", "SHA-256", "SHA-384", "SHA-512")
}

// canonicalName looks up name case-insensitively in op's row. It is
// the first step of every normalize* helper (normalizeHash below and
// those in normalize.go).
func canonicalName(op Operation, name string) (string, error) {
	row, ok := registry[op]
	if !ok {
		return "", Errorf(KindNotSupported, "registry: unknown operation")
	}
	canon, ok := row[strings.ToLower(name)]
	if !ok {
		return "", Errorf(KindNotSupported, "registry: algorithm %q not supported for this operation", name)
	}
	return canon, nil
}

// normalizeHash normalizes a HashAlgorithmIdentifier, recursing with
// Operation = opDigest per the Normalizer's own rule.
func normalizeHash(name string) (HashAlgorithm, error) {
	canon, err := canonicalName(opDigest, name)
	if err != nil {
		return HashAlgorithm{}, err
	}
	return HashAlgorithm{Name: canon}, nil
}

// copyBytes returns an owned copy of b so that a caller's later
// mutation of the original buffer cannot affect the operation this
// descriptor is used in.
func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
