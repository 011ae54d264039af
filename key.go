package subtle

// KeyType is the caller-visible type tag of a CryptoKey.
type KeyType string

const (
	KeyTypeSecret  KeyType = "secret"
	KeyTypePublic  KeyType = "public"
	KeyTypePrivate KeyType = "private"
)

// CryptoKey is the caller-visible wrapper around a Key Store entry.
// It is the engine's sole unit of key identity; cloning it (see
// clone) shares the underlying Handle rather than duplicating
// material.
type CryptoKey struct {
	Type        KeyType
	Extractable bool
	Algorithm   Algorithm
	Usages      []Usage
	handle      Handle
}

// Handle returns k's Key Store handle. Exported for use by operation
// dispatchers within this package's call graph; not meant to leak to
// untrusted callers of an embedding application.
func (k *CryptoKey) Handle() Handle { return k.handle }

// CryptoKeyPair is the result of generateKey for asymmetric
// algorithms.
type CryptoKeyPair struct {
	PublicKey  *CryptoKey
	PrivateKey *CryptoKey
}

// newCryptoKey is the Key Lifecycle Manager's sole constructor path.
// Public keys are forced extractable regardless of the extractable
// argument, per spec. Private/secret keys constructed with empty
// usages are rejected with SyntaxError unless allowEmptyUsages is set
// by the caller (the ECDH-public-at-generateKey special case goes
// through the KeyTypePublic branch instead, where this never fires).
func newCryptoKey(typ KeyType, extractable bool, usages []Usage, algo Algorithm, h Handle, allowEmptyUsages bool) (*CryptoKey, error) {
	if typ == KeyTypePublic {
		extractable = true
	}
	if typ != KeyTypePublic && len(usages) == 0 && !allowEmptyUsages {
		return nil, Errorf(KindSyntax, "key of type %s constructed with no usages", typ)
	}
	return &CryptoKey{
		Type:        typ,
		Extractable: extractable,
		Algorithm:   algo,
		Usages:      append([]Usage(nil), usages...),
		handle:      h,
	}, nil
}

// clone returns a new wrapper sharing k's Handle; the underlying key
// material is not duplicated.
func clone(k *CryptoKey) *CryptoKey {
	return &CryptoKey{
		Type:        k.Type,
		Extractable: k.Extractable,
		Algorithm:   k.Algorithm,
		Usages:      append([]Usage(nil), k.Usages...),
		handle:      k.handle,
	}
}

// requireUsage returns an InvalidAccessError unless u is among k's
// usages — dispatcher precondition P3.
func requireUsage(k *CryptoKey, u Usage) error {
	if !hasUsage(k.Usages, u) {
		return Errorf(KindInvalidAccess, "key does not have usage %q", u)
	}
	return nil
}

// requireType returns an InvalidAccessError unless k.Type == want —
// dispatcher precondition P4.
func requireType(k *CryptoKey, want KeyType) error {
	if k.Type != want {
		return Errorf(KindInvalidAccess, "expected key type %s, got %s", want, k.Type)
	}
	return nil
}

// requireAlgoName returns an InvalidAccessError unless k's algorithm
// name matches want — dispatcher precondition P2.
func requireAlgoName(k *CryptoKey, want string) error {
	if k.Algorithm.AlgoName() != want {
		return Errorf(KindInvalidAccess, "algorithm %s does not match key algorithm %s", want, k.Algorithm.AlgoName())
	}
	return nil
}
