package subtle

import (
	"sync"
	"sync/atomic"
)

// StoredType tags the shape of a StoredKey's Material.
type StoredType int

const (
	StoredSecret StoredType = iota
	StoredPublic
	StoredPrivate
)

// StoredKey is the Key Store's record for a single Handle. Once
// inserted, Material is never mutated; replacing key material
// requires a new Handle. Material holds the native stdlib
// representation for the key's family: []byte for secret keys
// (AES/HMAC/HKDF/PBKDF2), *rsa.PrivateKey/*rsa.PublicKey for RSA,
// *ecdsa.PrivateKey/*ecdsa.PublicKey for ECDSA, and
// *ecdh.PrivateKey/*ecdh.PublicKey for ECDH.
type StoredKey struct {
	Type     StoredType
	Material any
}

// KeyStore is a process-wide mapping from opaque Handle to StoredKey,
// generalized from the per-request-scoped key table cryguy-worker
// keeps in its runtime state to the process-wide store this spec
// mandates. Entries are write-once; Put/Drop are the only mutating
// operations and are safe for concurrent use.
type KeyStore struct {
	counter atomic.Uint64
	entries sync.Map // Handle -> *StoredKey
}

// NewKeyStore returns an empty, ready-to-use KeyStore.
func NewKeyStore() *KeyStore {
	return &KeyStore{}
}

// Put inserts stored and returns its freshly allocated Handle.
func (s *KeyStore) Put(stored StoredKey) Handle {
	id := s.counter.Add(1)
	h := Handle(id)
	s.entries.Store(h, &stored)
	return h
}

// Get returns the StoredKey for h, or an InvalidAccessError-kinded
// error if h is unknown to the store.
func (s *KeyStore) Get(h Handle) (*StoredKey, error) {
	v, ok := s.entries.Load(h)
	if !ok {
		return nil, Errorf(KindInvalidAccess, "keystore: unknown handle")
	}
	return v.(*StoredKey), nil
}

// Drop removes h's entry; a no-op if h is already gone. The engine
// does not call Drop itself: an entry stays in the store after the
// last CryptoKey referencing h becomes unreachable, until Drop is
// called explicitly.
func (s *KeyStore) Drop(h Handle) {
	s.entries.Delete(h)
}
