package subtle

import "github.com/subtlecrypto/engine/internal/provider"

// Crypto exposes the two trivial CSPRNG sinks alongside the Subtle
// engine: getRandomValues and randomUUID. Both are synchronous; the
// spec notes them only for completeness since the real work lives in
// the Provider.
type Crypto struct {
	provider provider.Provider
}

// NewCrypto wraps p as a Crypto sink.
func NewCrypto(p provider.Provider) *Crypto {
	return &Crypto{provider: p}
}

// GetRandomValues fills buf with cryptographically random bytes,
// in place, and returns it.
func (c *Crypto) GetRandomValues(buf []byte) ([]byte, error) {
	if len(buf) > 65536 {
		return nil, Errorf(KindOperation, "getRandomValues: buffer exceeds 65536 bytes")
	}
	if err := c.provider.RandomBytes(buf); err != nil {
		return nil, Errorf(KindOperation, "getRandomValues: %s", err)
	}
	return buf, nil
}

// RandomUUID returns a random (version 4) UUID string.
func (c *Crypto) RandomUUID() (string, error) {
	id, err := c.provider.RandomUUID()
	if err != nil {
		return "", Errorf(KindOperation, "randomUUID: %s", err)
	}
	return id, nil
}
