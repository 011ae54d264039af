package subtle

import "context"

// Digest computes alg's hash of data. Grounded on the teacher's
// crypto.go __cryptoDigest dispatch: normalize, copy, call out,
// return bytes — the simplest operation in the dispatcher.
func (e *Engine) Digest(ctx context.Context, alg string, data []byte) *Future[[]byte] {
	normalized, err := normalizeHash(alg)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	owned := copyBytes(data)
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.Digest(normalized.Name, owned)
		if err != nil {
			return nil, Errorf(KindOperation, "digest: %s", err)
		}
		return out, nil
	})
}
