package subtle

import (
	"context"
	"crypto/ecdh"
)

// DeriveBits dispatches deriveBits to the family-specific deriver
// selected by alg's concrete type. lengthBits may be 0 to request the
// ECDH "natural curve size" default; it is otherwise required to be a
// positive multiple of 8.
func (e *Engine) DeriveBits(ctx context.Context, alg Algorithm, baseKey *CryptoKey, lengthBits int) *Future[[]byte] {
	switch p := alg.(type) {
	case EcdhKeyDeriveParams:
		return e.deriveECDH(p, baseKey, lengthBits)
	case HkdfParams:
		return e.deriveHKDF(p, baseKey, lengthBits)
	case Pbkdf2Params:
		return e.derivePBKDF2(p, baseKey, lengthBits)
	default:
		return resolved[[]byte](nil, Errorf(KindNotSupported, "deriveBits: unsupported algorithm descriptor"))
	}
}

func requireLengthBits(lengthBits int) error {
	if lengthBits <= 0 || lengthBits%8 != 0 {
		return Errorf(KindOperation, "deriveBits: length must be a positive multiple of 8 bits, got %d", lengthBits)
	}
	return nil
}

func (e *Engine) deriveECDH(p EcdhKeyDeriveParams, baseKey *CryptoKey, lengthBits int) *Future[[]byte] {
	normalized, err := normalizeEcdhKeyDeriveParams(opDeriveBits, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(baseKey, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(baseKey, KeyTypePrivate); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(baseKey, UsageDeriveBits); err != nil {
		return resolved[[]byte](nil, err)
	}
	if normalized.Public.Algorithm.AlgoName() != baseKey.Algorithm.AlgoName() {
		return resolved[[]byte](nil, Errorf(KindInvalidAccess, "deriveBits: ECDH public parameter algorithm mismatch"))
	}
	if ecKeyCurve(normalized.Public) != ecKeyCurve(baseKey) {
		return resolved[[]byte](nil, Errorf(KindInvalidAccess, "deriveBits: ECDH curve mismatch"))
	}
	priv, err := keyMaterialAs[*ecdh.PrivateKey](e.store, baseKey)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	pub, err := keyMaterialAs[*ecdh.PublicKey](e.store, normalized.Public)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	requested := lengthBits
	if requested != 0 {
		if err := requireLengthBits(requested); err != nil {
			return resolved[[]byte](nil, err)
		}
	}
	return newFuture(func() ([]byte, error) {
		full, err := e.provider.DeriveBitsECDH(priv, pub, naturalFieldSizeBits(baseKey))
		if err != nil {
			return nil, Errorf(KindOperation, "deriveBits: %s", err)
		}
		if requested == 0 {
			return full, nil
		}
		n := requested / 8
		if n > len(full) {
			return nil, Errorf(KindOperation, "deriveBits: requested length exceeds shared secret size")
		}
		return full[:n], nil
	})
}

// naturalFieldSizeBits returns the curve's full field size rounded up
// to a byte boundary, in bits, for ECDH's length=null default.
func naturalFieldSizeBits(key *CryptoKey) int {
	switch ecKeyCurve(key) {
	case "P-256":
		return 256
	case "P-384":
		return 384
	default:
		return 0
	}
}

func (e *Engine) deriveHKDF(p HkdfParams, baseKey *CryptoKey, lengthBits int) *Future[[]byte] {
	normalized, err := normalizeHkdfParams(opDeriveBits, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireLengthBits(lengthBits); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(baseKey, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(baseKey, KeyTypeSecret); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(baseKey, UsageDeriveBits); err != nil {
		return resolved[[]byte](nil, err)
	}
	raw, err := keyMaterialAs[[]byte](e.store, baseKey)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.DeriveBitsHKDF(raw, normalized.Hash.Name, normalized.Salt, normalized.Info, lengthBits)
		if err != nil {
			return nil, Errorf(KindOperation, "deriveBits: %s", err)
		}
		return out, nil
	})
}

func (e *Engine) derivePBKDF2(p Pbkdf2Params, baseKey *CryptoKey, lengthBits int) *Future[[]byte] {
	normalized, err := normalizePbkdf2Params(opDeriveBits, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireLengthBits(lengthBits); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(baseKey, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(baseKey, KeyTypeSecret); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(baseKey, UsageDeriveBits); err != nil {
		return resolved[[]byte](nil, err)
	}
	raw, err := keyMaterialAs[[]byte](e.store, baseKey)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.DeriveBitsPBKDF2(raw, normalized.Hash.Name, normalized.Salt, normalized.Iterations, lengthBits)
		if err != nil {
			return nil, Errorf(KindOperation, "deriveBits: %s", err)
		}
		return out, nil
	})
}

// DeriveKey implements the deriveKey contract: derive the requested
// number of bits per derivedKeyType's own length rule, then import
// them as a fresh key under derivedKeyType. The two normalizations
// (deriveKey's own descriptor, and derivedKeyType as both an
// importKey schema and a "get key length" schema) are independent
// pure calls, per the spec's double-normalization design note.
func (e *Engine) DeriveKey(ctx context.Context, alg Algorithm, baseKey *CryptoKey, derivedKeyType Algorithm, extractable bool, usages []Usage) *Future[*CryptoKey] {
	lengthBits, err := deriveKeyLengthBits(derivedKeyType)
	if err != nil {
		return resolved[*CryptoKey](nil, err)
	}
	bitsFuture := e.DeriveBits(ctx, alg, baseKey, lengthBits)
	return newFuture(func() (*CryptoKey, error) {
		bits, err := bitsFuture.Await(ctx)
		if err != nil {
			return nil, err
		}
		return e.ImportKey(ctx, FormatRaw, bits, derivedKeyType, extractable, usages).Await(ctx)
	})
}

// deriveKeyLengthBits computes the "get key length" schema's result
// for derivedKeyType, independent of the importKey schema normalize
// path ImportKey runs later.
func deriveKeyLengthBits(derivedKeyType Algorithm) (int, error) {
	switch p := derivedKeyType.(type) {
	case AesKeyGenParams:
		if p.Length != 128 && p.Length != 192 && p.Length != 256 {
			return 0, Errorf(KindOperation, "deriveKey: AES length must be 128, 192, or 256 bits")
		}
		return p.Length, nil
	case HmacImportParams:
		if p.HasLength && p.Length > 0 {
			return p.Length, nil
		}
		return hmacDefaultLengthBits(p.Hash.Name), nil
	case HmacKeyGenParams:
		if p.HasLength && p.Length > 0 {
			return p.Length, nil
		}
		return hmacDefaultLengthBits(p.Hash.Name), nil
	default:
		return 0, Errorf(KindNotSupported, "deriveKey: unsupported derivedKeyType descriptor")
	}
}
