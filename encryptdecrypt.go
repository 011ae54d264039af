package subtle

import (
	"context"
	"crypto/rsa"
)

// Encrypt dispatches encrypt to the family-specific cipher selected
// by alg's concrete type.
func (e *Engine) Encrypt(ctx context.Context, alg Algorithm, key *CryptoKey, data []byte) *Future[[]byte] {
	owned := copyBytes(data)
	switch p := alg.(type) {
	case RsaOaepParams:
		return e.encryptRSAOAEP(p, key, owned)
	case AesCbcParams:
		return e.encryptAESCBC(p, key, owned)
	case AesCtrParams:
		return e.encryptAESCTR(p, key, owned)
	case AesGcmParams:
		return e.encryptAESGCM(p, key, owned)
	default:
		return resolved[[]byte](nil, Errorf(KindNotSupported, "encrypt: unsupported algorithm descriptor"))
	}
}

func (e *Engine) encryptRSAOAEP(p RsaOaepParams, key *CryptoKey, data []byte) *Future[[]byte] {
	normalized, err := normalizeRsaOaepParams(opEncrypt, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(key, KeyTypePublic); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(key, UsageEncrypt); err != nil {
		return resolved[[]byte](nil, err)
	}
	pub, err := keyMaterialAs[*rsa.PublicKey](e.store, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	hashName := rsaAlgoHash(key.Algorithm)
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.EncryptRSAOAEP(pub, hashName, normalized.Label, data)
		if err != nil {
			return nil, Errorf(KindOperation, "encrypt: %s", err)
		}
		return out, nil
	})
}

func (e *Engine) decryptRSAOAEP(p RsaOaepParams, key *CryptoKey, data []byte) *Future[[]byte] {
	normalized, err := normalizeRsaOaepParams(opDecrypt, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(key, KeyTypePrivate); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(key, UsageDecrypt); err != nil {
		return resolved[[]byte](nil, err)
	}
	priv, err := keyMaterialAs[*rsa.PrivateKey](e.store, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	hashName := rsaAlgoHash(key.Algorithm)
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.DecryptRSAOAEP(priv, hashName, normalized.Label, data)
		if err != nil {
			return nil, Errorf(KindOperation, "decrypt: %s", err)
		}
		return out, nil
	})
}

func (e *Engine) encryptAESCBC(p AesCbcParams, key *CryptoKey, data []byte) *Future[[]byte] {
	normalized, err := normalizeAesCbcParams(opEncrypt, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(key, KeyTypeSecret); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(key, UsageEncrypt); err != nil {
		return resolved[[]byte](nil, err)
	}
	raw, err := keyMaterialAs[[]byte](e.store, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.EncryptAESCBC(raw, normalized.Iv, data)
		if err != nil {
			return nil, Errorf(KindOperation, "encrypt: %s", err)
		}
		return out, nil
	})
}

func (e *Engine) decryptAESCBC(p AesCbcParams, key *CryptoKey, data []byte) *Future[[]byte] {
	normalized, err := normalizeAesCbcParams(opDecrypt, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(key, KeyTypeSecret); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(key, UsageDecrypt); err != nil {
		return resolved[[]byte](nil, err)
	}
	raw, err := keyMaterialAs[[]byte](e.store, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.DecryptAESCBC(raw, normalized.Iv, data)
		if err != nil {
			return nil, Errorf(KindOperation, "decrypt: %s", err)
		}
		return out, nil
	})
}

func (e *Engine) encryptAESCTR(p AesCtrParams, key *CryptoKey, data []byte) *Future[[]byte] {
	normalized, err := normalizeAesCtrParams(opEncrypt, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(key, KeyTypeSecret); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(key, UsageEncrypt); err != nil {
		return resolved[[]byte](nil, err)
	}
	raw, err := keyMaterialAs[[]byte](e.store, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.EncryptAESCTR(raw, normalized.Counter, normalized.Length, data)
		if err != nil {
			return nil, Errorf(KindOperation, "encrypt: %s", err)
		}
		return out, nil
	})
}

func (e *Engine) decryptAESCTR(p AesCtrParams, key *CryptoKey, data []byte) *Future[[]byte] {
	normalized, err := normalizeAesCtrParams(opDecrypt, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(key, KeyTypeSecret); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(key, UsageDecrypt); err != nil {
		return resolved[[]byte](nil, err)
	}
	raw, err := keyMaterialAs[[]byte](e.store, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.DecryptAESCTR(raw, normalized.Counter, normalized.Length, data)
		if err != nil {
			return nil, Errorf(KindOperation, "decrypt: %s", err)
		}
		return out, nil
	})
}

func (e *Engine) encryptAESGCM(p AesGcmParams, key *CryptoKey, data []byte) *Future[[]byte] {
	normalized, err := normalizeAesGcmParams(opEncrypt, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(key, KeyTypeSecret); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(key, UsageEncrypt); err != nil {
		return resolved[[]byte](nil, err)
	}
	raw, err := keyMaterialAs[[]byte](e.store, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.EncryptAESGCM(raw, normalized.Iv, normalized.AdditionalData, normalized.TagLength, data)
		if err != nil {
			return nil, Errorf(KindOperation, "encrypt: %s", err)
		}
		return out, nil
	})
}

func (e *Engine) decryptAESGCM(p AesGcmParams, key *CryptoKey, data []byte) *Future[[]byte] {
	normalized, err := normalizeAesGcmParams(opDecrypt, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(key, KeyTypeSecret); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(key, UsageDecrypt); err != nil {
		return resolved[[]byte](nil, err)
	}
	raw, err := keyMaterialAs[[]byte](e.store, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.DecryptAESGCM(raw, normalized.Iv, normalized.AdditionalData, normalized.TagLength, data)
		if err != nil {
			return nil, Errorf(KindOperation, "decrypt: %s", err)
		}
		return out, nil
	})
}

// Decrypt dispatches decrypt to the family-specific cipher selected
// by alg's concrete type.
func (e *Engine) Decrypt(ctx context.Context, alg Algorithm, key *CryptoKey, data []byte) *Future[[]byte] {
	owned := copyBytes(data)
	switch p := alg.(type) {
	case RsaOaepParams:
		return e.decryptRSAOAEP(p, key, owned)
	case AesCbcParams:
		return e.decryptAESCBC(p, key, owned)
	case AesCtrParams:
		return e.decryptAESCTR(p, key, owned)
	case AesGcmParams:
		return e.decryptAESGCM(p, key, owned)
	default:
		return resolved[[]byte](nil, Errorf(KindNotSupported, "decrypt: unsupported algorithm descriptor"))
	}
}
