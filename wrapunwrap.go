package subtle

import (
	"context"
	"crypto/rsa"
)

// normalizeInCategoryOr tries to resolve name under primary first and
// falls back to secondary on failure — the declarative replacement
// for the source's throw-and-catch wrapKey/encrypt dual-purpose
// lookup.
func normalizeInCategoryOr(primary, secondary Operation, name string) (string, error) {
	if canon, err := canonicalName(primary, name); err == nil {
		return canon, nil
	}
	return canonicalName(secondary, name)
}

// cipherWithWrappingKey runs the encrypt-shaped half of wrapAlgorithm
// against wrappingKey directly through the Provider, bypassing
// Engine.Encrypt's own precondition checks: wrapKey/unwrapKey verify
// the "wrapKey"/"unwrapKey" usage themselves, not "encrypt"/"decrypt",
// so the two usage vocabularies must not be conflated.
func (e *Engine) cipherWithWrappingKey(wrapAlgorithm Algorithm, wrappingKey *CryptoKey, data []byte, encrypt bool) *Future[[]byte] {
	switch p := wrapAlgorithm.(type) {
	case RsaOaepParams:
		normalized, err := normalizeRsaOaepParams(opWrapKey, p)
		if err != nil {
			return resolved[[]byte](nil, err)
		}
		hashName := rsaAlgoHash(wrappingKey.Algorithm)
		if encrypt {
			pub, err := keyMaterialAs[*rsa.PublicKey](e.store, wrappingKey)
			if err != nil {
				return resolved[[]byte](nil, err)
			}
			return newFuture(func() ([]byte, error) {
				out, err := e.provider.EncryptRSAOAEP(pub, hashName, normalized.Label, data)
				if err != nil {
					return nil, Errorf(KindOperation, "wrapKey: %s", err)
				}
				return out, nil
			})
		}
		priv, err := keyMaterialAs[*rsa.PrivateKey](e.store, wrappingKey)
		if err != nil {
			return resolved[[]byte](nil, err)
		}
		return newFuture(func() ([]byte, error) {
			out, err := e.provider.DecryptRSAOAEP(priv, hashName, normalized.Label, data)
			if err != nil {
				return nil, Errorf(KindOperation, "unwrapKey: %s", err)
			}
			return out, nil
		})
	case AesCbcParams:
		normalized, err := normalizeAesCbcParams(opWrapKey, p)
		if err != nil {
			return resolved[[]byte](nil, err)
		}
		raw, err := keyMaterialAs[[]byte](e.store, wrappingKey)
		if err != nil {
			return resolved[[]byte](nil, err)
		}
		return newFuture(func() ([]byte, error) {
			if encrypt {
				out, err := e.provider.EncryptAESCBC(raw, normalized.Iv, data)
				return out, wrapErr("wrapKey", err)
			}
			out, err := e.provider.DecryptAESCBC(raw, normalized.Iv, data)
			return out, wrapErr("unwrapKey", err)
		})
	case AesCtrParams:
		normalized, err := normalizeAesCtrParams(opWrapKey, p)
		if err != nil {
			return resolved[[]byte](nil, err)
		}
		raw, err := keyMaterialAs[[]byte](e.store, wrappingKey)
		if err != nil {
			return resolved[[]byte](nil, err)
		}
		return newFuture(func() ([]byte, error) {
			if encrypt {
				out, err := e.provider.EncryptAESCTR(raw, normalized.Counter, normalized.Length, data)
				return out, wrapErr("wrapKey", err)
			}
			out, err := e.provider.DecryptAESCTR(raw, normalized.Counter, normalized.Length, data)
			return out, wrapErr("unwrapKey", err)
		})
	case AesGcmParams:
		normalized, err := normalizeAesGcmParams(opWrapKey, p)
		if err != nil {
			return resolved[[]byte](nil, err)
		}
		raw, err := keyMaterialAs[[]byte](e.store, wrappingKey)
		if err != nil {
			return resolved[[]byte](nil, err)
		}
		return newFuture(func() ([]byte, error) {
			if encrypt {
				out, err := e.provider.EncryptAESGCM(raw, normalized.Iv, normalized.AdditionalData, normalized.TagLength, data)
				return out, wrapErr("wrapKey", err)
			}
			out, err := e.provider.DecryptAESGCM(raw, normalized.Iv, normalized.AdditionalData, normalized.TagLength, data)
			return out, wrapErr("unwrapKey", err)
		})
	default:
		return resolved[[]byte](nil, Errorf(KindNotSupported, "wrapKey: unsupported algorithm descriptor"))
	}
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return Errorf(KindOperation, "%s: %s", op, err)
}

// WrapKey exports key in format, then encrypts the exported bytes
// under wrappingKey using wrapAlgorithm. AES-KW's dispatch entry is
// kept present for feature detection but always fails with
// NotSupportedError, since no provider method backs it yet.
func (e *Engine) WrapKey(ctx context.Context, format Format, key *CryptoKey, wrappingKey *CryptoKey, wrapAlgorithm Algorithm) *Future[[]byte] {
	canon, err := normalizeInCategoryOr(opWrapKey, opEncrypt, wrapAlgorithm.AlgoName())
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if canon == "AES-KW" {
		return resolved[[]byte](nil, Errorf(KindNotSupported, "wrapKey: AES-KW is not backed by a provider"))
	}
	if err := requireAlgoName(wrappingKey, canon); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(wrappingKey, UsageWrapKey); err != nil {
		return resolved[[]byte](nil, err)
	}
	if !key.Extractable {
		return resolved[[]byte](nil, Errorf(KindInvalidAccess, "wrapKey: key is not extractable"))
	}
	exported, err := e.exportSync(format, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	return e.cipherWithWrappingKey(wrapAlgorithm, wrappingKey, exported, true)
}

// UnwrapKey decrypts wrapped under unwrappingKey using
// unwrapAlgorithm, then imports the result as unwrappedKeyAlgorithm.
// AES-KW's dispatch entry is kept present but always fails with
// NotSupportedError, matching WrapKey.
func (e *Engine) UnwrapKey(ctx context.Context, format Format, wrapped []byte, unwrappingKey *CryptoKey, unwrapAlgorithm Algorithm, unwrappedKeyAlgorithm Algorithm, extractable bool, usages []Usage) *Future[*CryptoKey] {
	canon, err := normalizeInCategoryOr(opUnwrapKey, opDecrypt, unwrapAlgorithm.AlgoName())
	if err != nil {
		return resolved[*CryptoKey](nil, err)
	}
	if canon == "AES-KW" {
		return resolved[*CryptoKey](nil, Errorf(KindNotSupported, "unwrapKey: AES-KW is not backed by a provider"))
	}
	if err := requireAlgoName(unwrappingKey, canon); err != nil {
		return resolved[*CryptoKey](nil, err)
	}
	if err := requireUsage(unwrappingKey, UsageUnwrapKey); err != nil {
		return resolved[*CryptoKey](nil, err)
	}
	decryptFuture := e.cipherWithWrappingKey(unwrapAlgorithm, unwrappingKey, copyBytes(wrapped), false)
	return newFuture(func() (*CryptoKey, error) {
		bytes, err := decryptFuture.Await(ctx)
		if err != nil {
			return nil, err
		}
		return e.ImportKey(ctx, format, bytes, unwrappedKeyAlgorithm, extractable, usages).Await(ctx)
	})
}
