package subtle

import (
	"context"
)

// GenerateKey dispatches generateKey to the family-specific
// generator selected by alg's concrete type, grounded on the
// teacher's setupCryptoExt/__cryptoGenerateKey switch. It returns
// either a *CryptoKey (symmetric families) or a *CryptoKeyPair
// (asymmetric families) as the Future's value.
func (e *Engine) GenerateKey(ctx context.Context, alg Algorithm, extractable bool, usages []Usage) *Future[any] {
	switch p := alg.(type) {
	case RsaHashedKeyGenParams:
		return e.generateRSA(p, extractable, usages)
	case EcKeyGenParams:
		return e.generateEC(p, extractable, usages)
	case AesKeyGenParams:
		return e.generateAES(p, extractable, usages)
	case HmacKeyGenParams:
		return e.generateHMAC(p, extractable, usages)
	default:
		return resolved[any](nil, Errorf(KindNotSupported, "generateKey: unsupported algorithm descriptor"))
	}
}

var rsaSignUsages = []Usage{UsageSign, UsageVerify}
var rsaOaepUsages = []Usage{UsageEncrypt, UsageDecrypt, UsageWrapKey, UsageUnwrapKey}

func (e *Engine) generateRSA(p RsaHashedKeyGenParams, extractable bool, usages []Usage) *Future[any] {
	normalized, err := normalizeRsaHashedKeyGenParams(opGenerateKey, p)
	if err != nil {
		return resolved[any](nil, err)
	}
	var allowed []Usage
	switch normalized.Name {
	case "RSASSA-PKCS1-v1_5", "RSA-PSS":
		allowed = rsaSignUsages
	case "RSA-OAEP":
		allowed = rsaOaepUsages
	default:
		return resolved[any](nil, Errorf(KindNotSupported, "generateKey: unsupported RSA algorithm %q", normalized.Name))
	}
	for _, u := range usages {
		if !hasUsage(allowed, u) {
			return resolved[any](nil, Errorf(KindOperation, "generateKey: usage %q not valid for %s", u, normalized.Name))
		}
	}
	privUsages, pubUsages := splitRSAUsages(normalized.Name, usages)
	if len(privUsages) == 0 {
		return resolved[any](nil, Errorf(KindSyntax, "generateKey: %s requires at least one private-key usage", normalized.Name))
	}
	return newFuture(func() (any, error) {
		priv, err := e.provider.GenerateRSAKeyPair(normalized.ModulusLength, normalized.PublicExponent)
		if err != nil {
			return nil, Errorf(KindOperation, "generateKey: %s", err)
		}
		pubHandle := e.store.Put(StoredKey{Type: StoredPublic, Material: &priv.PublicKey})
		privHandle := e.store.Put(StoredKey{Type: StoredPrivate, Material: priv})
		pubKey, err := newCryptoKey(KeyTypePublic, true, pubUsages, normalized, pubHandle, true)
		if err != nil {
			return nil, err
		}
		privKey, err := newCryptoKey(KeyTypePrivate, extractable, privUsages, normalized, privHandle, false)
		if err != nil {
			return nil, err
		}
		return &CryptoKeyPair{PublicKey: pubKey, PrivateKey: privKey}, nil
	})
}

func splitRSAUsages(algoName string, usages []Usage) (priv, pub []Usage) {
	switch algoName {
	case "RSASSA-PKCS1-v1_5", "RSA-PSS":
		return intersectUsages(usages, []Usage{UsageSign}), intersectUsages(usages, []Usage{UsageVerify})
	case "RSA-OAEP":
		return intersectUsages(usages, []Usage{UsageDecrypt, UsageUnwrapKey}), intersectUsages(usages, []Usage{UsageEncrypt, UsageWrapKey})
	default:
		return nil, nil
	}
}

var ecdsaUsagesAllowed = []Usage{UsageSign, UsageVerify}
var ecdhUsagesAllowed = []Usage{UsageDeriveKey, UsageDeriveBits}

func (e *Engine) generateEC(p EcKeyGenParams, extractable bool, usages []Usage) *Future[any] {
	normalized, err := normalizeEcKeyGenParams(opGenerateKey, p)
	if err != nil {
		return resolved[any](nil, err)
	}
	switch normalized.Name {
	case "ECDSA":
		for _, u := range usages {
			if !hasUsage(ecdsaUsagesAllowed, u) {
				return resolved[any](nil, Errorf(KindOperation, "generateKey: usage %q not valid for ECDSA", u))
			}
		}
		privUsages := intersectUsages(usages, []Usage{UsageSign})
		pubUsages := intersectUsages(usages, []Usage{UsageVerify})
		if len(privUsages) == 0 {
			return resolved[any](nil, Errorf(KindSyntax, "generateKey: ECDSA requires at least one private-key usage"))
		}
		return newFuture(func() (any, error) {
			priv, err := e.provider.GenerateECDSAKeyPair(normalized.NamedCurve)
			if err != nil {
				return nil, Errorf(KindOperation, "generateKey: %s", err)
			}
			pubHandle := e.store.Put(StoredKey{Type: StoredPublic, Material: &priv.PublicKey})
			privHandle := e.store.Put(StoredKey{Type: StoredPrivate, Material: priv})
			pubKey, err := newCryptoKey(KeyTypePublic, true, pubUsages, normalized, pubHandle, true)
			if err != nil {
				return nil, err
			}
			privKey, err := newCryptoKey(KeyTypePrivate, extractable, privUsages, normalized, privHandle, false)
			if err != nil {
				return nil, err
			}
			return &CryptoKeyPair{PublicKey: pubKey, PrivateKey: privKey}, nil
		})
	case "ECDH":
		for _, u := range usages {
			if !hasUsage(ecdhUsagesAllowed, u) {
				return resolved[any](nil, Errorf(KindOperation, "generateKey: usage %q not valid for ECDH", u))
			}
		}
		privUsages := intersectUsages(usages, ecdhUsagesAllowed)
		if len(privUsages) == 0 {
			return resolved[any](nil, Errorf(KindSyntax, "generateKey: ECDH requires at least one private-key usage"))
		}
		return newFuture(func() (any, error) {
			priv, err := e.provider.GenerateECDHKeyPair(normalized.NamedCurve)
			if err != nil {
				return nil, Errorf(KindOperation, "generateKey: %s", err)
			}
			pubHandle := e.store.Put(StoredKey{Type: StoredPublic, Material: priv.PublicKey()})
			privHandle := e.store.Put(StoredKey{Type: StoredPrivate, Material: priv})
			// ECDH public keys are permitted to carry empty usages.
			pubKey, err := newCryptoKey(KeyTypePublic, true, nil, normalized, pubHandle, true)
			if err != nil {
				return nil, err
			}
			privKey, err := newCryptoKey(KeyTypePrivate, extractable, privUsages, normalized, privHandle, false)
			if err != nil {
				return nil, err
			}
			return &CryptoKeyPair{PublicKey: pubKey, PrivateKey: privKey}, nil
		})
	default:
		return resolved[any](nil, Errorf(KindNotSupported, "generateKey: unsupported EC algorithm %q", normalized.Name))
	}
}

var aesCipherUsagesAllowed = []Usage{UsageEncrypt, UsageDecrypt, UsageWrapKey, UsageUnwrapKey}
var aesKwUsagesAllowed = []Usage{UsageWrapKey, UsageUnwrapKey}

func (e *Engine) generateAES(p AesKeyGenParams, extractable bool, usages []Usage) *Future[any] {
	normalized, err := normalizeAesKeyGenParams(opGenerateKey, p)
	if err != nil {
		return resolved[any](nil, err)
	}
	allowed := aesCipherUsagesAllowed
	if normalized.Name == "AES-KW" {
		allowed = aesKwUsagesAllowed
	}
	for _, u := range usages {
		if !hasUsage(allowed, u) {
			return resolved[any](nil, Errorf(KindOperation, "generateKey: usage %q not valid for %s", u, normalized.Name))
		}
	}
	final := intersectUsages(usages, allowed)
	if len(final) == 0 {
		return resolved[any](nil, Errorf(KindSyntax, "generateKey: %s requires at least one usage", normalized.Name))
	}
	return newFuture(func() (any, error) {
		keyBytes, err := e.provider.GenerateAESKey(normalized.Length)
		if err != nil {
			return nil, Errorf(KindOperation, "generateKey: %s", err)
		}
		handle := e.store.Put(StoredKey{Type: StoredSecret, Material: keyBytes})
		k, err := newCryptoKey(KeyTypeSecret, extractable, final, normalized, handle, false)
		if err != nil {
			return nil, err
		}
		return k, nil
	})
}

var hmacUsagesAllowed = []Usage{UsageSign, UsageVerify}

func (e *Engine) generateHMAC(p HmacKeyGenParams, extractable bool, usages []Usage) *Future[any] {
	normalized, err := normalizeHmacKeyGenParams(opGenerateKey, p)
	if err != nil {
		return resolved[any](nil, err)
	}
	for _, u := range usages {
		if !hasUsage(hmacUsagesAllowed, u) {
			return resolved[any](nil, Errorf(KindOperation, "generateKey: usage %q not valid for HMAC", u))
		}
	}
	final := intersectUsages(usages, hmacUsagesAllowed)
	if len(final) == 0 {
		return resolved[any](nil, Errorf(KindSyntax, "generateKey: HMAC requires at least one usage"))
	}
	return newFuture(func() (any, error) {
		keyBytes, err := e.provider.GenerateHMACKey(normalized.Length)
		if err != nil {
			return nil, Errorf(KindOperation, "generateKey: %s", err)
		}
		handle := e.store.Put(StoredKey{Type: StoredSecret, Material: keyBytes})
		k, err := newCryptoKey(KeyTypeSecret, extractable, final, normalized, handle, false)
		if err != nil {
			return nil, err
		}
		return k, nil
	})
}

// keyMaterialAs is a small helper the other dispatcher files use to
// fetch and type-assert a CryptoKey's stored material in one step.
func keyMaterialAs[T any](store *KeyStore, k *CryptoKey) (T, error) {
	var zero T
	stored, err := store.Get(k.Handle())
	if err != nil {
		return zero, err
	}
	v, ok := stored.Material.(T)
	if !ok {
		return zero, Errorf(KindInvalidAccess, "key material has unexpected shape")
	}
	return v, nil
}
