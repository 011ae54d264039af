package subtle

import (
	"context"
	"crypto/ecdsa"
	"crypto/rsa"
)

// Sign dispatches sign to the family-specific signer selected by
// alg's concrete type, enforcing preconditions P2-P4 before ever
// calling the Provider.
func (e *Engine) Sign(ctx context.Context, alg Algorithm, key *CryptoKey, data []byte) *Future[[]byte] {
	owned := copyBytes(data)
	switch p := alg.(type) {
	case bareAlgorithm: // HMAC: {name:"HMAC"}
		return e.signHMAC(p, key, owned)
	case RsaPssParams:
		return e.signRSAPSS(p, key, owned)
	case EcdsaParams:
		return e.signECDSA(p, key, owned)
	default:
		if alg.AlgoName() == "RSASSA-PKCS1-v1_5" {
			return e.signRSAPKCS1(key, owned)
		}
		return resolved[[]byte](nil, Errorf(KindNotSupported, "sign: unsupported algorithm descriptor"))
	}
}

func (e *Engine) signHMAC(p bareAlgorithm, key *CryptoKey, data []byte) *Future[[]byte] {
	normalized, err := normalizeBare(opSign, p.Name)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(key, KeyTypeSecret); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(key, UsageSign); err != nil {
		return resolved[[]byte](nil, err)
	}
	raw, err := keyMaterialAs[[]byte](e.store, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	hmacAlgo, ok := key.Algorithm.(HmacImportParams)
	hashName := ""
	if ok {
		hashName = hmacAlgo.Hash.Name
	} else if gen, ok := key.Algorithm.(HmacKeyGenParams); ok {
		hashName = gen.Hash.Name
	}
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.SignHMAC(raw, hashName, data)
		if err != nil {
			return nil, Errorf(KindOperation, "sign: %s", err)
		}
		return out, nil
	})
}

func (e *Engine) signRSAPKCS1(key *CryptoKey, data []byte) *Future[[]byte] {
	normalized, err := normalizeBare(opSign, "RSASSA-PKCS1-v1_5")
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(key, KeyTypePrivate); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(key, UsageSign); err != nil {
		return resolved[[]byte](nil, err)
	}
	priv, err := keyMaterialAs[*rsa.PrivateKey](e.store, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	hashName := rsaAlgoHash(key.Algorithm)
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.SignRSAPKCS1v15(priv, hashName, data)
		if err != nil {
			return nil, Errorf(KindOperation, "sign: %s", err)
		}
		return out, nil
	})
}

func (e *Engine) signRSAPSS(p RsaPssParams, key *CryptoKey, data []byte) *Future[[]byte] {
	normalized, err := normalizeRsaPssParams(opSign, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(key, KeyTypePrivate); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(key, UsageSign); err != nil {
		return resolved[[]byte](nil, err)
	}
	priv, err := keyMaterialAs[*rsa.PrivateKey](e.store, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	hashName := rsaAlgoHash(key.Algorithm)
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.SignRSAPSS(priv, hashName, normalized.SaltLength, data)
		if err != nil {
			return nil, Errorf(KindOperation, "sign: %s", err)
		}
		return out, nil
	})
}

func (e *Engine) signECDSA(p EcdsaParams, key *CryptoKey, data []byte) *Future[[]byte] {
	normalized, err := normalizeEcdsaParams(opSign, p)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireType(key, KeyTypePrivate); err != nil {
		return resolved[[]byte](nil, err)
	}
	if err := requireUsage(key, UsageSign); err != nil {
		return resolved[[]byte](nil, err)
	}
	priv, err := keyMaterialAs[*ecdsa.PrivateKey](e.store, key)
	if err != nil {
		return resolved[[]byte](nil, err)
	}
	return newFuture(func() ([]byte, error) {
		out, err := e.provider.SignECDSA(priv, normalized.Hash.Name, data)
		if err != nil {
			return nil, Errorf(KindOperation, "sign: %s", err)
		}
		return out, nil
	})
}

func rsaAlgoHash(a Algorithm) string {
	switch v := a.(type) {
	case RsaHashedKeyGenParams:
		return v.Hash.Name
	case RsaHashedImportParams:
		return v.Hash.Name
	default:
		return ""
	}
}

// Verify dispatches verify to the family-specific verifier selected
// by alg's concrete type.
func (e *Engine) Verify(ctx context.Context, alg Algorithm, key *CryptoKey, signature, data []byte) *Future[bool] {
	ownedSig := copyBytes(signature)
	ownedData := copyBytes(data)
	switch p := alg.(type) {
	case bareAlgorithm:
		return e.verifyHMAC(p, key, ownedSig, ownedData)
	case RsaPssParams:
		return e.verifyRSAPSS(p, key, ownedSig, ownedData)
	case EcdsaParams:
		return e.verifyECDSA(p, key, ownedSig, ownedData)
	default:
		if alg.AlgoName() == "RSASSA-PKCS1-v1_5" {
			return e.verifyRSAPKCS1(key, ownedSig, ownedData)
		}
		return resolved[bool](false, Errorf(KindNotSupported, "verify: unsupported algorithm descriptor"))
	}
}

func (e *Engine) verifyHMAC(p bareAlgorithm, key *CryptoKey, sig, data []byte) *Future[bool] {
	normalized, err := normalizeBare(opVerify, p.Name)
	if err != nil {
		return resolved[bool](false, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[bool](false, err)
	}
	if err := requireType(key, KeyTypeSecret); err != nil {
		return resolved[bool](false, err)
	}
	if err := requireUsage(key, UsageVerify); err != nil {
		return resolved[bool](false, err)
	}
	raw, err := keyMaterialAs[[]byte](e.store, key)
	if err != nil {
		return resolved[bool](false, err)
	}
	hashName := ""
	if gen, ok := key.Algorithm.(HmacKeyGenParams); ok {
		hashName = gen.Hash.Name
	} else if imp, ok := key.Algorithm.(HmacImportParams); ok {
		hashName = imp.Hash.Name
	}
	return newFuture(func() (bool, error) {
		ok, err := e.provider.VerifyHMAC(raw, hashName, data, sig)
		if err != nil {
			return false, Errorf(KindOperation, "verify: %s", err)
		}
		return ok, nil
	})
}

func (e *Engine) verifyRSAPKCS1(key *CryptoKey, sig, data []byte) *Future[bool] {
	normalized, err := normalizeBare(opVerify, "RSASSA-PKCS1-v1_5")
	if err != nil {
		return resolved[bool](false, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[bool](false, err)
	}
	if err := requireType(key, KeyTypePublic); err != nil {
		return resolved[bool](false, err)
	}
	if err := requireUsage(key, UsageVerify); err != nil {
		return resolved[bool](false, err)
	}
	pub, err := keyMaterialAs[*rsa.PublicKey](e.store, key)
	if err != nil {
		return resolved[bool](false, err)
	}
	hashName := rsaAlgoHash(key.Algorithm)
	return newFuture(func() (bool, error) {
		ok, err := e.provider.VerifyRSAPKCS1v15(pub, hashName, data, sig)
		if err != nil {
			return false, Errorf(KindOperation, "verify: %s", err)
		}
		return ok, nil
	})
}

func (e *Engine) verifyRSAPSS(p RsaPssParams, key *CryptoKey, sig, data []byte) *Future[bool] {
	normalized, err := normalizeRsaPssParams(opVerify, p)
	if err != nil {
		return resolved[bool](false, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[bool](false, err)
	}
	if err := requireType(key, KeyTypePublic); err != nil {
		return resolved[bool](false, err)
	}
	if err := requireUsage(key, UsageVerify); err != nil {
		return resolved[bool](false, err)
	}
	pub, err := keyMaterialAs[*rsa.PublicKey](e.store, key)
	if err != nil {
		return resolved[bool](false, err)
	}
	hashName := rsaAlgoHash(key.Algorithm)
	return newFuture(func() (bool, error) {
		ok, err := e.provider.VerifyRSAPSS(pub, hashName, normalized.SaltLength, data, sig)
		if err != nil {
			return false, Errorf(KindOperation, "verify: %s", err)
		}
		return ok, nil
	})
}

func (e *Engine) verifyECDSA(p EcdsaParams, key *CryptoKey, sig, data []byte) *Future[bool] {
	normalized, err := normalizeEcdsaParams(opVerify, p)
	if err != nil {
		return resolved[bool](false, err)
	}
	if err := requireAlgoName(key, normalized.Name); err != nil {
		return resolved[bool](false, err)
	}
	if err := requireType(key, KeyTypePublic); err != nil {
		return resolved[bool](false, err)
	}
	if err := requireUsage(key, UsageVerify); err != nil {
		return resolved[bool](false, err)
	}
	pub, err := keyMaterialAs[*ecdsa.PublicKey](e.store, key)
	if err != nil {
		return resolved[bool](false, err)
	}
	return newFuture(func() (bool, error) {
		ok, err := e.provider.VerifyECDSA(pub, normalized.Hash.Name, data, sig)
		if err != nil {
			return false, Errorf(KindOperation, "verify: %s", err)
		}
		return ok, nil
	})
}
