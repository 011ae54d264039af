package subtle

import (
	"context"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rsa"
	"encoding/json"
	"math/big"
)

// ImportKey dispatches importKey to the family-specific importer
// selected by alg's concrete type, mirroring the teacher's
// importCryptoKeyFull/__cryptoImportKey switch generalized across
// every format in the acceptance matrix.
func (e *Engine) ImportKey(ctx context.Context, format Format, data []byte, alg Algorithm, extractable bool, usages []Usage) *Future[*CryptoKey] {
	switch p := alg.(type) {
	case HmacImportParams:
		return e.importHMAC(format, data, p, extractable, usages)
	case HmacKeyGenParams:
		return e.importHMAC(format, data, HmacImportParams{Name: p.Name, Hash: p.Hash, Length: p.Length, HasLength: p.HasLength}, extractable, usages)
	case AesKeyGenParams:
		return e.importBare(format, data, bareAlgorithm{Name: p.Name}, extractable, usages)
	case bareAlgorithm:
		return e.importBare(format, data, p, extractable, usages)
	case RsaHashedImportParams:
		return e.importRSA(format, data, p, extractable, usages)
	case EcKeyImportParams:
		return e.importEC(format, data, p, extractable, usages)
	default:
		return resolved[*CryptoKey](nil, Errorf(KindNotSupported, "importKey: unsupported algorithm descriptor"))
	}
}

func (e *Engine) importHMAC(format Format, data []byte, p HmacImportParams, extractable bool, usages []Usage) *Future[*CryptoKey] {
	normalized, err := normalizeHmacImportParams(opImportKey, p)
	if err != nil {
		return resolved[*CryptoKey](nil, err)
	}
	if !formatAllowed("HMAC", format) {
		return resolved[*CryptoKey](nil, Errorf(KindNotSupported, "importKey: format %s not supported for HMAC", format))
	}
	var raw []byte
	switch format {
	case FormatRaw:
		raw = copyBytes(data)
	case FormatJWK:
		jwk, err := parseJWK(data)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		if jwk.Kty != "oct" {
			return resolved[*CryptoKey](nil, Errorf(KindData, "importKey: jwk kty %q does not match HMAC", jwk.Kty))
		}
		if err := validateJWKCommon(jwk, extractable, usages); err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		raw, err = b64Decode(jwk.K)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
	default:
		return resolved[*CryptoKey](nil, Errorf(KindNotSupported, "importKey: format %s not supported for HMAC", format))
	}
	length := normalized.Length
	if !normalized.HasLength {
		length = len(raw) * 8
	}
	normalized.Length = length
	normalized.HasLength = true
	for _, u := range usages {
		if !hasUsage(hmacUsagesAllowed, u) {
			return resolved[*CryptoKey](nil, Errorf(KindOperation, "importKey: usage %q not valid for HMAC", u))
		}
	}
	return resolved(e.finishSecretImport(raw, normalized, extractable, usages, false))
}

// importBare handles AES-*, AES-KW, HKDF, and PBKDF2 imports, all of
// which normalize to a name-only descriptor.
func (e *Engine) importBare(format Format, data []byte, p bareAlgorithm, extractable bool, usages []Usage) *Future[*CryptoKey] {
	canon, err := canonicalName(opImportKey, p.Name)
	if err != nil {
		return resolved[*CryptoKey](nil, err)
	}
	normalized := bareAlgorithm{Name: canon}
	if !formatAllowed(canon, format) {
		return resolved[*CryptoKey](nil, Errorf(KindNotSupported, "importKey: format %s not supported for %s", format, canon))
	}
	isHKDFOrPBKDF2 := canon == "HKDF" || canon == "PBKDF2"
	if isHKDFOrPBKDF2 && extractable {
		return resolved[*CryptoKey](nil, Errorf(KindSyntax, "importKey: %s keys must not be extractable", canon))
	}

	var raw []byte
	switch format {
	case FormatRaw:
		raw = copyBytes(data)
	case FormatJWK:
		jwk, err := parseJWK(data)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		if jwk.Kty != "oct" {
			return resolved[*CryptoKey](nil, Errorf(KindData, "importKey: jwk kty %q does not match %s", jwk.Kty, canon))
		}
		if err := validateJWKCommon(jwk, extractable, usages); err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		raw, err = b64Decode(jwk.K)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
	default:
		return resolved[*CryptoKey](nil, Errorf(KindNotSupported, "importKey: format %s not supported for %s", format, canon))
	}

	if canon == "AES-CTR" || canon == "AES-CBC" || canon == "AES-GCM" || canon == "AES-KW" {
		bits := len(raw) * 8
		if bits != 128 && bits != 192 && bits != 256 {
			return resolved[*CryptoKey](nil, Errorf(KindData, "importKey: AES key length must be 128, 192, or 256 bits, got %d", bits))
		}
	}

	allowed := aesCipherUsagesAllowed
	if canon == "AES-KW" {
		allowed = aesKwUsagesAllowed
	} else if isHKDFOrPBKDF2 {
		allowed = []Usage{UsageDeriveKey, UsageDeriveBits}
	}
	for _, u := range usages {
		if !hasUsage(allowed, u) {
			return resolved[*CryptoKey](nil, Errorf(KindOperation, "importKey: usage %q not valid for %s", u, canon))
		}
	}
	return resolved(e.finishSecretImport(raw, normalized, extractable, usages, isHKDFOrPBKDF2))
}

func (e *Engine) finishSecretImport(raw []byte, algo Algorithm, extractable bool, usages []Usage, allowEmptyUsages bool) (*CryptoKey, error) {
	handle := e.store.Put(StoredKey{Type: StoredSecret, Material: raw})
	return newCryptoKey(KeyTypeSecret, extractable, append([]Usage(nil), usages...), algo, handle, allowEmptyUsages)
}

func (e *Engine) importRSA(format Format, data []byte, p RsaHashedImportParams, extractable bool, usages []Usage) *Future[*CryptoKey] {
	normalized, err := normalizeRsaHashedImportParams(opImportKey, p)
	if err != nil {
		return resolved[*CryptoKey](nil, err)
	}
	if !formatAllowed(normalized.Name, format) {
		return resolved[*CryptoKey](nil, Errorf(KindNotSupported, "importKey: format %s not supported for %s", format, normalized.Name))
	}
	var allowed []Usage
	if normalized.Name == "RSA-OAEP" {
		allowed = rsaOaepUsages
	} else {
		allowed = rsaSignUsages
	}

	switch format {
	case FormatPKCS8:
		priv, err := decodePKCS8RSA(data)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		handle := e.store.Put(StoredKey{Type: StoredPrivate, Material: priv})
		k, err := newCryptoKey(KeyTypePrivate, extractable, intersectUsages(usages, allowed), normalized, handle, false)
		return resolved(k, err)
	case FormatSPKI:
		pub, err := decodeSPKIRSA(data)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		handle := e.store.Put(StoredKey{Type: StoredPublic, Material: pub})
		k, err := newCryptoKey(KeyTypePublic, true, intersectUsages(usages, allowed), normalized, handle, true)
		return resolved(k, err)
	case FormatJWK:
		jwk, err := parseJWK(data)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		if jwk.Kty != "RSA" {
			return resolved[*CryptoKey](nil, Errorf(KindData, "importKey: jwk kty %q does not match RSA", jwk.Kty))
		}
		if err := validateJWKCommon(jwk, extractable, usages); err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		n, err := b64ToBig(jwk.N)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		eBytes, err := b64Decode(jwk.E)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		pub := &rsa.PublicKey{N: n, E: int(new(big.Int).SetBytes(eBytes).Int64())}
		if jwk.D == "" {
			handle := e.store.Put(StoredKey{Type: StoredPublic, Material: pub})
			k, err := newCryptoKey(KeyTypePublic, true, intersectUsages(usages, allowed), normalized, handle, true)
			return resolved(k, err)
		}
		d, err := b64ToBig(jwk.D)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		priv := &rsa.PrivateKey{PublicKey: *pub, D: d}
		if jwk.P != "" && jwk.Q != "" {
			pBig, _ := b64ToBig(jwk.P)
			qBig, _ := b64ToBig(jwk.Q)
			priv.Primes = []*big.Int{pBig, qBig}
		}
		priv.Precompute()
		handle := e.store.Put(StoredKey{Type: StoredPrivate, Material: priv})
		k, err := newCryptoKey(KeyTypePrivate, extractable, intersectUsages(usages, allowed), normalized, handle, false)
		return resolved(k, err)
	default:
		return resolved[*CryptoKey](nil, Errorf(KindNotSupported, "importKey: format %s not supported for RSA", format))
	}
}

func (e *Engine) importEC(format Format, data []byte, p EcKeyImportParams, extractable bool, usages []Usage) *Future[*CryptoKey] {
	normalized, err := normalizeEcKeyImportParams(opImportKey, p)
	if err != nil {
		return resolved[*CryptoKey](nil, err)
	}
	if !formatAllowed(normalized.Name, format) {
		return resolved[*CryptoKey](nil, Errorf(KindNotSupported, "importKey: format %s not supported for %s", format, normalized.Name))
	}
	var allowed []Usage
	if normalized.Name == "ECDSA" {
		allowed = ecdsaUsagesAllowed
	} else {
		allowed = ecdhUsagesAllowed
	}

	switch format {
	case FormatRaw:
		// raw only ever carries an uncompressed public point.
		if normalized.Name == "ECDSA" {
			curve, err := ellipticCurveFor(normalized.NamedCurve)
			if err != nil {
				return resolved[*CryptoKey](nil, err)
			}
			x, y := unmarshalPoint(curve, data)
			if x == nil {
				return resolved[*CryptoKey](nil, Errorf(KindData, "importKey: invalid EC point"))
			}
			pub := &ecdsa.PublicKey{Curve: curve, X: x, Y: y}
			handle := e.store.Put(StoredKey{Type: StoredPublic, Material: pub})
			k, err := newCryptoKey(KeyTypePublic, true, intersectUsages(usages, allowed), normalized, handle, true)
			return resolved(k, err)
		}
		curve, err := ecdhCurveFor(normalized.NamedCurve)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		pub, err := curve.NewPublicKey(data)
		if err != nil {
			return resolved[*CryptoKey](nil, Errorf(KindData, "importKey: invalid EC point: %s", err))
		}
		handle := e.store.Put(StoredKey{Type: StoredPublic, Material: pub})
		k, err := newCryptoKey(KeyTypePublic, true, nil, normalized, handle, true)
		return resolved(k, err)
	case FormatPKCS8:
		priv, err := decodePKCS8ECDSA(data)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		if normalized.Name == "ECDSA" {
			handle := e.store.Put(StoredKey{Type: StoredPrivate, Material: priv})
			k, err := newCryptoKey(KeyTypePrivate, extractable, intersectUsages(usages, allowed), normalized, handle, false)
			return resolved(k, err)
		}
		ecdhPriv, err := ecdsaPrivateToECDH(normalized.NamedCurve, priv)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		handle := e.store.Put(StoredKey{Type: StoredPrivate, Material: ecdhPriv})
		k, err := newCryptoKey(KeyTypePrivate, extractable, intersectUsages(usages, allowed), normalized, handle, false)
		return resolved(k, err)
	case FormatSPKI:
		pub, err := decodeSPKIECDSA(data)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		if normalized.Name == "ECDSA" {
			handle := e.store.Put(StoredKey{Type: StoredPublic, Material: pub})
			k, err := newCryptoKey(KeyTypePublic, true, intersectUsages(usages, allowed), normalized, handle, true)
			return resolved(k, err)
		}
		ecdhPub, err := ecdsaPublicToECDH(normalized.NamedCurve, pub)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		handle := e.store.Put(StoredKey{Type: StoredPublic, Material: ecdhPub})
		k, err := newCryptoKey(KeyTypePublic, true, nil, normalized, handle, true)
		return resolved(k, err)
	case FormatJWK:
		jwk, err := parseJWK(data)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		if jwk.Kty != "EC" {
			return resolved[*CryptoKey](nil, Errorf(KindData, "importKey: jwk kty %q does not match EC", jwk.Kty))
		}
		if jwk.Crv != normalized.NamedCurve {
			return resolved[*CryptoKey](nil, Errorf(KindData, "importKey: jwk crv %q does not match requested curve %q", jwk.Crv, normalized.NamedCurve))
		}
		if err := validateJWKCommon(jwk, extractable, usages); err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		xb, err := b64Decode(jwk.X)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		yb, err := b64Decode(jwk.Y)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		point := append([]byte{0x04}, append(xb, yb...)...)
		if jwk.D == "" {
			if normalized.Name == "ECDSA" {
				curve, err := ellipticCurveFor(normalized.NamedCurve)
				if err != nil {
					return resolved[*CryptoKey](nil, err)
				}
				x, y := unmarshalPoint(curve, point)
				if x == nil {
					return resolved[*CryptoKey](nil, Errorf(KindData, "importKey: invalid EC jwk point"))
				}
				pub := &ecdsa.PublicKey{Curve: curve, X: x, Y: y}
				handle := e.store.Put(StoredKey{Type: StoredPublic, Material: pub})
				k, err := newCryptoKey(KeyTypePublic, true, intersectUsages(usages, allowed), normalized, handle, true)
				return resolved(k, err)
			}
			curve, err := ecdhCurveFor(normalized.NamedCurve)
			if err != nil {
				return resolved[*CryptoKey](nil, err)
			}
			pub, err := curve.NewPublicKey(point)
			if err != nil {
				return resolved[*CryptoKey](nil, Errorf(KindData, "importKey: invalid EC jwk point: %s", err))
			}
			handle := e.store.Put(StoredKey{Type: StoredPublic, Material: pub})
			k, err := newCryptoKey(KeyTypePublic, true, nil, normalized, handle, true)
			return resolved(k, err)
		}
		db, err := b64Decode(jwk.D)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		if normalized.Name == "ECDSA" {
			curve, err := ellipticCurveFor(normalized.NamedCurve)
			if err != nil {
				return resolved[*CryptoKey](nil, err)
			}
			priv := &ecdsa.PrivateKey{D: new(big.Int).SetBytes(db)}
			priv.PublicKey.Curve = curve
			priv.PublicKey.X, priv.PublicKey.Y = unmarshalPoint(curve, point)
			handle := e.store.Put(StoredKey{Type: StoredPrivate, Material: priv})
			k, err := newCryptoKey(KeyTypePrivate, extractable, intersectUsages(usages, allowed), normalized, handle, false)
			return resolved(k, err)
		}
		curve, err := ecdhCurveFor(normalized.NamedCurve)
		if err != nil {
			return resolved[*CryptoKey](nil, err)
		}
		priv, err := curve.NewPrivateKey(db)
		if err != nil {
			return resolved[*CryptoKey](nil, Errorf(KindData, "importKey: invalid EC jwk scalar: %s", err))
		}
		handle := e.store.Put(StoredKey{Type: StoredPrivate, Material: priv})
		k, err := newCryptoKey(KeyTypePrivate, extractable, intersectUsages(usages, allowed), normalized, handle, false)
		return resolved(k, err)
	default:
		return resolved[*CryptoKey](nil, Errorf(KindNotSupported, "importKey: format %s not supported for EC", format))
	}
}

// ExportKey emits key's material in format. Requires key.Extractable.
func (e *Engine) ExportKey(ctx context.Context, format Format, key *CryptoKey) *Future[[]byte] {
	if !key.Extractable {
		return resolved[[]byte](nil, Errorf(KindInvalidAccess, "exportKey: key is not extractable"))
	}
	if !formatAllowed(key.Algorithm.AlgoName(), format) {
		return resolved[[]byte](nil, Errorf(KindNotSupported, "exportKey: format %s not supported for %s", format, key.Algorithm.AlgoName()))
	}
	return resolved(e.exportSync(format, key))
}

func (e *Engine) exportSync(format Format, key *CryptoKey) ([]byte, error) {
	stored, err := e.store.Get(key.Handle())
	if err != nil {
		return nil, err
	}
	switch key.Type {
	case KeyTypeSecret:
		raw, ok := stored.Material.([]byte)
		if !ok {
			return nil, Errorf(KindInvalidAccess, "exportKey: unexpected secret material shape")
		}
		if format == FormatJWK {
			return exportSecretJWK(key, raw)
		}
		return copyBytes(raw), nil
	case KeyTypePublic, KeyTypePrivate:
		return e.exportAsymmetric(format, key, stored)
	default:
		return nil, Errorf(KindInvalidAccess, "exportKey: unknown key type")
	}
}

func exportSecretJWK(key *CryptoKey, raw []byte) ([]byte, error) {
	ext := key.Extractable
	jwk := JWK{
		Kty:    "oct",
		K:      b64Encode(raw),
		Ext:    &ext,
		KeyOps: jwkKeyOpsFromUsages(key.Usages),
	}
	switch a := key.Algorithm.(type) {
	case HmacImportParams:
		jwk.Alg = hmacJWKAlg(a.Hash.Name)
	case bareAlgorithm:
		jwk.Alg = aesJWKAlg(a.Name, len(raw)*8)
	}
	return json.Marshal(jwk)
}

func (e *Engine) exportAsymmetric(format Format, key *CryptoKey, stored *StoredKey) ([]byte, error) {
	switch key.Algorithm.AlgoName() {
	case "RSASSA-PKCS1-v1_5", "RSA-PSS", "RSA-OAEP":
		return exportRSA(format, key, stored)
	case "ECDSA":
		return exportECDSA(format, key, stored)
	case "ECDH":
		return exportECDH(format, key, stored)
	default:
		return nil, Errorf(KindNotSupported, "exportKey: unsupported algorithm %s", key.Algorithm.AlgoName())
	}
}

func exportRSA(format Format, key *CryptoKey, stored *StoredKey) ([]byte, error) {
	if key.Type == KeyTypePrivate {
		priv := stored.Material.(*rsa.PrivateKey)
		switch format {
		case FormatPKCS8:
			return encodePKCS8RSA(priv)
		case FormatJWK:
			return marshalRSAPrivateJWK(key, priv)
		}
		return nil, Errorf(KindNotSupported, "exportKey: format %s not supported for RSA private key", format)
	}
	pub := stored.Material.(*rsa.PublicKey)
	switch format {
	case FormatSPKI:
		return encodeSPKIRSA(pub)
	case FormatJWK:
		return marshalRSAPublicJWK(key, pub)
	}
	return nil, Errorf(KindNotSupported, "exportKey: format %s not supported for RSA public key", format)
}

func rsaJWKAlg(algoName, hashName string) string {
	switch algoName {
	case "RSASSA-PKCS1-v1_5":
		switch hashName {
		case "SHA-1":
			return "RS1"
		case "SHA-256":
			return "RS256"
		case "SHA-384":
			return "RS384"
		case "SHA-512":
			return "RS512"
		}
	case "RSA-PSS":
		switch hashName {
		case "SHA-256":
			return "PS256"
		case "SHA-384":
			return "PS384"
		case "SHA-512":
			return "PS512"
		}
	case "RSA-OAEP":
		switch hashName {
		case "SHA-1":
			return "RSA-OAEP"
		case "SHA-256":
			return "RSA-OAEP-256"
		}
	}
	return ""
}

func rsaKeyAlg(k *CryptoKey) (string, string) {
	switch a := k.Algorithm.(type) {
	case RsaHashedKeyGenParams:
		return a.Name, a.Hash.Name
	case RsaHashedImportParams:
		return a.Name, a.Hash.Name
	default:
		return "", ""
	}
}

func marshalRSAPublicJWK(key *CryptoKey, pub *rsa.PublicKey) ([]byte, error) {
	ext := key.Extractable
	algoName, hashName := rsaKeyAlg(key)
	return json.Marshal(JWK{
		Kty:    "RSA",
		N:      bigToB64(pub.N),
		E:      b64Encode(big.NewInt(int64(pub.E)).Bytes()),
		Alg:    rsaJWKAlg(algoName, hashName),
		Ext:    &ext,
		KeyOps: jwkKeyOpsFromUsages(key.Usages),
	})
}

func marshalRSAPrivateJWK(key *CryptoKey, priv *rsa.PrivateKey) ([]byte, error) {
	ext := key.Extractable
	algoName, hashName := rsaKeyAlg(key)
	jwk := JWK{
		Kty:    "RSA",
		N:      bigToB64(priv.N),
		E:      b64Encode(big.NewInt(int64(priv.E)).Bytes()),
		D:      bigToB64(priv.D),
		Alg:    rsaJWKAlg(algoName, hashName),
		Ext:    &ext,
		KeyOps: jwkKeyOpsFromUsages(key.Usages),
	}
	if len(priv.Primes) == 2 {
		jwk.P = bigToB64(priv.Primes[0])
		jwk.Q = bigToB64(priv.Primes[1])
		if priv.Precomputed.Dp != nil {
			jwk.DP = bigToB64(priv.Precomputed.Dp)
			jwk.DQ = bigToB64(priv.Precomputed.Dq)
			jwk.QI = bigToB64(priv.Precomputed.Qinv)
		}
	}
	return json.Marshal(jwk)
}

func exportECDSA(format Format, key *CryptoKey, stored *StoredKey) ([]byte, error) {
	curveName := ecKeyCurve(key)
	if key.Type == KeyTypePrivate {
		priv := stored.Material.(*ecdsa.PrivateKey)
		switch format {
		case FormatPKCS8:
			return encodePKCS8ECDSA(priv)
		case FormatJWK:
			return marshalECJWK(key, curveName, priv.X, priv.Y, priv.D.Bytes())
		}
		return nil, Errorf(KindNotSupported, "exportKey: format %s not supported for ECDSA private key", format)
	}
	pub := stored.Material.(*ecdsa.PublicKey)
	switch format {
	case FormatRaw:
		return marshalPoint(pub.Curve, pub.X, pub.Y), nil
	case FormatSPKI:
		return encodeSPKIECDSA(pub)
	case FormatJWK:
		return marshalECJWK(key, curveName, pub.X, pub.Y, nil)
	}
	return nil, Errorf(KindNotSupported, "exportKey: format %s not supported for ECDSA public key", format)
}

func exportECDH(format Format, key *CryptoKey, stored *StoredKey) ([]byte, error) {
	curveName := ecKeyCurve(key)
	if key.Type == KeyTypePrivate {
		priv := stored.Material.(*ecdh.PrivateKey)
		switch format {
		case FormatPKCS8:
			ek, err := ecdhPrivateToECDSA(curveName, priv)
			if err != nil {
				return nil, err
			}
			return encodePKCS8ECDSA(ek)
		case FormatJWK:
			ek, err := ecdhPrivateToECDSA(curveName, priv)
			if err != nil {
				return nil, err
			}
			return marshalECJWK(key, curveName, ek.X, ek.Y, priv.Bytes())
		}
		return nil, Errorf(KindNotSupported, "exportKey: format %s not supported for ECDH private key", format)
	}
	pub := stored.Material.(*ecdh.PublicKey)
	switch format {
	case FormatRaw:
		return copyBytes(pub.Bytes()), nil
	case FormatSPKI:
		ek, err := ecdhPublicToECDSA(curveName, pub)
		if err != nil {
			return nil, err
		}
		return encodeSPKIECDSA(ek)
	case FormatJWK:
		ek, err := ecdhPublicToECDSA(curveName, pub)
		if err != nil {
			return nil, err
		}
		return marshalECJWK(key, curveName, ek.X, ek.Y, nil)
	}
	return nil, Errorf(KindNotSupported, "exportKey: format %s not supported for ECDH public key", format)
}

func ecKeyCurve(k *CryptoKey) string {
	switch a := k.Algorithm.(type) {
	case EcKeyGenParams:
		return a.NamedCurve
	case EcKeyImportParams:
		return a.NamedCurve
	default:
		return ""
	}
}

func marshalECJWK(key *CryptoKey, curveName string, x, y *big.Int, d []byte) ([]byte, error) {
	curve, err := ellipticCurveFor(curveName)
	if err != nil {
		return nil, err
	}
	byteLen := (curve.Params().BitSize + 7) / 8
	ext := key.Extractable
	jwk := JWK{
		Kty:    "EC",
		Crv:    curveName,
		X:      b64Encode(x.FillBytes(make([]byte, byteLen))),
		Y:      b64Encode(y.FillBytes(make([]byte, byteLen))),
		Ext:    &ext,
		KeyOps: jwkKeyOpsFromUsages(key.Usages),
	}
	if d != nil {
		padded := make([]byte, byteLen)
		copy(padded[byteLen-len(d):], d)
		jwk.D = b64Encode(padded)
	}
	return json.Marshal(jwk)
}

func parseJWK(data []byte) (*JWK, error) {
	var jwk JWK
	if err := json.Unmarshal(data, &jwk); err != nil {
		return nil, Errorf(KindData, "importKey: invalid jwk json: %s", err)
	}
	return &jwk, nil
}

func validateJWKCommon(jwk *JWK, extractable bool, usages []Usage) error {
	if err := requireExtAtMostMatches(jwk.Ext, extractable); err != nil {
		return err
	}
	if jwk.KeyOps != nil {
		ops, err := jwkUsagesFromKeyOps(jwk.KeyOps)
		if err != nil {
			return err
		}
		if err := requireKeyOpsSubset(ops, usages); err != nil {
			return err
		}
	}
	return nil
}
