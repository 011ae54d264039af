package subtle

// This file holds the per-schema normalization routines: each takes a
// caller-supplied params struct for one operation, resolves the
// canonical algorithm name against the registry, validates required
// members and their ranges, and returns an owned (defensively copied)
// descriptor. Normalization never touches the Key Store.

func normalizeBare(op Operation, name string) (bareAlgorithm, error) {
	canon, err := canonicalName(op, name)
	if err != nil {
		return bareAlgorithm{}, err
	}
	return bareAlgorithm{Name: canon}, nil
}

func normalizeAesKeyGenParams(op Operation, p AesKeyGenParams) (AesKeyGenParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return AesKeyGenParams{}, err
	}
	if p.Length != 128 && p.Length != 192 && p.Length != 256 {
		return AesKeyGenParams{}, Errorf(KindOperation, "AES key length must be 128, 192, or 256 bits, got %d", p.Length)
	}
	return AesKeyGenParams{Name: canon, Length: p.Length}, nil
}

func normalizeAesCbcParams(op Operation, p AesCbcParams) (AesCbcParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return AesCbcParams{}, err
	}
	if len(p.Iv) != 16 {
		return AesCbcParams{}, Errorf(KindOperation, "AES-CBC iv must be 16 bytes, got %d", len(p.Iv))
	}
	return AesCbcParams{Name: canon, Iv: copyBytes(p.Iv)}, nil
}

func normalizeAesCtrParams(op Operation, p AesCtrParams) (AesCtrParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return AesCtrParams{}, err
	}
	if len(p.Counter) != 16 {
		return AesCtrParams{}, Errorf(KindOperation, "AES-CTR counter must be 16 bytes, got %d", len(p.Counter))
	}
	if p.Length < 1 || p.Length > 128 {
		return AesCtrParams{}, Errorf(KindOperation, "AES-CTR counter length must be in [1,128] bits, got %d", p.Length)
	}
	return AesCtrParams{Name: canon, Counter: copyBytes(p.Counter), Length: p.Length}, nil
}

var validGcmTagLengths = map[int]bool{32: true, 64: true, 96: true, 104: true, 112: true, 120: true, 128: true}

func normalizeAesGcmParams(op Operation, p AesGcmParams) (AesGcmParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return AesGcmParams{}, err
	}
	tagLength := p.TagLength
	if tagLength == 0 {
		tagLength = 128
	}
	if !validGcmTagLengths[tagLength] {
		return AesGcmParams{}, Errorf(KindOperation, "AES-GCM tagLength %d not in {32,64,96,104,112,120,128}", tagLength)
	}
	return AesGcmParams{
		Name:           canon,
		Iv:             copyBytes(p.Iv),
		AdditionalData: copyBytes(p.AdditionalData),
		TagLength:      tagLength,
	}, nil
}

var validModulusLengths = map[int]bool{2048: true, 3072: true, 4096: true}

func normalizeRsaHashedKeyGenParams(op Operation, p RsaHashedKeyGenParams) (RsaHashedKeyGenParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return RsaHashedKeyGenParams{}, err
	}
	if !validModulusLengths[p.ModulusLength] {
		return RsaHashedKeyGenParams{}, Errorf(KindOperation, "RSA modulusLength %d not in {2048,3072,4096}", p.ModulusLength)
	}
	hash, err := normalizeHash(p.Hash.Name)
	if err != nil {
		return RsaHashedKeyGenParams{}, err
	}
	exp := p.PublicExponent
	if len(exp) == 0 {
		exp = []byte{0x01, 0x00, 0x01}
	}
	return RsaHashedKeyGenParams{
		Name:           canon,
		ModulusLength:  p.ModulusLength,
		PublicExponent: copyBytes(exp),
		Hash:           hash,
	}, nil
}

func normalizeRsaHashedImportParams(op Operation, p RsaHashedImportParams) (RsaHashedImportParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return RsaHashedImportParams{}, err
	}
	hash, err := normalizeHash(p.Hash.Name)
	if err != nil {
		return RsaHashedImportParams{}, err
	}
	return RsaHashedImportParams{Name: canon, Hash: hash}, nil
}

func normalizeRsaPssParams(op Operation, p RsaPssParams) (RsaPssParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return RsaPssParams{}, err
	}
	if p.SaltLength < 0 {
		return RsaPssParams{}, Errorf(KindOperation, "RSA-PSS saltLength must be >= 0")
	}
	return RsaPssParams{Name: canon, SaltLength: p.SaltLength}, nil
}

func normalizeRsaOaepParams(op Operation, p RsaOaepParams) (RsaOaepParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return RsaOaepParams{}, err
	}
	return RsaOaepParams{Name: canon, Label: copyBytes(p.Label)}, nil
}

func validCurve(name string) bool {
	return name == "P-256" || name == "P-384"
}

func normalizeEcKeyGenParams(op Operation, p EcKeyGenParams) (EcKeyGenParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return EcKeyGenParams{}, err
	}
	if !validCurve(p.NamedCurve) {
		return EcKeyGenParams{}, Errorf(KindNotSupported, "named curve %q not supported", p.NamedCurve)
	}
	return EcKeyGenParams{Name: canon, NamedCurve: p.NamedCurve}, nil
}

func normalizeEcKeyImportParams(op Operation, p EcKeyImportParams) (EcKeyImportParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return EcKeyImportParams{}, err
	}
	if !validCurve(p.NamedCurve) {
		return EcKeyImportParams{}, Errorf(KindData, "named curve %q not supported", p.NamedCurve)
	}
	return EcKeyImportParams{Name: canon, NamedCurve: p.NamedCurve}, nil
}

func normalizeEcdsaParams(op Operation, p EcdsaParams) (EcdsaParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return EcdsaParams{}, err
	}
	hash, err := normalizeHash(p.Hash.Name)
	if err != nil {
		return EcdsaParams{}, err
	}
	return EcdsaParams{Name: canon, Hash: hash}, nil
}

func normalizeEcdhKeyDeriveParams(op Operation, p EcdhKeyDeriveParams) (EcdhKeyDeriveParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return EcdhKeyDeriveParams{}, err
	}
	if p.Public == nil || p.Public.Type != KeyTypePublic {
		return EcdhKeyDeriveParams{}, Errorf(KindInvalidAccess, "ECDH deriveBits requires a public key parameter")
	}
	return EcdhKeyDeriveParams{Name: canon, Public: p.Public}, nil
}

// hmacDefaultLengthBits returns the default for an HMAC key's length
// member when the caller omits it: the hash's output length in bits.
func hmacDefaultLengthBits(hash string) int {
	switch hash {
	case "SHA-1":
		return 160
	case "SHA-256":
		return 256
	case "SHA-384":
		return 384
	case "SHA-512":
		return 512
	default:
		return 0
	}
}

func normalizeHmacKeyGenParams(op Operation, p HmacKeyGenParams) (HmacKeyGenParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return HmacKeyGenParams{}, err
	}
	hash, err := normalizeHash(p.Hash.Name)
	if err != nil {
		return HmacKeyGenParams{}, err
	}
	length := p.Length
	if !p.HasLength {
		length = hmacDefaultLengthBits(hash.Name)
	}
	return HmacKeyGenParams{Name: canon, Hash: hash, Length: length, HasLength: true}, nil
}

func normalizeHmacImportParams(op Operation, p HmacImportParams) (HmacImportParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return HmacImportParams{}, err
	}
	hash, err := normalizeHash(p.Hash.Name)
	if err != nil {
		return HmacImportParams{}, err
	}
	return HmacImportParams{Name: canon, Hash: hash, Length: p.Length, HasLength: p.HasLength}, nil
}

func normalizeHkdfParams(op Operation, p HkdfParams) (HkdfParams, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return HkdfParams{}, err
	}
	hash, err := normalizeHash(p.Hash.Name)
	if err != nil {
		return HkdfParams{}, err
	}
	return HkdfParams{Name: canon, Hash: hash, Salt: copyBytes(p.Salt), Info: copyBytes(p.Info)}, nil
}

func normalizePbkdf2Params(op Operation, p Pbkdf2Params) (Pbkdf2Params, error) {
	canon, err := canonicalName(op, p.Name)
	if err != nil {
		return Pbkdf2Params{}, err
	}
	hash, err := normalizeHash(p.Hash.Name)
	if err != nil {
		return Pbkdf2Params{}, err
	}
	if p.Iterations <= 0 {
		return Pbkdf2Params{}, Errorf(KindOperation, "PBKDF2 iterations must be > 0")
	}
	return Pbkdf2Params{Name: canon, Hash: hash, Salt: copyBytes(p.Salt), Iterations: p.Iterations}, nil
}
