package subtle

// Algorithm is implemented by every normalized algorithm descriptor.
// AlgoName returns the canonical, correctly-cased algorithm name.
type Algorithm interface {
	AlgoName() string
}

// HashAlgorithm is the normalized form of a HashAlgorithmIdentifier:
// a bare {name} descriptor recursed into with Operation = opDigest.
type HashAlgorithm struct {
	Name string
}

func (h HashAlgorithm) AlgoName() string { return h.Name }

// AesKeyGenParams parameterizes generateKey for AES-CTR/CBC/GCM/KW.
type AesKeyGenParams struct {
	Name   string
	Length int // bits: 128, 192, or 256
}

func (a AesKeyGenParams) AlgoName() string { return a.Name }

// AesCbcParams parameterizes encrypt/decrypt under AES-CBC.
type AesCbcParams struct {
	Name string
	Iv   []byte // must be 16 bytes
}

func (a AesCbcParams) AlgoName() string { return a.Name }

// AesCtrParams parameterizes encrypt/decrypt under AES-CTR.
type AesCtrParams struct {
	Name    string
	Counter []byte // must be 16 bytes
	Length  int    // counter bits, 1..128
}

func (a AesCtrParams) AlgoName() string { return a.Name }

// AesGcmParams parameterizes encrypt/decrypt under AES-GCM.
type AesGcmParams struct {
	Name           string
	Iv             []byte
	AdditionalData []byte
	TagLength      int // bits, default 128
}

func (a AesGcmParams) AlgoName() string { return a.Name }

// RsaHashedKeyGenParams parameterizes generateKey for the RSA family.
type RsaHashedKeyGenParams struct {
	Name           string
	ModulusLength  int
	PublicExponent []byte // big-endian, typically {0x01,0x00,0x01}
	Hash           HashAlgorithm
}

func (r RsaHashedKeyGenParams) AlgoName() string { return r.Name }

// RsaHashedImportParams parameterizes importKey for the RSA family.
type RsaHashedImportParams struct {
	Name string
	Hash HashAlgorithm
}

func (r RsaHashedImportParams) AlgoName() string { return r.Name }

// RsaPssParams parameterizes sign/verify under RSA-PSS.
type RsaPssParams struct {
	Name      string
	SaltLength int
}

func (r RsaPssParams) AlgoName() string { return r.Name }

// RsaOaepParams parameterizes encrypt/decrypt under RSA-OAEP.
type RsaOaepParams struct {
	Name  string
	Label []byte
}

func (r RsaOaepParams) AlgoName() string { return r.Name }

// EcKeyGenParams parameterizes generateKey for ECDSA/ECDH.
type EcKeyGenParams struct {
	Name       string
	NamedCurve string // "P-256" or "P-384"
}

func (e EcKeyGenParams) AlgoName() string { return e.Name }

// EcKeyImportParams parameterizes importKey for ECDSA/ECDH.
type EcKeyImportParams struct {
	Name       string
	NamedCurve string
}

func (e EcKeyImportParams) AlgoName() string { return e.Name }

// EcdsaParams parameterizes sign/verify under ECDSA.
type EcdsaParams struct {
	Name string
	Hash HashAlgorithm
}

func (e EcdsaParams) AlgoName() string { return e.Name }

// EcdhKeyDeriveParams parameterizes deriveBits/deriveKey under ECDH.
type EcdhKeyDeriveParams struct {
	Name   string
	Public *CryptoKey
}

func (e EcdhKeyDeriveParams) AlgoName() string { return e.Name }

// HmacKeyGenParams parameterizes generateKey for HMAC.
type HmacKeyGenParams struct {
	Name      string
	Hash      HashAlgorithm
	Length    int // bits; used only when HasLength is set, otherwise the hash's default applies
	HasLength bool
}

func (h HmacKeyGenParams) AlgoName() string { return h.Name }

// HmacImportParams parameterizes importKey for HMAC.
type HmacImportParams struct {
	Name      string
	Hash      HashAlgorithm
	Length    int
	HasLength bool
}

func (h HmacImportParams) AlgoName() string { return h.Name }

// HkdfParams parameterizes deriveBits/deriveKey under HKDF.
type HkdfParams struct {
	Name string
	Hash HashAlgorithm
	Salt []byte
	Info []byte
}

func (h HkdfParams) AlgoName() string { return h.Name }

// Pbkdf2Params parameterizes deriveBits/deriveKey under PBKDF2.
type Pbkdf2Params struct {
	Name       string
	Hash       HashAlgorithm
	Salt       []byte
	Iterations int
}

func (p Pbkdf2Params) AlgoName() string { return p.Name }

// bareAlgorithm is the normalized form of a string-only descriptor,
// or a dictionary whose schema carries no members beyond name — e.g.
// AES-*/HKDF/PBKDF2 at importKey, HMAC at sign/verify.
type bareAlgorithm struct {
	Name string
}

func (b bareAlgorithm) AlgoName() string { return b.Name }
