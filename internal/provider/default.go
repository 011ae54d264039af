package provider

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"math/big"

	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

// Default is the standard-library-backed Provider. It is the
// implementation the engine exercises in its own test suite and the
// one an embedding application gets unless it supplies its own.
type Default struct{}

// New returns a ready-to-use Default provider.
func New() *Default { return &Default{} }

func hashNew(name string) (func() hash.Hash, error) {
	switch name {
	case "SHA-1":
		return sha1.New, nil
	case "SHA-256":
		return sha256.New, nil
	case "SHA-384":
		return sha512.New384, nil
	case "SHA-512":
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("unsupported hash %q", name)
	}
}

func cryptoHash(name string) (crypto.Hash, error) {
	switch name {
	case "SHA-1":
		return crypto.SHA1, nil
	case "SHA-256":
		return crypto.SHA256, nil
	case "SHA-384":
		return crypto.SHA384, nil
	case "SHA-512":
		return crypto.SHA512, nil
	default:
		return 0, fmt.Errorf("unsupported hash %q", name)
	}
}

func (d *Default) Digest(hashName string, data []byte) ([]byte, error) {
	newH, err := hashNew(hashName)
	if err != nil {
		return nil, err
	}
	h := newH()
	h.Write(data)
	return h.Sum(nil), nil
}

func (d *Default) GenerateAESKey(lengthBits int) ([]byte, error) {
	buf := make([]byte, lengthBits/8)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (d *Default) GenerateHMACKey(lengthBits int) ([]byte, error) {
	n := (lengthBits + 7) / 8
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (d *Default) GenerateRSAKeyPair(modulusLengthBits int, publicExponent []byte) (*rsa.PrivateKey, error) {
	e := new(big.Int).SetBytes(publicExponent)
	if e.Cmp(big.NewInt(65537)) != 0 {
		return nil, fmt.Errorf("unsupported public exponent, only 65537 is accepted")
	}
	return rsa.GenerateKey(rand.Reader, modulusLengthBits)
}

func ellipticCurve(name string) (elliptic.Curve, error) {
	switch name {
	case "P-256":
		return elliptic.P256(), nil
	case "P-384":
		return elliptic.P384(), nil
	default:
		return nil, fmt.Errorf("unsupported curve %q", name)
	}
}

func ecdhCurve(name string) (ecdh.Curve, error) {
	switch name {
	case "P-256":
		return ecdh.P256(), nil
	case "P-384":
		return ecdh.P384(), nil
	default:
		return nil, fmt.Errorf("unsupported curve %q", name)
	}
}

func (d *Default) GenerateECDSAKeyPair(curveName string) (*ecdsa.PrivateKey, error) {
	curve, err := ellipticCurve(curveName)
	if err != nil {
		return nil, err
	}
	return ecdsa.GenerateKey(curve, rand.Reader)
}

func (d *Default) GenerateECDHKeyPair(curveName string) (*ecdh.PrivateKey, error) {
	curve, err := ecdhCurve(curveName)
	if err != nil {
		return nil, err
	}
	return curve.GenerateKey(rand.Reader)
}

func (d *Default) SignRSAPKCS1v15(priv *rsa.PrivateKey, hashName string, data []byte) ([]byte, error) {
	ch, err := cryptoHash(hashName)
	if err != nil {
		return nil, err
	}
	digest, err := d.Digest(hashName, data)
	if err != nil {
		return nil, err
	}
	return rsa.SignPKCS1v15(rand.Reader, priv, ch, digest)
}

func (d *Default) VerifyRSAPKCS1v15(pub *rsa.PublicKey, hashName string, data, sig []byte) (bool, error) {
	ch, err := cryptoHash(hashName)
	if err != nil {
		return false, err
	}
	digest, err := d.Digest(hashName, data)
	if err != nil {
		return false, err
	}
	return rsa.VerifyPKCS1v15(pub, ch, digest, sig) == nil, nil
}

func (d *Default) SignRSAPSS(priv *rsa.PrivateKey, hashName string, saltLength int, data []byte) ([]byte, error) {
	ch, err := cryptoHash(hashName)
	if err != nil {
		return nil, err
	}
	digest, err := d.Digest(hashName, data)
	if err != nil {
		return nil, err
	}
	opts := &rsa.PSSOptions{SaltLength: saltLength, Hash: ch}
	if saltLength == 0 {
		opts.SaltLength = rsa.PSSSaltLengthEqualsHash
	}
	return rsa.SignPSS(rand.Reader, priv, ch, digest, opts)
}

func (d *Default) VerifyRSAPSS(pub *rsa.PublicKey, hashName string, saltLength int, data, sig []byte) (bool, error) {
	ch, err := cryptoHash(hashName)
	if err != nil {
		return false, err
	}
	digest, err := d.Digest(hashName, data)
	if err != nil {
		return false, err
	}
	opts := &rsa.PSSOptions{SaltLength: saltLength, Hash: ch}
	if saltLength == 0 {
		opts.SaltLength = rsa.PSSSaltLengthAuto
	}
	return rsa.VerifyPSS(pub, ch, digest, sig, opts) == nil, nil
}

func (d *Default) SignECDSA(priv *ecdsa.PrivateKey, hashName string, data []byte) ([]byte, error) {
	digest, err := d.Digest(hashName, data)
	if err != nil {
		return nil, err
	}
	return ecdsa.SignASN1(rand.Reader, priv, digest)
}

func (d *Default) VerifyECDSA(pub *ecdsa.PublicKey, hashName string, data, sig []byte) (bool, error) {
	digest, err := d.Digest(hashName, data)
	if err != nil {
		return false, err
	}
	return ecdsa.VerifyASN1(pub, digest, sig), nil
}

func (d *Default) SignHMAC(key []byte, hashName string, data []byte) ([]byte, error) {
	newH, err := hashNew(hashName)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(newH, key)
	mac.Write(data)
	return mac.Sum(nil), nil
}

func (d *Default) VerifyHMAC(key []byte, hashName string, data, sig []byte) (bool, error) {
	expected, err := d.SignHMAC(key, hashName, data)
	if err != nil {
		return false, err
	}
	return hmac.Equal(expected, sig), nil
}

func (d *Default) EncryptRSAOAEP(pub *rsa.PublicKey, hashName string, label, plaintext []byte) ([]byte, error) {
	newH, err := hashNew(hashName)
	if err != nil {
		return nil, err
	}
	return rsa.EncryptOAEP(newH(), rand.Reader, pub, plaintext, label)
}

func (d *Default) DecryptRSAOAEP(priv *rsa.PrivateKey, hashName string, label, ciphertext []byte) ([]byte, error) {
	newH, err := hashNew(hashName)
	if err != nil {
		return nil, err
	}
	return rsa.DecryptOAEP(newH(), rand.Reader, priv, ciphertext, label)
}

func (d *Default) EncryptAESCBC(key, iv, plaintext []byte) ([]byte, error) {
	if len(plaintext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("AES-CBC plaintext length must be a multiple of %d bytes", aes.BlockSize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, plaintext)
	return out, nil
}

func (d *Default) DecryptAESCBC(key, iv, ciphertext []byte) ([]byte, error) {
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("AES-CBC ciphertext length must be a multiple of %d bytes", aes.BlockSize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return out, nil
}

func (d *Default) EncryptAESCTR(key, counter []byte, counterBits int, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(plaintext))
	cipher.NewCTR(block, counter).XORKeyStream(out, plaintext)
	return out, nil
}

func (d *Default) DecryptAESCTR(key, counter []byte, counterBits int, ciphertext []byte) ([]byte, error) {
	return d.EncryptAESCTR(key, counter, counterBits, ciphertext)
}

func (d *Default) EncryptAESGCM(key, iv, aad []byte, tagBits int, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCMWithTagSize(block, tagBits/8)
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, iv, plaintext, aad), nil
}

func (d *Default) DecryptAESGCM(key, iv, aad []byte, tagBits int, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCMWithTagSize(block, tagBits/8)
	if err != nil {
		return nil, err
	}
	return gcm.Open(nil, iv, ciphertext, aad)
}

func (d *Default) DeriveBitsECDH(priv *ecdh.PrivateKey, pub *ecdh.PublicKey, lengthBits int) ([]byte, error) {
	secret, err := priv.ECDH(pub)
	if err != nil {
		return nil, err
	}
	n := (lengthBits + 7) / 8
	if n > len(secret) {
		return nil, fmt.Errorf("requested %d bits exceeds shared secret size", lengthBits)
	}
	return secret[:n], nil
}

func (d *Default) DeriveBitsHKDF(key []byte, hashName string, salt, info []byte, lengthBits int) ([]byte, error) {
	newH, err := hashNew(hashName)
	if err != nil {
		return nil, err
	}
	n := lengthBits / 8
	out := make([]byte, n)
	r := hkdf.New(newH, key, salt, info)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Default) DeriveBitsPBKDF2(key []byte, hashName string, salt []byte, iterations, lengthBits int) ([]byte, error) {
	newH, err := hashNew(hashName)
	if err != nil {
		return nil, err
	}
	n := lengthBits / 8
	return pbkdf2.Key(key, salt, iterations, n, newH), nil
}

func (d *Default) RandomBytes(buf []byte) error {
	_, err := rand.Read(buf)
	return err
}

func (d *Default) RandomUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
