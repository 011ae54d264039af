// Package provider defines the Primitive Provider boundary: the
// engine never implements a cryptographic primitive itself, it only
// calls through this interface. Default is the concrete
// implementation backing it, built from the Go standard library's
// crypto packages and golang.org/x/crypto's HKDF/PBKDF2.
package provider

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rsa"
)

// Provider is the contract the engine calls out to for every
// primitive operation: digests, key generation, sign/verify,
// encrypt/decrypt, bit derivation, and randomness.
type Provider interface {
	Digest(hashName string, data []byte) ([]byte, error)

	GenerateAESKey(lengthBits int) ([]byte, error)
	GenerateHMACKey(lengthBits int) ([]byte, error)
	GenerateRSAKeyPair(modulusLengthBits int, publicExponent []byte) (*rsa.PrivateKey, error)
	GenerateECDSAKeyPair(curve string) (*ecdsa.PrivateKey, error)
	GenerateECDHKeyPair(curve string) (*ecdh.PrivateKey, error)

	SignRSAPKCS1v15(priv *rsa.PrivateKey, hashName string, data []byte) ([]byte, error)
	VerifyRSAPKCS1v15(pub *rsa.PublicKey, hashName string, data, sig []byte) (bool, error)
	SignRSAPSS(priv *rsa.PrivateKey, hashName string, saltLength int, data []byte) ([]byte, error)
	VerifyRSAPSS(pub *rsa.PublicKey, hashName string, saltLength int, data, sig []byte) (bool, error)
	SignECDSA(priv *ecdsa.PrivateKey, hashName string, data []byte) ([]byte, error)
	VerifyECDSA(pub *ecdsa.PublicKey, hashName string, data, sig []byte) (bool, error)
	SignHMAC(key []byte, hashName string, data []byte) ([]byte, error)
	VerifyHMAC(key []byte, hashName string, data, sig []byte) (bool, error)

	EncryptRSAOAEP(pub *rsa.PublicKey, hashName string, label, plaintext []byte) ([]byte, error)
	DecryptRSAOAEP(priv *rsa.PrivateKey, hashName string, label, ciphertext []byte) ([]byte, error)
	EncryptAESCBC(key, iv, plaintext []byte) ([]byte, error)
	DecryptAESCBC(key, iv, ciphertext []byte) ([]byte, error)
	EncryptAESCTR(key, counter []byte, counterBits int, plaintext []byte) ([]byte, error)
	DecryptAESCTR(key, counter []byte, counterBits int, ciphertext []byte) ([]byte, error)
	EncryptAESGCM(key, iv, aad []byte, tagBits int, plaintext []byte) ([]byte, error)
	DecryptAESGCM(key, iv, aad []byte, tagBits int, ciphertext []byte) ([]byte, error)

	DeriveBitsECDH(priv *ecdh.PrivateKey, pub *ecdh.PublicKey, lengthBits int) ([]byte, error)
	DeriveBitsHKDF(key []byte, hashName string, salt, info []byte, lengthBits int) ([]byte, error)
	DeriveBitsPBKDF2(key []byte, hashName string, salt []byte, iterations, lengthBits int) ([]byte, error)

	RandomBytes(buf []byte) error
	RandomUUID() (string, error)
}
