package subtle

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"math/big"
)

// encodePKCS8RSA wraps an RSA private key in a PKCS#8 envelope.
func encodePKCS8RSA(priv *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, Errorf(KindOperation, "marshal PKCS8: %s", err)
	}
	return der, nil
}

// decodePKCS8RSA parses a PKCS#8 envelope expected to carry an RSA
// private key.
func decodePKCS8RSA(der []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, Errorf(KindData, "parse PKCS8: %s", err)
	}
	rk, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, Errorf(KindData, "PKCS8 envelope does not carry an RSA key")
	}
	return rk, nil
}

// encodeSPKIRSA wraps an RSA public key in a SubjectPublicKeyInfo
// envelope.
func encodeSPKIRSA(pub *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, Errorf(KindOperation, "marshal SPKI: %s", err)
	}
	return der, nil
}

// decodeSPKIRSA parses a SubjectPublicKeyInfo envelope expected to
// carry an RSA public key.
func decodeSPKIRSA(der []byte) (*rsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, Errorf(KindData, "parse SPKI: %s", err)
	}
	pk, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, Errorf(KindData, "SPKI envelope does not carry an RSA key")
	}
	return pk, nil
}

// encodePKCS8ECDSA wraps an ECDSA private key in a PKCS#8 envelope.
func encodePKCS8ECDSA(priv *ecdsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, Errorf(KindOperation, "marshal PKCS8: %s", err)
	}
	return der, nil
}

// decodePKCS8ECDSA parses a PKCS#8 envelope expected to carry an
// ECDSA private key.
func decodePKCS8ECDSA(der []byte) (*ecdsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, Errorf(KindData, "parse PKCS8: %s", err)
	}
	ek, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, Errorf(KindData, "PKCS8 envelope does not carry an EC key")
	}
	return ek, nil
}

// encodeSPKIECDSA wraps an ECDSA public key in a SubjectPublicKeyInfo
// envelope.
func encodeSPKIECDSA(pub *ecdsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, Errorf(KindOperation, "marshal SPKI: %s", err)
	}
	return der, nil
}

// decodeSPKIECDSA parses a SubjectPublicKeyInfo envelope expected to
// carry an ECDSA public key.
func decodeSPKIECDSA(der []byte) (*ecdsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, Errorf(KindData, "parse SPKI: %s", err)
	}
	pk, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return nil, Errorf(KindData, "SPKI envelope does not carry an EC key")
	}
	return pk, nil
}

// ecdhCurveFor returns the crypto/ecdh.Curve for a named curve.
func ecdhCurveFor(name string) (ecdh.Curve, error) {
	switch name {
	case "P-256":
		return ecdh.P256(), nil
	case "P-384":
		return ecdh.P384(), nil
	default:
		return nil, Errorf(KindNotSupported, "named curve %q not supported", name)
	}
}

// ellipticCurveFor returns the crypto/elliptic.Curve for a named
// curve, used only to bridge ECDH keys through the ecdsa-shaped
// PKCS8/SPKI envelopes x509 knows how to marshal: P-256/P-384 have
// identical scalar/point encodings under ECDH and ECDSA, so an ECDH
// key round-trips through an ecdsa.PrivateKey/PublicKey of the same
// curve without loss.
func ellipticCurveFor(name string) (elliptic.Curve, error) {
	switch name {
	case "P-256":
		return elliptic.P256(), nil
	case "P-384":
		return elliptic.P384(), nil
	default:
		return nil, Errorf(KindNotSupported, "named curve %q not supported", name)
	}
}

// ecdhPrivateToECDSA converts an ECDH private key to the ecdsa shape
// x509 can marshal.
func ecdhPrivateToECDSA(curveName string, priv *ecdh.PrivateKey) (*ecdsa.PrivateKey, error) {
	curve, err := ellipticCurveFor(curveName)
	if err != nil {
		return nil, err
	}
	pub := priv.PublicKey().Bytes()
	x, y := elliptic.Unmarshal(curve, pub)
	if x == nil {
		return nil, Errorf(KindData, "invalid ECDH public point")
	}
	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: curve, X: x, Y: y},
		D:         new(big.Int).SetBytes(priv.Bytes()),
	}, nil
}

// ecdsaPrivateToECDH converts an ecdsa-shaped private key parsed out
// of a PKCS8 envelope back into an ECDH private key.
func ecdsaPrivateToECDH(curveName string, priv *ecdsa.PrivateKey) (*ecdh.PrivateKey, error) {
	curve, err := ecdhCurveFor(curveName)
	if err != nil {
		return nil, err
	}
	return curve.NewPrivateKey(priv.D.FillBytes(make([]byte, (priv.Curve.Params().BitSize+7)/8)))
}

// ecdhPublicToECDSA converts an ECDH public key to the ecdsa shape
// x509 can marshal.
func ecdhPublicToECDSA(curveName string, pub *ecdh.PublicKey) (*ecdsa.PublicKey, error) {
	curve, err := ellipticCurveFor(curveName)
	if err != nil {
		return nil, err
	}
	x, y := elliptic.Unmarshal(curve, pub.Bytes())
	if x == nil {
		return nil, Errorf(KindData, "invalid ECDH public point")
	}
	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}

// ecdsaPublicToECDH converts an ecdsa-shaped public key parsed out of
// an SPKI envelope back into an ECDH public key.
func ecdsaPublicToECDH(curveName string, pub *ecdsa.PublicKey) (*ecdh.PublicKey, error) {
	curve, err := ecdhCurveFor(curveName)
	if err != nil {
		return nil, err
	}
	raw := elliptic.Marshal(pub.Curve, pub.X, pub.Y)
	return curve.NewPublicKey(raw)
}
