package subtle

import (
	"encoding/base64"
	"math/big"
	"strconv"
)

// JWK is the wire shape of a JSON Web Key, RFC 7517/7518. Binary
// members are unpadded-base64url strings; b64Encode/b64Decode below
// do the RFC 7515 §2 encoding.
type JWK struct {
	Kty     string   `json:"kty"`
	Alg     string   `json:"alg,omitempty"`
	Ext     *bool    `json:"ext,omitempty"`
	KeyOps  []string `json:"key_ops,omitempty"`
	Use     string   `json:"use,omitempty"`
	K       string   `json:"k,omitempty"`
	N       string   `json:"n,omitempty"`
	E       string   `json:"e,omitempty"`
	D       string   `json:"d,omitempty"`
	P       string   `json:"p,omitempty"`
	Q       string   `json:"q,omitempty"`
	DP      string   `json:"dp,omitempty"`
	DQ      string   `json:"dq,omitempty"`
	QI      string   `json:"qi,omitempty"`
	Crv     string   `json:"crv,omitempty"`
	X       string   `json:"x,omitempty"`
	Y       string   `json:"y,omitempty"`
}

// b64Encode encodes b as unpadded base64url: '-'/'_' alphabet with
// trailing '=' stripped.
func b64Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// b64Decode decodes an unpadded-base64url string. It also tolerates
// standard-padded input, since some callers hand in padded JWKs.
func b64Decode(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, Errorf(KindData, "invalid base64url member: %s", err)
	}
	return b, nil
}

// bigToB64 encodes a big.Int's big-endian magnitude as
// unpadded-base64url, the form RFC 7518 mandates for n/e/d/p/q/dp/dq/qi.
func bigToB64(n *big.Int) string {
	return b64Encode(n.Bytes())
}

// b64ToBig decodes an unpadded-base64url member into a big.Int.
func b64ToBig(s string) (*big.Int, error) {
	b, err := b64Decode(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// jwkKeyOpsFromUsages renders usages as the key_ops member.
func jwkKeyOpsFromUsages(usages []Usage) []string {
	ops := make([]string, len(usages))
	for i, u := range usages {
		ops[i] = string(u)
	}
	return ops
}

// jwkUsagesFromKeyOps parses key_ops back into Usages, rejecting
// unrecognized entries with DataError.
func jwkUsagesFromKeyOps(ops []string) ([]Usage, error) {
	out := make([]Usage, 0, len(ops))
	for _, op := range ops {
		u := Usage(op)
		switch u {
		case UsageEncrypt, UsageDecrypt, UsageSign, UsageVerify,
			UsageDeriveKey, UsageDeriveBits, UsageWrapKey, UsageUnwrapKey:
			out = append(out, u)
		default:
			return nil, Errorf(KindData, "jwk key_ops contains unrecognized usage %q", op)
		}
	}
	return out, nil
}

// hmacJWKAlg returns the RFC 7518 §3.1 "alg" value for an HMAC key of
// the given hash.
func hmacJWKAlg(hashName string) string {
	switch hashName {
	case "SHA-1":
		return "HS1"
	case "SHA-256":
		return "HS256"
	case "SHA-384":
		return "HS384"
	case "SHA-512":
		return "HS512"
	default:
		return ""
	}
}

// aesJWKAlg returns the RFC 7518 §4.7/§5.1 "alg" value for an
// AES-{CTR,CBC,GCM,KW} key of the given length in bits.
func aesJWKAlg(algoName string, lengthBits int) string {
	var suffix string
	switch algoName {
	case "AES-CTR":
		suffix = "CTR"
	case "AES-CBC":
		suffix = "CBC"
	case "AES-GCM":
		suffix = "GCM"
	case "AES-KW":
		suffix = "KW"
	default:
		return ""
	}
	switch lengthBits {
	case 128, 192, 256:
	default:
		return ""
	}
	return "A" + strconv.Itoa(lengthBits) + suffix
}

// requireExtAtMostMatches rejects an import where the caller asked
// for extractable=true but the JWK's own ext member says false.
func requireExtAtMostMatches(jwkExt *bool, requestedExtractable bool) error {
	if requestedExtractable && jwkExt != nil && !*jwkExt {
		return Errorf(KindData, "jwk ext=false but extractable=true was requested")
	}
	return nil
}

// requireKeyOpsSubset rejects an import whose JWK key_ops is not a
// subset of the caller-requested usages.
func requireKeyOpsSubset(jwkOps []Usage, requested []Usage) error {
	if jwkOps == nil {
		return nil
	}
	for _, op := range jwkOps {
		if !hasUsage(requested, op) {
			return Errorf(KindData, "jwk key_ops contains %q not present in requested usages", op)
		}
	}
	return nil
}
