package subtle

// Format names one of the four serialization formats importKey and
// exportKey accept.
type Format string

const (
	FormatRaw   Format = "raw"
	FormatPKCS8 Format = "pkcs8"
	FormatSPKI  Format = "spki"
	FormatJWK   Format = "jwk"
)

// formatAllowed enforces the algorithm x format acceptance matrix
// from the external-interfaces table: which (format, algorithm
// family) pairs import/export recognize.
func formatAllowed(algoName string, format Format) bool {
	switch algoName {
	case "HMAC", "AES-CTR", "AES-CBC", "AES-GCM", "AES-KW":
		return format == FormatRaw || format == FormatJWK
	case "HKDF", "PBKDF2":
		return format == FormatRaw
	case "RSASSA-PKCS1-v1_5", "RSA-PSS", "RSA-OAEP":
		return format == FormatPKCS8 || format == FormatSPKI || format == FormatJWK
	case "ECDSA", "ECDH":
		return format == FormatRaw || format == FormatPKCS8 || format == FormatSPKI || format == FormatJWK
	default:
		return false
	}
}
