package subtle

// Usage is an element of the WebCrypto key-usage set.
type Usage string

const (
	UsageEncrypt    Usage = "encrypt"
	UsageDecrypt    Usage = "decrypt"
	UsageSign       Usage = "sign"
	UsageVerify     Usage = "verify"
	UsageDeriveKey  Usage = "deriveKey"
	UsageDeriveBits Usage = "deriveBits"
	UsageWrapKey    Usage = "wrapKey"
	UsageUnwrapKey  Usage = "unwrapKey"
)

// hasUsage reports whether set contains u.
func hasUsage(set []Usage, u Usage) bool {
	for _, x := range set {
		if x == u {
			return true
		}
	}
	return false
}

// intersectUsages returns the elements of requested that also appear
// in allowed, preserving requested's order and collapsing duplicates.
// This is the Key Lifecycle Manager's usage-intersection rule.
func intersectUsages(requested, allowed []Usage) []Usage {
	out := make([]Usage, 0, len(requested))
	seen := make(map[Usage]bool, len(requested))
	for _, u := range requested {
		if seen[u] {
			continue
		}
		if hasUsage(allowed, u) {
			out = append(out, u)
			seen[u] = true
		}
	}
	return out
}
