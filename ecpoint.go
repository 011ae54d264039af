package subtle

import (
	"crypto/elliptic"
	"math/big"
)

// marshalPoint renders an EC point in uncompressed form, the shape
// "raw" format import/export and JWK x/y both ultimately encode.
func marshalPoint(curve elliptic.Curve, x, y *big.Int) []byte {
	return elliptic.Marshal(curve, x, y)
}

// unmarshalPoint parses an uncompressed EC point; x is nil on
// failure.
func unmarshalPoint(curve elliptic.Curve, data []byte) (x, y *big.Int) {
	return elliptic.Unmarshal(curve, data)
}
