package dataset

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gowebpki/jcs"
)

// Digest canonicalizes a JSON document (RFC 8785) and returns its sha256
// in hex. Two snapshots that differ only in key order or whitespace share
// a digest.
func Digest(data []byte) (string, error) {
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
