package record

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainRecord separates record digests from any other hash of the same
// bytes. The version suffix allows the algorithm to change later.
const DomainRecord = "yggdrasil/record/v1"

// Digest returns the content address of rec: the hex SHA-256 of the
// domain, a NUL separator and the record's canonical JSON. Records that
// differ only in key order, number spelling or Unicode normalization
// share a digest.
func Digest(rec Record) (string, error) {
	canonical, err := MarshalCanonical(rec)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hashWithDomain(DomainRecord, canonical), nil
}

func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
