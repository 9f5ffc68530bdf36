package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey returns "prefix:<sha256>" of the JSON encoding of parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashJSON hashes the JSON encoding of v. Values that fail to encode all
// hash the same, so only pass plain data.
func HashJSON(v any) string {
	data, _ := json.Marshal(v)
	return Hash(data)
}

// HashDocuments hashes named inputs in order. Swapping two documents or
// renaming one changes the hash.
func HashDocuments(names []string, data [][]byte) string {
	h := sha256.New()
	for i, name := range names {
		fmt.Fprintf(h, "%d:%s:%d:", i, name, len(data[i]))
		h.Write(data[i])
	}
	return hex.EncodeToString(h.Sum(nil))
}
