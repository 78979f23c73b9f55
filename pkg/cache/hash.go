package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. Layout keys identify a scene file by
// the Hash of its bytes, so an edited scene never reuses a stale result.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digest returns "<kind>:<sha256>" over the inputs, each JSON-encoded on its
// own line. The option structs carry json tags, so renaming a Go field keeps
// existing keys valid.
func digest(kind string, inputs ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, in := range inputs {
		// Inputs are strings and plain option structs; encoding cannot fail.
		_ = enc.Encode(in)
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}
