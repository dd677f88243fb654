package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey returns "<kind>:<sha256 of the JSON-encoded parts>". The key
// options are plain structs, so their JSON encoding is stable.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	// Encoding structs of strings, numbers and bools cannot fail.
	_ = json.NewEncoder(h).Encode(parts)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. Rosters and layouts are hashed
// with it before they become part of a layout or artifact key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
