package store

import (
	"crypto/sha256"
	"fmt"
)

// ContentHash returns the hex SHA-256 of a file's content. Files whose hash
// matches the stored one are not re-indexed.
func ContentHash(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// ScriptHash identifies a comment script. The empty script hashes to "" so
// the default comment generator is distinguishable from any script.
func ScriptHash(src string) string {
	if src == "" {
		return ""
	}
	return ContentHash([]byte(src))
}
