package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 of b. Scene keys are built from the hash of
// the canonical spec JSON, artifact keys from the hash of the encoded scene.
func Hash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "<prefix>:<hash>" over the JSON encoding of parts, e.g.
// "artifact:9f2c..." for a scene hash and its ArtifactKeyOpts.
func hashKey(prefix string, parts ...any) string {
	b, err := json.Marshal(parts)
	if err != nil {
		b = fmt.Appendf(nil, "%#v", parts)
	}
	return prefix + ":" + Hash(b)
}
