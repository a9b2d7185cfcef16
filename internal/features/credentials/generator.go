package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	KeyTag = "vibe_"

	// 32 random bytes give 256 bits of entropy, hex-encoded.
	keyRandomBytes   = 32
	keyHexLength     = keyRandomBytes * 2
	displayHexLength = 6
)

type GeneratedKey struct {
	Key           string
	Hash          string
	DisplayPrefix string
}

// GenerateKey produces a new API key, its storage digest, and the
// short non-secret prefix shown in listings. The plaintext key leaves
// this package exactly once, in the creation response.
func GenerateKey() (*GeneratedKey, error) {
	keyBytes := make([]byte, keyRandomBytes)
	if _, err := rand.Read(keyBytes); err != nil {
		return nil, err
	}

	keySuffix := hex.EncodeToString(keyBytes)
	key := KeyTag + keySuffix

	return &GeneratedKey{
		Key:           key,
		Hash:          HashKey(key),
		DisplayPrefix: KeyTag + keySuffix[:displayHexLength] + "...",
	}, nil
}

// HashKey is the single digest function used both at issuance and at
// validation. Storage holds only this digest, never the plaintext.
func HashKey(key string) string {
	hasher := sha256.New()
	hasher.Write([]byte(key))
	return hex.EncodeToString(hasher.Sum(nil))
}

// HasValidKeyFormat cheaply rejects malformed input before any
// database lookup.
func HasValidKeyFormat(key string) bool {
	if !strings.HasPrefix(key, KeyTag) {
		return false
	}

	suffix := key[len(KeyTag):]
	if len(suffix) != keyHexLength {
		return false
	}

	_, err := hex.DecodeString(suffix)
	return err == nil
}
