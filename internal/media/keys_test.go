package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageKeyPrefixAndExtension(t *testing.T) {
	key := storageKey("Beach Day.JPG")

	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	// the original filename never appears in the key
	assert.NotContains(t, key, "Beach")
}

func TestStorageKeyDropsSuspiciousExtensions(t *testing.T) {
	for _, name := range []string{
		"noextension",
		"archive.tar.gz.backup-of-a-very-long-thing",
		"weird.päth",
		"trailingdot.",
	} {
		key := storageKey(name)
		assert.True(t, strings.HasPrefix(key, "uploads/"), name)
		assert.False(t, strings.Contains(strings.TrimPrefix(key, "uploads/"), "/"), name)
	}

	// a sane multi-dot name keeps only the final extension
	assert.True(t, strings.HasSuffix(storageKey("archive.tar.gz"), ".gz"))
}

func TestStorageKeyCollisionResistance(t *testing.T) {
	// identical names in the same millisecond must still produce distinct keys
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		key := storageKey("same-name.jpg")
		_, dup := seen[key]
		assert.False(t, dup, "duplicate key %q", key)
		seen[key] = struct{}{}
	}
}
