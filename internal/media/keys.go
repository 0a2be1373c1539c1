package media

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/xid"
)

// keyPrefix is the storage namespace for all guest uploads.
const keyPrefix = "uploads/"

// extPattern accepts only plain lowercase alphanumeric extensions; anything
// else (double extensions, path tricks, unicode) is dropped from the key.
var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,9}$`)

// storageKey derives a collision-resistant object key for an upload.
// Two guests uploading identically named files in the same millisecond must
// not collide, so the key carries a random xid rather than the original
// filename; the name is kept separately as display metadata.
func storageKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("%s%d_%s%s", keyPrefix, time.Now().UnixMilli(), xid.New().String(), ext)
}
