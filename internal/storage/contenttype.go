package storage

import "strings"

// ContentTypeForKey resolves a best-effort Content-Type from the key's file
// extension. The remote store does not always report reliable metadata, so
// the extension embedded in the key is the source of truth. Unknown
// extensions fall back to a generic binary type.
func ContentTypeForKey(key string) string {
	idx := strings.LastIndex(key, ".")
	if idx < 0 || idx == len(key)-1 {
		return "application/octet-stream"
	}
	switch strings.ToLower(key[idx+1:]) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
