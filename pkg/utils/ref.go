package utils

// ValidRef reports whether s is an acceptable opaque entity reference.
// Documents are keyed by URL-safe ids (24-char hex, UUIDs and the like);
// anything outside that shape is rejected before touching the store so a
// malformed reference can never surface as an internal error.
func ValidRef(s string) bool {
	if len(s) == 0 || len(s) > 128 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
