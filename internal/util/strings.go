package util

import "strings"

// SafeFileName maps s onto [A-Za-z0-9._-], collapsing runs of other
// characters into a single underscore. Task ARNs contain ':' and '/', which
// must not leak into file names. Returns fallback when nothing survives.
func SafeFileName(s, fallback string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "_.")
	if out == "" {
		return fallback
	}
	if len(out) > 80 {
		out = strings.TrimRight(out[:80], "_.")
	}
	return out
}
