package cpmregexp

import "regexp"

// FindFirst returns the first submatch of the leftmost match
// of re in b, or "" if re does not match.
func FindFirst(re *regexp.Regexp, b []byte) string {
	if m := re.FindSubmatch(b); len(m) > 1 {
		return string(m[1])
	}

	return ""
}
