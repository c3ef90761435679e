package reviewctl

import (
	"fmt"
	"strings"
	"time"
)

// slugBase lowercases the title and squeezes every run of
// non-alphanumeric characters into a single dash.
func slugBase(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(title) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Slugify builds the workspace-unique slug for an article: the
// normalized title plus a timestamp suffix. Titles with no usable
// characters fall back to "article".
func Slugify(title string, at time.Time) string {
	base := slugBase(title)
	if base == "" {
		base = "article"
	}
	return fmt.Sprintf("%s-%d", base, at.UnixNano())
}
