package validation

import "strings"

// SanitizeAmount strips everything except digits and periods from a raw
// amount entry. Adapters apply it as the user types, before the schema ever
// sees the value, so stray characters never reach Validate.
func SanitizeAmount(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, ch := range raw {
		if (ch >= '0' && ch <= '9') || ch == '.' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
