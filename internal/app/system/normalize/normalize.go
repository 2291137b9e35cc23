// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address for storage and lookup.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// StateCode uppercases and trims a Brazilian state abbreviation ("sp" → "SP").
// It does not validate length; validation belongs to the profile schemas.
func StateCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
