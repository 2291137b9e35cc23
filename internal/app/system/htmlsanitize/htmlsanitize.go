// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// PlainText strips all markup. Used for profile free-text fields (field
// location, habitual game time) where no HTML is ever legitimate.
func PlainText(s string) string {
	return strict.Sanitize(s)
}
