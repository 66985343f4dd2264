package types

import (
	"regexp"
	"strings"
	"time"
)

// datePattern pins the field widths; time.Parse alone would accept a signed
// four-character year such as "+023".
var datePattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)

// ValidateDate reports whether text is a real calendar date in YYYY-MM-DD
// form. Out-of-range months and days (2023-13-40, 2023-02-30) are rejected.
func ValidateDate(text string) bool {
	if !datePattern.MatchString(text) {
		return false
	}
	_, err := time.Parse(DateLayout, text)
	return err == nil
}

// ValidateContent reports whether text has at least one non-whitespace
// character.
func ValidateContent(text string) bool {
	return strings.TrimSpace(text) != ""
}
