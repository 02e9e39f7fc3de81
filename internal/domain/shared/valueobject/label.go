package valueobject

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Humanize turns a snake_case code such as "invoice_requested" into "Invoice Requested"
func Humanize(code string) string {
	if code == "" {
		return ""
	}
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(code, "_", " "))
}
