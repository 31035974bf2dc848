// Package prose fills the text templates that generated clues are written from.
package prose

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BritishEnglish)

// Fill replaces every {key} in tmpl with its value. Unknown placeholders are left as they are.
func Fill(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Pounds formats an amount of money with thousands grouping, e.g. £50,000.
func Pounds(amount int) string {
	return printer.Sprintf("£%d", amount)
}

// Number formats an integer with thousands grouping.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}
