package handler

import (
	"strings"
	"unicode"
)

// cleanTitle collapses whitespace runs into single spaces and drops other non-printable characters
func cleanTitle(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.Join(strings.Fields(text), " "))
}
