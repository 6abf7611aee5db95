package handler

import (
	"strings"
	"unicode"
)

// cleanInput removes whitespace around text and every non-printable character
func cleanInput(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(text))
}
