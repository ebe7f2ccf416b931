package tabular

import (
	"fmt"
	"strings"
	"unicode"
)

// DisplayText coerces an arbitrary value to user-displayable text.
// fmt.Stringer implementations win over the default formatting, so
// model types control their own cell text.
func DisplayText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Ucfirst upper-cases the first character of s, leaving the rest
// untouched.
func Ucfirst(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// HumanizeFieldName turns a Go field name into a human label,
// e.g. "PlayingCards" becomes "playing cards". Runs of upper-case
// letters are kept together so "ID" stays a single word.
func HumanizeFieldName(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
