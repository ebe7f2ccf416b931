package tabular

import "html/template"

// EscapeString escapes s for inclusion in HTML text content.
func EscapeString(s string) string {
	return template.HTMLEscapeString(s)
}

// Safe marks s as pre-escaped markup that templating layers must not
// escape again.
func Safe(s string) template.HTML {
	return template.HTML(s)
}
