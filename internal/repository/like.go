// Package repository holds helpers shared by the store implementations.
package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so term matches as a literal substring.
// Patterns using it must declare ESCAPE '\'.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}
