package tables

import (
	"strings"

	"github.com/JonMunkholm/imdbsql/internal/core"
)

// CleanCharacters flattens a principals characters value such as
// `["Self","Host"]` to a comma-separated list. Backslashes become pipes.
func CleanCharacters(s string) string {
	s = core.RemoveChars(s, `"[]`)
	return strings.ReplaceAll(s, `\`, "|")
}

// NormalizeRole title-cases one role and trims a single space on each side.
func NormalizeRole(s string) string {
	return core.TrimOneSpace(core.TitleCase(s))
}
