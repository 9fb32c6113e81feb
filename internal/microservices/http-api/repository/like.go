package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s for a substring ILIKE match, with s itself matched literally.
// Postgres uses backslash as the default LIKE escape character.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
