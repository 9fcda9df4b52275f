package domain

import (
	"strings"
	"unicode/utf8"
)

var forbiddenNameChars = strings.NewReplacer(
	`\`, "_", "/", "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// SanitizeName turns operator input into a directory name. Forbidden
// filesystem characters become underscores, the result is capped at maxLen
// runes and trimmed. An empty result means the name was blank.
func SanitizeName(raw string, maxLen int) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}
	name = forbiddenNameChars.Replace(name)
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, name)
	if maxLen > 0 && utf8.RuneCountInString(name) > maxLen {
		name = string([]rune(name)[:maxLen])
	}
	name = strings.TrimSpace(name)
	if name == "." || name == ".." {
		return strings.Repeat("_", len(name))
	}
	return name
}
