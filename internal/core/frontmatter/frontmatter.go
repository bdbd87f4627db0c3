// Package frontmatter extracts the flat key/value header from skill manifests
package frontmatter

import "strings"

const delimiter = "---"

// Parse returns the key/value mapping from a leading delimited header block.
// The block must open with a delimiter line and close with a matching one; a
// document without such a block yields an empty map, never an error. Lines
// without a colon are skipped; surrounding single or double quotes on values
// are stripped
func Parse(doc string) map[string]string {
	out := map[string]string{}

	lines := strings.Split(doc, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != delimiter {
		return out
	}

	body := lines[1:]
	closed := false
	end := 0
	for i, line := range body {
		if strings.TrimRight(line, "\r") == delimiter {
			closed = true
			end = i
			break
		}
	}
	// an unterminated header is not a header
	if !closed {
		return out
	}

	for _, line := range body[:end] {
		key, value, found := strings.Cut(strings.TrimRight(line, "\r"), ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = unquote(strings.TrimSpace(value))
	}
	return out
}

// unquote strips one layer of matching surrounding quotes
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
