// Package infer maps free text onto the fixed domain tag and linked file vocabularies
package infer

import "strings"

// FallbackTag is applied when no keyword rule matches; Tags never returns empty
const FallbackTag = "health"

// tagRules is the fixed ordered keyword -> tag vocabulary
var tagRules = []struct {
	keyword string
	tag     string
}{
	{"pregnancy", "pregnancy"},
	{"diabetes", "diabetes"},
	{"triage", "triage"},
	{"health.md", "health-md"},
	{"search", "discovery"},
	{"find", "discovery"},
}

// linkedFileRules maps keywords to the companion files a skill creates
var linkedFileRules = []struct {
	keyword string
	file    string
}{
	{"pregnancy", "pregnancy.md"},
	{"diabetes", "diabetes.md"},
}

// healthKeywords drive the Health.md compatibility check
var healthKeywords = []string{"health", "pregnancy", "diabetes", "triage"}

// blob lowercases and joins the inputs into one searchable string
func blob(parts ...string) string {
	return strings.ToLower(strings.Join(parts, " "))
}

// Tags classifies a skill by substring matching over name, description, and
// path. All matching rules accumulate; duplicates collapse. When nothing
// matches the result is the fallback tag alone
func Tags(name, description, path string) []string {
	b := blob(name, description, path)
	seen := map[string]bool{}
	var out []string
	for _, rule := range tagRules {
		if strings.Contains(b, rule.keyword) && !seen[rule.tag] {
			seen[rule.tag] = true
			out = append(out, rule.tag)
		}
	}
	if len(out) == 0 {
		out = append(out, FallbackTag)
	}
	return out
}

// LinkedFiles returns the companion file names implied by name and
// description, empty when no rule matches
func LinkedFiles(name, description string) []string {
	b := blob(name, description)
	for _, rule := range linkedFileRules {
		if strings.Contains(b, rule.keyword) {
			return []string{rule.file}
		}
	}
	return nil
}

// HealthMD reports whether name plus description mentions a core health keyword
func HealthMD(name, description string) bool {
	b := blob(name, description)
	for _, kw := range healthKeywords {
		if strings.Contains(b, kw) {
			return true
		}
	}
	return false
}
