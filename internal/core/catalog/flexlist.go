package catalog

import (
	"encoding/json"
	"strings"
)

// FlexList accepts either a JSON array of strings or a single
// comma-separated string at the submission boundary. Entries are trimmed
// and empties dropped
type FlexList []string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*f = SplitList(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*f = CleanList(many)
	return nil
}

// Strings returns the list as a plain slice, never nil
func (f FlexList) Strings() []string {
	if f == nil {
		return []string{}
	}
	return []string(f)
}

// SplitList breaks a comma-separated string into trimmed non-empty entries
func SplitList(s string) []string {
	return CleanList(strings.Split(s, ","))
}

// CleanList trims every entry and drops the empty ones
func CleanList(in []string) []string {
	out := []string{}
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
