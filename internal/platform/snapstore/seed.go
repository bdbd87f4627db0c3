package snapstore

import _ "embed"

// seedJSON is the starter catalog served when no stored snapshot exists yet
//
//go:embed seed/skills.json
var seedJSON []byte

// Seed returns a copy of the built-in starter snapshot
func Seed() []byte {
	out := make([]byte, len(seedJSON))
	copy(out, seedJSON)
	return out
}
