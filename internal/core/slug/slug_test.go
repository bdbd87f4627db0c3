package slug

import "testing"

func TestMake_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "simple lowercase",
			in:   "pregnancy",
			out:  "pregnancy",
		},
		{
			name: "mixed case",
			in:   "Pregnancy Tracker",
			out:  "pregnancy-tracker",
		},
		{
			name: "non alphanumeric runs collapse",
			in:   "health..md -- helper!!",
			out:  "health-md-helper",
		},
		{
			name: "leading and trailing separators stripped",
			in:   "  --diabetes coach-- ",
			out:  "diabetes-coach",
		},
		{
			name: "accents fold to ascii",
			in:   "Prénatal Café",
			out:  "prenatal-cafe",
		},
		{
			name: "digits survive",
			in:   "triage-24x7",
			out:  "triage-24x7",
		},
		{
			name: "all punctuation yields empty",
			in:   "!!! ---",
			out:  "",
		},
		{
			name: "empty input",
			in:   "",
			out:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Make(tc.in)
			if got != tc.out {
				t.Fatalf("Make(%q) = %q, want %q", tc.in, got, tc.out)
			}
			// idempotence: a slug slugs to itself
			if again := Make(got); again != got {
				t.Fatalf("Make not idempotent: %q -> %q", got, again)
			}
		})
	}
}
