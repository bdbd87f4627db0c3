package frontmatter

import "testing"

func TestParse_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]string
	}{
		{
			name: "basic header",
			in:   "---\nname: pregnancy\ndescription: tracks weeks\n---\nbody",
			want: map[string]string{"name": "pregnancy", "description": "tracks weeks"},
		},
		{
			name: "no opening delimiter returns empty map",
			in:   "# just markdown\nname: nope\n",
			want: map[string]string{},
		},
		{
			name: "unterminated header returns empty map",
			in:   "---\nname: pregnancy\nbody without closer",
			want: map[string]string{},
		},
		{
			name: "quotes stripped",
			in:   "---\nname: \"pregnancy\"\nowner: 'eir'\n---\n",
			want: map[string]string{"name": "pregnancy", "owner": "eir"},
		},
		{
			name: "separator-less lines skipped",
			in:   "---\nname: pregnancy\nthis line has no separator\nversion: 0.1.0\n---\n",
			want: map[string]string{"name": "pregnancy", "version": "0.1.0"},
		},
		{
			name: "value containing colons keeps the rest",
			in:   "---\nsource: https://github.com/Eir-Space/pregnancy\n---\n",
			want: map[string]string{"source": "https://github.com/Eir-Space/pregnancy"},
		},
		{
			name: "crlf document",
			in:   "---\r\nname: pregnancy\r\n---\r\n",
			want: map[string]string{"name": "pregnancy"},
		},
		{
			name: "empty document",
			in:   "",
			want: map[string]string{},
		},
		{
			name: "whitespace trimmed around keys and values",
			in:   "---\n  name  :   pregnancy  \n---\n",
			want: map[string]string{"name": "pregnancy"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Fatalf("Parse(%q)[%q] = %q, want %q", tc.in, k, got[k], v)
				}
			}
		})
	}
}
