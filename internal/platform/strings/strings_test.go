package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	def := []string{"a"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "a" {
		t.Fatalf("IfEmpty(nil) = %v", got)
	}
	in := []string{"x", "y"}
	if got := IfEmpty(in, def); len(got) != 2 {
		t.Fatalf("IfEmpty(in) = %v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("ok", "name"); got != "ok" {
		t.Fatalf("MustString = %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustString should panic on blank input")
		}
	}()
	MustString("   ", "name")
}

func TestMustPrefix(t *testing.T) {
	tests := []struct{ in, want string }{
		{"skills", "/skills"},
		{"/skills", "/skills"},
		{" /skills/ ", "/skills"},
		{"ingest/github", "/ingest/github"},
	}
	for _, tc := range tests {
		if got := MustPrefix(tc.in); got != tc.want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustPrefix should panic on root")
		}
	}()
	MustPrefix("/")
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "x", "y"); got != "x" {
		t.Fatalf("FirstNonEmpty = %q", got)
	}
	if got := FirstNonEmpty("", "  "); got != "" {
		t.Fatalf("FirstNonEmpty all blank = %q", got)
	}
}
