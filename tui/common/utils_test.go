package common

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "short stays", in: "hello", n: 10, want: "hello"},
		{name: "exact stays", in: "hello", n: 5, want: "hello"},
		{name: "cut gets ellipsis", in: "hello world", n: 8, want: "hello..."},
		{name: "tiny budget", in: "hello", n: 2, want: "he"},
		{name: "zero", in: "hello", n: 0, want: ""},
		{name: "multibyte", in: "héllö wörld", n: 8, want: "héllö..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.in, tc.n); got != tc.want {
				t.Fatalf("Truncate(%q, %d) got %q want %q", tc.in, tc.n, got, tc.want)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("a\nb\nc"); got != "a" {
		t.Fatalf("got %q", got)
	}
	if got := FirstLine("single"); got != "single" {
		t.Fatalf("got %q", got)
	}
}
