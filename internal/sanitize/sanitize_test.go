package sanitize

import "testing"

func TestText(t *testing.T) {
	cases := map[string]struct {
		in, want string
	}{
		"tags":     {in: "<p>Acme <b>raises</b> $10M</p>", want: "Acme raises $10M"},
		"script":   {in: "Hello<script>alert(1)</script> world", want: "Hello world"},
		"entities": {in: "R&amp;D   spend", want: "R&D spend"},
		"empty":    {in: "", want: ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := Text(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := Truncate("abc", 6); got != "abc" {
		t.Fatalf("expected untouched string, got %q", got)
	}
}
