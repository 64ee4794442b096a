package util

import "testing"

func TestMaskEmail(t *testing.T) {
	cases := []struct{ in, want string }{
		{"maria@acme.com", "m…@a….com"},
		{"MARIA@ACME.COM", "m…@a….com"},
		{"a@b.co", "a@b.co"},
		{"", ""},
		{"ab", "***"},
		{"noesmail", "n…l"},
	}
	for _, c := range cases {
		if got := MaskEmail(c.in); got != c.want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
