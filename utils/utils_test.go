package utils

import "testing"

func TestStripMarkup(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Capital of <b>France</b>?", "Capital of France?"},
		{"line one<br>line two<br/>line three", "line one\nline two\nline three"},
		{"<div>a</div><div>b</div>", "a\nb"},
		{"Tom &amp; Jerry&nbsp;show", "Tom & Jerry show"},
		{"<p>x</p>\n\n\n\n<p>y</p>", "x\n\ny"},
	}
	for _, tc := range cases {
		if got := StripMarkup(tc.in); got != tc.want {
			t.Errorf("StripMarkup(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidPosition(t *testing.T) {
	for p, want := range map[int]bool{0: false, 1: true, 4: true, 5: false, -1: false} {
		if got := ValidPosition(p, 4); got != want {
			t.Errorf("ValidPosition(%d, 4) = %v", p, got)
		}
	}
}
