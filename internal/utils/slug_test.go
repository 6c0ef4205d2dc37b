package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Intro to Go", "intro-to-go"},
		{"Advanced   SQL!!", "advanced-sql"},
		{"Go 101: The Basics", "go-101-the-basics"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"ALL CAPS", "all-caps"},
		{"hyphen-already", "hyphen-already"},
		{"---", ""},
		{"", ""},
		{"C++ & Friends", "c-friends"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
