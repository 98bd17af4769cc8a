package db

import "testing"

func TestCommandVerb(t *testing.T) {
	cases := map[string]string{
		"SELECT 3":   "SELECT",
		"INSERT 0 1": "INSERT",
		"UPDATE 1":   "UPDATE",
		"BEGIN":      "BEGIN",
		"":           "unknown",
	}
	for tag, want := range cases {
		if got := commandVerb(tag); got != want {
			t.Errorf("commandVerb(%q) = %q, want %q", tag, got, want)
		}
	}
}
