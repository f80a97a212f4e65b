package main

import "testing"

// Flag validation returns before any store is opened, so these run with
// no database and no environment.
func TestRun_RejectsBadFlags(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"missing baseline", nil},
		{"zero threshold", []string{"-baseline", "release-42", "-threshold", "0"}},
		{"negative threshold", []string{"-baseline", "release-42", "-threshold", "-3"}},
	}
	for _, c := range cases {
		if got := run(c.args); got != 2 {
			t.Fatalf("%s: run = %d, want 2", c.name, got)
		}
	}
}
