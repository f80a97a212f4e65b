package testkit

import "testing"

func TestMustPanic(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("limit exceeded") })
}

func TestMustNotPanic(t *testing.T) {
	t.Parallel()
	MustNotPanic(t, func() {})
}

func TestMustContain(t *testing.T) {
	t.Parallel()
	MustContain(t, `{"level":"warn","slow":true}`, `"slow":true`)
}
