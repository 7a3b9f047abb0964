// Package testkit holds small assertions shared by package tests
package testkit

import (
	"strings"
	"sync"
	"testing"
)

// MustPanic fails the test unless fn panics and returns the recovered value
func MustPanic(t testing.TB, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// MustContain fails the test unless out contains want; the full output is
// logged so log-format failures are readable
func MustContain(t testing.TB, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Logf("output:\n%s", out)
		t.Fatalf("output does not contain %q", want)
	}
}

var serial sync.Mutex

// Serial holds a process-wide lock until the test ends. Tests that Swap
// package state take it first.
func Serial(t testing.TB) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}

// Swap replaces *target for the duration of the test
func Swap[T any](t testing.TB, target *T, v T) {
	t.Helper()
	old := *target
	*target = v
	t.Cleanup(func() { *target = old })
}
