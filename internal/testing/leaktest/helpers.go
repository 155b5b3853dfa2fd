// Package leaktest checks that components started in a test stop their
// goroutines again: worker pools, the resilient publisher's retry loop,
// periodic workers.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 10 * time.Millisecond

	// DefaultWait bounds how long Check waits for goroutines to exit
	DefaultWait = 2 * time.Second
)

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	t        testing.TB
	baseline int
	wait     time.Duration
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	time.Sleep(settleDelay)
	return &GoroutineChecker{t: t, baseline: runtime.NumGoroutine(), wait: DefaultWait}
}

// Check fails the test if, after waiting up to DefaultWait, more than
// tolerance goroutines remain above the baseline.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(g.wait)
	current := runtime.NumGoroutine()
	for current-g.baseline > tolerance && time.Now().Before(deadline) {
		time.Sleep(pollInterval)
		runtime.Gosched()
		current = runtime.NumGoroutine()
	}

	if leaked := current - g.baseline; leaked > tolerance {
		g.t.Errorf("goroutine leak: baseline=%d now=%d leaked=%d tolerance=%d", g.baseline, current, leaked, tolerance)
	}
}

// VerifyNone runs fn and requires every goroutine it started to have exited
func VerifyNone(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
