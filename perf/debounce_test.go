package perf

import (
	"testing"
	"time"

	goGuard "github.com/MrEthical07/goGuard"
)

func TestDebounceCollapsesBurstIntoTrailingCall(t *testing.T) {
	clk := newTestClock()
	metrics := newTestMetrics()

	var got []string
	var firedAt time.Time
	d := Debounce(func(s string) {
		got = append(got, s)
		firedAt = clk.Now()
	}, 50*time.Millisecond, WithClock(clk), WithMetrics(metrics))

	d.Call("a")
	clk.Add(10 * time.Millisecond)
	d.Call("b")
	clk.Add(10 * time.Millisecond)
	d.Call("c")

	clk.Add(49 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}
	if !d.Pending() {
		t.Fatal("expected pending invocation")
	}

	clk.Add(time.Millisecond)
	if len(got) != 1 || got[0] != "c" {
		t.Fatalf("expected one call with last argument, got %v", got)
	}
	if want := testEpoch.Add(70 * time.Millisecond); !firedAt.Equal(want) {
		t.Fatalf("fired at %v, want %v", firedAt, want)
	}
	if d.Pending() {
		t.Fatal("expected nothing pending after fire")
	}

	if v := metrics.Value(goGuard.MetricDebounceScheduled); v != 3 {
		t.Fatalf("expected 3 scheduled, got %d", v)
	}
	if v := metrics.Value(goGuard.MetricDebounceFired); v != 1 {
		t.Fatalf("expected 1 fired, got %d", v)
	}
}

func TestDebounceSeparateBurstsFireSeparately(t *testing.T) {
	clk := newTestClock()

	var got []int
	d := Debounce(func(n int) { got = append(got, n) }, 20*time.Millisecond, WithClock(clk))

	d.Call(1)
	clk.Add(30 * time.Millisecond)
	d.Call(2)
	clk.Add(30 * time.Millisecond)

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected [1 2], got %v", got)
	}
}

func TestDebounceCancel(t *testing.T) {
	clk := newTestClock()

	calls := 0
	d := Debounce(func(struct{}) { calls++ }, 10*time.Millisecond, WithClock(clk))

	if d.Cancel() {
		t.Fatal("cancel with nothing pending should report false")
	}

	d.Call(struct{}{})
	if !d.Cancel() {
		t.Fatal("cancel should report the pending call")
	}
	clk.Add(time.Second)

	if calls != 0 {
		t.Fatalf("cancelled call ran %d times", calls)
	}
	if clk.Pending() != 0 {
		t.Fatalf("expected no armed timers, got %d", clk.Pending())
	}
}

func TestDebounceFlushRunsImmediately(t *testing.T) {
	clk := newTestClock()

	var got []string
	d := Debounce(func(s string) { got = append(got, s) }, time.Minute, WithClock(clk))

	d.Call("x")
	if !d.Flush() {
		t.Fatal("flush should run the pending call")
	}
	if len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected [x], got %v", got)
	}

	clk.Add(2 * time.Minute)
	if len(got) != 1 {
		t.Fatalf("flushed call ran again: %v", got)
	}
	if d.Flush() {
		t.Fatal("second flush should report false")
	}
}
