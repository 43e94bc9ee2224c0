package chrono

import (
	"testing"
	"time"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }
func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestSinceStartBeforeStart(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := New(ft.now)
	ft.advance(5 * time.Second)
	if got := c.SinceStart(); got != 0 {
		t.Fatalf("SinceStart before Start = %d, want 0", got)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := New(ft.now)

	ft.advance(time.Second)
	if !c.Start() {
		t.Fatal("first Start should set the epoch")
	}
	ft.advance(250 * time.Millisecond)
	if c.Start() {
		t.Fatal("second Start should not reset the epoch")
	}
	ft.advance(250 * time.Millisecond)

	if got := c.SinceStart(); got != 500 {
		t.Fatalf("SinceStart = %d, want 500", got)
	}
	if got := c.SinceEpoch(); got != 1500 {
		t.Fatalf("SinceEpoch = %d, want 1500", got)
	}
}

func TestMicros(t *testing.T) {
	start := time.Unix(0, 0)
	end := start.Add(1500 * time.Microsecond)
	if got := Micros(start, end); got != 1500 {
		t.Fatalf("Micros = %v, want 1500", got)
	}
	if got := Micros(end, start); got != -1500 {
		t.Fatalf("Micros reversed = %v, want -1500", got)
	}
}

func TestSinceEpochNeverNegative(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := New(ft.now)
	ft.advance(-time.Second)
	if got := c.SinceEpoch(); got != 0 {
		t.Fatalf("SinceEpoch = %d, want 0", got)
	}
}

func TestDefaultClockMonotonic(t *testing.T) {
	Start()
	a := SinceEpoch()
	time.Sleep(2 * time.Millisecond)
	b := SinceEpoch()
	if b < a {
		t.Fatalf("SinceEpoch went backwards: %d -> %d", a, b)
	}
	if SinceStart() > SinceEpoch() {
		t.Fatalf("start epoch precedes clock epoch")
	}
	if d := Now().Sub(Now()); d > 0 {
		t.Fatalf("Now went backwards by %v", d)
	}
}
