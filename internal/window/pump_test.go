package window

import "testing"

func queue(n int, quitAt int) (func() (bool, bool), *int) {
	taken := 0
	return func() (bool, bool) {
		if taken == n {
			return false, false
		}
		taken++
		return true, taken == quitAt
	}, &taken
}

func TestDrainQueueEmptiesBacklog(t *testing.T) {
	next, taken := queue(5000, -1)
	handled, exit := drainQueue(next)
	if exit {
		t.Fatal("exit reported without a quit message")
	}
	if handled != 5000 || *taken != 5000 {
		t.Fatalf("handled %d of 5000 queued messages in one call", handled)
	}

	handled, exit = drainQueue(next)
	if handled != 0 || exit {
		t.Fatalf("empty queue: handled=%d exit=%v", handled, exit)
	}
}

func TestDrainQueueStopsOnQuit(t *testing.T) {
	next, taken := queue(10, 4)
	handled, exit := drainQueue(next)
	if !exit || handled != 3 || *taken != 4 {
		t.Fatalf("handled=%d exit=%v taken=%d", handled, exit, *taken)
	}
}
