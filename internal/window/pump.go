package window

// drainQueue pulls messages with next until the queue is empty or a quit
// message arrives. next reports ok=false for an empty queue and quit=true
// for a quit message, which it must not dispatch.
func drainQueue(next func() (ok, quit bool)) (handled int, exit bool) {
	for {
		ok, quit := next()
		if !ok {
			return handled, false
		}
		if quit {
			return handled, true
		}
		handled++
	}
}
