package window

// Handlers is the set of callbacks a host registers with a Dispatcher.
// Every field is optional; a nil handler means the event is dropped.
type Handlers struct {
	KeyDown func(key KeyCode)
	KeyUp   func(key KeyCode)

	// LostFocus is called when keyboard focus leaves the window. No KeyUp
	// will arrive for keys held at that moment, so hosts should treat it as
	// a release of every key. window is zero when the call was triggered by
	// the application being activated.
	LostFocus func(window uint64)

	MouseButtonDown func(button MouseButton)
	MouseButtonUp   func(button MouseButton)

	// MouseWheel reports direction only. forward is true when the wheel
	// rotated away from the user.
	MouseWheel func(forward bool)

	// RawMouseMotion receives unaccelerated device deltas.
	RawMouseMotion func(dx, dy int32)

	// PointerMove receives the cursor position in client coordinates.
	PointerMove func(x, y int32)
}

// HandlersFunc returns a Handlers with every callback set, each forwarding
// a canonical Event to fn.
func HandlersFunc(fn func(Event)) Handlers {
	return Handlers{
		KeyDown: func(key KeyCode) {
			fn(Event{Type: EventKeyDown, Key: key})
		},
		KeyUp: func(key KeyCode) {
			fn(Event{Type: EventKeyUp, Key: key})
		},
		LostFocus: func(window uint64) {
			fn(Event{Type: EventLostFocus, Window: window})
		},
		MouseButtonDown: func(button MouseButton) {
			fn(Event{Type: EventMouseDown, Button: button})
		},
		MouseButtonUp: func(button MouseButton) {
			fn(Event{Type: EventMouseUp, Button: button})
		},
		MouseWheel: func(forward bool) {
			fn(Event{Type: EventMouseWheel, Forward: forward})
		},
		RawMouseMotion: func(dx, dy int32) {
			fn(Event{Type: EventRawMotion, Motion: Motion{DX: dx, DY: dy}})
		},
		PointerMove: func(x, y int32) {
			fn(Event{Type: EventPointerMove, Position: Point{X: x, Y: y}})
		},
	}
}
