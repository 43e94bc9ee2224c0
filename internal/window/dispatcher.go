package window

import (
	"log/slog"
)

// Platform is the native side a Dispatcher needs while normalizing input.
type Platform interface {
	// MapScanCode translates a keyboard scan code into a sided virtual key
	// (MapVirtualKey with MAPVK_VSC_TO_VK_EX).
	MapScanCode(scanCode uint32) KeyCode

	// ClipRect returns the current cursor clip rectangle in screen coordinates.
	ClipRect() (Rect, error)

	// SetClipRect confines the cursor to r.
	SetClipRect(r Rect) error

	// WindowRect returns the window bounds in screen coordinates.
	WindowRect() (Rect, error)
}

// SessionState is the per-window state that gates event delivery.
type SessionState struct {
	Exiting        bool
	CursorConfined bool
	WindowSize     Size
	SavedClip      Rect
}

// Dispatcher turns raw platform input into calls on a Handlers set.
//
// It is not safe for concurrent use. All methods are expected to run on the
// thread that pumps the window's messages.
type Dispatcher struct {
	platform Platform
	handlers Handlers
	log      *slog.Logger
	state    SessionState
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for platform-call diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// WithWindowSize seeds the tracked window size.
func WithWindowSize(width, height uint32) Option {
	return func(d *Dispatcher) {
		d.state.WindowSize = Size{Width: width, Height: height}
	}
}

func NewDispatcher(platform Platform, handlers Handlers, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		platform: platform,
		handlers: handlers,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State returns a copy of the session state.
func (d *Dispatcher) State() SessionState {
	return d.state
}

// SetHandlers replaces the registered handlers.
func (d *Dispatcher) SetHandlers(h Handlers) {
	d.handlers = h
}

// KeyDown delivers a key press. Generic Shift, Control and Alt codes are
// resolved to their left or right variant first.
func (d *Dispatcher) KeyDown(vk KeyCode, scanCode uint32, extended bool) {
	key := d.resolveKey(vk, scanCode, extended)
	if d.handlers.KeyDown != nil {
		d.handlers.KeyDown(key)
	}
}

func (d *Dispatcher) resolveKey(vk KeyCode, scanCode uint32, extended bool) KeyCode {
	switch vk {
	case KeyShift:
		// The extended flag is not set for right shift, only the scan code
		// tells them apart.
		if d.platform != nil {
			if key := d.platform.MapScanCode(scanCode); key == KeyLeftShift || key == KeyRightShift {
				return key
			}
		}
		if scanCode == scanRightShift {
			return KeyRightShift
		}
		return KeyLeftShift
	case KeyControl:
		if extended {
			return KeyRightControl
		}
		return KeyLeftControl
	case KeyMenu:
		if extended {
			return KeyRightAlt
		}
		return KeyLeftAlt
	}
	return vk
}

// KeyUp delivers a key release verbatim. Modifiers are not resolved to
// their sided variants here.
func (d *Dispatcher) KeyUp(vk KeyCode) {
	if d.handlers.KeyUp != nil {
		d.handlers.KeyUp(vk)
	}
}

// LostFocus reports that keyboard focus left the window and releases the
// cursor if it was confined.
func (d *Dispatcher) LostFocus(window uint64) {
	if d.handlers.LostFocus != nil {
		d.handlers.LostFocus(window)
	}
	if !d.state.Exiting && d.state.CursorConfined {
		d.ConfineCursor(false)
	}
}

// ActivateApp handles application activation changes. Activation is
// reported to the LostFocus handler with a zero window so stale key state
// is dropped.
func (d *Dispatcher) ActivateApp(activating bool) {
	if activating && d.handlers.LostFocus != nil {
		d.handlers.LostFocus(0)
	}
}

// Button masks carried in wParam of WM_?BUTTONDOWN.
const (
	mkLButton = 0x0001
	mkRButton = 0x0002
	mkMButton = 0x0010
)

// MouseButtonDown delivers a press for a single-button mask. Masks with more
// than one button held are dropped.
func (d *Dispatcher) MouseButtonDown(mask uint32) {
	var button MouseButton
	switch mask {
	case mkLButton:
		button = ButtonLeft
	case mkRButton:
		button = ButtonRight
	case mkMButton:
		button = ButtonMiddle
	default:
		return
	}
	if d.handlers.MouseButtonDown != nil {
		d.handlers.MouseButtonDown(button)
	}
}

// MouseButtonUp delivers a button release.
func (d *Dispatcher) MouseButtonUp(button MouseButton) {
	if d.handlers.MouseButtonUp != nil {
		d.handlers.MouseButtonUp(button)
	}
}

// XBUTTON1 = 0x0001, XBUTTON2 = 0x0002 in the high word of wParam.
func xButton(xbutton uint16) (MouseButton, bool) {
	switch xbutton {
	case 1:
		return ButtonX1, true
	case 2:
		return ButtonX2, true
	}
	return 0, false
}

// XButtonDown delivers a press of an extended mouse button.
func (d *Dispatcher) XButtonDown(xbutton uint16) {
	button, ok := xButton(xbutton)
	if !ok {
		return
	}
	if d.handlers.MouseButtonDown != nil {
		d.handlers.MouseButtonDown(button)
	}
}

// XButtonUp delivers a release of an extended mouse button.
func (d *Dispatcher) XButtonUp(xbutton uint16) {
	button, ok := xButton(xbutton)
	if !ok {
		return
	}
	d.MouseButtonUp(button)
}

// MouseWheel delivers the wheel direction. A zero delta counts as backward.
func (d *Dispatcher) MouseWheel(delta int16) {
	if d.handlers.MouseWheel != nil {
		d.handlers.MouseWheel(delta > 0)
	}
}

// RawMouseMotion delivers unaccelerated device deltas with their sign.
func (d *Dispatcher) RawMouseMotion(dx, dy int32) {
	if d.handlers.RawMouseMotion != nil {
		d.handlers.RawMouseMotion(dx, dy)
	}
}

// PointerMove delivers the cursor position in client coordinates.
func (d *Dispatcher) PointerMove(x, y int32) {
	if d.handlers.PointerMove != nil {
		d.handlers.PointerMove(x, y)
	}
}

// WindowResize records the new client size.
func (d *Dispatcher) WindowResize(width, height uint32) {
	d.state.WindowSize = Size{Width: width, Height: height}
}

// ConfineCursor clips the cursor to the window bounds, or restores the clip
// that was active before. It does nothing once the window is exiting.
//
// Platform failures are logged and leave the state as it was before the
// failing call.
func (d *Dispatcher) ConfineCursor(confine bool) {
	if d.state.Exiting || d.platform == nil {
		return
	}

	if confine {
		// A repeated request re-clips to the current bounds but keeps the
		// clip saved by the first one.
		if !d.state.CursorConfined {
			saved, err := d.platform.ClipRect()
			if err != nil {
				d.log.Debug("read cursor clip", "error", err)
				return
			}
			d.state.SavedClip = saved
		}

		bounds, err := d.platform.WindowRect()
		if err != nil {
			d.log.Debug("read window rect", "error", err)
			return
		}
		if err := d.platform.SetClipRect(bounds); err != nil {
			d.log.Debug("confine cursor", "rect", bounds, "error", err)
			return
		}
		d.state.CursorConfined = true
		return
	}

	if !d.state.CursorConfined {
		return
	}
	if err := d.platform.SetClipRect(d.state.SavedClip); err != nil {
		d.log.Debug("restore cursor clip", "rect", d.state.SavedClip, "error", err)
		return
	}
	d.state.CursorConfined = false
}

// Close handles a close request. The cursor is released before the session
// is marked as exiting; after that confinement can no longer change.
func (d *Dispatcher) Close() {
	d.ConfineCursor(false)
	d.state.Exiting = true
}

// Destroy handles window destruction. It is the same transition as Close
// and is safe to call after it.
func (d *Dispatcher) Destroy() {
	d.Close()
}
