package window

// Window messages understood by HandleMessage.
const (
	wmDestroy     = 0x0002
	wmSize        = 0x0005
	wmKillFocus   = 0x0008
	wmClose       = 0x0010
	wmActivateApp = 0x001C
	wmInput       = 0x00FF
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmMouseWheel  = 0x020A
	wmXButtonDown = 0x020B
	wmXButtonUp   = 0x020C
)

// Exported message numbers for callers that build messages by hand.
const (
	MessageDestroy     uint32 = wmDestroy
	MessageSize        uint32 = wmSize
	MessageKillFocus   uint32 = wmKillFocus
	MessageClose       uint32 = wmClose
	MessageActivateApp uint32 = wmActivateApp
	MessageInput       uint32 = wmInput
	MessageKeyDown     uint32 = wmKeyDown
	MessageKeyUp       uint32 = wmKeyUp
	MessageMouseMove   uint32 = wmMouseMove
	MessageLButtonDown uint32 = wmLButtonDown
	MessageLButtonUp   uint32 = wmLButtonUp
	MessageRButtonDown uint32 = wmRButtonDown
	MessageRButtonUp   uint32 = wmRButtonUp
	MessageMButtonDown uint32 = wmMButtonDown
	MessageMButtonUp   uint32 = wmMButtonUp
	MessageMouseWheel  uint32 = wmMouseWheel
	MessageXButtonDown uint32 = wmXButtonDown
	MessageXButtonUp   uint32 = wmXButtonUp
)

func loword(v uintptr) uint16 { return uint16(v) }
func hiword(v uintptr) uint16 { return uint16(v >> 16) }

// KeyFlags are the fields packed into lParam of WM_KEYDOWN/WM_KEYUP.
type KeyFlags struct {
	RepeatCount uint16
	ScanCode    uint32
	Extended    bool
	WasDown     bool
}

// DecodeKeyFlags unpacks the lParam of a keyboard message.
//
// Bits 16-23 carry the scan code, bit 24 is set for extended keys such as
// the right-hand Ctrl and Alt, bit 30 is the previous key state.
func DecodeKeyFlags(lParam uintptr) KeyFlags {
	return KeyFlags{
		RepeatCount: uint16(lParam & 0xFFFF),
		ScanCode:    uint32(lParam&0x00FF0000) >> 16,
		Extended:    lParam&0x01000000 != 0,
		WasDown:     lParam&(1<<30) != 0,
	}
}

// EncodeKeyFlags is the inverse of DecodeKeyFlags.
func EncodeKeyFlags(f KeyFlags) uintptr {
	lParam := uintptr(f.RepeatCount) | uintptr(f.ScanCode&0xFF)<<16
	if f.Extended {
		lParam |= 0x01000000
	}
	if f.WasDown {
		lParam |= 1 << 30
	}
	return lParam
}

// PointFromLParam sign-extends the packed client coordinates of a mouse
// message. Coordinates left of or above the client area are negative.
func PointFromLParam(lParam uintptr) Point {
	return Point{
		X: int32(int16(loword(lParam))),
		Y: int32(int16(hiword(lParam))),
	}
}

// HandleMessage routes a window message to the matching operation. It
// reports false for messages the dispatcher does not consume so the caller
// can pass them on to the default window procedure.
//
// WM_INPUT is not handled here: the payload has to be fetched from the
// platform first and passed to RawInput.
func (d *Dispatcher) HandleMessage(msg uint32, wParam, lParam uintptr) bool {
	switch msg {
	case wmClose:
		d.Close()
	case wmDestroy:
		d.Destroy()
	case wmSize:
		d.WindowResize(uint32(loword(lParam)), uint32(hiword(lParam)))
		// sizing still needs the default handling
		return false
	case wmKeyDown:
		flags := DecodeKeyFlags(lParam)
		d.KeyDown(KeyCode(wParam), flags.ScanCode, flags.Extended)
	case wmKeyUp:
		// No key up arrives for keys held when focus is lost, see LostFocus.
		d.KeyUp(KeyCode(wParam))
	case wmKillFocus:
		// wParam is the window receiving focus.
		d.LostFocus(uint64(wParam))
	case wmActivateApp:
		d.ActivateApp(wParam != 0)
	case wmLButtonDown, wmRButtonDown, wmMButtonDown:
		d.MouseButtonDown(uint32(wParam))
	case wmLButtonUp:
		d.MouseButtonUp(ButtonLeft)
	case wmRButtonUp:
		d.MouseButtonUp(ButtonRight)
	case wmMButtonUp:
		d.MouseButtonUp(ButtonMiddle)
	case wmXButtonDown:
		d.XButtonDown(hiword(wParam))
	case wmXButtonUp:
		d.XButtonUp(hiword(wParam))
	case wmMouseWheel:
		d.MouseWheel(int16(hiword(wParam)))
	case wmMouseMove:
		p := PointFromLParam(lParam)
		d.PointerMove(p.X, p.Y)
	default:
		return false
	}
	return true
}
