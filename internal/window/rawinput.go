package window

import (
	"encoding/binary"
	"math/bits"
)

// Raw input device types (RAWINPUTHEADER.dwType).
const (
	RawTypeMouse    = 0
	RawTypeKeyboard = 1
	RawTypeHID      = 2
)

// HID usage identifying a generic mouse, used when registering for raw input.
const (
	HIDUsagePageGeneric = 0x01
	HIDUsageMouse       = 0x02
)

// RAWINPUTHEADER is two DWORDs followed by a HANDLE and a WPARAM, so its size
// follows the pointer width.
const RawInputHeaderSize = 8 + 2*(bits.UintSize/8)

// RAWMOUSE: usFlags, button union, ulRawButtons, lLastX, lLastY,
// ulExtraInformation.
const (
	rawMouseSize    = 24
	rawMouseLastX   = 12
	rawMouseLastY   = 16
	rawMouseMinSize = RawInputHeaderSize + rawMouseSize
)

// DecodeRawMouse extracts the relative motion from a RAWINPUT buffer as
// returned by GetRawInputData. It reports false for buffers that are too
// short, whose header claims more bytes than were delivered, or that do not
// carry mouse data.
func DecodeRawMouse(buf []byte) (Motion, bool) {
	if len(buf) < rawMouseMinSize {
		return Motion{}, false
	}
	le := binary.LittleEndian
	if le.Uint32(buf[0:4]) != RawTypeMouse {
		return Motion{}, false
	}
	if size := le.Uint32(buf[4:8]); size != 0 && int(size) > len(buf) {
		return Motion{}, false
	}
	data := buf[RawInputHeaderSize:]
	return Motion{
		DX: int32(le.Uint32(data[rawMouseLastX:])),
		DY: int32(le.Uint32(data[rawMouseLastY:])),
	}, true
}

// EncodeRawMouse builds a RAWINPUT buffer carrying a relative mouse motion.
func EncodeRawMouse(m Motion) []byte {
	buf := make([]byte, rawMouseMinSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], RawTypeMouse)
	le.PutUint32(buf[4:8], uint32(len(buf)))
	data := buf[RawInputHeaderSize:]
	le.PutUint32(data[rawMouseLastX:], uint32(m.DX))
	le.PutUint32(data[rawMouseLastY:], uint32(m.DY))
	return buf
}

// RawInput handles the payload of a WM_INPUT message. Anything that is not
// a well-formed mouse packet is dropped.
func (d *Dispatcher) RawInput(buf []byte) {
	m, ok := DecodeRawMouse(buf)
	if !ok {
		return
	}
	d.RawMouseMotion(m.DX, m.DY)
}
