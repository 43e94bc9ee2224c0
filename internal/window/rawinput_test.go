package window

import (
	"encoding/binary"
	"testing"
)

func TestDecodeRawMouse(t *testing.T) {
	buf := EncodeRawMouse(Motion{DX: -12, DY: 34})
	m, ok := DecodeRawMouse(buf)
	if !ok {
		t.Fatal("DecodeRawMouse rejected a valid buffer")
	}
	if m != (Motion{DX: -12, DY: 34}) {
		t.Fatalf("motion = %+v", m)
	}
}

func TestDecodeRawMouseRejects(t *testing.T) {
	valid := EncodeRawMouse(Motion{DX: 1, DY: 1})

	short := valid[:len(valid)-1]
	if _, ok := DecodeRawMouse(short); ok {
		t.Error("short buffer accepted")
	}

	keyboard := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(keyboard[0:4], RawTypeKeyboard)
	if _, ok := DecodeRawMouse(keyboard); ok {
		t.Error("keyboard packet accepted")
	}

	oversized := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(oversized[4:8], uint32(len(valid)+64))
	if _, ok := DecodeRawMouse(oversized); ok {
		t.Error("packet claiming more bytes than delivered accepted")
	}

	if _, ok := DecodeRawMouse(nil); ok {
		t.Error("nil buffer accepted")
	}
}

func TestRawInputDispatch(t *testing.T) {
	d, _, rec := newTestDispatcher()

	d.RawInput(EncodeRawMouse(Motion{DX: 3, DY: -4}))
	d.RawInput([]byte{1, 2, 3})

	ev := rec.only(t)
	if ev.Type != EventRawMotion || ev.Motion != (Motion{DX: 3, DY: -4}) {
		t.Fatalf("unexpected event %v", ev)
	}
}
