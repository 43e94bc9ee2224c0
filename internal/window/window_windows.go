//go:build windows

package window

import (
	"fmt"
	"log/slog"
	"runtime"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"github.com/tinyrange/wininput/internal/config"
)

// lxn/win does not bind the cursor clip or scan code calls.
var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procClipCursor    = user32.NewProc("ClipCursor")
	procGetClipCursor = user32.NewProc("GetClipCursor")
	procMapVirtualKey = user32.NewProc("MapVirtualKeyW")
)

const (
	mapvkVscToVkEx = 3

	// GetRawInputData reports failure as (UINT)-1.
	rawInputError = ^uint32(0)

	// Upper bound for a single WM_INPUT payload. Larger packets are dropped.
	maxRawInputSize = 1024
)

var (
	// Every window of the process shares wndProc, which finds its
	// dispatcher here.
	registry = NewRegistry()

	wndProcCallback = windows.NewCallback(wndProc)
)

func winErr(op string, err error) error {
	if errno, ok := err.(windows.Errno); ok && errno == 0 {
		return fmt.Errorf("%s failed", op)
	}
	if err == nil {
		return fmt.Errorf("%s failed", op)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

// Window is a native Win32 window whose input is routed through a
// Dispatcher.
//
// A Window must be used from the goroutine that created it; New locks that
// goroutine to its OS thread until Destroy.
type Window struct {
	hwnd       win.HWND
	desc       config.WindowDesc
	dispatcher *Dispatcher
	log        *slog.Logger
}

// New registers a window class named after desc.Name and creates a window
// whose client area is desc.Width x desc.Height.
func New(desc config.WindowDesc, handlers Handlers, logger *slog.Logger) (*Window, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	runtime.LockOSThread()

	w := &Window{desc: desc, log: logger}
	w.dispatcher = NewDispatcher(
		&nativePlatform{w: w},
		handlers,
		WithLogger(logger),
		WithWindowSize(uint32(desc.Width), uint32(desc.Height)),
	)

	hwnd, err := w.create()
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	w.hwnd = hwnd

	if desc.RawMouse {
		if err := registerRawMouseInput(hwnd); err != nil {
			// Relative motion is simply not reported without it.
			logger.Warn("raw mouse input unavailable", "error", err)
		}
	}
	win.UpdateWindow(hwnd)

	return w, nil
}

func (w *Window) create() (win.HWND, error) {
	hInstance := win.GetModuleHandle(nil)
	if hInstance == 0 {
		return 0, winErr("GetModuleHandleW", windows.GetLastError())
	}

	className, err := windows.UTF16PtrFromString(w.desc.Name)
	if err != nil {
		return 0, fmt.Errorf("window class name: %w", err)
	}
	title, err := windows.UTF16PtrFromString(w.desc.Title)
	if err != nil {
		return 0, fmt.Errorf("window title: %w", err)
	}

	wc := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		Style:         win.CS_HREDRAW | win.CS_VREDRAW,
		LpfnWndProc:   wndProcCallback,
		HInstance:     hInstance,
		HIcon:         win.LoadIcon(0, win.MAKEINTRESOURCE(win.IDI_APPLICATION)),
		HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_ARROW)),
		HbrBackground: win.HBRUSH(win.GetStockObject(win.BLACK_BRUSH)),
		LpszClassName: className,
		HIconSm:       win.LoadIcon(0, win.MAKEINTRESOURCE(win.IDI_APPLICATION)),
	}
	if win.RegisterClassEx(&wc) == 0 {
		return 0, winErr("RegisterClassExW", windows.GetLastError())
	}

	// Grow the outer rectangle so the client area matches the request.
	style := uint32(win.WS_OVERLAPPEDWINDOW | win.WS_CLIPCHILDREN)
	outer := win.RECT{Right: int32(w.desc.Width), Bottom: int32(w.desc.Height)}
	if !win.AdjustWindowRect(&outer, style, false) {
		w.log.Debug("AdjustWindowRect failed, using client size", "error", windows.GetLastError())
		outer = win.RECT{Right: int32(w.desc.Width), Bottom: int32(w.desc.Height)}
	}

	// The creation parameter carries a registry key, not a Go pointer to
	// the dispatcher. wndProc binds it on WM_NCCREATE.
	key := registry.Reserve(w.dispatcher)
	hwnd := win.CreateWindowEx(
		0,
		className,
		title,
		style,
		win.CW_USEDEFAULT,
		win.CW_USEDEFAULT,
		outer.Right-outer.Left,
		outer.Bottom-outer.Top,
		0,
		0,
		hInstance,
		unsafe.Pointer(&key),
	)
	runtime.KeepAlive(&key)
	if hwnd == 0 {
		registry.Release(key)
		return 0, winErr("CreateWindowExW", windows.GetLastError())
	}
	return hwnd, nil
}

func registerRawMouseInput(hwnd win.HWND) error {
	rid := win.RAWINPUTDEVICE{
		UsUsagePage: HIDUsagePageGeneric,
		UsUsage:     HIDUsageMouse,
		DwFlags:     win.RIDEV_INPUTSINK,
		HwndTarget:  hwnd,
	}
	if !win.RegisterRawInputDevices(&rid, 1, uint32(unsafe.Sizeof(rid))) {
		return winErr("RegisterRawInputDevices", windows.GetLastError())
	}
	return nil
}

func wndProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	if msg == win.WM_NCCREATE {
		cs := (*win.CREATESTRUCT)(unsafe.Pointer(lParam))
		if cs.CreateParams != 0 {
			key := *(*uintptr)(unsafe.Pointer(cs.CreateParams))
			registry.Bind(key, hwnd)
		}
	}

	d, ok := registry.Lookup(hwnd)
	if !ok {
		return win.DefWindowProc(win.HWND(hwnd), uint32(msg), wParam, lParam)
	}

	switch msg {
	case win.WM_CLOSE:
		d.HandleMessage(uint32(msg), wParam, lParam)
		win.DestroyWindow(win.HWND(hwnd))
		return 0
	case win.WM_DESTROY:
		d.HandleMessage(uint32(msg), wParam, lParam)
		registry.Unregister(hwnd)
		d.log.Debug("window destroyed", "hwnd", fmt.Sprintf("%#x", hwnd), "remaining", registry.Len())
		// Queues WM_QUIT for the next Poll.
		win.PostQuitMessage(0)
		return 0
	case win.WM_INPUT:
		if buf := readRawInput(lParam); buf != nil {
			d.RawInput(buf)
		}
		return 0
	}

	if d.HandleMessage(uint32(msg), wParam, lParam) {
		return 0
	}
	return win.DefWindowProc(win.HWND(hwnd), uint32(msg), wParam, lParam)
}

func readRawInput(lParam uintptr) []byte {
	headerSize := uint32(unsafe.Sizeof(win.RAWINPUTHEADER{}))

	var size uint32
	if win.GetRawInputData(win.HRAWINPUT(lParam), win.RID_INPUT, nil, &size, headerSize) == rawInputError {
		return nil
	}
	if size == 0 || size > maxRawInputSize {
		return nil
	}

	buf := make([]byte, size)
	n := win.GetRawInputData(win.HRAWINPUT(lParam), win.RID_INPUT, unsafe.Pointer(&buf[0]), &size, headerSize)
	if n == rawInputError || n == 0 {
		return nil
	}
	return buf[:n]
}

// Poll dispatches every pending message without blocking and returns once
// the queue is empty. It reports true once the window has been destroyed
// and the caller should stop pumping.
func (w *Window) Poll() bool {
	_, exit := drainQueue(func() (ok, quit bool) {
		var m win.MSG
		if !win.PeekMessage(&m, 0, 0, 0, win.PM_REMOVE) {
			return false, false
		}
		if m.Message == win.WM_QUIT {
			return true, true
		}
		win.TranslateMessage(&m)
		win.DispatchMessage(&m)
		return true, false
	})
	if exit && w.hwnd != 0 {
		// The window procedure already destroyed the window.
		w.hwnd = 0
		runtime.UnlockOSThread()
	}
	return exit
}

func (w *Window) Show() error {
	if w.hwnd == 0 {
		return ErrClosed
	}
	win.ShowWindow(w.hwnd, win.SW_SHOWNORMAL)
	return nil
}

func (w *Window) Hide() error {
	if w.hwnd == 0 {
		return ErrClosed
	}
	win.ShowWindow(w.hwnd, win.SW_HIDE)
	return nil
}

// Destroy destroys the native window. The dispatcher sees WM_DESTROY and a
// WM_QUIT is queued for the next Poll.
func (w *Window) Destroy() {
	if w.hwnd == 0 {
		return
	}
	win.DestroyWindow(w.hwnd)
	w.hwnd = 0
	runtime.UnlockOSThread()
}

func (w *Window) Handle() uintptr {
	return uintptr(w.hwnd)
}

// ClientSize returns the size of the client area, or zero if it cannot be
// queried.
func (w *Window) ClientSize() (width, height uint32) {
	var r win.RECT
	if w.hwnd == 0 || !win.GetClientRect(w.hwnd, &r) {
		return 0, 0
	}
	return uint32(r.Right - r.Left), uint32(r.Bottom - r.Top)
}

// WindowSize returns the outer size of the window including its frame, or
// zero if it cannot be queried.
func (w *Window) WindowSize() (width, height uint32) {
	var r win.RECT
	if w.hwnd == 0 || !win.GetWindowRect(w.hwnd, &r) {
		return 0, 0
	}
	return uint32(r.Right - r.Left), uint32(r.Bottom - r.Top)
}

// ConfineCursor clips the cursor to the window or releases it.
func (w *Window) ConfineCursor(confine bool) {
	w.dispatcher.ConfineCursor(confine)
}

func (w *Window) Dispatcher() *Dispatcher {
	return w.dispatcher
}

// nativePlatform implements Platform with user32.
type nativePlatform struct {
	w *Window
}

func (p *nativePlatform) MapScanCode(scanCode uint32) KeyCode {
	r, _, _ := procMapVirtualKey.Call(uintptr(scanCode), mapvkVscToVkEx)
	return KeyCode(r)
}

func (p *nativePlatform) ClipRect() (Rect, error) {
	var r win.RECT
	ret, _, err := procGetClipCursor.Call(uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return Rect{}, winErr("GetClipCursor", err)
	}
	return Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}, nil
}

func (p *nativePlatform) SetClipRect(r Rect) error {
	rc := win.RECT{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
	ret, _, err := procClipCursor.Call(uintptr(unsafe.Pointer(&rc)))
	if ret == 0 {
		return winErr("ClipCursor", err)
	}
	return nil
}

func (p *nativePlatform) WindowRect() (Rect, error) {
	if p.w.hwnd == 0 {
		return Rect{}, ErrClosed
	}
	var r win.RECT
	if !win.GetWindowRect(p.w.hwnd, &r) {
		return Rect{}, winErr("GetWindowRect", windows.GetLastError())
	}
	return Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}, nil
}
