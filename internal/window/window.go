package window

import "errors"

var (
	// ErrUnsupported is returned by New on platforms without a native backend.
	ErrUnsupported = errors.New("window: native windows are not supported on this platform")

	// ErrClosed is returned by operations on a destroyed window.
	ErrClosed = errors.New("window: closed")
)
