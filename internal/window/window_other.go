//go:build !windows

package window

import (
	"log/slog"

	"github.com/tinyrange/wininput/internal/config"
)

// Window is only backed by a native window on Windows. Elsewhere New fails
// with ErrUnsupported and the Dispatcher is driven directly, for example
// from a replay script. All methods are safe on a nil *Window.
type Window struct {
	dispatcher *Dispatcher
}

func New(desc config.WindowDesc, handlers Handlers, logger *slog.Logger) (*Window, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return nil, ErrUnsupported
}

func (w *Window) Poll() bool { return true }
func (w *Window) Show() error { return ErrUnsupported }
func (w *Window) Hide() error { return ErrUnsupported }
func (w *Window) Destroy() {}
func (w *Window) Handle() uintptr { return 0 }
func (w *Window) ClientSize() (width, height uint32) { return 0, 0 }
func (w *Window) WindowSize() (width, height uint32) { return 0, 0 }
func (w *Window) ConfineCursor(confine bool) {}

func (w *Window) Dispatcher() *Dispatcher {
	if w == nil {
		return nil
	}
	return w.dispatcher
}
