//go:build !windows

package window

import (
	"errors"
	"testing"

	"github.com/tinyrange/wininput/internal/config"
)

func TestNewUnsupported(t *testing.T) {
	w, err := New(config.Default(), Handlers{}, nil)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}

	// The returned nil window must still be usable.
	if !w.Poll() {
		t.Fatal("Poll on an unsupported window should report exit")
	}
	if w.Dispatcher() != nil || w.Handle() != 0 {
		t.Fatal("nil window exposed a dispatcher or handle")
	}
	if err := w.Show(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Show = %v", err)
	}
	w.ConfineCursor(true)
	w.Destroy()
}

func TestNewValidatesFirst(t *testing.T) {
	desc := config.Default()
	desc.Width = 0
	if _, err := New(desc, Handlers{}, nil); err == nil || errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want a validation error", err)
	}
}
