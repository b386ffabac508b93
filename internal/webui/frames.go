//go:build js && wasm

package webui

import (
	"syscall/js"
	"time"

	"github.com/circa/reservations/internal/hero"
)

// FrameScheduler schedules hero frames with window.requestAnimationFrame.
type FrameScheduler struct {
	window js.Value
}

func NewFrameScheduler(window js.Value) *FrameScheduler {
	return &FrameScheduler{window: window}
}

// RequestFrame registers a one-shot callback. The JS function is released
// after it fires.
func (s *FrameScheduler) RequestFrame(fn hero.FrameFunc) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		var ts time.Duration
		if len(args) > 0 {
			ts = time.Duration(args[0].Float() * float64(time.Millisecond))
		}
		fn(ts)
		return nil
	})
	s.window.Call("requestAnimationFrame", cb)
}
