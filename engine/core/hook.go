package core

// Hook is an optional completion continuation. It fires at most once:
// Fire clears it before calling, and Clear drops it without calling, so a
// disposed owner can never be called back after teardown.
type Hook struct {
	fn func()
}

func NewHook(fn func()) Hook {
	return Hook{fn: fn}
}

func (h *Hook) Set(fn func()) {
	h.fn = fn
}

func (h *Hook) Pending() bool {
	return h.fn != nil
}

func (h *Hook) Fire() {
	fn := h.fn
	h.fn = nil
	if fn != nil {
		fn()
	}
}

func (h *Hook) Clear() {
	h.fn = nil
}
