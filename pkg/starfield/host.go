package starfield

import "image/color"

// Canvas is a drawing surface that keeps its contents between frames.
type Canvas interface {
	// Resize sets the pixel dimensions and clears the surface.
	Resize(w, h int)
	// Size returns the pixel dimensions.
	Size() (w, h int)
	// FillRect blends a rectangle of c over the current contents.
	FillRect(x, y, w, h float64, c color.NRGBA)
	// FillCircle draws a filled disc. glow > 0 adds a halo of that radius in
	// the same color.
	FillCircle(cx, cy, r float64, c color.NRGBA, glow float64)
}

// Host is the environment a Session runs in.
type Host interface {
	// AcquireCanvas returns the drawing surface, or false when none is usable.
	AcquireCanvas() (Canvas, bool)
	// Viewport returns the current viewport size in surface pixels.
	Viewport() (w, h int)
	// RequestFrame schedules fn to run once on the next frame.
	RequestFrame(fn func()) FrameID
	// CancelFrame drops a scheduled callback. Unknown ids are ignored.
	CancelFrame(id FrameID)
	// AddResizeListener registers fn to run on every viewport change.
	AddResizeListener(fn func()) ListenerID
	// RemoveResizeListener deregisters a listener. Unknown ids are ignored.
	RemoveResizeListener(id ListenerID)
}

// FrameID identifies a scheduled frame callback.
type FrameID uint64

// ListenerID identifies a registered resize listener.
type ListenerID uint64

type frameEntry struct {
	id FrameID
	fn func()
}

// FrameLoop is the frame-callback bookkeeping shared by hosts. The zero value
// is ready to use. It is not safe for concurrent use; hosts call it from
// their render thread.
type FrameLoop struct {
	next    FrameID
	queue   []frameEntry
	pending map[FrameID]struct{}
}

// RequestFrame queues fn for the next Tick.
func (l *FrameLoop) RequestFrame(fn func()) FrameID {
	if l.pending == nil {
		l.pending = make(map[FrameID]struct{})
	}
	l.next++
	l.queue = append(l.queue, frameEntry{id: l.next, fn: fn})
	l.pending[l.next] = struct{}{}
	return l.next
}

// CancelFrame removes a queued callback. Cancelling from inside a callback
// also prevents a later callback of the same batch from running.
func (l *FrameLoop) CancelFrame(id FrameID) {
	delete(l.pending, id)
}

// Tick runs every callback queued before the call. Callbacks requested while
// ticking run on the following Tick. It returns the number of callbacks run.
func (l *FrameLoop) Tick() int {
	batch := l.queue
	l.queue = nil

	ran := 0
	for _, e := range batch {
		if _, ok := l.pending[e.id]; !ok {
			continue
		}
		delete(l.pending, e.id)
		e.fn()
		ran++
	}
	return ran
}

// Pending returns the number of callbacks waiting for the next Tick.
func (l *FrameLoop) Pending() int {
	return len(l.pending)
}

// ResizeNotifier is the resize-listener registry shared by hosts. The zero
// value is ready to use.
type ResizeNotifier struct {
	next      ListenerID
	order     []ListenerID
	listeners map[ListenerID]func()
}

// Add registers fn and returns its id.
func (n *ResizeNotifier) Add(fn func()) ListenerID {
	if n.listeners == nil {
		n.listeners = make(map[ListenerID]func())
	}
	n.next++
	n.order = append(n.order, n.next)
	n.listeners[n.next] = fn
	return n.next
}

// Remove deregisters a listener.
func (n *ResizeNotifier) Remove(id ListenerID) {
	if _, ok := n.listeners[id]; !ok {
		return
	}
	delete(n.listeners, id)
	for i, v := range n.order {
		if v == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

// Notify calls every registered listener in registration order.
func (n *ResizeNotifier) Notify() {
	ids := append([]ListenerID(nil), n.order...)
	for _, id := range ids {
		if fn, ok := n.listeners[id]; ok {
			fn()
		}
	}
}

// Len returns the number of registered listeners.
func (n *ResizeNotifier) Len() int {
	return len(n.listeners)
}
