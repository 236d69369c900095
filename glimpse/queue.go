package glimpse

import "slices"

type QueuedEvent struct {
	Window WindowID
	Event  WindowEvent
}

// EventQueue buffers window events between two iterations of an event loop.
// Redraw requests are coalesced per window and delivered after all
// other events. Nothing is queued for a window after it was closed.
type EventQueue struct {
	events  []QueuedEvent
	redraws []WindowID
	closed  map[WindowID]bool
}

func (q *EventQueue) Push(id WindowID, event WindowEvent) {
	if q.closed[id] {
		return
	}

	q.events = append(q.events, QueuedEvent{Window: id, Event: event})
}

// Pop removes the oldest queued event.
func (q *EventQueue) Pop() (QueuedEvent, bool) {
	if len(q.events) == 0 {
		return QueuedEvent{}, false
	}

	ev := q.events[0]

	q.events[0] = QueuedEvent{}
	q.events = q.events[1:]

	return ev, true
}

func (q *EventQueue) Len() int {
	return len(q.events)
}

func (q *EventQueue) RequestRedraw(id WindowID) {
	if q.closed[id] {
		return
	}

	if !slices.Contains(q.redraws, id) {
		q.redraws = append(q.redraws, id)
	}
}

func (q *EventQueue) HasRedraws() bool {
	return len(q.redraws) > 0
}

// TakeRedraws returns all pending redraw requests in request order
// and clears them.
func (q *EventQueue) TakeRedraws() []WindowID {
	redraws := q.redraws
	q.redraws = nil
	return redraws
}

// Close drops everything that is still pending for the window and queues
// its Destroyed event, which is the last event of a window.
func (q *EventQueue) Close(id WindowID) {
	q.events = slices.DeleteFunc(q.events, func(ev QueuedEvent) bool {
		return ev.Window == id
	})

	q.redraws = slices.DeleteFunc(q.redraws, func(other WindowID) bool {
		return other == id
	})

	if q.closed[id] {
		return
	}

	q.Push(id, Destroyed{})

	if q.closed == nil {
		q.closed = map[WindowID]bool{}
	}

	q.closed[id] = true
}
