package orion

import (
	"fmt"
	"maps"
	"slices"

	"github.com/oliverbestmann/hikari/glimpse"
)

// registry maps window identities to windows. Identities of removed
// windows are retired and can not be registered again.
type registry struct {
	live    map[glimpse.WindowID]Window
	retired map[glimpse.WindowID]struct{}
}

func newRegistry() registry {
	return registry{
		live:    map[glimpse.WindowID]Window{},
		retired: map[glimpse.WindowID]struct{}{},
	}
}

func (r *registry) add(win Window) error {
	id := win.ID()

	if _, ok := r.live[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateWindow, id)
	}

	if _, ok := r.retired[id]; ok {
		return fmt.Errorf("%w: %s was already destroyed", ErrDuplicateWindow, id)
	}

	r.live[id] = win

	return nil
}

// insert panics if the identity was seen before.
func (r *registry) insert(win Window) {
	Handle(r.add(win), "register window")
}

func (r *registry) lookup(id glimpse.WindowID) (Window, bool) {
	win, ok := r.live[id]
	return win, ok
}

// remove retires the identity and returns the window, or nil.
func (r *registry) remove(id glimpse.WindowID) Window {
	win, ok := r.live[id]
	if !ok {
		return nil
	}

	delete(r.live, id)
	r.retired[id] = struct{}{}

	return win
}

// ids returns the identities of all live windows in ascending order.
func (r *registry) ids() []glimpse.WindowID {
	return slices.Sorted(maps.Keys(r.live))
}

func (r *registry) len() int {
	return len(r.live)
}
