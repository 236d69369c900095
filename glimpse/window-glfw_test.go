package glimpse

import "testing"

func TestGlfwWindow_ClosingWindowQueuesNothing(t *testing.T) {
	platform := &glfwPlatform{}
	win := &glfwWindow{platform: platform, id: 3}

	win.push(CursorMoved{})
	win.updateModifiers(ModShift)

	if platform.queue.Len() != 2 {
		t.Fatalf("queued %d events for an open window, want 2", platform.queue.Len())
	}

	win.closing = true

	win.push(CursorMoved{})
	win.updateModifiers(0)

	if platform.queue.Len() != 2 {
		t.Errorf("queued %d events, want no new events after closing", platform.queue.Len())
	}
}
