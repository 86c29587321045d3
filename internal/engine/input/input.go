// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/logger"
)

// Event types for viewer use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	DX, DY int
}

// Input collects one frame of events plus the held-key and mouse state
// accumulated across them.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool

	mouseDX, mouseDY int
	quit             bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// SetRelativeMouse captures the mouse so motion is reported as deltas.
func SetRelativeMouse(on bool) {
	sdl.SetRelativeMouseMode(on)
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.begin()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.handle(event)
	}
	return i.quit
}

func (i *Input) begin() {
	i.events = i.events[:0]
	i.mouseDX, i.mouseDY = 0, 0
}

func (i *Input) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		i.quit = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			// Viewport and projection stay at the startup size.
			logger.Info("window resized",
				zap.Int32("width", e.Data1),
				zap.Int32("height", e.Data2))
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		sc := e.Keysym.Scancode
		if e.Type == sdl.KEYDOWN {
			i.held[sc] = true
			if e.Repeat != 0 {
				return
			}
			i.events = append(i.events, Event{Type: EventKeyDown, Key: sc})
		} else if e.Type == sdl.KEYUP {
			delete(i.held, sc)
			i.events = append(i.events, Event{Type: EventKeyUp, Key: sc})
		}

	case *sdl.MouseMotionEvent:
		i.mouseDX += int(e.XRel)
		i.mouseDY += int(e.YRel)
		i.events = append(i.events, Event{
			Type: EventMouseMove,
			DX:   int(e.XRel),
			DY:   int(e.YRel),
		})
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
// Auto-repeat does not count.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether a key is currently held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// Axis returns +1, -1 or 0 from a pair of held keys.
func (i *Input) Axis(positive, negative sdl.Scancode) float32 {
	var v float32
	if i.held[positive] {
		v++
	}
	if i.held[negative] {
		v--
	}
	return v
}

// MouseDelta returns the relative mouse motion accumulated this frame.
func (i *Input) MouseDelta() (dx, dy int) {
	return i.mouseDX, i.mouseDY
}

// Quit reports whether a quit request has been seen.
func (i *Input) Quit() bool {
	return i.quit
}
