package app

import "github.com/veandco/go-sdl2/sdl"

// Action is a discrete key command.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleShadows
	ActionToggleNight
	ActionPolygonFill
	ActionPolygonLine
	ActionPolygonPoint
	ActionToggleMute
	ActionScreenshot
	ActionMoreFire
	ActionLessFire
)

var actionNames = [...]string{
	ActionNone:          "none",
	ActionQuit:          "quit",
	ActionToggleShadows: "toggle_shadows",
	ActionToggleNight:   "toggle_night",
	ActionPolygonFill:   "polygon_fill",
	ActionPolygonLine:   "polygon_line",
	ActionPolygonPoint:  "polygon_point",
	ActionToggleMute:    "toggle_mute",
	ActionScreenshot:    "screenshot",
	ActionMoreFire:      "more_fire",
	ActionLessFire:      "less_fire",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// keyActions maps key presses to actions.
var keyActions = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE: ActionQuit,
	sdl.SCANCODE_L:      ActionToggleShadows,
	sdl.SCANCODE_N:      ActionToggleNight,
	sdl.SCANCODE_1:      ActionPolygonFill,
	sdl.SCANCODE_2:      ActionPolygonLine,
	sdl.SCANCODE_3:      ActionPolygonPoint,
	sdl.SCANCODE_M:      ActionToggleMute,
	sdl.SCANCODE_F12:    ActionScreenshot,
	sdl.SCANCODE_EQUALS: ActionMoreFire,
	sdl.SCANCODE_MINUS:  ActionLessFire,
}

// actionFor returns the action bound to a key press.
func actionFor(sc sdl.Scancode) Action {
	return keyActions[sc]
}

// fireStep scales the emission rate per ActionMoreFire/ActionLessFire press.
const fireStep = 1.25

// stepEmission returns the emission rate after one fire action.
func stepEmission(rate float32, action Action) float32 {
	switch action {
	case ActionMoreFire:
		if rate <= 0 {
			return 1
		}
		return rate * fireStep
	case ActionLessFire:
		return rate / fireStep
	}
	return rate
}

// Held keys for continuous movement.
const (
	keyForward     = sdl.SCANCODE_W
	keyBack        = sdl.SCANCODE_S
	keyLeft        = sdl.SCANCODE_A
	keyRight       = sdl.SCANCODE_D
	keyRotateLeft  = sdl.SCANCODE_Q
	keyRotateRight = sdl.SCANCODE_E
)
