// Package input handles SDL2 input events and maps keys to maze actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
}

// Action is a discrete command triggered by a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleFullscreen
	ActionSkyboxFun
	ActionSkyboxWon
	ActionSkyboxDefault
	ActionSnapshot
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionToggleFullscreen:
		return "toggle-fullscreen"
	case ActionSkyboxFun:
		return "skybox-fun"
	case ActionSkyboxWon:
		return "skybox-won"
	case ActionSkyboxDefault:
		return "skybox-default"
	case ActionSnapshot:
		return "snapshot"
	default:
		return "none"
	}
}

// ActionForKey maps a scancode to its action.
func ActionForKey(key sdl.Scancode) Action {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		return ActionQuit
	case sdl.SCANCODE_F:
		return ActionToggleFullscreen
	case sdl.SCANCODE_1:
		return ActionSkyboxFun
	case sdl.SCANCODE_2:
		return ActionSkyboxWon
	case sdl.SCANCODE_3:
		return ActionSkyboxDefault
	case sdl.SCANCODE_F12:
		return ActionSnapshot
	default:
		return ActionNone
	}
}

// Axes reads held arrow keys from a keyboard state slice.
// move is +1 forward / -1 back, turn is +1 left / -1 right.
func Axes(state []uint8) (move, turn float32) {
	held := func(sc sdl.Scancode) bool {
		return int(sc) < len(state) && state[sc] != 0
	}
	if held(sdl.SCANCODE_UP) {
		move++
	}
	if held(sdl.SCANCODE_DOWN) {
		move--
	}
	if held(sdl.SCANCODE_LEFT) {
		turn++
	}
	if held(sdl.SCANCODE_RIGHT) {
		turn--
	}
	return move, turn
}

// Input handles all input processing.
type Input struct {
	events  []Event
	actions []Action
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		actions: make([]Action, 0, 4),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.actions = i.actions[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			ev := Event{Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}
			if e.Type == sdl.KEYDOWN {
				ev.Type = EventKeyDown
			} else {
				ev.Type = EventKeyUp
			}
			i.events = append(i.events, ev)
			i.record(ev)
		}
	}

	for _, a := range i.actions {
		if a == ActionQuit {
			quit = true
		}
	}
	return quit
}

// Actions fire on release so a held key triggers once.
func (i *Input) record(ev Event) {
	if ev.Type != EventKeyUp {
		return
	}
	if a := ActionForKey(ev.Key); a != ActionNone {
		i.actions = append(i.actions, a)
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Actions returns the actions triggered during the last Update.
func (i *Input) Actions() []Action {
	return i.actions
}

// Axes returns the current movement axes from the SDL keyboard state.
func (i *Input) Axes() (move, turn float32) {
	return Axes(sdl.GetKeyboardState())
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
