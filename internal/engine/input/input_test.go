package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestActionForKey(t *testing.T) {
	tests := []struct {
		key  sdl.Scancode
		want Action
	}{
		{sdl.SCANCODE_ESCAPE, ActionQuit},
		{sdl.SCANCODE_F, ActionToggleFullscreen},
		{sdl.SCANCODE_1, ActionSkyboxFun},
		{sdl.SCANCODE_2, ActionSkyboxWon},
		{sdl.SCANCODE_3, ActionSkyboxDefault},
		{sdl.SCANCODE_F12, ActionSnapshot},
		{sdl.SCANCODE_UP, ActionNone},
		{sdl.SCANCODE_A, ActionNone},
	}

	for _, tt := range tests {
		if got := ActionForKey(tt.key); got != tt.want {
			t.Errorf("ActionForKey(%d) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestAxes(t *testing.T) {
	press := func(keys ...sdl.Scancode) []uint8 {
		state := make([]uint8, sdl.NUM_SCANCODES)
		for _, k := range keys {
			state[k] = 1
		}
		return state
	}

	tests := []struct {
		name       string
		state      []uint8
		move, turn float32
	}{
		{"idle", press(), 0, 0},
		{"forward", press(sdl.SCANCODE_UP), 1, 0},
		{"back", press(sdl.SCANCODE_DOWN), -1, 0},
		{"both cancel", press(sdl.SCANCODE_UP, sdl.SCANCODE_DOWN), 0, 0},
		{"left", press(sdl.SCANCODE_LEFT), 0, 1},
		{"right forward", press(sdl.SCANCODE_RIGHT, sdl.SCANCODE_UP), 1, -1},
		{"short state", []uint8{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			move, turn := Axes(tt.state)
			if move != tt.move || turn != tt.turn {
				t.Errorf("Axes = (%v, %v), want (%v, %v)", move, turn, tt.move, tt.turn)
			}
		})
	}
}

func TestRecordFiresOnRelease(t *testing.T) {
	in := New()
	in.record(Event{Type: EventKeyDown, Key: sdl.SCANCODE_F})
	in.record(Event{Type: EventKeyDown, Key: sdl.SCANCODE_F, Repeat: true})
	in.record(Event{Type: EventKeyUp, Key: sdl.SCANCODE_F})
	in.record(Event{Type: EventKeyUp, Key: sdl.SCANCODE_UP})

	got := in.Actions()
	if len(got) != 1 || got[0] != ActionToggleFullscreen {
		t.Errorf("actions = %v, want [toggle-fullscreen]", got)
	}
}
