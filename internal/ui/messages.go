package ui

import (
	"github.com/gxespino/sgt-launcher/internal/embed"
	"github.com/gxespino/sgt-launcher/internal/model"
)

// timerMsg delivers an expired poll timer to the event loop.
type timerMsg struct {
	timer *loopTimer
}

// attachedMsg indicates a game window connected to the slot.
type attachedMsg struct {
	gen    uint64
	socket embed.Socket
}

// detachedMsg indicates the attached game window went away.
type detachedMsg struct {
	gen uint64
}

// launchMsg requests a launch from outside the list, e.g. the command line.
type launchMsg struct {
	game model.Game
}

// errMsg wraps any error.
type errMsg struct{ err error }
