// Package embed implements the launch/retry/embed state machine that sits
// between a game selection and the embedding socket the game attaches to.
//
// A Controller is not safe for concurrent use. Every method, and every
// callback handed to its Clock, must run on the same event loop.
package embed

import (
	"time"

	"github.com/gxespino/sgt-launcher/internal/icon"
)

const (
	// MaxRetry bounds the spawn attempts of a single launch.
	MaxRetry = 10
	// PollInterval is the spacing between attachment checks.
	PollInterval = 1000 * time.Millisecond
)

// AppTitle is the window title shown on the catalog surface.
const AppTitle = "SGT Puzzles Collection"

// State of an embed session.
type State int

const (
	StateBrowse State = iota
	StateSpawning
	StateEmbedded
)

func (s State) String() string {
	switch s {
	case StateBrowse:
		return "browse"
	case StateSpawning:
		return "spawning"
	case StateEmbedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// Surface names one of the window's views.
type Surface int

const (
	SurfaceLauncher Surface = iota
	SurfaceLoading
	SurfaceGame
)

func (s Surface) String() string {
	switch s {
	case SurfaceLauncher:
		return "launcher"
	case SurfaceLoading:
		return "loading"
	case SurfaceGame:
		return "game"
	default:
		return "unknown"
	}
}

// LaunchRequest identifies the game to embed. It is not modified once the
// launch begins.
type LaunchRequest struct {
	Name    string
	Icon    string // file path or icon theme name
	Command string
}

// Socket is a handle to the region hosting the embedded game. A fresh value
// is delivered on every attach.
type Socket interface {
	ID() uint64
}

// Presentation is everything the window shows for the current state.
type Presentation struct {
	Surface  Surface
	Title    string
	Subtitle string
	Icon     icon.Icon
	Request  LaunchRequest
	Actions  bool   // in-game action affordances visible
	Notice   string // one-shot message, set when a launch gives up
}

// Spawner starts a game command. It is fire-and-forget: failures are not
// reported and count the same as a slow start. Calling it while the game is
// already running must be safe.
type Spawner interface {
	Spawn(command string)
	// Release stops whatever an abandoned session spawned, so its window
	// cannot attach to the next one.
	Release()
}

// View renders presentations and hands input focus to the embedded game.
type View interface {
	Present(p Presentation)
	Focus(sock Socket)
}

// Timer is an armed callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// timer was still pending.
	Stop() bool
}

// Clock schedules callbacks on the controller's event loop.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// IconResolver maps an icon reference to a displayable icon.
type IconResolver interface {
	Resolve(ref string) icon.Icon
}
