package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gxespino/sgt-launcher/internal/embed"
)

// inbox carries events raised on other goroutines into the Update loop, so
// the controller only ever runs on the loop.
type inbox chan tea.Msg

const inboxSize = 64

// wait delivers the next inbox message. It must be re-issued after every
// message it yields.
func (in inbox) wait() tea.Cmd {
	return func() tea.Msg {
		return <-in
	}
}

// loopTimer fires its callback on the loop unless stopped first.
type loopTimer struct {
	timer   *time.Timer
	f       func()
	stopped bool
	fired   bool
}

// Stop is called on the loop, so it cannot interleave with fire.
func (t *loopTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}

func (t *loopTimer) fire() {
	if t.stopped || t.fired {
		return
	}
	t.fired = true
	t.f()
}

// loopClock implements embed.Clock on top of the inbox.
type loopClock struct {
	in inbox
}

func (c loopClock) AfterFunc(d time.Duration, f func()) embed.Timer {
	t := &loopTimer{f: f}
	t.timer = time.AfterFunc(d, func() {
		c.in <- timerMsg{timer: t}
	})
	return t
}
