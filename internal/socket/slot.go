// Package socket embeds games into the launcher's tmux window.
//
// A Slot is both the process spawner and the embedding socket for the
// launcher: games are split into the host window as a sibling pane, and the
// pane's liveness is reported as attach and detach events.
package socket

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gxespino/sgt-launcher/internal/embed"
	"github.com/gxespino/sgt-launcher/internal/tmux"
	"github.com/sirupsen/logrus"
)

// EnvSocket carries the slot id into the game's environment.
const EnvSocket = "SGT_LAUNCHER_SOCKET"

// DefaultWatchInterval is how often the host window is inspected.
const DefaultWatchInterval = 200 * time.Millisecond

// Multiplexer is the part of tmux a slot drives.
type Multiplexer interface {
	ListPanes(target string) ([]tmux.Pane, error)
	Split(target, command string, opts tmux.SplitOptions) (string, error)
	SelectPane(paneID string) error
	SendKeys(paneID string, keys ...string) error
	KillPane(paneID string) error
}

// Pane is the socket handle of a game attached to a slot.
type Pane struct {
	PaneID string
	num    uint64
}

// ID returns the numeric part of the pane id.
func (p Pane) ID() uint64 { return p.num }

func newPane(id string) Pane {
	n, _ := tmux.PaneNumber(id)
	return Pane{PaneID: id, num: n}
}

// Options configure a Slot.
type Options struct {
	Host     string // pane the launcher runs in
	ID       uint64 // exported to games as EnvSocket
	Split    tmux.SplitOptions
	Interval time.Duration
}

// Slot hosts at most one game pane next to the launcher pane.
type Slot struct {
	mux      Multiplexer
	host     string
	id       uint64
	split    tmux.SplitOptions
	interval time.Duration
	log      *logrus.Entry

	mu         sync.Mutex
	pane       string // tracked game pane, empty when none
	gen        uint64 // bumped on release, invalidates in-flight splits
	spawning   bool
	attached   bool
	onAttached []func(gen uint64, sock embed.Socket)
	onDetached []func(gen uint64)
}

// New creates a slot hosted next to opts.Host.
func New(mux Multiplexer, opts Options) *Slot {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	return &Slot{
		mux:      mux,
		host:     opts.Host,
		id:       opts.ID,
		split:    opts.Split,
		interval: interval,
		log:      logrus.WithField("slot", opts.ID),
	}
}

// ID returns the slot identifier handed to spawned games.
func (s *Slot) ID() uint64 { return s.id }

// OnAttached registers f to run when a game pane comes alive. Callbacks run
// on the watcher goroutine and receive the generation the pane belongs to.
func (s *Slot) OnAttached(f func(gen uint64, sock embed.Socket)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAttached = append(s.onAttached, f)
}

// OnDetached registers f to run when an attached game pane goes away.
func (s *Slot) OnDetached(f func(gen uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDetached = append(s.onDetached, f)
}

// Spawn starts command in a new pane unless a game pane already exists or
// is being created. It never blocks on tmux; failures are only logged.
func (s *Slot) Spawn(command string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pane != "" || s.spawning {
		s.log.WithField("pane", s.pane).Debug("Game pane present, spawn skipped")
		return
	}
	s.spawning = true

	opts := s.split
	opts.Env = map[string]string{EnvSocket: strconv.FormatUint(s.id, 10)}
	go s.spawn(s.gen, command, opts)
}

func (s *Slot) spawn(gen uint64, command string, opts tmux.SplitOptions) {
	id, err := s.mux.Split(s.host, command, opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		if err == nil {
			go s.kill(id)
		}
		return
	}
	s.spawning = false
	if err != nil {
		s.log.WithError(err).WithField("command", command).Warn("Spawn failed")
		return
	}
	s.pane = id
	s.log.WithField("pane", id).Debug("Game pane created")
}

// Generation identifies the current session. Release and Close advance it,
// so events tagged with an older value belong to a pane already given up.
func (s *Slot) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Release forgets the current game pane and closes it in the background.
func (s *Slot) Release() {
	if pane := s.forget(); pane != "" {
		go s.kill(pane)
	}
}

// Close forgets the current game pane and closes it before returning.
func (s *Slot) Close() {
	if pane := s.forget(); pane != "" {
		s.kill(pane)
	}
}

func (s *Slot) forget() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	pane := s.pane
	s.gen++
	s.pane = ""
	s.spawning = false
	s.attached = false
	return pane
}

func (s *Slot) kill(pane string) {
	if err := s.mux.KillPane(pane); err != nil {
		s.log.WithError(err).WithField("pane", pane).Debug("Kill pane failed")
	}
}

// Focus gives the game pane input focus.
func (s *Slot) Focus(sock embed.Socket) error {
	p, ok := sock.(Pane)
	if !ok {
		return fmt.Errorf("socket %v is not a tmux pane", sock)
	}
	return s.mux.SelectPane(p.PaneID)
}

// SendKeys types keys into the game pane.
func (s *Slot) SendKeys(sock embed.Socket, keys ...string) error {
	p, ok := sock.(Pane)
	if !ok {
		return fmt.Errorf("socket %v is not a tmux pane", sock)
	}
	return s.mux.SendKeys(p.PaneID, keys...)
}

// Watch polls the host window until ctx is done, raising attach and detach
// callbacks as the game pane appears and disappears.
func (s *Slot) Watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll()
		}
	}
}

func (s *Slot) poll() {
	s.mu.Lock()
	pane, gen := s.pane, s.gen
	s.mu.Unlock()

	if pane == "" {
		return
	}

	panes, err := s.mux.ListPanes(s.host)
	if err != nil {
		s.log.WithError(err).Debug("List panes failed")
		return
	}

	alive, dead := false, false
	for _, p := range panes {
		if p.ID == pane {
			alive = !p.Dead
			dead = p.Dead
			break
		}
	}

	s.mu.Lock()
	if gen != s.gen || s.pane != pane {
		s.mu.Unlock()
		return
	}

	var notify func()
	switch {
	case alive && !s.attached:
		s.attached = true
		sock := newPane(pane)
		callbacks := append([]func(uint64, embed.Socket){}, s.onAttached...)
		notify = func() {
			for _, f := range callbacks {
				f(gen, sock)
			}
		}
		s.log.WithField("pane", pane).Debug("Game pane attached")

	case !alive && s.attached:
		s.attached = false
		s.pane = ""
		callbacks := append([]func(uint64){}, s.onDetached...)
		notify = func() {
			for _, f := range callbacks {
				f(gen)
			}
		}
		s.log.WithField("pane", pane).Debug("Game pane detached")

	case !alive:
		// Exited before it was ever seen; let the next spawn replace it.
		s.pane = ""
		s.log.WithField("pane", pane).Debug("Game pane vanished before attaching")
	}
	s.mu.Unlock()

	if dead {
		s.kill(pane)
	}
	if notify != nil {
		notify()
	}
}
