package socket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gxespino/sgt-launcher/internal/embed"
	"github.com/gxespino/sgt-launcher/internal/tmux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type split struct {
	target  string
	command string
	opts    tmux.SplitOptions
}

type fakeMux struct {
	mu       sync.Mutex
	next     int
	panes    map[string]bool // id → dead
	splits   []split
	killed   []string
	selected []string
	sent     [][]string
	splitErr error
	gate     chan struct{} // when set, Split waits on it
}

func newFakeMux() *fakeMux {
	return &fakeMux{next: 10, panes: map[string]bool{"%1": false}}
}

func (m *fakeMux) ListPanes(target string) ([]tmux.Pane, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []tmux.Pane
	for id, dead := range m.panes {
		out = append(out, tmux.Pane{ID: id, Dead: dead, WindowID: "@3"})
	}
	return out, nil
}

func (m *fakeMux) Split(target, command string, opts tmux.SplitOptions) (string, error) {
	if m.gate != nil {
		<-m.gate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.splits = append(m.splits, split{target, command, opts})
	if m.splitErr != nil {
		return "", m.splitErr
	}
	id := fmt.Sprintf("%%%d", m.next)
	m.next++
	m.panes[id] = false
	return id, nil
}

func (m *fakeMux) SelectPane(paneID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = append(m.selected, paneID)
	return nil
}

func (m *fakeMux) SendKeys(paneID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, append([]string{paneID}, keys...))
	return nil
}

func (m *fakeMux) KillPane(paneID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.killed = append(m.killed, paneID)
	delete(m.panes, paneID)
	return nil
}

func (m *fakeMux) splitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.splits)
}

func (m *fakeMux) killedPanes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.killed...)
}

func (m *fakeMux) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.panes, id)
}

func (m *fakeMux) markDead(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panes[id] = true
}

func (s *Slot) current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pane
}

func (s *Slot) idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.spawning
}

type recorder struct {
	mu       sync.Mutex
	attached []embed.Socket
	detached int
	gens     []uint64
}

func (r *recorder) watch(s *Slot) {
	s.OnAttached(func(gen uint64, sock embed.Socket) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.attached = append(r.attached, sock)
		r.gens = append(r.gens, gen)
	})
	s.OnDetached(func(gen uint64) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.detached++
		r.gens = append(r.gens, gen)
	})
}

func (r *recorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.attached), r.detached
}

const eventually = time.Second

func newSlot(mux *fakeMux) *Slot {
	return New(mux, Options{
		Host:     "%1",
		ID:       3,
		Split:    tmux.SplitOptions{Horizontal: true, Size: "70%"},
		Interval: 5 * time.Millisecond,
	})
}

func spawned(t *testing.T, s *Slot) string {
	t.Helper()
	require.Eventually(t, func() bool { return s.current() != "" }, eventually, time.Millisecond)
	return s.current()
}

func TestSpawn_SplitsHostWithSocketEnv(t *testing.T) {
	mux := newFakeMux()
	s := newSlot(mux)

	s.Spawn("sgt-mines")
	assert.Equal(t, "%10", spawned(t, s))

	require.Equal(t, 1, mux.splitCount())
	got := mux.splits[0]
	assert.Equal(t, "%1", got.target)
	assert.Equal(t, "sgt-mines", got.command)
	assert.True(t, got.opts.Horizontal)
	assert.Equal(t, "70%", got.opts.Size)
	assert.Equal(t, map[string]string{EnvSocket: "3"}, got.opts.Env)
}

func TestSpawn_Idempotent(t *testing.T) {
	mux := newFakeMux()
	s := newSlot(mux)

	s.Spawn("sgt-mines")
	spawned(t, s)
	s.Spawn("sgt-mines")
	s.Spawn("sgt-mines")

	assert.Equal(t, 1, mux.splitCount())
}

func TestSpawn_InFlightIsNotDuplicated(t *testing.T) {
	mux := newFakeMux()
	mux.gate = make(chan struct{})
	s := newSlot(mux)

	s.Spawn("sgt-mines")
	s.Spawn("sgt-mines")
	close(mux.gate)

	spawned(t, s)
	assert.Equal(t, 1, mux.splitCount())
}

func TestSpawn_FailureAllowsRetry(t *testing.T) {
	mux := newFakeMux()
	mux.splitErr = errors.New("no server")
	s := newSlot(mux)

	s.Spawn("sgt-mines")
	require.Eventually(t, func() bool { return mux.splitCount() == 1 && s.idle() }, eventually, time.Millisecond)
	assert.Empty(t, s.current())

	mux.mu.Lock()
	mux.splitErr = nil
	mux.mu.Unlock()

	s.Spawn("sgt-mines")
	spawned(t, s)
	assert.Equal(t, 2, mux.splitCount())
}

func TestPoll_AttachThenDetach(t *testing.T) {
	mux := newFakeMux()
	s := newSlot(mux)
	var rec recorder
	rec.watch(s)

	s.Spawn("sgt-mines")
	pane := spawned(t, s)

	s.poll()
	s.poll()
	a, d := rec.counts()
	assert.Equal(t, 1, a, "attach fires once")
	assert.Equal(t, 0, d)
	assert.Equal(t, Pane{PaneID: "%10", num: 10}, rec.attached[0])
	assert.Equal(t, uint64(10), rec.attached[0].ID())

	mux.remove(pane)
	s.poll()
	a, d = rec.counts()
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, d)
	assert.Empty(t, s.current())

	s.Spawn("sgt-mines")
	spawned(t, s)
	assert.Equal(t, 2, mux.splitCount())
}

func TestPoll_DeadPaneIsDetachedAndKilled(t *testing.T) {
	mux := newFakeMux()
	s := newSlot(mux)
	var rec recorder
	rec.watch(s)

	s.Spawn("sgt-mines")
	pane := spawned(t, s)
	s.poll()

	mux.markDead(pane)
	s.poll()

	_, d := rec.counts()
	assert.Equal(t, 1, d)
	assert.Equal(t, []string{pane}, mux.killedPanes())
}

func TestPoll_VanishedBeforeAttachIsForgotten(t *testing.T) {
	mux := newFakeMux()
	s := newSlot(mux)
	var rec recorder
	rec.watch(s)

	s.Spawn("no-such-game")
	pane := spawned(t, s)
	mux.remove(pane)
	s.poll()

	a, d := rec.counts()
	assert.Zero(t, a)
	assert.Zero(t, d)
	assert.Empty(t, s.current())
}

func TestRelease_KillsTrackedPane(t *testing.T) {
	mux := newFakeMux()
	s := newSlot(mux)
	var rec recorder
	rec.watch(s)

	s.Spawn("sgt-mines")
	pane := spawned(t, s)
	s.poll()

	s.Release()
	assert.Empty(t, s.current())
	require.Eventually(t, func() bool { return len(mux.killedPanes()) == 1 }, eventually, time.Millisecond)
	assert.Equal(t, []string{pane}, mux.killedPanes())

	s.poll()
	_, d := rec.counts()
	assert.Zero(t, d, "released panes do not report detach")
}

func TestEventsCarrySessionGeneration(t *testing.T) {
	mux := newFakeMux()
	s := newSlot(mux)
	var rec recorder
	rec.watch(s)

	s.Spawn("sgt-mines")
	spawned(t, s)
	s.poll()
	first := s.Generation()

	s.Release()
	assert.Equal(t, first+1, s.Generation())

	s.Spawn("sgt-net")
	pane := spawned(t, s)
	s.poll()
	mux.remove(pane)
	s.poll()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []uint64{first, first + 1, first + 1}, rec.gens)
}

func TestRelease_DiscardsInFlightSplit(t *testing.T) {
	mux := newFakeMux()
	mux.gate = make(chan struct{})
	s := newSlot(mux)

	s.Spawn("sgt-mines")
	s.Release()
	close(mux.gate)

	require.Eventually(t, func() bool { return len(mux.killedPanes()) == 1 }, eventually, time.Millisecond)
	assert.Empty(t, s.current())
}

func TestClose_KillsSynchronously(t *testing.T) {
	mux := newFakeMux()
	s := newSlot(mux)

	s.Spawn("sgt-mines")
	pane := spawned(t, s)
	s.Close()

	assert.Equal(t, []string{pane}, mux.killedPanes())
}

func TestFocusAndSendKeys(t *testing.T) {
	mux := newFakeMux()
	s := newSlot(mux)
	sock := newPane("%10")

	require.NoError(t, s.Focus(sock))
	require.NoError(t, s.SendKeys(sock, "u"))
	assert.Equal(t, []string{"%10"}, mux.selected)
	assert.Equal(t, [][]string{{"%10", "u"}}, mux.sent)

	type other struct{ embed.Socket }
	assert.Error(t, s.Focus(other{}))
}

func TestWatch_StopsWithContext(t *testing.T) {
	mux := newFakeMux()
	s := newSlot(mux)
	var rec recorder
	rec.watch(s)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Watch(ctx)
		close(done)
	}()

	s.Spawn("sgt-mines")
	require.Eventually(t, func() bool {
		a, _ := rec.counts()
		return a == 1
	}, eventually, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(eventually):
		t.Fatal("Watch did not return after cancel")
	}
}
