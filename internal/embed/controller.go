package embed

import (
	"github.com/google/uuid"
	"github.com/gxespino/sgt-launcher/internal/icon"
	"github.com/sirupsen/logrus"
)

// AppIcon is the icon name used while no game is selected.
const AppIcon = "sgt-launcher"

// Controller drives a single embed session at a time:
//
//	Browse   --Launch-->             Spawning
//	Spawning --tick, attached-->     Embedded
//	Spawning --tick, budget left-->  Spawning (respawn)
//	Spawning --tick, exhausted-->    Browse
//	Spawning --detached-->           Spawning (retry+1, poll re-armed)
//	Embedded --detached-->           Browse
type Controller struct {
	spawner Spawner
	view    View
	clock   Clock
	appIcon icon.Icon
	icons   IconResolver

	state    State
	retry    int
	poll     Timer
	req      LaunchRequest
	icon     icon.Icon
	session  string
	socket   Socket
	attached bool
}

// NewController creates a controller in the Browse state.
func NewController(spawner Spawner, view View, clock Clock, icons IconResolver) *Controller {
	return &Controller{
		spawner: spawner,
		view:    view,
		clock:   clock,
		icons:   icons,
		appIcon: icons.Resolve(AppIcon),
	}
}

// State returns the current session state.
func (c *Controller) State() State { return c.state }

// Retries returns how many respawns and detaches the current session has
// spent from MaxRetry. It is reset to zero once the game is embedded.
func (c *Controller) Retries() int { return c.retry }

// Request returns the request of the current or last session.
func (c *Controller) Request() LaunchRequest { return c.req }

// Socket returns the most recently attached socket, or nil.
func (c *Controller) Socket() Socket { return c.socket }

// Launch starts a new session for req, discarding any session in progress.
func (c *Controller) Launch(req LaunchRequest) {
	if c.state != StateBrowse {
		c.logger().Info("Discarding session for new launch")
		c.spawner.Release()
	}
	c.cancelPoll()

	c.req = req
	c.retry = 0
	c.attached = false
	c.socket = nil
	c.session = uuid.NewString()
	c.icon = c.icons.Resolve(req.Icon)
	c.state = StateSpawning

	c.logger().WithField("command", req.Command).Info("Launching game")
	c.present(SurfaceLoading, "")
	c.spawner.Spawn(req.Command)
	c.arm()
}

// Attached records a socket connection. Confirmation happens on the next
// poll tick, not here.
func (c *Controller) Attached(sock Socket) {
	c.socket = sock
	c.attached = true
	c.logger().WithField("socket", sock.ID()).Debug("Socket attached")
}

// Detached handles the embedded window going away.
func (c *Controller) Detached() {
	c.attached = false

	switch c.state {
	case StateSpawning:
		c.retry++
		c.logger().Debug("Socket detached while loading")
		c.arm()
	case StateEmbedded:
		c.logger().Info("Game closed")
		c.state = StateBrowse
		c.socket = nil
		c.present(SurfaceLauncher, "")
	}
}

// Close cancels any pending poll. The controller returns to Browse.
func (c *Controller) Close() {
	c.cancelPoll()
	c.state = StateBrowse
	c.retry = 0
}

func (c *Controller) tick() {
	c.poll = nil
	if c.state != StateSpawning {
		return
	}

	switch {
	case c.attached:
		c.state = StateEmbedded
		c.retry = 0
		c.logger().Info("Game embedded")
		c.present(SurfaceGame, "")
		c.view.Focus(c.socket)

	case c.retry+1 < MaxRetry:
		c.retry++
		c.logger().Debug("Game not attached yet, respawning")
		c.spawner.Spawn(c.req.Command)
		c.arm()

	default:
		c.logger().Warn("Giving up on game launch")
		c.state = StateBrowse
		c.retry = 0
		c.present(SurfaceLauncher, c.req.Name+" failed to start")
	}
}

// arm replaces the pending poll, if any, with a fresh one.
func (c *Controller) arm() {
	c.cancelPoll()

	var t Timer
	t = c.clock.AfterFunc(PollInterval, func() {
		// A stopped timer that still fired must not drive the session.
		if c.poll != t {
			return
		}
		c.tick()
	})
	c.poll = t
}

func (c *Controller) cancelPoll() {
	if c.poll != nil {
		c.poll.Stop()
		c.poll = nil
	}
}

func (c *Controller) present(s Surface, notice string) {
	p := Presentation{
		Surface: s,
		Title:   AppTitle,
		Icon:    c.appIcon,
		Notice:  notice,
	}
	switch s {
	case SurfaceLoading:
		p.Subtitle = "Loading " + c.req.Name
		p.Icon = c.icon
		p.Request = c.req
	case SurfaceGame:
		p.Subtitle = c.req.Name
		p.Icon = c.icon
		p.Request = c.req
		p.Actions = true
	}
	if p.Subtitle != "" {
		p.Title = AppTitle + " - " + p.Subtitle
	}
	c.view.Present(p)
}

func (c *Controller) logger() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"session": c.session,
		"game":    c.req.Name,
		"state":   c.state.String(),
		"retry":   c.retry,
	})
}
