package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gxespino/sgt-launcher/internal/embed"
	"github.com/gxespino/sgt-launcher/internal/icon"
	"github.com/gxespino/sgt-launcher/internal/model"
	"github.com/gxespino/sgt-launcher/internal/state"
	"github.com/sirupsen/logrus"
)

// Host is the embedding socket the launcher spawns games into.
type Host interface {
	embed.Spawner
	OnAttached(f func(gen uint64, sock embed.Socket))
	OnDetached(f func(gen uint64))
	Generation() uint64
	Focus(sock embed.Socket) error
	SendKeys(sock embed.Socket, keys ...string) error
}

// App is the top-level Bubble Tea model.
type App struct {
	list    list.Model
	spinner spinner.Model
	games   []model.Game
	keys    keyMap
	state   *state.PersistentState
	host    Host
	ctrl    *embed.Controller
	screen  *screen
	in      inbox
	initial *model.Game
	current model.Game
	shown   embed.Surface
	width   int
	height  int
	err     error
	focused bool
}

// NewApp creates a new App. If initial is non-nil it is launched as soon as
// the program starts.
func NewApp(games []model.Game, s *state.PersistentState, host Host, icons *icon.Resolver, initial *model.Game) App {
	in := make(inbox, inboxSize)
	return newApp(games, s, host, icons, initial, in, loopClock{in: in})
}

func newApp(games []model.Game, s *state.PersistentState, host Host, icons *icon.Resolver, initial *model.Game, in inbox, clock embed.Clock) App {
	s.Annotate(games)

	delegate := newGameDelegate(icons)
	l := list.New(gameItems(games), delegate, 40, 20)
	l.Title = embed.AppTitle
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = headerStyle
	l.SetStatusBarItemName("puzzle", "puzzles")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	host.OnAttached(func(gen uint64, sock embed.Socket) { in <- attachedMsg{gen: gen, socket: sock} })
	host.OnDetached(func(gen uint64) { in <- detachedMsg{gen: gen} })

	scr := newScreen(host)

	return App{
		list:    l,
		spinner: sp,
		games:   games,
		keys:    defaultKeyMap(),
		state:   s,
		host:    host,
		ctrl:    embed.NewController(host, scr, clock, icons),
		screen:  scr,
		in:      in,
		initial: initial,
		shown:   embed.SurfaceLauncher,
		focused: true,
	}
}

func gameItems(games []model.Game) []list.Item {
	items := make([]list.Item, len(games))
	for i, g := range games {
		items[i] = g
	}
	return items
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.in.wait(), tea.SetWindowTitle(embed.AppTitle)}
	if a.initial != nil {
		cmds = append(cmds, launchCmd(*a.initial))
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Reserve space for border (2 top/bottom) + footer (2 lines) + notice
		a.list.SetSize(msg.Width-2, msg.Height-6)
		return a, nil

	case timerMsg:
		msg.timer.fire()
		return a.sync(a.in.wait())

	case attachedMsg:
		if a.stale(msg.gen) {
			return a, a.in.wait()
		}
		a.ctrl.Attached(msg.socket)
		return a.sync(a.in.wait())

	case detachedMsg:
		if a.stale(msg.gen) {
			return a, a.in.wait()
		}
		a.ctrl.Detached()
		return a.sync(a.in.wait())

	case launchMsg:
		return a.launch(msg.game)

	case spinner.TickMsg:
		// Let the spinner stop once loading is over.
		if a.shown != embed.SurfaceLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case errMsg:
		logrus.WithError(msg.err).Warn("Game pane command failed")
		a.err = msg.err
		return a, nil

	case tea.FocusMsg:
		a.focused = true
		return a, nil

	case tea.BlurMsg:
		a.focused = false
		return a, nil
	}

	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) && a.list.FilterState() != list.Filtering {
		return a.quit()
	}

	switch a.shown {
	case embed.SurfaceLoading:
		return a, nil

	case embed.SurfaceGame:
		for _, act := range a.keys.actions() {
			if key.Matches(msg, act.binding) {
				return a, sendKeyCmd(a.host, a.ctrl.Socket(), act.send)
			}
		}
		if key.Matches(msg, a.keys.Focus) {
			return a, focusCmd(a.host, a.ctrl.Socket())
		}
		return a, nil
	}

	// If the list is filtering, let it handle all keys
	if a.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Enter):
		if g, ok := a.list.SelectedItem().(model.Game); ok {
			return a.launch(g)
		}

	case key.Matches(msg, a.keys.Escape):
		if a.list.FilterState() == list.FilterApplied {
			a.list.ResetFilter()
			return a, nil
		}
		return a.quit()
	}

	// Delegate to bubbles list for j/k/arrow nav and / filtering
	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

func (a App) launch(g model.Game) (tea.Model, tea.Cmd) {
	a.current = g
	a.err = nil
	a.ctrl.Launch(embed.LaunchRequest{
		Name:    g.Name,
		Icon:    g.Icon,
		Command: g.Exec,
	})
	return a.sync(nil)
}

// stale reports whether a slot event was raised for a pane released since.
func (a App) stale(gen uint64) bool {
	if cur := a.host.Generation(); gen != cur {
		logrus.WithFields(logrus.Fields{"gen": gen, "current": cur}).Debug("Dropping stale slot event")
		return true
	}
	return false
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.ctrl.Close()
	return a, tea.Quit
}

// sync reacts to whatever the controller presented during this update and
// runs the commands it queued.
func (a App) sync(next tea.Cmd) (tea.Model, tea.Cmd) {
	cmds := a.screen.drain()
	if next != nil {
		cmds = append(cmds, next)
	}

	surface := a.screen.pres.Surface
	if surface != a.shown {
		switch surface {
		case embed.SurfaceLoading:
			cmds = append(cmds, a.spinner.Tick)
		case embed.SurfaceGame:
			a.state.MarkPlayed(a.current.ID)
			if err := state.Save(a.state); err != nil {
				logrus.WithError(err).Warn("Failed to save state")
			}
			a.state.Annotate(a.games)
			if cmd := a.list.SetItems(gameItems(a.games)); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		a.shown = surface
	}
	return a, tea.Batch(cmds...)
}

// Surface returns the surface currently shown.
func (a App) Surface() embed.Surface {
	return a.shown
}

func (a App) View() string {
	var content string
	switch a.shown {
	case embed.SurfaceLoading:
		content = a.loadingView()
	case embed.SurfaceGame:
		content = a.gameView()
	default:
		content = a.launcherView()
	}

	if a.focused {
		return borderStyle.Width(a.width - 2).Height(a.height - 2).Render(content)
	}
	return borderDimStyle.Width(a.width - 2).Height(a.height - 2).Render(content)
}

func (a App) launcherView() string {
	var b strings.Builder
	b.WriteString(a.list.View())
	b.WriteString("\n")

	if notice := a.screen.pres.Notice; notice != "" {
		b.WriteString(errorStyle.Render("  " + notice))
		b.WriteString("\n")
	}
	if a.err != nil {
		b.WriteString(errorStyle.Render("  Error: " + a.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render("j/k nav  enter play  / filter  q quit"))
	return b.String()
}

func (a App) loadingView() string {
	p := a.screen.pres
	lines := []string{
		iconBadge(p.Icon, p.Request.Name),
		"",
		nameStyle.Render(p.Request.Name),
		subtitleStyle.Render("Please wait..."),
		"",
		a.spinner.View(),
	}
	if p.Icon.IsFile() {
		lines = append(lines, "", dimmedStyle.Render(p.Icon.Path))
	}
	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(max(a.width-2, 0), max(a.height-2, 0), lipgloss.Center, lipgloss.Center, body)
}

func (a App) gameView() string {
	p := a.screen.pres
	var b strings.Builder
	b.WriteString(headerStyle.Render(iconBadge(p.Icon, p.Request.Name) + " " + p.Subtitle))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("  Playing in the pane beside this one."))
	b.WriteString("\n\n")

	if p.Actions {
		for _, act := range a.keys.actions() {
			h := act.binding.Help()
			b.WriteString("  " + actionKeyStyle.Render(h.Key) + " " + h.Desc + "\n")
		}
	}
	if a.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  Error: " + a.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render("f focus game  q quit"))
	return b.String()
}
