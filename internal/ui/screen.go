package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gxespino/sgt-launcher/internal/embed"
)

// screen is the controller's view. It records what to show; App renders it
// and runs the queued commands after each update.
type screen struct {
	host    Host
	pres    embed.Presentation
	pending []tea.Cmd
}

func newScreen(host Host) *screen {
	return &screen{
		host: host,
		pres: embed.Presentation{Surface: embed.SurfaceLauncher, Title: embed.AppTitle},
	}
}

func (s *screen) Present(p embed.Presentation) {
	s.pres = p
	s.pending = append(s.pending, tea.SetWindowTitle(p.Title))
}

func (s *screen) Focus(sock embed.Socket) {
	s.pending = append(s.pending, focusCmd(s.host, sock))
}

// drain returns and clears the queued commands.
func (s *screen) drain() []tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return cmds
}
