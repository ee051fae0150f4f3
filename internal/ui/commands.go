package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gxespino/sgt-launcher/internal/embed"
	"github.com/gxespino/sgt-launcher/internal/model"
)

// focusCmd gives the embedded game input focus.
func focusCmd(host Host, sock embed.Socket) tea.Cmd {
	return func() tea.Msg {
		if sock == nil {
			return nil
		}
		if err := host.Focus(sock); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// sendKeyCmd focuses the game and types key into it, the way the in-game
// action buttons do.
func sendKeyCmd(host Host, sock embed.Socket, key string) tea.Cmd {
	return func() tea.Msg {
		if sock == nil {
			return nil
		}
		if err := host.Focus(sock); err != nil {
			return errMsg{err}
		}
		if err := host.SendKeys(sock, key); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// launchCmd starts a launch once the program is running.
func launchCmd(g model.Game) tea.Cmd {
	return func() tea.Msg {
		return launchMsg{game: g}
	}
}
