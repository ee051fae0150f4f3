package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gxespino/sgt-launcher/internal/icon"
	"github.com/gxespino/sgt-launcher/internal/model"
)

type gameDelegate struct {
	icons *icon.Resolver
}

func newGameDelegate(icons *icon.Resolver) gameDelegate {
	return gameDelegate{icons: icons}
}

func (d gameDelegate) Height() int                             { return 3 }
func (d gameDelegate) Spacing() int                            { return 1 }
func (d gameDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d gameDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	game, ok := item.(model.Game)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	// Line 1: icon badge + name
	line1 := fmt.Sprintf("%s %s", iconBadge(d.icons.Resolve(game.Icon), game.Name), nameStyle.Render(game.Name))

	// Line 2: comment
	line2 := dimmedStyle.Render(" " + game.Comment)

	// Line 3: last played
	var line3 string
	if !game.LastPlayed.IsZero() {
		line3 = dimmedStyle.Render(" played " + model.RelativeTime(game.LastPlayed))
	}

	content := line1 + "\n" + line2 + "\n" + line3

	if isSelected {
		fmt.Fprint(w, selectedItemStyle.Render(content))
	} else {
		fmt.Fprint(w, normalItemStyle.Render(content))
	}
}

// iconBadge stands in for the game's icon: terminals cannot draw the image,
// so the badge shows initials, marked when the icon file was found.
func iconBadge(ic icon.Icon, name string) string {
	initials := strings.ToUpper(firstRune(name))
	if initials == "" {
		initials = strings.ToUpper(firstRune(ic.Name()))
	}
	if ic.IsFile() {
		initials += "·"
	}
	return badgeStyle.Render(initials)
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
