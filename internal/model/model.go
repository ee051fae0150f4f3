package model

import (
	"fmt"
	"time"
)

// Game is one catalog entry, as read from its desktop file.
type Game struct {
	ID      string // catalog key, e.g. "mines"
	Name    string
	Comment string
	Icon    string // file path or icon theme name
	Exec    string

	LastPlayed time.Time
}

// FilterValue implements bubbles/list.Item for search/filter.
func (g Game) FilterValue() string {
	return g.Name + " " + g.Comment
}

// Title returns the display name for this game.
func (g Game) Title() string {
	return g.Name
}

// Description returns a secondary line for this game.
func (g Game) Description() string {
	if g.LastPlayed.IsZero() {
		return g.Comment
	}
	return g.Comment + " · played " + RelativeTime(g.LastPlayed)
}

// RelativeTime formats a time as a human-readable relative duration.
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
