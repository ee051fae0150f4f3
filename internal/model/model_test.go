package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"seconds", 10 * time.Second, "just now"},
		{"minutes", 5 * time.Minute, "5m ago"},
		{"hours", 3 * time.Hour, "3h ago"},
		{"days", 50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(time.Now().Add(-tt.ago)))
		})
	}
}

func TestGameDescription(t *testing.T) {
	g := Game{Name: "Mines", Comment: "Find all the mines"}
	assert.Equal(t, "Find all the mines", g.Description())
	assert.Equal(t, "Mines", g.Title())
	assert.Equal(t, "Mines Find all the mines", g.FilterValue())

	g.LastPlayed = time.Now().Add(-2 * time.Hour)
	assert.Equal(t, "Find all the mines · played 2h ago", g.Description())
}
