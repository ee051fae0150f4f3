package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gxespino/sgt-launcher/internal/model"
)

// PersistentState is serialized to ~/.config/sgt-launcher/state.json.
type PersistentState struct {
	LastPlayed map[string]time.Time `json:"last_played"`
	Version    int                  `json:"version"`
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sgt-launcher")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sgt-launcher")
}

func statePath() string {
	return filepath.Join(configDir(), "state.json")
}

// Load reads state from disk. Returns empty state if file doesn't exist.
func Load() (*PersistentState, error) {
	data, err := os.ReadFile(statePath())
	if err != nil {
		if os.IsNotExist(err) {
			return newState(), nil
		}
		return nil, err
	}
	var s PersistentState
	if err := json.Unmarshal(data, &s); err != nil {
		return newState(), nil
	}
	if s.LastPlayed == nil {
		s.LastPlayed = make(map[string]time.Time)
	}
	return &s, nil
}

// Save writes state to disk, creating the directory if needed. Uses temp
// file + rename so a concurrent reader never sees a partial file.
func Save(s *PersistentState) error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, statePath())
}

// MarkPlayed records that the game was embedded at the current time.
func (s *PersistentState) MarkPlayed(gameID string) {
	s.LastPlayed[gameID] = time.Now()
}

// Annotate copies the recorded play times onto games.
func (s *PersistentState) Annotate(games []model.Game) {
	for i := range games {
		games[i].LastPlayed = s.LastPlayed[games[i].ID]
	}
}

func newState() *PersistentState {
	return &PersistentState{
		LastPlayed: make(map[string]time.Time),
		Version:    1,
	}
}
