package tmux

import (
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
)

// Format string for list-panes. Fields separated by tab character.
const paneFormat = "#{pane_id}\t#{pane_pid}\t#{pane_dead}\t#{window_id}\t#{pane_current_command}"

// Pane is one tmux pane as reported by list-panes.
type Pane struct {
	ID       string // e.g. "%12"
	PID      int
	Dead     bool
	WindowID string // e.g. "@3"
	Command  string
}

// SplitOptions controls how a new pane is carved out of its target.
type SplitOptions struct {
	Horizontal bool              // side by side rather than stacked
	Size       string            // "70%" or a cell count, empty for tmux default
	Env        map[string]string // exported into the new pane
}

// Client runs tmux commands against the server of the current session.
type Client struct {
	// Bin is the tmux executable, "tmux" when empty.
	Bin string
}

func (c Client) command(args ...string) *exec.Cmd {
	bin := c.Bin
	if bin == "" {
		bin = "tmux"
	}
	return exec.Command(bin, args...)
}

// ListPanes returns the panes of the window containing target.
func (c Client) ListPanes(target string) ([]Pane, error) {
	out, err := c.command("list-panes", "-t", target, "-F", paneFormat).Output()
	if err != nil {
		return nil, fmt.Errorf("tmux list-panes: %w", err)
	}

	var panes []Pane
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		p, err := parsePaneLine(line)
		if err != nil {
			continue
		}
		panes = append(panes, p)
	}
	return panes, nil
}

func parsePaneLine(line string) (Pane, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 5 {
		return Pane{}, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}

	pid, _ := strconv.Atoi(fields[1])

	return Pane{
		ID:       fields[0],
		PID:      pid,
		Dead:     fields[2] == "1",
		WindowID: fields[3],
		Command:  fields[4],
	}, nil
}

// WindowID returns the id of the window containing target.
func (c Client) WindowID(target string) (string, error) {
	out, err := c.command("display-message", "-p", "-t", target, "#{window_id}").Output()
	if err != nil {
		return "", fmt.Errorf("tmux display-message: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Split runs command in a new pane next to target without focusing it and
// returns the new pane's id.
func (c Client) Split(target, command string, opts SplitOptions) (string, error) {
	out, err := c.command(splitArgs(target, command, opts)...).Output()
	if err != nil {
		return "", fmt.Errorf("tmux split-window: %w", err)
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", fmt.Errorf("tmux split-window: no pane id returned")
	}
	return id, nil
}

func splitArgs(target, command string, opts SplitOptions) []string {
	args := []string{"split-window", "-d", "-P", "-F", "#{pane_id}", "-t", target}
	if opts.Horizontal {
		args = append(args, "-h")
	} else {
		args = append(args, "-v")
	}
	if opts.Size != "" {
		args = append(args, "-l", opts.Size)
	}

	keys := make([]string, 0, len(opts.Env))
	for k := range opts.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-e", k+"="+opts.Env[k])
	}

	return append(args, command)
}

// SelectPane gives the pane input focus.
func (c Client) SelectPane(paneID string) error {
	if err := c.command("select-pane", "-t", paneID).Run(); err != nil {
		return fmt.Errorf("tmux select-pane: %w", err)
	}
	return nil
}

// SendKeys types keys into the pane.
func (c Client) SendKeys(paneID string, keys ...string) error {
	args := append([]string{"send-keys", "-t", paneID}, keys...)
	if err := c.command(args...).Run(); err != nil {
		return fmt.Errorf("tmux send-keys: %w", err)
	}
	return nil
}

// KillPane closes the pane and terminates its process.
func (c Client) KillPane(paneID string) error {
	if err := c.command("kill-pane", "-t", paneID).Run(); err != nil {
		return fmt.Errorf("tmux kill-pane: %w", err)
	}
	return nil
}

// PaneNumber extracts the numeric part of a pane id ("%12" → 12).
func PaneNumber(paneID string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(paneID, "%"), 10, 64)
}

// WindowNumber extracts the numeric part of a window id ("@3" → 3).
func WindowNumber(windowID string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(windowID, "@"), 10, 64)
}
