package tmux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaneLine(t *testing.T) {
	p, err := parsePaneLine("%12\t4242\t0\t@3\tsgt-mines")
	require.NoError(t, err)
	assert.Equal(t, Pane{ID: "%12", PID: 4242, Dead: false, WindowID: "@3", Command: "sgt-mines"}, p)

	p, err = parsePaneLine("%7\t0\t1\t@1\t")
	require.NoError(t, err)
	assert.True(t, p.Dead)

	_, err = parsePaneLine("%7\t0")
	assert.Error(t, err)
}

func TestSplitArgs(t *testing.T) {
	args := splitArgs("%1", "sgt-mines", SplitOptions{
		Horizontal: true,
		Size:       "70%",
		Env:        map[string]string{"SGT_LAUNCHER_SOCKET": "3", "A": "b"},
	})
	assert.Equal(t, []string{
		"split-window", "-d", "-P", "-F", "#{pane_id}", "-t", "%1",
		"-h", "-l", "70%",
		"-e", "A=b", "-e", "SGT_LAUNCHER_SOCKET=3",
		"sgt-mines",
	}, args)

	args = splitArgs("%1", "sgt-net", SplitOptions{})
	assert.Equal(t, []string{
		"split-window", "-d", "-P", "-F", "#{pane_id}", "-t", "%1", "-v", "sgt-net",
	}, args)
}

func TestIDNumbers(t *testing.T) {
	n, err := PaneNumber("%12")
	require.NoError(t, err)
	assert.Equal(t, uint64(12), n)

	n, err = WindowNumber("@3")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)

	_, err = PaneNumber("pane")
	assert.Error(t, err)
}
