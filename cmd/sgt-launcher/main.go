package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gxespino/sgt-launcher/internal/catalog"
	"github.com/gxespino/sgt-launcher/internal/config"
	"github.com/gxespino/sgt-launcher/internal/icon"
	"github.com/gxespino/sgt-launcher/internal/logging"
	"github.com/gxespino/sgt-launcher/internal/model"
	"github.com/gxespino/sgt-launcher/internal/socket"
	"github.com/gxespino/sgt-launcher/internal/state"
	"github.com/gxespino/sgt-launcher/internal/tmux"
	"github.com/gxespino/sgt-launcher/internal/ui"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "Configuration file path")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: sgt-launcher [-config path] [list | launch <game> | version]")
		flag.PrintDefaults()
	}
	flag.Parse()
	args := flag.Args()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}

	dataDirs := cfg.Catalog.DataDirs
	if len(dataDirs) == 0 {
		dataDirs = catalog.DataDirs()
	}
	opts := catalog.Options{
		Games:    cfg.Catalog.Games,
		Prefixes: cfg.Catalog.Prefixes,
		DataDirs: dataDirs,
		Locale:   catalog.CurrentLocale(),
	}

	// Subcommands that do not need tmux
	var initial *model.Game
	if len(args) > 0 {
		switch args[0] {
		case "list":
			for _, g := range catalog.Load(opts) {
				fmt.Printf("%-12s %-10s %s\n", g.Name, g.ID, g.Comment)
			}
			return
		case "version":
			version := "(devel)"
			if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
				version = bi.Main.Version
			}
			fmt.Println("sgt-launcher", version)
			return
		case "launch":
			if len(args) < 2 {
				fmt.Fprintln(os.Stderr, "usage: sgt-launcher launch <game>")
				os.Exit(1)
			}
			query := strings.Join(args[1:], " ")
			g, ok := catalog.Find(catalog.Load(opts), query)
			if !ok {
				fail(fmt.Errorf("no installed game matches %q", query))
			}
			initial = &g
		default:
			flag.Usage()
			os.Exit(1)
		}
	}

	// TUI mode needs tmux
	if os.Getenv("TMUX") == "" {
		fail(fmt.Errorf("must be run inside a tmux session"))
	}
	if _, err := exec.LookPath("tmux"); err != nil {
		fail(fmt.Errorf("tmux not found in PATH"))
	}

	closer, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fail(err)
	}
	defer closer.Close()

	if err := run(cfg, opts, initial); err != nil {
		logrus.WithError(err).Error("Launcher exited with error")
		closer.Close()
		fail(err)
	}
}

func run(cfg *config.Config, opts catalog.Options, initial *model.Game) error {
	client := tmux.Client{}
	hostPane := os.Getenv("TMUX_PANE")
	windowID, err := client.WindowID(hostPane)
	if err != nil {
		return err
	}
	slotID, err := tmux.WindowNumber(windowID)
	if err != nil {
		return fmt.Errorf("unexpected window id %q: %w", windowID, err)
	}

	persistedState, err := state.Load()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	games := catalog.Load(opts)
	logrus.WithFields(logrus.Fields{
		"games":  len(games),
		"pane":   hostPane,
		"window": windowID,
	}).Info("Starting launcher")

	slot := socket.New(client, socket.Options{
		Host:  hostPane,
		ID:    slotID,
		Split: cfg.SplitOptions(),
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go slot.Watch(ctx)

	app := ui.NewApp(games, persistedState, slot, icon.NewResolver(opts.DataDirs), initial)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus())

	_, err = p.Run()
	cancel()
	slot.Close()
	return err
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "sgt-launcher: %v\n", err)
	os.Exit(1)
}
