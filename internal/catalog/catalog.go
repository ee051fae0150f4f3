// Package catalog discovers the installed puzzle games from their desktop
// files.
package catalog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gxespino/sgt-launcher/internal/model"
	"github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"
)

// DefaultGames lists the puzzles of Simon Tatham's collection.
var DefaultGames = []string{
	"blackbox", "bridges", "cube", "dominosa", "fifteen", "filling",
	"flip", "galaxies", "guess", "inertia", "keen", "lightup",
	"loopy", "magnets", "map", "mines", "net", "netslide",
	"pattern", "pearl", "pegs", "range", "rect", "samegame",
	"signpost", "singles", "sixteen", "slant", "solo", "tents",
	"towers", "twiddle", "undead", "unequal", "unruly", "untangle",
}

// DefaultPrefixes are the desktop file prefixes distributions install the
// games under, in lookup order.
var DefaultPrefixes = []string{"sgt", "puzzle"}

// Options select which desktop files make up the catalog.
type Options struct {
	Games    []string
	Prefixes []string
	DataDirs []string // searched in order, see DataDirs
	Locale   string
}

// DataDirs returns $XDG_DATA_HOME followed by $XDG_DATA_DIRS, with the XDG
// defaults for unset variables.
func DataDirs() []string {
	home := os.Getenv("XDG_DATA_HOME")
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			home = filepath.Join(h, ".local", "share")
		}
	}
	dirs := os.Getenv("XDG_DATA_DIRS")
	if dirs == "" {
		dirs = "/usr/local/share:/usr/share"
	}

	var out []string
	if home != "" {
		out = append(out, home)
	}
	for _, d := range filepath.SplitList(dirs) {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// Load returns the installed games sorted by name. For each game the first
// prefix with a readable desktop file in any data dir wins; games with none
// are skipped.
func Load(opts Options) []model.Game {
	games := opts.Games
	if len(games) == 0 {
		games = DefaultGames
	}
	prefixes := opts.Prefixes
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	dirs := opts.DataDirs
	if len(dirs) == 0 {
		dirs = DataDirs()
	}

	var out []model.Game
	for _, id := range games {
		for _, prefix := range prefixes {
			entry := find(dirs, prefix+"-"+id+".desktop")
			if entry == nil {
				continue
			}
			out = append(out, model.Game{
				ID:      id,
				Name:    entry.Localized("Name", opts.Locale),
				Comment: entry.Localized("Comment", opts.Locale),
				Icon:    entry["Icon"],
				Exec:    StripFieldCodes(entry["Exec"]),
			})
			break
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	logrus.WithField("games", len(out)).Debug("Catalog loaded")
	return out
}

// find loads applications/<name> from the first data dir holding a readable
// copy. Unreadable copies are skipped. A nil entry means no dir has one.
func find(dirs []string, name string) Entry {
	for _, dir := range dirs {
		path := filepath.Join(dir, "applications", name)
		entry, err := LoadDesktopEntry(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			logrus.WithError(err).WithField("path", path).Warn("Skipping unreadable desktop file")
			continue
		}
		return entry
	}
	return nil
}

type gameSource []model.Game

func (s gameSource) String(i int) string { return s[i].Name }
func (s gameSource) Len() int            { return len(s) }

// Find returns the game best matching query: an exact id or name match
// (ignoring case) first, otherwise the best fuzzy match on the name.
func Find(games []model.Game, query string) (model.Game, bool) {
	for _, g := range games {
		if strings.EqualFold(g.ID, query) || strings.EqualFold(g.Name, query) {
			return g, true
		}
	}
	matches := fuzzy.FindFrom(query, gameSource(games))
	if len(matches) == 0 {
		return model.Game{}, false
	}
	return games[matches[0].Index], true
}
