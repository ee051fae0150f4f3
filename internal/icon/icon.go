package icon

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Icon is a resolved icon reference.
type Icon struct {
	Ref  string // as written in the desktop entry
	Path string // file on disk, empty when only the symbolic name is known
}

// IsFile reports whether the icon was resolved to a file on disk.
func (i Icon) IsFile() bool {
	return i.Path != ""
}

// Name returns the icon's bare name, without directory or extension.
func (i Icon) Name() string {
	name := i.Ref
	if name == "" {
		name = i.Path
	}
	name = filepath.Base(name)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Preferred directory sizes, best first. Matches the 48px dialog size the
// loading surface was designed around.
var sizeRank = []string{"48x48", "scalable", "64x64", "32x32", "128x128", "256x256"}

const extensions = "{png,svg,xpm}"

// Resolver maps icon references to files, either directly or via the
// installed icon themes under each data dir.
type Resolver struct {
	dataDirs []string

	mu    sync.Mutex
	cache map[string]Icon
}

// NewResolver creates a resolver searching the given XDG data dirs.
func NewResolver(dataDirs []string) *Resolver {
	return &Resolver{
		dataDirs: dataDirs,
		cache:    make(map[string]Icon),
	}
}

// Resolve turns ref into an Icon. An existing regular file is used as-is;
// anything else is looked up as a theme icon name. Unresolved names are
// returned symbolic.
func (r *Resolver) Resolve(ref string) Icon {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ic, ok := r.cache[ref]; ok {
		return ic
	}

	ic := Icon{Ref: ref}
	if info, err := os.Stat(ref); err == nil && info.Mode().IsRegular() {
		ic.Path = ref
	} else if p := r.lookup(ref); p != "" {
		ic.Path = p
	}
	r.cache[ref] = ic
	return ic
}

func (r *Resolver) lookup(name string) string {
	if name == "" || strings.ContainsAny(name, "/*?[]{}\\") {
		return ""
	}

	for _, dir := range r.dataDirs {
		themes := filepath.Join(dir, "icons")
		matches, err := doublestar.Glob(os.DirFS(themes), "*/*/apps/"+name+"."+extensions)
		if err == nil && len(matches) > 0 {
			sort.SliceStable(matches, func(i, j int) bool {
				return rank(matches[i]) < rank(matches[j])
			})
			return filepath.Join(themes, filepath.FromSlash(matches[0]))
		}

		pixmaps := filepath.Join(dir, "pixmaps")
		matches, err = doublestar.Glob(os.DirFS(pixmaps), name+"."+extensions)
		if err == nil && len(matches) > 0 {
			sort.Strings(matches)
			return filepath.Join(pixmaps, filepath.FromSlash(matches[0]))
		}
	}
	return ""
}

// rank orders theme matches: hicolor first, then by preferred size.
func rank(match string) int {
	parts := strings.Split(match, "/")
	score := len(sizeRank) + 1
	if len(parts) >= 2 {
		for i, size := range sizeRank {
			if parts[1] == size {
				score = i
				break
			}
		}
	}
	if len(parts) > 0 && parts[0] != "hicolor" {
		score += 100
	}
	if path.Ext(match) == ".xpm" {
		score += 10
	}
	return score
}
