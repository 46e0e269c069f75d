package xdgtheme

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FallbackThemeName is the generic base theme every inheritance chain ends
// in when nothing else names it.
const FallbackThemeName = "hicolor"

// Resolver loads themes by name from a set of search directories and
// flattens inheritance chains into search preference order.
type Resolver struct {
	// SearchDirs are probed in order; the first directory containing
	// <name>/index.theme wins.
	SearchDirs []string

	// Fallback is appended to every resolved chain when not already
	// present. Empty disables the fallback.
	Fallback string

	// Options used when parsing theme files.
	Options LoadOptions

	// Logger receives Debug records for skipped themes and caches.
	Logger *log.Logger
}

// NewResolver returns a Resolver over the given search directories with
// the hicolor fallback and a discarding logger.
func NewResolver(searchDirs []string) *Resolver {
	return &Resolver{
		SearchDirs: searchDirs,
		Fallback:   FallbackThemeName,
		Options:    DefaultLoadOptions,
		Logger:     log.New(io.Discard),
	}
}

// LoadTheme loads the named theme from the first search directory that has
// an index.theme for it, and attaches the sibling icon-theme.cache when one
// exists and is current. A cache that fails to load never fails the theme.
func (r *Resolver) LoadTheme(name string) (*Theme, error) {
	for _, dir := range r.SearchDirs {
		indexPath := filepath.Join(dir, name, themeIndexFile)
		if !isFile(indexPath) {
			continue
		}
		th, err := LoadThemeWithOptions(indexPath, r.Options)
		if err != nil {
			return nil, err
		}
		r.attachCache(th)
		return th, nil
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

func (r *Resolver) attachCache(th *Theme) {
	cp := th.CachePath()
	if cp == "" || !isFile(cp) {
		return
	}
	if CacheOutdated(cp) {
		r.Logger.Debug("ignoring stale icon cache", "path", cp)
		return
	}
	c, err := OpenCache(cp)
	if err != nil {
		r.Logger.Debug("ignoring unreadable icon cache", "path", cp, "err", err)
		return
	}
	th.SetCache(c)
}

// Resolve flattens theme and its ancestors into search preference order:
// theme first, then its parents depth-first in declaration order, then the
// fallback theme when absent. Themes are deduplicated by internal name, so
// cyclic and diamond inheritance terminate instead of looping. Parents
// that fail to load are skipped silently.
func (r *Resolver) Resolve(theme *Theme) []*Theme {
	var out []*Theme
	seen := make(map[string]bool)

	stack := []*Theme{theme}
	for len(stack) > 0 {
		th := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if th == nil || th.InternalName == "" || seen[th.InternalName] {
			continue
		}
		seen[th.InternalName] = true
		out = append(out, th)

		// push parents in reverse so they pop in declaration order
		parents := th.Inherits
		for i := len(parents) - 1; i >= 0; i-- {
			name := parents[i]
			if seen[name] {
				continue
			}
			parent, err := r.LoadTheme(name)
			if err != nil {
				r.Logger.Debug("skipping inherited theme", "name", name, "err", err)
				continue
			}
			stack = append(stack, parent)
		}
	}

	if r.Fallback != "" && !seen[r.Fallback] {
		if fb, err := r.LoadTheme(r.Fallback); err == nil {
			out = append(out, fb)
		} else {
			r.Logger.Debug("fallback theme unavailable", "name", r.Fallback, "err", err)
		}
	}

	return out
}

// ResolveName loads the named theme and resolves its chain. When the theme
// itself cannot be loaded the chain degrades to just the fallback.
func (r *Resolver) ResolveName(name string) []*Theme {
	th, err := r.LoadTheme(name)
	if err != nil {
		r.Logger.Debug("theme unavailable", "name", name, "err", err)
		return r.Resolve(nil)
	}
	return r.Resolve(th)
}
