package xdgtheme

import (
	"io"
	"math"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// SearchResult is one resolved icon file.
type SearchResult struct {
	// Full path of the icon file.
	Path string

	// Subdirectory the file was found under. Zero for flat fallback hits.
	Subdir Subdir

	// Theme the file belongs to. Nil for flat fallback hits.
	Theme *Theme
}

// Found reports whether the result carries a path.
func (r SearchResult) Found() bool { return r.Path != "" }

// Engine performs best-match icon lookup across themes and search
// directories. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	// SearchDirs are the icon base directories, most preferred first.
	SearchDirs []string

	// Extensions probed for each candidate, in preference order,
	// without the leading dot.
	Extensions []string

	// Scale a subdirectory must declare to participate in lookup.
	// Zero means 1.
	Scale uint

	// NoFallback disables the flat, non-themed probe of SearchDirs that
	// otherwise runs when the themed search comes up empty.
	NoFallback bool

	// FileExists is the existence probe for candidate files within a
	// base directory. Nil means a plain stat. IconLookup wires a cached
	// prober here.
	FileExists func(baseDir, path string) bool

	// Logger receives Debug records of probe decisions.
	Logger *log.Logger
}

// NewEngine returns an Engine over the given base directories with the
// conventional png, svg, xpm extension order.
func NewEngine(searchDirs []string) *Engine {
	return &Engine{
		SearchDirs: searchDirs,
		Extensions: []string{"png", "svg", "xpm"},
		Scale:      1,
		Logger:     log.New(io.Discard),
	}
}

func (e *Engine) scale() uint {
	if e.Scale == 0 {
		return 1
	}
	return e.Scale
}

func (e *Engine) fileExists(baseDir, path string) bool {
	if e.FileExists != nil {
		return e.FileExists(baseDir, path)
	}
	return isFile(path)
}

// Lookup enumerates candidate files for iconName across themes in
// preference order. Within a theme, subdirectories passing pred are
// scanned in declared order (reverse when largestFirst), at most one hit
// per subdirectory, first base directory and extension winning. The scan
// stops at the first theme yielding any candidate: a hit in a more
// preferred theme always beats a better size fit in a less preferred one.
func (e *Engine) Lookup(iconName string, themes []*Theme, pred func(Subdir) bool, largestFirst bool) []SearchResult {
	for _, th := range themes {
		results := e.scanTheme(iconName, th, pred, largestFirst)
		if len(results) > 0 {
			return results
		}
	}
	return nil
}

// scanTheme collects candidates for one theme.
func (e *Engine) scanTheme(iconName string, th *Theme, pred func(Subdir) bool, largestFirst bool) []SearchResult {
	if th == nil || th.InternalName == "" {
		return nil
	}
	var out []SearchResult
	subdirs := th.Subdirs()
	for i := range subdirs {
		sd := subdirs[i]
		if largestFirst {
			sd = subdirs[len(subdirs)-1-i]
		}
		if sd.Scale != e.scale() {
			continue
		}
		if pred != nil && !pred(sd) {
			continue
		}
		if res, ok := e.probeSubdir(iconName, th, sd); ok {
			out = append(out, res)
		}
	}
	return out
}

// probeSubdir looks for iconName under one subdirectory of a theme across
// all base directories, consulting the theme's cache before touching the
// filesystem whenever the cache was built for the base directory at hand.
func (e *Engine) probeSubdir(iconName string, th *Theme, sd Subdir) (SearchResult, bool) {
	for _, base := range e.SearchDirs {
		themeDir := filepath.Join(base, th.InternalName)
		if !isDir(themeDir) {
			continue
		}
		if c := th.Cache(); c != nil && filepath.Dir(c.Path()) == themeDir {
			if !c.ContainsIconInDirectory(iconName, sd.Name) {
				continue
			}
		}
		for _, ext := range e.Extensions {
			p := filepath.Join(themeDir, sd.Name, iconName+"."+ext)
			if e.fileExists(base, p) {
				return SearchResult{Path: p, Subdir: sd, Theme: th}, true
			}
		}
	}
	return SearchResult{}, false
}

// FindClosest returns the icon whose subdirectory size range is nearest to
// size, honoring the theme cutoff of Lookup: the first theme containing
// the icon at all supplies the answer, even when a later theme would fit
// the size better. A perfect fit short-circuits the remaining
// subdirectories. With no themed hit and fallback enabled, SearchDirs are
// probed flat. A zero result means the icon does not exist anywhere.
func (e *Engine) FindClosest(iconName string, size uint, themes []*Theme) SearchResult {
	var best SearchResult
	bestDist := uint(math.MaxUint)

	for _, th := range themes {
		if th == nil || th.InternalName == "" {
			continue
		}
		found := false
		for _, sd := range th.Subdirs() {
			if sd.Scale != e.scale() {
				continue
			}
			dist := sd.SizeDistance(size)
			if dist >= bestDist {
				continue
			}
			res, ok := e.probeSubdir(iconName, th, sd)
			if !ok {
				continue
			}
			found = true
			best, bestDist = res, dist
			if dist == 0 {
				return best
			}
		}
		if found {
			return best
		}
	}

	if best.Found() || e.NoFallback {
		return best
	}
	if e.Logger != nil {
		e.Logger.Debug("no themed match, probing base dirs", "icon", iconName)
	}
	return e.FallbackIcon(iconName)
}

// FindLargest returns the biggest rendition of the icon within the first
// theme that has one, scanning subdirectories in reverse declared order
// and keeping the first hit of every new maximum nominal size.
func (e *Engine) FindLargest(iconName string, themes []*Theme) SearchResult {
	var best SearchResult
	var bestSize uint

	for _, th := range themes {
		if th == nil || th.InternalName == "" {
			continue
		}
		found := false
		subdirs := th.Subdirs()
		for i := len(subdirs) - 1; i >= 0; i-- {
			sd := subdirs[i]
			if sd.Scale != e.scale() {
				continue
			}
			if found && sd.Size <= bestSize {
				continue
			}
			res, ok := e.probeSubdir(iconName, th, sd)
			if !ok {
				continue
			}
			found = true
			best, bestSize = res, sd.Size
		}
		if found {
			return best
		}
	}

	if best.Found() || e.NoFallback {
		return best
	}
	return e.FallbackIcon(iconName)
}

// FallbackIcon probes the base directories themselves for a bare
// <name>.<ext> file, the last resort for unthemed icons such as pixmaps.
func (e *Engine) FallbackIcon(iconName string) SearchResult {
	for _, base := range e.SearchDirs {
		for _, ext := range e.Extensions {
			p := filepath.Join(base, iconName+"."+ext)
			if e.fileExists(base, p) {
				return SearchResult{Path: p}
			}
		}
	}
	return SearchResult{}
}
