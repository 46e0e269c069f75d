package xdgtheme

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// IconLookup is the convenience facade over Resolver and Engine: it
// resolves a theme's inheritance chain once, keeps it cached, and answers
// repeated icon queries through a stat-avoiding directory cache.
type IconLookup struct {
	theme    string
	resolver *Resolver
	engine   *Engine
	dirs     *dirCache

	mu     sync.Mutex
	chain  []*Theme
	logger *log.Logger
}

// Option configures an IconLookup.
type Option func(*IconLookup)

// WithSearchDirs overrides the XDG base directories.
func WithSearchDirs(dirs []string) Option {
	return func(il *IconLookup) {
		il.resolver.SearchDirs = dirs
		il.engine.SearchDirs = dirs
	}
}

// WithExtensions overrides the probed file extensions.
func WithExtensions(exts []string) Option {
	return func(il *IconLookup) { il.engine.Extensions = exts }
}

// WithScale selects which subdirectory scale participates in lookup.
func WithScale(scale uint) Option {
	return func(il *IconLookup) { il.engine.Scale = scale }
}

// WithLogger routes Debug records from the resolver and engine.
func WithLogger(logger *log.Logger) Option {
	return func(il *IconLookup) {
		il.logger = logger
		il.resolver.Logger = logger
		il.engine.Logger = logger
	}
}

// NewIconLookup builds a lookup for the named theme over the XDG base
// directories.
func NewIconLookup(theme string, opts ...Option) *IconLookup {
	dirs := BaseDirs()
	il := &IconLookup{
		theme:    theme,
		resolver: NewResolver(dirs),
		engine:   NewEngine(dirs),
		dirs:     newDirCache(5 * time.Second),
		logger:   log.New(io.Discard),
	}
	il.engine.FileExists = il.dirs.fileExists
	for _, opt := range opts {
		opt(il)
	}
	return il
}

// Theme returns the theme name this lookup resolves against.
func (il *IconLookup) Theme() string { return il.theme }

// Themes returns the resolved inheritance chain, resolving it on first
// use.
func (il *IconLookup) Themes() []*Theme {
	il.mu.Lock()
	defer il.mu.Unlock()
	if il.chain == nil {
		il.chain = il.resolver.ResolveName(il.theme)
	}
	return il.chain
}

// Refresh drops the resolved chain so the next query re-reads theme files
// and caches.
func (il *IconLookup) Refresh() {
	il.mu.Lock()
	il.chain = nil
	il.mu.Unlock()
}

// FindIcon resolves iconName to the file best matching size.
func (il *IconLookup) FindIcon(iconName string, size uint) (SearchResult, error) {
	res := il.engine.FindClosest(iconName, size, il.Themes())
	if !res.Found() {
		return SearchResult{}, fmt.Errorf("icon %q not found", iconName)
	}
	return res, nil
}

// FindLargestIcon resolves iconName to its biggest available rendition.
func (il *IconLookup) FindLargestIcon(iconName string) (SearchResult, error) {
	res := il.engine.FindLargest(iconName, il.Themes())
	if !res.Found() {
		return SearchResult{}, fmt.Errorf("icon %q not found", iconName)
	}
	return res, nil
}

// FindBestIcon returns the first name in iconList that resolves at the
// requested size, searched in listing order.
func (il *IconLookup) FindBestIcon(iconList []string, size uint) (SearchResult, error) {
	for _, name := range iconList {
		if res, err := il.FindIcon(name, size); err == nil {
			return res, nil
		}
	}
	return SearchResult{}, fmt.Errorf("no icon of %v found", iconList)
}
