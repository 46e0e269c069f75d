package xdgtheme

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/ini.v1"
)

const (
	// IconThemeGroup is the mandatory first group of an index.theme file.
	IconThemeGroup = "Icon Theme"

	// ExtensionPrefix marks vendor extension groups, which carry no
	// subdirectory semantics.
	ExtensionPrefix = "X-"

	// CacheFileName is the binary cache sitting next to an index.theme.
	CacheFileName = "icon-theme.cache"

	themeIndexFile = "index.theme"
)

// LoadOptions controls how tolerant LoadTheme is toward malformed files.
// The zero value is strict; DefaultLoadOptions matches how desktop
// implementations read themes in practice.
type LoadOptions struct {
	// Keep the first occurrence when a group appears twice. Duplicate
	// groups are merged by the underlying parser either way; this keeps
	// the first value for colliding keys.
	IgnoreDuplicateGroups bool

	// Keep the first occurrence of a duplicated key within a group.
	IgnoreDuplicateKeys bool

	// Skip lines that are neither a group header nor Key=Value.
	IgnoreInvalidKeys bool

	// Accept group names that are neither "Icon Theme", a relative
	// subdirectory path, nor an extension group.
	TolerateUnknownGroups bool

	// Drop such groups instead of rejecting the file. Implies tolerance.
	SkipUnknownGroups bool

	// Drop "X-" extension groups instead of carrying them.
	SkipExtensionGroups bool

	// Retain comment text attached to groups and keys.
	PreserveComments bool
}

// DefaultLoadOptions is what LoadTheme uses.
var DefaultLoadOptions = LoadOptions{
	IgnoreDuplicateGroups: true,
	IgnoreDuplicateKeys:   true,
	IgnoreInvalidKeys:     true,
	SkipUnknownGroups:     true,
	PreserveComments:      true,
}

func (o LoadOptions) iniOptions() ini.LoadOptions {
	return ini.LoadOptions{
		SkipUnrecognizableLines: o.IgnoreInvalidKeys,
		AllowShadows:            o.IgnoreDuplicateKeys,
	}
}

// Theme is the parsed descriptor of one icon theme, built from its
// index.theme file.
type Theme struct {
	// Human-facing display name from the Name key, unescaped.
	Name string

	// Human-facing description from the Comment key, unescaped.
	Comment string

	// Name of an icon that should illustrate this theme.
	Example string

	// Whether the theme should be hidden from theme selectors.
	Hidden bool

	// Base name of the directory the index.theme was loaded from. This,
	// not Name, is the identity used for inheritance deduplication and
	// for building lookup paths. Empty for synthetic descriptors.
	InternalName string

	// Subdirectory names from the Directories key, in declared order,
	// duplicates preserved.
	Directories []string

	// Additional subdirectories for scale-aware implementations.
	ScaledDirectories []string

	// Parent theme names from the Inherits key, in declared order.
	Inherits []string

	path       string
	subdirs    []Subdir
	locales    []string
	localNames map[string]string
	cache      *CacheIndex
}

// LoadTheme parses an index.theme file with DefaultLoadOptions.
func LoadTheme(path string) (*Theme, error) {
	return LoadThemeWithOptions(path, DefaultLoadOptions)
}

// LoadThemeWithOptions parses an index.theme file. The first group must be
// "Icon Theme"; its absence is fatal. Subdirectory groups referenced by the
// Directories keys become Subdirs; referenced directories without a group
// are silently skipped.
func LoadThemeWithOptions(path string, opts LoadOptions) (*Theme, error) {
	f, err := ini.LoadSources(opts.iniOptions(), path)
	if err != nil {
		return nil, &ThemeParseError{Path: path, Reason: "cannot read theme file", Err: err}
	}
	return themeFromFile(path, f, opts)
}

func themeFromFile(path string, f *ini.File, opts LoadOptions) (*Theme, error) {
	groups := themeGroups(f)
	if len(groups) == 0 || groups[0] != IconThemeGroup {
		return nil, &ThemeParseError{Path: path, Reason: "first group", Err: ErrMissingIconThemeGroup}
	}

	main := f.Section(IconThemeGroup)
	th := &Theme{
		Name:              unescapeValue(main.Key("Name").String()),
		Comment:           unescapeValue(main.Key("Comment").String()),
		Example:           main.Key("Example").String(),
		Hidden:            main.Key("Hidden").MustBool(false),
		Directories:       SplitList(main.Key("Directories").String()),
		ScaledDirectories: SplitList(main.Key("ScaledDirectories").String()),
		Inherits:          SplitList(main.Key("Inherits").String()),
		InternalName:      filepath.Base(filepath.Dir(path)),
		path:              path,
	}

	for _, k := range main.Keys() {
		name := k.Name()
		if !strings.HasPrefix(name, "Name[") || !strings.HasSuffix(name, "]") {
			continue
		}
		lc := name[len("Name[") : len(name)-1]
		if lc == "" {
			continue
		}
		if th.localNames == nil {
			th.localNames = make(map[string]string)
		}
		if _, dup := th.localNames[lc]; !dup {
			th.locales = append(th.locales, lc)
		}
		th.localNames[lc] = unescapeValue(k.String())
	}

	sections := make(map[string]*ini.Section, len(groups))
	for _, g := range groups[1:] {
		sections[g] = f.Section(g)
	}
	for _, dir := range append(th.Directories, th.ScaledDirectories...) {
		sec, ok := sections[dir]
		if !ok {
			continue
		}
		th.subdirs = append(th.subdirs, subdirFromSection(dir, sec))
	}

	for _, g := range groups[1:] {
		switch {
		case listed(th, g):
		case strings.HasPrefix(g, ExtensionPrefix):
			// extension group; SkipExtensionGroups only affects whether
			// its text is retained, never validity
		case isSubdirGroup(g):
			// a subdirectory definition not listed in Directories;
			// invisible to search but not an error
		case opts.TolerateUnknownGroups || opts.SkipUnknownGroups:
		default:
			return nil, &ThemeParseError{Path: path, Reason: fmt.Sprintf("unknown group %q", g)}
		}
	}

	return th, nil
}

// themeGroups returns the non-default group names in file order.
func themeGroups(f *ini.File) []string {
	var out []string
	for _, name := range f.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		out = append(out, name)
	}
	return out
}

func listed(th *Theme, name string) bool {
	for _, d := range th.Directories {
		if d == name {
			return true
		}
	}
	for _, d := range th.ScaledDirectories {
		if d == name {
			return true
		}
	}
	return false
}

// isSubdirGroup reports whether a group name is a plausible relative
// subdirectory path.
func isSubdirGroup(name string) bool {
	return name != "" && !strings.Contains(name, "\\") && filepath.IsLocal(name)
}

// Path returns the index.theme file this descriptor was loaded from, or ""
// for synthetic descriptors.
func (t *Theme) Path() string { return t.path }

// CachePath returns the icon-theme.cache sibling of the theme file, or ""
// when the descriptor has no file path.
func (t *Theme) CachePath() string {
	if t.path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(t.path), CacheFileName)
}

// Subdirs returns one Subdir per entry of Directories and
// ScaledDirectories that had a matching group, in declared order.
func (t *Theme) Subdirs() []Subdir { return t.subdirs }

// Subdir returns the descriptor for a named subdirectory.
func (t *Theme) Subdir(name string) (Subdir, bool) {
	for _, sd := range t.subdirs {
		if sd.Name == name {
			return sd, true
		}
	}
	return Subdir{}, false
}

// SetCache attaches a loaded cache index to the theme, replacing any
// previous one.
func (t *Theme) SetCache(c *CacheIndex) { t.cache = c }

// Cache returns the attached cache index, or nil.
func (t *Theme) Cache() *CacheIndex { return t.cache }

// ClearCache detaches the cache index without closing it.
func (t *Theme) ClearCache() { t.cache = nil }

// LocalizedName returns the display name best matching the preferred
// locales, falling back to the unlocalized Name. Matching uses BCP 47
// language matching, so "de_DE.UTF-8" style locales from the environment
// work after the usual normalization.
func (t *Theme) LocalizedName(preferred ...string) string {
	if len(t.locales) == 0 || len(preferred) == 0 {
		return t.Name
	}
	var avail []language.Tag
	var availLocales []string
	for _, lc := range t.locales {
		tag, err := language.Parse(normalizeLocale(lc))
		if err != nil {
			continue
		}
		avail = append(avail, tag)
		availLocales = append(availLocales, lc)
	}
	if len(avail) == 0 {
		return t.Name
	}
	var want []language.Tag
	for _, lc := range preferred {
		if tag, err := language.Parse(normalizeLocale(lc)); err == nil {
			want = append(want, tag)
		}
	}
	if len(want) == 0 {
		return t.Name
	}
	_, idx, conf := language.NewMatcher(avail).Match(want...)
	if conf == language.No {
		return t.Name
	}
	return t.localNames[availLocales[idx]]
}

func normalizeLocale(lc string) string {
	if i := strings.IndexAny(lc, ".@"); i >= 0 {
		lc = lc[:i]
	}
	return strings.ReplaceAll(lc, "_", "-")
}
