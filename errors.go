package xdgtheme

import (
	"errors"
	"fmt"
)

// ErrMissingIconThemeGroup is returned (wrapped in a ThemeParseError) when an
// index.theme file does not start with an "[Icon Theme]" group.
var ErrMissingIconThemeGroup = errors.New(`missing "Icon Theme" group`)

// CacheFormatError reports structural corruption in an icon-theme.cache file.
// Context names the field or structure that was being read, e.g.
// "major version" or "icon name".
type CacheFormatError struct {
	Path    string
	Context string
}

func (e *CacheFormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("icon cache: invalid %s", e.Context)
	}
	return fmt.Sprintf("icon cache %s: invalid %s", e.Path, e.Context)
}

// ThemeParseError reports a fatal problem with a single index.theme file.
// A resolver walking an inheritance chain treats these as soft failures and
// skips the offending theme.
type ThemeParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ThemeParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("theme %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("theme %s: %s", e.Path, e.Reason)
}

func (e *ThemeParseError) Unwrap() error { return e.Err }
