// Package xdgtheme implements the freedesktop Icon Theme Specification:
// parsing index.theme files, resolving theme inheritance chains, decoding
// binary icon-theme.cache files, and best-size icon lookup across theme
// subdirectories.
//
// The usual entry point is IconLookup:
//
//	il := xdgtheme.NewIconLookup("Adwaita")
//	res, err := il.FindIcon("folder", 48)
//
// Resolver and Engine expose the individual stages for callers that need
// more control, and CacheIndex gives direct access to cache files.
package xdgtheme
