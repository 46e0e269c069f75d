package xdgtheme

import "gopkg.in/ini.v1"

// SubdirType is the size-matching policy of a theme subdirectory.
//
// If the Type key is missing or unrecognized, the default is Threshold,
// as required by the icon theme specification.
type SubdirType int

const (
	SubdirThreshold SubdirType = iota
	SubdirFixed
	SubdirScalable
)

func (t SubdirType) String() string {
	switch t {
	case SubdirFixed:
		return "Fixed"
	case SubdirScalable:
		return "Scalable"
	default:
		return "Threshold"
	}
}

// ParseSubdirType maps a Type key value to a SubdirType. Unrecognized
// values fall back to Threshold rather than failing.
func ParseSubdirType(s string) SubdirType {
	switch s {
	case "Fixed":
		return SubdirFixed
	case "Scalable":
		return SubdirScalable
	default:
		return SubdirThreshold
	}
}

// Subdir describes the size-matching rules of one theme subdirectory,
// e.g. "32x32/places". Values come straight from untrusted theme files:
// MinSize <= Size <= MaxSize is NOT guaranteed to hold.
type Subdir struct {
	// Relative path of the subdirectory, also its group name in index.theme.
	Name string

	// Nominal (unscaled) size of the icons in this directory.
	Size uint

	// Minimum and maximum sizes the icons can be scaled to.
	// Both default to Size when absent or zero.
	MinSize uint
	MaxSize uint

	// Allowed deviation from Size for Threshold directories.
	// Defaults to 2 when absent or zero.
	Threshold uint

	// Target scale of the icons in this directory. Defaults to 1.
	Scale uint

	// Size-matching policy. Defaults to Threshold.
	Type SubdirType

	// Free-form usage category, e.g. "Places" or "Actions".
	Context string
}

// NewSubdir builds a Subdir from explicit parameters. No defaulting is
// applied; callers provide exactly the values they want.
func NewSubdir(name string, typ SubdirType, size, minSize, maxSize, threshold uint, context string) Subdir {
	return Subdir{
		Name:      name,
		Size:      size,
		MinSize:   minSize,
		MaxSize:   maxSize,
		Threshold: threshold,
		Scale:     1,
		Type:      typ,
		Context:   context,
	}
}

// subdirFromSection builds a Subdir from an index.theme group. Parsing is
// deliberately tolerant: malformed or missing numeric values silently take
// their documented defaults, matching the specification's permissiveness
// toward broken theme files in the wild.
func subdirFromSection(name string, sec *ini.Section) Subdir {
	sd := Subdir{Name: name}
	sd.Size = sec.Key("Size").MustUint(0)
	sd.MinSize = sec.Key("MinSize").MustUint(0)
	if sd.MinSize == 0 {
		sd.MinSize = sd.Size
	}
	sd.MaxSize = sec.Key("MaxSize").MustUint(0)
	if sd.MaxSize == 0 {
		sd.MaxSize = sd.Size
	}
	sd.Threshold = sec.Key("Threshold").MustUint(0)
	if sd.Threshold == 0 {
		sd.Threshold = 2
	}
	sd.Scale = sec.Key("Scale").MustUint(0)
	if sd.Scale == 0 {
		sd.Scale = 1
	}
	sd.Type = ParseSubdirType(sec.Key("Type").MustString("Threshold"))
	sd.Context = sec.Key("Context").String()
	return sd
}

// SizeDistance is the numeric closeness between size and the range this
// directory supports. Zero means a perfect fit. All arithmetic saturates at
// zero; the result never wraps.
func (d Subdir) SizeDistance(size uint) uint {
	switch d.Type {
	case SubdirFixed:
		if d.Size > size {
			return d.Size - size
		}
		return size - d.Size
	case SubdirScalable:
		if size < d.MinSize {
			return d.MinSize - size
		}
		if size > d.MaxSize {
			return size - d.MaxSize
		}
		return 0
	default:
		lo := uint(0)
		if d.Size > d.Threshold {
			lo = d.Size - d.Threshold
		}
		hi := d.Size + d.Threshold
		if size < lo {
			return lo - size
		}
		if size > hi {
			return size - hi
		}
		return 0
	}
}

// MatchesSize reports whether size falls inside the directory's supported
// range: exact equality for Fixed, inclusive range checks otherwise.
func (d Subdir) MatchesSize(size uint) bool {
	switch d.Type {
	case SubdirFixed:
		return d.Size == size
	case SubdirScalable:
		return d.MinSize <= size && size <= d.MaxSize
	default:
		lo := uint(0)
		if d.Size > d.Threshold {
			lo = d.Size - d.Threshold
		}
		return lo <= size && size <= d.Size+d.Threshold
	}
}
