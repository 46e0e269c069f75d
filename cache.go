package xdgtheme

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"unsafe"
)

// Binary layout of an icon-theme.cache file, as written by
// gtk-update-icon-cache. All multi-byte fields are big-endian.
//
//	0	u16	major version (must be 1)
//	2	u16	minor version (must be 0)
//	4	u32	hash table offset
//	8	u32	directory list offset
//
// Hash table: u32 bucket count, then bucketCount u32 icon record offsets,
// 0xFFFFFFFF marking an empty bucket. Directory list: u32 count, then count
// u32 offsets of NUL-terminated subdirectory names. Icon record: u32 chain
// offset (0xFFFFFFFF ends the chain), u32 name offset, u32 image list
// offset. Image list: u32 count, then count entries of u16 directory index,
// u16 flags, u32 data offset.
const (
	cacheMajorVersion = 1
	cacheMinorVersion = 0

	cacheHeaderLen = 12
	iconRecordLen  = 12
	imageEntryLen  = 8

	noOffset = 0xFFFFFFFF
)

// Image entry flag bits, recording which files exist for an icon in a
// directory.
const (
	IconFlagXPM         uint16 = 1 << 0
	IconFlagSVG         uint16 = 1 << 1
	IconFlagPNG         uint16 = 1 << 2
	IconFlagHasIconFile uint16 = 1 << 3
)

// CacheIndex is a decoded icon-theme.cache file. It exclusively owns its
// backing byte buffer; every string it returns is a zero-copy view into
// that buffer and is valid only until Close. The structure is immutable
// after Open and safe for concurrent readers.
type CacheIndex struct {
	buf     []byte
	path    string
	mmapped bool

	hashOff  uint32
	dirOff   uint32
	nBuckets uint32
	nDirs    uint32
}

// OpenCache maps (or, on platforms without mmap support, reads) a cache
// file and fully validates its structure. Either a complete, queryable
// index is returned or a *CacheFormatError; no partial index ever escapes.
func OpenCache(path string) (*CacheIndex, error) {
	buf, mmapped, err := mapFile(path)
	if err != nil {
		return nil, err
	}
	c, err := parseCache(buf, path)
	if err != nil {
		if mmapped {
			unmapFile(buf)
		}
		return nil, err
	}
	c.mmapped = mmapped
	return c, nil
}

// ParseCache decodes a cache from an in-memory buffer. The returned index
// takes ownership of data; the caller must not mutate it afterwards.
func ParseCache(data []byte) (*CacheIndex, error) {
	return parseCache(data, "")
}

func parseCache(buf []byte, path string) (*CacheIndex, error) {
	c := &CacheIndex{buf: buf, path: path}
	fail := func(context string) (*CacheIndex, error) {
		return nil, &CacheFormatError{Path: path, Context: context}
	}

	if len(buf) < cacheHeaderLen {
		return fail("header")
	}
	if binary.BigEndian.Uint16(buf[0:2]) != cacheMajorVersion {
		return fail("major version")
	}
	if binary.BigEndian.Uint16(buf[2:4]) != cacheMinorVersion {
		return fail("minor version")
	}
	c.hashOff = binary.BigEndian.Uint32(buf[4:8])
	c.dirOff = binary.BigEndian.Uint32(buf[8:12])

	// Directory table first: icon records index into it.
	n, ok := c.u32(c.dirOff)
	if !ok {
		return fail("directory count")
	}
	c.nDirs = n
	if !c.spans(c.dirOff, 4+4*uint64(c.nDirs)) {
		return fail("directory list")
	}
	for i := uint32(0); i < c.nDirs; i++ {
		strOff := binary.BigEndian.Uint32(c.buf[c.dirOff+4+4*i:])
		if _, err := c.stringAt(strOff, "directory name"); err != nil {
			return nil, err
		}
	}

	n, ok = c.u32(c.hashOff)
	if !ok || n == 0 {
		return fail("bucket count")
	}
	c.nBuckets = n
	if !c.spans(c.hashOff, 4+4*uint64(c.nBuckets)) {
		return fail("hash table")
	}

	// A chain can hold at most one record per 12 bytes of file; anything
	// longer is a cycle.
	maxChain := uint32(len(buf) / iconRecordLen)
	for b := uint32(0); b < c.nBuckets; b++ {
		off := binary.BigEndian.Uint32(buf[c.hashOff+4+4*b:])
		steps := uint32(0)
		for off != noOffset {
			if steps++; steps > maxChain {
				return fail("icon record chain")
			}
			next, err := c.validateRecord(off)
			if err != nil {
				return nil, err
			}
			off = next
		}
	}

	return c, nil
}

// validateRecord checks one icon record and its image list, returning the
// chain offset of the next record.
func (c *CacheIndex) validateRecord(off uint32) (uint32, error) {
	fail := func(context string) (uint32, error) {
		return 0, &CacheFormatError{Path: c.path, Context: context}
	}

	if !c.spans(off, iconRecordLen) {
		return fail("icon record")
	}
	chain := binary.BigEndian.Uint32(c.buf[off:])
	nameOff := binary.BigEndian.Uint32(c.buf[off+4:])
	if _, err := c.stringAt(nameOff, "icon name"); err != nil {
		return 0, err
	}

	imgOff := binary.BigEndian.Uint32(c.buf[off+8:])
	nImages, ok := c.u32(imgOff)
	if !ok {
		return fail("image list")
	}
	if !c.spans(imgOff, 4+uint64(imageEntryLen)*uint64(nImages)) {
		return fail("image list")
	}
	for i := uint32(0); i < nImages; i++ {
		entry := imgOff + 4 + uint32(imageEntryLen)*i
		dirIdx := binary.BigEndian.Uint16(c.buf[entry:])
		if uint32(dirIdx) >= c.nDirs {
			return fail("image list directory index")
		}
	}

	return chain, nil
}

// spans reports whether n bytes starting at off lie inside the buffer,
// immune to 32-bit offset wraparound.
func (c *CacheIndex) spans(off uint32, n uint64) bool {
	return uint64(off)+n <= uint64(len(c.buf))
}

// u32 reads a big-endian uint32, reporting whether the read stays inside
// the buffer.
func (c *CacheIndex) u32(off uint32) (uint32, bool) {
	end := uint64(off) + 4
	if end > uint64(len(c.buf)) {
		return 0, false
	}
	return binary.BigEndian.Uint32(c.buf[off:end]), true
}

// stringAt returns the NUL-terminated string starting at off as a
// zero-copy view into the buffer. A read past the buffer end or a missing
// terminator is a fatal format error labelled with context.
func (c *CacheIndex) stringAt(off uint32, context string) (string, error) {
	if uint64(off) >= uint64(len(c.buf)) {
		return "", &CacheFormatError{Path: c.path, Context: context}
	}
	rest := c.buf[off:]
	end := bytes.IndexByte(rest, 0)
	if end < 0 {
		return "", &CacheFormatError{Path: c.path, Context: context}
	}
	if end == 0 {
		return "", nil
	}
	return unsafe.String(&rest[0], end), nil
}

// IconNameHash is the hash gtk-update-icon-cache buckets icon names with:
// the empty name hashes to 0, otherwise the first byte seeds h and each
// following byte b updates it as h = h*31 + b with unsigned 32-bit
// wraparound. The recurrence is part of the on-disk contract and must not
// change.
func IconNameHash(name string) uint32 {
	if name == "" {
		return 0
	}
	h := uint32(name[0])
	for i := 1; i < len(name); i++ {
		h = (h << 5) - h + uint32(name[i])
	}
	return h
}

// Path returns the file this index was opened from, or "" when parsed from
// memory.
func (c *CacheIndex) Path() string { return c.path }

// Close releases the backing buffer. Strings previously returned by the
// index must not be used afterwards.
func (c *CacheIndex) Close() error {
	buf := c.buf
	c.buf = nil
	if c.mmapped && buf != nil {
		return unmapFile(buf)
	}
	return nil
}

// Directories returns all subdirectory names in file order, as views into
// the cache buffer.
func (c *CacheIndex) Directories() []string {
	out := make([]string, 0, c.nDirs)
	for i := uint32(0); i < c.nDirs; i++ {
		out = append(out, c.directoryName(i))
	}
	return out
}

// directoryName resolves a validated directory index.
func (c *CacheIndex) directoryName(i uint32) string {
	strOff := binary.BigEndian.Uint32(c.buf[c.dirOff+4+4*i:])
	s, _ := c.stringAt(strOff, "directory name")
	return s
}

// lookupRecord returns the offset of the record for name, or noOffset.
func (c *CacheIndex) lookupRecord(name string) uint32 {
	off := binary.BigEndian.Uint32(c.buf[c.hashOff+4+4*(IconNameHash(name)%c.nBuckets):])
	for off != noOffset {
		nameOff := binary.BigEndian.Uint32(c.buf[off+4:])
		stored, _ := c.stringAt(nameOff, "icon name")
		if stored == name {
			return off
		}
		off = binary.BigEndian.Uint32(c.buf[off:])
	}
	return noOffset
}

// ContainsIcon reports whether the cache lists an icon under name in any
// directory.
func (c *CacheIndex) ContainsIcon(name string) bool {
	return c.lookupRecord(name) != noOffset
}

// ContainsIconInDirectory reports whether the cache lists name inside the
// given theme subdirectory.
func (c *CacheIndex) ContainsIconInDirectory(name, directory string) bool {
	off := c.lookupRecord(name)
	if off == noOffset {
		return false
	}
	imgOff := binary.BigEndian.Uint32(c.buf[off+8:])
	nImages := binary.BigEndian.Uint32(c.buf[imgOff:])
	for i := uint32(0); i < nImages; i++ {
		entry := imgOff + 4 + uint32(imageEntryLen)*i
		dirIdx := binary.BigEndian.Uint16(c.buf[entry:])
		if c.directoryName(uint32(dirIdx)) == directory {
			return true
		}
	}
	return false
}

// IconDirectories returns the subdirectories the cache lists name under,
// resolved through the directory table, or nil when the icon is absent.
func (c *CacheIndex) IconDirectories(name string) ([]string, error) {
	off := c.lookupRecord(name)
	if off == noOffset {
		return nil, nil
	}
	imgOff := binary.BigEndian.Uint32(c.buf[off+8:])
	nImages := binary.BigEndian.Uint32(c.buf[imgOff:])
	out := make([]string, 0, nImages)
	for i := uint32(0); i < nImages; i++ {
		entry := imgOff + 4 + uint32(imageEntryLen)*i
		dirIdx := binary.BigEndian.Uint16(c.buf[entry:])
		if uint32(dirIdx) >= c.nDirs {
			return nil, &CacheFormatError{Path: c.path, Context: "image list directory index"}
		}
		out = append(out, c.directoryName(uint32(dirIdx)))
	}
	return out, nil
}

// IconFlags returns the image flag bits for name in the given directory.
func (c *CacheIndex) IconFlags(name, directory string) (uint16, bool) {
	off := c.lookupRecord(name)
	if off == noOffset {
		return 0, false
	}
	imgOff := binary.BigEndian.Uint32(c.buf[off+8:])
	nImages := binary.BigEndian.Uint32(c.buf[imgOff:])
	for i := uint32(0); i < nImages; i++ {
		entry := imgOff + 4 + uint32(imageEntryLen)*i
		dirIdx := binary.BigEndian.Uint16(c.buf[entry:])
		if c.directoryName(uint32(dirIdx)) == directory {
			return binary.BigEndian.Uint16(c.buf[entry+2:]), true
		}
	}
	return 0, false
}

// Icons enumerates every icon name in the cache, bucket by bucket, chains
// walked in order.
func (c *CacheIndex) Icons() []string {
	var out []string
	for b := uint32(0); b < c.nBuckets; b++ {
		off := binary.BigEndian.Uint32(c.buf[c.hashOff+4+4*b:])
		for off != noOffset {
			nameOff := binary.BigEndian.Uint32(c.buf[off+4:])
			name, _ := c.stringAt(nameOff, "icon name")
			out = append(out, name)
			off = binary.BigEndian.Uint32(c.buf[off:])
		}
	}
	return out
}

// IsOutdated reports whether the containing directory has been modified
// since the cache file was written.
func (c *CacheIndex) IsOutdated() bool {
	if c.path == "" {
		return false
	}
	return CacheOutdated(c.path)
}

// CacheOutdated reports whether the cache file at path is older than its
// containing directory. An unreadable cache counts as outdated.
func CacheOutdated(path string) bool {
	st, err := os.Stat(path)
	if err != nil {
		return true
	}
	dirSt, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return true
	}
	return dirSt.ModTime().After(st.ModTime())
}
