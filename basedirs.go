package xdgtheme

import (
	"os"
	"path/filepath"
	"strings"
)

// BaseDirs returns the icon search directories in XDG preference order:
// $HOME/.icons, $XDG_DATA_HOME/icons, every $XDG_DATA_DIRS entry's icons
// subdirectory, and finally /usr/share/pixmaps.
func BaseDirs() (baseDirs []string) {
	if home := os.Getenv("HOME"); home != "" {
		baseDirs = append(baseDirs, filepath.Join(home, ".icons"))
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home := os.Getenv("HOME"); home != "" {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		baseDirs = append(baseDirs, filepath.Join(dataHome, "icons"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range strings.Split(dataDirs, ":") {
		if dir == "" {
			continue
		}
		baseDirs = append(baseDirs, filepath.Join(dir, "icons"))
	}

	baseDirs = append(baseDirs, "/usr/share/pixmaps")
	return baseDirs
}

// isDir reports whether path exists and is a directory. Stat failures read
// as "no", never as errors.
func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

// isFile reports whether path exists and is a regular file.
func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
