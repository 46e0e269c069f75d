package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/codelif/xdgtheme"
)

// errNotFound marks lookup exhaustion, which exits with code 1 instead of
// the generic error code 2 so scripts can tell "no such icon" apart from
// broken theme or cache files.
var errNotFound = errors.New("icon not found")

var (
	flagTheme   string
	flagDirs    []string
	flagExts    []string
	flagVerbose bool

	logger = log.New(os.Stderr)
)

var rootCmd = &cobra.Command{
	Use:           "xdgtheme",
	Short:         "Resolve icons through freedesktop icon themes",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `xdgtheme resolves icon names to files using the freedesktop Icon Theme
Specification: theme inheritance, icon-theme.cache files and best-size
matching across theme subdirectories.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.WarnLevel
		if flagVerbose {
			level = log.DebugLevel
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: level})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagTheme, "theme", "t", "", "icon theme name (default: detected)")
	rootCmd.PersistentFlags().StringArrayVarP(&flagDirs, "dir", "d", nil, "icon base directory (repeatable, default: XDG dirs)")
	rootCmd.PersistentFlags().StringArrayVarP(&flagExts, "ext", "e", nil, "file extension to probe (repeatable, default: png svg xpm)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errNotFound) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

// newLookup builds an IconLookup from config file, flags and environment,
// flags winning.
func newLookup() *xdgtheme.IconLookup {
	cfg := loadConfig()

	theme := cfg.Theme
	if flagTheme != "" {
		theme = flagTheme
	}
	if theme == "" {
		theme = detectTheme()
	}

	dirs := cfg.SearchDirs
	if len(flagDirs) > 0 {
		dirs = flagDirs
	}

	exts := cfg.Extensions
	if len(flagExts) > 0 {
		exts = flagExts
	}

	opts := []xdgtheme.Option{xdgtheme.WithLogger(logger)}
	if len(dirs) > 0 {
		opts = append(opts, xdgtheme.WithSearchDirs(dirs))
	}
	if len(exts) > 0 {
		opts = append(opts, xdgtheme.WithExtensions(exts))
	}
	return xdgtheme.NewIconLookup(theme, opts...)
}
