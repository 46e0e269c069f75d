package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Show the resolved theme inheritance chain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		il := newLookup()
		chain := il.Themes()
		if len(chain) == 0 {
			return fmt.Errorf("%w: no theme in chain for %q", errNotFound, il.Theme())
		}

		locales := preferredLocales()
		for _, th := range chain {
			name := th.LocalizedName(locales...)
			cached := ""
			if th.Cache() != nil {
				cached = " [cached]"
			}
			fmt.Printf("%s\t%s\t%d dirs%s\n", th.InternalName, name, len(th.Subdirs()), cached)
		}
		return nil
	},
}

// preferredLocales derives display locales from the usual environment
// variables.
func preferredLocales() []string {
	var out []string
	for _, env := range []string{"LANGUAGE", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		for _, lc := range strings.Split(v, ":") {
			if lc != "" && lc != "C" && lc != "POSIX" {
				out = append(out, lc)
			}
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
