package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codelif/xdgtheme"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect icon-theme.cache files",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Summarize a cache file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := xdgtheme.OpenCache(args[0])
		if err != nil {
			return err
		}
		defer c.Close()

		fmt.Printf("icons: %d\n", len(c.Icons()))
		fmt.Printf("directories: %d\n", len(c.Directories()))
		fmt.Printf("outdated: %v\n", c.IsOutdated())
		for _, d := range c.Directories() {
			fmt.Println("  " + d)
		}
		return nil
	},
}

var cacheCheckCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate a cache file and report whether it is stale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := xdgtheme.OpenCache(args[0])
		if err != nil {
			return err
		}
		defer c.Close()

		if c.IsOutdated() {
			fmt.Println("stale")
			return nil
		}
		fmt.Println("ok")
		return nil
	},
}

var cacheIconsCmd = &cobra.Command{
	Use:   "icons FILE [NAME]",
	Short: "List cached icons, or the directories of one icon",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := xdgtheme.OpenCache(args[0])
		if err != nil {
			return err
		}
		defer c.Close()

		if len(args) == 2 {
			dirs, err := c.IconDirectories(args[1])
			if err != nil {
				return err
			}
			if dirs == nil {
				return fmt.Errorf("%w: %q", errNotFound, args[1])
			}
			for _, d := range dirs {
				fmt.Println(d)
			}
			return nil
		}

		for _, name := range c.Icons() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd, cacheCheckCmd, cacheIconsCmd)
	rootCmd.AddCommand(cacheCmd)
}
