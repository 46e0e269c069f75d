package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codelif/xdgtheme"
)

var (
	flagSize    uint
	flagLargest bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup NAME",
	Short: "Resolve an icon name to a file path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		il := newLookup()

		var (
			res xdgtheme.SearchResult
			err error
		)
		if flagLargest {
			res, err = il.FindLargestIcon(args[0])
		} else {
			res, err = il.FindIcon(args[0], flagSize)
		}
		if err != nil {
			return fmt.Errorf("%w: %q", errNotFound, args[0])
		}

		fmt.Println(res.Path)
		if res.Theme != nil {
			logger.Debug("resolved",
				"theme", res.Theme.InternalName,
				"subdir", res.Subdir.Name,
				"size", res.Subdir.Size,
				"type", res.Subdir.Type.String())
		}
		return nil
	},
}

func init() {
	lookupCmd.Flags().UintVarP(&flagSize, "size", "s", 48, "desired icon size")
	lookupCmd.Flags().BoolVar(&flagLargest, "largest", false, "pick the largest rendition instead of the closest size")
	rootCmd.AddCommand(lookupCmd)
}
