package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/spf13/cobra"

	"github.com/codelif/xdgtheme/renderer"
)

var (
	flagRenderSize    int
	flagRenderOut     string
	flagRenderMissing bool
)

var renderCmd = &cobra.Command{
	Use:   "render NAME",
	Short: "Rasterize an icon to a PNG file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		il := newLookup()

		var img image.Image
		res, err := il.FindIcon(args[0], uint(flagRenderSize))
		switch {
		case err == nil:
			img, err = renderer.RenderFile(res.Path, flagRenderSize)
			if err != nil {
				return err
			}
		case flagRenderMissing:
			img = renderer.MissingIcon(flagRenderSize, color.Black)
		default:
			return fmt.Errorf("%w: %q", errNotFound, args[0])
		}

		if err := renderer.SavePNG(img, flagRenderOut); err != nil {
			return err
		}
		fmt.Println(flagRenderOut)
		return nil
	},
}

func init() {
	renderCmd.Flags().IntVarP(&flagRenderSize, "size", "s", 48, "output size in pixels")
	renderCmd.Flags().StringVarP(&flagRenderOut, "out", "o", "icon.png", "output file")
	renderCmd.Flags().BoolVar(&flagRenderMissing, "missing-placeholder", false, "draw a placeholder when the icon is not found")
	rootCmd.AddCommand(renderCmd)
}
