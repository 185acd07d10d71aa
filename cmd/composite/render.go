package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/composite"
	"github.com/gogpu/composite/raster"
)

func init() {
	renderCmd.Flags().StringVarP(&renderFlags.out, "out", "o", "composite.png", "output PNG file")
	renderCmd.Flags().IntVar(&renderFlags.width, "width", 800, "image width in pixels")
	renderCmd.Flags().IntVar(&renderFlags.height, "height", 600, "image height in pixels")
	renderCmd.Flags().IntVar(&renderFlags.grid, "grid", 0, "grid cell size in pixels, 0 disables the grid")
	renderCmd.Flags().StringVar(&renderFlags.gridColor, "grid-color", "C0C0C0", "grid line color as hex RGB(A)")
	rootCmd.AddCommand(renderCmd)
}

var renderFlags struct {
	out       string
	width     int
	height    int
	grid      int
	gridColor string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "render the scene to a PNG without a GPU",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return traced(renderPNG(renderFlags.out, renderFlags.width, renderFlags.height))
	},
}

func renderPNG(path string, width, height int) error {
	base, err := options()
	if err != nil {
		return err
	}
	o := composite.NewOptions(base...)
	opts := []raster.Option{raster.WithClearColor(o.ClearColor)}
	if renderFlags.grid > 0 {
		line, err := composite.ParseHex(renderFlags.gridColor)
		if err != nil {
			return fmt.Errorf("--grid-color: %w", err)
		}
		opts = append(opts, raster.WithGrid(renderFlags.grid, line))
	}

	img, err := raster.Render(composite.BuildScene(), width, height, opts...)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	composite.Logger().Info("image written", "path", path, "width", width, "height", height)
	return nil
}
