//go:build !nogpu

package main

import (
	"os"

	"github.com/gogpu/gogpu"
	"github.com/spf13/cobra"

	"github.com/gogpu/composite"
	"github.com/gogpu/composite/integration/gogpuview"
)

func init() {
	runCmd.Flags().IntVar(&runFlags.width, "width", 800, "window width")
	runCmd.Flags().IntVar(&runFlags.height, "height", 600, "window height")
	runCmd.Flags().StringVar(&runFlags.title, "title", "Composite", "window title")
	rootCmd.AddCommand(runCmd)
}

var runFlags struct {
	width  int
	height int
	title  string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "open a window and render the scene on every redraw",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return traced(runWindow())
	},
}

func runWindow() error {
	log := composite.Logger()
	opts, err := options()
	if err != nil {
		return err
	}

	// Event-driven: frames are rendered only when the host requests a redraw.
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(runFlags.title).
		WithSize(runFlags.width, runFlags.height).
		WithContinuousRender(false))

	var view *gogpuview.View
	app.OnDraw(func(dc *gogpu.Context) {
		if view == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			var err error
			view, err = gogpuview.New(provider, composite.BuildScene(), opts...)
			if err != nil {
				log.Error("startup failed", "err", err)
				os.Exit(1)
			}
			log.Info("view ready", "backend", dc.Backend(), "format", view.Format())
		}

		sw, sh := dc.SurfaceSize()
		// Dropped frames are logged by the view; the next redraw retries.
		_ = view.RenderDirect(dc.SurfaceView(), sw, sh)
	})

	app.OnClose(func() {
		if view != nil {
			_ = view.Close()
		}
	})

	return app.Run()
}
