// Command composite draws three semi-transparent triangles with "over"
// alpha blending.
//
//	composite run                  open a window and render on demand
//	composite render --out a.png   render headless on the CPU
//	composite export --out a.glb   write the scene as binary glTF
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	errorsGo "github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/gogpu/composite"
)

var rootCmd = &cobra.Command{
	Use:          filepath.Base(os.Args[0]),
	Short:        "composite draws blended triangles",
	Long:         "composite draws three semi-transparent triangles with over alpha blending",
	Version:      composite.Version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

var (
	verbose    bool
	clearColor string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&clearColor, "clear", "00000000", "clear color as hex RGBA")
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	composite.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// options returns the renderer options selected by the persistent flags.
func options() ([]composite.Option, error) {
	cc, err := composite.ParseHex(clearColor)
	if err != nil {
		return nil, fmt.Errorf("--clear: %w", err)
	}
	return []composite.Option{composite.WithClearColor(cc)}, nil
}

// traced attaches a stack trace to err, printed by main in verbose mode.
func traced(err error) error {
	if err == nil {
		return nil
	}
	return errorsGo.Wrap(err, 1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var stackErr *errorsGo.Error
		if verbose && errors.As(err, &stackErr) {
			fmt.Fprintln(os.Stderr, stackErr.ErrorStack())
		}
		composite.Logger().Error("composite failed", "err", err)
		os.Exit(1)
	}
}
