package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/composite"
	"github.com/gogpu/composite/meshio"
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "composite.glb", "output GLB file")
	rootCmd.AddCommand(exportCmd)
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "write the scene as binary glTF",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return traced(exportGLB(exportOut))
	},
}

func exportGLB(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := meshio.WriteGLB(f, composite.BuildScene()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	composite.Logger().Info("scene exported", "path", path)
	return nil
}
