package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/composite"
	"github.com/gogpu/composite/meshio"
)

// resetFlags restores every flag of cmd and its subcommands to its default
// once the test ends. Cobra keeps flag values between Execute calls.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	t.Cleanup(func() {
		reset := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		var walk func(c *cobra.Command)
		walk = func(c *cobra.Command) {
			c.PersistentFlags().VisitAll(reset)
			c.Flags().VisitAll(reset)
			for _, sub := range c.Commands() {
				walk(sub)
			}
		}
		walk(cmd)
	})
}

// runCommand executes the root command with args and returns its error.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(t, rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	return rootCmd.Execute()
}

func execute(t *testing.T, args ...string) {
	t.Helper()
	if err := runCommand(t, args...); err != nil {
		t.Fatalf("composite %v: %v", args, err)
	}
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scene.png")
	execute(t, "render", "--out", out, "--width", "120", "--height", "90", "--grid", "10", "--clear", "FFFFFFFF")

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 90 {
		t.Errorf("image bounds = %v, want 120x90", b)
	}
}

func TestExportCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scene.glb")
	execute(t, "export", "--out", out)

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	scene, err := meshio.ReadGLB(f)
	if err != nil {
		t.Fatalf("ReadGLB: %v", err)
	}
	if scene.Len() != 3 {
		t.Errorf("exported %d meshes, want 3", scene.Len())
	}
}

func TestTracedKeepsSentinel(t *testing.T) {
	if traced(nil) != nil {
		t.Fatal("traced(nil) must be nil")
	}
	err := traced(composite.ErrInvalidDimensions)
	if !errors.Is(err, composite.ErrInvalidDimensions) {
		t.Errorf("traced error %v does not match its sentinel", err)
	}
}

func TestRenderCommandRejectsBadSize(t *testing.T) {
	err := runCommand(t, "render", "--out", filepath.Join(t.TempDir(), "x.png"), "--width", "0")
	if !errors.Is(err, composite.ErrInvalidDimensions) {
		t.Fatalf("render --width 0 = %v, want ErrInvalidDimensions", err)
	}
}

func TestRenderCommandRejectsBadColors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"clear", []string{"--clear", "zz"}},
		{"clear digits", []string{"--clear", "zz0000ff"}},
		{"grid color", []string{"--grid", "8", "--grid-color", "ff00zz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "x.png")
			args := append([]string{"render", "--out", out}, tt.args...)
			if err := runCommand(t, args...); !errors.Is(err, composite.ErrInvalidColor) {
				t.Fatalf("composite %v = %v, want ErrInvalidColor", args, err)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Errorf("%s written despite invalid color", out)
			}
		})
	}
}

func TestFlagsResetBetweenRuns(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		execute(t, "render", "--out", filepath.Join(t.TempDir(), "a.png"),
			"--width", "31", "--height", "17", "--clear", "FFFFFFFF", "--grid", "4")
	})
	if renderFlags.width != 800 || renderFlags.height != 600 || renderFlags.grid != 0 {
		t.Errorf("render flags leaked: %+v", renderFlags)
	}
	if clearColor != "00000000" {
		t.Errorf("--clear leaked: %q", clearColor)
	}
	if f := renderCmd.Flags().Lookup("width"); f.Changed {
		t.Error("--width still marked as changed")
	}
}
