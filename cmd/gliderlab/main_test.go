package main

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/gliderlab/internal/config"
)

func newBoundsCmd(t *testing.T) *cobra.Command {
	t.Helper()
	oldPreset, oldConfigFile := preset, configFile
	oldWidth, oldHeight := width, height
	t.Cleanup(func() {
		preset, configFile = oldPreset, oldConfigFile
		width, height = oldWidth, oldHeight
	})

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "")
	return cmd
}

// Overriding one bounds dimension must leave the other dimension, and
// the min corner, as the preset defined them.
func TestBuildConfigWidthFlagKeepsPresetBounds(t *testing.T) {
	cmd := newBoundsCmd(t)
	preset = "sparse"
	configFile = ""
	if err := cmd.Flags().Set("width", "3000"); err != nil {
		t.Fatal(err)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}

	sparse := config.GetPreset("sparse")
	if cfg.Bounds.MinX != sparse.Bounds.MinX || cfg.Bounds.MinY != sparse.Bounds.MinY {
		t.Errorf("min corner changed: got (%f, %f), want (%f, %f)",
			cfg.Bounds.MinX, cfg.Bounds.MinY, sparse.Bounds.MinX, sparse.Bounds.MinY)
	}
	if cfg.Bounds.MaxY != sparse.Bounds.MaxY {
		t.Errorf("height changed: got max y %f, want %f", cfg.Bounds.MaxY, sparse.Bounds.MaxY)
	}
	if want := sparse.Bounds.MinX + 3000; cfg.Bounds.MaxX != want {
		t.Errorf("width not applied: got max x %f, want %f", cfg.Bounds.MaxX, want)
	}
}

func TestBuildConfigBoundsFlagsUntouched(t *testing.T) {
	cmd := newBoundsCmd(t)
	preset = "sparse"
	configFile = ""

	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Bounds != config.GetPreset("sparse").Bounds {
		t.Errorf("bounds changed without flags: %+v", cfg.Bounds)
	}
}
