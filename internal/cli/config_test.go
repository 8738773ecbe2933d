package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/cobra"
)

// newFlagCommand builds a command carrying the view and render flags.
func newFlagCommand(name string, view *viewFlags, render *renderFlags) *cobra.Command {
	cmd := &cobra.Command{Use: name}
	if view != nil {
		view.register(cmd.Flags())
	}
	if render != nil {
		render.register(cmd.Flags())
	}
	return cmd
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const testConfig = `
type = "treemap"
width = 640
height = 480
format = ["svg", "png"]
unknown = "ignored"

[render]
width = 320
labels = true

[serve]
addr = ":9090"
`

func TestConfigApply(t *testing.T) {
	cfg, err := ReadConfig(writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("ReadConfig() error: %v", err)
	}

	var (
		view   viewFlags
		render = renderFlags{allowAll: true}
	)
	cmd := newFlagCommand("render", &view, &render)
	if err := cmd.Flags().Set("height", "50"); err != nil {
		t.Fatal(err)
	}

	if err := cfg.Apply(cmd); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	opts := view.options("tree.json")
	render.apply(&opts)

	if opts.VizType != "treemap" {
		t.Errorf("VizType = %q, want treemap", opts.VizType)
	}
	if opts.Width != 320 {
		t.Errorf("Width = %v, want 320 (command table wins)", opts.Width)
	}
	if opts.Height != 50 {
		t.Errorf("Height = %v, want 50 (command line wins)", opts.Height)
	}
	if !slices.Equal(opts.Formats, []string{"svg", "png"}) {
		t.Errorf("Formats = %v, want [svg png]", opts.Formats)
	}
	if !opts.Labels {
		t.Error("Labels = false, want true")
	}
}

func TestConfigApplyOtherCommand(t *testing.T) {
	cfg, err := ReadConfig(writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("ReadConfig() error: %v", err)
	}

	var view viewFlags
	cmd := newFlagCommand("layout", &view, nil)
	if err := cfg.Apply(cmd); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	opts := view.options("tree.json")
	if opts.Width != 640 {
		t.Errorf("Width = %v, want 640 (render table must not apply)", opts.Width)
	}
}

func TestConfigApplyNil(t *testing.T) {
	var cfg *Config
	if err := cfg.Apply(&cobra.Command{Use: "render"}); err != nil {
		t.Errorf("Apply() on nil config error = %v, want nil", err)
	}
}

func TestConfigApplyBadValue(t *testing.T) {
	cfg, err := ReadConfig(writeConfig(t, `width = "wide"`))
	if err != nil {
		t.Fatalf("ReadConfig() error: %v", err)
	}

	var view viewFlags
	if err := cfg.Apply(newFlagCommand("render", &view, nil)); err == nil {
		t.Error("Apply() with non-numeric width should fail")
	}
}

func TestReadConfigErrors(t *testing.T) {
	if _, err := ReadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("ReadConfig() on missing file should fail")
	}
	if _, err := ReadConfig(writeConfig(t, "width = ")); err == nil {
		t.Error("ReadConfig() on invalid TOML should fail")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("default file missing", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		c := &CLI{Logger: newLogger(os.Stderr, LogInfo)}
		if err := c.loadConfig(); err != nil {
			t.Errorf("loadConfig() error = %v, want nil", err)
		}
		if c.config != nil {
			t.Error("loadConfig() should leave config nil without a file")
		}
	})

	t.Run("default file present", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		dir := filepath.Join(home, appName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, configFile), []byte(testConfig), 0o644); err != nil {
			t.Fatal(err)
		}

		c := &CLI{Logger: newLogger(os.Stderr, LogInfo)}
		if err := c.loadConfig(); err != nil {
			t.Fatalf("loadConfig() error: %v", err)
		}
		if c.config == nil {
			t.Fatal("loadConfig() did not load the default file")
		}
	})

	t.Run("explicit file missing", func(t *testing.T) {
		c := &CLI{Logger: newLogger(os.Stderr, LogInfo), configPath: filepath.Join(t.TempDir(), "nope.toml")}
		if err := c.loadConfig(); err == nil {
			t.Error("loadConfig() with missing --config should fail")
		}
	})
}
