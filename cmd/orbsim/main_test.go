package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/spf13/cobra"
)

func subcommand(t *testing.T, name string, args ...string) *cobra.Command {
	t.Helper()
	root := newRootCmd()
	sub, _, err := root.Find([]string{name})
	if err != nil {
		t.Fatalf("find %s: %v", name, err)
	}
	if err := sub.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return sub
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbsim.yaml")
	data := "simulation:\n  threshold: 0.7\n  speed: 0.2\nsampling:\n  points: 1000\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := subcommand(t, "sweep", "--config", path, "--threshold", "0.3")
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Simulation.Threshold != 0.3 {
		t.Errorf("flag should override file threshold, got %v", cfg.Simulation.Threshold)
	}
	if cfg.Simulation.Speed != 0.2 {
		t.Errorf("file speed should survive unchanged flags, got %v", cfg.Simulation.Speed)
	}
	if cfg.Sampling.Points != 1000 {
		t.Errorf("expected 1000 points from file, got %d", cfg.Sampling.Points)
	}
}

func TestLoadConfigPreset(t *testing.T) {
	cmd := subcommand(t, "run", "--preset", "legacy", "--n-proportion", "0.2")
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Animation.Clock != config.ClockEpoch {
		t.Errorf("expected epoch clock from preset, got %q", cfg.Animation.Clock)
	}
	if cfg.Simulation.NProportion != 0.2 || cfg.Simulation.MProportion != 0.8 {
		t.Errorf("expected coupled proportions, got %v/%v", cfg.Simulation.NProportion, cfg.Simulation.MProportion)
	}

	cmd = subcommand(t, "run", "--preset", "nope")
	if _, err := loadConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}

	cmd = subcommand(t, "run", "--clock", "sundial")
	if _, err := loadConfig(cmd); err == nil {
		t.Error("expected validation error for unknown clock")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := newLogger("debug", "json", "", &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()

	logger.Debug("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("expected json record, got %q", buf.String())
	}

	if _, _, err := newLogger("loud", "text", "", &buf); err == nil {
		t.Error("expected error for bad level")
	}
	if _, _, err := newLogger("info", "xml", "", &buf); err == nil {
		t.Error("expected error for bad format")
	}
}

func TestPresetsCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"presets"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, name := range config.ListPresets() {
		if !strings.Contains(out.String(), name) {
			t.Errorf("missing preset %s", name)
		}
	}
}

func TestSaveConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"save-config", path, "--preset", "mixed", "--n-proportion", "0.3"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.Animation.Formula != "mixed" {
		t.Errorf("expected mixed formula from preset, got %q", cfg.Animation.Formula)
	}
	if cfg.Simulation.NProportion != 0.3 {
		t.Errorf("expected n-proportion flag to be saved, got %v", cfg.Simulation.NProportion)
	}
}
