package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/valpere/eztrans/internal/engine"
)

func testFlags() *pflag.FlagSet {
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.String("install-root", "", "")
	f.String("narrow-mode", "", "")
	f.Bool("escape", true, "")
	f.String("log-level", "", "")
	return f
}

func TestLoadConfig_Defaults(t *testing.T) {
	c, err := loadConfig(viper.New(), testFlags(), "")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if c.InstallRoot != engine.DefaultInstallRoot {
		t.Errorf("InstallRoot = %q", c.InstallRoot)
	}
	if c.InitToken != engine.DefaultInitToken {
		t.Errorf("InitToken = %q", c.InitToken)
	}
	if c.NarrowMode != "mmnt" || !c.Escape || c.Cache.Enabled {
		t.Errorf("unexpected defaults %+v", c)
	}
	if c.Log.Level != "info" || c.Log.Format != "console" {
		t.Errorf("unexpected log defaults %+v", c.Log)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eztrans.yaml")
	data := "install_root: /from/file\nnarrow_mode: mm\ncache:\n  enabled: true\n  path: /tmp/m.db\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EZTRANS_NARROW_MODE", "fm")

	flags := testFlags()
	if err := flags.Parse([]string{"--install-root", "/from/flag"}); err != nil {
		t.Fatal(err)
	}

	c, err := loadConfig(viper.New(), flags, path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if c.InstallRoot != "/from/flag" {
		t.Errorf("expected flag to win, got %q", c.InstallRoot)
	}
	if c.NarrowMode != "fm" {
		t.Errorf("expected environment over file, got %q", c.NarrowMode)
	}
	if !c.Cache.Enabled || c.Cache.Path != "/tmp/m.db" || c.Log.Level != "debug" {
		t.Errorf("expected nested keys from file, got %+v", c)
	}
}

func TestLoadConfig_InvalidMode(t *testing.T) {
	t.Setenv("EZTRANS_NARROW_MODE", "turbo")
	if _, err := loadConfig(viper.New(), nil, ""); err == nil {
		t.Error("expected error for unknown narrow mode")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := loadConfig(viper.New(), nil, filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level, format string
		ok            bool
	}{
		{"info", "console", true},
		{"debug", "json", true},
		{"warn", "", true},
		{"loud", "json", false},
		{"info", "xml", false},
	}
	for _, tt := range tests {
		_, err := newLogger(tt.level, tt.format)
		if (err == nil) != tt.ok {
			t.Errorf("newLogger(%q, %q) error = %v, want ok=%v", tt.level, tt.format, err, tt.ok)
		}
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet("おはよう", 10); got != "おはよう" {
		t.Errorf("snippet = %q", got)
	}
	if got := snippet("おはようございます", 6); got != "おはよ..." {
		t.Errorf("snippet = %q", got)
	}
}
