package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/juliosouzam/biome/internal/conf"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"biome-config"}, args...))
	return out.String(), err
}

func projectDir(t *testing.T, config string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	if config != "" {
		if err := os.WriteFile(filepath.Join(dir, "biome.json"), []byte(config), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestPrint(t *testing.T) {
	dir := projectDir(t, `{"formatter": {"indentStyle": "space", "lineWidth": 90}}`)

	out, err := runApp(t, "--config-path", dir, "print", "--line-width", "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var c conf.Configuration
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("output is not a configuration: %v\n%s", err, out)
	}
	if c.Formatter.IndentStyle != conf.IndentStyleSpace {
		t.Errorf("IndentStyle = %v, want space", c.Formatter.IndentStyle)
	}
	if c.Formatter.LineWidth != 100 {
		t.Errorf("LineWidth = %v, want 100 from the command line", c.Formatter.LineWidth)
	}
	if c.Javascript.Formatter.LineWidth != 100 {
		t.Errorf("javascript LineWidth = %v, want 100", c.Javascript.Formatter.LineWidth)
	}
}

func TestPrintMissingConfiguration(t *testing.T) {
	_, err := runApp(t, "--config-path", filepath.Join(t.TempDir(), "nope.json"), "print")
	if !errors.Is(err, conf.ErrConfigNotFound) {
		t.Errorf("error = %v, want %v", err, conf.ErrConfigNotFound)
	}
}

func TestExplain(t *testing.T) {
	dir := projectDir(t, `{"overrides": [{"include": ["*.test.js"], "linter": {"enabled": false}}]}`)

	for file, enabled := range map[string]bool{"src/a.test.js": false, "src/a.js": true} {
		out, err := runApp(t, "--config-path", dir, "explain", file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var c conf.Configuration
		if err := json.Unmarshal([]byte(out), &c); err != nil {
			t.Fatalf("output is not a configuration: %v\n%s", err, out)
		}
		if c.Linter.Enabled != enabled {
			t.Errorf("%s: Linter.Enabled = %v, want %v", file, c.Linter.Enabled, enabled)
		}
	}

	if _, err := runApp(t, "--config-path", dir, "explain"); err == nil {
		t.Error("explain without a file should fail")
	}
}

func TestExplainFromSubdirectory(t *testing.T) {
	dir := projectDir(t, `{"overrides": [{"include": ["src/**/*.js"], "linter": {"enabled": false}}]}`)
	src := filepath.Join(dir, "src")
	if err := os.Mkdir(src, 0755); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(src); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := runApp(t, "explain", "a.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var c conf.Configuration
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("output is not a configuration: %v\n%s", err, out)
	}
	if c.Linter.Enabled {
		t.Error("Linter.Enabled = true, want false: a.js is src/a.js relative to biome.json")
	}
}

func TestInit(t *testing.T) {
	dir := projectDir(t, "")

	if _, err := runApp(t, "--config-path", dir, "init"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "biome.json"))
	if err != nil {
		t.Fatalf("biome.json was not written: %v", err)
	}
	partial, err := conf.ParseConfiguration(data, "biome.json")
	if err != nil {
		t.Fatalf("written configuration does not parse: %v", err)
	}
	if partial.IsLinterDisabled() || !partial.LinterRules().IsRecommended() {
		t.Errorf("written configuration should enable recommended linting:\n%s", data)
	}

	if _, err := runApp(t, "--config-path", dir, "init", "--jsonc"); err == nil {
		t.Error("init should refuse to overwrite an existing configuration")
	}
}

func TestInitFilePath(t *testing.T) {
	dir := projectDir(t, "")
	target := filepath.Join(dir, "biome.jsonc")

	if _, err := runApp(t, "--config-path", target, "init"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("%s was not written: %v", target, err)
	}
	if _, err := os.Stat(filepath.Join(target, "biome.json")); err == nil {
		t.Error("the file path was used as a directory")
	}

	if _, err := runApp(t, "--config-path", target, "init"); err == nil {
		t.Error("init should refuse to overwrite an existing configuration")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	if _, err := runApp(t, "--log-level", "loud", "print"); err == nil {
		t.Error("expected an error for an unknown log level")
	}
}
