package pkgresolve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "node_modules/plain/package.json", `{"name": "plain"}`)
	writeFile(t, dir, "node_modules/plain/biome.json", `{}`)
	writeFile(t, dir, "node_modules/plain/configs/strict.jsonc", `{}`)

	writeFile(t, dir, "node_modules/sugar/package.json", `{"name": "sugar", "exports": "./main.json"}`)
	writeFile(t, dir, "node_modules/sugar/main.json", `{}`)

	writeFile(t, dir, "node_modules/@scope/conds/package.json", `{
		"name": "@scope/conds",
		"exports": {
			".": {"import": "./esm.json", "node": "./node.json", "default": "./default.json"},
			"./list": [{"worker": "./worker.json"}, "./fallback.json"],
			"./presets/*": "./dist/presets/*.json",
			"./presets/internal/*": null,
			"./escape": "./../../outside.json"
		}
	}`)
	for _, f := range []string{"esm.json", "node.json", "default.json", "fallback.json", "dist/presets/react.json"} {
		writeFile(t, dir, "node_modules/@scope/conds/"+f, `{}`)
	}

	pkg := func(parts ...string) string {
		return filepath.Join(append([]string{dir, "node_modules"}, parts...)...)
	}

	tests := []struct {
		name       string
		specifier  string
		conditions []string
		want       string
	}{
		{name: "subpath without exports", specifier: "plain/biome.json", want: pkg("plain", "biome.json")},
		{name: "extension appended", specifier: "plain/biome", want: pkg("plain", "biome.json")},
		{name: "jsonc extension appended", specifier: "plain/configs/strict", want: pkg("plain", "configs", "strict.jsonc")},
		{name: "string exports", specifier: "sugar", want: pkg("sugar", "main.json")},
		{name: "default conditions prefer node", specifier: "@scope/conds", want: pkg("@scope", "conds", "node.json")},
		{name: "condition order", specifier: "@scope/conds", conditions: []string{"import", "node"}, want: pkg("@scope", "conds", "esm.json")},
		{name: "default condition", specifier: "@scope/conds", conditions: []string{"browser"}, want: pkg("@scope", "conds", "default.json")},
		{name: "array fallback", specifier: "@scope/conds/list", want: pkg("@scope", "conds", "fallback.json")},
		{name: "subpath pattern", specifier: "@scope/conds/presets/react", want: pkg("@scope", "conds", "dist", "presets", "react.json")},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.specifier, filepath.Join(dir, "src", "nested"), tt.conditions)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.specifier, got, tt.want)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "node_modules/@scope/conds/package.json", `{
		"name": "@scope/conds",
		"exports": {
			".": "./index.json",
			"./presets/internal/*": null,
			"./escape": "./../../outside.json"
		}
	}`)
	writeFile(t, dir, "node_modules/@scope/conds/index.json", `{}`)
	writeFile(t, dir, "node_modules/noexports/package.json", `{"name": "noexports"}`)

	tests := []struct {
		name      string
		specifier string
	}{
		{name: "not installed", specifier: "missing"},
		{name: "not exported", specifier: "@scope/conds/private"},
		{name: "null target", specifier: "@scope/conds/presets/internal/x"},
		{name: "escapes the package", specifier: "@scope/conds/escape"},
		{name: "bare package without exports", specifier: "noexports"},
		{name: "invalid scoped name", specifier: "@scope"},
		{name: "relative name", specifier: "./foo"},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.specifier, dir, nil)
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("Resolve(%q) error = %v, want %v", tt.specifier, err, ErrNotFound)
			}
		})
	}
}

func TestResolveSearchesParents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "node_modules/shared/package.json", `{"name": "shared", "exports": {".": "./biome.json"}}`)
	want := writeFile(t, dir, "node_modules/shared/biome.json", `{}`)
	start := filepath.Join(dir, "packages", "app")

	got, err := New().Resolve("shared", start, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Resolve() = %s, want %s", got, want)
	}

	_, err = New().Resolve("absent", start, nil)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error %v is not a *NotFoundError", err)
	}
	if len(nf.Searched) < 3 || nf.Searched[0] != filepath.Join(start, "node_modules", "absent") {
		t.Errorf("Searched = %v, want every directory from %s upwards", nf.Searched, start)
	}
}

func TestWithExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "node_modules/plain/package.json", `{"name": "plain"}`)
	writeFile(t, dir, "node_modules/plain/biome.json", `{}`)

	if _, err := New(WithExtensions(".jsonc")).Resolve("plain/biome", dir, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want %v", err, ErrNotFound)
	}
}
