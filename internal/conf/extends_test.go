package conf

import (
	"errors"
	"path/filepath"
	"testing"
)

func readFile(t *testing.T, path string) ConfigurationPayload {
	t.Helper()
	payload, err := loadPayload(path)
	if err != nil {
		t.Fatalf("failed to load %s: %v", path, err)
	}
	return *payload
}

func TestExtendsResolver_Order(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"formatter": {"lineWidth": 90, "indentStyle": "space"}}`)
	writeFile(t, dir, "b.json", `{"formatter": {"lineWidth": 100}}`)
	root := writeFile(t, dir, "biome.json", `{"extends": ["./a.json", "./b.json"]}`)

	r := NewExtendsResolver()
	r.Logger = quietLogger()
	fragments, err := r.ResolvePayload(readFile(t, root))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fragments) != 2 {
		t.Fatalf("got %d fragments, want 2", len(fragments))
	}
	if filepath.Base(fragments[0].Path) != "a.json" || filepath.Base(fragments[1].Path) != "b.json" {
		t.Errorf("fragments out of order: %s, %s", fragments[0].Path, fragments[1].Path)
	}

	parts := []PartialConfiguration{fragments[0].Partial, fragments[1].Partial}
	c := Merge(parts...).Resolve()
	if c.Formatter.LineWidth != 100 {
		t.Errorf("LineWidth = %v, want 100 from the later entry", c.Formatter.LineWidth)
	}
	if c.Formatter.IndentStyle != IndentStyleSpace {
		t.Errorf("IndentStyle = %v, want space from the earlier entry", c.Formatter.IndentStyle)
	}
}

func TestExtendsResolver_Nested(t *testing.T) {
	dir := t.TempDir()
	// Nested extends resolve relative to the file that lists them.
	writeFile(t, dir, "shared/more.json", `{"formatter": {"indentWidth": 8, "lineWidth": 70}}`)
	writeFile(t, dir, "shared/base.json", `{"extends": ["./more.json"], "formatter": {"lineWidth": 90}}`)

	r := &ExtendsResolver{Logger: quietLogger()}
	fragments, err := r.Resolve([]string{"./shared/base.json"}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fragments) != 1 {
		t.Fatalf("got %d fragments, want 1", len(fragments))
	}
	c := fragments[0].Partial.Resolve()
	if c.Formatter.IndentWidth != 8 {
		t.Errorf("IndentWidth = %v, want 8 from the nested file", c.Formatter.IndentWidth)
	}
	if c.Formatter.LineWidth != 90 {
		t.Errorf("LineWidth = %v, want 90: a file wins over what it extends", c.Formatter.LineWidth)
	}
}

func TestExtendsResolver_Diamond(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "common.json", `{"linter": {"enabled": false}}`)
	writeFile(t, dir, "left.json", `{"extends": ["./common.json"]}`)
	writeFile(t, dir, "right.json", `{"extends": ["./common.json"], "formatter": {"lineWidth": 100}}`)
	root := writeFile(t, dir, "biome.json", `{"extends": ["./left.json", "./right.json"]}`)

	r := &ExtendsResolver{Logger: quietLogger()}
	fragments, err := r.ResolvePayload(readFile(t, root))
	if err != nil {
		t.Fatalf("shared ancestor must not be reported as a cycle: %v", err)
	}
	c := Merge(fragments[0].Partial, fragments[1].Partial).Resolve()
	if c.Linter.Enabled || c.Formatter.LineWidth != 100 {
		t.Errorf("unexpected result %+v", c)
	}
}

func TestExtendsResolver_Errors(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		root      string
		wantErr   error
		wantChain int
	}{
		{
			name: "two file cycle",
			files: map[string]string{
				"a.json": `{"extends": ["./b.json"]}`,
				"b.json": `{"extends": ["./a.json"]}`,
			},
			root:      "a.json",
			wantErr:   ErrExtendsCycle,
			wantChain: 3,
		},
		{
			name: "self reference",
			files: map[string]string{
				"biome.json": `{"extends": ["./biome.json"]}`,
			},
			root:      "biome.json",
			wantErr:   ErrExtendsCycle,
			wantChain: 2,
		},
		{
			name: "cycle below the root",
			files: map[string]string{
				"biome.json": `{"extends": ["./a.json"]}`,
				"a.json":     `{"extends": ["./b.json"]}`,
				"b.json":     `{"extends": ["./c.json"]}`,
				"c.json":     `{"extends": ["./a.json"]}`,
			},
			root:      "biome.json",
			wantErr:   ErrExtendsCycle,
			wantChain: 4,
		},
		{
			name: "missing file",
			files: map[string]string{
				"biome.json": `{"extends": ["./missing.json"]}`,
			},
			root:    "biome.json",
			wantErr: ErrExtendsNotFound,
		},
		{
			name: "missing package",
			files: map[string]string{
				"biome.json": `{"extends": ["@acme/nothing"]}`,
			},
			root:    "biome.json",
			wantErr: ErrExtendsNotFound,
		},
		{
			name: "malformed extended file",
			files: map[string]string{
				"biome.json": `{"extends": ["./bad.json"]}`,
				"bad.json":   `{"linter": `,
			},
			root:    "biome.json",
			wantErr: ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := repoDir(t)
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}

			r := NewExtendsResolver()
			r.Logger = quietLogger()
			_, err := r.ResolvePayload(readFile(t, filepath.Join(dir, tt.root)))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ResolvePayload() error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantChain > 0 {
				var d *Diagnostic
				if !errors.As(err, &d) {
					t.Fatalf("error %T is not a *Diagnostic", err)
				}
				if len(d.Chain) != tt.wantChain {
					t.Errorf("cycle chain = %v, want %d entries", d.Chain, tt.wantChain)
				}
				if d.Chain[0] != d.Chain[len(d.Chain)-1] {
					t.Errorf("cycle chain %v does not close on itself", d.Chain)
				}
			}
		})
	}
}

func TestExtendsResolver_Package(t *testing.T) {
	dir := repoDir(t)
	writeFile(t, dir, "node_modules/@acme/biome-config/package.json", `{
		"name": "@acme/biome-config",
		"exports": {
			"./strict": {"node": "./strict.jsonc", "default": "./strict.json"},
			"./base": "./base.json"
		}
	}`)
	writeFile(t, dir, "node_modules/@acme/biome-config/base.json", `{"formatter": {"indentStyle": "space"}}`)
	writeFile(t, dir, "node_modules/@acme/biome-config/strict.jsonc", `{
		// resolved through the "node" condition
		"extends": ["./base.json"],
		"linter": {"rules": {"recommended": false}}
	}`)
	writeFile(t, dir, "node_modules/@acme/biome-config/strict.json", `{"linter": {"enabled": false}}`)
	writeFile(t, dir, "biome.json", `{"extends": ["@acme/biome-config/strict"], "formatter": {"lineWidth": 100}}`)

	cs := &ConfigSource{Hint: UserHint{Path: dir}, Logger: quietLogger()}
	loaded, err := cs.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := loaded.Configuration
	if c.Formatter.IndentStyle != IndentStyleSpace {
		t.Errorf("IndentStyle = %v, want space from the package base", c.Formatter.IndentStyle)
	}
	if c.Formatter.LineWidth != 100 {
		t.Errorf("LineWidth = %v, want 100", c.Formatter.LineWidth)
	}
	if c.Linter.Rules.IsRecommended() {
		t.Error("expected recommended rules off from the node export")
	}
	if !c.Linter.Enabled {
		t.Error("the default export must not be used when the node condition matches")
	}
}

type stubPackages map[string]string

func (s stubPackages) Resolve(specifier, _ string, _ []string) (string, error) {
	if path, ok := s[specifier]; ok {
		return path, nil
	}
	return "", errors.New("not installed")
}

func TestExtendsResolver_CustomPackageResolver(t *testing.T) {
	dir := t.TempDir()
	shared := writeFile(t, dir, "elsewhere/shared.json", `{"javascript": {"globals": ["jest"]}}`)

	r := &ExtendsResolver{Packages: stubPackages{"shared": shared}, Logger: quietLogger()}
	fragments, err := r.Resolve([]string{"shared"}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fragments[0].Partial.Resolve().Javascript.Globals; len(got) != 1 || got[0] != "jest" {
		t.Errorf("Globals = %v, want [jest]", got)
	}

	if _, err := r.Resolve([]string{"unknown"}, dir); !errors.Is(err, ErrExtendsNotFound) {
		t.Errorf("Resolve() error = %v, want %v", err, ErrExtendsNotFound)
	}
}
