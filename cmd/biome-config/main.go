package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~spc/go-log"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/juliosouzam/biome/internal/conf"
	"github.com/juliosouzam/biome/internal/flags"
	"github.com/juliosouzam/biome/internal/l10n"
)

const (
	cliConfigPath = "config-path"
	cliLogLevel   = "log-level"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "biome-config"
	app.Usage = l10n.T("Resolve and inspect biome configuration files")
	app.HideVersion = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    cliConfigPath,
			Usage:   l10n.T("use the configuration file or directory at `PATH`"),
			EnvVars: []string{"BIOME_CONFIG_PATH"},
		},
		&cli.StringFlag{
			Name:  cliLogLevel,
			Value: "error",
			Usage: l10n.T("set the log level (error, warn, info, debug)"),
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "print",
			Usage:  l10n.T("Print the resolved configuration"),
			Flags:  flags.Flags(),
			Action: printAction,
		},
		{
			Name:      "explain",
			Usage:     l10n.T("Print the configuration in effect for one file"),
			ArgsUsage: "FILE",
			Flags:     flags.Flags(),
			Action:    explainAction,
		},
		{
			Name:  "init",
			Usage: l10n.T("Write a biome.json with the recommended settings"),
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "jsonc",
					Usage: l10n.T("write biome.jsonc instead of biome.json"),
				},
			},
			Action: initAction,
		},
	}
	app.Before = beforeAction
	return app
}

func beforeAction(c *cli.Context) error {
	level, err := log.ParseLevel(c.String(cliLogLevel))
	if err != nil {
		return cli.Exit(err, 1)
	}
	log.SetLevel(level)

	// The library logs through slog; mirror the level so --log-level=debug
	// shows the loader's decisions too.
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(strings.ToLower(c.String(cliLogLevel)))); err != nil {
		slogLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: slogLevel})))
	return nil
}

// load reads the configuration the way the toolchain would, with the
// command's flags as the highest precedence layer.
func load(c *cli.Context) (conf.Loaded, error) {
	partial, err := flags.Partial(c)
	if err != nil {
		return conf.Loaded{}, cli.Exit(err, 1)
	}

	var hint conf.PathHint = conf.NoHint{}
	if path := c.String(cliConfigPath); path != "" {
		hint = conf.UserHint{Path: path}
	}
	log.Debugf("loading configuration with hint %#v", hint)

	source := &conf.ConfigSource{Hint: hint, CLI: &partial}
	loaded, err := source.Read()
	if err != nil {
		return conf.Loaded{}, cli.Exit(err, 1)
	}
	if loaded.FilePath == "" {
		log.Infof("no configuration file found, using defaults")
	} else {
		log.Infof("using configuration file %v", loaded.FilePath)
	}
	return loaded, nil
}

func printAction(c *cli.Context) error {
	loaded, err := load(c)
	if err != nil {
		return err
	}
	return writeJSON(c.App.Writer, loaded.Configuration)
}

func explainAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("expected exactly one file, got %d", c.NArg()), 1)
	}
	loaded, err := load(c)
	if err != nil {
		return err
	}
	// ForFile takes relative paths as relative to the configuration
	// directory, the argument is relative to the working directory.
	file, err := filepath.Abs(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	config, err := loaded.ForFile(file)
	if err != nil {
		return cli.Exit(err, 1)
	}
	return writeJSON(c.App.Writer, config)
}

func initAction(c *cli.Context) error {
	dir := "."
	if path := c.String(cliConfigPath); path != "" {
		dir = path
	}
	name := conf.ConfigFileNames[0]
	if c.Bool("jsonc") {
		name = conf.ConfigFileNames[1]
	}
	candidates := conf.ConfigFileNames
	if ext := filepath.Ext(dir); ext == ".json" || ext == ".jsonc" {
		dir, name = filepath.Split(dir)
		candidates = []string{name}
	}
	target := filepath.Join(dir, name)

	for _, existing := range candidates {
		if _, err := os.Stat(filepath.Join(dir, existing)); err == nil {
			return cli.Exit(l10n.T("%v already exists", filepath.Join(dir, existing)), 1)
		} else if !errors.Is(err, os.ErrNotExist) {
			return cli.Exit(err, 1)
		}
	}

	data, err := json.MarshalIndent(conf.Init(), "", "  ")
	if err != nil {
		return cli.Exit(err, 1)
	}
	if err := os.WriteFile(target, append(data, '\n'), 0o644); err != nil {
		return cli.Exit(fmt.Errorf("cannot write %v: %w", target, err), 1)
	}
	log.Infof("created %v", target)
	fmt.Fprintln(c.App.Writer, l10n.T("Created %v", target))
	return nil
}

// writeJSON pretty prints v for humans and emits compact JSON otherwise.
func writeJSON(w io.Writer, v any) error {
	var (
		data []byte
		err  error
	)
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
