package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"accrete-server/internal/report"

	"github.com/BurntSushi/toml"
)

// runConfig is the settled configuration for one run.
type runConfig struct {
	Seed       int64
	SeedSet    bool
	MaxBodies  int
	Moons      bool
	Format     report.Format
	File       string
	ConfigPath string
	Verbose    bool
}

func defaultRunConfig() runConfig {
	return runConfig{
		Format: report.FormatText,
		File:   "New.System",
	}
}

// fileConfig maps accrete.toml keys.
type fileConfig struct {
	Seed      int64  `toml:"seed"`
	MaxBodies int    `toml:"max_bodies"`
	Moons     bool   `toml:"moons"`
	Format    string `toml:"format"`
	File      string `toml:"file"`
	Verbose   bool   `toml:"verbose"`
}

// parseArgs resolves defaults, then the TOML file named by -config, then the
// flags given on the command line, each layer overriding only what it sets.
func parseArgs(args []string, stderr io.Writer) (runConfig, error) {
	fs := flag.NewFlagSet("accrete", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		seed    = fs.Int64("seed", 0, "seed for the system generation (random when omitted)")
		count   = fs.Int("count", 0, "maximum number of bodies per disk, 0 for no limit")
		moons   = fs.Bool("moons", false, "generate moons around every planet")
		format  = fs.String("format", string(report.FormatText), "report format: text, json or yaml")
		file    = fs.String("file", "New.System", `output file, "-" for stdout`)
		cfgPath = fs.String("config", "", "optional TOML file with defaults for the flags above")
		verbose = fs.Bool("v", false, "print generation progress to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return runConfig{}, err
	}
	if fs.NArg() > 0 {
		return runConfig{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := defaultRunConfig()
	cfg.ConfigPath = strings.TrimSpace(*cfgPath)
	if cfg.ConfigPath != "" {
		if err := overlayFile(&cfg, cfg.ConfigPath); err != nil {
			return runConfig{}, err
		}
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["seed"] {
		cfg.Seed, cfg.SeedSet = *seed, true
	}
	if set["count"] {
		cfg.MaxBodies = *count
	}
	if set["moons"] {
		cfg.Moons = *moons
	}
	if set["format"] {
		f, err := report.ParseFormat(*format)
		if err != nil {
			return runConfig{}, err
		}
		cfg.Format = f
	}
	if set["file"] {
		cfg.File = *file
	}
	if set["v"] {
		cfg.Verbose = *verbose
	}

	if cfg.MaxBodies < 0 {
		return runConfig{}, fmt.Errorf("count must not be negative, got %d", cfg.MaxBodies)
	}
	if strings.TrimSpace(cfg.File) == "" {
		return runConfig{}, fmt.Errorf("file must not be empty")
	}
	return cfg, nil
}

func overlayFile(cfg *runConfig, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load accrete config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load accrete config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("seed") {
		cfg.Seed, cfg.SeedSet = raw.Seed, true
	}
	if meta.IsDefined("max_bodies") {
		cfg.MaxBodies = raw.MaxBodies
	}
	if meta.IsDefined("moons") {
		cfg.Moons = raw.Moons
	}
	if meta.IsDefined("format") {
		f, err := report.ParseFormat(raw.Format)
		if err != nil {
			return fmt.Errorf("load accrete config: %w", err)
		}
		cfg.Format = f
	}
	if meta.IsDefined("file") {
		cfg.File = strings.TrimSpace(raw.File)
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}
	return nil
}
