// Command accrete generates one planetary system and writes its report.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	"accrete-server/internal/accrete"
	"accrete-server/internal/report"
	"accrete-server/internal/shared/config"
	"accrete-server/internal/shared/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "accrete: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	level := "warn"
	if cfg.Verbose {
		level = "debug"
	}
	log := logger.New(stderr, config.LoggingConfig{Level: level})

	if !cfg.SeedSet {
		cfg.Seed = rand.Int64()
	}

	opts := accrete.Options{MaxBodies: cfg.MaxBodies, IncludeMoons: cfg.Moons}
	if cfg.Verbose {
		opts.Notify = func(msg string) { log.Debug(msg) }
	}

	sys, err := accrete.Generate(cfg.Seed, opts)
	if err != nil {
		return err
	}
	log.Info("System generated", "seed", sys.Seed, "bodies", len(sys.Bodies))

	return writeReport(cfg, sys, stdout, log)
}

func writeReport(cfg runConfig, sys *accrete.System, stdout io.Writer, log *slog.Logger) error {
	if cfg.File == "-" {
		return report.Write(stdout, sys, cfg.Format)
	}

	f, err := os.Create(cfg.File)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := report.Write(w, sys, cfg.Format); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write report file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}

	log.Info("Report written", "file", cfg.File, "format", cfg.Format)
	return nil
}
