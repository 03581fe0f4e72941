// Command xxformat hashes strings, line files, CSV or JSON rows with an
// xxHash variant and renders every record through output templates.
//
//	xxformat [algorithm] [strings...] [flags]
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/byte4ever/xxformat/config"
	"github.com/byte4ever/xxformat/digester"
	"github.com/byte4ever/xxformat/generator"
)

// options mirrors config.Config for flag parsing.
type options struct {
	configPath string
	logLevel   string
	algorithm  string
	seed       uint64
	read       string
	write      string
	input      string
	output     string
	template   string
	spacing    string
}

func newFlagSet(opts *options, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("xxformat", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(
		&opts.configPath, "config", "c", "",
		"YAML or JSON config file",
	)

	fs.StringVar(
		&opts.logLevel, "log-level", "warn",
		"log level: debug, info, warn, error",
	)

	fs.StringVarP(
		&opts.algorithm, "algorithm", "a", digester.DefaultName,
		"hash algorithm (a leading positional name wins)",
	)

	fs.Uint64Var(
		&opts.seed, "seed", 0,
		"hash seed",
	)

	fs.StringVarP(
		&opts.read, "read", "r", "",
		"source file: .csv, .json, or one string per line",
	)

	fs.StringVarP(
		&opts.write, "write", "w", "",
		"output file (default: stdout)",
	)

	fs.StringVarP(
		&opts.input, "input", "i", "",
		"hash input template; a bare name means {name}",
	)

	fs.StringVarP(
		&opts.output, "output", "o", "",
		"per-record template, {#name} quotes, {name=x} defaults",
	)

	fs.StringVarP(
		&opts.template, "template", "t", config.DefaultOverallTemplate,
		"overall template wrapping {records}",
	)

	fs.StringVarP(
		&opts.spacing, "spacing", "s", config.DefaultSpacing,
		"separator between records",
	)

	fs.Usage = func() {
		fmt.Fprintf(
			stderr,
			"usage: xxformat [algorithm] [strings...] [flags]\n\n"+
				"algorithms: %s\n\nflags:\n",
			strings.Join(digester.Names(), " "),
		)
		fs.PrintDefaults()
	}

	return fs
}

// buildConfig layers defaults, the config file and the
// flags that were set explicitly.
func buildConfig(
	fs *pflag.FlagSet,
	opts options,
) (config.Config, error) {
	const errCtx = "building config"

	cfg := config.Default()

	if opts.configPath != "" {
		if err := config.LoadFile(opts.configPath, &cfg); err != nil {
			return config.Config{}, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	if fs.Changed("algorithm") {
		cfg.Algorithm = opts.algorithm
	}

	if fs.Changed("seed") {
		cfg.Seed = opts.seed
	}

	if fs.Changed("read") {
		cfg.ReadPath = opts.read
	}

	if fs.Changed("write") {
		cfg.WritePath = opts.write
	}

	if fs.Changed("input") {
		cfg.InputTemplate = opts.input
	}

	if fs.Changed("output") {
		cfg.OutputTemplate = opts.output
	}

	if fs.Changed("template") {
		cfg.OverallTemplate = config.Unescape(opts.template)
	}

	if fs.Changed("spacing") {
		cfg.Spacing = config.Unescape(opts.spacing)
	}

	algo, strs := config.SplitAlgorithm(fs.Args())
	if algo != "" {
		cfg.Algorithm = algo
	}

	if len(strs) > 0 {
		cfg.Strings = strs
	}

	return cfg, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func run(
	args []string,
	stdout io.Writer,
	stderr io.Writer,
) error {
	const errCtx = "xxformat"

	var opts options

	fs := newFlagSet(&opts, stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		stderr,
		&slog.HandlerOptions{Level: parseLevel(opts.logLevel)},
	)))

	cfg, err := buildConfig(fs, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := generator.Run(cfg, stdout); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
