// tagframe reads and rewrites the ID3v2 tag of an MP3 file as a list of
// records, each a 4-tuple [kind, id, payload, removalFlag].
//
// Two subcommands:
//
// load prints the records of one or more files. With several files the
// output is a sequence of arrays, one per file, in argument order.
//
// update applies edit records read from a file (or stdin) to one file
// and prints the records of the resulting tag.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/simonhull/tagframe"
	"github.com/simonhull/tagframe/internal/config"
	"github.com/simonhull/tagframe/internal/wire"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// usageError marks errors caused by bad arguments.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// settings is the merged result of config file and flags.
type settings struct {
	cfg    *config.Config
	format wire.Format
	logger *slog.Logger
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flagSet := pflag.NewFlagSet("tagframe", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	configPath := flagSet.String("config", "", "path to YAML config file (default: $"+config.EnvVar+")")
	flagSet.String("format", "", "wire format of records: json or cbor")
	flagSet.String("backup", "", "keep a copy of the original file with this suffix")
	flagSet.Bool("validate", false, "re-read the file after writing and compare tags")
	flagSet.Bool("preserve-mtime", false, "keep the original modification time")
	flagSet.Int("padding", 0, "zero bytes reserved after the last frame")
	flagSet.String("log-level", "", "minimum log level: debug, info, warn or error")
	showVersion := flagSet.Bool("version", false, "print version information")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stdout, flagSet)
			return exitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stdout, flagSet)
		return exitOK
	}
	if *showVersion {
		info := tagframe.GetVersionInfo()
		fmt.Fprintf(stdout, "tagframe %s (commit %s, built %s, %s, writes ID3v2.%d)\n",
			info.Version, info.GitCommit, info.BuildTime, info.GoVersion, info.TagVersion)
		return exitOK
	}

	s, err := loadSettings(*configPath, flagSet, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	err = dispatch(flagSet.Args(), s, stdin, stdout)
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "error: %v\n", err)
	var ue *usageError
	if errors.As(err, &ue) {
		printUsage(stderr)
		return exitUsage
	}
	return exitError
}

// loadSettings reads the config file and applies any flags set on the
// command line over it.
func loadSettings(path string, flagSet *pflag.FlagSet, stderr io.Writer) (*settings, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flagSet.Changed("format") {
		cfg.Output.Format, _ = flagSet.GetString("format")
	}
	if flagSet.Changed("backup") {
		cfg.Write.Backup, _ = flagSet.GetString("backup")
	}
	if flagSet.Changed("validate") {
		cfg.Write.Validate, _ = flagSet.GetBool("validate")
	}
	if flagSet.Changed("preserve-mtime") {
		cfg.Write.PreserveModTime, _ = flagSet.GetBool("preserve-mtime")
	}
	if flagSet.Changed("padding") {
		cfg.Write.Padding, _ = flagSet.GetInt("padding")
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level, _ = flagSet.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	format, err := wire.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(stderr, handlerOpts)
	}

	return &settings{cfg: cfg, format: format, logger: slog.New(handler)}, nil
}

// writeOptions converts the write section into library options.
func (s *settings) writeOptions() []tagframe.Option {
	opts := []tagframe.Option{
		tagframe.WithLogger(s.logger),
		tagframe.WithPadding(s.cfg.Write.Padding),
	}
	if s.cfg.Write.Backup != "" {
		opts = append(opts, tagframe.WithBackup(s.cfg.Write.Backup))
	}
	if s.cfg.Write.Validate {
		opts = append(opts, tagframe.WithValidation())
	}
	if s.cfg.Write.PreserveModTime {
		opts = append(opts, tagframe.WithPreserveModTime())
	}
	return opts
}

func dispatch(args []string, s *settings, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return usagef("missing subcommand")
	}

	switch args[0] {
	case "load":
		return runLoad(args[1:], s, stdout)
	case "update":
		return runUpdate(args[1:], s, stdin, stdout)
	default:
		return usagef("unknown subcommand %q", args[0])
	}
}

func runLoad(paths []string, s *settings, stdout io.Writer) error {
	if len(paths) == 0 {
		return usagef("load: missing file path")
	}

	if len(paths) == 1 {
		records, err := tagframe.LoadTag(paths[0], tagframe.WithLogger(s.logger))
		if err != nil {
			return err
		}
		return wire.Encode(stdout, s.format, records)
	}

	results, err := tagframe.LoadMany(context.Background(), paths, tagframe.WithLogger(s.logger))
	if err != nil {
		return err
	}
	for _, records := range results {
		if err := wire.Encode(stdout, s.format, records); err != nil {
			return err
		}
	}
	return nil
}

func runUpdate(args []string, s *settings, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return usagef("update: missing file path")
	}
	if len(args) > 2 {
		return usagef("update: unexpected argument %q", args[2])
	}

	var (
		data []byte
		err  error
	)
	if len(args) == 1 || args[1] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[1])
	}
	if err != nil {
		return fmt.Errorf("reading edits: %w", err)
	}

	edits, err := wire.Decode(data, s.format)
	if err != nil {
		return fmt.Errorf("decoding edits: %w", err)
	}

	records, err := tagframe.UpdateTag(args[0], edits, s.writeOptions()...)
	if err != nil {
		return err
	}
	return wire.Encode(stdout, s.format, records)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: tagframe [flags] load <file>...")
	fmt.Fprintln(w, "       tagframe [flags] update <file> [edits-file|-]")
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `tagframe reads and rewrites ID3v2 tags as [kind, id, payload, removalFlag] records.

Usage:
  tagframe [flags] load <file>...
  tagframe [flags] update <file> [edits-file|-]

Examples:
  # Print the tag of a file as JSON
  tagframe load song.mp3

  # Replace the title and drop every comment
  echo '[["text","TIT2","New Title",false],["comment","COMM",null,true]]' | tagframe update song.mp3

  # Keep a backup and verify the result
  tagframe --backup .orig --validate update song.mp3 edits.json

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
