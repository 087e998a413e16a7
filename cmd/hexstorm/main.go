// Package main is the entry point for the hexstorm viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/hexstorm/internal/app"
	"github.com/dshills/hexstorm/internal/config"
	"github.com/dshills/hexstorm/internal/engine/source"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// cliOptions are the parsed command line flags.
type cliOptions struct {
	configPath string
	dump       bool
	offset     int64
	path       string

	// overrides maps config paths to flag values the user set explicitly.
	overrides map[string]any
}

func run() int {
	cli := parseFlags()

	cfg, err := config.Load(cli.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	for path, v := range cli.overrides {
		if err := cfg.Set(path, v); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	edOpts, err := cfg.HexviewOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config:\n%v\n", err)
		return 1
	}

	logCfg := cfg.Logging()
	logger, logCloser, err := app.OpenLogFile(logCfg.File, logCfg.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logCloser.Close()

	opts := app.Options{
		Path:   cli.path,
		Editor: edOpts,
		Offset: cli.offset,
		Watch:  cfg.Watch().Enabled,
		Logger: logger,
	}
	if cli.path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading stdin: %v\n", err)
			return 1
		}
		opts.Path = ""
		opts.Source = source.NewMemorySource(data)
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if cli.dump || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := application.Dump(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() cliOptions {
	var (
		cli         cliOptions
		showVersion bool
		showHelp    bool
		cols, rows  int
		charset     string
		logFile     string
		logLevel    string
		noWatch     bool
	)

	flag.StringVar(&cli.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&cli.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&cli.dump, "dump", false, "Print the first page as text and exit")
	flag.Int64Var(&cli.offset, "offset", 0, "Start with the caret at this address (decimal or 0x hex)")
	flag.IntVar(&cols, "cols", 0, "Bytes per row")
	flag.IntVar(&rows, "rows", 0, "Rows per page")
	flag.StringVar(&charset, "charset", "", "Text column charset (latin1, cp437, cp1252, ascii)")
	flag.StringVar(&logFile, "log", "", "Write logs to this file")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&noWatch, "no-watch", false, "Do not reload when the file changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "hexstorm - terminal hex viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: hexstorm [options] FILE\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  arrows, Home/End, PgUp/PgDn  move the caret (Shift extends the selection)\n")
		fmt.Fprintf(os.Stderr, "  Enter                        tag the selection\n")
		fmt.Fprintf(os.Stderr, "  + / -                        shift the numeric readout by one bit\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+R                       reload the file\n")
		fmt.Fprintf(os.Stderr, "  q, Esc, Ctrl+C               quit\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  hexstorm firmware.bin\n")
		fmt.Fprintf(os.Stderr, "  hexstorm -offset 0x400 -cols 8 disk.img\n")
		fmt.Fprintf(os.Stderr, "  head -c 256 /dev/urandom | hexstorm -\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("hexstorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	cli.path = flag.Arg(0)

	// Only flags given on the command line override the config file.
	cli.overrides = make(map[string]any)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cols":
			cli.overrides["grid.cols"] = cols
		case "rows":
			cli.overrides["grid.rows"] = rows
		case "charset":
			cli.overrides["text.charset"] = charset
		case "log":
			cli.overrides["logging.file"] = logFile
		case "log-level":
			cli.overrides["logging.level"] = logLevel
		case "no-watch":
			cli.overrides["watch.enabled"] = !noWatch
		}
	})

	return cli
}
