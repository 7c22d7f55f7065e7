package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/oarkflow/log"

	"github.com/zephyrtronium/formulas"
)

const usage = `usage: formulas [-c config] [-p prompt] [-f verb] [-d depth] [-Bnev] [program...]

Reads lines of statements and prints the value of each expression. With
program arguments, runs each one and exits instead of reading input.

  -c file   YAML configuration file
  -p text   prompt (default "> ")
  -f verb   fmt verb for results (default shortest decimal)
  -d n      maximum call depth, 0 for none (default 10000)
  -B        disable built-in functions
  -n        disable colour
  -e        print each parsed program
  -v        verbose logging
  -h        show this help
`

func main() {
	os.Exit(realMain(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// realMain runs the command and returns its exit status.
func realMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := &log.Logger{
		Level:  log.InfoLevel,
		Writer: &log.IOWriter{Writer: stderr},
	}
	opts, optind, err := getopt.Getopts(args, "c:p:f:d:Bnevh")
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, usage)
		return 2
	}
	var cfgpath string
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			cfgpath = opt.Value
		case 'v':
			logger.Level = log.DebugLevel
		case 'h':
			fmt.Fprint(stdout, usage)
			return 0
		}
	}
	cfg, err := loadConfig(cfgpath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfgpath).Msg("failed to load config")
		return 1
	}
	if cfgpath != "" {
		logger.Debug().Str("path", cfgpath).Msg("loaded config")
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'p':
			cfg.Prompt = opt.Value
		case 'f':
			cfg.Format = opt.Value
		case 'd':
			n, err := strconv.Atoi(opt.Value)
			if err != nil || n < 0 {
				logger.Error().Str("value", opt.Value).Msg("-d parameter must be a non-negative integer")
				return 2
			}
			cfg.MaxDepth = n
		case 'B':
			cfg.Builtins = false
		case 'n':
			cfg.Color = false
		case 'e':
			cfg.Echo = true
		}
	}

	iopts := []formulas.Option{
		formulas.MaxDepth(cfg.MaxDepth),
		formulas.WithLogger(logger),
	}
	if cfg.Builtins {
		iopts = append(iopts, formulas.WithBuiltins())
	}
	interp := formulas.NewInterpreter(iopts...)
	for i, line := range cfg.Prelude {
		if err := interp.Exec(line, nil); err != nil {
			logger.Error().Err(err).Int("line", i+1).Str("source", line).Msg("prelude failed")
			return 1
		}
	}
	logger.Debug().Int("prelude", len(cfg.Prelude)).Int("functions", len(interp.Functions())).Msg("session starting")

	errc := color.New(color.FgRed)
	if !cfg.Color {
		errc.DisableColor()
	}
	s := session{
		interp: interp,
		in:     stdin,
		out:    stdout,
		errw:   stderr,
		prompt: cfg.Prompt,
		format: cfg.Format,
		echo:   cfg.Echo,
		errc:   errc,
		log:    logger,
	}

	if progs := args[optind:]; len(progs) > 0 {
		// Programs from arguments run without prompting. Any failure is the
		// exit status.
		status := 0
		for _, src := range progs {
			if err := s.exec(src); err != nil {
				s.report(err)
				status = 1
			}
		}
		return status
	}
	if err := s.run(); err != nil {
		logger.Error().Err(err).Msg("reading input")
		return 1
	}
	return 0
}
