package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/oarkflow/log"

	"github.com/zephyrtronium/formulas"
)

// session reads lines from a reader and runs each as a program, until EOF or
// a line reading exit.
type session struct {
	interp *formulas.Interpreter
	in     io.Reader
	out    io.Writer
	errw   io.Writer
	prompt string
	format string
	echo   bool
	errc   *color.Color
	log    *log.Logger
}

// run loops until the input ends. Errors in lines are reported to errw and do
// not end the session; the result is only an error reading the input.
func (s *session) run() error {
	r := bufio.NewReader(s.in)
	lines, fails := 0, 0
	defer func() {
		s.log.Debug().Int("lines", lines).Int("failed", fails).Msg("session ended")
	}()
	for {
		fmt.Fprint(s.out, s.prompt)
		line, err := r.ReadString('\n')
		if line == "" && err != nil {
			if s.prompt != "" {
				fmt.Fprintln(s.out)
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		switch line {
		case "exit":
			return nil
		case "":
			continue
		}
		lines++
		if err := s.exec(line); err != nil {
			fails++
			s.report(err)
		}
	}
}

// exec runs one line and prints its results.
func (s *session) exec(line string) error {
	prog, err := formulas.ParseString(line)
	if err != nil {
		return err
	}
	if s.echo {
		pretty.Fprintf(s.errw, "%# v\n", prog)
	}
	return s.interp.Interpret(prog, func(v float64) {
		fmt.Fprintln(s.out, formatResult(v, s.format))
	})
}

func (s *session) report(err error) {
	s.log.Debug().Err(err).Msg("line failed")
	s.errc.Fprintf(s.errw, "error: %v\n", err)
}

// formatResult formats a result with a fmt verb, or in the shortest decimal
// form without an exponent if verb is empty.
func formatResult(v float64, verb string) string {
	if verb != "" {
		return fmt.Sprintf(verb, v)
	}
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
