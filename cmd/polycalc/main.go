// cmd/polycalc/main.go - stack calculator for multivariate polynomials
//
// Reads one polynomial or command per line from stdin, prints results to
// stdout and "ERROR <line> <reason>" diagnostics to stderr.
//
// Usage:
//
//	go run ./cmd/polycalc < input.txt
//	go run ./cmd/polycalc -config gopoly.yaml
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"

	"github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	prompt := flag.String("prompt", "", "Prompt shown in interactive mode (overrides calculator.prompt)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if *prompt != "" {
		cfg.Calculator.Prompt = *prompt
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg.Calculator, os.Stdin, os.Stdout, os.Stderr, isTerminal(os.Stdin)); err != nil {
		fmt.Fprintln(os.Stderr, "Error reading input:", err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func run(ctx context.Context, cfg config.Calculator, in io.Reader, out, diag io.Writer, tty bool) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	calc := gopoly.NewCalculator(w)
	defer calc.Stack().Clear()

	if interactive(cfg.Interactive, tty) {
		calc.Prompt = func() {
			fmt.Fprint(w, cfg.Prompt)
			w.Flush()
		}
	}
	return calc.Run(ctx, in, diagWriter{w: w, diag: diag})
}

func interactive(mode string, tty bool) bool {
	switch mode {
	case config.InteractiveAlways:
		return true
	case config.InteractiveNever:
		return false
	}
	return tty
}

// diagWriter flushes pending results before writing a diagnostic, so that
// stdout and stderr stay in input order on a shared terminal.
type diagWriter struct {
	w    *bufio.Writer
	diag io.Writer
}

func (d diagWriter) Write(p []byte) (int, error) {
	if err := d.w.Flush(); err != nil {
		return 0, err
	}
	return d.diag.Write(p)
}
