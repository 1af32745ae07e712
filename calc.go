package gopoly

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ============================================================
// Calculator - line-driven stack machine
// ============================================================

// Errors reported for a single input line. They are wrapped in a *LineError
// by Calculator.Exec.
var (
	ErrWrongCommand          = errors.New("WRONG COMMAND")
	ErrWrongPoly             = errors.New("WRONG POLY")
	ErrStackUnderflow        = errors.New("STACK UNDERFLOW")
	ErrDegByWrongVariable    = errors.New("DEG BY WRONG VARIABLE")
	ErrAtWrongValue          = errors.New("AT WRONG VALUE")
	ErrComposeWrongParameter = errors.New("COMPOSE WRONG PARAMETER")
)

// LineError ties an error to the 1-based number of the input line that
// caused it. Its message is the calculator diagnostic, e.g.
// "ERROR 3 STACK UNDERFLOW".
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("ERROR %d %s", e.Line, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

// Calculator executes polynomial and command lines against a Stack and
// writes command results to an output writer. It is not safe for concurrent
// use.
type Calculator struct {
	// Prompt, when set, is called by Run before every line is read.
	Prompt func()

	stack Stack
	out   io.Writer
	line  int
}

func NewCalculator(out io.Writer) *Calculator {
	return &Calculator{out: out}
}

func (c *Calculator) Stack() *Stack { return &c.stack }

// Line is the number of lines executed so far.
func (c *Calculator) Line() int { return c.line }

// SetOutput redirects command results.
func (c *Calculator) SetOutput(w io.Writer) { c.out = w }

// Run executes r line by line until EOF. Per-line errors are written to diag
// and do not stop the run; read errors and ctx cancellation do.
func (c *Calculator) Run(ctx context.Context, r io.Reader, diag io.Writer) error {
	br := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.Prompt != nil {
			c.Prompt()
		}
		line, err := br.ReadString('\n')
		if line != "" {
			if lerr := c.Exec(line); lerr != nil {
				fmt.Fprintln(diag, lerr)
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Exec executes one input line. A trailing newline is optional. Empty lines
// and lines starting with '#' are ignored. The returned error, if any, is a
// *LineError and the stack is left as it was.
func (c *Calculator) Exec(line string) error {
	c.line++
	if err := c.exec(line); err != nil {
		return &LineError{Line: c.line, Err: err}
	}
	return nil
}

func (c *Calculator) exec(line string) error {
	if line == "" || line[0] == '#' {
		return nil
	}
	if nul := strings.IndexByte(line, 0); nul >= 0 {
		if isLetter(line[0]) {
			return c.command(line, nul)
		}
		return ErrWrongPoly
	}
	line = strings.TrimSuffix(line, "\n")
	if line == "" {
		return nil
	}
	if isLetter(line[0]) {
		return c.command(line, len(line))
	}
	p, err := Parse(line)
	if err != nil {
		return ErrWrongPoly
	}
	c.stack.Push(p)
	return nil
}

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

// ============================================================
// Command table
// ============================================================

var commands = map[string]func(*Calculator) error{
	"ZERO":     (*Calculator).zero,
	"IS_COEFF": (*Calculator).isCoeff,
	"IS_ZERO":  (*Calculator).isZero,
	"CLONE":    (*Calculator).clone,
	"ADD":      (*Calculator).add,
	"MUL":      (*Calculator).mul,
	"NEG":      (*Calculator).neg,
	"SUB":      (*Calculator).sub,
	"IS_EQ":    (*Calculator).isEq,
	"DEG":      (*Calculator).deg,
	"PRINT":    (*Calculator).print,
	"POP":      (*Calculator).pop,
}

// argCommand is a command followed by one space and a numeric argument.
// badArg is reported when the argument is missing or malformed.
type argCommand struct {
	name   string
	badArg error
	run    func(c *Calculator, arg string) error
}

// Order matters: names are matched as prefixes.
var argCommands = []argCommand{
	{"DEG_BY", ErrDegByWrongVariable, func(c *Calculator, arg string) error {
		idx, ok := parseUnsigned(arg)
		if !ok {
			return ErrDegByWrongVariable
		}
		return c.degBy(idx)
	}},
	{"COMPOSE", ErrComposeWrongParameter, func(c *Calculator, arg string) error {
		k, ok := parseUnsigned(arg)
		if !ok {
			return ErrComposeWrongParameter
		}
		return c.compose(k)
	}},
	{"AT", ErrAtWrongValue, func(c *Calculator, arg string) error {
		x, ok := parseSigned(arg)
		if !ok {
			return ErrAtWrongValue
		}
		return c.at(x)
	}},
}

// command dispatches a line starting with a letter. visible is the length of
// the line up to its first NUL byte, if any.
func (c *Calculator) command(line string, visible int) error {
	for _, ac := range argCommands {
		if !strings.HasPrefix(line, ac.name) {
			continue
		}
		n := len(ac.name)
		if len(line) > n && line[n] != ' ' {
			return ErrWrongCommand
		}
		if len(line) < n+2 || len(line) != visible {
			return ac.badArg
		}
		return ac.run(c, line[n+1:])
	}
	if visible != len(line) {
		return ErrWrongCommand
	}
	if cmd, ok := commands[line]; ok {
		return cmd(c)
	}
	return ErrWrongCommand
}

// parseUnsigned accepts decimal digits only.
func parseUnsigned(s string) (uint64, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	return v, err == nil
}

// parseSigned accepts an optional leading '-' followed by decimal digits.
func parseSigned(s string) (int64, bool) {
	if strings.HasPrefix(s, "+") {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

// ============================================================
// Commands
// ============================================================

func (c *Calculator) printBool(b bool) {
	if b {
		fmt.Fprintln(c.out, "1")
	} else {
		fmt.Fprintln(c.out, "0")
	}
}

func (c *Calculator) zero() error {
	c.stack.Push(Zero())
	return nil
}

func (c *Calculator) isCoeff() error {
	top, ok := c.stack.Top()
	if !ok {
		return ErrStackUnderflow
	}
	c.printBool(top.IsCoeff())
	return nil
}

func (c *Calculator) isZero() error {
	top, ok := c.stack.Top()
	if !ok {
		return ErrStackUnderflow
	}
	c.printBool(top.IsZero())
	return nil
}

func (c *Calculator) clone() error {
	top, ok := c.stack.Top()
	if !ok {
		return ErrStackUnderflow
	}
	c.stack.Push(top.Clone())
	return nil
}

// binary pops the top two polynomials and pushes f(top, second).
func (c *Calculator) binary(f func(top, second Poly) Poly) error {
	if c.stack.Underflow(2) {
		return ErrStackUnderflow
	}
	top, _ := c.stack.Pop()
	second, _ := c.stack.Pop()
	c.stack.Push(f(top, second))
	return nil
}

func (c *Calculator) add() error { return c.binary(Poly.Add) }
func (c *Calculator) mul() error { return c.binary(Poly.Mul) }
func (c *Calculator) sub() error { return c.binary(Poly.Sub) }

func (c *Calculator) neg() error {
	top, ok := c.stack.Pop()
	if !ok {
		return ErrStackUnderflow
	}
	c.stack.Push(top.Neg())
	return nil
}

func (c *Calculator) isEq() error {
	if c.stack.Underflow(2) {
		return ErrStackUnderflow
	}
	top, _ := c.stack.Top()
	second, _ := c.stack.PrevTop()
	c.printBool(top.Equal(second))
	return nil
}

func (c *Calculator) deg() error {
	top, ok := c.stack.Top()
	if !ok {
		return ErrStackUnderflow
	}
	fmt.Fprintln(c.out, top.Deg())
	return nil
}

func (c *Calculator) degBy(idx uint64) error {
	top, ok := c.stack.Top()
	if !ok {
		return ErrStackUnderflow
	}
	fmt.Fprintln(c.out, top.DegBy(idx))
	return nil
}

func (c *Calculator) at(x int64) error {
	top, ok := c.stack.Pop()
	if !ok {
		return ErrStackUnderflow
	}
	c.stack.Push(top.At(x))
	return nil
}

func (c *Calculator) print() error {
	top, ok := c.stack.Top()
	if !ok {
		return ErrStackUnderflow
	}
	fmt.Fprintln(c.out, top.String())
	return nil
}

func (c *Calculator) pop() error {
	if _, ok := c.stack.Pop(); !ok {
		return ErrStackUnderflow
	}
	return nil
}

// compose pops the target polynomial and then k substitutes; the substitute
// pushed first goes in for x_0.
func (c *Calculator) compose(k uint64) error {
	if uint64(c.stack.Len()) <= k {
		return ErrStackUnderflow
	}
	p, _ := c.stack.Pop()
	q := make([]Poly, k)
	for i := len(q) - 1; i >= 0; i-- {
		q[i], _ = c.stack.Pop()
	}
	c.stack.Push(p.Compose(q))
	return nil
}
