package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/njchilds90/gopoly/internal/config"
)

func runCalc(t *testing.T, cfg config.Calculator, input string, tty bool) (string, string) {
	t.Helper()
	var out, diag bytes.Buffer
	if err := run(context.Background(), cfg, strings.NewReader(input), &out, &diag, tty); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.String(), diag.String()
}

func TestRun_Scenario(t *testing.T) {
	input := "(1,0)+(1,2)\n(2,0)\nADD\nPRINT\nDEG\nAT 3\nIS_COEFF\nPRINT\n"
	out, diag := runCalc(t, config.Default().Calculator, input, false)
	if want := "(3,0)+(1,2)\n2\n1\n12\n"; out != want {
		t.Errorf("want stdout %q, got %q", want, out)
	}
	if diag != "" {
		t.Errorf("want no diagnostics, got %q", diag)
	}
}

func TestRun_Diagnostics(t *testing.T) {
	input := "ADD\n# comment\n\nFOO\n(1,2\nAT x\nDEG_BY -1\nCOMPOSE 1\n"
	_, diag := runCalc(t, config.Default().Calculator, input, false)
	want := "ERROR 1 STACK UNDERFLOW\n" +
		"ERROR 4 WRONG COMMAND\n" +
		"ERROR 5 WRONG POLY\n" +
		"ERROR 6 AT WRONG VALUE\n" +
		"ERROR 7 DEG BY WRONG VARIABLE\n" +
		"ERROR 8 STACK UNDERFLOW\n"
	if diag != want {
		t.Errorf("want diagnostics\n%s\ngot\n%s", want, diag)
	}
}

func TestRun_PromptOnlyWhenInteractive(t *testing.T) {
	cfg := config.Calculator{Prompt: "> ", Interactive: config.InteractiveAuto}
	out, _ := runCalc(t, cfg, "ZERO\nPRINT\n", true)
	if !strings.HasPrefix(out, "> ") {
		t.Errorf("terminal input should get a prompt, got %q", out)
	}
	out, _ = runCalc(t, cfg, "ZERO\nPRINT\n", false)
	if strings.Contains(out, ">") {
		t.Errorf("piped input should not get a prompt, got %q", out)
	}
	cfg.Interactive = config.InteractiveAlways
	out, _ = runCalc(t, cfg, "ZERO\n", false)
	if !strings.Contains(out, "> ") {
		t.Errorf("interactive=always should prompt, got %q", out)
	}
}
