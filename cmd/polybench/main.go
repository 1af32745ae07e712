// cmd/polybench/main.go - timing sweep for powers and composition
//
// Raises a dense polynomial in -vars variables to growing exponents with
// binary exponentiation and with repeated multiplication, composes it with
// itself, prints a table and writes an HTML line chart.
//
// Usage:
//
//	go run ./cmd/polybench -max-exp 32 -vars 2 -out polybench.html
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/njchilds90/gopoly"
)

type sample struct {
	exp       int32
	fastMS    float64
	naiveMS   float64
	composeMS float64
	terms     int
}

func main() {
	maxExp := flag.Int("max-exp", 24, "Largest exponent to measure")
	step := flag.Int("step", 2, "Exponent step")
	vars := flag.Int("vars", 2, "Number of variables in the base polynomial")
	out := flag.String("out", "polybench.html", "Output HTML file (empty to skip the chart)")
	flag.Parse()

	if *maxExp < 1 || *step < 1 || *vars < 1 {
		fmt.Fprintln(os.Stderr, "max-exp, step and vars must be positive")
		os.Exit(2)
	}

	base := basePoly(*vars)
	var samples []sample
	for e := 1; e <= *maxExp; e += *step {
		samples = append(samples, measure(base, int32(e), *vars))
	}
	printTable(os.Stdout, samples)

	if *out == "" {
		return
	}
	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create output:", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := renderChart(f, samples, *vars); err != nil {
		fmt.Fprintln(os.Stderr, "render chart:", err)
		os.Exit(1)
	}
	fmt.Printf("chart written to %s\n", *out)
}

// basePoly is 1 + x_0 + x_1 + ... + x_{n-1}.
func basePoly(n int) gopoly.Poly {
	p := gopoly.One()
	for i := 0; i < n; i++ {
		p = p.Add(gopoly.Var(i))
	}
	return p
}

func naivePow(p gopoly.Poly, n int32) gopoly.Poly {
	acc := gopoly.One()
	for i := int32(0); i < n; i++ {
		acc = acc.Mul(p)
	}
	return acc
}

func measure(base gopoly.Poly, e int32, vars int) sample {
	s := sample{exp: e}

	start := time.Now()
	fast := base.Pow(e)
	s.fastMS = ms(time.Since(start))

	start = time.Now()
	naive := naivePow(base, e)
	s.naiveMS = ms(time.Since(start))

	if !fast.Equal(naive) {
		panic(fmt.Sprintf("polybench: Pow(%d) disagrees with repeated Mul", e))
	}
	s.terms = countTerms(fast)

	// x_0^e composed with base in every variable: same value, via the
	// compose power cache.
	target := gopoly.OwnMonos([]gopoly.Mono{gopoly.NewMono(gopoly.One(), e)})
	subs := make([]gopoly.Poly, vars)
	for i := range subs {
		subs[i] = base
	}
	start = time.Now()
	composed := target.Compose(subs)
	s.composeMS = ms(time.Since(start))
	if !composed.Equal(fast) {
		panic(fmt.Sprintf("polybench: Compose disagrees with Pow at %d", e))
	}
	return s
}

func ms(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }

// countTerms is the number of scalar leaves, i.e. monomials over all variables.
func countTerms(p gopoly.Poly) int {
	if p.IsCoeff() {
		if p.IsZero() {
			return 0
		}
		return 1
	}
	n := 0
	for _, m := range p.Monos() {
		n += countTerms(m.Poly())
	}
	return n
}

func printTable(w io.Writer, samples []sample) {
	fmt.Fprintln(w, "Exp | Terms  | Pow (ms) | Naive (ms) | Compose (ms)")
	for _, s := range samples {
		fmt.Fprintf(w, "%3d | %6d | %8.3f | %10.3f | %12.3f\n", s.exp, s.terms, s.fastMS, s.naiveMS, s.composeMS)
	}
}

func renderChart(w io.Writer, samples []sample, vars int) error {
	page := components.NewPage().SetPageTitle("gopoly power sweep")

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Polynomial power timings",
			Subtitle: fmt.Sprintf("(1 + x_0 + ... + x_%d)^e", vars-1),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "exponent"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms"}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{Show: opts.Bool(true)},
			},
		}),
	)

	xs := make([]string, len(samples))
	fast := make([]opts.LineData, len(samples))
	naive := make([]opts.LineData, len(samples))
	composed := make([]opts.LineData, len(samples))
	for i, s := range samples {
		xs[i] = fmt.Sprint(s.exp)
		fast[i] = opts.LineData{Value: s.fastMS}
		naive[i] = opts.LineData{Value: s.naiveMS}
		composed[i] = opts.LineData{Value: s.composeMS}
	}
	line.SetXAxis(xs).
		AddSeries("Pow (binary)", fast).
		AddSeries("repeated Mul", naive).
		AddSeries("Compose", composed)

	page.AddCharts(line)
	return page.Render(w)
}
