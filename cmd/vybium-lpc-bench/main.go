package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/vybium/vybium-lpc/pkg/vybium-lpc"
)

// sample is one point of the sweep
type sample struct {
	logSize  int
	proveMs  float64
	verifyMs float64
	proofKB  float64
	valid    bool
}

func main() {
	outPath := flag.String("out", "lpc_bench.html", "output HTML report")
	minLog := flag.Int("min-log", 8, "smallest log2 domain size")
	maxLog := flag.Int("max-log", 14, "largest log2 domain size")
	fieldName := flag.String("field", "goldilocks", "field: goldilocks|bn254")
	lambda := flag.Int("lambda", 20, "number of FRI queries")
	polys := flag.Int("polys", 4, "number of committed polynomials")
	flag.Parse()

	if *minLog < 3 || *maxLog < *minLog {
		log.Fatalf("invalid sweep range [%d, %d]", *minLog, *maxLog)
	}

	var samples []sample
	for logSize := *minLog; logSize <= *maxLog; logSize++ {
		config := sweepConfig(*fieldName, logSize, *lambda)

		var (
			s   sample
			err error
		)
		switch *fieldName {
		case "goldilocks":
			scheme, serr := vybiumlpc.NewGoldilocksScheme(config)
			if serr != nil {
				log.Fatalf("scheme: %v", serr)
			}
			s, err = measure(scheme, *polys)
		case "bn254":
			scheme, serr := vybiumlpc.NewBN254Scheme(config)
			if serr != nil {
				log.Fatalf("scheme: %v", serr)
			}
			s, err = measure(scheme, *polys)
		default:
			log.Fatalf("unsupported field %q", *fieldName)
		}
		if err != nil {
			log.Fatalf("log size %d: %v", logSize, err)
		}
		if !s.valid {
			log.Fatalf("log size %d: proof rejected", logSize)
		}
		log.Printf("[bench] |D0|=2^%d prove=%.1fms verify=%.1fms proof=%.1fKB",
			logSize, s.proveMs, s.verifyMs, s.proofKB)
		samples = append(samples, s)
	}

	page := components.NewPage()
	page.SetPageTitle("vybium-lpc benchmark")
	page.AddCharts(
		newLineChart("Timing ("+*fieldName+")", "ms", samples, map[string]func(sample) float64{
			"prove":  func(s sample) float64 { return s.proveMs },
			"verify": func(s sample) float64 { return s.verifyMs },
		}),
		newLineChart("Proof size ("+*fieldName+")", "KB", samples, map[string]func(sample) float64{
			"proof": func(s sample) float64 { return s.proofKB },
		}),
	)

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render html: %v", err)
	}
	log.Printf("[bench] report written to %s", *outPath)
}

// sweepConfig keeps rate 1/4 and folds down to a domain of 4
func sweepConfig(fieldName string, logSize, lambda int) *vybiumlpc.Config {
	steps := make([]int, logSize-2)
	for i := range steps {
		steps[i] = 1
	}
	return vybiumlpc.DefaultConfig().
		WithField(fieldName).
		WithLogDomainSize(logSize).
		WithMaxDegree((1<<logSize)/4 - 1).
		WithStepList(steps...).
		WithLambda(lambda)
}

func measure[E any](scheme *vybiumlpc.Scheme[E], count int) (sample, error) {
	f := scheme.Field()
	cfg := scheme.Config()

	polys := make([]*vybiumlpc.Polynomial[E], count)
	points := make([][]E, count)
	for i := range polys {
		coeffs := make([]E, cfg.MaxDegree+1)
		for j := range coeffs {
			c, err := vybiumlpc.RandomElement(f)
			if err != nil {
				return sample{}, err
			}
			coeffs[j] = c
		}
		polys[i] = vybiumlpc.NewPolynomial(f, coeffs)
		// Small integers never land on the coset 7·<ω>
		points[i] = []E{f.FromUint64(uint64(2 + i))}
	}

	start := time.Now()
	commitment, err := scheme.Commit(polys)
	if err != nil {
		return sample{}, fmt.Errorf("commit: %w", err)
	}
	proof, err := scheme.ProveEval(points, commitment, polys)
	if err != nil {
		return sample{}, fmt.Errorf("prove: %w", err)
	}
	proveTime := time.Since(start)

	start = time.Now()
	valid := scheme.VerifyEval(points, proof)
	verifyTime := time.Since(start)

	return sample{
		logSize:  cfg.LogDomainSize,
		proveMs:  float64(proveTime.Microseconds()) / 1000,
		verifyMs: float64(verifyTime.Microseconds()) / 1000,
		proofKB:  float64(proof.Size(f)) / 1024,
		valid:    valid,
	}, nil
}

func newLineChart(title, unit string, samples []sample, series map[string]func(sample) float64) *charts.Line {
	xs := make([]string, len(samples))
	for i, s := range samples {
		xs[i] = fmt.Sprintf("2^%d", s.logSize)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1000px", Height: "500px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "|D0|"}),
		charts.WithYAxisOpts(opts.YAxis{Name: unit}),
	)
	line.SetXAxis(xs)
	for _, name := range []string{"prove", "verify", "proof"} {
		value, ok := series[name]
		if !ok {
			continue
		}
		items := make([]opts.LineData, len(samples))
		for i, s := range samples {
			items[i] = opts.LineData{Value: value(s)}
		}
		line.AddSeries(name, items)
	}
	return line
}
