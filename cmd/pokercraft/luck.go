package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/behrlich/pokercraft-core/pkg/luck"
)

type luckReport struct {
	Samples  int        `json:"samples" yaml:"samples"`
	Expected float64    `json:"expected" yaml:"expected"`
	Observed float64    `json:"observed" yaml:"observed"`
	ZScore   float64    `json:"z_score" yaml:"z_score"`
	Tails    luck.Tails `json:"tails" yaml:"tails"`
}

func (r *luckReport) Header() []string {
	return []string{"Samples", "Expected", "Observed", "Z", "Upper", "Lower", "Two-sided"}
}

func (r *luckReport) Rows() [][]string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', 6, 64) }
	return [][]string{{
		strconv.Itoa(r.Samples),
		f(r.Expected),
		f(r.Observed),
		f(r.ZScore),
		f(r.Tails.Upper),
		f(r.Tails.Lower),
		f(r.Tails.TwoSided),
	}}
}

func newLuckCommand(a *app) *cobra.Command {
	var inline []string

	cmd := &cobra.Command{
		Use:   "luck [samples-file]",
		Short: "Score all-in outcomes against their equities",
		Long: `Reads (equity, outcome) samples and reports the z-score and the exact
Poisson-Binomial tail probabilities of the observed number of wins.

The samples file is YAML or JSON:
  - {equity: 0.3, outcome: 1}
  - {equity: 0.8, outcome: 0.5}

Samples may also be given inline with --sample equity:outcome.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}

			var samples []luck.Sample
			if len(args) == 1 {
				samples, err = readSamples(args[0])
				if err != nil {
					return err
				}
			}
			for _, s := range inline {
				sample, err := parseSample(s)
				if err != nil {
					return err
				}
				samples = append(samples, sample)
			}

			calc := luck.NewCalculator(luck.WithLogger(a.logger))
			if err := calc.AddSamples(samples); err != nil {
				return err
			}
			rep, err := buildLuckReport(calc)
			if err != nil {
				return err
			}
			return r.render(rep)
		},
	}

	cmd.Flags().StringArrayVar(&inline, "sample", nil, "inline sample equity:outcome (repeatable)")
	return cmd
}

func readSamples(path string) ([]luck.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read samples file")
	}
	var samples []luck.Sample
	if err := yaml.Unmarshal(data, &samples); err != nil {
		return nil, errors.Wrapf(err, "decode samples file %s", path)
	}
	return samples, nil
}

func parseSample(s string) (luck.Sample, error) {
	eqStr, outStr, ok := strings.Cut(s, ":")
	if !ok {
		return luck.Sample{}, errors.Errorf("sample %q must be equity:outcome", s)
	}
	eq, err := strconv.ParseFloat(strings.TrimSpace(eqStr), 64)
	if err != nil {
		return luck.Sample{}, errors.Wrapf(err, "sample %q equity", s)
	}
	out, err := strconv.ParseFloat(strings.TrimSpace(outStr), 64)
	if err != nil {
		return luck.Sample{}, errors.Wrapf(err, "sample %q outcome", s)
	}
	return luck.Sample{Equity: eq, Outcome: out}, nil
}

func buildLuckReport(calc *luck.Calculator) (*luckReport, error) {
	z, ok := calc.ZScore()
	if !ok {
		return nil, errors.New("no samples")
	}
	tails, _ := calc.Tails()
	return &luckReport{
		Samples:  calc.Len(),
		Expected: calc.Expected(),
		Observed: calc.Observed(),
		ZScore:   z,
		Tails:    tails,
	}, nil
}
