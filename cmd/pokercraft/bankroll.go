package main

import (
	"os"
	"slices"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/behrlich/pokercraft-core/pkg/bankroll"
)

type bankrollReport struct {
	Trials         int     `json:"trials" yaml:"trials"`
	BankruptcyRate float64 `json:"bankruptcy_rate" yaml:"bankruptcy_rate"`
	SurvivalRate   float64 `json:"survival_rate" yaml:"survival_rate"`
	ProfitableRate float64 `json:"profitable_rate" yaml:"profitable_rate"`
	// MedianRuinIteration is the median iteration of ruin among ruined trials
	MedianRuinIteration int `json:"median_ruin_iteration,omitempty" yaml:"median_ruin_iteration,omitempty"`
}

func (r *bankrollReport) Header() []string {
	return []string{"Trials", "Bankrupt", "Survived", "Profitable", "Median ruin"}
}

func (r *bankrollReport) Rows() [][]string {
	ruin := "-"
	if r.MedianRuinIteration > 0 {
		ruin = strconv.Itoa(r.MedianRuinIteration)
	}
	return [][]string{{
		strconv.Itoa(r.Trials),
		formatPct(r.BankruptcyRate),
		formatPct(r.SurvivalRate),
		formatPct(r.ProfitableRate),
		ruin,
	}}
}

func newBankrollCommand(a *app) *cobra.Command {
	var (
		p           bankroll.Params
		returnsFile string
	)

	cmd := &cobra.Command{
		Use:   "bankroll",
		Short: "Monte Carlo risk of ruin over an empirical return distribution",
		Long: `Replays randomly drawn results (with replacement) from a list of
per-session returns until the bankroll is lost, reaches the profit exit,
or the iteration limit runs out.

Returns come from --returns or from a YAML/JSON list in --returns-file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			if returnsFile != "" {
				fromFile, err := readReturns(returnsFile)
				if err != nil {
					return err
				}
				p.Returns = append(p.Returns, fromFile...)
			}

			opts := []bankroll.Option{
				bankroll.WithWorkers(a.workers()),
				bankroll.WithLogger(a.logger),
			}
			if seed, ok := a.seed(); ok {
				opts = append(opts, bankroll.WithSeed(seed))
			}

			m, err := bankroll.Run(cmd.Context(), p, opts...)
			if err != nil {
				return err
			}
			return r.render(buildBankrollReport(m))
		},
	}

	f := cmd.Flags()
	f.Float64Var(&p.InitialCapital, "capital", 100, "initial bankroll")
	f.Float64SliceVar(&p.Returns, "returns", nil, "per-session returns, e.g. -1,-1,3")
	f.StringVar(&returnsFile, "returns-file", "", "YAML or JSON list of returns")
	f.IntVar(&p.MaxIterations, "max-iterations", 10000, "sessions per trial")
	f.Float64Var(&p.ProfitExitMultiplier, "exit-multiplier", 0, "stop a trial at this multiple of the initial bankroll (<1 disables)")
	f.IntVar(&p.Trials, "trials", 10000, "number of simulated bankrolls")
	return cmd
}

func readReturns(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read returns file")
	}
	var returns []float64
	if err := yaml.Unmarshal(data, &returns); err != nil {
		return nil, errors.Wrapf(err, "decode returns file %s", path)
	}
	return returns, nil
}

func buildBankrollReport(m *bankroll.Metric) *bankrollReport {
	rep := &bankrollReport{
		Trials:         m.Len(),
		BankruptcyRate: m.BankruptcyRate(),
		SurvivalRate:   m.SurvivalRate(),
		ProfitableRate: m.ProfitableRate(),
	}

	var ruined []int
	for _, o := range m.Results() {
		if o.BankruptAt > 0 {
			ruined = append(ruined, o.BankruptAt)
		}
	}
	if len(ruined) > 0 {
		rep.MedianRuinIteration = median(ruined)
	}
	return rep
}

// median returns the lower median of xs; xs is reordered
func median(xs []int) int {
	slices.Sort(xs)
	return xs[(len(xs)-1)/2]
}
