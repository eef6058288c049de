package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/behrlich/pokercraft-core/pkg/cards"
	"github.com/behrlich/pokercraft-core/pkg/equity"
	"github.com/behrlich/pokercraft-core/pkg/notation"
)

type equityPlayer struct {
	Hand   string   `json:"hand" yaml:"hand"`
	Equity float64  `json:"equity" yaml:"equity"`
	Wins   []uint64 `json:"wins" yaml:"wins"`
	Loses  uint64   `json:"loses" yaml:"loses"`
	Best   string   `json:"best,omitempty" yaml:"best,omitempty"`
}

type equityReport struct {
	Board   string         `json:"board" yaml:"board"`
	Street  string         `json:"street" yaml:"street"`
	RunOuts uint64         `json:"runouts" yaml:"runouts"`
	Players []equityPlayer `json:"players" yaml:"players"`
}

func (r *equityReport) Header() []string {
	return []string{"Hand", "Equity", "Win", "Tie", "Lose", "Made hand"}
}

func (r *equityReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Players))
	for _, p := range r.Players {
		var ties uint64
		for _, w := range p.Wins[1:] {
			ties += w
		}
		rows = append(rows, []string{
			p.Hand,
			formatPct(p.Equity),
			strconv.FormatUint(p.Wins[0], 10),
			strconv.FormatUint(ties, 10),
			strconv.FormatUint(p.Loses, 10),
			p.Best,
		})
	}
	return rows
}

type rangeReport struct {
	Hero    string  `json:"hero" yaml:"hero"`
	Range   string  `json:"range" yaml:"range"`
	Board   string  `json:"board" yaml:"board"`
	Combos  int     `json:"combos" yaml:"combos"`
	RunOuts uint64  `json:"runouts" yaml:"runouts"`
	Win     float64 `json:"win" yaml:"win"`
	Tie     float64 `json:"tie" yaml:"tie"`
	Equity  float64 `json:"equity" yaml:"equity"`
}

func (r *rangeReport) Header() []string {
	return []string{"Hero", "Range", "Combos", "Win", "Tie", "Equity"}
}

func (r *rangeReport) Rows() [][]string {
	return [][]string{{
		r.Hero,
		r.Range,
		strconv.Itoa(r.Combos),
		formatPct(r.Win),
		formatPct(r.Tie),
		formatPct(r.Equity),
	}}
}

func boardString(board []cards.Card) string {
	if len(board) == 0 {
		return "-"
	}
	var sb strings.Builder
	for _, c := range board {
		sb.WriteString(c.String())
	}
	return sb.String()
}

func newEquityCommand(a *app) *cobra.Command {
	var vsRange string

	cmd := &cobra.Command{
		Use:   "equity <hands|board>",
		Short: "Exact all-in equity by enumerating every board",
		Long: `Computes exact equities for two or more known hands.

The matchup is written as hands separated by '/', optionally followed by
'|' and the board: "AsAd/KsKd", "AcKc/6h7h/TsTh|9dTdJd".

With --vs-range the matchup holds a single hand, which is run against
every combo of the range.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			m, err := notation.ParseMatchup(args[0])
			if err != nil {
				return err
			}
			opts := []equity.Option{equity.WithWorkers(a.workers()), equity.WithLogger(a.logger)}

			if vsRange != "" {
				rep, err := runRangeEquity(cmd, m, vsRange, opts)
				if err != nil {
					return err
				}
				return r.render(rep)
			}

			res, err := equity.ComputeContext(cmd.Context(), m.Players, m.Board, opts...)
			if err != nil {
				return err
			}
			rep, err := buildEquityReport(m, res)
			if err != nil {
				return err
			}
			return r.render(rep)
		},
	}

	cmd.Flags().StringVar(&vsRange, "vs-range", "", "opponent range, e.g. \"QQ+,AKs\"")
	return cmd
}

func buildEquityReport(m *notation.Matchup, res *equity.Result) (*equityReport, error) {
	rep := &equityReport{
		Board:   boardString(m.Board),
		Street:  m.Street.String(),
		RunOuts: res.RunOuts(),
	}
	for i, p := range m.Players {
		eq, err := res.Equity(i)
		if err != nil {
			return nil, err
		}
		wins, loses, err := res.WinLosses(i)
		if err != nil {
			return nil, err
		}

		player := equityPlayer{Hand: p.String(), Equity: eq, Wins: wins, Loses: loses}
		if len(m.Board) == 5 {
			var seven [7]cards.Card
			copy(seven[:], m.Board)
			seven[5], seven[6] = p.Card1, p.Card2
			player.Best = cards.BestOf7(seven).String()
		}
		rep.Players = append(rep.Players, player)
	}
	return rep, nil
}

func runRangeEquity(cmd *cobra.Command, m *notation.Matchup, vsRange string, opts []equity.Option) (*rangeReport, error) {
	if len(m.Players) != 1 {
		return nil, errors.Errorf("--vs-range needs exactly one hand, got %d", len(m.Players))
	}
	villain, err := notation.ParseRange(vsRange)
	if err != nil {
		return nil, err
	}

	res, err := equity.NewCalculator(opts...).CalculateEquity(cmd.Context(), m.Players[0], m.Board, villain)
	if err != nil {
		return nil, errors.Wrapf(err, "%s vs %s", m.Players[0], vsRange)
	}
	return &rangeReport{
		Hero:    m.Players[0].String(),
		Range:   vsRange,
		Board:   boardString(m.Board),
		Combos:  res.Combos,
		RunOuts: res.RunOuts,
		Win:     res.WinPct,
		Tie:     res.TiePct,
		Equity:  res.Equity,
	}, nil
}
