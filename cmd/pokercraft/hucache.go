package main

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/behrlich/pokercraft-core/pkg/equity"
	"github.com/behrlich/pokercraft-core/pkg/notation"
)

type cacheEntryReport struct {
	Hero    string  `json:"hero" yaml:"hero"`
	Villain string  `json:"villain" yaml:"villain"`
	Win     uint64  `json:"win" yaml:"win"`
	Lose    uint64  `json:"lose" yaml:"lose"`
	Tie     uint64  `json:"tie" yaml:"tie"`
	Equity  float64 `json:"equity" yaml:"equity"`
}

func (r *cacheEntryReport) Header() []string {
	return []string{"Hero", "Villain", "Win", "Lose", "Tie", "Equity"}
}

func (r *cacheEntryReport) Rows() [][]string {
	return [][]string{{
		r.Hero,
		r.Villain,
		strconv.FormatUint(r.Win, 10),
		strconv.FormatUint(r.Lose, 10),
		strconv.FormatUint(r.Tie, 10),
		formatPct(r.Equity),
	}}
}

type cacheBuildReport struct {
	File    string `json:"file" yaml:"file"`
	Pairs   int    `json:"pairs" yaml:"pairs"`
	Entries int    `json:"entries" yaml:"entries"`
}

func (r *cacheBuildReport) Header() []string {
	return []string{"File", "Pairs", "Entries"}
}

func (r *cacheBuildReport) Rows() [][]string {
	return [][]string{{r.File, strconv.Itoa(r.Pairs), strconv.Itoa(r.Entries)}}
}

func newHUCacheCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "hucache",
		Short: "Heads-up preflop equity cache",
	}
	cmd.PersistentFlags().StringVar(&file, "file", "hu_preflop_cache.txt.gz", "cache file")

	cmd.AddCommand(newHUCacheBuildCommand(a, &file), newHUCacheQueryCommand(a, &file))
	return cmd
}

func (a *app) openCache(path string, mustExist bool) (*equity.HUPreflopCache, error) {
	cache := equity.NewHUPreflopCache(equity.WithWorkers(a.workers()), equity.WithLogger(a.logger))
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !mustExist {
			return cache, nil
		}
		return nil, errors.Wrapf(err, "cache file %s", path)
	}
	if err := cache.LoadFile(path); err != nil {
		return nil, err
	}
	return cache, nil
}

func newHUCacheBuildCommand(a *app, file *string) *cobra.Command {
	var hero, villain string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compute missing heads-up pairs and save them",
		Long: `Every pair of non-overlapping hands from --hero and --villain is
enumerated over all 1,712,304 boards unless it is already cached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			heroRange, err := notation.ParseRange(hero)
			if err != nil {
				return errors.Wrap(err, "--hero")
			}
			villainRange, err := notation.ParseRange(villain)
			if err != nil {
				return errors.Wrap(err, "--villain")
			}

			cache, err := a.openCache(*file, false)
			if err != nil {
				return err
			}

			pairs := equity.Pairs(heroRange, villainRange)
			var progress func(int)
			if !quiet {
				bar := progressbar.NewOptions(len(pairs),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("pairs"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
				defer bar.Finish()
				progress = func(done int) { _ = bar.Set(done) }
			}

			if err := cache.Build(cmd.Context(), pairs, progress); err != nil {
				return err
			}
			if err := cache.SaveFile(*file); err != nil {
				return err
			}
			return r.render(&cacheBuildReport{File: *file, Pairs: len(pairs), Entries: cache.Len()})
		},
	}

	cmd.Flags().StringVar(&hero, "hero", "", "hero range, e.g. \"AA,AKs\"")
	cmd.Flags().StringVar(&villain, "villain", "", "villain range")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	_ = cmd.MarkFlagRequired("hero")
	_ = cmd.MarkFlagRequired("villain")
	return cmd
}

func newHUCacheQueryCommand(a *app, file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "query <hero> <villain>",
		Short: "Look up a cached heads-up pair, e.g. query AsAd KsKd",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			hero, err := notation.ParseCombo(args[0])
			if err != nil {
				return err
			}
			villain, err := notation.ParseCombo(args[1])
			if err != nil {
				return err
			}

			cache, err := a.openCache(*file, true)
			if err != nil {
				return err
			}
			wl, ok := cache.Get(hero, villain)
			if !ok {
				return errors.Errorf("%s vs %s is not cached in %s", hero, villain, *file)
			}
			return r.render(&cacheEntryReport{
				Hero:    hero.String(),
				Villain: villain.String(),
				Win:     wl.Win,
				Lose:    wl.Lose,
				Tie:     wl.Tie,
				Equity:  wl.Equity(),
			})
		},
	}
}
