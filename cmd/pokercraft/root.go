package main

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/behrlich/pokercraft-core/pkg/logging"
)

const envPrefix = "POKERCRAFT"

// Config keys shared by every subcommand
const (
	keyConfig   = "config"
	keyWorkers  = "workers"
	keySeed     = "seed"
	keyLogLevel = "log-level"
	keyOutput   = "output"
)

// app carries configuration and the logger into subcommands
type app struct {
	v      *viper.Viper
	logger zerolog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New(), logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "pokercraft",
		Short: "Poker equity, bankroll and luck calculations",
		Long: `pokercraft evaluates all-in equities exactly, simulates bankroll survival
and scores how lucky a series of all-ins was.

Examples:
  # Flop equity, three players
  pokercraft equity "AcKc/6h7h/TsTh|9dTdJd"

  # One hand against a range on the turn
  pokercraft equity --vs-range "QQ+,AKs" "AhAd|Kh9s4c7d"

  # Bankroll simulation
  pokercraft bankroll --capital 100 --returns -1,-1,3 --trials 10000

  # Luck score of recorded all-ins
  pokercraft luck allins.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String(keyConfig, "", "YAML config file")
	pf.Int(keyWorkers, 0, "worker goroutines (0 = GOMAXPROCS)")
	pf.Uint64(keySeed, 0, "random seed for simulations (0 = random)")
	pf.String(keyLogLevel, "warn", "log level (trace, debug, info, warn, error, disabled)")
	pf.StringP(keyOutput, "o", "table", "output format (table, json, yaml)")

	root.AddCommand(
		newEquityCommand(a),
		newBankrollCommand(a),
		newLuckCommand(a),
		newHUCacheCommand(a),
	)
	return root
}

// init binds flags, env and config file into viper and builds the logger
func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := a.v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = errors.Wrapf(err, "bind flag %s", f.Name)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	if path := a.v.GetString(keyConfig); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", path)
		}
	}

	level, err := logging.ParseLevel(a.v.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	logger := logging.GetZeroLogger("pokercraft", cmd.ErrOrStderr()).
		Level(level).
		With().
		Str(logging.RunIDKey, uuid.NewString()).
		Str(logging.CommandKey, cmd.Name()).
		Logger()
	a.logger = logger

	a.logger.Debug().
		Str("config", a.v.ConfigFileUsed()).
		Int(logging.WorkersKey, a.v.GetInt(keyWorkers)).
		Msg("configuration loaded")
	return nil
}

func (a *app) workers() int { return a.v.GetInt(keyWorkers) }

// seed returns the configured seed and whether one was set
func (a *app) seed() (uint64, bool) {
	s := a.v.GetUint64(keySeed)
	return s, s != 0
}

func (a *app) renderer(cmd *cobra.Command) (*renderer, error) {
	return newRenderer(cmd.OutOrStdout(), a.v.GetString(keyOutput))
}
