package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/f1wiki/f1-wikitable/internal/ergast"
	"github.com/f1wiki/f1-wikitable/internal/wikitable"
)

var standingsCmd = &cobra.Command{
	Use:   "standings [SEASON ROUND]",
	Short: "Print the championship standings after a round",
	Long: `Print the drivers' and constructors' standings after a round, with
the position change against the round before. Only point scorers are listed.`,
	Args: roundArgs,
	RunE: runStandings,
}

func init() {
	rootCmd.AddCommand(standingsCmd)
}

func runStandings(cmd *cobra.Command, args []string) error {
	ctx, stop := commandContext(cmd)
	defer stop()

	round, err := parseRound(args)
	if err != nil {
		return err
	}
	a, err := newApp(cmd, cfg)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", cmd.Name()), zap.Stringer("round", round))

	var in wikitable.StandingsInput
	in.Drivers, err = a.results.DriverStandings(ctx, round)
	if err != nil {
		return unavailable(cmd, err)
	}
	in.Constructors, err = a.results.ConstructorStandings(ctx, round)
	switch {
	case err == nil:
	case isMissing(err):
		// No constructors' championship before 1958.
		log.Warn("constructor standings unavailable", zap.Error(err))
		in.Constructors = nil
	default:
		return unavailable(cmd, err)
	}

	// The response names the round even when the latest one was requested.
	resolved := ergast.Round{Season: in.Drivers.Season, Number: in.Drivers.Round}
	if prev, ok := resolved.Previous(); ok {
		if in.PreviousDrivers, err = a.results.DriverStandings(ctx, prev); err != nil {
			log.Warn("previous driver standings unavailable", zap.Stringer("previous", prev), zap.Error(err))
			in.PreviousDrivers = nil
		}
		if in.Constructors != nil {
			if in.PreviousConstructors, err = a.results.ConstructorStandings(ctx, prev); err != nil {
				log.Warn("previous constructor standings unavailable", zap.Stringer("previous", prev), zap.Error(err))
				in.PreviousConstructors = nil
			}
		}
	}

	if a.preview != nil {
		if err := a.preview.DriverStandings(in.Drivers); err != nil {
			return err
		}
		if in.Constructors != nil {
			if err := a.preview.ConstructorStandings(in.Constructors); err != nil {
				return err
			}
		}
	}

	if err := a.format.Standings(a.out, in); err != nil {
		return formatFailed(cmd, err)
	}
	log.Info("wrote standings", zap.Int("drivers", len(in.Drivers.Rows)))
	return nil
}
