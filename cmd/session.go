package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/f1wiki/f1-wikitable/internal/model"
)

var gridCmd = &cobra.Command{
	Use:   "grid [SEASON ROUND]",
	Short: "Print the starting grid template from qualifying",
	Args:  roundArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQualifying(cmd, args, true)
	},
}

var qualiCmd = &cobra.Command{
	Use:   "quali [SEASON ROUND]",
	Short: "Print the qualifying results table",
	Args:  roundArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQualifying(cmd, args, false)
	},
}

var raceCmd = &cobra.Command{
	Use:   "race [SEASON ROUND]",
	Short: "Print the race results table",
	Args:  roundArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRace(cmd, args, model.SessionRace)
	},
}

var sprintCmd = &cobra.Command{
	Use:   "sprint [SEASON ROUND]",
	Short: "Print the sprint results table",
	Args:  roundArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRace(cmd, args, model.SessionSprint)
	},
}

func init() {
	rootCmd.AddCommand(gridCmd, qualiCmd, raceCmd, sprintCmd)
}

func runQualifying(cmd *cobra.Command, args []string, grid bool) error {
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
	log.Info("fetching qualifying")

	q, err := a.results.Qualifying(ctx, round)
	if err != nil {
		return unavailable(cmd, err)
	}
	if a.preview != nil {
		if err := a.preview.Qualifying(q); err != nil {
			return err
		}
	}

	if grid {
		err = a.format.Grid(a.out, q)
	} else {
		err = a.format.Qualifying(a.out, q)
	}
	if err != nil {
		return formatFailed(cmd, err)
	}
	log.Info("wrote table", zap.Int("rows", len(q.Rows)))
	return nil
}

func runRace(cmd *cobra.Command, args []string, kind model.SessionKind) error {
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
	log.Info("fetching results")

	fetch := a.results.Results
	if kind == model.SessionSprint {
		fetch = a.results.Sprint
	}
	res, err := fetch(ctx, round)
	if err != nil {
		return unavailable(cmd, err)
	}
	if a.preview != nil {
		if err := a.preview.Race(res); err != nil {
			return err
		}
	}

	if err := a.format.Race(a.out, res); err != nil {
		return formatFailed(cmd, err)
	}
	log.Info("wrote table", zap.Int("rows", len(res.Rows)))
	return nil
}
