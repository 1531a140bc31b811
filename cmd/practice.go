package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/f1wiki/f1-wikitable/internal/model"
	"github.com/f1wiki/f1-wikitable/internal/scrape"
	"github.com/f1wiki/f1-wikitable/internal/wikitable"
)

var practiceCmd = &cobra.Command{
	Use:   "practice SEASON ROUND --fp1 URL [--fp2 URL] [--fp3 URL]",
	Short: "Print the free practice overview from results pages",
	Long: `Scrape one to three free practice classification pages and print a
combined overview. Drivers are matched against the round's entry list;
anybody on a results page but not on the entry list (reserve drivers in
FP1, for example) is appended at the bottom.`,
	Args: cobra.MatchAll(cobra.ExactArgs(2), roundArgs),
	RunE: runPractice,
}

// practiceSessions maps flag names to session names, in session order.
var practiceSessions = []struct{ flag, name string }{
	{"fp1", "FP1"},
	{"fp2", "FP2"},
	{"fp3", "FP3"},
}

func init() {
	f := practiceCmd.Flags()
	for _, s := range practiceSessions {
		f.String(s.flag, "", fmt.Sprintf("%s results page URL", s.name))
	}
	_ = practiceCmd.MarkFlagRequired("fp1")
	rootCmd.AddCommand(practiceCmd)
}

func runPractice(cmd *cobra.Command, args []string) error {
	ctx, stop := commandContext(cmd)
	defer stop()

	round, err := parseRound(args)
	if err != nil {
		return err
	}

	type page struct{ name, url string }
	var pages []page
	for _, s := range practiceSessions {
		u, _ := cmd.Flags().GetString(s.flag)
		if u == "" {
			continue
		}
		if err := scrape.ValidateURL(u); err != nil {
			return fmt.Errorf("--%s: %w", s.flag, err)
		}
		pages = append(pages, page{s.name, u})
	}

	a, err := newApp(cmd, cfg)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", cmd.Name()), zap.Stringer("round", round))

	roster, err := a.results.Drivers(ctx, round)
	if err != nil {
		return unavailable(cmd, err)
	}

	// Pages are independent; results keep session order.
	sessions := make([]model.PracticeSession, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range pages {
		g.Go(func() error {
			log.Info("scraping practice session", zap.String("session", p.name), zap.String("url", p.url))
			s, err := a.practice.Session(gctx, p.name, p.url)
			if err != nil {
				return err
			}
			sessions[i] = *s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return unavailable(cmd, err)
	}

	in := wikitable.PracticeInput{
		Race:     model.Race{Season: round.Season, Round: round.Number},
		Roster:   roster,
		Sessions: sessions,
	}

	if a.preview != nil {
		if err := a.preview.Practice(in.Sessions); err != nil {
			return err
		}
	}

	if err := a.format.Practice(a.out, in); err != nil {
		return formatFailed(cmd, err)
	}
	log.Info("wrote practice overview", zap.Int("sessions", len(in.Sessions)), zap.Int("roster", len(roster)))
	return nil
}
