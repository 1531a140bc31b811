package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/f1wiki/f1-wikitable/internal/config"
	"github.com/f1wiki/f1-wikitable/internal/ergast"
	"github.com/f1wiki/f1-wikitable/internal/fetcher"
	"github.com/f1wiki/f1-wikitable/internal/model"
	"github.com/f1wiki/f1-wikitable/internal/preview"
	"github.com/f1wiki/f1-wikitable/internal/refdata"
	"github.com/f1wiki/f1-wikitable/internal/resilience"
	"github.com/f1wiki/f1-wikitable/internal/scrape"
	"github.com/f1wiki/f1-wikitable/internal/wikitable"
)

// firstSeason is the first world championship season.
const firstSeason = 1950

const noDataNotice = "No data available."

// resultsProvider is the subset of the Ergast client the commands use.
type resultsProvider interface {
	Qualifying(ctx context.Context, r ergast.Round) (*model.Qualifying, error)
	Results(ctx context.Context, r ergast.Round) (*model.RaceResult, error)
	Sprint(ctx context.Context, r ergast.Round) (*model.RaceResult, error)
	DriverStandings(ctx context.Context, r ergast.Round) (*model.Standings[model.DriverStanding], error)
	ConstructorStandings(ctx context.Context, r ergast.Round) (*model.Standings[model.ConstructorStanding], error)
	Drivers(ctx context.Context, r ergast.Round) ([]model.Driver, error)
}

type practiceSource interface {
	Session(ctx context.Context, name, url string) (*model.PracticeSession, error)
}

// app bundles the collaborators a command needs.
type app struct {
	results  resultsProvider
	practice practiceSource
	format   *wikitable.Formatter
	preview  *preview.Preview // nil unless --preview
	out      io.Writer
}

// newApp is swapped out in tests.
var newApp = buildApp

func buildApp(cmd *cobra.Command, cfg *config.Config) (*app, error) {
	tables, err := refdata.Load(cfg.Refdata.Path)
	if err != nil {
		return nil, err
	}

	apiFetcher := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    cfg.Scrape.UserAgent,
		Accept:       "application/json",
		Timeout:      time.Duration(cfg.Ergast.TimeoutSecs) * time.Second,
		Retry:        retryConfig(cfg.Ergast.MaxAttempts),
		RateLimiters: rateLimiters(cfg.Ergast),
	})
	pageFetcher := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    cfg.Scrape.UserAgent,
		Timeout:      time.Duration(cfg.Scrape.TimeoutSecs) * time.Second,
		RateLimiters: fetcher.DefaultRateLimiters(),
	})

	a := &app{
		results:  ergast.NewClient(apiFetcher, ergast.WithBaseURL(cfg.Ergast.BaseURL)),
		practice: scrape.NewPracticeScraper(pageFetcher),
		format: wikitable.New(tables, wikitable.WithCitations(wikitable.Citations{
			QualifyingURL: cfg.Citation.QualifyingURL,
			PracticeURL:   cfg.Citation.PracticeURL,
		})),
		out: cmd.OutOrStdout(),
	}
	if previewFlag {
		a.preview = preview.New(cmd.ErrOrStderr())
	}
	return a, nil
}

func retryConfig(attempts int) resilience.RetryConfig {
	rc := resilience.DefaultRetryConfig()
	rc.MaxAttempts = attempts
	return rc
}

// rateLimiters returns the default per-host limits with the configured
// results API host overridden.
func rateLimiters(c config.ErgastConfig) map[string]*rate.Limiter {
	limiters := fetcher.DefaultRateLimiters()
	if u, err := url.Parse(c.BaseURL); err == nil && u.Host != "" {
		burst := max(1, int(math.Ceil(c.RatePerSec)))
		limiters[u.Host] = rate.NewLimiter(rate.Limit(c.RatePerSec), burst)
	}
	return limiters
}

// parseRound reads the optional SEASON ROUND pair. No arguments selects
// the latest round.
func parseRound(args []string) (ergast.Round, error) {
	switch len(args) {
	case 0:
		return ergast.Latest(), nil
	case 2:
	default:
		return ergast.Round{}, eris.Errorf("expected SEASON ROUND or no arguments, got %d argument(s)", len(args))
	}

	season, err := strconv.Atoi(args[0])
	if err != nil || season < firstSeason {
		return ergast.Round{}, eris.Errorf("invalid season %q", args[0])
	}
	round, err := strconv.Atoi(args[1])
	if err != nil || round < 1 {
		return ergast.Round{}, eris.Errorf("invalid round %q", args[1])
	}
	return ergast.Round{Season: season, Number: round}, nil
}

// roundArgs validates positional arguments before any network access.
func roundArgs(cmd *cobra.Command, args []string) error {
	_, err := parseRound(args)
	return err
}

// commandContext cancels on SIGINT/SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// unavailable reports a data-unavailable failure: a one-line notice on
// stderr and a non-zero exit, without cobra's usage text.
func unavailable(cmd *cobra.Command, err error) error {
	zap.L().Warn("no data available",
		zap.String("command", cmd.Name()),
		zap.Error(err),
	)
	fmt.Fprintln(cmd.ErrOrStderr(), noDataNotice) //nolint:errcheck
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return err
}

// formatFailed treats an empty record set as unavailable data; any other
// formatter error is returned as is.
func formatFailed(cmd *cobra.Command, err error) error {
	if errors.Is(err, wikitable.ErrNoData) {
		return unavailable(cmd, err)
	}
	return err
}

// isMissing reports whether err means the provider has no such record.
func isMissing(err error) bool {
	var se *resilience.StatusError
	return errors.Is(err, ergast.ErrEmptyList) || (errors.As(err, &se) && se.StatusCode == 404)
}
