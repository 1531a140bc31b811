package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/f1wiki/f1-wikitable/internal/config"
)

var cfg *config.Config

var previewFlag bool

var rootCmd = &cobra.Command{
	Use:   "f1wiki",
	Short: "Generate Formula One Wiki result tables",
	Long: `  __ _          _ _    _
 / _/ |_ __ _(_) | _(_)
|  _| \ V  V / | |/ / |
|_| |_|\_/\_/|_|_|\_\_|

Fetches session results from the Ergast API (or scrapes practice pages)
and prints them as wiki markup ready to paste into a race article.

Examples:
  # Qualifying table for the latest round
  f1wiki quali

  # Race result for the 2023 Monaco Grand Prix
  f1wiki race 2023 6

  # Championship standings after round 5, with a console preview
  f1wiki standings 2024 5 --preview

  # Practice overview from the formula1.com result pages
  f1wiki practice 2024 5 --fp1 URL --fp2 URL --fp3 URL`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		zap.ReplaceGlobals(zap.L().With(zap.String("run_id", uuid.NewString())))

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&previewFlag, "preview", false, "print a console table of the fetched records to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
