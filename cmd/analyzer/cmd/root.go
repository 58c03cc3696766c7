// Package cmd implements the analyzer CLI.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resumia/statement-analyzer/internal/config"
	"github.com/resumia/statement-analyzer/pkg/logger"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
	commit  = "unknown"
	date    = "unknown"

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "Banco Galicia statement parser and spending analyzer",
	Long: `Analyzer parses Banco Galicia account statement PDFs into structured
transactions and derives spending insights: category breakdown,
subscriptions, tax burden, transfer counterparties and alerts.

Examples:
  analyzer parse extracto.pdf
  analyzer parse extracto.pdf --format csv --output movimientos.csv
  analyzer parse dic.pdf ene.pdf --analyze
  analyzer serve --port 8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		if verbose {
			cfg.Log.Level = "debug"
		}
		l, err := logger.New(cfg.Log)
		if err != nil {
			return err
		}
		logger.SetGlobal(l)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.WithError(err).Error("command failed")
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Version = getVersionString()
}

// SetVersionInfo sets the build information shown by --version.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = getVersionString()
}

func getVersionString() string {
	if version == "dev" {
		return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	}
	return version
}
