// Package cmd provides the CLI commands for packaging-quote.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"packaging-quote/internal/config"
	"packaging-quote/internal/logging"
)

// Version is stamped at build time with -ldflags
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "packaging-quote",
	Short: "Price flexible packaging orders",
	Long: `packaging-quote prices pouches and roll film.

It turns a product specification into an itemized quote with unit price,
cost breakdown, lead time and validity window. Results are deterministic.

Examples:
  packaging-quote quote --bag-type stand_up --width 120 --height 180 --quantity 5000
  packaging-quote quote --file request.hcl --var quantity=3000 --format json
  packaging-quote suggest --bag-type t_shape --width 100 --height 150 --quantity 1000
  packaging-quote families`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.packaging-quote.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(familiesCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "packaging-quote version %s\n", Version)
	},
}
