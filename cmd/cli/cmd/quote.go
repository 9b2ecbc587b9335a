package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"packaging-quote/adapters/request"
	"packaging-quote/core/engine"
	"packaging-quote/core/output"
	"packaging-quote/internal/config"
	"packaging-quote/internal/logging"
)

// maxParallelQuotes bounds concurrent pricing of a multi-block request file
const maxParallelQuotes = 4

var quoteFlags requestFlags

// quoteCmd prices one request from flags or every block of a request file
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a pouch or roll film order",
	Long: `Price one request given by flags, or every quote block of a request file.

Examples:
  packaging-quote quote --bag-type stand_up --width 120 --height 180 --quantity 5000 --option zipper
  packaging-quote quote --bag-type roll_film --width 300 --quantity 2000 --printing gravure --colors 4
  packaging-quote quote --file request.hcl --var quantity=3000 --format json`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	quoteFlags.register(quoteCmd.Flags())
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	formatter, err := output.NewRegistry().Get(output.Format(quoteFlags.outputFormat(cfg)))
	if err != nil {
		return err
	}
	requests, err := quoteFlags.requests(cfg)
	if err != nil {
		return err
	}

	reports, err := priceAll(cmd, newEngine(cfg), requests)
	if err != nil {
		return err
	}
	for i := range reports {
		reports[i].ShowBreakdown = quoteFlags.breakdown && cfg.Output.ShowBreakdown
	}
	return formatter.Render(cmd.OutOrStdout(), reports)
}

// priceAll prices requests concurrently and keeps their file order
func priceAll(cmd *cobra.Command, e *engine.Engine, requests []request.Request) ([]output.Report, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reports := make([]output.Report, len(requests))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelQuotes)

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			q, err := e.CalculatePrice(ctx, req.Params)
			if err != nil {
				return reportError(cmd, req.Label, err)
			}
			logging.Debug("priced request", logging.Label(req.Label), logging.Strategy(q.StrategyID), logging.Total(q.TotalPrice))
			reports[i] = output.Report{Label: req.Label, Request: req.Params, Quote: q}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
