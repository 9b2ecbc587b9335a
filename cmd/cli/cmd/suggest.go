package cmd

import (
	"github.com/spf13/cobra"

	"packaging-quote/core/economics"
	"packaging-quote/core/output"
	"packaging-quote/core/strategy"
	"packaging-quote/core/tables"
	"packaging-quote/internal/config"
)

var suggestFlags requestFlags

// suggestCmd quotes a request and adds film-economy advice
var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest an economic quantity and parallel production",
	Long: `Quote a request, then show the quantity the minimum film run yields
anyway and the side-by-side production options for its film width.

Examples:
  packaging-quote suggest --bag-type t_shape --width 100 --height 150 --quantity 4200
  packaging-quote suggest --bag-type roll_film --width 220 --quantity 1000`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

func init() {
	suggestFlags.register(suggestCmd.Flags())
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	formatter, err := output.NewRegistry().Get(output.Format(suggestFlags.outputFormat(cfg)))
	if err != nil {
		return err
	}
	requests, err := suggestFlags.requests(cfg)
	if err != nil {
		return err
	}

	reports, err := priceAll(cmd, newEngine(cfg), requests)
	if err != nil {
		return err
	}
	for i := range reports {
		if err := addAdvice(&reports[i]); err != nil {
			return err
		}
		reports[i].ShowBreakdown = suggestFlags.breakdown && cfg.Output.ShowBreakdown
	}
	return formatter.Render(cmd.OutOrStdout(), reports)
}

func addAdvice(r *output.Report) error {
	p, q := r.Request, r.Quote
	rollFilm := q.StrategyID == strategy.RollFilmID

	if !rollFilm {
		pitch := strategy.NewPouch().Pitch(p)
		s, err := economics.SuggestQuantity(q.Quantity, pitch.InexactFloat64(), q.TotalPrice)
		if err != nil {
			return err
		}
		r.Suggestion = &s
	}

	if width, ok := economics.FilmWidthMM(tables.CanonicalPouchType(p.BagTypeID), rollFilm, p.Width, p.Depth); ok {
		r.Parallel = economics.ParallelOptions(width, q.UnitPrice)
	}
	return nil
}
