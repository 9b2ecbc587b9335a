package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"packaging-quote/core/economics"
	"packaging-quote/core/types"
)

const (
	boxTop    = "┌─────────────────────────────────────────────────────────────────────────┐"
	boxMiddle = "├─────────────────────────────────────────────────────────────────────────┤"
	boxBottom = "└─────────────────────────────────────────────────────────────────────────┘"
)

// CLIFormatter renders quotes as boxed tables
type CLIFormatter struct{}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes one box per report
func (f *CLIFormatter) Render(w io.Writer, reports []Report) error {
	p := &printer{w: w}
	for i, r := range reports {
		if i > 0 {
			p.line("")
		}
		f.renderQuote(p, r)
		if r.Suggestion != nil {
			f.renderSuggestion(p, r.Suggestion)
		}
		if len(r.Parallel) > 0 {
			f.renderParallel(p, r.Parallel)
		}
	}
	return p.err
}

func (f *CLIFormatter) renderQuote(p *printer, r Report) {
	q := r.Quote
	title := strings.ToUpper(r.Label)
	if title == "" {
		title = "QUOTE"
	}

	p.line(boxTop)
	p.row(truncate(title, 50), q.StrategyID)
	p.line(boxMiddle)
	p.row("Quantity", humanize.Comma(int64(q.Quantity)))
	p.row("Unit price", money(q.Currency, q.UnitPrice.StringFixed(2)))

	if r.ShowBreakdown {
		b := q.Breakdown
		p.line(boxMiddle)
		p.detail("Material", money(q.Currency, humanize.Comma(b.Material)))
		p.detail("Processing", money(q.Currency, humanize.Comma(b.Processing)))
		p.detail("Printing", money(q.Currency, humanize.Comma(b.Printing)))
		p.detail("Setup", money(q.Currency, humanize.Comma(b.Setup)))
		p.detail("Subtotal", money(q.Currency, humanize.Comma(b.Subtotal)))
		p.detail("Delivery", money(q.Currency, humanize.Comma(b.Delivery)))
		if b.Discount != 0 {
			p.detail("Discount", money(q.Currency, humanize.Comma(b.Discount)))
		}
	}

	p.line(boxMiddle)
	p.row("TOTAL", money(q.Currency, humanize.Comma(q.TotalPrice)))
	p.row("Lead time", fmt.Sprintf("%d days", q.LeadTimeDays))
	p.row("Valid until", q.ValidUntil.Format("2006-01-02"))
	p.row("Minimum order", humanize.Comma(int64(q.MinOrderQuantity)))
	p.line(boxBottom)
}

func (f *CLIFormatter) renderSuggestion(p *printer, s *economics.QuantitySuggestion) {
	p.line("")
	p.printf("Economic quantity: %s (%s m of film, %s pouches/m)\n",
		humanize.Comma(int64(s.EconomicQuantity)), humanize.Comma(int64(s.EconomicFilmUsage)), s.PouchesPerMeter.StringFixed(2))
	p.printf("Unit price: %s at %s, %s at %s\n",
		s.UnitPriceAtOrder.StringFixed(2), humanize.Comma(int64(s.OrderQuantity)),
		s.UnitPriceAtEconomic.StringFixed(2), humanize.Comma(int64(s.EconomicQuantity)))
	p.printf("Recommendation: %s (%s)\n", s.Recommendation, s.Reason)
}

func (f *CLIFormatter) renderParallel(p *printer, options []economics.ParallelOption) {
	p.line("")
	p.line("Parallel production (* recommended):")
	t := NewTable("", "RUNS", "ROLL", "UTILIZATION", "EST. UNIT", "SAVING")
	for _, o := range options {
		mark := ""
		if o.Recommended {
			mark = "*"
		}
		t.AddRow(mark,
			fmt.Sprintf("%dx", o.Count),
			fmt.Sprintf("%d mm", o.RollWidthMM),
			o.Utilization.StringFixed(1)+"%",
			o.EstimatedUnit.StringFixed(2),
			o.SavingsRate.StringFixed(1)+"%")
	}
	if p.err == nil {
		p.err = t.Render(p.w)
	}
}

func money(currency types.Currency, amount string) string {
	return string(currency) + " " + amount
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// printer keeps the first write error so rendering code stays linear
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(s string) {
	p.printf("%s\n", s)
}

func (p *printer) row(label, value string) {
	p.printf("│ %-50s %20s │\n", label, value)
}

func (p *printer) detail(label, value string) {
	p.printf("│   └─ %-46s %20s │\n", truncate(label, 46), value)
}
