package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with a throwaway config path
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.json")}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

type quoteDocument struct {
	Quotes []struct {
		Label string `json:"label"`
		Quote struct {
			StrategyID   string `json:"strategyId"`
			TotalPrice   int64  `json:"totalPrice"`
			LeadTimeDays int    `json:"leadTimeDays"`
		} `json:"quote"`
		Suggestion *struct {
			EconomicQuantity int    `json:"economicQuantity"`
			Recommendation   string `json:"recommendation"`
		} `json:"suggestion"`
		ParallelOptions []struct {
			Count int `json:"count"`
		} `json:"parallelOptions"`
	} `json:"quotes"`
}

func decodeQuotes(t *testing.T, out string) quoteDocument {
	t.Helper()
	var doc quoteDocument
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	return doc
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "packaging-quote version "+Version) {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestFamiliesCommand(t *testing.T) {
	out, _, err := run(t, "families", "--format", "json")
	if err != nil {
		t.Fatalf("families failed: %v", err)
	}
	var infos []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(infos) != 2 || infos[0].ID != "pouch" || infos[1].ID != "roll_film" {
		t.Errorf("unexpected families: %+v", infos)
	}
}

func TestQuoteCommandFromFlags(t *testing.T) {
	out, _, err := run(t, "quote", "--format", "json",
		"--bag-type", "flat_3_side", "--material", "pet_al",
		"--width", "200", "--height", "300", "--quantity", "1000")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}

	doc := decodeQuotes(t, out)
	if len(doc.Quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(doc.Quotes))
	}
	q := doc.Quotes[0].Quote
	if q.StrategyID != "pouch" || q.TotalPrice != 148100 || q.LeadTimeDays != 14 {
		t.Errorf("unexpected quote: %+v", q)
	}
}

func TestQuoteCommandRejectsInvalidRequest(t *testing.T) {
	_, stderr, err := run(t, "quote", "--format", "json",
		"--bag-type", "flat_3_side", "--width", "5", "--height", "300", "--quantity", "10")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(stderr, "quantity must be at least 100") {
		t.Errorf("violations not printed: %q", stderr)
	}
	if !strings.Contains(stderr, "width must be between 10 and 1000 mm") {
		t.Errorf("width violation not printed: %q", stderr)
	}
}

func TestQuoteCommandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.hcl")
	src := `
quote "a" {
  bag_type = "flat_3_side"
  material = "pet_al"
  width    = 200
  height   = 300
  quantity = var.quantity
}

quote "b" {
  bag_type = "roll_film"
  material = "pet_al"
  width    = 200
  quantity = 500
}
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write request: %v", err)
	}

	out, _, err := run(t, "quote", "--format", "json", "--file", path, "--var", "quantity=1000")
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	doc := decodeQuotes(t, out)
	if len(doc.Quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(doc.Quotes))
	}
	if doc.Quotes[0].Label != "a" || doc.Quotes[0].Quote.TotalPrice != 148100 {
		t.Errorf("unexpected first quote: %+v", doc.Quotes[0])
	}
	if doc.Quotes[1].Label != "b" || doc.Quotes[1].Quote.StrategyID != "roll_film" || doc.Quotes[1].Quote.TotalPrice != 185200 {
		t.Errorf("unexpected second quote: %+v", doc.Quotes[1])
	}
}

func TestSuggestCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.hcl")
	src := `
quote "t" {
  bag_type = "t_shape"
  material = "pet_al"
  width    = 100
  height   = 150
  quantity = 1000
}
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write request: %v", err)
	}

	out, _, err := run(t, "suggest", "--format", "json", "--file", path)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	doc := decodeQuotes(t, out)
	if len(doc.Quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(doc.Quotes))
	}
	r := doc.Quotes[0]
	if r.Suggestion == nil {
		t.Fatal("expected a quantity suggestion")
	}
	if r.Suggestion.EconomicQuantity <= 1000 || r.Suggestion.Recommendation != "order" {
		t.Errorf("unexpected suggestion: %+v", r.Suggestion)
	}
	if len(r.ParallelOptions) == 0 {
		t.Error("expected parallel options for a t_shape pouch")
	}
}

func TestQuoteCommandRejectsUnknownFormat(t *testing.T) {
	_, _, err := run(t, "quote", "--format", "html", "--width", "200", "--height", "300", "--quantity", "1000")
	if err == nil || !strings.Contains(err.Error(), "html") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}
