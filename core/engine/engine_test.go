package engine

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"packaging-quote/core/strategy"
	"packaging-quote/core/types"
	"packaging-quote/internal/errors"
	"packaging-quote/internal/logging"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestEngine(opts ...Option) *Engine {
	return New(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func flatParams() types.CalculationParams {
	return types.CalculationParams{
		BagTypeID:          "flat_3_side",
		MaterialID:         "pet_al",
		Width:              200,
		Height:             300,
		Quantity:           1000,
		ThicknessSelection: types.ThicknessMedium,
		PrintingType:       "digital",
		Urgency:            types.UrgencyStandard,
	}
}

// stubStrategy records calls and returns a fixed quote
type stubStrategy struct {
	id        string
	supported []string
	calls     atomic.Int32
}

func (s *stubStrategy) ID() string               { return s.id }
func (s *stubStrategy) SupportedTypes() []string { return s.supported }
func (s *stubStrategy) MinOrderQuantity() int    { return 1 }
func (s *stubStrategy) Validate(types.CalculationParams) types.ValidationResult {
	return types.ValidationResult{Valid: true}
}
func (s *stubStrategy) Calculate(p types.CalculationParams) (types.QuoteResult, error) {
	s.calls.Add(1)
	return types.QuoteResult{StrategyID: s.id, TotalPrice: 100, Quantity: p.Quantity, UnitPrice: decimal.NewFromInt(1)}, nil
}

// TestEndToEndScenario verifies the reference flat pouch request
func TestEndToEndScenario(t *testing.T) {
	e := newTestEngine()

	q, err := e.CalculatePrice(context.Background(), flatParams())
	if err != nil {
		t.Fatalf("CalculatePrice() error: %v", err)
	}
	if q.TotalPrice <= 0 {
		t.Errorf("TotalPrice = %d, want > 0", q.TotalPrice)
	}
	if q.Currency != types.CurrencyJPY {
		t.Errorf("Currency = %s, want JPY", q.Currency)
	}
	if q.LeadTimeDays <= 0 {
		t.Errorf("LeadTimeDays = %d", q.LeadTimeDays)
	}
	if q.Quantity != 1000 {
		t.Errorf("Quantity = %d", q.Quantity)
	}
	if q.TotalPrice%100 != 0 {
		t.Errorf("TotalPrice %d not a multiple of 100", q.TotalPrice)
	}
	want := decimal.NewFromInt(q.TotalPrice).Div(decimal.NewFromInt(int64(q.Quantity)))
	if !q.UnitPrice.Equal(want) {
		t.Errorf("UnitPrice = %s, want %s", q.UnitPrice, want)
	}
	if q.Breakdown.Total != q.TotalPrice {
		t.Errorf("Breakdown.Total = %d", q.Breakdown.Total)
	}
}

func TestFamilyDispatchChangesUnitPrice(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	flat, err := e.CalculatePrice(ctx, flatParams())
	if err != nil {
		t.Fatal(err)
	}
	p := flatParams()
	p.BagTypeID = "stand_up"
	stand, err := e.CalculatePrice(ctx, p)
	if err != nil {
		t.Fatal(err)
	}

	if !stand.UnitPrice.IsPositive() {
		t.Errorf("stand-up unit price = %s", stand.UnitPrice)
	}
	if stand.UnitPrice.Equal(flat.UnitPrice) {
		t.Errorf("expected different unit prices, both %s", flat.UnitPrice)
	}
}

func TestMonotonicity(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	total := func(mutate func(*types.CalculationParams)) types.QuoteResult {
		t.Helper()
		p := flatParams()
		mutate(&p)
		q, err := e.CalculatePrice(ctx, p)
		if err != nil {
			t.Fatalf("CalculatePrice() error: %v", err)
		}
		return q
	}

	light := total(func(p *types.CalculationParams) { p.ThicknessSelection = types.ThicknessLight })
	medium := total(func(p *types.CalculationParams) {})
	heavy := total(func(p *types.CalculationParams) { p.ThicknessSelection = types.ThicknessHeavy })
	if !(heavy.TotalPrice > medium.TotalPrice && medium.TotalPrice > light.TotalPrice) {
		t.Errorf("thickness not monotonic: light=%d medium=%d heavy=%d", light.TotalPrice, medium.TotalPrice, heavy.TotalPrice)
	}

	zipper := total(func(p *types.CalculationParams) { p.PostProcessingOptions = []string{"zipper"} })
	if zipper.TotalPrice <= medium.TotalPrice {
		t.Errorf("zipper %d should cost more than %d", zipper.TotalPrice, medium.TotalPrice)
	}

	express := total(func(p *types.CalculationParams) { p.Urgency = types.UrgencyExpress })
	if express.LeadTimeDays >= medium.LeadTimeDays {
		t.Errorf("express lead time %d should be below %d", express.LeadTimeDays, medium.LeadTimeDays)
	}
}

func TestValidationGate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.CalculationParams)
		ok     bool
	}{
		{"minimum quantity", func(p *types.CalculationParams) { p.Quantity = 100 }, true},
		{"below minimum quantity", func(p *types.CalculationParams) { p.Quantity = 99 }, false},
		{"narrow width", func(p *types.CalculationParams) { p.Width = 5 }, false},
		{"tall pouch", func(p *types.CalculationParams) { p.Height = 1500 }, false},
		{"roll film at minimum", func(p *types.CalculationParams) { p.BagTypeID = "roll_film"; p.Quantity = 500 }, true},
		{"roll film below minimum", func(p *types.CalculationParams) { p.BagTypeID = "roll_film"; p.Quantity = 400 }, false},
		{"roll film tall", func(p *types.CalculationParams) { p.BagTypeID = "roll_film"; p.Quantity = 500; p.Height = 1500 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			p := flatParams()
			tt.mutate(&p)

			_, err := e.CalculatePrice(context.Background(), p)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.IsType(err, errors.TypeValidation) {
					t.Errorf("expected VALIDATION_ERROR, got %v", err)
				}
				if e.CacheSize() != 0 {
					t.Error("rejected request must not be cached")
				}
			}
		})
	}
}

func TestValidationErrorJoinsMessages(t *testing.T) {
	e := newTestEngine()
	p := flatParams()
	p.Quantity = 10
	p.Width = 5

	_, err := e.CalculatePrice(context.Background(), p)
	if err == nil {
		t.Fatal("expected error")
	}
	var domainErr *errors.Error
	if !stderrors.As(err, &domainErr) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	want := "quantity must be at least 100; width must be between 10 and 1000 mm"
	if domainErr.Message != want {
		t.Errorf("Message = %q, want %q", domainErr.Message, want)
	}
	if got := errors.Violations(err); len(got) != 2 {
		t.Errorf("Violations = %v", got)
	}
}

func TestCacheBehaviour(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	if e.CacheSize() != 0 {
		t.Fatalf("new engine cache size = %d", e.CacheSize())
	}
	first, err := e.CalculatePrice(ctx, flatParams())
	if err != nil {
		t.Fatal(err)
	}
	if e.CacheSize() < 1 {
		t.Fatalf("CacheSize() = %d after a quote", e.CacheSize())
	}

	second, err := e.CalculatePrice(ctx, flatParams())
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Errorf("repeated request differs:\n%+v\n%+v", first, second)
	}
	if e.CacheSize() != 1 {
		t.Errorf("identical request should reuse the entry, size = %d", e.CacheSize())
	}

	e.ClearCache()
	if e.CacheSize() != 0 {
		t.Errorf("CacheSize() = %d after ClearCache", e.CacheSize())
	}
}

func TestCacheIgnoresOptionOrder(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	a := flatParams()
	a.PostProcessingOptions = []string{"zipper", "matte", "notch"}
	b := flatParams()
	b.PostProcessingOptions = []string{"notch", "zipper", "matte"}

	qa, err := e.CalculatePrice(ctx, a)
	if err != nil {
		t.Fatal(err)
	}
	qb, err := e.CalculatePrice(ctx, b)
	if err != nil {
		t.Fatal(err)
	}
	if qa != qb {
		t.Error("option order changed the quote")
	}
	if e.CacheSize() != 1 {
		t.Errorf("CacheSize() = %d, want 1", e.CacheSize())
	}
}

func TestCacheKeyDistinguishesPriceInputs(t *testing.T) {
	base := flatParams()
	colors := flatParams()
	colors.PrintingColors = 4
	layers := flatParams()
	layers.FilmLayers = []types.FilmStructureLayer{{MaterialID: "PET", Thickness: 12}, {MaterialID: "LLDPE", Thickness: 60}}

	k := CacheKey("pouch", base)
	if k == CacheKey("pouch", colors) {
		t.Error("printing colours must be part of the key")
	}
	if k == CacheKey("pouch", layers) {
		t.Error("film layers must be part of the key")
	}
	if k == CacheKey("roll_film", base) {
		t.Error("family must be part of the key")
	}
}

func TestCacheKeyDistinguishesBagTypes(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"flat vs stand-up", "flat_3_side", "stand_up"},
		{"t-shape vs box", "t_shape", "box"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := flatParams()
			a.BagTypeID = tt.a
			b := flatParams()
			b.BagTypeID = tt.b
			if CacheKey(strategy.PouchID, a) == CacheKey(strategy.PouchID, b) {
				t.Errorf("%s and %s share a cache key", tt.a, tt.b)
			}
		})
	}
}

func TestCachedShapeNotServedToOtherShape(t *testing.T) {
	ctx := context.Background()
	stand := flatParams()
	stand.BagTypeID = "stand_up"

	fresh, err := newTestEngine().CalculatePrice(ctx, stand)
	if err != nil {
		t.Fatal(err)
	}

	e := newTestEngine()
	flat, err := e.CalculatePrice(ctx, flatParams())
	if err != nil {
		t.Fatal(err)
	}
	served, err := e.CalculatePrice(ctx, stand)
	if err != nil {
		t.Fatal(err)
	}

	if served.TotalPrice != fresh.TotalPrice {
		t.Errorf("stand_up total = %d after flat_3_side (%d), want %d", served.TotalPrice, flat.TotalPrice, fresh.TotalPrice)
	}
	if e.CacheSize() != 2 {
		t.Errorf("CacheSize() = %d, want 2", e.CacheSize())
	}
}

func TestCallerCannotCorruptCache(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	q, err := e.CalculatePrice(ctx, flatParams())
	if err != nil {
		t.Fatal(err)
	}
	original := q.TotalPrice
	q.TotalPrice = 1
	q.Breakdown.Total = 1

	again, err := e.CalculatePrice(ctx, flatParams())
	if err != nil {
		t.Fatal(err)
	}
	if again.TotalPrice != original || again.Breakdown.Total != original {
		t.Errorf("cached quote was mutated: %+v", again)
	}
}

func TestMaxCacheEntries(t *testing.T) {
	e := newTestEngine(WithMaxCacheEntries(1))
	ctx := context.Background()

	if _, err := e.CalculatePrice(ctx, flatParams()); err != nil {
		t.Fatal(err)
	}
	p := flatParams()
	p.Quantity = 2000
	q, err := e.CalculatePrice(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	if q.Quantity != 2000 {
		t.Errorf("uncached quote still has to be returned, got %+v", q)
	}
	if e.CacheSize() != 1 {
		t.Errorf("CacheSize() = %d, want 1", e.CacheSize())
	}
}

func TestConcurrentIdenticalRequests(t *testing.T) {
	e := newTestEngine()
	stub := &stubStrategy{id: "stub"}
	e.RegisterStrategy(stub)

	p := flatParams()
	p.BagTypeID = "stub"

	var wg sync.WaitGroup
	results := make([]types.QuoteResult, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q, err := e.CalculatePrice(context.Background(), p)
			if err != nil {
				t.Errorf("CalculatePrice() error: %v", err)
				return
			}
			results[i] = q
		}(i)
	}
	wg.Wait()

	for i, q := range results {
		if q != results[0] {
			t.Fatalf("result %d differs: %+v", i, q)
		}
	}
	if e.CacheSize() != 1 {
		t.Errorf("CacheSize() = %d, want 1", e.CacheSize())
	}
	t.Logf("stub computed %d times for %d callers", stub.calls.Load(), len(results))
}

func TestDispatch(t *testing.T) {
	e := newTestEngine()
	exact := &stubStrategy{id: "stand_up"}
	first := &stubStrategy{id: "custom_a", supported: []string{"kraft_bag"}}
	second := &stubStrategy{id: "custom_b", supported: []string{"kraft_bag"}}
	e.RegisterStrategy(exact)
	e.RegisterStrategy(first)
	e.RegisterStrategy(second)

	tests := []struct {
		bagType string
		want    string
		matched bool
	}{
		{"stand_up", "stand_up", true},        // exact id beats pouch's supported list
		{"kraft_bag", "custom_a", true},       // first registered supporter wins
		{"flat_3_side", strategy.PouchID, true},
		{"film_roll", strategy.RollFilmID, true},
		{"hexagon_bag", strategy.PouchID, false},
	}

	for _, tt := range tests {
		t.Run(tt.bagType, func(t *testing.T) {
			s, matched := e.Resolve(tt.bagType)
			if s.ID() != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.bagType, s.ID(), tt.want)
			}
			if matched != tt.matched {
				t.Errorf("matched = %v, want %v", matched, tt.matched)
			}
		})
	}
}

func TestRegisterStrategyLastWins(t *testing.T) {
	e := newTestEngine()
	replacement := &stubStrategy{id: strategy.RollFilmID}
	e.RegisterStrategy(replacement)

	p := flatParams()
	p.BagTypeID = strategy.RollFilmID
	q, err := e.CalculatePrice(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if q.TotalPrice != 100 || replacement.calls.Load() != 1 {
		t.Errorf("replacement strategy not used: %+v", q)
	}

	infos := e.Strategies()
	if len(infos) != 2 || infos[0].ID != strategy.PouchID || infos[1].ID != strategy.RollFilmID {
		t.Errorf("Strategies() = %+v", infos)
	}
}

func TestUnknownBagTypeFallsBackAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(logging.Config{Level: "debug", Format: "json"}, &buf)
	e := newTestEngine(WithLogger(logger))

	p := flatParams()
	p.BagTypeID = "hexagon_bag"
	q, err := e.CalculatePrice(context.Background(), p)
	if err != nil {
		t.Fatalf("unknown bag type must not fail: %v", err)
	}
	if q.StrategyID != strategy.PouchID {
		t.Errorf("StrategyID = %s, want %s", q.StrategyID, strategy.PouchID)
	}
	if !strings.Contains(buf.String(), "falling back to pouch strategy") {
		t.Errorf("fallback not logged: %s", buf.String())
	}
}

func TestCancelledContext(t *testing.T) {
	e := newTestEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.CalculatePrice(ctx, flatParams())
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if e.CacheSize() != 0 {
		t.Error("cancelled request must not be cached")
	}
}

func TestDefaultEngine(t *testing.T) {
	ClearCache()
	if _, err := CalculatePrice(context.Background(), flatParams()); err != nil {
		t.Fatal(err)
	}
	if CacheSize() < 1 {
		t.Error("default engine did not cache")
	}
	if Default() != Default() {
		t.Error("Default() must return the same engine")
	}
	ClearCache()
}
