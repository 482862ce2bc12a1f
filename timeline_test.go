package ledger

import (
	"slices"
	"testing"
	"time"

	"github.com/corfou/ledger/date"
)

func TestBuildTimelines_Positions(t *testing.T) {
	j := NewJournal()
	must := func(tx Transaction) {
		t.Helper()
		if _, err := j.Append(tx); err != nil {
			t.Fatal(err)
		}
	}
	must(deposit("main", date.New(2025, time.January, 1), EUR(10000)))
	must(buy("main", date.New(2025, time.January, 10), "ACME", 100, EUR(1500)))
	must(buy("main", date.New(2025, time.January, 15), "GLOB", 50, EUR(2800)))
	must(sell("main", date.New(2025, time.February, 1), "ACME", 25, EUR(400)))
	must(buy("main", date.New(2025, time.February, 10), "ACME", 10, EUR(155)))
	must(sell("main", date.New(2025, time.March, 1), "GLOB", 50, EUR(2900)))

	ts := BuildTimelines(j, "main")

	testCases := []struct {
		name  string
		asset string
		on    date.Date
		want  float64
	}{
		{"before any transaction", "ACME", date.New(2025, time.January, 9), 0},
		{"on the day of the first buy", "ACME", date.New(2025, time.January, 10), 100},
		{"after first buy, before sell", "ACME", date.New(2025, time.January, 31), 100},
		{"on the day of the sell", "ACME", date.New(2025, time.February, 1), 75},
		{"on the day of the second buy", "ACME", date.New(2025, time.February, 10), 85},
		{"final position", "ACME", date.New(2025, time.April, 1), 85},
		{"sold out entirely", "GLOB", date.New(2025, time.March, 2), 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ts.Timeline(tc.asset).ValueAsOf(tc.on)
			if !got.Equal(Q(tc.want)) {
				t.Errorf("position of %s as of %s = %s, want %v", tc.asset, tc.on, got, tc.want)
			}
		})
	}
}

func TestBuildTimelines_Cash(t *testing.T) {
	j := NewJournal()
	must := func(tx Transaction) {
		t.Helper()
		if _, err := j.Append(tx); err != nil {
			t.Fatal(err)
		}
	}
	must(deposit("main", date.New(2025, time.January, 1), EUR(1000)))
	must(spend("main", date.New(2025, time.January, 5), EUR(200), "rent"))
	must(earn("main", date.New(2025, time.January, 20), EUR(300), "salary"))

	ts := BuildTimelines(j, "main")
	cash := ts.Cash("EUR")

	testCases := []struct {
		on   date.Date
		want float64
	}{
		{date.New(2024, time.December, 31), 0},
		{date.New(2025, time.January, 1), 1000},
		{date.New(2025, time.January, 5), 800},
		{date.New(2025, time.January, 19), 800},
		{date.New(2025, time.January, 20), 1100},
		{date.New(2025, time.June, 1), 1100},
	}
	for _, tc := range testCases {
		if got := cash.ValueAsOf(tc.on); !got.Equal(Q(tc.want)) {
			t.Errorf("cash as of %s = %s, want %v", tc.on, got, tc.want)
		}
	}
}

func TestBuildTimelines_SameDayNets(t *testing.T) {
	// Several postings on one date collapse into a single end-of-day point.
	j := NewJournal()
	on := date.New(2025, time.March, 1)
	for range 3 {
		if _, err := j.Append(deposit("main", on, EUR(100))); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := j.Append(spend("main", on, EUR(50), "food")); err != nil {
		t.Fatal(err)
	}

	cash := BuildTimelines(j, "main").Cash("EUR")
	if cash.Len() != 1 {
		t.Fatalf("cash timeline has %d points, want 1", cash.Len())
	}
	if got := cash.ValueAsOf(on); !got.Equal(Q(250)) {
		t.Errorf("end-of-day cash = %s, want 250", got)
	}
}

func TestTimelineSet_Assets(t *testing.T) {
	j := NewJournal()
	must := func(tx Transaction) {
		t.Helper()
		if _, err := j.Append(tx); err != nil {
			t.Fatal(err)
		}
	}
	must(deposit("main", date.New(2025, time.January, 1), EUR(10000)))
	must(buy("main", date.New(2025, time.January, 10), "ZULU", 1, EUR(10)))
	must(buy("main", date.New(2025, time.January, 10), "ALFA", 1, EUR(10)))

	ts := BuildTimelines(j, "main")
	assets := ts.Assets()
	if !slices.Contains(assets, "ALFA") || !slices.Contains(assets, "ZULU") {
		t.Fatalf("Assets() = %v", assets)
	}
	if !slices.IsSorted(assets) {
		t.Errorf("Assets() not sorted: %v", assets)
	}

	// Unknown assets resolve to an empty timeline, not nil.
	unknown := ts.Timeline("GHOST")
	if unknown == nil {
		t.Fatal("Timeline(GHOST) = nil, want empty timeline")
	}
	if q := unknown.ValueAsOf(date.Today()); !q.IsZero() {
		t.Errorf("unknown asset position = %s, want 0", q)
	}
}

func TestBuildTimelines_CashPerCurrency(t *testing.T) {
	// A conversion must not blend currencies into one balance: each
	// currency keeps its own cash curve.
	j := NewJournal()
	must := func(tx Transaction) {
		t.Helper()
		if _, err := j.Append(tx); err != nil {
			t.Fatal(err)
		}
	}
	must(deposit("main", date.New(2025, time.March, 1), EUR(100)))
	must(convert("main", date.New(2025, time.March, 10), EUR(40), USD(44)))

	ts := BuildTimelines(j, "main")
	after := date.New(2025, time.March, 11)

	if got := ts.Cash("EUR").ValueAsOf(after); !got.Equal(Q(60)) {
		t.Errorf("EUR cash = %s, want 60", got)
	}
	if got := ts.Cash("USD").ValueAsOf(after); !got.Equal(Q(44)) {
		t.Errorf("USD cash = %s, want 44", got)
	}
	if got := ts.Currencies(); !slices.Equal(got, []string{"EUR", "USD"}) {
		t.Errorf("Currencies() = %v, want [EUR USD]", got)
	}
	// A currency never posted resolves to an empty timeline, not nil.
	if got := ts.Cash("GBP").ValueAsOf(after); !got.IsZero() {
		t.Errorf("GBP cash = %s, want 0", got)
	}
}

type timelinePoint struct {
	on date.Date
	v  Quantity
}

// timelinePoints materializes a timeline's steps for comparison.
func timelinePoints(t *Timeline) []timelinePoint {
	var pts []timelinePoint
	for on, v := range t.Points() {
		pts = append(pts, timelinePoint{on, v})
	}
	return pts
}

func sameTimeline(t *testing.T, label string, a, b *Timeline) {
	t.Helper()
	pa, pb := timelinePoints(a), timelinePoints(b)
	if len(pa) != len(pb) {
		t.Fatalf("%s: %d points vs %d", label, len(pa), len(pb))
	}
	for i := range pa {
		if pa[i].on != pb[i].on || !pa[i].v.Equal(pb[i].v) {
			t.Errorf("%s point %d: (%s, %s) vs (%s, %s)",
				label, i, pa[i].on, pa[i].v, pb[i].on, pb[i].v)
		}
	}
}

func TestBuildTimelines_Idempotent(t *testing.T) {
	// Rebuilding from the same journal yields identical curves.
	j := NewJournal()
	must := func(tx Transaction) {
		t.Helper()
		if _, err := j.Append(tx); err != nil {
			t.Fatal(err)
		}
	}
	must(deposit("main", date.New(2025, time.January, 1), EUR(1000)))
	must(buy("main", date.New(2025, time.January, 10), "ACME", 10, EUR(150)))
	must(sell("main", date.New(2025, time.February, 1), "ACME", 4, EUR(70)))
	must(spend("main", date.New(2025, time.February, 1), EUR(30), "food"))

	first := BuildTimelines(j, "main")
	second := BuildTimelines(j, "main")

	if !slices.Equal(first.Assets(), second.Assets()) {
		t.Fatalf("Assets() differ: %v vs %v", first.Assets(), second.Assets())
	}
	if !slices.Equal(first.Currencies(), second.Currencies()) {
		t.Fatalf("Currencies() differ: %v vs %v", first.Currencies(), second.Currencies())
	}
	for _, asset := range first.Assets() {
		sameTimeline(t, asset, first.Timeline(asset), second.Timeline(asset))
	}
	for _, currency := range first.Currencies() {
		sameTimeline(t, currency, first.Cash(currency), second.Cash(currency))
	}
}

func TestBuildTimelines_InputOrderIndependent(t *testing.T) {
	// The fold follows (date, seq), not append order: backdated appends
	// land in their chronological place and produce the same curves.
	txs := []Transaction{
		deposit("main", date.New(2025, time.January, 1), EUR(1000)),
		buy("main", date.New(2025, time.January, 10), "ACME", 10, EUR(150)),
		spend("main", date.New(2025, time.January, 20), EUR(50), "rent"),
		sell("main", date.New(2025, time.February, 5), "ACME", 3, EUR(60)),
	}

	chronological := NewJournal()
	for _, tx := range txs {
		if _, err := chronological.Append(tx); err != nil {
			t.Fatal(err)
		}
	}
	shuffled := NewJournal()
	for _, i := range []int{3, 0, 2, 1} {
		if _, err := shuffled.Append(txs[i]); err != nil {
			t.Fatal(err)
		}
	}

	a := BuildTimelines(chronological, "main")
	b := BuildTimelines(shuffled, "main")
	sameTimeline(t, "cash", a.Cash("EUR"), b.Cash("EUR"))
	sameTimeline(t, "ACME", a.Timeline("ACME"), b.Timeline("ACME"))
}
