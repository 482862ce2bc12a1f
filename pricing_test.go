package ledger

import (
	"testing"
	"time"

	"github.com/corfou/ledger/date"
)

func TestPriceResolver_PriceAsOf(t *testing.T) {
	store := NewPriceStore()
	store.Add(
		PricePoint{Asset: "ACME", On: date.New(2025, time.March, 10), Price: EUR(100)},
		PricePoint{Asset: "ACME", On: date.New(2025, time.March, 20), Price: EUR(110)},
		PricePoint{Asset: "ZERO", On: date.New(2025, time.March, 1), Price: EUR(0)},
	)
	res := NewPriceResolver(store, ResolverConfig{Currency: "EUR", CashEquivalents: []string{"MMF"}})

	testCases := []struct {
		name   string
		asset  string
		on     date.Date
		want   Money
		wantOK bool
	}{
		{"before first observation", "ACME", date.New(2025, time.March, 9), Money{}, false},
		{"exactly on an observation", "ACME", date.New(2025, time.March, 10), EUR(100), true},
		{"between observations uses the earlier one", "ACME", date.New(2025, time.March, 15), EUR(100), true},
		{"after the last observation", "ACME", date.New(2025, time.June, 1), EUR(110), true},
		{"never observed asset", "GHOST", date.New(2025, time.March, 15), Money{}, false},
		{"cash equivalent needs no history", "MMF", date.New(2025, time.March, 15), EUR(1), true},
		{"explicit zero price is priced, not unpriced", "ZERO", date.New(2025, time.March, 15), EUR(0), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := res.PriceAsOf(tc.asset, tc.on)
			if ok != tc.wantOK {
				t.Fatalf("PriceAsOf(%s, %s) ok = %v, want %v", tc.asset, tc.on, ok, tc.wantOK)
			}
			if ok && !got.Equal(tc.want) {
				t.Errorf("PriceAsOf(%s, %s) = %s, want %s", tc.asset, tc.on, got, tc.want)
			}
		})
	}
}

func TestPriceStore_LastWins(t *testing.T) {
	store := NewPriceStore()
	on := date.New(2025, time.March, 10)
	store.Add(PricePoint{Asset: "ACME", On: on, Price: EUR(100)})
	store.Add(PricePoint{Asset: "ACME", On: on, Price: EUR(105)})

	res := NewPriceResolver(store, ResolverConfig{Currency: "EUR"})
	got, ok := res.PriceAsOf("ACME", on)
	if !ok || !got.Equal(EUR(105)) {
		t.Errorf("PriceAsOf() = (%s, %v), want (%s, true)", got, ok, EUR(105))
	}
}

func TestPriceStore_Assets(t *testing.T) {
	store := NewPriceStore()
	store.Add(
		PricePoint{Asset: "ZZZ", On: date.New(2025, time.March, 1), Price: EUR(1)},
		PricePoint{Asset: "AAA", On: date.New(2025, time.March, 1), Price: EUR(1)},
	)
	assets := store.Assets()
	if len(assets) != 2 || assets[0] != "AAA" || assets[1] != "ZZZ" {
		t.Errorf("Assets() = %v, want [AAA ZZZ]", assets)
	}
}
