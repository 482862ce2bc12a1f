package ledger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/corfou/ledger/date"
)

func TestEncodeTransaction_StableFieldOrder(t *testing.T) {
	tx := spend("main", date.New(2025, time.March, 5), EUR(42.50), "food:restaurant")
	tx.Memo = "lunch"

	var b bytes.Buffer
	if err := EncodeTransaction(&b, tx); err != nil {
		t.Fatal(err)
	}
	line := b.String()

	if !strings.HasSuffix(line, "\n") {
		t.Error("encoded transaction is not a JSONL line")
	}
	// Field order is part of the format: date first, so files diff cleanly.
	for _, prefix := range []string{`{"date":"2025-03-05","account":"main","memo":"lunch"`} {
		if !strings.HasPrefix(line, prefix) {
			t.Errorf("line = %s, want prefix %s", line, prefix)
		}
	}
	// Zero-valued optional fields stay off the wire.
	if strings.Contains(line, "source") || strings.Contains(line, "crossCurrency") {
		t.Errorf("optional zero fields leaked into %s", line)
	}
}

func TestJournalRoundTrip(t *testing.T) {
	j := NewJournal()
	must := func(tx Transaction) {
		t.Helper()
		if _, err := j.Append(tx); err != nil {
			t.Fatal(err)
		}
	}
	must(deposit("main", date.New(2025, time.January, 1), EUR(1000)))
	must(spend("main", date.New(2025, time.January, 5), EUR(42.50), "food"))
	must(buy("broker", date.New(2025, time.January, 10), "ACME", 10, EUR(500)))
	cross := Transaction{
		Account: "fx", On: date.New(2025, time.January, 20), CrossCurrency: true, Memo: "fx",
		Postings: []Posting{
			{Side: Debit, Class: Cash, Amount: USD(108), Type: "convert"},
			{Side: Credit, Class: Equity, Amount: USD(108), Type: "convert"},
			{Side: Debit, Class: Equity, Amount: EUR(100), Type: "convert"},
			{Side: Credit, Class: Cash, Amount: EUR(100), Type: "convert"},
		},
	}
	must(cross)

	var b bytes.Buffer
	if err := EncodeJournal(&b, j); err != nil {
		t.Fatal(err)
	}

	back, err := DecodeJournal(&b)
	if err != nil {
		t.Fatal(err)
	}

	for _, account := range j.Accounts() {
		want := j.Transactions(account)
		got := back.Transactions(account)
		if len(got) != len(want) {
			t.Fatalf("account %s: %d transactions, want %d", account, len(got), len(want))
		}
		for i := range want {
			w, g := want[i], got[i]
			if g.On != w.On || g.Memo != w.Memo || g.CrossCurrency != w.CrossCurrency {
				t.Errorf("account %s tx %d: got %+v, want %+v", account, i, g, w)
			}
			if len(g.Postings) != len(w.Postings) {
				t.Fatalf("account %s tx %d: %d postings, want %d", account, i, len(g.Postings), len(w.Postings))
			}
			for k := range w.Postings {
				wp, gp := w.Postings[k], g.Postings[k]
				if gp.Side != wp.Side || gp.Class != wp.Class || gp.Asset != wp.Asset {
					t.Errorf("posting %d: got %+v, want %+v", k, gp, wp)
				}
				if !gp.Amount.Equal(wp.Amount) || !gp.Quantity.Equal(wp.Quantity) {
					t.Errorf("posting %d: amount %s/%s, want %s/%s", k, gp.Amount, gp.Quantity, wp.Amount, wp.Quantity)
				}
			}
		}
	}
	// Balances survive the trip.
	if got := BuildTimelines(back, "main").Cash("EUR").ValueAsOf(date.New(2025, time.February, 1)); !got.Equal(Q(957.50)) {
		t.Errorf("cash after round trip = %s, want 957.50", got)
	}
}

func TestDecodeJournal_RejectsBadLines(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{
			name: "not json",
			in:   "not json at all\n",
		},
		{
			name: "imbalanced line",
			in: `{"date":"2025-03-01","account":"main","postings":[` +
				`{"side":"debit","class":"cash","amount":100,"currency":"EUR"},` +
				`{"side":"credit","class":"equity","amount":90,"currency":"EUR"}]}` + "\n",
		},
		{
			name: "unknown side",
			in: `{"date":"2025-03-01","account":"main","postings":[` +
				`{"side":"both","class":"cash","amount":100,"currency":"EUR"},` +
				`{"side":"credit","class":"equity","amount":100,"currency":"EUR"}]}` + "\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeJournal(strings.NewReader(tc.in)); err == nil {
				t.Error("DecodeJournal() accepted a bad line")
			} else if !strings.Contains(err.Error(), "line 1") {
				t.Errorf("error %q does not point at the failing line", err)
			}
		})
	}
}

func TestDecodeJournal_SkipsEmptyLines(t *testing.T) {
	in := `{"date":"2025-03-01","account":"main","postings":[` +
		`{"side":"debit","class":"cash","amount":100,"currency":"EUR"},` +
		`{"side":"credit","class":"equity","amount":100,"currency":"EUR"}]}` + "\n\n"
	j, err := DecodeJournal(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if got := len(j.Transactions("main")); got != 1 {
		t.Errorf("decoded %d transactions, want 1", got)
	}
}

func TestPricesRoundTrip(t *testing.T) {
	ps := NewPriceStore()
	ps.Add(
		PricePoint{Asset: "ACME", On: date.New(2025, time.March, 10), Price: EUR(101.5)},
		PricePoint{Asset: "ACME", On: date.New(2025, time.March, 11), Price: EUR(102)},
		PricePoint{Asset: "GLOB", On: date.New(2025, time.March, 10), Price: USD(88.25)},
	)

	var b bytes.Buffer
	if err := EncodePrices(&b, ps); err != nil {
		t.Fatal(err)
	}
	back, err := DecodePrices(&b)
	if err != nil {
		t.Fatal(err)
	}

	res := NewPriceResolver(back, ResolverConfig{Currency: "EUR"})
	if p, ok := res.PriceAsOf("ACME", date.New(2025, time.March, 11)); !ok || !p.Equal(EUR(102)) {
		t.Errorf("ACME price = (%s, %v), want (102, true)", p, ok)
	}
	if p, ok := res.PriceAsOf("GLOB", date.New(2025, time.March, 15)); !ok || !p.Equal(USD(88.25)) {
		t.Errorf("GLOB price = (%s, %v), want (88.25, true)", p, ok)
	}
}

func TestAssertedBalancesRoundTrip(t *testing.T) {
	in := []AssertedBalance{
		{On: date.New(2025, time.March, 31), Balance: EUR(480)},
		{On: date.New(2025, time.April, 30), Balance: EUR(510.25)},
	}
	var b bytes.Buffer
	for _, a := range in {
		if err := EncodeAssertedBalance(&b, a); err != nil {
			t.Fatal(err)
		}
	}
	got, err := DecodeAssertedBalances(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(in) {
		t.Fatalf("decoded %d balances, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i].On != in[i].On || !got[i].Balance.Equal(in[i].Balance) {
			t.Errorf("balance %d = %+v, want %+v", i, got[i], in[i])
		}
	}
}
