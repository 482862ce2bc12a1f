package ledger

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/corfou/ledger/date"
	"github.com/shopspring/decimal"
)

// FeedSpec describes where a JSON market-data feed keeps its daily bars.
// Feeds disagree wildly on shape, so the locations are JSONPath
// expressions evaluated against the decoded document.
type FeedSpec struct {
	// Dates selects the list of bar dates (strings in ISO or permissive
	// "2006-1-2" form).
	Dates string
	// Closes selects the list of closing prices, aligned with Dates.
	Closes string
}

// EODFeed is the FeedSpec for the common end-of-day array shape:
// [{"date": "2025-01-02", "close": 101.5}, ...].
var EODFeed = FeedSpec{
	Dates:  "$[*].date",
	Closes: "$[*].close",
}

// ParseFeed extracts price points for one asset from a JSON feed document.
// Prices are tagged with the given currency.
func ParseFeed(r io.Reader, asset, currency string, spec FeedSpec) ([]PricePoint, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("could not decode feed for %q: %w", asset, err)
	}

	dates, err := feedList(jobj, spec.Dates)
	if err != nil {
		return nil, fmt.Errorf("feed for %q: dates: %w", asset, err)
	}
	closes, err := feedList(jobj, spec.Closes)
	if err != nil {
		return nil, fmt.Errorf("feed for %q: closes: %w", asset, err)
	}
	if len(dates) != len(closes) {
		return nil, fmt.Errorf("feed for %q: %d dates but %d closes", asset, len(dates), len(closes))
	}

	points := make([]PricePoint, 0, len(dates))
	for i, jd := range dates {
		ds, ok := jd.(string)
		if !ok {
			return nil, fmt.Errorf("feed for %q: date #%d is not a string: %v", asset, i, jd)
		}
		on, err := date.Parse(ds)
		if err != nil {
			return nil, fmt.Errorf("feed for %q: %w", asset, err)
		}
		price, err := feedPrice(closes[i])
		if err != nil {
			return nil, fmt.Errorf("feed for %q on %s: %w", asset, on, err)
		}
		points = append(points, PricePoint{Asset: asset, On: on, Price: M(price, currency)})
	}
	return points, nil
}

// feedList evaluates a JSONPath expression expected to yield a list.
func feedList(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list or a
	// single answer, wrap singletons.
	list, ok := jval.([]any)
	if !ok {
		list = []any{jval}
	}
	return list, nil
}

// feedPrice reads a price cell that may be a JSON number or a string.
func feedPrice(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid price string %q: %w", v, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("price is neither a number nor a string: %v", jval)
	}
}
