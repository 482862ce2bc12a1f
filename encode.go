package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/corfou/ledger/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// postingRecord is the wire shape of one posting line item.
type postingRecord struct {
	Side     string          `json:"side"`
	Class    string          `json:"class"`
	Asset    string          `json:"asset,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Quantity decimal.Decimal `json:"quantity,omitempty"`
	Unit     string          `json:"unit,omitempty"`
	Category string          `json:"category,omitempty"`
	Type     string          `json:"type,omitempty"`
}

// transactionRecord is the wire shape of one journal line.
type transactionRecord struct {
	Date          date.Date       `json:"date"`
	Account       string          `json:"account"`
	Memo          string          `json:"memo,omitempty"`
	Source        string          `json:"source,omitempty"`
	CrossCurrency bool            `json:"crossCurrency,omitempty"`
	Postings      []postingRecord `json:"postings"`
}

func (r postingRecord) posting() (Posting, error) {
	side, err := ParseSide(r.Side)
	if err != nil {
		return Posting{}, err
	}
	class, err := ParseAccountClass(r.Class)
	if err != nil {
		return Posting{}, err
	}
	return Posting{
		Side:     side,
		Class:    class,
		Asset:    r.Asset,
		Amount:   M(r.Amount, r.Currency),
		Quantity: Q(r.Quantity),
		Unit:     r.Unit,
		Category: r.Category,
		Type:     r.Type,
	}, nil
}

func record(tx Transaction) transactionRecord {
	r := transactionRecord{
		Date:          tx.On,
		Account:       tx.Account,
		Memo:          tx.Memo,
		Source:        tx.Source,
		CrossCurrency: tx.CrossCurrency,
	}
	for _, p := range tx.Postings {
		r.Postings = append(r.Postings, postingRecord{
			Side:     p.Side.String(),
			Class:    p.Class.String(),
			Asset:    p.Asset,
			Amount:   p.Amount.Amount(),
			Currency: p.Amount.Currency(),
			Quantity: p.Quantity.Decimal(),
			Unit:     p.Unit,
			Category: p.Category,
			Type:     p.Type,
		})
	}
	return r
}

// EncodeTransaction writes one transaction as a single JSONL line with a
// stable field order.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	var obj jsonObjectWriter
	obj.Append("date", tx.On)
	obj.Append("account", tx.Account)
	obj.Optional("memo", tx.Memo)
	obj.Optional("source", tx.Source)
	obj.Optional("crossCurrency", tx.CrossCurrency)
	obj.Append("postings", record(tx).Postings)
	line, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode transaction on %s: %w", tx.On, err)
	}
	if _, err := w.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}

// EncodeJournal writes every transaction of the journal in JSONL, account
// by account in chronological order.
func EncodeJournal(w io.Writer, j *Journal) error {
	for _, account := range j.Accounts() {
		for _, tx := range j.Transactions(account) {
			if err := EncodeTransaction(w, tx); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodeJournal reads a stream of JSONL transaction lines and appends each
// into a fresh journal, enforcing the balance invariant on every line.
func DecodeJournal(r io.Reader) (*Journal, error) {
	j := NewJournal()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue // Skip empty lines
		}
		var rec transactionRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: could not decode transaction: %w", line, err)
		}
		tx := Transaction{
			Account:       rec.Account,
			On:            rec.Date,
			Memo:          rec.Memo,
			Source:        rec.Source,
			CrossCurrency: rec.CrossCurrency,
		}
		for _, pr := range rec.Postings {
			p, err := pr.posting()
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			tx.Postings = append(tx.Postings, p)
		}
		if _, err := j.Append(tx); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return j, nil
}

// pricePointRecord is the wire shape of one price line.
type pricePointRecord struct {
	Asset    string          `json:"asset"`
	Date     date.Date       `json:"date"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

// EncodePricePoint writes one price point as a single JSONL line.
func EncodePricePoint(w io.Writer, p PricePoint) error {
	var obj jsonObjectWriter
	obj.Append("asset", p.Asset)
	obj.Append("date", p.On)
	obj.Append("price", p.Price.Amount())
	obj.Append("currency", p.Price.Currency())
	line, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode price for %s on %s: %w", p.Asset, p.On, err)
	}
	if _, err := w.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}

// EncodePrices writes the whole price store in JSONL, asset by asset in
// chronological order.
func EncodePrices(w io.Writer, ps *PriceStore) error {
	for _, asset := range ps.Assets() {
		for p := range ps.Points(asset) {
			if err := EncodePricePoint(w, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// assertedBalanceRecord is the wire shape of one statement line.
type assertedBalanceRecord struct {
	Date     date.Date       `json:"date"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// EncodeAssertedBalance writes one statement balance as a single JSONL line.
func EncodeAssertedBalance(w io.Writer, a AssertedBalance) error {
	var obj jsonObjectWriter
	obj.Append("date", a.On)
	obj.Append("balance", a.Balance.Amount())
	obj.Append("currency", a.Balance.Currency())
	line, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode asserted balance on %s: %w", a.On, err)
	}
	if _, err := w.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}

// DecodeAssertedBalances reads a stream of JSONL statement lines.
func DecodeAssertedBalances(r io.Reader) ([]AssertedBalance, error) {
	var out []AssertedBalance
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec assertedBalanceRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: could not decode asserted balance: %w", line, err)
		}
		out = append(out, AssertedBalance{On: rec.Date, Balance: M(rec.Balance, rec.Currency)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodePrices reads a stream of JSONL price lines into a fresh store.
func DecodePrices(r io.Reader) (*PriceStore, error) {
	ps := NewPriceStore()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec pricePointRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: could not decode price point: %w", line, err)
		}
		ps.Add(PricePoint{Asset: rec.Asset, On: rec.Date, Price: M(rec.Price, rec.Currency)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ps, nil
}
