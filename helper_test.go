package ledger

import "github.com/corfou/ledger/date"

// EUR is a helper for tests to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for tests to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// deposit builds a balanced cash deposit transaction.
func deposit(account string, on date.Date, amount Money) Transaction {
	return Transaction{
		Account: account, On: on,
		Postings: []Posting{
			{Side: Debit, Class: Cash, Amount: amount},
			{Side: Credit, Class: Equity, Amount: amount, Type: "deposit"},
		},
	}
}

// spend builds a balanced expense transaction.
func spend(account string, on date.Date, amount Money, category string) Transaction {
	return Transaction{
		Account: account, On: on,
		Postings: []Posting{
			{Side: Debit, Class: Expense, Amount: amount, Category: category, Type: "expense"},
			{Side: Credit, Class: Cash, Amount: amount},
		},
	}
}

// earn builds a balanced income transaction.
func earn(account string, on date.Date, amount Money, category string) Transaction {
	return Transaction{
		Account: account, On: on,
		Postings: []Posting{
			{Side: Debit, Class: Cash, Amount: amount},
			{Side: Credit, Class: Income, Amount: amount, Category: category, Type: "income"},
		},
	}
}

// buy builds a balanced asset purchase transaction.
func buy(account string, on date.Date, asset string, qty float64, cost Money) Transaction {
	return Transaction{
		Account: account, On: on,
		Postings: []Posting{
			{Side: Debit, Class: Asset, Asset: asset, Amount: cost, Quantity: Q(qty), Type: "buy"},
			{Side: Credit, Class: Cash, Amount: cost},
		},
	}
}

// convert builds a balanced cross-currency conversion: a cash+equity pair
// per currency, so each currency nets to zero on its own.
func convert(account string, on date.Date, sold, bought Money) Transaction {
	return Transaction{
		Account: account, On: on, CrossCurrency: true,
		Postings: []Posting{
			{Side: Debit, Class: Cash, Amount: bought, Type: "convert"},
			{Side: Credit, Class: Equity, Amount: bought, Type: "convert"},
			{Side: Debit, Class: Equity, Amount: sold, Type: "convert"},
			{Side: Credit, Class: Cash, Amount: sold, Type: "convert"},
		},
	}
}

// sell builds a balanced asset sale transaction.
func sell(account string, on date.Date, asset string, qty float64, proceeds Money) Transaction {
	return Transaction{
		Account: account, On: on,
		Postings: []Posting{
			{Side: Debit, Class: Cash, Amount: proceeds},
			{Side: Credit, Class: Asset, Asset: asset, Amount: proceeds, Quantity: Q(qty), Type: "sell"},
		},
	}
}
