package ledger

import "testing"

func TestMoney_MinorUnit(t *testing.T) {
	testCases := []struct {
		currency string
		want     Money
	}{
		{"EUR", M(0.01, "EUR")},
		{"USD", M(0.01, "USD")},
		{"JPY", M(1, "JPY")},
	}
	for _, tc := range testCases {
		if got := M(0, tc.currency).MinorUnit(); !got.Equal(tc.want) {
			t.Errorf("MinorUnit(%s) = %s, want %s", tc.currency, got, tc.want)
		}
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	if got := EUR(0.1).Add(EUR(0.2)); !got.Equal(EUR(0.3)) {
		t.Errorf("0.1 + 0.2 = %s, want exactly 0.3", got)
	}
	if got := EUR(100).Sub(EUR(40.5)); !got.Equal(EUR(59.5)) {
		t.Errorf("100 - 40.5 = %s", got)
	}
	if got := EUR(100).Mul(Q(3)); !got.Equal(EUR(300)) {
		t.Errorf("100 x 3 = %s", got)
	}
	if got := EUR(300).Div(Q(3)); !got.Equal(EUR(100)) {
		t.Errorf("300 / 3 = %s", got)
	}
	if got := EUR(25).Ratio(EUR(100)); !got.Equal(Q(0.25)) {
		t.Errorf("25/100 = %s, want 0.25", got)
	}
}

func TestMoney_WeakEmptyCurrency(t *testing.T) {
	// The zero Money carries no currency; the first typed operand wins.
	var zero Money
	got := zero.Add(EUR(10))
	if got.Currency() != "EUR" || !got.Equal(EUR(10)) {
		t.Errorf("zero + 10 EUR = %s %s", got, got.Currency())
	}
}

func TestMoney_CurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding EUR and USD did not panic")
		}
	}()
	_ = EUR(1).Add(USD(1))
}

func TestMoney_SignedString(t *testing.T) {
	testCases := []struct {
		in   Money
		want string
	}{
		{EUR(0), "-"},
		{EUR(12.5), "+" + EUR(12.5).String()},
		{EUR(-12.5), EUR(-12.5).String()},
	}
	for _, tc := range testCases {
		if got := tc.in.SignedString(); got != tc.want {
			t.Errorf("SignedString(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPercent_Equal(t *testing.T) {
	if !Percent(33.33333).Equal(Percent(33.33334)) {
		t.Error("percents within precision must compare equal")
	}
	if Percent(33.3).Equal(Percent(33.4)) {
		t.Error("percents beyond precision must differ")
	}
}
