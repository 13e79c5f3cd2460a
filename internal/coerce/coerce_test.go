package coerce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/normalize"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-31", "2024-01-31"},
		{"31-01-2024", "2024-01-31"},
		{"31/01/2024", "2024-01-31"},
		{"01/02/2024", "2024-02-01"},
		{"1.2.2024", "2024-02-01"},
		{"31-Jan-2024", "2024-01-31"},
		{"31 JAN 2024", "2024-01-31"},
		{"31/01/24", "2024-01-31"},
		{"Jan 31, 2024", "2024-01-31"},
		{" 2024-01-31 ", "2024-01-31"},
		{"2024-01-31 10:15:00", "2024-01-31"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Format(time.DateOnly))
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "31-13-2024", "1.2.3", "oct 7 '70", "1.2.0099"} {
		_, ok := ParseDate(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "1234.50", Amount("1,234.50").StringFixed(2))
	assert.Equal(t, "150000.00", Amount("1,50,000.00").StringFixed(2))
	assert.Equal(t, "0.00", Amount("abc").StringFixed(2))
	assert.Equal(t, "0.00", Amount("").StringFixed(2))
	assert.Equal(t, "12.35", Amount("12.345").StringFixed(2))
	assert.Equal(t, "500.00", Amount("-500").StringFixed(2))
}

func TestBalance(t *testing.T) {
	b := Balance("1,234.50")
	require.True(t, b.Valid)
	assert.Equal(t, "1234.50", b.Decimal.StringFixed(2))

	assert.False(t, Balance("abc").Valid)
	assert.False(t, Balance("").Valid)

	neg := Balance("-20.00")
	require.True(t, neg.Valid)
	assert.Equal(t, "-20.00", neg.Decimal.StringFixed(2))
}

func row(kv ...string) model.RawRow {
	r := model.NewRawRow()
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

func TestRecord_SalaryRow(t *testing.T) {
	raw := row(
		"Date", "2024-01-31",
		"Narration", "Salary",
		"Debit", "0",
		"Credit", "50,000.00",
		"Balance", "1,50,000.00",
	)
	rec, fb := Record(raw, normalize.Row(raw), model.Overrides{})

	assert.Empty(t, fb)
	assert.Equal(t, "2024-01-31", rec.TransactionDateString())
	assert.Equal(t, "", rec.ValueDateString())
	require.NotNil(t, rec.Narration)
	assert.Equal(t, "Salary", *rec.Narration)
	assert.Equal(t, "0.00", rec.DebitAmount.StringFixed(2))
	assert.Equal(t, "50000.00", rec.CreditAmount.StringFixed(2))
	require.True(t, rec.Balance.Valid)
	assert.Equal(t, "150000.00", rec.Balance.Decimal.StringFixed(2))
	assert.Equal(t, model.DefaultCurrency, rec.Currency)
	assert.Nil(t, rec.BankName)
	assert.Nil(t, rec.ReferenceNo)

	require.NotNil(t, rec.RawPayload)
	assert.Equal(t,
		`{"Date":"2024-01-31","Narration":"Salary","Debit":"0","Credit":"50,000.00","Balance":"1,50,000.00"}`,
		*rec.RawPayload)
}

func TestRecord_MalformedCellsFallBack(t *testing.T) {
	raw := row(
		"Date", "not a date",
		"Debit", "abc",
		"Credit", "",
		"Balance", "n/a",
	)
	rec, fb := Record(raw, normalize.Row(raw), model.Overrides{})

	assert.Nil(t, rec.TransactionDate)
	assert.True(t, rec.DebitAmount.IsZero())
	assert.True(t, rec.CreditAmount.IsZero())
	assert.False(t, rec.Balance.Valid)
	assert.Equal(t, Fallbacks{"transaction_date", "debit_amount", "balance"}, fb)
}

func TestParseDecimal_Range(t *testing.T) {
	d, ok := ParseDecimal("999,999,999,999.99")
	require.True(t, ok)
	assert.Equal(t, "999999999999.99", d.StringFixed(2))

	for _, in := range []string{"1e30", "1000000000000", "-1,00,00,00,00,000.00"} {
		_, ok := ParseDecimal(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestRecord_OversizedAmountsFallBack(t *testing.T) {
	raw := row(
		"Narration", "Typo",
		"Debit", "1e30",
		"Credit", "10",
		"Balance", "1e15",
	)
	rec, fb := Record(raw, normalize.Row(raw), model.Overrides{})

	assert.True(t, rec.DebitAmount.IsZero())
	assert.Equal(t, "10.00", rec.CreditAmount.StringFixed(2))
	assert.False(t, rec.Balance.Valid)
	assert.Equal(t, Fallbacks{"debit_amount", "balance"}, fb)
}

func TestRecord_OutOfRangeDatesFallBack(t *testing.T) {
	raw := row(
		"Date", "1.2.3",
		"Value Date", "oct 7 '70",
		"Narration", "Cheque",
	)
	rec, fb := Record(raw, normalize.Row(raw), model.Overrides{})

	assert.Nil(t, rec.TransactionDate)
	assert.Nil(t, rec.ValueDate)
	assert.Equal(t, Fallbacks{"value_date", "transaction_date"}, fb)
}

func TestRecord_OverrideFillsMissingBankName(t *testing.T) {
	raw := row("Narration", "Rent")
	rec, _ := Record(raw, normalize.Row(raw), model.Overrides{BankName: "ICICI", AccountNumber: "0001"})

	require.NotNil(t, rec.BankName)
	assert.Equal(t, "ICICI", *rec.BankName)
	require.NotNil(t, rec.AccountNumber)
	assert.Equal(t, "0001", *rec.AccountNumber)
}

func TestRecord_RowValueBeatsOverride(t *testing.T) {
	raw := row("Bank Name", "HDFC", "Account Number", "9999")
	rec, _ := Record(raw, normalize.Row(raw), model.Overrides{BankName: "ICICI", AccountNumber: "0001"})

	assert.Equal(t, "HDFC", *rec.BankName)
	assert.Equal(t, "9999", *rec.AccountNumber)
}

func TestRecord_BlankOverrideLeavesNull(t *testing.T) {
	raw := row("Narration", "Rent")
	rec, _ := Record(raw, normalize.Row(raw), model.Overrides{BankName: "  "})
	assert.Nil(t, rec.BankName)
	assert.Nil(t, rec.AccountNumber)
}

func TestRecord_PayloadKeepsMissingCells(t *testing.T) {
	raw := model.NewRawRow()
	raw.Set("Date", "2024-01-31")
	raw.SetMissing("Balance")
	rec, _ := Record(raw, normalize.Row(raw), model.Overrides{})

	require.NotNil(t, rec.RawPayload)
	assert.Equal(t, `{"Date":"2024-01-31","Balance":null}`, *rec.RawPayload)
}
