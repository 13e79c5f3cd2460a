// Package coerce turns normalized statement text into typed record values.
// Malformed dates and amounts never fail a row: they fall back to null or
// zero so one bad cell does not stop a statement from importing.
package coerce

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/cleared-dev/statements/internal/model"
)

// dateLayouts are tried in order before the free-form parser. Numeric forms
// are day-first.
var dateLayouts = []string{
	time.DateOnly,
	"2-1-2006",
	"2/1/2006",
	"2.1.2006",
	"2006/1/2",
	"2-1-06",
	"2/1/06",
	"2-Jan-2006",
	"2 Jan 2006",
	"2-Jan-06",
	"2 Jan 06",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
	time.DateTime,
	"2/1/2006 15:04:05",
	"2-1-2006 15:04:05",
	"2/1/2006 15:04",
}

// ParseDate parses s as a calendar date. ok is false for blank or
// unrecognized input.
func ParseDate(s string) (date time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return checkYear(t)
		}
	}
	t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, false
	}
	return checkYear(t)
}

// Dates outside these years cannot be written as four-digit ISO dates.
const (
	minYear = 1000
	maxYear = 9999
)

func checkYear(t time.Time) (time.Time, bool) {
	if t.Year() < minYear || t.Year() > maxYear {
		return time.Time{}, false
	}
	return dateOnly(t), true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// maxMagnitude bounds amounts to what a numeric(14,2) column holds.
var maxMagnitude = decimal.New(1, 12)

// ParseDecimal strips thousands separators from s and parses the rest as a
// decimal rounded to two places. ok is false for blank or non-numeric input
// and for values too large to store.
func ParseDecimal(s string) (d decimal.Decimal, ok bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	d = d.Round(2)
	if d.Abs().GreaterThanOrEqual(maxMagnitude) {
		return decimal.Zero, false
	}
	return d, true
}

// Amount parses a debit or credit cell. Blank or malformed input yields zero;
// signed input is stored as its magnitude.
func Amount(s string) decimal.Decimal {
	d, ok := ParseDecimal(s)
	if !ok {
		return decimal.Zero
	}
	return d.Abs()
}

// Balance parses a running balance. Blank or malformed input yields an
// invalid NullDecimal, meaning the balance is unknown.
func Balance(s string) decimal.NullDecimal {
	d, ok := ParseDecimal(s)
	return decimal.NullDecimal{Decimal: d, Valid: ok}
}

// Fallbacks names the fields whose non-blank text could not be parsed and
// were stored as their default.
type Fallbacks []string

// Record builds the canonical record for one row. tx is the normalized form
// of raw; ov fills bank_name and account_number only when the row has none.
func Record(raw model.RawRow, tx model.Transaction, ov model.Overrides) (model.Record, Fallbacks) {
	var fb Fallbacks

	rec := model.Record{
		BankName:      optional(firstNonBlank(tx.BankName, ov.BankName)),
		AccountNumber: optional(firstNonBlank(tx.AccountNumber, ov.AccountNumber)),
		Narration:     optional(tx.Narration),
		ReferenceNo:   optional(tx.ReferenceNo),
		Currency:      firstNonBlank(tx.Currency, model.DefaultCurrency),
		RawPayload:    payload(raw),
	}

	rec.ValueDate = fb.date(tx.ValueDate, "value_date")
	rec.TransactionDate = fb.date(tx.TransactionDate, "transaction_date")
	rec.DebitAmount = fb.amount(tx.DebitAmount, "debit_amount")
	rec.CreditAmount = fb.amount(tx.CreditAmount, "credit_amount")
	rec.Balance = Balance(tx.Balance)
	if !rec.Balance.Valid {
		fb.note(tx.Balance, "balance")
	}

	return rec, fb
}

func (fb *Fallbacks) date(s, field string) *datatypes.Date {
	t, ok := ParseDate(s)
	if !ok {
		fb.note(s, field)
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

func (fb *Fallbacks) amount(s, field string) decimal.Decimal {
	if _, ok := ParseDecimal(s); !ok {
		fb.note(s, field)
	}
	return Amount(s)
}

// note records field when its text was present but unusable.
func (fb *Fallbacks) note(s, field string) {
	if strings.TrimSpace(s) != "" {
		*fb = append(*fb, field)
	}
}

func payload(raw model.RawRow) *string {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
