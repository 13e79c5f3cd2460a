// Package normalize maps raw statement rows onto canonical transaction fields.
package normalize

import (
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

// Row maps raw onto a Transaction using the alias table. For each field the first
// alias present in raw with a non-blank value wins, regardless of the row's
// own column order. Fields with no match keep the defaults of
// model.NewTransaction. Row never fails.
func Row(raw model.RawRow) model.Transaction {
	tx := model.NewTransaction()
	for _, f := range Fields {
		if v, ok := Lookup(raw, f); ok {
			set(&tx, f, v)
		}
	}
	return tx
}

// Lookup returns the trimmed value of the first alias of f present in raw with
// a non-blank value.
func Lookup(raw model.RawRow, f Field) (string, bool) {
	for _, alias := range aliases[f] {
		v, ok := raw.Get(alias)
		if !ok {
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	}
	return "", false
}

func set(tx *model.Transaction, f Field, v string) {
	switch f {
	case BankName:
		tx.BankName = v
	case AccountNumber:
		tx.AccountNumber = v
	case ValueDate:
		tx.ValueDate = v
	case TransactionDate:
		tx.TransactionDate = v
	case Narration:
		tx.Narration = v
	case ReferenceNo:
		tx.ReferenceNo = v
	case DebitAmount:
		tx.DebitAmount = v
	case CreditAmount:
		tx.CreditAmount = v
	case Balance:
		tx.Balance = v
	case Currency:
		tx.Currency = v
	}
}
