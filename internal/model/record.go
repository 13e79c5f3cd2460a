package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Record is a canonical transaction as stored in the transactions table.
type Record struct {
	ID              uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	BankName        *string             `gorm:"size:255" json:"bank_name"`
	AccountNumber   *string             `gorm:"size:255" json:"account_number"`
	ValueDate       *datatypes.Date     `gorm:"type:date" json:"value_date"`
	TransactionDate *datatypes.Date     `gorm:"type:date" json:"transaction_date"`
	Narration       *string             `gorm:"type:text" json:"narration"`
	ReferenceNo     *string             `gorm:"size:255" json:"reference_no"`
	DebitAmount     decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0" json:"debit_amount"`
	CreditAmount    decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0" json:"credit_amount"`
	Balance         decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"balance"`
	Currency        string              `gorm:"size:8;not null;default:'INR'" json:"currency"`
	RawPayload      *string             `gorm:"type:text" json:"-"`
	CreatedAt       time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

// TableName pins the table name used by the store.
func (Record) TableName() string { return "transactions" }

// ValueDateString returns the value date in ISO form, or "" when unknown.
func (r Record) ValueDateString() string { return formatDate(r.ValueDate) }

// TransactionDateString returns the transaction date in ISO form, or "" when unknown.
func (r Record) TransactionDateString() string { return formatDate(r.TransactionDate) }

func formatDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format(time.DateOnly)
}
