package model

// DefaultCurrency is used when a statement carries no currency column.
const DefaultCurrency = "INR"

// Transaction is a statement row mapped onto the canonical field names. Every
// value is still source text; Coerce turns it into a Record.
type Transaction struct {
	BankName        string
	AccountNumber   string
	ValueDate       string
	TransactionDate string
	Narration       string
	ReferenceNo     string
	DebitAmount     string // "0" when the row has none
	CreditAmount    string // "0" when the row has none
	Balance         string
	Currency        string // DefaultCurrency when the row has none
}

// NewTransaction returns a Transaction holding the field defaults.
func NewTransaction() Transaction {
	return Transaction{
		DebitAmount:  "0",
		CreditAmount: "0",
		Currency:     DefaultCurrency,
	}
}

// Overrides are upload-level values used only when a row lacks the field.
type Overrides struct {
	BankName      string
	AccountNumber string
}
