package normalize

import "slices"

// Field names a canonical transaction attribute.
type Field string

const (
	BankName        Field = "bank_name"
	AccountNumber   Field = "account_number"
	ValueDate       Field = "value_date"
	TransactionDate Field = "transaction_date"
	Narration       Field = "narration"
	ReferenceNo     Field = "reference_no"
	DebitAmount     Field = "debit_amount"
	CreditAmount    Field = "credit_amount"
	Balance         Field = "balance"
	Currency        Field = "currency"
)

// Fields lists the canonical fields in schema order.
var Fields = []Field{
	BankName, AccountNumber, ValueDate, TransactionDate, Narration,
	ReferenceNo, DebitAmount, CreditAmount, Balance, Currency,
}

// aliases maps each canonical field to the header spellings seen in bank
// exports. Earlier spellings take precedence. The plain "Debit" and "Credit"
// headers sit last in their lists so that any more specific column wins.
var aliases = map[Field][]string{
	BankName: {
		"Bank Name", "Bank", "bank_name",
	},
	AccountNumber: {
		"Account Number", "Account No", "Account No.", "A/C No", "A/c No.",
		"Account", "account_number",
	},
	ValueDate: {
		"Value Date", "Value Dt", "Val Date", "value_date",
	},
	TransactionDate: {
		"Transaction Date", "Txn Date", "Tran Date", "Trans Date",
		"Posting Date", "Post Date", "Date", "transaction_date",
	},
	Narration: {
		"Narration", "Description", "Transaction Remarks", "Remarks",
		"Particulars", "Details", "Transaction Details", "narration",
	},
	ReferenceNo: {
		"Reference No", "Reference Number", "Ref No", "Ref No.",
		"Chq/Ref Number", "Chq./Ref.No.", "Cheque No", "Cheque Number",
		"Transaction ID", "reference_no",
	},
	DebitAmount: {
		"Debit Amount", "Withdrawal Amt.", "Withdrawal Amount",
		"Withdrawal Amount (INR )", "Withdrawals", "Withdrawal", "Dr Amount",
		"Dr", "debit_amount", "Debit",
	},
	CreditAmount: {
		"Credit Amount", "Deposit Amt.", "Deposit Amount",
		"Deposit Amount (INR )", "Deposits", "Deposit", "Cr Amount",
		"Cr", "credit_amount", "Credit",
	},
	Balance: {
		"Balance", "Closing Balance", "Available Balance",
		"Balance (INR )", "Running Balance", "balance",
	},
	Currency: {
		"Currency", "Ccy", "currency",
	},
}

// Aliases returns a copy of the header spellings recognized for f, in
// precedence order.
func Aliases(f Field) []string {
	return slices.Clone(aliases[f])
}
