package models

import "time"

// BankTransaction status. A line is mutated exactly once after import.
const (
	TransactionPending    = "pending"
	TransactionReconciled = "reconciled"
	TransactionIgnored    = "ignored"
)

// BankTransaction represents one row of an imported bank statement.
// Amount is signed: positive inflow, negative outflow.
type BankTransaction struct {
	ID                  int64     `json:"id"`
	ClientID            int64     `json:"client_id"`
	BankAccountID       int64     `json:"bank_account_id"`
	ImportBatchID       string    `json:"import_batch_id,omitempty"`
	TransactionDate     time.Time `json:"transaction_date"`
	Description         string    `json:"description"`
	Amount              float64   `json:"amount"`
	BalanceAfter        float64   `json:"balance_after"`
	Status              string    `json:"status"`
	MatchedObligationID *int64    `json:"matched_obligation_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// ReconciliationItem is a pending transaction together with the obligations
// it could settle, at most three, best match first.
type ReconciliationItem struct {
	Transaction BankTransaction `json:"transaction"`
	Candidates  []Obligation    `json:"candidates"`
}
