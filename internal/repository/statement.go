package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bullfinance/ledger-service/internal/models"
)

// InsertBankTransactions stores an imported statement batch, all lines
// pending.
func (r *Repository) InsertBankTransactions(transactions []models.BankTransaction) error {
	query := `
		INSERT INTO finance.bank_transactions (client_id, bank_account_id, import_batch_id,
			transaction_date, description, amount, balance_after, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement insert: %w", err)
	}
	defer stmt.Close()

	for i := range transactions {
		t := &transactions[i]
		err := stmt.QueryRow(t.ClientID, t.BankAccountID, t.ImportBatchID,
			t.TransactionDate, t.Description, t.Amount, t.BalanceAfter, t.Status).
			Scan(&t.ID, &t.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert bank transaction: %w", err)
		}
	}
	return nil
}

// ListPendingTransactions retrieves unreconciled statement lines for the
// tenant, oldest first.
func (r *Repository) ListPendingTransactions(clientID int64) ([]models.BankTransaction, error) {
	query := `
		SELECT id, client_id, bank_account_id, import_batch_id, transaction_date,
			description, amount, balance_after, status, matched_obligation_id, created_at
		FROM finance.bank_transactions
		WHERE client_id = $1 AND status = 'pending'
		ORDER BY transaction_date, id`
	rows, err := r.db.Query(query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.BankTransaction
	for rows.Next() {
		var t models.BankTransaction
		var matched sql.NullInt64
		err := rows.Scan(&t.ID, &t.ClientID, &t.BankAccountID, &t.ImportBatchID,
			&t.TransactionDate, &t.Description, &t.Amount, &t.BalanceAfter,
			&t.Status, &matched, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank transaction: %w", err)
		}
		t.MatchedObligationID = nullInt(matched)
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// ApplyMatch reconciles a statement line against an obligation: the line
// becomes reconciled with the obligation reference, the obligation becomes
// paid with the given payment date. Both writes run in one transaction and
// are conditional on the rows still being pending, so a concurrent second
// confirmation loses with ErrConflict instead of double-crediting.
func (r *Repository) ApplyMatch(clientID, transactionID, obligationID int64, paymentDate time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin match transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE finance.bank_transactions
		SET status = 'reconciled', matched_obligation_id = $3
		WHERE id = $1 AND client_id = $2 AND status = 'pending'`,
		transactionID, clientID, obligationID)
	if err != nil {
		return fmt.Errorf("failed to reconcile bank transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}

	res, err = tx.Exec(`
		UPDATE finance.obligations
		SET status = 'paid', payment_date = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND client_id = $2 AND status = 'pending'`,
		obligationID, clientID, paymentDate)
	if err != nil {
		return fmt.Errorf("failed to mark obligation paid: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match: %w", err)
	}
	return nil
}

// IgnoreTransaction marks a pending statement line as ignored. No obligation
// is touched.
func (r *Repository) IgnoreTransaction(clientID, transactionID int64) error {
	res, err := r.db.Exec(`
		UPDATE finance.bank_transactions
		SET status = 'ignored'
		WHERE id = $1 AND client_id = $2 AND status = 'pending'`,
		transactionID, clientID)
	if err != nil {
		return fmt.Errorf("failed to ignore bank transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}
