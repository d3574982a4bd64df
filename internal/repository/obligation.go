package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bullfinance/ledger-service/internal/models"
)

const obligationColumns = `id, client_id, type, description, amount, due_date, status,
		payment_date, payment_method, category_id, cost_center_id, supplier_id,
		customer_id, bank_account_id, contact_name, contact_email,
		is_recurring, recurrence, recurrence_end_date, notes, created_at, updated_at`

func scanObligation(row interface{ Scan(...any) error }) (*models.Obligation, error) {
	o := &models.Obligation{}
	var (
		paymentDate   sql.NullTime
		recurrenceEnd sql.NullTime
		categoryID    sql.NullInt64
		costCenterID  sql.NullInt64
		supplierID    sql.NullInt64
		customerID    sql.NullInt64
		bankAccountID sql.NullInt64
	)
	err := row.Scan(&o.ID, &o.ClientID, &o.Type, &o.Description, &o.Amount, &o.DueDate,
		&o.Status, &paymentDate, &o.PaymentMethod, &categoryID, &costCenterID,
		&supplierID, &customerID, &bankAccountID, &o.ContactName, &o.ContactEmail,
		&o.IsRecurring, &o.Recurrence, &recurrenceEnd, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if paymentDate.Valid {
		o.PaymentDate = &paymentDate.Time
	}
	if recurrenceEnd.Valid {
		o.RecurrenceEndDate = &recurrenceEnd.Time
	}
	o.CategoryID = nullInt(categoryID)
	o.CostCenterID = nullInt(costCenterID)
	o.SupplierID = nullInt(supplierID)
	o.CustomerID = nullInt(customerID)
	o.BankAccountID = nullInt(bankAccountID)
	return o, nil
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func int64Arg(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func timeArg(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}

// CreateObligation inserts a new obligation and fills generated fields
func (r *Repository) CreateObligation(o *models.Obligation) error {
	query := `
		INSERT INTO finance.obligations (client_id, type, description, amount, due_date,
			status, payment_date, payment_method, category_id, cost_center_id,
			supplier_id, customer_id, bank_account_id, contact_name, contact_email,
			is_recurring, recurrence, recurrence_end_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, o.ClientID, o.Type, o.Description, o.Amount, o.DueDate,
		o.Status, timeArg(o.PaymentDate), o.PaymentMethod, int64Arg(o.CategoryID),
		int64Arg(o.CostCenterID), int64Arg(o.SupplierID), int64Arg(o.CustomerID),
		int64Arg(o.BankAccountID), o.ContactName, o.ContactEmail,
		o.IsRecurring, o.Recurrence, timeArg(o.RecurrenceEndDate), o.Notes).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create obligation: %w", err)
	}
	return nil
}

// ObligationByID retrieves one obligation scoped to the tenant
func (r *Repository) ObligationByID(clientID, id int64) (*models.Obligation, error) {
	query := `SELECT ` + obligationColumns + `
		FROM finance.obligations
		WHERE id = $1 AND client_id = $2`
	o, err := scanObligation(r.db.QueryRow(query, id, clientID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find obligation: %w", err)
	}
	return o, nil
}

// ListObligations retrieves all obligations for the tenant, newest due first
func (r *Repository) ListObligations(clientID int64) ([]models.Obligation, error) {
	query := `SELECT ` + obligationColumns + `
		FROM finance.obligations
		WHERE client_id = $1
		ORDER BY due_date DESC, id DESC`
	return r.queryObligations(query, clientID)
}

// ListRecurringTemplates retrieves pending recurring obligations across all
// tenants; each row carries its own tenant id.
func (r *Repository) ListRecurringTemplates() ([]models.Obligation, error) {
	query := `SELECT ` + obligationColumns + `
		FROM finance.obligations
		WHERE is_recurring = TRUE AND status = 'pending'
		ORDER BY client_id, id`
	return r.queryObligations(query)
}

// PendingObligationsByType retrieves pending obligations of one direction
func (r *Repository) PendingObligationsByType(clientID int64, obligationType string) ([]models.Obligation, error) {
	query := `SELECT ` + obligationColumns + `
		FROM finance.obligations
		WHERE client_id = $1 AND type = $2 AND status = 'pending'
		ORDER BY due_date, id`
	return r.queryObligations(query, clientID, obligationType)
}

// ListOverdueObligations retrieves pending obligations past due as of the
// given date, across all tenants, for reminder delivery.
func (r *Repository) ListOverdueObligations(asOf time.Time) ([]models.Obligation, error) {
	query := `SELECT ` + obligationColumns + `
		FROM finance.obligations
		WHERE status = 'pending' AND due_date < $1
		ORDER BY client_id, due_date`
	return r.queryObligations(query, asOf)
}

func (r *Repository) queryObligations(query string, args ...any) ([]models.Obligation, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations: %w", err)
	}
	defer rows.Close()

	var obligations []models.Obligation
	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan obligation: %w", err)
		}
		obligations = append(obligations, *o)
	}
	return obligations, rows.Err()
}

// ObligationExists reports whether an obligation already exists for the
// (tenant, description, due date) triple. Sole idempotence guard for the
// recurrence expander.
func (r *Repository) ObligationExists(clientID int64, description string, dueDate time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM finance.obligations
			WHERE client_id = $1 AND description = $2 AND due_date = $3
		)`
	if err := r.db.QueryRow(query, clientID, description, dueDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check obligation existence: %w", err)
	}
	return exists, nil
}

// MarkObligationPaid transitions a pending obligation to paid. Conditional
// on the stored status still being pending.
func (r *Repository) MarkObligationPaid(clientID, id int64, paymentDate time.Time) error {
	query := `
		UPDATE finance.obligations
		SET status = 'paid', payment_date = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND client_id = $2 AND status = 'pending'`
	return r.conditionalUpdate(query, id, clientID, paymentDate)
}

// CancelObligation transitions a pending obligation to cancelled
func (r *Repository) CancelObligation(clientID, id int64) error {
	query := `
		UPDATE finance.obligations
		SET status = 'cancelled', updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND client_id = $2 AND status = 'pending'`
	return r.conditionalUpdate(query, id, clientID)
}

func (r *Repository) conditionalUpdate(query string, id, clientID int64, args ...any) error {
	res, err := r.db.Exec(query, append([]any{id, clientID}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update obligation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		// Either missing or no longer pending; distinguish for the caller.
		var exists bool
		check := `SELECT EXISTS (SELECT 1 FROM finance.obligations WHERE id = $1 AND client_id = $2)`
		if err := r.db.QueryRow(check, id, clientID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check obligation: %w", err)
		}
		if !exists {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}
