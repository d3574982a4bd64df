package models

import "time"

// Obligation direction.
const (
	TypePayable    = "payable"
	TypeReceivable = "receivable"
)

// Obligation status. StatusOverdue is derived at read time and is never
// written to the database.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

// Recurrence rules.
const (
	RecurrenceNone    = "none"
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceYearly  = "yearly"
)

// Obligation represents a promise to pay or receive money
type Obligation struct {
	ID                int64      `json:"id"`
	ClientID          int64      `json:"client_id"`
	Type              string     `json:"type"` // payable or receivable
	Description       string     `json:"description"`
	Amount            float64    `json:"amount"`
	DueDate           time.Time  `json:"due_date"`
	Status            string     `json:"status"`
	PaymentDate       *time.Time `json:"payment_date,omitempty"`
	PaymentMethod     string     `json:"payment_method,omitempty"`
	CategoryID        *int64     `json:"category_id,omitempty"`
	CostCenterID      *int64     `json:"cost_center_id,omitempty"`
	SupplierID        *int64     `json:"supplier_id,omitempty"`
	CustomerID        *int64     `json:"customer_id,omitempty"`
	BankAccountID     *int64     `json:"bank_account_id,omitempty"`
	ContactName       string     `json:"contact_name,omitempty"`
	ContactEmail      string     `json:"contact_email,omitempty"`
	IsRecurring       bool       `json:"is_recurring"`
	Recurrence        string     `json:"recurrence,omitempty"`
	RecurrenceEndDate *time.Time `json:"recurrence_end_date,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
