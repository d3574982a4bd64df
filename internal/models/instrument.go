package models

import "time"

// Payment instrument status. The paid transition is driven by an external
// confirmation channel, never by this service.
const (
	InstrumentPending = "pending"
	InstrumentPaid    = "paid"
)

// Boleto is a bank-slip instrument derived from one obligation
type Boleto struct {
	ID            int64     `json:"id"`
	ClientID      int64     `json:"client_id"`
	ObligationID  int64     `json:"obligation_id"`
	NossoNumero   string    `json:"nosso_numero"`
	Barcode       string    `json:"codigo_barras"`
	DigitableLine string    `json:"linha_digitavel"`
	Amount        float64   `json:"amount"`
	DueDate       time.Time `json:"due_date"`
	PayerName     string    `json:"payer_name"`
	PayerDocument string    `json:"payer_document"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// PixCharge is an instant-payment instrument derived from one obligation
type PixCharge struct {
	ID           int64     `json:"id"`
	ClientID     int64     `json:"client_id"`
	ObligationID int64     `json:"obligation_id"`
	PixKey       string    `json:"pix_key"`
	PixKeyType   string    `json:"pix_key_type"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description"`
	QRCode       string    `json:"qr_code"`
	TxID         string    `json:"txid"`
	CopyPaste    string    `json:"copy_paste,omitempty"`
	Status       string    `json:"status"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
