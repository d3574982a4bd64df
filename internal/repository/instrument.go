package repository

import (
	"fmt"

	"github.com/bullfinance/ledger-service/internal/models"
)

// CreateBoleto stores a generated boleto
func (r *Repository) CreateBoleto(b *models.Boleto) error {
	query := `
		INSERT INTO finance.boletos (client_id, obligation_id, nosso_numero, codigo_barras,
			linha_digitavel, amount, due_date, payer_name, payer_document, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, b.ClientID, b.ObligationID, b.NossoNumero, b.Barcode,
		b.DigitableLine, b.Amount, b.DueDate, b.PayerName, b.PayerDocument, b.Status).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create boleto: %w", err)
	}
	return nil
}

// CreatePixCharge stores a generated PIX charge
func (r *Repository) CreatePixCharge(p *models.PixCharge) error {
	query := `
		INSERT INTO finance.pix_charges (client_id, obligation_id, pix_key, pix_key_type,
			amount, description, qr_code, txid, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, p.ClientID, p.ObligationID, p.PixKey, p.PixKeyType,
		p.Amount, p.Description, p.QRCode, p.TxID, p.Status, p.ExpiresAt).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create pix charge: %w", err)
	}
	return nil
}
