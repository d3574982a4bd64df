package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/bullfinance/ledger-service/internal/models"
	"github.com/bullfinance/ledger-service/internal/utils"
)

// GenerateBoleto encodes a boleto for one obligation and stores it. The
// barcode is deterministic for a given amount, due date and tracking number.
func (s *Service) GenerateBoleto(clientID, obligationID int64, payerName, payerDocument string) (*models.Boleto, error) {
	if strings.TrimSpace(payerName) == "" {
		return nil, fmt.Errorf("%w: payer name is required", ErrValidation)
	}

	obligation, err := s.store.ObligationByID(clientID, obligationID)
	if err != nil {
		return nil, err
	}

	nossoNumero := utils.GenerateNossoNumero()
	barcode := utils.GenerateBarcode(obligation.Amount, obligation.DueDate, nossoNumero)

	boleto := &models.Boleto{
		ClientID:      clientID,
		ObligationID:  obligation.ID,
		NossoNumero:   nossoNumero,
		Barcode:       barcode,
		DigitableLine: utils.BarcodeToDigitableLine(barcode),
		Amount:        obligation.Amount,
		DueDate:       obligation.DueDate,
		PayerName:     payerName,
		PayerDocument: payerDocument,
		Status:        models.InstrumentPending,
	}
	if err := s.store.CreateBoleto(boleto); err != nil {
		return nil, err
	}

	s.log.Infof("Boleto generated for obligation %d: R$ %.2f, payer %s", obligation.ID, boleto.Amount, payerName)
	return boleto, nil
}

// GeneratePix encodes a PIX charge for one obligation and stores it. The
// charge expires 24 hours after creation; the paid transition belongs to an
// external confirmation channel.
func (s *Service) GeneratePix(clientID, obligationID int64, pixKey, pixKeyType string) (*models.PixCharge, error) {
	if strings.TrimSpace(pixKey) == "" {
		return nil, fmt.Errorf("%w: pix key is required", ErrValidation)
	}

	obligation, err := s.store.ObligationByID(clientID, obligationID)
	if err != nil {
		return nil, err
	}

	txid := utils.GeneratePixTxID()
	charge := &models.PixCharge{
		ClientID:     clientID,
		ObligationID: obligation.ID,
		PixKey:       pixKey,
		PixKeyType:   pixKeyType,
		Amount:       obligation.Amount,
		Description:  obligation.Description,
		QRCode:       utils.GeneratePixPayload(pixKey),
		TxID:         txid,
		Status:       models.InstrumentPending,
		ExpiresAt:    utils.PixExpiry(time.Now()),
	}
	if err := s.store.CreatePixCharge(charge); err != nil {
		return nil, err
	}

	// The copy-paste payload is returned to the caller, never stored.
	charge.CopyPaste = utils.PixCopyPaste(pixKey, txid)

	s.log.Infof("PIX charge generated for obligation %d: R$ %.2f, txid %s", obligation.ID, charge.Amount, txid)
	return charge, nil
}
