package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bullfinance/ledger-service/internal/models"
	"github.com/google/uuid"
)

// amountEpsilon is the currency-unit band for candidate matching.
const amountEpsilon = 0.01

// maxCandidates caps how many obligations are proposed per statement line.
const maxCandidates = 3

// RowError reports a malformed statement row by its 1-based data row number.
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("statement row %d: %s", e.Row, e.Reason)
}

// sanitizeAmount strips currency symbols and thousands separators, keeping
// digits, sign and decimal point, then parses the remainder.
func sanitizeAmount(raw string) (float64, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if !strings.ContainsAny(cleaned, "0123456789") {
		return 0, fmt.Errorf("no numeric value in %q", raw)
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable amount %q", raw)
	}
	return value, nil
}

// ParseStatement reads a delimited bank statement with a header row and
// columns Date,Description,Amount,Balance. A row with the wrong field count,
// an invalid date or an unparsable amount fails the batch with a RowError.
func ParseStatement(r io.Reader) ([]models.BankTransaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read statement header: %w", err)
	}

	var transactions []models.BankTransaction
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read statement: %w", err)
		}
		row++

		if len(record) != 4 {
			return nil, &RowError{Row: row, Reason: fmt.Sprintf("expected 4 fields, got %d", len(record))}
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
		if err != nil {
			return nil, &RowError{Row: row, Reason: fmt.Sprintf("invalid date %q", record[0])}
		}

		description := strings.TrimSpace(record[1])
		if description == "" {
			description = "Sem descrição"
		}

		amount, err := sanitizeAmount(record[2])
		if err != nil {
			return nil, &RowError{Row: row, Reason: err.Error()}
		}
		balance, err := sanitizeAmount(record[3])
		if err != nil {
			return nil, &RowError{Row: row, Reason: err.Error()}
		}

		transactions = append(transactions, models.BankTransaction{
			TransactionDate: date,
			Description:     description,
			Amount:          amount,
			BalanceAfter:    balance,
			Status:          models.TransactionPending,
		})
	}
	return transactions, nil
}

// ImportStatement parses and stores a statement file for one bank account.
// Returns the import batch id and the number of lines stored.
func (s *Service) ImportStatement(clientID, bankAccountID int64, r io.Reader) (string, int, error) {
	transactions, err := ParseStatement(r)
	if err != nil {
		return "", 0, err
	}
	if len(transactions) == 0 {
		return "", 0, fmt.Errorf("%w: statement has no data rows", ErrValidation)
	}

	batchID := uuid.NewString()
	for i := range transactions {
		transactions[i].ClientID = clientID
		transactions[i].BankAccountID = bankAccountID
		transactions[i].ImportBatchID = batchID
	}

	if err := s.store.InsertBankTransactions(transactions); err != nil {
		return "", 0, err
	}
	s.log.Infof("Imported %d bank transactions for client %d (batch %s)", len(transactions), clientID, batchID)
	return batchID, len(transactions), nil
}

// matchCandidates filters and ranks the obligations a statement line could
// settle: same direction as the line's sign, amount within the epsilon band,
// ordered by due-date proximity to the transaction date then by id, capped
// at maxCandidates.
func matchCandidates(line models.BankTransaction, obligations []models.Obligation) []models.Obligation {
	target := math.Abs(line.Amount)
	var candidates []models.Obligation
	for _, o := range obligations {
		if math.Abs(o.Amount-target) < amountEpsilon {
			candidates = append(candidates, o)
		}
	}
	txDate := dateOnly(line.TransactionDate)
	sort.SliceStable(candidates, func(i, j int) bool {
		di := dateOnly(candidates[i].DueDate).Sub(txDate)
		dj := dateOnly(candidates[j].DueDate).Sub(txDate)
		if di < 0 {
			di = -di
		}
		if dj < 0 {
			dj = -dj
		}
		if di != dj {
			return di < dj
		}
		return candidates[i].ID < candidates[j].ID
	})
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

// PendingReconciliation lists the tenant's pending statement lines, each
// with its match candidates. Inflows match receivables, outflows payables.
func (s *Service) PendingReconciliation(clientID int64) ([]models.ReconciliationItem, error) {
	lines, err := s.store.ListPendingTransactions(clientID)
	if err != nil {
		return nil, err
	}

	receivables, err := s.store.PendingObligationsByType(clientID, models.TypeReceivable)
	if err != nil {
		return nil, err
	}
	payables, err := s.store.PendingObligationsByType(clientID, models.TypePayable)
	if err != nil {
		return nil, err
	}

	items := make([]models.ReconciliationItem, 0, len(lines))
	for _, line := range lines {
		var pool []models.Obligation
		switch {
		case line.Amount > 0:
			pool = receivables
		case line.Amount < 0:
			pool = payables
		}
		items = append(items, models.ReconciliationItem{
			Transaction: line,
			Candidates:  matchCandidates(line, pool),
		})
	}
	return items, nil
}

// ApplyMatch confirms a match between a statement line and an obligation.
// The line becomes reconciled and the obligation paid as of today; the
// underlying write is conditional so a second confirmation fails with a
// conflict instead of double-crediting.
func (s *Service) ApplyMatch(clientID, transactionID, obligationID int64, now time.Time) error {
	if err := s.store.ApplyMatch(clientID, transactionID, obligationID, dateOnly(now)); err != nil {
		return err
	}
	s.log.Infof("Reconciled transaction %d against obligation %d for client %d", transactionID, obligationID, clientID)
	return nil
}

// IgnoreTransaction discards a pending statement line from reconciliation.
func (s *Service) IgnoreTransaction(clientID, transactionID int64) error {
	return s.store.IgnoreTransaction(clientID, transactionID)
}

// SyncOpenBanking pulls transactions from the open-banking collaborator and
// stores them as pending statement lines. A collaborator failure degrades to
// an empty sync so the surrounding workflow is never blocked by an outage.
func (s *Service) SyncOpenBanking(clientID, bankAccountID int64) (int, error) {
	if s.fetcher == nil {
		return 0, nil
	}
	transactions, err := s.fetcher.FetchTransactions(clientID, bankAccountID)
	if err != nil {
		s.log.Warnf("Open banking sync failed for client %d account %d: %v", clientID, bankAccountID, err)
		return 0, nil
	}
	if len(transactions) == 0 {
		return 0, nil
	}

	batchID := uuid.NewString()
	for i := range transactions {
		transactions[i].ClientID = clientID
		transactions[i].BankAccountID = bankAccountID
		transactions[i].ImportBatchID = batchID
		transactions[i].Status = models.TransactionPending
	}
	if err := s.store.InsertBankTransactions(transactions); err != nil {
		return 0, err
	}
	return len(transactions), nil
}
