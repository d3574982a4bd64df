package openbanking

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/bullfinance/ledger-service/internal/config"
	"github.com/bullfinance/ledger-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Client handles integration with the open-banking statement provider
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new open-banking client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.OpenBankingURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// FetchTransactions pulls the recent transactions of one connected bank
// account. The caller treats any error as a degraded, empty sync.
func (c *Client) FetchTransactions(clientID, bankAccountID int64) ([]models.BankTransaction, error) {
	url := fmt.Sprintf("%s/accounts/%d/transactions?client=%d", c.url, bankAccountID, clientID)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("Open banking XML response: %s", string(body))

	return parseTransactionsXML(body)
}

// parseTransactionsXML extracts statement lines from the provider payload
func parseTransactionsXML(rawBody []byte) ([]models.BankTransaction, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	elements := doc.FindElements("//transactions/transaction")
	if len(elements) == 0 {
		return nil, nil
	}

	var transactions []models.BankTransaction
	for _, el := range elements {
		dateEl := el.FindElement("./date")
		amountEl := el.FindElement("./amount")
		if dateEl == nil || amountEl == nil {
			return nil, fmt.Errorf("transaction element missing date or amount")
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(dateEl.Text()))
		if err != nil {
			return nil, fmt.Errorf("failed to parse transaction date: %v", err)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountEl.Text()), 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transaction amount: %v", err)
		}

		description := ""
		if descEl := el.FindElement("./description"); descEl != nil {
			description = strings.TrimSpace(descEl.Text())
		}

		transactions = append(transactions, models.BankTransaction{
			TransactionDate: date,
			Description:     description,
			Amount:          amount,
			Status:          models.TransactionPending,
		})
	}
	return transactions, nil
}
