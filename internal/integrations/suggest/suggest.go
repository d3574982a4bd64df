package suggest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bullfinance/ledger-service/internal/config"
	"github.com/bullfinance/ledger-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Client handles integration with the category-suggestion collaborator
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new category-suggestion client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.SuggestURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Suggest asks the collaborator for a category. Any failure degrades to the
// neutral zero-confidence suggestion so the obligation workflow is never
// blocked by an outage.
func (c *Client) Suggest(request models.SuggestionRequest) models.CategorySuggestion {
	suggestion, err := c.suggest(request)
	if err != nil {
		c.log.Warnf("Category suggestion failed for client %d: %v", request.ClientID, err)
		return models.CategorySuggestion{}
	}
	return suggestion
}

func (c *Client) suggest(request models.SuggestionRequest) (models.CategorySuggestion, error) {
	var suggestion models.CategorySuggestion

	payload, err := json.Marshal(request)
	if err != nil {
		return suggestion, fmt.Errorf("failed to encode request: %v", err)
	}

	resp, err := c.client.Post(c.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return suggestion, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return suggestion, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&suggestion); err != nil {
		return suggestion, fmt.Errorf("failed to decode response: %v", err)
	}
	return suggestion, nil
}
