package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sales_insights/internal/models"
	"sales_insights/pkg/utils"
)

const DefaultSeedURL = "https://s3.amazonaws.com/roxiler.com/product_transaction.json"

// SeedClient downloads the seed dataset from the external provider.
type SeedClient struct {
	URL    string
	Client *http.Client
}

func NewSeedClient(url string, timeout time.Duration) *SeedClient {
	if url == "" {
		url = DefaultSeedURL
	}
	return &SeedClient{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (c *SeedClient) Source() string {
	return c.URL
}

// Fetch returns the provider's records. Every failure is a SeedFetchError.
func (c *SeedClient) Fetch(ctx context.Context) ([]models.SeedTransaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, utils.SeedFetchError(err, "invalid seed url")
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, utils.SeedFetchError(err, "failed to reach seed provider")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, utils.SeedFetchError(
			fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody)),
			"seed provider returned an error",
		)
	}

	var records []models.SeedTransaction
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, utils.SeedFetchError(fmt.Errorf("decode response: %w", err), "seed provider returned malformed data")
	}
	return records, nil
}
