package googlebooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/yanqian/recombooks/internal/domain/recommendation"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Client searches the Google Books volumes API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client. An empty key is accepted; lookups fail
// until one is configured.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchTitle returns the most relevant volume for title.
func (c *Client) SearchTitle(ctx context.Context, title string) (recommendation.Volume, bool, error) {
	if c.apiKey == "" {
		return recommendation.Volume{}, false, errors.New("google books api key is not configured")
	}

	query := url.Values{}
	query.Set("q", title)
	query.Set("orderBy", "relevance")
	query.Set("maxResults", "1")
	query.Set("key", c.apiKey)
	endpoint := c.baseURL + "/volumes?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return recommendation.Volume{}, false, fmt.Errorf("build volumes request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return recommendation.Volume{}, false, fmt.Errorf("volumes request failed: %w", redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return recommendation.Volume{}, false, fmt.Errorf("volumes request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return recommendation.Volume{}, false, fmt.Errorf("decode volumes response: %w", err)
	}
	if len(raw.Items) == 0 {
		return recommendation.Volume{}, false, nil
	}
	return raw.Items[0].normalize(), true, nil
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
	SaleInfo   saleInfo   `json:"saleInfo"`
}

type volumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	AverageRating float64  `json:"averageRating"`
	RatingsCount  int      `json:"ratingsCount"`
	ImageLinks    struct {
		SmallThumbnail string `json:"smallThumbnail"`
		Thumbnail      string `json:"thumbnail"`
	} `json:"imageLinks"`
}

type saleInfo struct {
	RetailPrice *struct {
		Amount       float64 `json:"amount"`
		CurrencyCode string  `json:"currencyCode"`
	} `json:"retailPrice"`
}

func (v volume) normalize() recommendation.Volume {
	out := recommendation.Volume{
		ID:            v.ID,
		Title:         v.VolumeInfo.Title,
		Authors:       v.VolumeInfo.Authors,
		Description:   v.VolumeInfo.Description,
		AverageRating: v.VolumeInfo.AverageRating,
		RatingsCount:  v.VolumeInfo.RatingsCount,
		Thumbnail:     v.VolumeInfo.ImageLinks.Thumbnail,
	}
	if v.SaleInfo.RetailPrice != nil {
		out.PriceAmount = v.SaleInfo.RetailPrice.Amount
		out.PriceCurrency = v.SaleInfo.RetailPrice.CurrencyCode
	}
	return out
}

func redactKey(err error, key string) error {
	msg := err.Error()
	redacted := strings.ReplaceAll(strings.ReplaceAll(msg, url.QueryEscape(key), "REDACTED"), key, "REDACTED")
	if redacted == msg {
		return err
	}
	return errors.New(redacted)
}
