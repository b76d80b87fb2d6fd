// Package inventree is a REST client for the InvenTree inventory system
package inventree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/entities"
	"github.com/cgriff80031/guitar-pedal-organizer/pkg/domain/repositories"
)

// Config holds connection settings for the InvenTree API
type Config struct {
	BaseURL    string
	Token      string
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(baseURL, token string) Config {
	return Config{
		BaseURL:    baseURL,
		Token:      token,
		MaxRetries: 3,
		RetryDelay: 500 * time.Millisecond,
		Timeout:    30 * time.Second,
	}
}

// Client talks to the InvenTree REST API with token auth. Transient failures
// (network errors, 5xx, 429) are retried with exponential backoff up to
// MaxRetries before surfacing a RemoteUnavailableError.
type Client struct {
	config Config
	http   *http.Client
	logger *zap.Logger

	// location pk cache, keyed by "parent/name"
	locationCache map[string]int
}

var _ repositories.InventoryGateway = (*Client)(nil)

// NewClient creates a new InvenTree API client
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 500 * time.Millisecond
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		config:        config,
		http:          &http.Client{Timeout: config.Timeout},
		logger:        logger,
		locationCache: make(map[string]int),
	}
}

type apiPart struct {
	PK           int     `json:"pk"`
	Name         string  `json:"name"`
	CategoryPath string  `json:"category_pathstring"`
	InStock      float64 `json:"in_stock"`
	MinimumStock float64 `json:"minimum_stock"`
}

type apiPage struct {
	Count   int             `json:"count"`
	Next    *string         `json:"next"`
	Results json.RawMessage `json:"results"`
}

type apiLocation struct {
	PK     int    `json:"pk"`
	Name   string `json:"name"`
	Parent *int   `json:"parent"`
}

type apiStockItem struct {
	PK       int     `json:"pk"`
	Part     int     `json:"part"`
	Quantity float64 `json:"quantity"`
}

// ListParts returns every part with its stock levels, walking the paginated
// part endpoint to the end.
func (c *Client) ListParts(ctx context.Context) ([]entities.InventoryRecord, error) {
	var records []entities.InventoryRecord

	endpoint := "/api/part/?limit=100"
	for endpoint != "" {
		var page apiPage
		if err := c.get(ctx, endpoint, &page); err != nil {
			return nil, err
		}

		var parts []apiPart
		if err := json.Unmarshal(page.Results, &parts); err != nil {
			return nil, fmt.Errorf("decoding part page: %w", err)
		}
		for _, part := range parts {
			records = append(records, entities.InventoryRecord{
				Name:         part.Name,
				CategoryPath: part.CategoryPath,
				Quantity:     entities.Quantity(part.InStock),
				MinQuantity:  entities.Quantity(part.MinimumStock),
			})
		}

		endpoint = ""
		if page.Next != nil {
			next, err := c.relativize(*page.Next)
			if err != nil {
				return nil, err
			}
			endpoint = next
		}
	}

	c.logger.Debug("listed parts", zap.Int("count", len(records)))
	return records, nil
}

// SetDefaultLocation records a slot as the default location for the part
// matching the identity. The Workshop/Unit/Drawer[/Compartment] location
// hierarchy is created on demand.
func (c *Client) SetDefaultLocation(ctx context.Context, identity entities.Identity, slot entities.StorageSlot) error {
	partPK, err := c.findPart(ctx, identity)
	if err != nil {
		return err
	}
	locationPK, err := c.ensureSlotLocation(ctx, slot)
	if err != nil {
		return err
	}

	payload := map[string]interface{}{"default_location": locationPK}
	if err := c.patch(ctx, fmt.Sprintf("/api/part/%d/", partPK), payload, nil); err != nil {
		return err
	}

	c.logger.Info("default location set",
		zap.String("identity", identity.Key()),
		zap.String("slot", slot.Label()))
	return nil
}

// MoveStock transfers on-hand stock of the identity into the slot. A
// quantity of zero moves every stock item of the part.
func (c *Client) MoveStock(ctx context.Context, identity entities.Identity, slot entities.StorageSlot, quantity entities.Quantity) error {
	partPK, err := c.findPart(ctx, identity)
	if err != nil {
		return err
	}
	locationPK, err := c.ensureSlotLocation(ctx, slot)
	if err != nil {
		return err
	}

	var page apiPage
	if err := c.get(ctx, fmt.Sprintf("/api/stock/?part=%d&limit=100", partPK), &page); err != nil {
		return err
	}
	var items []apiStockItem
	if err := json.Unmarshal(page.Results, &items); err != nil {
		return fmt.Errorf("decoding stock items: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("no stock items for part %d (%s)", partPK, identity)
	}

	moveAll := quantity <= 0
	remaining := float64(quantity)
	for _, item := range items {
		if !moveAll && remaining <= 0 {
			break
		}
		move := item.Quantity
		if !moveAll && move > remaining {
			move = remaining
		}
		payload := map[string]interface{}{
			"items": []map[string]interface{}{
				{"pk": item.PK, "quantity": move},
			},
			"location": locationPK,
		}
		if err := c.post(ctx, "/api/stock/transfer/", payload, nil); err != nil {
			return err
		}
		remaining -= move
	}

	c.logger.Info("stock moved",
		zap.String("identity", identity.Key()),
		zap.String("slot", slot.Label()),
		zap.Int64("quantity", int64(quantity)))
	return nil
}

// findPart locates the part whose name matches the identity value. Search is
// by value; an exact name match wins, otherwise the single search hit is
// taken and multiple hits are an error.
func (c *Client) findPart(ctx context.Context, identity entities.Identity) (int, error) {
	endpoint := "/api/part/?search=" + url.QueryEscape(identity.Value) + "&limit=100"
	var page apiPage
	if err := c.get(ctx, endpoint, &page); err != nil {
		return 0, err
	}
	var parts []apiPart
	if err := json.Unmarshal(page.Results, &parts); err != nil {
		return 0, fmt.Errorf("decoding part search: %w", err)
	}

	for _, part := range parts {
		if part.Name == identity.Value {
			return part.PK, nil
		}
	}
	if len(parts) == 1 {
		return parts[0].PK, nil
	}
	if len(parts) == 0 {
		return 0, fmt.Errorf("no part found for %s", identity)
	}
	return 0, fmt.Errorf("ambiguous part search for %s: %d hits", identity, len(parts))
}

// ensureSlotLocation resolves the stock location for a slot, creating the
// Workshop/Unit/Drawer[/Compartment] chain as needed.
func (c *Client) ensureSlotLocation(ctx context.Context, slot entities.StorageSlot) (int, error) {
	workshopPK, err := c.ensureLocation(ctx, "Workshop", nil)
	if err != nil {
		return 0, err
	}
	unitPK, err := c.ensureLocation(ctx, slot.Unit, &workshopPK)
	if err != nil {
		return 0, err
	}
	drawerPK, err := c.ensureLocation(ctx, slot.Drawer, &unitPK)
	if err != nil {
		return 0, err
	}
	if slot.Compartment == 0 {
		return drawerPK, nil
	}
	return c.ensureLocation(ctx, strconv.Itoa(slot.Compartment), &drawerPK)
}

func (c *Client) ensureLocation(ctx context.Context, name string, parent *int) (int, error) {
	cacheKey := name
	if parent != nil {
		cacheKey = strconv.Itoa(*parent) + "/" + name
	}
	if pk, ok := c.locationCache[cacheKey]; ok {
		return pk, nil
	}

	endpoint := "/api/stock/location/?name=" + url.QueryEscape(name)
	if parent != nil {
		endpoint += "&parent=" + strconv.Itoa(*parent)
	}
	var page apiPage
	if err := c.get(ctx, endpoint, &page); err != nil {
		return 0, err
	}
	var locations []apiLocation
	if err := json.Unmarshal(page.Results, &locations); err != nil {
		return 0, fmt.Errorf("decoding locations: %w", err)
	}
	for _, loc := range locations {
		if loc.Name == name {
			c.locationCache[cacheKey] = loc.PK
			return loc.PK, nil
		}
	}

	payload := map[string]interface{}{"name": name}
	if parent != nil {
		payload["parent"] = *parent
	}
	var created apiLocation
	if err := c.post(ctx, "/api/stock/location/", payload, &created); err != nil {
		return 0, err
	}
	c.locationCache[cacheKey] = created.PK
	return created.PK, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out interface{}) error {
	return c.do(ctx, http.MethodPost, endpoint, payload, out)
}

func (c *Client) patch(ctx context.Context, endpoint string, payload, out interface{}) error {
	return c.do(ctx, http.MethodPatch, endpoint, payload, out)
}

// do performs one API call with the bounded retry loop. Only transient
// failures retry; a 4xx other than 429 fails immediately.
func (c *Client) do(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	var lastErr error
	delay := c.config.RetryDelay
	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 1 {
			c.logger.Debug("retrying request",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		retryable, err := c.attempt(ctx, method, endpoint, body, out)
		if err == nil {
			return nil
		}
		if !retryable {
			return err
		}
		lastErr = err
	}

	return &entities.RemoteUnavailableError{
		Endpoint: endpoint,
		Attempts: c.config.MaxRetries,
		Err:      lastErr,
	}
}

// attempt performs a single HTTP exchange. The bool reports whether the
// failure is transient and worth retrying.
func (c *Client) attempt(ctx context.Context, method, endpoint string, body []byte, out interface{}) (bool, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+endpoint, reader)
	if err != nil {
		return false, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.config.Token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return true, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return true, fmt.Errorf("%s %s: status %d", method, endpoint, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("%s %s: status %d: %s", method, endpoint, resp.StatusCode, detail)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("decoding %s response: %w", endpoint, err)
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return false, nil
}

// relativize strips the base URL from a pagination link so the retry wrapper
// sees a consistent endpoint path.
func (c *Client) relativize(link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parsing pagination link %q: %w", link, err)
	}
	endpoint := parsed.Path
	if parsed.RawQuery != "" {
		endpoint += "?" + parsed.RawQuery
	}
	return endpoint, nil
}
