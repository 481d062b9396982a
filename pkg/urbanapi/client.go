package urbanapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"urban-assistant-be/pkg/cache"
)

var ErrMissingTerritory = errors.New("territory requires a name/id or coordinates")

const (
	contextByTextPath = "/api_llm/context_by_text/"
	contextByGeomPath = "/api_llm/context_by_geom/"
)

// Client reads pre-aggregated summary tables from the urban statistics API
type Client struct {
	baseURL  string
	http     *http.Client
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewClient(baseURL string, timeout time.Duration, c cache.Cache, cacheTTL time.Duration) *Client {
	if c == nil {
		c = cache.Noop{}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

type textRequest struct {
	Table           string        `json:"table"`
	TerritoryNameID string        `json:"territory_name_id"`
	TerritoryType   TerritoryType `json:"territory_type"`
}

type geomRequest struct {
	Table             string   `json:"table"`
	UserSelectionZone Geometry `json:"user_selection_zone"`
}

// SummaryTable fetches one table for the territory. A name/id takes precedence
// over coordinates.
func (c *Client) SummaryTable(ctx context.Context, table string, t Territory) (json.RawMessage, error) {
	var (
		path    string
		payload any
	)

	switch {
	case t.HasName():
		path = contextByTextPath
		payload = textRequest{Table: table, TerritoryNameID: t.NameID.String(), TerritoryType: t.Type}
	case t.HasCoordinates():
		geom, err := TypedGeometry(t.Coordinates)
		if err != nil {
			return nil, err
		}
		path = contextByGeomPath
		payload = geomRequest{Table: table, UserSelectionZone: geom}
	default:
		return nil, ErrMissingTerritory
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	key := path + string(body)
	if cached, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	}

	raw, err := c.post(ctx, path, body)
	if err != nil {
		return nil, err
	}

	// cache failures only cost a refetch
	_ = c.cache.Set(ctx, key, raw, c.cacheTTL)
	return raw, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("urban api request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("urban api error: status %d", resp.StatusCode)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("urban api returned invalid json")
	}
	return raw, nil
}
