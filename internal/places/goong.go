// Package places подсказывает адреса и координаты через Goong Maps.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/booking-cms/internal/model"
)

var errNoKey = errors.New("goong api key not configured")

// DefaultBaseURL - адрес REST API Goong.
const DefaultBaseURL = "https://rsapi.goong.io"

// Центр и радиус поиска подсказок (центр Хошимина).
const (
	biasLocation = "10.7758439,106.7017555"
	biasRadius   = "50000"
)

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location model.LatLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type autocompleteResponse struct {
	Predictions []struct {
		Description          string `json:"description"`
		PlaceID              string `json:"place_id"`
		StructuredFormatting struct {
			MainText      string `json:"main_text"`
			SecondaryText string `json:"secondary_text"`
		} `json:"structured_formatting"`
	} `json:"predictions"`
}

// Client обращается к Goong. Ошибки не возвращаются: без подсказок форма работает.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Geocode возвращает координаты первого найденного адреса или nil.
func (c *Client) Geocode(ctx context.Context, address string) *model.LatLng {
	var res geocodeResponse
	if err := c.get(ctx, "/geocode", url.Values{"address": {address}}, &res); err != nil {
		c.logger.Warn("geocoding failed", zap.Error(err))
		return nil
	}
	if len(res.Results) == 0 {
		return nil
	}
	loc := res.Results[0].Geometry.Location
	return &loc
}

// Autocomplete возвращает подсказки адресов; при ошибке - пустой список.
func (c *Client) Autocomplete(ctx context.Context, input string) []model.PlaceSuggestion {
	out := []model.PlaceSuggestion{}
	if strings.TrimSpace(input) == "" {
		return out
	}

	var res autocompleteResponse
	q := url.Values{"input": {input}, "location": {biasLocation}, "radius": {biasRadius}}
	if err := c.get(ctx, "/Place/AutoComplete", q, &res); err != nil {
		c.logger.Warn("autocomplete failed", zap.Error(err))
		return out
	}

	for _, p := range res.Predictions {
		out = append(out, model.PlaceSuggestion{
			Description:   p.Description,
			PlaceID:       p.PlaceID,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}
	return out
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dst any) error {
	if c.apiKey == "" {
		return errNoKey
	}
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
