package prokerala

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/admin/astro-services/natal-api/internal/domain"
)

const (
	endpointPlanetPosition = "planet-position"
	endpointChart          = "chart"

	chartStyle = "south-indian"
)

// truncateString обрезает строку до указанной длины
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client - клиент для работы с Prokerala API
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewClient создаёт новый клиент для работы с астро-провайдером
func NewClient(cfg *Config, log *slog.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Log: log,
	}
}

// buildURL собирает полный URL запроса с query-параметрами.
// instant кодируется percent-encoding'ом как часть query-строки.
func (c *Client) buildURL(endpoint, instant string, variant domain.VariantTag, ayanamsa int, format string) string {
	q := url.Values{}
	q.Set("ayanamsa", strconv.Itoa(ayanamsa))
	q.Set("coordinates", c.cfg.coordinates())
	q.Set("datetime", instant)
	q.Set("chart_type", string(variant))
	q.Set("chart_style", chartStyle)
	q.Set("format", format)
	q.Set("la", "en")

	baseURL := strings.TrimSuffix(c.cfg.BaseURL, "/")
	return baseURL + "/" + endpoint + "?" + q.Encode()
}

// FetchPlanetPositions получает позиции планет для варианта карты (JSON)
func (c *Client) FetchPlanetPositions(ctx context.Context, instant string, variant domain.VariantTag, ayanamsa int) ([]byte, error) {
	url := c.buildURL(endpointPlanetPosition, instant, variant, ayanamsa, "json")
	return c.get(ctx, url, "application/json")
}

// FetchChartMarkup получает SVG-разметку карты для варианта
func (c *Client) FetchChartMarkup(ctx context.Context, instant string, variant domain.VariantTag, ayanamsa int) ([]byte, error) {
	url := c.buildURL(endpointChart, instant, variant, ayanamsa, "svg")
	return c.get(ctx, url, "application/xml")
}

// get выполняет один исходящий запрос. Ретраев нет: сетевые ошибки,
// таймауты и не-2xx статусы единообразно превращаются в ProviderError.
func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.ApiKey)
	req.Header.Set("Accept", accept)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &domain.ProviderError{
			Message: err.Error(),
			Timeout: isTimeout(err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ProviderError{
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Timeout: isTimeout(err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Log.Debug("prokerala API returned non-2xx status",
			"status_code", resp.StatusCode,
			"body_preview", truncateString(string(body), 200),
		)
		return nil, &domain.ProviderError{
			StatusCode: resp.StatusCode,
			Message:    truncateString(string(body), 500),
		}
	}

	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
