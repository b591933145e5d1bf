// Package oddsapi fetches NFL point spreads from The Odds API. The feed
// endpoint returns every upcoming event in one payload; filtering down to a
// week's schedule happens in the sync service, so requests for different
// weeks collapse onto one upstream call.
package oddsapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/pickempool/pickem-api/internal/platform/logging"
	"github.com/pickempool/pickem-api/internal/platform/resilience"
	"github.com/pickempool/pickem-api/internal/usecase"
)

const (
	defaultBaseURL = "https://api.the-odds-api.com/v4"
	defaultSport   = "americanfootball_nfl"
)

var apiKeyParamRegex = regexp.MustCompile(`apiKey=[^&\s"']+`)
var errOddsAPITransient = crerr.New("odds api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Sport          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	sport          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	sport := strings.TrimSpace(cfg.Sport)
	if sport == "" {
		sport = defaultSport
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		sport:          sport,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// WeekOdds returns every feed matchup that currently carries a spreads
// market. The provider has no per-week filter, so the full upcoming slate
// comes back and the caller matches it against the schedule.
func (c *Client) WeekOdds(ctx context.Context, weekNumber int) ([]usecase.FeedGame, error) {
	if weekNumber <= 0 {
		return nil, fmt.Errorf("week number must be greater than zero")
	}

	path := "/sports/" + c.sport + "/odds"
	query := map[string]string{
		"regions":    "us",
		"markets":    "spreads",
		"oddsFormat": "american",
	}

	var events []oddsEvent
	if err := c.doJSON(ctx, path, query, &events); err != nil {
		return nil, fmt.Errorf("fetch odds week_number=%d: %w", weekNumber, err)
	}

	out := make([]usecase.FeedGame, 0, len(events))
	for _, event := range events {
		item, ok := mapEventToFeedGame(event)
		if !ok {
			continue
		}
		out = append(out, item)
	}

	c.logger.InfoContext(ctx, "odds feed fetched", "week_number", weekNumber, "event_count", len(events), "spread_count", len(out))
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "odds api circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: odds provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("apiKey", c.apiKey)

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL, path)
		if c.circuitEnabled {
			if reqErr != nil && isOddsAPICircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL, path string) ([]byte, error) {
	c.logger.DebugContext(ctx, "odds api request", "path", path, "curl_preview", buildOddsCurlPreview(redactAPIURL(fullURL)))

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errOddsAPITransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errOddsAPITransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errOddsAPITransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "odds api request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

type oddsEvent struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime string      `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []bookmaker `json:"bookmakers"`
}

type bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []market `json:"markets"`
}

type market struct {
	Key      string    `json:"key"`
	Outcomes []outcome `json:"outcomes"`
}

type outcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Point float64 `json:"point"`
}

// mapEventToFeedGame takes the first bookmaker's spreads market, matching
// how the line was chosen historically. Events without a spreads market are
// dropped.
func mapEventToFeedGame(event oddsEvent) (usecase.FeedGame, bool) {
	if len(event.Bookmakers) == 0 {
		return usecase.FeedGame{}, false
	}

	spreads := make(map[string]float64, 2)
	for _, m := range event.Bookmakers[0].Markets {
		if m.Key != "spreads" {
			continue
		}
		for _, o := range m.Outcomes {
			name := strings.TrimSpace(o.Name)
			if name == "" {
				continue
			}
			spreads[name] = o.Point
		}
		break
	}
	if len(spreads) == 0 {
		return usecase.FeedGame{}, false
	}

	item := usecase.FeedGame{Spreads: spreads}
	if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(event.CommenceTime)); err == nil {
		item.CommenceTime = parsed.UTC()
	}
	return item, true
}

func buildOddsCurlPreview(redactedURL string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -H 'accept: application/json' ")
	_, _ = buf.WriteString(shellQuote(redactedURL))
	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apiKey=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("apiKey") {
		query.Set("apiKey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func isOddsAPICircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errOddsAPITransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
