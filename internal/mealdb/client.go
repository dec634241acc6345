package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/five82/whattocook/internal/meals"
)

// Ensure Client implements meals.Service at compile time.
var _ meals.Service = (*Client)(nil)

// Client talks to TheMealDB JSON API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	images    singleflight.Group
	userAgent string
}

const (
	DefaultBaseURL   = "https://www.themealdb.com/api/json/v1/1/"
	defaultUserAgent = "whattocook/0.1"
	requestTimeout   = 10 * time.Second
	maxImageBytes    = 8 << 20
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero disables throttling.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for baseURL. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RandomMeal fetches one random meal.
func (c *Client) RandomMeal(ctx context.Context) (meals.Meal, error) {
	if c == nil {
		return meals.Meal{}, fmt.Errorf("client is nil")
	}
	var payload mealsResponse
	if err := c.get(ctx, "random.php", nil, &payload); err != nil {
		return meals.Meal{}, err
	}
	if len(payload.Meals) == 0 {
		return meals.Meal{}, fmt.Errorf("random meal: %w", meals.ErrEmptyResponse)
	}
	return payload.Meals[0].toMeal(), nil
}

// Categories lists every meal category.
func (c *Client) Categories(ctx context.Context) ([]meals.Category, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload categoriesResponse
	if err := c.get(ctx, "categories.php", nil, &payload); err != nil {
		return nil, err
	}
	out := make([]meals.Category, 0, len(payload.Categories))
	for _, raw := range payload.Categories {
		out = append(out, raw.toCategory())
	}
	return out, nil
}

// Meals lists the meals in category. TheMealDB does not paginate, so the
// whole category comes back as one page and page is ignored.
func (c *Client) Meals(ctx context.Context, category meals.Category, _ int) (meals.Page, error) {
	if c == nil {
		return meals.Page{}, fmt.Errorf("client is nil")
	}
	name := strings.TrimSpace(category.Name)
	if name == "" {
		return meals.Page{}, fmt.Errorf("category name required")
	}
	var payload mealsResponse
	if err := c.get(ctx, "filter.php", url.Values{"c": {name}}, &payload); err != nil {
		return meals.Page{}, err
	}
	page := meals.Page{Meals: make([]meals.Meal, 0, len(payload.Meals))}
	for _, raw := range payload.Meals {
		m := raw.toMeal()
		if m.Category == "" {
			m.Category = name
		}
		page.Meals = append(page.Meals, m)
	}
	return page, nil
}

// Meal looks up the full record for meal.ID.
func (c *Client) Meal(ctx context.Context, meal meals.Meal) (meals.Meal, error) {
	if c == nil {
		return meals.Meal{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(meal.ID) == "" {
		return meals.Meal{}, fmt.Errorf("meal id required")
	}
	var payload mealsResponse
	if err := c.get(ctx, "lookup.php", url.Values{"i": {meal.ID}}, &payload); err != nil {
		return meals.Meal{}, err
	}
	if len(payload.Meals) == 0 {
		return meals.Meal{}, fmt.Errorf("meal %s: %w", meal.ID, meals.ErrNotFound)
	}
	return payload.Meals[0].toMeal(), nil
}

// Image downloads the image at rawURL. Concurrent requests for the same URL
// share one download, which runs detached from any single caller's context
// and is bounded by the client timeout. A cancelled caller returns its own
// context error and leaves the download to the others.
func (c *Client) Image(ctx context.Context, rawURL string) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	target, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("image url %q: %w", rawURL, meals.ErrInvalidResponse)
	}

	ch := c.images.DoChan(target.String(), func() (any, error) {
		return c.download(context.WithoutCancel(ctx), target)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Client) download(ctx context.Context, target *url.URL) ([]byte, error) {
	resp, err := c.send(ctx, target, "image/*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image %s: %w", target, meals.ErrNoResponse)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	rel := &url.URL{Path: path, RawQuery: query.Encode()}
	resp, err := c.send(ctx, c.baseURL.ResolveReference(rel), "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if err == io.EOF {
			return fmt.Errorf("decode %s: %w", path, meals.ErrNoResponse)
		}
		return fmt.Errorf("decode response: %w: %v", meals.ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, target *url.URL, accept string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode >= 400 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("api %s returned status %d", target.Path, resp.StatusCode)
	}
	return resp, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
