// Package search implements meals.Service over a RecipePuppy style ingredient
// search API. Only Meals is supported; every other operation reports
// meals.ErrNotSupported.
//
// The API does not say whether more results exist, so every page advertises
// the next one. Callers stop paginating on the first empty page.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/five82/whattocook/internal/meals"
)

const (
	DefaultBaseURL   = "http://www.recipepuppy.com/api/"
	defaultUserAgent = "whattocook/0.1"
	requestTimeout   = 10 * time.Second
	maxBodyBytes     = 4 << 20
	firstPage        = 1
)

var _ meals.Service = (*Client)(nil)

// Client searches recipes by a fixed set of ingredients.
type Client struct {
	baseURL     *url.URL
	ingredients []string
	http        *http.Client
	limiter     *rate.Limiter
}

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

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewClient returns a client that searches for recipes using ingredients.
func NewClient(baseURL string, ingredients []string, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse search url %q: %w", baseURL, err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	base.RawQuery = ""
	base.Fragment = ""

	names := make([]string, 0, len(ingredients))
	for _, name := range ingredients {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	c := &Client{
		baseURL:     base,
		ingredients: names,
		http:        &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Ingredients returns the ingredient names the client searches for.
func (c *Client) Ingredients() []string {
	return append([]string(nil), c.ingredients...)
}

// Meals returns one page of search results. page 0 asks for the first page
// without a page parameter. NextPage is always page+1, or 2 after the first
// page.
func (c *Client) Meals(ctx context.Context, _ meals.Category, page int) (meals.Page, error) {
	if c == nil {
		return meals.Page{}, fmt.Errorf("client is nil")
	}
	query := url.Values{"i": {strings.Join(c.ingredients, ",")}}
	if page > 0 {
		query.Set("p", strconv.Itoa(page))
	}
	body, err := c.fetch(ctx, query)
	if err != nil {
		return meals.Page{}, err
	}
	if !gjson.ValidBytes(body) {
		return meals.Page{}, fmt.Errorf("decode search results: %w", meals.ErrInvalidResponse)
	}
	results := gjson.GetBytes(body, "results")
	if !results.IsArray() {
		return meals.Page{}, fmt.Errorf("search results missing: %w", meals.ErrInvalidResponse)
	}

	out := meals.Page{NextPage: nextPage(page)}
	results.ForEach(func(_, item gjson.Result) bool {
		out.Meals = append(out.Meals, toMeal(item))
		return true
	})
	return out, nil
}

func nextPage(page int) int {
	if page <= 0 {
		return firstPage + 1
	}
	return page + 1
}

// toMeal maps one search hit. Hits carry no id, so the id is derived from the
// recipe link to keep saved-list identity stable across searches.
func toMeal(item gjson.Result) meals.Meal {
	href := strings.TrimSpace(item.Get("href").String())
	m := meals.Meal{
		Name:         strings.TrimSpace(item.Get("title").String()),
		Category:     meals.SearchCategory.Name,
		Instructions: strings.TrimSpace(item.Get("ingredients").String()),
		Thumb:        strings.TrimSpace(item.Get("thumbnail").String()),
		Source:       href,
	}
	if href != "" {
		m.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(href)).String()
	} else {
		m.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(m.Name)).String()
	}
	return m
}

func (c *Client) fetch(ctx context.Context, query url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}
	target := *c.baseURL
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("search api returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("search: %w", meals.ErrNoResponse)
	}
	return body, nil
}

// RandomMeal is not supported by search.
func (c *Client) RandomMeal(context.Context) (meals.Meal, error) {
	return meals.Meal{}, fmt.Errorf("search random meal: %w", meals.ErrNotSupported)
}

// Image is not supported by search.
func (c *Client) Image(context.Context, string) ([]byte, error) {
	return nil, fmt.Errorf("search image: %w", meals.ErrNotSupported)
}

// Categories is not supported by search.
func (c *Client) Categories(context.Context) ([]meals.Category, error) {
	return nil, fmt.Errorf("search categories: %w", meals.ErrNotSupported)
}

// Meal is not supported by search.
func (c *Client) Meal(context.Context, meals.Meal) (meals.Meal, error) {
	return meals.Meal{}, fmt.Errorf("search meal: %w", meals.ErrNotSupported)
}
