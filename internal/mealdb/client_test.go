package mealdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/whattocook/internal/meals"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com/api?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "/api/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "whattocook/") {
			http.Error(w, "bad agent", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/random.php":
			_, _ = w.Write([]byte(`{"meals":[{"idMeal":"52772","strMeal":" Teriyaki Chicken ","strCategory":"Chicken","strMealThumb":"http://` + r.Host + `/img/1.jpg","strYoutube":"https://youtu.be/x"}]}`))
		case "/api/categories.php":
			_, _ = w.Write([]byte(`{"categories":[{"idCategory":"1","strCategory":"Beef","strCategoryThumb":"b.png","strCategoryDescription":"Cow"},{"idCategory":"2","strCategory":"Chicken"}]}`))
		case "/api/filter.php":
			if r.URL.Query().Get("c") == "Empty" {
				_, _ = w.Write([]byte(`{"meals":null}`))
				return
			}
			_, _ = w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":"Stew"},{"idMeal":"2","strMeal":"Pie"}]}`))
		case "/api/lookup.php":
			if r.URL.Query().Get("i") != "52772" {
				_, _ = w.Write([]byte(`{"meals":null}`))
				return
			}
			_, _ = w.Write([]byte(`{"meals":[{"idMeal":"52772","strMeal":"Teriyaki Chicken","strInstructions":"Cook it."}]}`))
		case "/img/1.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
		case "/img/empty.jpg":
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", WithTimeout(2*time.Second), WithRateLimit(100))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return server, c
}

func TestClient_Endpoints(t *testing.T) {
	t.Parallel()
	server, c := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	random, err := c.RandomMeal(ctx)
	if err != nil {
		t.Fatalf("RandomMeal returned error: %v", err)
	}
	if random.ID != "52772" || random.Name != "Teriyaki Chicken" || random.YouTube == "" {
		t.Fatalf("RandomMeal = %#v, want trimmed meal 52772 with video", random)
	}

	cats, err := c.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories returned error: %v", err)
	}
	if len(cats) != 2 || cats[0].Name != "Beef" || cats[0].Description != "Cow" {
		t.Fatalf("Categories = %#v, want Beef and Chicken", cats)
	}

	page, err := c.Meals(ctx, meals.Category{Name: "Beef"}, 0)
	if err != nil {
		t.Fatalf("Meals returned error: %v", err)
	}
	if len(page.Meals) != 2 || page.NextPage != 0 || page.Meals[0].Category != "Beef" {
		t.Fatalf("Meals = %#v, want 2 meals tagged Beef and no next page", page)
	}

	empty, err := c.Meals(ctx, meals.Category{Name: "Empty"}, 0)
	if err != nil {
		t.Fatalf("Meals(Empty) returned error: %v", err)
	}
	if len(empty.Meals) != 0 {
		t.Fatalf("Meals(Empty) = %#v, want none", empty)
	}

	full, err := c.Meal(ctx, meals.Meal{ID: "52772"})
	if err != nil || full.Instructions != "Cook it." {
		t.Fatalf("Meal = %#v, %v; want instructions", full, err)
	}
	if _, err := c.Meal(ctx, meals.Meal{ID: "1"}); !errors.Is(err, meals.ErrNotFound) {
		t.Fatalf("Meal(1) error = %v, want ErrNotFound", err)
	}

	img, err := c.Image(ctx, server.URL+"/img/1.jpg")
	if err != nil || len(img) != 3 {
		t.Fatalf("Image = %v, %v; want 3 bytes", img, err)
	}
	if _, err := c.Image(ctx, server.URL+"/img/empty.jpg"); !errors.Is(err, meals.ErrNoResponse) {
		t.Fatalf("Image(empty) error = %v, want ErrNoResponse", err)
	}
	if _, err := c.Image(ctx, "not a url"); !errors.Is(err, meals.ErrInvalidResponse) {
		t.Fatalf("Image(bad) error = %v, want ErrInvalidResponse", err)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/random.php":
			_, _ = w.Write([]byte("{not-json"))
		case "/categories.php":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.RandomMeal(context.Background())
	if !errors.Is(err, meals.ErrInvalidResponse) {
		t.Fatalf("RandomMeal error = %v, want ErrInvalidResponse", err)
	}

	_, err = c.Categories(context.Background())
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("Categories error = %v, want status 500 error", err)
	}
}

func TestClient_RandomEmptyResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.RandomMeal(context.Background()); !errors.Is(err, meals.ErrEmptyResponse) {
		t.Fatalf("RandomMeal error = %v, want ErrEmptyResponse", err)
	}
}

func TestClient_ImageSharesInFlightDownload(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte("img"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := c.Image(context.Background(), server.URL+"/a.png")
			results <- err
		}()
	}
	// Let both callers join the same flight before the server answers.
	time.Sleep(50 * time.Millisecond)
	close(release)

	for i := 0; i < 2; i++ {
		if err := <-results; err != nil {
			t.Fatalf("Image returned error: %v", err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("server hits = %d, want 1", got)
	}
}

func TestClient_ImageCancelledCallerLeavesDownloadToOthers(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte("img"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	first := make(chan error, 1)
	go func() {
		_, err := c.Image(ctx, server.URL+"/a.png")
		first <- err
	}()
	// The first caller owns the flight before the second one joins.
	time.Sleep(50 * time.Millisecond)

	type result struct {
		data []byte
		err  error
	}
	second := make(chan result, 1)
	go func() {
		data, err := c.Image(context.Background(), server.URL+"/a.png")
		second <- result{data, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	select {
	case err := <-first:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("cancelled caller error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("cancelled caller did not return")
	}

	close(release)
	res := <-second
	if res.err != nil {
		t.Fatalf("second caller returned error: %v", res.err)
	}
	if string(res.data) != "img" {
		t.Fatalf("second caller data = %q, want %q", res.data, "img")
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("server hits = %d, want 1", got)
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.Categories(context.Background()); err == nil {
		t.Fatalf("Categories on nil client returned nil error")
	}
}
