package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Client is the HTTP session used by one extraction run. Every request
// carries a rotating browser User-Agent unless a fixed one is configured.
type Client struct {
	http      *resty.Client
	userAgent string
}

func NewClient(timeout time.Duration, userAgent string) *Client {
	c := &Client{
		http:      resty.New().SetTimeout(timeout),
		userAgent: userAgent,
	}

	c.http.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader("User-Agent", c.nextUserAgent())
		return nil
	})

	return c
}

func (c *Client) nextUserAgent() string {
	if c.userAgent != "" {
		return c.userAgent
	}
	return browser.Random()
}

// Get fetches a URL and returns the raw body and status code. Network
// errors are classified into the scraper error taxonomy.
func (c *Client) Get(ctx context.Context, url string) ([]byte, int, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, 0, classifyNetworkError(err, url)
	}

	return resp.Body(), resp.StatusCode(), nil
}

// GetDocument fetches a URL and parses the body as an HTML document.
// Non-200 responses are treated as failures.
func (c *Client) GetDocument(ctx context.Context, url string) (*goquery.Document, []byte, error) {
	body, status, err := c.Get(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	if status == http.StatusNotFound {
		return nil, nil, fmt.Errorf("%w: %s", ErrWebsiteNotFound, url)
	}
	if status != http.StatusOK {
		return nil, nil, fmt.Errorf("unexpected status %d for %s", status, url)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrParse, url, err)
	}

	return doc, body, nil
}

// GetJSON fetches a URL and decodes the body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, status, err := c.Get(ctx, url)
	if err != nil {
		return err
	}

	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s", status, url)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParse, url, err)
	}

	return nil
}

func classifyNetworkError(err error, url string) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s", ErrTimeout, url)
	}

	return fmt.Errorf("%w: %s: %v", ErrWebsiteNotFound, url, err)
}
