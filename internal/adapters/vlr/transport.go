package vlr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	defaultBase = "https://www.vlr.gg"
	defaultAPI  = "https://vlrggapi.vercel.app"
	userAgent   = "fantasy-vct-bot/1.0"
)

// Client lee páginas de vlr.gg y la API JSON de vlrggapi.
type Client struct {
	http    *http.Client
	baseURL string
	apiURL  string
}

func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: defaultBase,
		apiURL:  defaultAPI,
	}
	for _, o := range opts {
		o(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	c.apiURL = strings.TrimRight(c.apiURL, "/")
	return c
}

// get hace el GET; maneja 404 y 429 con un reintento según Retry-After.
// El llamador cierra el body.
func (c *Client) get(ctx context.Context, u, accept string, retried bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vlr http: %w", err)
	}

	if res.StatusCode == http.StatusTooManyRequests && !retried {
		if sec, _ := strconv.Atoi(res.Header.Get("Retry-After")); sec > 0 {
			res.Body.Close()
			select {
			case <-time.After(time.Duration(sec) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return c.get(ctx, u, accept, true)
		}
	}

	if res.StatusCode == http.StatusNotFound {
		res.Body.Close()
		return nil, ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		res.Body.Close()
		return nil, &APIError{URL: u, Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return res, nil
}

func (c *Client) doHTML(ctx context.Context, u string) (*html.Node, error) {
	res, err := c.get(ctx, u, "text/html", false)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	doc, err := html.Parse(res.Body)
	if err != nil {
		return nil, fmt.Errorf("vlr html: %w", err)
	}
	return doc, nil
}

func (c *Client) doJSON(ctx context.Context, u string, out any) error {
	res, err := c.get(ctx, u, "application/json", false)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return json.NewDecoder(res.Body).Decode(out)
}
