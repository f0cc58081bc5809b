// Package carddata fetches Pokemon card metadata by scraping the official
// card database's detail pages.
package carddata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

const defaultBaseURL = "https://www.pokemon-card.com/card-search/details.php/card"

// ErrNoMetadata is returned when a detail page yields no usable card name.
var ErrNoMetadata = errors.New("unable to extract card name from detail page")

// RemoteCard describes a card resolved from the official search portal.
type RemoteCard struct {
	CardID    int
	Name      string
	DetailURL string
	ImageURL  string
}

// Client fetches card metadata over HTTP and caches successful lookups for
// the lifetime of the client. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	mu         sync.Mutex
	cache      map[int]RemoteCard
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP request timeout (default 10s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithBaseURL overrides the detail page base URL. Used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/")
	}
}

// NewClient creates a metadata client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		cache:      make(map[int]RemoteCard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DetailURL returns the detail page URL for a card id.
func (c *Client) DetailURL(cardID int) string {
	return fmt.Sprintf("%s/%d", c.baseURL, cardID)
}

// Fetch resolves metadata for a single card id. The card name comes from the
// page's og:title (falling back to the title meta tag); the image from
// og:image, falling back to the detail URL itself.
func (c *Client) Fetch(ctx context.Context, cardID int) (RemoteCard, error) {
	c.mu.Lock()
	if card, ok := c.cache[cardID]; ok {
		c.mu.Unlock()
		return card, nil
	}
	c.mu.Unlock()
	detailURL := c.DetailURL(cardID)
	meta, err := c.download(ctx, detailURL)
	if err != nil {
		return RemoteCard{}, err
	}
	name := meta["og:title"]
	if name == "" {
		name = meta["title"]
	}
	if name == "" {
		return RemoteCard{}, ErrNoMetadata
	}
	imageURL := meta["og:image"]
	if imageURL == "" {
		imageURL = detailURL
	}
	card := RemoteCard{
		CardID:    cardID,
		Name:      strings.TrimSpace(name),
		DetailURL: detailURL,
		ImageURL:  strings.TrimSpace(imageURL),
	}
	c.mu.Lock()
	c.cache[cardID] = card
	c.mu.Unlock()
	return card, nil
}

// FetchRange resolves every card id in the half-open range [start, end),
// silently skipping ids that fail to resolve. Results keep ascending id
// order.
func (c *Client) FetchRange(ctx context.Context, start, end int) ([]RemoteCard, error) {
	if end < start {
		return nil, fmt.Errorf("end must be greater than or equal to start")
	}
	var cards []RemoteCard
	for id := start; id < end; id++ {
		card, err := c.Fetch(ctx, id)
		if err != nil {
			log.Debug().Int("card_id", id).Err(err).Msg("skipping unresolvable card")
			continue
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (c *Client) download(ctx context.Context, url string) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return parseMetaTags(resp.Body)
}

// parseMetaTags extracts every <meta property/name + content> pair from an
// HTML document. Parsing never fails on malformed markup; x/net/html repairs
// what it can.
func parseMetaTags(r io.Reader) (map[string]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	meta := make(map[string]string)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var prop, content string
			for _, attr := range n.Attr {
				switch strings.ToLower(attr.Key) {
				case "property":
					prop = attr.Val
				case "name":
					if prop == "" {
						prop = attr.Val
					}
				case "content":
					content = attr.Val
				}
			}
			if prop != "" && content != "" {
				meta[prop] = content
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return meta, nil
}
