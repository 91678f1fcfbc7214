package dictionary

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"codeberg.org/snonux/glossarymaker/internal/logging"
)

// DefaultBaseURL is the krdict open API host
const DefaultBaseURL = "https://krdict.korean.go.kr"

// commonWordTypes are parts of speech that make a word common
var commonWordTypes = map[string]bool{
	"명사":  true,
	"대명사": true,
	"형용사": true,
	"동사":  true,
}

// Client looks words up in krdict
type Client struct {
	http   *resty.Client
	apiKey string
	cache  *Cache
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another host, used by tests
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(strings.TrimRight(url, "/"))
	}
}

// NewClient creates a dictionary client
// cache may be nil, in which case nothing is persisted.
func NewClient(apiKey string, cache *Cache, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(5 * time.Second),
		apiKey: strings.TrimSpace(apiKey),
		cache:  cache,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	XMLName      xml.Name `xml:"channel"`
	Total        int      `xml:"total"`
	TotalResults int      `xml:"total_results"`
	Items        []struct {
		Word   string `xml:"word"`
		Pos    string `xml:"pos"`
		Senses []struct {
			Definition string `xml:"definition"`
		} `xml:"sense"`
	} `xml:"item"`
}

type errorResponse struct {
	XMLName xml.Name `xml:"error"`
	Code    string   `xml:"error_code"`
	Message string   `xml:"message"`
}

// hasKey reports whether a usable API key is configured
func (c *Client) hasKey() bool {
	return c.apiKey != "" && !strings.HasPrefix(strings.ToUpper(c.apiKey), "YOUR_")
}

// Lookup returns dictionary information about word
// Words of one character and lookups without an API key are answered as
// not found without a request. Results of successful requests are cached.
func (c *Client) Lookup(ctx context.Context, word string) (Entry, error) {
	word = strings.TrimSpace(word)

	if c.cache != nil {
		if e, ok, err := c.cache.Get(word); err != nil {
			logging.Default().Warn("Dictionary cache read failed", "word", word, "err", err)
		} else if ok {
			return e, nil
		}
	}

	if word == "" || strings.HasPrefix(word, "##") || utf8.RuneCountInString(word) <= 1 {
		e := Entry{Word: word, Common: utf8.RuneCountInString(word) <= 1, WordType: "unknown"}
		c.store(e)
		return e, nil
	}

	if !c.hasKey() {
		return Entry{Word: word, WordType: "unknown"}, nil
	}

	e, err := c.search(ctx, word)
	if err != nil {
		return Entry{Word: word, WordType: "unknown"}, err
	}
	c.store(e)
	return e, nil
}

func (c *Client) store(e Entry) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Put(e); err != nil {
		logging.Default().Warn("Dictionary cache write failed", "word", e.Word, "err", err)
	}
}

func (c *Client) search(ctx context.Context, word string) (Entry, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":        c.apiKey,
			"q":          word,
			"translated": "y",
			"trans_lang": "1",
			"part":       "word",
			"sort":       "popular",
			"num":        "10",
		}).
		Get("/api/search")
	if err != nil {
		return Entry{}, fmt.Errorf("krdict request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Entry{}, fmt.Errorf("krdict returned status %d", resp.StatusCode())
	}

	return parseSearch(word, resp.Body())
}

// parseSearch turns a krdict XML answer into an Entry
func parseSearch(word string, body []byte) (Entry, error) {
	var apiErr errorResponse
	if err := xml.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		return Entry{}, fmt.Errorf("krdict error %s: %s", apiErr.Code, apiErr.Message)
	}

	var sr searchResponse
	if err := xml.Unmarshal(body, &sr); err != nil {
		return Entry{}, fmt.Errorf("failed to parse krdict response: %w", err)
	}

	e := Entry{Word: word, WordType: "unknown"}
	total := sr.Total
	if total == 0 {
		total = sr.TotalResults
	}
	if total <= 0 || len(sr.Items) == 0 {
		return e, nil
	}

	first := sr.Items[0]
	e.Found = true
	if pos := strings.TrimSpace(first.Pos); pos != "" {
		e.WordType = pos
	}
	for _, item := range sr.Items {
		for _, s := range item.Senses {
			if len(e.Meanings) == 3 {
				break
			}
			if d := strings.TrimSpace(s.Definition); d != "" {
				e.Meanings = append(e.Meanings, d)
			}
		}
	}
	e.Common = utf8.RuneCountInString(word) <= 3 || commonWordTypes[e.WordType]
	return e, nil
}

// Known reports whether word is a cached dictionary word
// It never makes a request.
func (c *Client) Known(word string) bool {
	if c.cache == nil {
		return false
	}
	e, ok, err := c.cache.Get(strings.TrimSpace(word))
	return err == nil && ok && e.Found
}
