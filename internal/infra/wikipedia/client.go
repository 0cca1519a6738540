package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jarvis/internal/application"
	"jarvis/internal/domain"
)

const userAgent = "jarvis-assistant/1.0 (https://github.com/jarvis-assistant)"

// Client looks up article summaries through the MediaWiki action API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient targets https://<language>.wikipedia.org unless baseURL is set.
func NewClient(language, baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if language == "" {
		language = "en"
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.wikipedia.org", language)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + "/w/api.php",
		httpClient: httpClient,
		logger:     logger,
	}
}

type searchResponse struct {
	Query struct {
		SearchInfo struct {
			Suggestion string `json:"suggestion"`
		} `json:"searchinfo"`
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type page struct {
	Title     string            `json:"title"`
	Missing   bool              `json:"missing"`
	Invalid   bool              `json:"invalid"`
	Extract   string            `json:"extract"`
	PageProps map[string]string `json:"pageprops"`
}

type pagesResponse struct {
	Query struct {
		Pages []page `json:"pages"`
	} `json:"query"`
}

type parseResponse struct {
	Parse struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"parse"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// Summary returns the first sentences of the article for topic.
func (c *Client) Summary(ctx context.Context, topic string, opts domain.SummaryOptions) (string, error) {
	title := topic
	if opts.AutoSuggest {
		suggested, err := c.suggest(ctx, topic)
		if err != nil {
			return "", err
		}
		title = suggested
	}

	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts|pageprops"},
		"ppprop":      {"disambiguation"},
		"explaintext": {"1"},
		"exintro":     {"1"},
		"titles":      {title},
	}
	if opts.Sentences > 0 {
		params.Set("exsentences", strconv.Itoa(opts.Sentences))
	}
	if opts.Redirect {
		params.Set("redirects", "1")
	}

	var resp pagesResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return "", err
	}

	p, err := firstPage(resp, title)
	if err != nil {
		return "", err
	}

	if _, ok := p.PageProps["disambiguation"]; ok {
		options, err := c.options(ctx, p.Title)
		if err != nil {
			c.logger.Warn("fetching disambiguation options", "title", p.Title, "error", err)
		}
		return "", &domain.DisambiguationError{Topic: p.Title, Options: options}
	}

	summary := strings.TrimSpace(p.Extract)
	if summary == "" {
		return "", fmt.Errorf("%q: %w", title, domain.ErrPageNotFound)
	}
	return summary, nil
}

// suggest resolves a free-form topic to an article title: the search
// suggestion when there is one, else the best hit.
func (c *Client) suggest(ctx context.Context, topic string) (string, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {topic},
		"srlimit":  {"1"},
		"srinfo":   {"suggestion"},
		"srprop":   {""},
	}

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return "", err
	}

	if s := resp.Query.SearchInfo.Suggestion; s != "" {
		return s, nil
	}
	if len(resp.Query.Search) > 0 {
		return resp.Query.Search[0].Title, nil
	}
	return "", fmt.Errorf("%q: %w", topic, domain.ErrPageNotFound)
}

// options renders the disambiguation page and lists its candidates in the
// order the page gives them.
func (c *Client) options(ctx context.Context, title string) ([]string, error) {
	params := url.Values{
		"action":             {"parse"},
		"page":               {title},
		"prop":               {"text"},
		"disableeditsection": {"1"},
		"disabletoc":         {"1"},
	}

	var resp parseResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		if resp.Error.Code == "missingtitle" {
			return nil, fmt.Errorf("%q: %w", title, domain.ErrPageNotFound)
		}
		return nil, fmt.Errorf("wikipedia API error %s: %s", resp.Error.Code, resp.Error.Info)
	}

	return disambiguationOptions(resp.Parse.Text)
}

func firstPage(resp pagesResponse, title string) (page, error) {
	if len(resp.Query.Pages) == 0 {
		return page{}, fmt.Errorf("%q: %w", title, domain.ErrPageNotFound)
	}
	p := resp.Query.Pages[0]
	if p.Missing || p.Invalid {
		return page{}, fmt.Errorf("%q: %w", title, domain.ErrPageNotFound)
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("format", "json")
	params.Set("formatversion", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("wikipedia API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

var _ application.Encyclopedia = (*Client)(nil)
