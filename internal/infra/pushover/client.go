package pushover

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jarvis/internal/application"
)

const (
	defaultEndpoint = "https://api.pushover.net/1/messages.json"
	defaultTitle    = "Jarvis"
)

type Client struct {
	token      string
	userKey    string
	title      string
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a notifier that stays silent until both token and user
// key are set. A nil httpClient gets a 10s default.
func NewClient(token, userKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		token:      token,
		userKey:    userKey,
		title:      defaultTitle,
		endpoint:   defaultEndpoint,
		httpClient: httpClient,
	}
}

func (c *Client) WithTitle(title string) *Client {
	if title != "" {
		c.title = title
	}
	return c
}

func (c *Client) WithEndpoint(endpoint string) *Client {
	if endpoint != "" {
		c.endpoint = endpoint
	}
	return c
}

func (c *Client) Notify(ctx context.Context, message string) error {
	if c.token == "" || c.userKey == "" {
		return nil
	}

	data := url.Values{}
	data.Set("token", c.token)
	data.Set("user", c.userKey)
	data.Set("message", message)
	data.Set("title", c.title)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint,
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pushover error: %s", resp.Status)
	}

	return nil
}

var _ application.Notifier = (*Client)(nil)
