package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config sisältää detektiopalvelimen clientin konfiguraation
type Config struct {
	BaseURL string
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL: "http://127.0.0.1:5000",
		Timeout: 10 * time.Second,
	}
}

// Client wrappaa detektiopalvelimen HTTP API:n
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient luo uuden API clientin ja tarkistaa yhteyden
func NewClient(cfg Config) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: cfg.Timeout},
	}

	// Ping: palvelin vastaa aina /get_config pyyntöön
	if _, err := c.FetchDefaults(); err != nil {
		return nil, fmt.Errorf("detection server not reachable at %s: %w", c.baseURL, err)
	}

	return c, nil
}

// getRaw issues a GET request and returns the validated JSON body
func (c *Client) getRaw(path string) ([]byte, error) {
	resp, err := c.httpc.Get(c.baseURL + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return readJSONBody("GET", path, resp)
}

// postRaw issues a POST request and returns the validated JSON body
func (c *Client) postRaw(path, contentType string, body io.Reader) ([]byte, error) {
	resp, err := c.httpc.Post(c.baseURL+path, contentType, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return readJSONBody("POST", path, resp)
}

// getJSON issues a GET request and decodes the JSON response into out
func (c *Client) getJSON(path string, out interface{}) error {
	raw, err := c.getRaw(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	return nil
}

// readJSONBody reads the response body and rejects non-200 and non-JSON replies
func readJSONBody(method, path string, resp *http.Response) ([]byte, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s %s: unexpected status %s", method, path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%s %s: response is not valid JSON", method, path)
	}
	return body, nil
}
