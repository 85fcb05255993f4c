// Package catalog backs the title autocomplete endpoint: game titles come
// from the RAWG catalog API, accessory suggestions from Google suggest.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultRAWGBaseURL    = "https://api.rawg.io/api/games"
	defaultSuggestBaseURL = "https://suggestqueries.google.com/complete/search"
)

type Client struct {
	// RAWGBaseURL and SuggestBaseURL are overridable for tests.
	RAWGBaseURL    string
	SuggestBaseURL string

	apiKey string
	http   *http.Client
}

// Suggestion is one autocomplete entry for a game title.
type Suggestion struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func New(rawgAPIKey string) *Client {
	return &Client{
		RAWGBaseURL:    defaultRAWGBaseURL,
		SuggestBaseURL: defaultSuggestBaseURL,
		apiKey:         rawgAPIKey,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SearchGames queries the RAWG catalog for titles matching the query.
func (c *Client) SearchGames(ctx context.Context, query string) ([]Suggestion, error) {
	u := fmt.Sprintf("%s?key=%s&search=%s&page_size=5",
		c.RAWGBaseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("rawg search: %w", err)
	}

	var payload struct {
		Results []struct {
			ID              int    `json:"id"`
			Name            string `json:"name"`
			BackgroundImage string `json:"background_image"`
			Screenshots     []struct {
				Image string `json:"image"`
			} `json:"short_screenshots"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("rawg search: decode: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(payload.Results))
	for _, r := range payload.Results {
		img := r.BackgroundImage
		if img == "" && len(r.Screenshots) > 0 {
			img = r.Screenshots[0].Image
		}
		suggestions = append(suggestions, Suggestion{ID: r.ID, Name: r.Name, Image: img})
	}
	return suggestions, nil
}

// SuggestAccessories returns plain-text suggestions from Google suggest,
// whose response is a JSON array of the form ["query", ["s1", "s2", ...]].
func (c *Client) SuggestAccessories(ctx context.Context, query string) ([]string, error) {
	u := fmt.Sprintf("%s?client=firefox&q=%s", c.SuggestBaseURL, url.QueryEscape(query))

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return nil, fmt.Errorf("suggest: decode: %w", err)
	}
	if len(parts) < 2 {
		return nil, nil
	}

	var suggestions []string
	if err := json.Unmarshal(parts[1], &suggestions); err != nil {
		return nil, fmt.Errorf("suggest: decode list: %w", err)
	}
	return suggestions, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
