// Package api talks to the Cat Collector backend: login, player records and
// game results.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/milk9111/catcollector/score"
)

var ErrNotLoggedIn = errors.New("api: not logged in")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Client is a small JSON client for the backend. It is not safe for
// concurrent Login calls; submissions may run concurrently once logged in.
type Client struct {
	baseURL  string
	http     *http.Client
	token    string
	playerID int
	name     string
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type playerResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Login authenticates, registering the account first when the login is
// rejected, then makes sure a player record exists for name.
func (c *Client) Login(ctx context.Context, name, password string) error {
	name = strings.TrimSpace(name)
	password = strings.TrimSpace(password)
	if name == "" || password == "" {
		return errors.New("api: name and password are required")
	}
	creds := credentials{Name: name, Password: password}

	token, err := c.login(ctx, creds)
	if err != nil {
		var se *StatusError
		if !errors.As(err, &se) {
			return err
		}
		if err := c.do(ctx, http.MethodPost, "/auth/register", creds, nil); err != nil {
			return fmt.Errorf("api: register %s: %w", name, err)
		}
		if token, err = c.login(ctx, creds); err != nil {
			return err
		}
	}
	c.token = token
	c.name = name

	var player playerResponse
	if err := c.do(ctx, http.MethodPost, "/players/create", map[string]string{"name": name}, &player); err != nil {
		return fmt.Errorf("api: create player %s: %w", name, err)
	}
	c.playerID = player.ID
	return nil
}

func (c *Client) login(ctx context.Context, creds credentials) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", errors.New("api: login returned no token")
	}
	return resp.Token, nil
}

// LoggedIn reports whether a token is held.
func (c *Client) LoggedIn() bool {
	return c.token != ""
}

// PlayerID returns the backend player record id, zero when unknown.
func (c *Client) PlayerID() int {
	return c.playerID
}

// SubmitResult stores one session result.
func (c *Client) SubmitResult(ctx context.Context, r score.Result) error {
	if !c.LoggedIn() {
		return ErrNotLoggedIn
	}
	body := map[string]int{
		"score":               r.Score,
		"goodCatsCollected":   r.Good,
		"badCatsCollected":    r.Bad,
		"chonkyCatsCollected": r.Chonky,
	}
	return c.do(ctx, http.MethodPost, "/gameresults", body, nil)
}

// UpdatePlayer writes the aggregate record of the logged in player.
func (c *Client) UpdatePlayer(ctx context.Context, r score.Result) error {
	if !c.LoggedIn() {
		return ErrNotLoggedIn
	}
	if c.playerID == 0 {
		return nil
	}
	body := map[string]int{
		"goodCatsCollected":   r.Good,
		"badCatsCollected":    r.Bad,
		"chonkyCatsCollected": r.Chonky,
		"bestScore":           r.Score,
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/players/%d", c.playerID), body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}
