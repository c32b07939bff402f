// Package api is the HTTP client of the marketplace server. Every request
// carries the bearer token of the configured TokenSource.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mobilemart/marketplace/internal/core/domain"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

var (
	// ErrAuthFailed means the server refused the token. Callers should drop
	// the local session.
	ErrAuthFailed = errors.New("authentication failed")
	// ErrInvalidCredentials is the soft login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("mobile not found")
)

// Error is a non-2xx response other than an authentication failure.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// TokenSource supplies the bearer token; session.Store satisfies it.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New returns a Client for baseURL. tokens may be nil for unauthenticated use.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

type LoginUser struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type LoginResult struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type RegisterRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	MobileNumber string `json:"mobileNumber"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Password     string `json:"password"`
}

type NewMobile struct {
	Brand             string  `json:"brand"`
	Model             string  `json:"model"`
	Description       string  `json:"description"`
	MobilePrice       float64 `json:"mobilePrice"`
	AvailableQuantity int     `json:"availableQuantity"`
	UserID            string  `json:"userId,omitempty"`
}

type MobileUpdate struct {
	Brand             *string  `json:"brand,omitempty"`
	Model             *string  `json:"model,omitempty"`
	Description       *string  `json:"description,omitempty"`
	MobilePrice       *float64 `json:"mobilePrice,omitempty"`
	AvailableQuantity *int     `json:"availableQuantity,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

type listBody struct {
	UserID      string `json:"userId,omitempty"`
	SearchValue string `json:"searchValue"`
	SortValue   int    `json:"sortValue"`
}

// Login exchanges credentials for a token. A non-matching pair returns
// ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out struct {
		LoginResult
		Message string `json:"message"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/user/login", body, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, ErrInvalidCredentials
	}
	return &out.LoginResult, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/user", req, nil)
}

func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Catalog lists every mobile; sort is 1 for ascending price, -1 for descending.
func (c *Client) Catalog(ctx context.Context, search string, sort int) ([]domain.Mobile, error) {
	var items []domain.Mobile
	if err := c.do(ctx, http.MethodPost, "/mobile", listBody{SearchValue: search, SortValue: sort}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MyMobiles lists the caller's own mobiles. userID is sent for compatibility;
// the server scopes by the token regardless.
func (c *Client) MyMobiles(ctx context.Context, userID, search string, sort int) ([]domain.Mobile, error) {
	var items []domain.Mobile
	body := listBody{UserID: userID, SearchValue: search, SortValue: sort}
	if err := c.do(ctx, http.MethodPost, "/mobile/seller", body, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Mobile fetches one listing, returning ErrNotFound for an unknown id.
func (c *Client) Mobile(ctx context.Context, id string) (*domain.Mobile, error) {
	var out struct {
		domain.Mobile
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodGet, "/mobile/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, ErrNotFound
	}
	return &out.Mobile, nil
}

func (c *Client) AddMobile(ctx context.Context, m NewMobile) error {
	return c.do(ctx, http.MethodPost, "/mobile/add", m, nil)
}

func (c *Client) UpdateMobile(ctx context.Context, id string, u MobileUpdate) error {
	return c.mutate(ctx, http.MethodPut, id, u)
}

func (c *Client) DeleteMobile(ctx context.Context, id string) error {
	return c.mutate(ctx, http.MethodDelete, id, nil)
}

func (c *Client) mutate(ctx context.Context, method, id string, body any) error {
	err := c.do(ctx, method, "/mobile/"+url.PathEscape(id), body, nil)
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg messageBody
		_ = json.Unmarshal(data, &msg)
		if resp.StatusCode == http.StatusBadRequest && msg.Message == "Authentication failed" {
			return ErrAuthFailed
		}
		return &Error{Status: resp.StatusCode, Message: msg.Message}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
