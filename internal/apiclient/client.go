// Package apiclient is the HTTP client for the dashboard backend's auth API.
// It speaks the backend's exact wire shapes and translates error bodies
// (field errors, "detail", "non_field_errors") into messages the UI can show.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agsavn/foodwatch/internal/common"
	"github.com/agsavn/foodwatch/internal/user"
)

// APIError is a non-2xx response with the message extracted from its body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API rooted at baseURL (e.g.
// "http://localhost:8000/api"). No timeout is installed beyond the
// transport's defaults; requests are bounded by the caller's context.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// wire shapes

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type apiUser struct {
	ID         json.Number `json:"id"`
	Email      string      `json:"email"`
	FullName   string      `json:"full_name"`
	Role       string      `json:"role"`
	DateJoined string      `json:"date_joined"`
	LastLogin  *string     `json:"last_login"`
	IsActive   bool        `json:"is_active"`
}

type authResponse struct {
	User  apiUser `json:"user"`
	Token struct {
		Access string `json:"access"`
	} `json:"token"`
}

// mapUser converts the backend's user representation to the local model.
func mapUser(a apiUser) *user.User {
	u := &user.User{
		ID:     a.ID.String(),
		Name:   a.FullName,
		Email:  a.Email,
		Role:   user.RoleUser,
		Status: user.StatusInactive,
	}
	if u.Name == "" {
		u.Name = a.Email
	}
	if strings.EqualFold(a.Role, string(user.RoleAdmin)) {
		u.Role = user.RoleAdmin
	}
	if a.IsActive {
		u.Status = user.StatusActive
	}
	if t, err := time.Parse(time.RFC3339, a.DateJoined); err == nil {
		u.CreatedAt = t
	} else {
		u.CreatedAt = time.Now().UTC()
	}
	if a.LastLogin != nil {
		if t, err := time.Parse(time.RFC3339, *a.LastLogin); err == nil {
			u.LastLogin = &t
		}
	}
	return u
}

// Register creates an account. The backend responds with the created user
// and a token; callers typically follow with Login, which is what issues the
// session actually used.
func (c *Client) Register(ctx context.Context, name, email, pass string, role user.Role) (*user.User, string, error) {
	body := registerRequest{
		Email:    email,
		Password: pass,
		FullName: name,
		Role:     strings.ToUpper(string(role)),
	}

	var resp authResponse
	err := c.post(ctx, "/auth/register/", "", body, &resp, "registration failed")
	if err != nil {
		return nil, "", err
	}
	return mapUser(resp.User), resp.Token.Access, nil
}

func (c *Client) Login(ctx context.Context, email, pass string) (*user.User, string, error) {
	var resp authResponse
	err := c.post(ctx, "/auth/login/", "", loginRequest{Email: email, Password: pass}, &resp,
		common.ErrInvalidCredentials.Error())
	if err != nil {
		return nil, "", err
	}
	return mapUser(resp.User), resp.Token.Access, nil
}

// Verify asks the backend whether the bearer token is still good.
func (c *Client) Verify(ctx context.Context, tok string) error {
	return c.post(ctx, "/auth/verify/", tok, nil, nil, "invalid token")
}

// Me fetches the profile of the token's owner.
func (c *Client) Me(ctx context.Context, tok string) (*user.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me/", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	var a apiUser
	if err := c.do(req, &a, "failed to load profile"); err != nil {
		return nil, err
	}
	return mapUser(a), nil
}

func (c *Client) post(ctx context.Context, path, tok string, body, out any, fallback string) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	return c.do(req, out, fallback)
}

func (c *Client) do(req *http.Request, out any, fallback string) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data, fallback)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// errorMessage digs the most specific message out of a DRF-style error body:
// per-field errors first, then "detail", then "non_field_errors".
func errorMessage(data []byte, fallback string) string {
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return fallback
	}

	for _, key := range []string{"email", "password"} {
		if msg := firstString(body[key]); msg != "" {
			return msg
		}
	}
	if detail, ok := body["detail"].(string); ok && detail != "" {
		return detail
	}
	if msg := firstString(body["non_field_errors"]); msg != "" {
		return msg
	}
	return fallback
}

func firstString(v any) string {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	s, _ := list[0].(string)
	return s
}
