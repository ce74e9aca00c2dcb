// Package client is a typed facade over the HTTP API, the in-module
// counterpart of the SPA's service layer. It maps requests and
// responses one to one and holds no business logic of its own; the
// session cookie is carried automatically by the cookie jar.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/google/uuid"

	"blogspace/internal/authz"
	"blogspace/internal/errors"
	"blogspace/internal/model"
)

// Client issues API calls against a blogspace server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL (e.g. "http://localhost:8080/api").
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar},
	}, nil
}

// RegisterRequest mirrors the server's registration payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest mirrors the server's login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PostData carries the writable post fields.
type PostData struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CommentData carries the writable comment fields.
type CommentData struct {
	Content string `json:"content"`
}

// Register creates a user and stores the session cookie.
func (c *Client) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPost, "/auth/register", RegisterRequest{Name: name, Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the session cookie.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Profile returns the authenticated caller.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Posts lists all posts newest first.
func (c *Client) Posts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post fetches one post.
func (c *Client) Post(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+id.String(), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post authored by the caller.
func (c *Client) CreatePost(ctx context.Context, data PostData) (*model.Post, error) {
	var post model.Post
	if err := c.do(ctx, http.MethodPost, "/posts", data, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost partially updates a post.
func (c *Client) UpdatePost(ctx context.Context, id uuid.UUID, data PostData) (*model.Post, error) {
	var post model.Post
	if err := c.do(ctx, http.MethodPut, "/posts/"+id.String(), data, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post and its comments.
func (c *Client) DeletePost(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+id.String(), nil, nil)
}

// LikePost toggles the caller's like on a post.
func (c *Client) LikePost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := c.do(ctx, http.MethodPut, "/posts/"+id.String()+"/like", nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CommentsByPost lists a post's comments newest first.
func (c *Client) CommentsByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	if err := c.do(ctx, http.MethodGet, "/comments/post/"+postID.String(), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment comments on a post.
func (c *Client) CreateComment(ctx context.Context, postID uuid.UUID, data CommentData) (*model.Comment, error) {
	var comment model.Comment
	if err := c.do(ctx, http.MethodPost, "/comments/post/"+postID.String(), data, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment partially updates a comment.
func (c *Client) UpdateComment(ctx context.Context, id uuid.UUID, data CommentData) (*model.Comment, error) {
	var comment model.Comment
	if err := c.do(ctx, http.MethodPut, "/comments/"+id.String(), data, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment deletes a comment.
func (c *Client) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/comments/"+id.String(), nil, nil)
}

// CanEdit reports whether the viewer should be offered edit and delete
// controls for a resource owned by ownerID. Purely advisory: the server
// re-checks the same rule on every mutation.
func (c *Client) CanEdit(viewer *model.User, ownerID uuid.UUID) bool {
	if viewer == nil {
		return false
	}
	return authz.CanMutate(viewer.ID, viewer.Role, ownerID)
}

// APIError is a non-2xx response decoded into the server's error shape.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     []errors.FieldError
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeAPIError handles both error shapes the server produces: a
// structured ErrorResponse body, or echo's {"message": "..."} wrapper
// for plain-string errors.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	var structured errors.ErrorResponse
	if err := json.Unmarshal(raw, &structured); err == nil && structured.Error != "" {
		apiErr.Message = structured.Error
		apiErr.Code = structured.Code
		apiErr.Fields = structured.Fields
		return apiErr
	}

	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	return apiErr
}
