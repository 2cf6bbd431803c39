package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/dataflow"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope is the response shape every backend endpoint returns.
type Envelope struct {
	HTTPCode int             `json:"httpCode"`
	Status   string          `json:"status"`
	Category string          `json:"category"`
	Remark   string          `json:"remark"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
}

func (e Envelope) ok() bool {
	return strings.EqualFold(e.Status, "success")
}

func (e Envelope) text() string {
	if e.Remark != "" {
		return e.Remark
	}
	return e.Message
}

// APIError is returned when the backend answers with a non-success envelope
// or a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.Status)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.Status, e.Message)
}

// Message returns the backend's own message for err, or fallback when the
// error carries none (network failures, decode errors).
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusCode maps err to the status the dashboard should answer with.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of the client that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) flow(method, url string) *dataflow.DataFlow {
	g := gout.New(c.http)
	switch method {
	case http.MethodPost:
		return g.POST(url)
	case http.MethodPut:
		return g.PUT(url)
	case http.MethodPatch:
		return g.PATCH(url)
	case http.MethodDelete:
		return g.DELETE(url)
	default:
		return g.GET(url)
	}
}

// do performs one request and decodes the envelope's data into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var (
		env  Envelope
		code int
	)

	headers := gout.H{"Accept": "application/json"}
	if c.token != "" {
		headers["Authorization"] = "Bearer " + c.token
	}

	df := c.flow(method, c.baseURL+path).
		WithContext(ctx).
		SetHeader(headers).
		BindJSON(&env).
		Code(&code)
	if body != nil {
		df = df.SetJSON(body)
	}

	if err := df.Do(); err != nil {
		if code >= 400 {
			return &APIError{Status: code}
		}
		return errors.Wrapf(err, "%s %s", method, path)
	}

	if code < 200 || code >= 300 || !env.ok() {
		if code < 400 {
			code = http.StatusBadRequest
		}
		return &APIError{Status: code, Message: env.text()}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := codec.Unmarshal(env.Data, out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, path)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var data loginData
	if err := c.do(ctx, http.MethodPost, "/api/login", loginRequest{Email: email, Password: password}, &data); err != nil {
		return "", err
	}
	if data.Token == "" {
		return "", &APIError{Status: http.StatusBadGateway, Message: "login response carried no token"}
	}
	return data.Token, nil
}
