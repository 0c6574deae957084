package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"userstore/internal/domain"
)

// APIError is a non-2xx response.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Fields  []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// Is maps the response status back onto the domain error kinds.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrDuplicate:
		return e.Status == http.StatusBadRequest && len(e.Fields) > 0
	case domain.ErrValidation:
		return e.Status == http.StatusBadRequest && len(e.Fields) == 0
	}
	return false
}

type HTTP struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for the service at base; c may be nil.
func NewHTTP(base string, c *http.Client) *HTTP {
	if c == nil {
		c = http.DefaultClient
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: c}
}

func (c *HTTP) List(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) Create(ctx context.Context, u domain.User) error {
	return c.do(ctx, http.MethodPost, "/users", u, nil)
}

func (c *HTTP) Update(ctx context.Context, id string, patch domain.User) (domain.User, error) {
	var out struct {
		User domain.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *HTTP) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

func (c *HTTP) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return decodeError(method, path, resp)
	}
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(out)
}

func decodeError(method, path string, resp *http.Response) error {
	apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode, Message: resp.Status}
	var body struct {
		Error  string   `json:"error"`
		Msg    string   `json:"msg"`
		Fields []string `json:"fields"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		switch {
		case body.Error != "":
			apiErr.Message = body.Error
		case body.Msg != "":
			apiErr.Message = body.Msg
		}
		apiErr.Fields = body.Fields
	}
	return apiErr
}

var _ domain.UserClient = (*HTTP)(nil)
