package client

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

	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/dmitrijs2005/nutriscan/internal/server/models"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Picture  []byte `json:"picture,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createProductRequest struct {
	CatalogID string `json:"catalog_id"`
	models.ProductAttributes
}

func (c *HTTPClient) Register(ctx context.Context, username, email string, password, picture []byte) (*models.Profile, error) {
	var p models.Profile
	req := signupRequest{Username: username, Email: email, Password: string(password), Picture: picture}
	if err := c.do(ctx, http.MethodPost, "/user/signup", "", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodPost, "/user/login", "", loginRequest{Email: email, Password: string(password)}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, ownerID, token string) ([]*models.Product, error) {
	var products []*models.Product
	if err := c.do(ctx, http.MethodGet, "/user/"+url.PathEscape(ownerID)+"/products", token, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, ownerID, token, catalogID string, attrs models.ProductAttributes) (*models.Product, error) {
	var p models.Product
	req := createProductRequest{CatalogID: catalogID, ProductAttributes: attrs}
	if err := c.do(ctx, http.MethodPost, "/user/"+url.PathEscape(ownerID)+"/products", token, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, token, catalogID string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(catalogID), token, nil, nil)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

// do sends body as JSON and decodes a 2xx response into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", common.SessionTokenScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var env struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return apiErr
	}
	apiErr.Code = env.Error.Code
	apiErr.Message = env.Error.Message
	return apiErr
}
