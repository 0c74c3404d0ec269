package records

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
)

// Client exposes the records REST API to out-of-process consumers.
type Client interface {
	ListRecords(ctx context.Context, search, dateRange string) ([]models.Record, error)
	GetRecord(ctx context.Context, id string) (*models.Record, error)
	CreateRecord(ctx context.Context, in models.RecordInput) (*models.Record, error)
	UpdateRecord(ctx context.Context, id string, in models.RecordInput) (*models.Record, error)
	DeleteRecord(ctx context.Context, id string) error
	Summary(ctx context.Context) (*models.Summary, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a client for the API served at baseURL.
func NewClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")+"/api/records").
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &APIClient{httpClient: restyClient}
}

// APIError is a non-2xx answer from the records API.
type APIError struct {
	StatusCode int                 `json:"-"`
	Message    string              `json:"message"`
	Detail     string              `json:"error"`
	Fields     []models.FieldError `json:"fields"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("records api error: status=%d, message=%s: %s", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("records api error: status=%d, message=%s", e.StatusCode, e.Message)
}

// Unwrap lets callers match not-found answers with errors.Is.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return models.ErrRecordNotFound
	}
	return nil
}

func (c *APIClient) ListRecords(ctx context.Context, search, dateRange string) ([]models.Record, error) {
	var result []models.Record
	req := c.httpClient.R().SetContext(ctx).SetResult(&result)
	if search != "" {
		req.SetQueryParam("search", search)
	}
	if dateRange != "" {
		req.SetQueryParam("range", dateRange)
	}

	if err := c.send(req, http.MethodGet, "", "list records"); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *APIClient) GetRecord(ctx context.Context, id string) (*models.Record, error) {
	result := new(models.Record)
	req := c.httpClient.R().SetContext(ctx).SetResult(result).SetPathParam("id", id)
	if err := c.send(req, http.MethodGet, "/{id}", "get record"); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *APIClient) CreateRecord(ctx context.Context, in models.RecordInput) (*models.Record, error) {
	result := new(models.Record)
	req := c.httpClient.R().SetContext(ctx).SetBody(in).SetResult(result)
	if err := c.send(req, http.MethodPost, "", "create record"); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *APIClient) UpdateRecord(ctx context.Context, id string, in models.RecordInput) (*models.Record, error) {
	result := new(models.Record)
	req := c.httpClient.R().SetContext(ctx).SetBody(in).SetResult(result).SetPathParam("id", id)
	if err := c.send(req, http.MethodPut, "/{id}", "update record"); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *APIClient) DeleteRecord(ctx context.Context, id string) error {
	req := c.httpClient.R().SetContext(ctx).SetPathParam("id", id)
	return c.send(req, http.MethodDelete, "/{id}", "delete record")
}

func (c *APIClient) Summary(ctx context.Context) (*models.Summary, error) {
	result := new(models.Summary)
	req := c.httpClient.R().SetContext(ctx).SetResult(result)
	if err := c.send(req, http.MethodGet, "/summary", "fetch summary"); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *APIClient) send(req *resty.Request, method, path, op string) error {
	apiErr := new(APIError)
	resp, err := req.SetError(apiErr).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		apiErr.StatusCode = resp.StatusCode()
		return fmt.Errorf("%s: %w", op, apiErr)
	}

	return nil
}
