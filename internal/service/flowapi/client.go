package flowapi

import (
	"context"
	"fmt"
	"strconv"

	"MemeFlow/internal/domain/models"
	xhttp "MemeFlow/pkg/http"
)

// Client consumes the upstream discovery and watch-control REST API.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates an upstream API client.
func New(baseURL string, httpClient *xhttp.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

// Contracts fetches the general contract listing, optionally scoped to one
// exchange.
func (c *Client) Contracts(ctx context.Context, limit int, exchange string) ([]models.Contract, error) {
	params := map[string]string{"limit": strconv.Itoa(limit)}
	if exchange != "" {
		params["exchange"] = exchange
	}

	var out []models.Contract
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/api/contracts",
		QueryParams: params,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("fetch contracts: %w", err)
	}
	return out, nil
}

// NewListings fetches the recently listed contracts view.
func (c *Client) NewListings(ctx context.Context, limit int) ([]models.Contract, error) {
	var out []models.Contract
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/api/contracts/new",
		QueryParams: map[string]string{"limit": strconv.Itoa(limit)},
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("fetch new listings: %w", err)
	}
	return out, nil
}

type overview struct {
	Status    string `json:"status"`
	Contracts int    `json:"contracts"`
}

// ContractCount fetches the aggregate contract count from the service
// root. Independent of any listing page size.
func (c *Client) ContractCount(ctx context.Context) (int, error) {
	var out overview
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/",
	}, &out)
	if err != nil {
		return 0, fmt.Errorf("fetch overview: %w", err)
	}
	return out.Contracts, nil
}

// Watch asks the server to start streaming the instrument. The response
// body is ignored beyond success.
func (c *Client) Watch(ctx context.Context, id models.Identity) error {
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.watchURL(id),
	}, nil)
	if err != nil {
		return fmt.Errorf("watch %s: %w", id.Key(), err)
	}
	return nil
}

// Unwatch asks the server to stop streaming the instrument.
func (c *Client) Unwatch(ctx context.Context, id models.Identity) error {
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodDelete,
		URL:    c.watchURL(id),
	}, nil)
	if err != nil {
		return fmt.Errorf("unwatch %s: %w", id.Key(), err)
	}
	return nil
}

func (c *Client) watchURL(id models.Identity) string {
	return fmt.Sprintf("%s/api/watch/%s/%s", c.baseURL, id.Exchange, id.Symbol)
}
