package catalog

import (
	"context"
	"net/http"
	"net/url"

	"github.com/xhess/bodie/internal/models"
)

// Programs lists every program offered by the service.
func (c *HTTPClient) Programs(ctx context.Context) ([]models.Program, error) {
	var programs []models.Program

	err := c.do(ctx, request{
		method:   http.MethodGet,
		base:     c.apiURL,
		path:     "/programs",
		out:      &programs,
		auth:     true,
		required: true,
	})
	if err != nil {
		return nil, err
	}

	return programs, nil
}

// PurchasedPrograms lists the programs owned by the logged in user.
func (c *HTTPClient) PurchasedPrograms(
	ctx context.Context,
) ([]models.Program, error) {
	var resp struct {
		Programs []models.Program `json:"programs"`
	}

	err := c.do(ctx, request{
		method:   http.MethodGet,
		base:     c.apiURL,
		path:     "/programs/user/purchased",
		out:      &resp,
		auth:     true,
		required: true,
	})
	if err != nil {
		return nil, err
	}

	return resp.Programs, nil
}

// Program fetches a single program.
func (c *HTTPClient) Program(
	ctx context.Context,
	id string,
) (*models.Program, error) {
	var p models.Program

	err := c.do(ctx, request{
		method:   http.MethodGet,
		base:     c.apiURL,
		path:     "/programs/" + url.PathEscape(id),
		out:      &p,
		auth:     true,
		required: true,
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Purchase buys a program for the logged in user.
func (c *HTTPClient) Purchase(ctx context.Context, id string) error {
	return c.do(ctx, request{
		method:   http.MethodPost,
		base:     c.apiURL,
		path:     "/programs/purchase",
		body:     map[string]string{"programId": id},
		auth:     true,
		required: true,
	})
}
