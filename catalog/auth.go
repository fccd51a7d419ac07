package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xhess/bodie/internal/models"
	"github.com/xhess/bodie/store"
)

type loginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Login authenticates against the account API and persists the token, the
// email and the user record.
func (c *HTTPClient) Login(
	ctx context.Context,
	email, password string,
) (*models.User, error) {
	var resp loginResponse

	err := c.do(ctx, request{
		method: http.MethodPost,
		base:   c.apiURL,
		path:   "/auth/login",
		body: map[string]string{
			"email":    email,
			"password": password,
		},
		out: &resp,
	})
	if err != nil {
		return nil, err
	}

	if resp.Token == "" {
		return nil, fmt.Errorf("%w: login response has no token", ErrMalformedPayload)
	}

	user := models.User{Email: email}
	if resp.User != nil {
		user = *resp.User
	}

	b, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(store.KeyAuthToken, resp.Token); err != nil {
		return nil, err
	}

	if err := c.store.Set(store.KeyUserEmail, email); err != nil {
		return nil, err
	}

	if err := c.store.Set(store.KeyUserData, string(b)); err != nil {
		return nil, err
	}

	return &user, nil
}

// Logout removes the stored credentials.
func (c *HTTPClient) Logout() error {
	return c.store.RemoveMany(
		store.KeyAuthToken,
		store.KeyUserEmail,
		store.KeyUserData,
	)
}

// CurrentUser returns the stored user record, or nil when logged out.
func CurrentUser(s store.Store) (*models.User, error) {
	v, found, err := s.Get(store.KeyUserData)
	if err != nil || !found || v == "" {
		return nil, err
	}

	var u models.User
	if err := json.Unmarshal([]byte(v), &u); err != nil {
		return nil, &store.PersistenceError{
			Op:  "decode",
			Key: store.KeyUserData,
			Err: err,
		}
	}

	return &u, nil
}
