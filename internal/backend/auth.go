package backend

import (
	"context"

	"boighor-storefront/internal/domain"
)

func (c *Client) Signup(ctx context.Context, form domain.SignupForm) (*domain.AuthResult, error) {
	var result domain.AuthResult
	if err := c.postJSON(ctx, "/api/users/signup", "", form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	payload := map[string]string{"email": email, "password": password}

	var result domain.AuthResult
	if err := c.postJSON(ctx, "/api/users/login", "", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
