package sdk

import "context"

// Register creates the local account
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*AccountInfo, error) {
	var result AccountInfo
	if err := c.post(ctx, "/auth/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login authenticates the dashboard and returns a token.
// The token is automatically stored in the client for subsequent requests.
func (c *Client) Login(ctx context.Context, password string) (*LoginResponse, error) {
	var result LoginResponse
	if err := c.post(ctx, "/auth/login", &LoginRequest{Password: password}, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}
