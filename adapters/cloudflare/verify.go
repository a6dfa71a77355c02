package cloudflare

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jersk/Cloudflare-DDNS-Wizard/domain/model"
)

// VerifyToken probes the token verification endpoint. It returns the
// token status string ("active") on success. An envelope-level
// rejection maps to model.ErrTokenInvalid; transport failures surface
// as-is so callers can tell a bad token from an unreachable API.
func (c *Client) VerifyToken(ctx context.Context) (string, error) {
	var res tokenVerifyJSON
	if err := c.get(ctx, "/user/tokens/verify", nil, &res); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: %s", model.ErrTokenInvalid, apiErr.Message)
		}
		return "", err
	}
	return res.Status, nil
}
