package api

import (
	"context"

	"github.com/hushbox/hushbox/internal/envelope"
)

// CreateSecret submits an envelope and returns the server-assigned secret id.
func (c *Client) CreateSecret(ctx context.Context, w *envelope.Wire) (string, error) {
	path := "/encrypt"
	if w.IsFile {
		path = "/encrypt_file"
	}

	var result CreateResponse
	if err := c.do(ctx, "POST", path, w, &result); err != nil {
		return "", err
	}
	return result.SecretID, nil
}

// GetSalt fetches the public salt for a secret id. This request carries no
// proof of passphrase knowledge and does not consume a view.
func (c *Client) GetSalt(ctx context.Context, secretID string) (string, error) {
	req := DecryptRequest{SecretID: secretID, GetSalt: true}

	var result SaltResponse
	if err := c.do(ctx, "POST", "/decrypt", req, &result); err != nil {
		return "", err
	}
	return result.Salt, nil
}

// GetSecret submits the verifier and, on a match, returns the envelope.
// A successful call is the consuming action against the view budget.
func (c *Client) GetSecret(ctx context.Context, secretID, verifier string) (*envelope.Wire, error) {
	req := DecryptRequest{SecretID: secretID, Verifier: verifier}

	var result envelope.Wire
	if err := c.do(ctx, "POST", "/decrypt", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
