package api

// DecryptRequest is the body of both retrieve round trips: the salt fetch
// (GetSalt set, no verifier) and the consuming payload fetch (verifier set).
type DecryptRequest struct {
	SecretID string `json:"secret_id"`
	Verifier string `json:"passwordHash,omitempty"`
	GetSalt  bool   `json:"getSalt,omitempty"`
}

// SaltResponse is the body of a successful salt fetch.
type SaltResponse struct {
	Salt string `json:"salt"`
}

// CreateResponse is the body of a successful create.
type CreateResponse struct {
	SecretID string `json:"secretId"`
}
