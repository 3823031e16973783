package hushbox

import (
	"encoding/json"
	"fmt"
)

// Input size ceilings, enforced before any cryptographic work.
const (
	// MaxFileSize is the inclusive ceiling for file payloads.
	MaxFileSize = 10 * 1024 * 1024
	// MaxTextSize is the inclusive ceiling for text payloads.
	MaxTextSize = 1 * 1024 * 1024
)

// StoredSecret is the outcome of a successful create flow. The creator-side
// plaintext and envelope are gone by the time it is returned; only the
// shareable coordinates remain.
type StoredSecret struct {
	// ID is the server-assigned secret identifier.
	ID string

	// Passphrase decrypts the secret. Share it out-of-band; it is never
	// part of the link and never crossed the network.
	Passphrase string

	// Policy is the normalized policy the secret was stored under.
	Policy Policy
}

// Link returns the shareable retrieval URL. The passphrase is intentionally
// not embedded; it must travel through a separate channel.
func (s *StoredSecret) Link(baseURL string) string {
	return fmt.Sprintf("%s/secret/%s", baseURL, s.ID)
}

// RevealedSecret is the outcome of a successful retrieve flow.
type RevealedSecret struct {
	IsFile bool

	// Data is the decrypted payload: the secret text, or the file body.
	Data []byte

	// Filename and MediaType are set for file secrets only. They were
	// carried encrypted, separately from the body.
	Filename  string
	MediaType string
}

// Text returns the payload as a string. For file secrets it returns the raw
// body; check IsFile first.
func (r *RevealedSecret) Text() string {
	return string(r.Data)
}

// fileMetadata is the plaintext form of the encrypted-metadata field.
// Key names are part of the wire format.
type fileMetadata struct {
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
}

func encodeFileMetadata(filename, mediaType string) ([]byte, error) {
	return json.Marshal(fileMetadata{FileName: filename, FileType: mediaType})
}

func decodeFileMetadata(data []byte) (*fileMetadata, error) {
	var meta fileMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse file metadata: %w", err)
	}
	return &meta, nil
}
