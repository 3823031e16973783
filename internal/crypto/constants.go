package crypto

const (
	// KeySize is the size of the derived AES-256 key in bytes.
	KeySize = 32
	// NonceSize is the size of an AES-GCM nonce in bytes.
	NonceSize = 12
	// TagSize is the size of an AES-GCM authentication tag in bytes.
	TagSize = 16
	// SaltSize is the size of a per-secret key derivation salt in bytes.
	SaltSize = 16

	// PassphraseLength is the length of generated passphrases.
	PassphraseLength = 32
	// SecretIDLength is the length of server-assigned secret identifiers.
	SecretIDLength = 16

	// scrypt cost parameters. Fixed: changing them breaks every stored
	// envelope, so a new suite needs a new format header instead.
	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// FormatHeader identifies the algorithm suite of newly produced envelopes.
// It is carried on the wire and used verbatim as the GCM associated data, so
// envelopes remain decryptable under their original suite after upgrades.
var FormatHeader = []byte("hushbox:v1")
