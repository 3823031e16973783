// Package crypto provides the cryptographic engine for the hushbox protocol.
// It implements passphrase-based key derivation and authenticated encryption.
//
// # Algorithm Suite
//
//   - scrypt (N=32768, r=8, p=1): memory-hard key derivation from a passphrase
//     and a per-secret public salt, producing a 32-byte AES key.
//
//   - AES-256-GCM: authenticated encryption with associated data (AEAD) for
//     secret payloads. The format header travels as the GCM associated data,
//     binding every ciphertext to the algorithm suite that produced it.
//
//   - SHA-256: the verifier is the hex digest of the derived key. It proves
//     passphrase knowledge to the server without revealing the passphrase or
//     the key; without the salt it is not reversible to either.
//
// # Security Model
//
// The server never sees the passphrase, the derived key, or any plaintext.
// It stores only ciphertext, public parameters (salt, nonce, header), and the
// verifier. Salt and nonce are generated fresh per secret; a (key, nonce) pair
// is never reused. File metadata is encrypted in a self-framing blob with its
// own nonce so the file body and its metadata never share one.
//
// # Initialization
//
// An [Engine] is the capability handle passed to protocol components. Its
// initialization self-test runs exactly once no matter how many goroutines
// trigger it; all callers observe the same outcome.
package crypto
