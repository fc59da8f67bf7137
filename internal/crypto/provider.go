package crypto

import "errors"

var (
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidKey       = errors.New("invalid key")
	ErrInvalidKeyLength = errors.New("invalid key length")
	ErrInvalidInput     = errors.New("invalid input")
)

// Provider abstracts the symmetric operations used to protect local data with
// a key derived from the device key.
type Provider interface {
	// Encrypt seals plaintext with key. The nonce is prepended to the ciphertext.
	Encrypt(plaintext, key []byte) ([]byte, error)

	// Decrypt opens ciphertext produced by Encrypt with the same key.
	Decrypt(ciphertext, key []byte) ([]byte, error)

	// DeriveKey stretches input into a keyLen byte key bound to salt.
	DeriveKey(input, salt []byte, keyLen int) ([]byte, error)

	// RandomBytes returns n cryptographically secure random bytes.
	RandomBytes(n int) ([]byte, error)
}
