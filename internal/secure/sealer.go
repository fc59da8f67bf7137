package secure

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/container-registry/devicekey/internal/crypto"
	"github.com/container-registry/devicekey/internal/devicekey"
)

var (
	ErrFileNotFound     = errors.New("sealed file not found")
	ErrCorrupted        = errors.New("sealed data corrupted")
	ErrEncryptionFailed = errors.New("encryption failed")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrKeyDeriveFailed  = errors.New("key derivation failed")
)

const (
	envelopeVersion = 1
	saltSize        = 16
	keySize         = 32
)

// KeySource supplies the device key that sealed data is bound to.
// *devicekey.Resolver satisfies it.
type KeySource interface {
	CryptKey(ctx context.Context) [devicekey.KeySize]byte
}

// Sealer encrypts local data with a key derived from the device key, so the
// data can only be opened on the device that sealed it.
type Sealer struct {
	crypto crypto.Provider
	keys   KeySource
}

func NewSealer(cryptoProvider crypto.Provider, keys KeySource) *Sealer {
	return &Sealer{
		crypto: cryptoProvider,
		keys:   keys,
	}
}

// Envelope is the on-disk representation of sealed data.
type Envelope struct {
	Version   int    `json:"version"`
	Salt      []byte `json:"salt"`
	Encrypted []byte `json:"data"`
}

// Seal encrypts plaintext under a fresh salt and returns the JSON envelope.
func (s *Sealer) Seal(ctx context.Context, plaintext []byte) ([]byte, error) {
	salt, err := s.crypto.RandomBytes(saltSize)
	if err != nil {
		return nil, ErrKeyDeriveFailed
	}

	key, err := s.deriveKey(ctx, salt)
	if err != nil {
		return nil, err
	}

	encrypted, err := s.crypto.Encrypt(plaintext, key)
	if err != nil {
		return nil, ErrEncryptionFailed
	}

	return json.Marshal(Envelope{
		Version:   envelopeVersion,
		Salt:      salt,
		Encrypted: encrypted,
	})
}

// Open decrypts an envelope produced by Seal.
func (s *Sealer) Open(ctx context.Context, data []byte) ([]byte, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Version == 0 {
		return nil, ErrCorrupted
	}

	key, err := s.deriveKey(ctx, env.Salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := s.crypto.Decrypt(env.Encrypted, key)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// SealToFile seals plaintext and writes the envelope to path with owner-only permissions.
func (s *Sealer) SealToFile(ctx context.Context, path string, plaintext []byte) error {
	data, err := s.Seal(ctx, plaintext)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// OpenFile reads and decrypts the envelope stored at path.
func (s *Sealer) OpenFile(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	return s.Open(ctx, data)
}

// Reseal decrypts and re-encrypts with a new salt.
func (s *Sealer) Reseal(ctx context.Context, data []byte) ([]byte, error) {
	plaintext, err := s.Open(ctx, data)
	if err != nil {
		return nil, err
	}

	return s.Seal(ctx, plaintext)
}

// IsSealed checks if data appears to be a sealed envelope.
func IsSealed(data []byte) bool {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false
	}
	return env.Version > 0 && len(env.Encrypted) > 0
}

func (s *Sealer) deriveKey(ctx context.Context, salt []byte) ([]byte, error) {
	deviceKey := s.keys.CryptKey(ctx)

	key, err := s.crypto.DeriveKey(deviceKey[:], salt, keySize)
	if err != nil {
		return nil, ErrKeyDeriveFailed
	}

	return key, nil
}
