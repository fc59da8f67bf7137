package crypto

import "bytes"

// MockProvider implements Provider with reversible, non-cryptographic transforms for testing.
type MockProvider struct {
	DeriveKeyFunc   func(input, salt []byte, keyLen int) ([]byte, error)
	RandomBytesFunc func(n int) ([]byte, error)
	Err             error
	EncryptedPrefix []byte
}

// NewMockProvider creates a MockProvider with sensible defaults.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		EncryptedPrefix: []byte("encrypted:"),
	}
}

// Encrypt prefixes the plaintext with EncryptedPrefix and the key so that a
// different key fails to decrypt.
func (m *MockProvider) Encrypt(plaintext, key []byte) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(key) == 0 {
		return nil, ErrInvalidKey
	}
	result := make([]byte, 0, len(m.EncryptedPrefix)+len(key)+len(plaintext))
	result = append(result, m.EncryptedPrefix...)
	result = append(result, key...)
	result = append(result, plaintext...)
	return result, nil
}

func (m *MockProvider) Decrypt(ciphertext, key []byte) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(key) == 0 {
		return nil, ErrInvalidKey
	}
	header := append(append([]byte{}, m.EncryptedPrefix...), key...)
	if !bytes.HasPrefix(ciphertext, header) {
		return nil, ErrDecryptionFailed
	}
	return ciphertext[len(header):], nil
}

// DeriveKey XORs input with salt, cycling both over keyLen bytes.
func (m *MockProvider) DeriveKey(input, salt []byte, keyLen int) ([]byte, error) {
	if m.DeriveKeyFunc != nil {
		return m.DeriveKeyFunc(input, salt, keyLen)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if len(input) == 0 {
		return nil, ErrInvalidInput
	}
	if keyLen <= 0 {
		return nil, ErrInvalidKeyLength
	}
	key := make([]byte, keyLen)
	for i := range key {
		key[i] = input[i%len(input)]
		if len(salt) > 0 {
			key[i] ^= salt[i%len(salt)]
		}
	}
	return key, nil
}

func (m *MockProvider) RandomBytes(n int) ([]byte, error) {
	if m.RandomBytesFunc != nil {
		return m.RandomBytesFunc(n)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 256)
	}
	return b, nil
}
