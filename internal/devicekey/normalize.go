package devicekey

import "github.com/google/uuid"

// KeySize is the length of a device key in bytes.
const KeySize = 16

// Normalize maps a raw identifier of any length, including the empty string,
// to a fixed-size key: the bytes of the name-based (SHA-1, version 5) UUID of raw
// in the DNS namespace.
func Normalize(raw string) [KeySize]byte {
	return [KeySize]byte(uuid.NewSHA1(uuid.NameSpaceDNS, []byte(raw)))
}

// RandomUUID returns a fresh random (version 4) UUID in canonical form.
func RandomUUID() string {
	return uuid.NewString()
}
