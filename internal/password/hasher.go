package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hasher abstracts the password encoding so stores can swap the demo codec
// for a real KDF without changing verify semantics.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, encoded string) bool
}

// DemoHasher is the reversible demo codec behind the Hasher interface.
type DemoHasher struct{}

func (DemoHasher) Hash(plaintext string) (string, error) {
	return Hash(plaintext), nil
}

func (DemoHasher) Verify(plaintext, encoded string) bool {
	return Verify(plaintext, encoded)
}

// argon2id parameters, sized for interactive logins.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

var errMalformedEncoding = errors.New("malformed argon2id encoding")

// Argon2Hasher derives per-password salted argon2id digests. Unlike the demo
// codec the output differs for the same input, so equality of stored strings
// means nothing; only Verify does.
type Argon2Hasher struct{}

func (Argon2Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (Argon2Hasher) Verify(plaintext, encoded string) bool {
	salt, key, err := parseArgon2(encoded)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey([]byte(plaintext), salt, argonTime, argonMemory, argonThreads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func parseArgon2(encoded string) (salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, errMalformedEncoding
	}
	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, errMalformedEncoding
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, errMalformedEncoding
	}
	return salt, key, nil
}
