package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"resourceshub/utils"

	"golang.org/x/crypto/argon2"
)

// Argon2Params are the cost settings encoded into every hash.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  int
	KeyLength   uint32
}

var DefaultArgon2Params = Argon2Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

var (
	ErrWeakPassword = errors.New("password must be at least 6 characters and contain a number and a special character")
	ErrInvalidHash  = errors.New("invalid stored password format")
)

var b64 = base64.RawStdEncoding

// HashPassword returns an encoded argon2id hash of the form
// $argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>.
func HashPassword(password string) (string, error) {
	if !utils.ValidatePassword(password) {
		return "", ErrWeakPassword
	}
	return hashWith(password, DefaultArgon2Params)
}

// Rehash hashes an already accepted password with the current settings,
// skipping the strength rules.
func Rehash(password string) (string, error) {
	return hashWith(password, DefaultArgon2Params)
}

func hashWith(password string, p Argon2Params) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism, b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// decodeHash also accepts the older "salt$key" form, which was always
// produced with DefaultArgon2Params.
func decodeHash(encoded string) (Argon2Params, []byte, []byte, error) {
	p := DefaultArgon2Params
	parts := strings.Split(encoded, "$")

	var saltPart, keyPart string
	switch len(parts) {
	case 2:
		saltPart, keyPart = parts[0], parts[1]
	case 6:
		if parts[1] != "argon2id" {
			return p, nil, nil, ErrInvalidHash
		}
		var version int
		if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
			return p, nil, nil, ErrInvalidHash
		}
		if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
			return p, nil, nil, ErrInvalidHash
		}
		saltPart, keyPart = parts[4], parts[5]
	default:
		return p, nil, nil, ErrInvalidHash
	}

	salt, err := b64.DecodeString(saltPart)
	if err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(keyPart)
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrInvalidHash
	}
	p.SaltLength = len(salt)
	p.KeyLength = uint32(len(key))
	return p, salt, key, nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(storedPassword, providedPassword string) (bool, error) {
	p, salt, key, err := decodeHash(storedPassword)
	if err != nil {
		return false, err
	}
	computed := argon2.IDKey([]byte(providedPassword), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	return subtle.ConstantTimeCompare(computed, key) == 1, nil
}

// ComparePasswords is VerifyPassword with malformed hashes treated as a mismatch.
func ComparePasswords(storedHash, plainPassword string) bool {
	match, err := VerifyPassword(storedHash, plainPassword)
	return err == nil && match
}

// NeedsRehash reports whether a stored hash was made with weaker or legacy
// settings and should be replaced after the next successful login.
func NeedsRehash(storedHash string) bool {
	if !strings.HasPrefix(storedHash, "$argon2id$") {
		return true
	}
	p, _, _, err := decodeHash(storedHash)
	if err != nil {
		return true
	}
	d := DefaultArgon2Params
	return p.Memory < d.Memory || p.Iterations < d.Iterations || p.KeyLength < d.KeyLength
}
