package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters; hashes are stored as "salt:hash" in hex so the
// verifier can re-derive with the stored salt.
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	saltLength   = 16
	derivedBytes = 64
)

var ErrPasswordMismatch = errors.New("password does not match")

// HashPassword derives a salted scrypt hash from a plain text password.
func HashPassword(plain string) (string, error) {
	salt := make([]byte, saltLength)

	_, err := rand.Read(salt)

	if err != nil {
		return "", err
	}

	hash, err := scrypt.Key([]byte(plain), salt, scryptN, scryptR, scryptP, derivedBytes)

	if err != nil {
		return "", err
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(hash), nil
}

// CheckPassword re-derives with the stored salt and compares the derived
// bytes in constant time.
func CheckPassword(stored, plain string) error {
	saltHex, hashHex, ok := strings.Cut(stored, ":")

	if !ok {
		return ErrPasswordMismatch
	}

	salt, err := hex.DecodeString(saltHex)

	if err != nil {
		return ErrPasswordMismatch
	}

	want, err := hex.DecodeString(hashHex)

	if err != nil {
		return ErrPasswordMismatch
	}

	got, err := scrypt.Key([]byte(plain), salt, scryptN, scryptR, scryptP, len(want))

	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrPasswordMismatch
	}

	return nil
}
