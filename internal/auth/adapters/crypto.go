package adapters

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2idParams defines the tuning parameters for Argon2id password hashing.
type argon2idParams struct {
	time       uint32
	memory     uint32
	threads    uint8
	keyLength  uint32
	saltLength uint32
}

var defaultArgon2idParams = argon2idParams{
	time:       1,
	memory:     64 * 1024,
	threads:    4,
	keyLength:  32,
	saltLength: 16,
}

// hashArgon2id hashes the supplied value with Argon2id and encodes the result
// together with its parameters as argon2id$time$memory$threads$salt$hash.
func hashArgon2id(value string, params argon2idParams) (string, error) {
	salt := make([]byte, int(params.saltLength))
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(value), salt, params.time, params.memory, params.threads, params.keyLength)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("argon2id$%d$%d$%d$%s$%s", params.time, params.memory, params.threads, b64Salt, b64Hash), nil
}

// verifyArgon2id compares a plain value against an encoded Argon2id hash in
// constant time.
func verifyArgon2id(value, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, errors.New("invalid hash format")
	}
	if parts[0] != "argon2id" {
		return false, fmt.Errorf("unsupported hash algorithm: %s", parts[0])
	}
	timeValue, err := parseUint32(parts[1])
	if err != nil {
		return false, fmt.Errorf("invalid time parameter: %w", err)
	}
	memoryValue, err := parseUint32(parts[2])
	if err != nil {
		return false, fmt.Errorf("invalid memory parameter: %w", err)
	}
	threadsValue, err := parseUint32(parts[3])
	if err != nil {
		return false, fmt.Errorf("invalid threads parameter: %w", err)
	}
	if threadsValue == 0 || threadsValue > 255 {
		return false, errors.New("invalid thread count: must be between 1 and 255")
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}

	computed := argon2.IDKey([]byte(value), salt, timeValue, memoryValue, uint8(threadsValue), uint32(len(hash)))
	if len(computed) != len(hash) {
		return false, nil
	}
	var diff byte
	for i := range computed {
		diff |= computed[i] ^ hash[i]
	}
	return diff == 0, nil
}

func parseUint32(value string) (uint32, error) {
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(parsed), nil
}
