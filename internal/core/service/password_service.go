package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters. Fixed at construction and embedded in every
// encoded hash, so stored hashes remain verifiable if these change later.
const (
	argonMemoryKiB   = 19456 // ~19 MiB
	argonTimeCost    = 2
	argonParallelism = 1
	argonSaltLen     = 16
	argonKeyLen      = 32
)

// PasswordService hashes and verifies passwords with argon2id. Hashes are
// encoded as PHC strings: $argon2id$v=19$m=...,t=...,p=...$<salt>$<key>.
type PasswordService struct {
	log zerolog.Logger
}

func NewPasswordService(log zerolog.Logger) *PasswordService {
	return &PasswordService{log: log}
}

func (s *PasswordService) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTimeCost, argonMemoryKiB, argonParallelism, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemoryKiB, argonTimeCost, argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches the encoded hash. A corrupted or
// incompatible hash is never a crash condition: it logs and reports false.
func (s *PasswordService) Verify(encoded, password string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		s.log.Warn().Msg("password verify: malformed hash")
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		s.log.Warn().Msg("password verify: incompatible argon2 version")
		return false
	}

	var memory, timeCost uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &parallelism); err != nil {
		s.log.Warn().Msg("password verify: malformed parameters")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, timeCost, memory, parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
