// Package password отвечает за хеширование и проверку паролей торговых представителей.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const djangoPBKDF2Prefix = "pbkdf2_sha256"

// Hash возвращает bcrypt-хеш пароля.
func Hash(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Check сравнивает пароль с сохранённым хешем.
// Поддерживаются bcrypt и формат Django pbkdf2_sha256$<iterations>$<salt>$<hash>.
func Check(encoded, raw string) bool {
	switch {
	case encoded == "":
		return false
	case strings.HasPrefix(encoded, djangoPBKDF2Prefix+"$"):
		return checkPBKDF2(encoded, raw)
	case strings.HasPrefix(encoded, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
	default:
		return false
	}
}

func checkPBKDF2(encoded, raw string) bool {
	parts := strings.SplitN(encoded, "$", 4)
	if len(parts) != 4 {
		return false
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}

	expected, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil || len(expected) == 0 {
		return false
	}

	derived := pbkdf2.Key([]byte(raw), []byte(parts[2]), iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(derived, expected) == 1
}

// EncodePBKDF2 формирует хеш в формате Django. Используется для переноса данных и в тестах.
func EncodePBKDF2(raw, salt string, iterations int) string {
	derived := pbkdf2.Key([]byte(raw), []byte(salt), iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s", djangoPBKDF2Prefix, iterations, salt,
		base64.StdEncoding.EncodeToString(derived))
}
