package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=32 will result in a 64-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateBackupCode returns a one-time code formatted XXXX-XXXX-XXXX in upper-case hex.
func GenerateBackupCode() (string, error) {
	raw, err := GenerateSecureRandomString(6)
	if err != nil {
		return "", err
	}
	raw = strings.ToUpper(raw)
	return raw[0:4] + "-" + raw[4:8] + "-" + raw[8:12], nil
}

// NormalizeBackupCode upper-cases a user-typed backup code and restores its dashes.
func NormalizeBackupCode(code string) string {
	code = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), "-", ""))
	if len(code) != 12 {
		return code
	}
	return code[0:4] + "-" + code[4:8] + "-" + code[8:12]
}
