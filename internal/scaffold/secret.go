package scaffold

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// sessionSecretBytes is the raw entropy of a generated session secret;
// hex-encoding doubles it to 32 characters.
const sessionSecretBytes = 16

const sessionSecretKey = "SESSION_SECRET="

// GenerateSessionSecret returns a fresh hex-encoded session secret.
func GenerateSessionSecret() (string, error) {
	buf := make([]byte, sessionSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ReplaceSessionSecret rewrites the SESSION_SECRET assignment in an env
// file, leaving every other line untouched.
func ReplaceSessionSecret(envFile []byte, secret string) []byte {
	lines := strings.Split(string(envFile), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, sessionSecretKey) {
			lines[i] = sessionSecretKey + secret
		}
	}
	return []byte(strings.Join(lines, "\n"))
}
