package utils

import (
	"fmt"
	"os"
	"strings"
)

// ReadSecret reads a secret from the standard Docker Secrets path.
func ReadSecret(secretName string) (string, error) {
	filePath := fmt.Sprintf("/run/secrets/%s", secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		// No env var fallback, so behavior stays consistent across environments
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}

// ReadOptionalSecret reads a secret, returning empty string when the file is
// absent. Used for secrets tied to optional components.
func ReadOptionalSecret(secretName string) string {
	secret, err := ReadSecret(secretName)
	if err != nil {
		return ""
	}
	return secret
}
