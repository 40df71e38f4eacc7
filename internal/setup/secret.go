package setup

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// SecretBytes is the entropy of a generated key before encoding.
const SecretBytes = 32

// SecretStrategy decides whether setup issues a secret key.
type SecretStrategy interface {
	// Secret returns the key, or "" when no key is issued.
	Secret() (string, error)
}

// GenerateSecret issues a URL-safe key read from Rand.
type GenerateSecret struct {
	Rand io.Reader
}

func (g GenerateSecret) Secret() (string, error) {
	src := g.Rand
	if src == nil {
		src = rand.Reader
	}
	buf := make([]byte, SecretBytes)
	if _, err := io.ReadFull(src, buf); err != nil {
		return "", fmt.Errorf("generate secret key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// SkipSecret issues no key.
type SkipSecret struct{}

func (SkipSecret) Secret() (string, error) {
	return "", nil
}

// StrategyFor selects the strategy once per run. Assistant hosts get no key;
// human operators get one drawn from src (crypto/rand when nil).
func StrategyFor(assistantHost bool, src io.Reader) SecretStrategy {
	if assistantHost {
		return SkipSecret{}
	}
	return GenerateSecret{Rand: src}
}
