package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates bearer tokens against the identity provider's RSA
// public key. The key is fetched once at construction; verification itself
// is offline and read-only.
type Verifier struct {
	publicKey *rsa.PublicKey
}

// NewVerifier fetches the provider's public key and returns a ready
// verifier. Call it once at process start.
func NewVerifier(publicKeyURL string) (*Verifier, error) {
	key, err := FetchPublicKey(publicKeyURL)
	if err != nil {
		return nil, err
	}
	return &Verifier{publicKey: key}, nil
}

// NewVerifierWithKey builds a verifier around an already-parsed key.
func NewVerifierWithKey(key *rsa.PublicKey) *Verifier {
	return &Verifier{publicKey: key}
}

// FetchPublicKey fetches the PEM-encoded RSA public key from the identity
// provider. The provider answers with {"key": "<PEM>"}.
func FetchPublicKey(url string) (*rsa.PublicKey, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public key: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	keyResponse := struct {
		Key string `json:"key"`
	}{}
	if err := json.Unmarshal(body, &keyResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal public key response: %w", err)
	}

	block, _ := pem.Decode([]byte(keyResponse.Key))
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("failed to decode PEM block containing public key")
	}

	pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPubKey, ok := pubKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key")
	}

	return rsaPubKey, nil
}

// Verify parses and validates an RS256 token and returns its claims.
func (v *Verifier) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}
