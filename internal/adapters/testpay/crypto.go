package testpay

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// Encryptor seals card payloads with AES-256-GCM the way the TestPay API
// expects: the key is SHA-256 of the API key, the nonce is the fixed IV issued
// alongside it, and the ciphertext travels as unpadded base64url. This is a
// remote wire contract; none of it is negotiable on our side.
type Encryptor struct {
	aead cipher.AEAD
	iv   []byte
}

// NewEncryptor derives the AES key from the API key and decodes the
// base64url IV (padding tolerated).
func NewEncryptor(apiKey, ivBase64 string) (*Encryptor, error) {
	iv, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(ivBase64, "="))
	if err != nil {
		return nil, fmt.Errorf("decode iv: %w", err)
	}

	key := sha256.Sum256([]byte(apiKey))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, len(iv))
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return &Encryptor{aead: aead, iv: iv}, nil
}

// Encrypt seals the plaintext and returns unpadded base64url ciphertext.
func (e *Encryptor) Encrypt(plaintext []byte) string {
	sealed := e.aead.Seal(nil, e.iv, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed)
}

// Decrypt reverses Encrypt. The live API never sends us ciphertext; this
// exists for tests standing in for the remote side.
func (e *Encryptor) Decrypt(encoded string) ([]byte, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode ciphertext: %w", err)
	}
	plaintext, err := e.aead.Open(nil, e.iv, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("open ciphertext: %w", err)
	}
	return plaintext, nil
}
