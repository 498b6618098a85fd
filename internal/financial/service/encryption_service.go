package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/sam7695/secure-asset-management/internal/financial/domain"
	apperrors "github.com/sam7695/secure-asset-management/internal/errors"
)

const (
	// MinKeyBits is the smallest modulus accepted for record encryption.
	MinKeyBits = 2048
	// DefaultKeyBits is used when no key size is configured.
	DefaultKeyBits = 4096
)

// EncryptionService manages per-user RSA keypairs and encrypts financial
// records under RSA-OAEP with SHA-256. Direct RSA bounds the record size
// by the modulus; Encrypt surfaces that ceiling as ErrPayloadTooLarge.
type EncryptionService struct {
	keys domain.KeyStore
	bits int
}

func NewEncryptionService(keys domain.KeyStore, bits int) *EncryptionService {
	if bits < MinKeyBits {
		bits = DefaultKeyBits
	}
	return &EncryptionService{keys: keys, bits: bits}
}

// GetOrCreateKeyPair returns the user's keypair, generating and
// persisting one on first use. The key store's compare-and-insert makes
// creation effectively at-most-once: a racing caller whose freshly
// generated pair loses simply adopts the stored winner.
func (s *EncryptionService) GetOrCreateKeyPair(ctx context.Context, userID string) (*domain.KeyPair, error) {
	pair, err := s.keys.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pair != nil {
		return pair, nil
	}

	pair, err = s.generateKeyPair(userID)
	if err != nil {
		return nil, err
	}

	return s.keys.PutIfAbsent(ctx, pair)
}

// GetKeyPair returns the user's keypair without creating one, failing
// with ErrKeyPairNotFound if the user never stored financial data.
func (s *EncryptionService) GetKeyPair(ctx context.Context, userID string) (*domain.KeyPair, error) {
	pair, err := s.keys.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, apperrors.ErrKeyPairNotFound
	}
	return pair, nil
}

func (s *EncryptionService) generateKeyPair(userID string) (*domain.KeyPair, error) {
	key, err := rsa.GenerateKey(rand.Reader, s.bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}

	return &domain.KeyPair{
		UserID:     userID,
		PublicKey:  string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})),
		PrivateKey: string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})),
	}, nil
}

// Encrypt encrypts plaintext under the given PEM public key and returns
// base64 ciphertext.
func (s *EncryptionService) Encrypt(plaintext []byte, publicKeyPEM string) (string, error) {
	pub, err := parsePublicKey(publicKeyPEM)
	if err != nil {
		return "", err
	}

	// OAEP capacity: modulus size minus twice the hash size minus two.
	if len(plaintext) > pub.Size()-2*sha256.Size-2 {
		return "", apperrors.ErrPayloadTooLarge
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	if err != nil {
		return "", fmt.Errorf("encryption failed: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt is the inverse of Encrypt. Corrupt ciphertext, a wrong key or
// a padding mismatch all come back as ErrDecryptionFailed.
func (s *EncryptionService) Decrypt(ciphertext string, privateKeyPEM string) ([]byte, error) {
	priv, err := parsePrivateKey(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, apperrors.ErrDecryptionFailed
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, raw, nil)
	if err != nil {
		return nil, apperrors.ErrDecryptionFailed
	}

	return plaintext, nil
}

func parsePublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("invalid public key PEM")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}

	return pub, nil
}

func parsePrivateKey(privateKeyPEM string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(privateKeyPEM))
	if block == nil {
		return nil, errors.New("invalid private key PEM")
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	priv, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}

	return priv, nil
}
