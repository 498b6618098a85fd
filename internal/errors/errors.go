package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidPayload      = errors.New("invalid financial data")
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("financial data already exists")
	ErrKeyPairNotFound     = errors.New("keypair not found")
	ErrPayloadTooLarge     = errors.New("payload exceeds encryption capacity")
	ErrDecryptionFailed    = errors.New("decryption failed")
	ErrUpstreamUnavailable = errors.New("data store unavailable")
)
