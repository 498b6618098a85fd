package dto

import (
	apperrors "github.com/sam7695/secure-asset-management/internal/errors"
)

// FinancialPayload is the caller-supplied JSON document. It stays a map
// so arbitrary fields round-trip through encryption untouched; only the
// required fields are shape-checked.
type FinancialPayload map[string]any

type FinancialInput struct {
	Data FinancialPayload `json:"data"`
}

type FinancialOutput struct {
	FinancialData FinancialPayload `json:"financialData"`
}

// Validate performs the shallow shape check: an object carrying a
// non-empty account identifier and a numeric balance.
func (p FinancialPayload) Validate() error {
	if p == nil {
		return apperrors.ErrInvalidPayload
	}

	account, ok := p["account"].(string)
	if !ok || account == "" {
		return apperrors.ErrInvalidPayload
	}

	switch p["balance"].(type) {
	case float64, int, int64:
		return nil
	default:
		return apperrors.ErrInvalidPayload
	}
}
