package catalog

import "errors"

// Validation errors for catalog entities
var (
	ErrEmptyProductName       = errors.New("catalog: product name must not be empty")
	ErrInvalidMasterProductID = errors.New("catalog: invalid master product ID")
	ErrInvalidVariantID       = errors.New("catalog: invalid variant ID")
	ErrEmptyExternalID        = errors.New("catalog: external ID must not be empty")
)
