package reportgen

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyContent   = errors.New("document content cannot be empty")
	ErrEmptyTitle     = errors.New("document title cannot be empty")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Descriptor validation errors.
	ErrInvalidDescriptor = errors.New("invalid image descriptor")
)
