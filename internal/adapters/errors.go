package adapters

import "errors"

var (
	// ErrUnconfigured means credentials are missing, so no request was attempted.
	ErrUnconfigured = errors.New("catalog credentials not configured")
	// ErrInvalidReference means the input holds no recognizable playlist identifier.
	ErrInvalidReference = errors.New("invalid playlist reference")
	// ErrAuth means the catalog rejected the credentials or token.
	ErrAuth = errors.New("catalog authentication failed")
	// ErrNotFound means the catalog has no such resource.
	ErrNotFound = errors.New("not found in catalog")
	// ErrNetwork covers transport failures and unexpected catalog responses.
	ErrNetwork = errors.New("catalog request failed")
)
