package adapters

import (
	"fmt"
)

// BaseAdapter provides common functionality for platform adapters
type BaseAdapter struct {
	authenticated bool
	platform      PlatformType
}

// NewBaseAdapter creates a new BaseAdapter
func NewBaseAdapter(platform PlatformType) BaseAdapter {
	return BaseAdapter{platform: platform}
}

// SetAuthenticated updates the authentication status
func (b *BaseAdapter) SetAuthenticated(status bool) {
	b.authenticated = status
}

// IsAuthenticated checks if the adapter is authenticated
func (b *BaseAdapter) IsAuthenticated() bool {
	return b.authenticated
}

// CheckAuth ensures the adapter is authenticated before making API calls
func (b *BaseAdapter) CheckAuth() error {
	if !b.IsAuthenticated() {
		return fmt.Errorf("%w: %s client not authenticated", ErrAuth, b.platform)
	}
	return nil
}
