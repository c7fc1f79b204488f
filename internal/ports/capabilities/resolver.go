package capabilities

import "context"

// Resolver responde si un usuario tiene habilitada una capability
// (feature de su plan). La implementación real vive en adapters.
type Resolver interface {
	Has(ctx context.Context, userID string, capability string) (bool, error)
}
