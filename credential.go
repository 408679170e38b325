package offerdoc

import "context"

// CredentialService stores the API token used to reach the remote template
// service.
type CredentialService interface {
	// SaveToken stores token, replacing any previous one.
	SaveToken(ctx context.Context, token string) error

	// FindToken returns the stored token.
	// Returns ENOTFOUND if no token is stored.
	FindToken(ctx context.Context) (string, error)

	// DeleteToken removes the stored token. Deleting a missing token is not an error.
	DeleteToken(ctx context.Context) error
}
