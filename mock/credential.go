package mock

import (
	"context"

	"github.com/fwojciec/offerdoc"
)

var _ offerdoc.CredentialService = (*CredentialService)(nil)

// CredentialService is a mock implementation of offerdoc.CredentialService.
type CredentialService struct {
	SaveTokenFn   func(ctx context.Context, token string) error
	FindTokenFn   func(ctx context.Context) (string, error)
	DeleteTokenFn func(ctx context.Context) error
}

func (s *CredentialService) SaveToken(ctx context.Context, token string) error {
	return s.SaveTokenFn(ctx, token)
}

func (s *CredentialService) FindToken(ctx context.Context) (string, error) {
	return s.FindTokenFn(ctx)
}

func (s *CredentialService) DeleteToken(ctx context.Context) error {
	return s.DeleteTokenFn(ctx)
}
