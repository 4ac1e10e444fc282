package ports

import (
	"context"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

// AuthService authenticates users against the clinical roster.
type AuthService interface {
	// Login matches identity against email or display name. Frozen
	// accounts are rejected with domain.ErrAccountFrozen even when the
	// password is correct.
	Login(ctx context.Context, identity, password string) (string, *domain.User, error)
}
