package session

import (
	"context"

	"projectboard/internal/model"
)

// Store persists the session pair: one bearer token and one user record.
// Presence of a token is the sole signal of "authenticated". A missing or
// unreadable user record never escapes as an error; callers see absence.
type Store interface {
	Token(ctx context.Context) (string, bool)
	SetToken(ctx context.Context, token string) error
	User(ctx context.Context) (*model.User, bool)
	SetUser(ctx context.Context, u *model.User) error
	Clear(ctx context.Context) error
}

const (
	tokenKey = "token"
	userKey  = "user"
)
