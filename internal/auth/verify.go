package auth

import (
	"context"

	"github.com/audiologapp/audiolog/internal/errors"
)

// PasswordSource looks up the stored password hash for a username.
type PasswordSource interface {
	GetUserPasswordHash(ctx context.Context, username string) (string, error)
}

// VerifyUser checks the credential pair authorizing an ingestion run.
// Unknown users and wrong passwords return the same invalid-credentials
// error, so a caller cannot tell which check failed.
func VerifyUser(ctx context.Context, src PasswordSource, username, password string) error {
	encodedHash, err := src.GetUserPasswordHash(ctx, username)
	if err != nil {
		return errors.InvalidCredentials("can't verify username and/or password")
	}
	ok, err := VerifyPassword(encodedHash, password)
	if err != nil || !ok {
		return errors.InvalidCredentials("can't verify username and/or password")
	}
	return nil
}
