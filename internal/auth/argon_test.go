package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/audiologapp/audiolog/internal/errors"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash format: %q", hash)
	}

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = VerifyPassword(hash, "wrong password")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordBadFormat(t *testing.T) {
	if _, err := VerifyPassword("not-a-hash", "x"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

type fakePasswordSource map[string]string

func (f fakePasswordSource) GetUserPasswordHash(_ context.Context, username string) (string, error) {
	h, ok := f[username]
	if !ok {
		return "", errors.NotFoundf("username %q not found", username)
	}
	return h, nil
}

func TestVerifyUserIndistinguishableFailures(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	src := fakePasswordSource{"pat": hash}
	ctx := context.Background()

	if err := VerifyUser(ctx, src, "pat", "secret"); err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}

	wrongPass := VerifyUser(ctx, src, "pat", "not-secret")
	unknownUser := VerifyUser(ctx, src, "nobody", "secret")
	if wrongPass == nil || unknownUser == nil {
		t.Fatal("expected both failures to error")
	}
	// Same code and message for both, so the two cases can't be told apart.
	if wrongPass.Error() != unknownUser.Error() {
		t.Errorf("distinguishable failures: %q vs %q", wrongPass, unknownUser)
	}
	if !errors.Is(wrongPass, errors.ErrInvalidCredentials) {
		t.Errorf("wrong password error code: %v", wrongPass)
	}
	if !errors.Is(unknownUser, errors.ErrInvalidCredentials) {
		t.Errorf("unknown user error code: %v", unknownUser)
	}
}
