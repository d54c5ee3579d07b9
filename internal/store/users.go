package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/audiologapp/audiolog/internal/errors"
)

// CreateUser inserts a new user and returns the id.
// Returns a conflict error when the username is taken.
func (q *Queries) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	if username == "" {
		return 0, errors.Validation("username must not be empty")
	}

	res, err := q.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
		username, email, passwordHash)
	if err != nil {
		if errors.Is(wrapExecErr(err, ""), errors.ErrConstraint) {
			return 0, errors.Conflictf("username %q already exists", username)
		}
		return 0, fmt.Errorf("insert users: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert users: %w", err)
	}
	q.logger.Info("created user", "id", id, "username", username)
	return id, nil
}

// GetUserID returns the id for a username.
func (q *Queries) GetUserID(ctx context.Context, username string) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE username = ?", username).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, errors.NotFoundf("username %q not found", username)
	}
	if err != nil {
		return 0, fmt.Errorf("select users: %w", err)
	}
	return id, nil
}

// GetUserPasswordHash returns the stored password hash for a username.
func (q *Queries) GetUserPasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	err := q.db.QueryRowContext(ctx,
		"SELECT password_hash FROM users WHERE username = ?", username).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", errors.NotFoundf("username %q not found", username)
	}
	if err != nil {
		return "", fmt.Errorf("select users: %w", err)
	}
	return hash, nil
}
