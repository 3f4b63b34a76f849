package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gradnexus/campusconnect/internal/db"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
)

// SessionRepository stores server-side login sessions
type SessionRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(database *db.PostgresDB) *SessionRepository {
	return &SessionRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a session for userID.
func (r *SessionRepository) Create(ctx context.Context, key string, userID int64, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("user_sessions").
		Columns("session_key", "user_id", "expires_at").
		Values(key, userID, expiresAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create session query: %w", err)
	}
	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// GetUserID returns the owner of a live session. Missing or expired sessions yield ErrSessionExpired.
func (r *SessionRepository) GetUserID(ctx context.Context, key string) (int64, error) {
	sql, args, err := r.sb.Select("user_id").
		From("user_sessions").
		Where(squirrel.Eq{"session_key": key}).
		Where(squirrel.Expr("expires_at > NOW()")).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build get session query: %w", err)
	}

	var userID int64
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrSessionExpired
		}
		return 0, fmt.Errorf("error retrieving session: %w", err)
	}
	return userID, nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	sql, args, err := r.sb.Delete("user_sessions").Where(squirrel.Eq{"session_key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete session query: %w", err)
	}
	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// DeleteExpired purges sessions past their expiry for userID.
func (r *SessionRepository) DeleteExpired(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("user_sessions").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Expr("expires_at <= NOW()")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build purge sessions query: %w", err)
	}
	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error purging sessions: %w", err)
	}
	return nil
}
