package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/gradnexus/campusconnect/internal/db"
	"github.com/gradnexus/campusconnect/internal/pkg/apperrors"
	"github.com/gradnexus/campusconnect/internal/pkg/logger"
)

// TokenRepository stores the persistent API token of each user
type TokenRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(database *db.PostgresDB) *TokenRepository {
	return &TokenRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetOrCreate returns the token of userID, storing candidate as the token if the user
// has none yet. Concurrent callers converge on a single row.
func (r *TokenRepository) GetOrCreate(ctx context.Context, userID int64, candidate string) (string, error) {
	sql, args, err := r.sb.Insert("auth_tokens").
		Columns("key", "user_id").
		Values(candidate, userID).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create token SQL")
		return "", fmt.Errorf("failed to build create token query: %w", err)
	}
	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create token query")
		return "", fmt.Errorf("error creating token: %w", err)
	}

	sql, args, err = r.sb.Select("key").From("auth_tokens").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build get token query: %w", err)
	}
	var key string
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&key); err != nil {
		return "", fmt.Errorf("error retrieving token: %w", err)
	}
	return key, nil
}

// GetUserIDByKey resolves a token to its user. Unknown keys yield ErrTokenInvalid.
func (r *TokenRepository) GetUserIDByKey(ctx context.Context, key string) (int64, error) {
	sql, args, err := r.sb.Select("user_id").From("auth_tokens").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build get token query: %w", err)
	}

	var userID int64
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrTokenInvalid
		}
		return 0, fmt.Errorf("error retrieving token: %w", err)
	}
	return userID, nil
}
