package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/avdeyev/memo-keeper/models"
)

const (
	createUser = `INSERT INTO users (username, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, username, email, password_hash, created_at;`

	findUserByUsername = `SELECT user_id, username, email, password_hash, created_at
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT user_id, username, email, password_hash, created_at
    FROM users
    WHERE user_id = $1;`

	createMemo = `INSERT INTO memos (user_id, title, content)
    VALUES ($1, $2, $3)
    RETURNING memo_id, user_id, title, content, created_at, updated_at;`

	deleteMemo = `DELETE FROM memos
    WHERE user_id = $1 AND memo_id = $2;`

	createSession = `INSERT INTO sessions (token, user_id, username, created_at, expires_at)
    VALUES ($1, $2, $3, $4, $5);`

	// Resolving and extending in one statement keeps the inactivity bump
	// atomic per token; an expired row simply does not match.
	findAndExtendSession = `UPDATE sessions
    SET expires_at = $2
    WHERE token = $1 AND expires_at > NOW()
    RETURNING token, user_id, username, created_at, expires_at;`

	deleteSession = `DELETE FROM sessions
    WHERE token = $1;`

	deleteExpiredSessions = `DELETE FROM sessions
    WHERE expires_at <= NOW();`
)

// memoColumns is the canonical column order for scanning memo rows.
var memoColumns = []string{"memo_id", "user_id", "title", "content", "created_at", "updated_at"}

// psql is a squirrel statement builder configured for PostgreSQL ($N placeholders).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListMemosQuery builds the owner-scoped, paginated memo listing.
// Ordering by memo_id gives stable creation order across calls.
func buildListMemosQuery(userID int64, offset, limit uint64) (string, []any, error) {
	return psql.
		Select(memoColumns...).
		From("memos").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("memo_id").
		Offset(offset).
		Limit(limit).
		ToSql()
}

// buildUpdateMemoQuery builds a partial UPDATE: only non-nil fields of update
// are included in the SET clause, so omitted fields retain their stored
// values. The WHERE clause always carries both memo_id and user_id.
func buildUpdateMemoQuery(update models.MemoUpdate) (string, []any, error) {
	builder := psql.
		Update("memos").
		Set("updated_at", sq.Expr("NOW()"))

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}

	if update.Content != nil {
		builder = builder.Set("content", *update.Content)
	}

	builder = builder.
		Where(sq.Eq{"memo_id": update.MemoID, "user_id": update.UserID}).
		Suffix("RETURNING memo_id, user_id, title, content, created_at, updated_at")

	return builder.ToSql()
}
